// Package openai provides an Extractor implementation using an
// OpenAI-compatible chat API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/historian/internal/domain/entities"
	"github.com/ersonp/historian/internal/infrastructure/config"
)

const extractionPrompt = `You are a historical entity extractor. Extract structured records from the given source document text.

Return ONLY a valid JSON object with this shape, no other text:
{
  "artifact": {"title": "...", "author": "...", "publication_year": 1890, "time_period_start": 1850, "time_period_end": 1900},
  "persons": [{"name": "...", "aliases": ["..."], "birth_year": 1820, "death_year": 1890}],
  "locations": [{"name": "...", "aliases": ["..."], "address": "...", "latitude": 40.7, "longitude": -74.0}],
  "context_chunks": [{"chunk_label": "...", "page_range": [1, 20], "summary": "...", "key_persons": ["..."], "key_locations": ["..."]}],
  "events": [{"description": "...", "page_range": [3, 4], "event_type": "...", "context_label": "...", "event_date": "1850-05-01", "person_names": ["..."], "location_names": ["..."]}],
  "milestones": [{"person_name": "...", "milestone_type": "birth", "milestone_date": "1820-01-01", "description": "...", "location_name": "..."}]
}

Rules:
- Dates are "YYYY" or "YYYY-MM-DD" strings; omit a date you cannot determine.
- page_range is [start, end] with start <= end; omit it when unknown.
- person_names and location_names must reference names from the persons and locations lists.
- Omit any optional field you cannot determine rather than guessing.`

// Client implements the Extractor interface using OpenAI.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient creates a new OpenAI extraction client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	client := openai.NewClient(cfg.APIKey)

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// ExtractDocument extracts a structured document extraction from the
// given text.
func (c *Client) ExtractDocument(ctx context.Context, text string) (*entities.DocumentExtraction, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extractionPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("calling OpenAI: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	var doc entities.DocumentExtraction
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("parsing extraction JSON: %w (response: %s)", err, content)
	}

	if errs := doc.Validate(); len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.Error()
		}
		return nil, fmt.Errorf("extraction failed validation: %s", strings.Join(messages, "; "))
	}

	return &doc, nil
}

// cleanJSONResponse removes markdown code blocks if present.
func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}
