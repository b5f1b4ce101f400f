package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/historian/internal/domain/entities"
	"github.com/ersonp/historian/internal/domain/ports"
)

// ExtractionHandler handles extracting structured records from source
// document files.
type ExtractionHandler struct {
	extractor ports.Extractor
}

// NewExtractionHandler creates a new ExtractionHandler.
func NewExtractionHandler(extractor ports.Extractor) *ExtractionHandler {
	return &ExtractionHandler{
		extractor: extractor,
	}
}

// HandleFile reads a source text file and extracts a document
// extraction from it.
func (h *ExtractionHandler) HandleFile(ctx context.Context, filePath string) (*entities.DocumentExtraction, error) {
	text, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	if len(text) == 0 {
		return nil, fmt.Errorf("source file is empty: %s", filePath)
	}

	doc, err := h.extractor.ExtractDocument(ctx, string(text))
	if err != nil {
		return nil, fmt.Errorf("extracting document: %w", err)
	}
	return doc, nil
}
