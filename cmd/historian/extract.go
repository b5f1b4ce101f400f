package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/historian/internal/application/handlers"
	"github.com/ersonp/historian/internal/infrastructure/config"
	llm "github.com/ersonp/historian/internal/infrastructure/llm/openai"
)

func newExtractCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "extract <file.txt>",
		Short: "Extract structured records from source text",
		Long: `Extracts persons, locations, context chunks, events and milestones
from a source document using the configured LLM, and writes a
DocumentExtraction JSON file suitable for 'historian ingest'.

Requires an API key (config llm.api_key or OPENAI_API_KEY).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExtract(cmd *cobra.Command, filePath, output string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return fmt.Errorf("creating llm client: %w", err)
	}

	handler := handlers.NewExtractionHandler(client)
	doc, err := handler.HandleFile(ctx, filePath)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer f.Close()
		w = f
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("writing extraction: %w", err)
	}

	if output != "" {
		fmt.Printf("Wrote extraction to %s\n", output)
	}

	return nil
}
