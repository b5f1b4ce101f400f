package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/historian/internal/domain/entities"
	"github.com/ersonp/historian/internal/domain/services"
)

// IngestionHandler handles loading document extraction files.
type IngestionHandler struct {
	ingestionService *services.IngestionService
}

// NewIngestionHandler creates a new IngestionHandler.
func NewIngestionHandler(ingestionService *services.IngestionService) *IngestionHandler {
	return &IngestionHandler{
		ingestionService: ingestionService,
	}
}

// HandleFile reads a DocumentExtraction JSON file and ingests it.
func (h *IngestionHandler) HandleFile(ctx context.Context, filePath string, opts services.IngestOptions) (*services.IngestResult, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("accessing file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", absPath)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	var doc entities.DocumentExtraction
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing extraction JSON: %w", err)
	}

	result, err := h.ingestionService.Ingest(ctx, &doc, opts)
	if err != nil {
		return nil, fmt.Errorf("ingesting %s: %w", absPath, err)
	}
	return result, nil
}
