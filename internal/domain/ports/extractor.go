package ports

import (
	"context"

	"github.com/ersonp/historian/internal/domain/entities"
)

// Extractor produces a structured document extraction from raw text.
type Extractor interface {
	// ExtractDocument extracts persons, locations, context chunks,
	// events and milestones from the given text.
	ExtractDocument(ctx context.Context, text string) (*entities.DocumentExtraction, error)
}
