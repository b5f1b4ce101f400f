package mocks

import (
	"context"

	"github.com/ersonp/historian/internal/domain/entities"
)

// Extractor is a mock implementation of ports.Extractor.
type Extractor struct {
	Doc *entities.DocumentExtraction
	Err error
}

// ExtractDocument returns the configured extraction or error.
func (m *Extractor) ExtractDocument(_ context.Context, _ string) (*entities.DocumentExtraction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Doc, nil
}
