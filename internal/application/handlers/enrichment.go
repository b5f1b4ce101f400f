// Package handlers contains the application layer over the domain services.
package handlers

import (
	"context"

	"github.com/ersonp/historian/internal/domain/entities"
	"github.com/ersonp/historian/internal/domain/services"
)

// EnrichmentHandler handles enriched-event reads at the application layer.
type EnrichmentHandler struct {
	enrichmentService *services.EnrichmentService
}

// NewEnrichmentHandler creates a new EnrichmentHandler.
func NewEnrichmentHandler(enrichmentService *services.EnrichmentService) *EnrichmentHandler {
	return &EnrichmentHandler{
		enrichmentService: enrichmentService,
	}
}

// HandleList returns all events enriched with venue and participants,
// optionally restricted to a year range.
func (h *EnrichmentHandler) HandleList(ctx context.Context, startYear, endYear *int) ([]entities.EnrichedEvent, error) {
	return h.enrichmentService.ListEnrichedEvents(ctx, startYear, endYear)
}
