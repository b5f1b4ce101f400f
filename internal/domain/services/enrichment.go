// Package services contains the domain logic layered over the ports.
package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ersonp/historian/internal/domain/entities"
	"github.com/ersonp/historian/internal/domain/ports"
)

// EnrichmentService joins events with their primary venue and
// participant list for the timeline frontend.
type EnrichmentService struct {
	store ports.ArchiveStore
}

// NewEnrichmentService creates a new EnrichmentService.
func NewEnrichmentService(store ports.ArchiveStore) *EnrichmentService {
	return &EnrichmentService{
		store: store,
	}
}

// ListEnrichedEvents returns every event annotated with its primary
// venue (at most one) and full participant list, dated events first in
// chronological order and undated events last in insertion order.
//
// When a year bound is given, events without a parsable date are
// dropped; with no bounds they are included with year 0 and an
// "unknown" date precision. The venue and participant lookups are two
// batched queries keyed by the surviving event ids.
func (s *EnrichmentService) ListEnrichedEvents(ctx context.Context, startYear, endYear *int) ([]entities.EnrichedEvent, error) {
	events, err := s.store.ListEventsChronological(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	// Filter before the lookups so the batch is as small as possible.
	filtered := make([]entities.Event, 0, len(events))
	for _, event := range events {
		year, ok := extractYear(event.EventDate)
		if startYear != nil && (!ok || year < *startYear) {
			continue
		}
		if endYear != nil && (!ok || year > *endYear) {
			continue
		}
		filtered = append(filtered, event)
	}

	eventIDs := make([]string, len(filtered))
	for i, event := range filtered {
		eventIDs[i] = event.ID
	}

	venues, err := s.store.VenuesByEventIDs(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("looking up venues: %w", err)
	}

	participants, err := s.store.ParticipantsByEventIDs(ctx, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("looking up participants: %w", err)
	}

	enriched := make([]entities.EnrichedEvent, 0, len(filtered))
	for _, event := range filtered {
		year, ok := extractYear(event.EventDate)
		if !ok {
			year = 0
		}

		precision := "exact"
		if event.EventDate == nil {
			precision = "unknown"
		}

		var location *entities.EnrichedLocation
		if venue, found := venues[event.ID]; found {
			location = entities.EnrichLocation(venue)
		}

		people := make([]entities.EnrichedPerson, 0, len(participants[event.ID]))
		for _, person := range participants[event.ID] {
			people = append(people, entities.EnrichPerson(person))
		}

		enriched = append(enriched, entities.EnrichedEvent{
			ID:            event.ID,
			Description:   event.Description,
			BookID:        event.ArtifactID,
			EventDate:     event.EventDate,
			DatePrecision: precision,
			Year:          year,
			Location:      location,
			People:        people,
		})
	}

	return enriched, nil
}

// extractYear parses the leading 4 characters of an event date
// ("1850" or "1850-05-01") as the year. Absent or unparsable dates
// have no year.
func extractYear(date *string) (int, bool) {
	if date == nil {
		return 0, false
	}
	prefix := *date
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	year, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, false
	}
	return year, true
}
