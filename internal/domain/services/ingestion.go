package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/historian/internal/domain/entities"
	"github.com/ersonp/historian/internal/domain/ports"
)

// IngestOptions controls ingestion behavior.
type IngestOptions struct {
	DryRun bool // Validate without saving
}

// IngestResult contains the result of ingesting one document extraction.
type IngestResult struct {
	ArtifactID    string
	Persons       int
	Locations     int
	ContextChunks int
	Events        int
	Milestones    int
	Participants  int
	Venues        int
}

// IngestionService validates a document extraction and loads it into
// the archive, resolving person and location names to IDs for the
// join rows.
type IngestionService struct {
	store ports.ArchiveStore
}

// NewIngestionService creates a new IngestionService.
func NewIngestionService(store ports.ArchiveStore) *IngestionService {
	return &IngestionService{
		store: store,
	}
}

// Ingest validates and saves a complete document extraction.
// Validation reports every problem before anything is written, so a bad
// payload never leaves a partially loaded artifact behind.
func (s *IngestionService) Ingest(ctx context.Context, doc *entities.DocumentExtraction, opts IngestOptions) (*IngestResult, error) {
	if errs := doc.Validate(); len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.Error()
		}
		return nil, fmt.Errorf("invalid extraction: %s", strings.Join(messages, "; "))
	}

	result := &IngestResult{
		Persons:       len(doc.Persons),
		Locations:     len(doc.Locations),
		ContextChunks: len(doc.ContextChunks),
		Events:        len(doc.Events),
		Milestones:    len(doc.Milestones),
	}

	if opts.DryRun {
		return result, nil
	}

	now := time.Now().UTC()

	artifact := &entities.Artifact{
		ID:              uuid.New().String(),
		Title:           doc.Artifact.Title,
		Author:          doc.Artifact.Author,
		PublicationYear: doc.Artifact.PublicationYear,
		TimePeriodStart: doc.Artifact.TimePeriodStart,
		TimePeriodEnd:   doc.Artifact.TimePeriodEnd,
		CreatedAt:       now,
	}
	if err := s.store.SaveArtifact(ctx, artifact); err != nil {
		return nil, fmt.Errorf("saving artifact: %w", err)
	}
	result.ArtifactID = artifact.ID

	personIDs, err := s.savePersons(ctx, artifact.ID, doc.Persons, now)
	if err != nil {
		return nil, err
	}

	locationIDs, err := s.saveLocations(ctx, artifact.ID, doc.Locations, now)
	if err != nil {
		return nil, err
	}

	chunkIDs, err := s.saveContextChunks(ctx, artifact.ID, doc.ContextChunks, now)
	if err != nil {
		return nil, err
	}

	if err := s.saveEvents(ctx, artifact.ID, doc.Events, personIDs, locationIDs, chunkIDs, now, result); err != nil {
		return nil, err
	}

	if err := s.saveMilestones(ctx, artifact.ID, doc.Milestones, personIDs, locationIDs, now); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *IngestionService) savePersons(ctx context.Context, artifactID string, records []entities.PersonExtraction, now time.Time) (map[string]string, error) {
	ids := make(map[string]string, len(records))
	for _, record := range records {
		person := &entities.Person{
			ID:         uuid.New().String(),
			Name:       record.Name,
			Aliases:    record.Aliases,
			ArtifactID: artifactID,
			BirthYear:  record.BirthYear,
			DeathYear:  record.DeathYear,
			CreatedAt:  now,
		}
		if err := s.store.SavePerson(ctx, person); err != nil {
			return nil, fmt.Errorf("saving person %q: %w", record.Name, err)
		}
		ids[normalizeName(record.Name)] = person.ID
	}
	return ids, nil
}

func (s *IngestionService) saveLocations(ctx context.Context, artifactID string, records []entities.LocationExtraction, now time.Time) (map[string]string, error) {
	ids := make(map[string]string, len(records))
	for _, record := range records {
		location := &entities.Location{
			ID:         uuid.New().String(),
			Name:       record.Name,
			Aliases:    record.Aliases,
			ArtifactID: artifactID,
			Address:    record.Address,
			Latitude:   record.Latitude,
			Longitude:  record.Longitude,
			CreatedAt:  now,
		}
		if err := s.store.SaveLocation(ctx, location); err != nil {
			return nil, fmt.Errorf("saving location %q: %w", record.Name, err)
		}
		ids[normalizeName(record.Name)] = location.ID
	}
	return ids, nil
}

func (s *IngestionService) saveContextChunks(ctx context.Context, artifactID string, records []entities.ContextChunkExtraction, now time.Time) (map[string]string, error) {
	ids := make(map[string]string, len(records))
	for i, record := range records {
		chunk := &entities.ContextChunk{
			ID:           uuid.New().String(),
			ArtifactID:   artifactID,
			ChunkLabel:   record.ChunkLabel,
			PageRange:    record.PageRange,
			Summary:      record.Summary,
			KeyPersons:   record.KeyPersons,
			KeyLocations: record.KeyLocations,
			CreatedAt:    now,
		}
		if err := s.store.SaveContextChunk(ctx, chunk); err != nil {
			return nil, fmt.Errorf("saving context chunk %d: %w", i, err)
		}
		if record.ChunkLabel != "" {
			ids[normalizeName(record.ChunkLabel)] = chunk.ID
		}
	}
	return ids, nil
}

func (s *IngestionService) saveEvents(ctx context.Context, artifactID string, records []entities.EventExtraction, personIDs, locationIDs, chunkIDs map[string]string, now time.Time, result *IngestResult) error {
	for i, record := range records {
		event := &entities.Event{
			ID:          uuid.New().String(),
			Description: record.Description,
			ArtifactID:  artifactID,
			PageRange:   record.PageRange,
			EventType:   record.EventType,
			EventDate:   record.EventDate,
			// Events inserted in order share the ingestion timestamp
			// plus an offset so undated events keep insertion order.
			CreatedAt: now.Add(time.Duration(i) * time.Microsecond),
		}
		if chunkID, ok := chunkIDs[normalizeName(record.ContextLabel)]; ok && record.ContextLabel != "" {
			event.ContextChunkID = &chunkID
		}
		if err := s.store.SaveEvent(ctx, event); err != nil {
			return fmt.Errorf("saving event %d: %w", i, err)
		}

		for _, name := range record.PersonNames {
			personID, ok := personIDs[normalizeName(name)]
			if !ok {
				continue // participant not among extracted persons
			}
			if err := s.store.AddEventParticipant(ctx, event.ID, personID, ""); err != nil {
				return fmt.Errorf("linking participant %q: %w", name, err)
			}
			result.Participants++
		}

		for _, name := range record.LocationNames {
			locationID, ok := locationIDs[normalizeName(name)]
			if !ok {
				continue
			}
			if err := s.store.AddEventVenue(ctx, event.ID, locationID); err != nil {
				return fmt.Errorf("linking venue %q: %w", name, err)
			}
			result.Venues++
		}
	}
	return nil
}

func (s *IngestionService) saveMilestones(ctx context.Context, artifactID string, records []entities.MilestoneExtraction, personIDs, locationIDs map[string]string, now time.Time) error {
	for i, record := range records {
		personID, ok := personIDs[normalizeName(record.PersonName)]
		if !ok {
			continue // milestone subject not among extracted persons
		}

		milestone := &entities.Milestone{
			ID:            uuid.New().String(),
			PersonID:      personID,
			ArtifactID:    artifactID,
			MilestoneType: record.MilestoneType,
			MilestoneDate: record.MilestoneDate,
			Description:   record.Description,
			CreatedAt:     now,
		}
		if err := s.store.SaveMilestone(ctx, milestone); err != nil {
			return fmt.Errorf("saving milestone %d: %w", i, err)
		}

		if record.LocationName != "" {
			if locationID, ok := locationIDs[normalizeName(record.LocationName)]; ok {
				if err := s.store.AddMilestonePlace(ctx, milestone.ID, locationID); err != nil {
					return fmt.Errorf("linking milestone place %q: %w", record.LocationName, err)
				}
			}
		}
	}
	return nil
}

// normalizeName lowercases and trims a name for case-insensitive lookup.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
