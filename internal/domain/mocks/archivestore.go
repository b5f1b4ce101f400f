// Package mocks contains hand-written mocks for the domain ports.
package mocks

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/ersonp/historian/internal/domain/entities"
)

// ParticipantLink is a stored event-person link.
type ParticipantLink struct {
	EventID  string
	PersonID string
	Role     string
}

// VenueLink is a stored event-location link.
type VenueLink struct {
	EventID    string
	LocationID string
}

// PlaceLink is a stored milestone-location link.
type PlaceLink struct {
	MilestoneID string
	LocationID  string
}

// ArchiveStore is an in-memory mock implementation of ports.ArchiveStore.
// Setting Err makes every method fail with it.
type ArchiveStore struct {
	Artifacts  map[string]*entities.Artifact
	Persons    map[string]*entities.Person
	Locations  map[string]*entities.Location
	Chunks     map[string]*entities.ContextChunk
	Events     []entities.Event
	Milestones map[string]*entities.Milestone
	Matches    map[string]*entities.EntityMatch

	Participants []ParticipantLink
	Venues       []VenueLink
	Places       []PlaceLink

	Err error
}

// NewArchiveStore creates a new mock ArchiveStore.
func NewArchiveStore() *ArchiveStore {
	return &ArchiveStore{
		Artifacts:  make(map[string]*entities.Artifact),
		Persons:    make(map[string]*entities.Person),
		Locations:  make(map[string]*entities.Location),
		Chunks:     make(map[string]*entities.ContextChunk),
		Milestones: make(map[string]*entities.Milestone),
		Matches:    make(map[string]*entities.EntityMatch),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *ArchiveStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the database connection.
func (m *ArchiveStore) Close() error {
	return nil
}

// SaveArtifact inserts an artifact.
func (m *ArchiveStore) SaveArtifact(_ context.Context, artifact *entities.Artifact) error {
	if m.Err != nil {
		return m.Err
	}
	m.Artifacts[artifact.ID] = artifact
	return nil
}

// SavePerson inserts a person.
func (m *ArchiveStore) SavePerson(_ context.Context, person *entities.Person) error {
	if m.Err != nil {
		return m.Err
	}
	m.Persons[person.ID] = person
	return nil
}

// SaveLocation inserts a location.
func (m *ArchiveStore) SaveLocation(_ context.Context, location *entities.Location) error {
	if m.Err != nil {
		return m.Err
	}
	m.Locations[location.ID] = location
	return nil
}

// SaveContextChunk inserts a context chunk.
func (m *ArchiveStore) SaveContextChunk(_ context.Context, chunk *entities.ContextChunk) error {
	if m.Err != nil {
		return m.Err
	}
	m.Chunks[chunk.ID] = chunk
	return nil
}

// SaveEvent inserts an event.
func (m *ArchiveStore) SaveEvent(_ context.Context, event *entities.Event) error {
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, *event)
	return nil
}

// SaveMilestone inserts a milestone.
func (m *ArchiveStore) SaveMilestone(_ context.Context, milestone *entities.Milestone) error {
	if m.Err != nil {
		return m.Err
	}
	m.Milestones[milestone.ID] = milestone
	return nil
}

// AddEventParticipant links a person to an event.
func (m *ArchiveStore) AddEventParticipant(_ context.Context, eventID, personID, role string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Participants = append(m.Participants, ParticipantLink{EventID: eventID, PersonID: personID, Role: role})
	return nil
}

// AddEventVenue links a location to an event.
func (m *ArchiveStore) AddEventVenue(_ context.Context, eventID, locationID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Venues = append(m.Venues, VenueLink{EventID: eventID, LocationID: locationID})
	return nil
}

// AddMilestonePlace links a location to a milestone.
func (m *ArchiveStore) AddMilestonePlace(_ context.Context, milestoneID, locationID string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Places = append(m.Places, PlaceLink{MilestoneID: milestoneID, LocationID: locationID})
	return nil
}

// SaveEntityMatch inserts a duplicate-candidate pair.
func (m *ArchiveStore) SaveEntityMatch(_ context.Context, match *entities.EntityMatch) error {
	if m.Err != nil {
		return m.Err
	}
	if match.EntityID1 >= match.EntityID2 {
		return fmt.Errorf("match pair not in canonical order: %s >= %s", match.EntityID1, match.EntityID2)
	}
	m.Matches[match.ID] = match
	return nil
}

// DeleteArtifact deletes an artifact and everything owned by it.
func (m *ArchiveStore) DeleteArtifact(_ context.Context, artifactID string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Artifacts[artifactID]; !ok {
		return fmt.Errorf("artifact not found: %s", artifactID)
	}
	delete(m.Artifacts, artifactID)
	for id, p := range m.Persons {
		if p.ArtifactID == artifactID {
			delete(m.Persons, id)
		}
	}
	for id, l := range m.Locations {
		if l.ArtifactID == artifactID {
			delete(m.Locations, id)
		}
	}
	for id, c := range m.Chunks {
		if c.ArtifactID == artifactID {
			delete(m.Chunks, id)
		}
	}
	kept := m.Events[:0]
	for _, e := range m.Events {
		if e.ArtifactID != artifactID {
			kept = append(kept, e)
		}
	}
	m.Events = kept
	for id, ms := range m.Milestones {
		if ms.ArtifactID == artifactID {
			delete(m.Milestones, id)
		}
	}
	return nil
}

// ListEventsChronological returns events dated-first in date order,
// undated last in insertion order.
func (m *ArchiveStore) ListEventsChronological(_ context.Context) ([]entities.Event, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	events := make([]entities.Event, len(m.Events))
	copy(events, m.Events)
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		switch {
		case a.EventDate == nil && b.EventDate == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.EventDate == nil:
			return false
		case b.EventDate == nil:
			return true
		case *a.EventDate != *b.EventDate:
			return *a.EventDate < *b.EventDate
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
	return events, nil
}

// VenuesByEventIDs returns the lowest-ID linked location per event.
func (m *ArchiveStore) VenuesByEventIDs(_ context.Context, eventIDs []string) (map[string]entities.Location, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	wanted := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = true
	}

	venues := make(map[string]entities.Location)
	for _, link := range m.Venues {
		if !wanted[link.EventID] {
			continue
		}
		location, ok := m.Locations[link.LocationID]
		if !ok {
			continue
		}
		if existing, found := venues[link.EventID]; found && existing.ID <= location.ID {
			continue
		}
		venues[link.EventID] = *location
	}
	return venues, nil
}

// ParticipantsByEventIDs returns all linked persons per event.
func (m *ArchiveStore) ParticipantsByEventIDs(_ context.Context, eventIDs []string) (map[string][]entities.Person, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	wanted := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		wanted[id] = true
	}

	participants := make(map[string][]entities.Person)
	for _, link := range m.Participants {
		if !wanted[link.EventID] {
			continue
		}
		if person, ok := m.Persons[link.PersonID]; ok {
			participants[link.EventID] = append(participants[link.EventID], *person)
		}
	}
	return participants, nil
}

// TableCounts returns per-table row counts.
func (m *ArchiveStore) TableCounts(_ context.Context) (map[string]int, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return map[string]int{
		"artifacts":          len(m.Artifacts),
		"persons":            len(m.Persons),
		"locations":          len(m.Locations),
		"context_chunks":     len(m.Chunks),
		"events":             len(m.Events),
		"milestones":         len(m.Milestones),
		"event_participants": len(m.Participants),
		"event_venues":       len(m.Venues),
		"milestone_places":   len(m.Places),
		"entity_matches":     len(m.Matches),
	}, nil
}

// Dump writes a placeholder dump.
func (m *ArchiveStore) Dump(_ context.Context, w io.Writer) error {
	if m.Err != nil {
		return m.Err
	}
	_, err := io.WriteString(w, "BEGIN TRANSACTION;\nCOMMIT;\n")
	return err
}
