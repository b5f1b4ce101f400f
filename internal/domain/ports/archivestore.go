// Package ports defines the interfaces between the domain and infrastructure.
package ports

import (
	"context"
	"io"

	"github.com/ersonp/historian/internal/domain/entities"
)

// ArchiveStore defines the interface for the relational archive.
// It enforces referential integrity: deleting an artifact removes all
// entities extracted from it, and deleting a context chunk clears the
// chunk reference on events that pointed to it.
type ArchiveStore interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// Write operations (used by ingestion; the HTTP surface is read-only)

	// SaveArtifact inserts an artifact.
	SaveArtifact(ctx context.Context, artifact *entities.Artifact) error

	// SavePerson inserts a person.
	SavePerson(ctx context.Context, person *entities.Person) error

	// SaveLocation inserts a location.
	SaveLocation(ctx context.Context, location *entities.Location) error

	// SaveContextChunk inserts a context chunk.
	SaveContextChunk(ctx context.Context, chunk *entities.ContextChunk) error

	// SaveEvent inserts an event.
	SaveEvent(ctx context.Context, event *entities.Event) error

	// SaveMilestone inserts a milestone.
	SaveMilestone(ctx context.Context, milestone *entities.Milestone) error

	// AddEventParticipant links a person to an event with an optional role.
	AddEventParticipant(ctx context.Context, eventID, personID, role string) error

	// AddEventVenue links a location to an event.
	AddEventVenue(ctx context.Context, eventID, locationID string) error

	// AddMilestonePlace links a location to a milestone.
	AddMilestonePlace(ctx context.Context, milestoneID, locationID string) error

	// SaveEntityMatch inserts a duplicate-candidate pair. The pair must
	// be in canonical order (EntityID1 < EntityID2).
	SaveEntityMatch(ctx context.Context, match *entities.EntityMatch) error

	// DeleteArtifact deletes an artifact and, through cascade rules,
	// everything extracted from it.
	DeleteArtifact(ctx context.Context, artifactID string) error

	// Read operations

	// ListEventsChronological returns every event, dated events first in
	// date order, undated events last in insertion order.
	ListEventsChronological(ctx context.Context) ([]entities.Event, error)

	// VenuesByEventIDs returns the primary venue for each of the given
	// events that has one, keyed by event ID. When an event links
	// several locations the one with the lowest ID is chosen.
	VenuesByEventIDs(ctx context.Context, eventIDs []string) (map[string]entities.Location, error)

	// ParticipantsByEventIDs returns all participants for each of the
	// given events, keyed by event ID.
	ParticipantsByEventIDs(ctx context.Context, eventIDs []string) (map[string][]entities.Person, error)

	// Administrative operations

	// TableCounts returns per-table row counts.
	TableCounts(ctx context.Context) (map[string]int, error)

	// Dump writes a portable SQL text dump of the whole archive.
	Dump(ctx context.Context, w io.Writer) error
}
