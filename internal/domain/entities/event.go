package entities

import "time"

// Event represents something that happened, extracted from an artifact.
// EventDate is an ISO-style string ("1850" or "1850-05-01") and may be
// absent. ContextChunkID is cleared when the referenced chunk is deleted.
type Event struct {
	ID             string    `json:"id"`
	Description    string    `json:"description"`
	ArtifactID     string    `json:"artifact_id"`
	PageRange      PageRange `json:"page_range"`
	ContextChunkID *string   `json:"context_chunk_id,omitempty"`
	EventType      string    `json:"event_type,omitempty"`
	EventDate      *string   `json:"event_date,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
