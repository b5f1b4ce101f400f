package entities

import (
	"errors"
	"time"
)

// ErrInvalidPageRange is returned when a page range is not a
// [start, end] pair with start <= end.
var ErrInvalidPageRange = errors.New("page_range must be [start, end] with start <= end")

// PageRange is a [start, end] page span within an artifact.
// An empty range means the span is unknown.
type PageRange []int

// Validate checks the range invariant. Empty ranges are valid.
func (r PageRange) Validate() error {
	if len(r) == 0 {
		return nil
	}
	if len(r) != 2 || r[0] > r[1] {
		return ErrInvalidPageRange
	}
	return nil
}

// ContextChunk is a high-level snapshot of a span of an artifact,
// summarizing which persons and locations appear in it.
type ContextChunk struct {
	ID           string    `json:"id"`
	ArtifactID   string    `json:"artifact_id"`
	ChunkLabel   string    `json:"chunk_label,omitempty"`
	PageRange    PageRange `json:"page_range"`
	Summary      string    `json:"summary,omitempty"`
	KeyPersons   []string  `json:"key_persons"`
	KeyLocations []string  `json:"key_locations"`
	CreatedAt    time.Time `json:"created_at"`
}
