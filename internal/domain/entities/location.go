package entities

import "time"

// Location represents a historical place mentioned in an artifact.
// Latitude and longitude are optional and not bounds-checked.
type Location struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Aliases    []string  `json:"aliases"`
	ArtifactID string    `json:"artifact_id"`
	Address    *string   `json:"address,omitempty"`
	Latitude   *float64  `json:"latitude,omitempty"`
	Longitude  *float64  `json:"longitude,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
