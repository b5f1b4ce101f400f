package entities

import (
	"encoding/json"
	"time"
)

// Person represents a historical person mentioned in an artifact.
type Person struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Aliases    []string  `json:"aliases"`
	ArtifactID string    `json:"artifact_id"`
	BirthYear  *int      `json:"birth_year,omitempty"`
	DeathYear  *int      `json:"death_year,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ParseAliases decodes a JSON-encoded aliases column. Empty, malformed,
// or non-array content yields an empty list rather than an error.
func ParseAliases(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var aliases []string
	if err := json.Unmarshal([]byte(raw), &aliases); err != nil {
		return []string{}
	}
	if aliases == nil {
		return []string{}
	}
	return aliases
}

// EncodeAliases encodes an alias list for storage. A nil list is
// stored as an empty JSON array.
func EncodeAliases(aliases []string) string {
	if aliases == nil {
		aliases = []string{}
	}
	data, err := json.Marshal(aliases)
	if err != nil {
		return "[]"
	}
	return string(data)
}
