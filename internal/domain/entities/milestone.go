package entities

import "time"

// Milestone represents a life event (birth, death, marriage, ...) of a
// person, extracted from an artifact.
type Milestone struct {
	ID            string    `json:"id"`
	PersonID      string    `json:"person_id"`
	ArtifactID    string    `json:"artifact_id"`
	MilestoneType string    `json:"milestone_type"`
	MilestoneDate *string   `json:"milestone_date,omitempty"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
