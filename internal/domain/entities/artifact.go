// Package entities contains core domain data structures.
package entities

import "time"

// Artifact represents a source document (e.g. a book) from which
// persons, locations, events and milestones are extracted.
type Artifact struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	PublicationYear *int      `json:"publication_year,omitempty"`
	TimePeriodStart *int      `json:"time_period_start,omitempty"`
	TimePeriodEnd   *int      `json:"time_period_end,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
