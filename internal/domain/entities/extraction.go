package entities

import "fmt"

// Extraction records are the shape an extraction run produces for one
// source document, before anything is assigned an ID or persisted.
// Validate reports every problem instead of stopping at the first so a
// caller can surface all of them at once.

// ValidationError describes a single invalid field in an extraction record.
type ValidationError struct {
	Record  string // e.g. "events[2]"
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Record, e.Field, e.Message)
}

// ArtifactExtraction describes the source document itself.
type ArtifactExtraction struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear *int   `json:"publication_year,omitempty"`
	TimePeriodStart *int   `json:"time_period_start,omitempty"`
	TimePeriodEnd   *int   `json:"time_period_end,omitempty"`
}

// PersonExtraction is an extracted person record.
type PersonExtraction struct {
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases,omitempty"`
	BirthYear *int     `json:"birth_year,omitempty"`
	DeathYear *int     `json:"death_year,omitempty"`
}

// LocationExtraction is an extracted location record.
type LocationExtraction struct {
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases,omitempty"`
	Address   *string  `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// ContextChunkExtraction is a summarized span of the document.
type ContextChunkExtraction struct {
	ChunkLabel   string    `json:"chunk_label,omitempty"`
	PageRange    PageRange `json:"page_range,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	KeyPersons   []string  `json:"key_persons,omitempty"`
	KeyLocations []string  `json:"key_locations,omitempty"`
}

// EventExtraction is an extracted event record. Participants and venues
// are referenced by name and resolved to IDs during ingestion.
type EventExtraction struct {
	Description   string    `json:"description"`
	PageRange     PageRange `json:"page_range,omitempty"`
	EventType     string    `json:"event_type,omitempty"`
	ContextLabel  string    `json:"context_label,omitempty"`
	EventDate     *string   `json:"event_date,omitempty"`
	PersonNames   []string  `json:"person_names,omitempty"`
	LocationNames []string  `json:"location_names,omitempty"`
}

// MilestoneExtraction is an extracted life-event record.
type MilestoneExtraction struct {
	PersonName    string  `json:"person_name"`
	MilestoneType string  `json:"milestone_type"`
	MilestoneDate *string `json:"milestone_date,omitempty"`
	Description   string  `json:"description,omitempty"`
	LocationName  string  `json:"location_name,omitempty"`
}

// DocumentExtraction is the complete extraction from one source document.
type DocumentExtraction struct {
	Artifact      ArtifactExtraction       `json:"artifact"`
	Persons       []PersonExtraction       `json:"persons,omitempty"`
	Locations     []LocationExtraction     `json:"locations,omitempty"`
	ContextChunks []ContextChunkExtraction `json:"context_chunks,omitempty"`
	Events        []EventExtraction        `json:"events,omitempty"`
	Milestones    []MilestoneExtraction    `json:"milestones,omitempty"`
}

// Validate checks every record and returns all problems found.
func (d *DocumentExtraction) Validate() []ValidationError {
	var errs []ValidationError

	if d.Artifact.Title == "" {
		errs = append(errs, ValidationError{Record: "artifact", Field: "title", Message: "is required"})
	}
	if d.Artifact.Author == "" {
		errs = append(errs, ValidationError{Record: "artifact", Field: "author", Message: "is required"})
	}

	for i, p := range d.Persons {
		if p.Name == "" {
			errs = append(errs, ValidationError{Record: fmt.Sprintf("persons[%d]", i), Field: "name", Message: "is required"})
		}
	}

	for i, l := range d.Locations {
		if l.Name == "" {
			errs = append(errs, ValidationError{Record: fmt.Sprintf("locations[%d]", i), Field: "name", Message: "is required"})
		}
	}

	for i, c := range d.ContextChunks {
		if err := c.PageRange.Validate(); err != nil {
			errs = append(errs, ValidationError{Record: fmt.Sprintf("context_chunks[%d]", i), Field: "page_range", Message: err.Error()})
		}
	}

	for i, e := range d.Events {
		record := fmt.Sprintf("events[%d]", i)
		if e.Description == "" {
			errs = append(errs, ValidationError{Record: record, Field: "description", Message: "is required"})
		}
		if err := e.PageRange.Validate(); err != nil {
			errs = append(errs, ValidationError{Record: record, Field: "page_range", Message: err.Error()})
		}
	}

	for i, m := range d.Milestones {
		record := fmt.Sprintf("milestones[%d]", i)
		if m.PersonName == "" {
			errs = append(errs, ValidationError{Record: record, Field: "person_name", Message: "is required"})
		}
		if m.MilestoneType == "" {
			errs = append(errs, ValidationError{Record: record, Field: "milestone_type", Message: "is required"})
		}
	}

	return errs
}
