package entities

// The enriched types below mirror the timeline frontend's contract
// exactly: artifact_id is surfaced as book_id, and attributes the store
// does not model (neighborhood, borough, geometry, canonical_id) are
// present with a null value. None of the nullable fields use omitempty.

// EnrichedPerson is a participant entry in an enriched event.
type EnrichedPerson struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases"`
	BookID      string   `json:"book_id"`
	BirthYear   *int     `json:"birth_year"`
	DeathYear   *int     `json:"death_year"`
	CanonicalID *string  `json:"canonical_id"`
}

// EnrichedLocation is the primary venue of an enriched event.
type EnrichedLocation struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	BookID            string   `json:"book_id"`
	NormalizedAddress *string  `json:"normalized_address"`
	Neighborhood      *string  `json:"neighborhood"`
	Borough           *string  `json:"borough"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Geometry          *string  `json:"geometry"`
}

// EnrichedEvent is an event annotated with its primary venue and
// participant list. DatePrecision is "exact" when an event date is
// present and "unknown" otherwise; Year is 0 for undated events.
type EnrichedEvent struct {
	ID            string            `json:"id"`
	Description   string            `json:"description"`
	BookID        string            `json:"book_id"`
	EventDate     *string           `json:"event_date"`
	DatePrecision string            `json:"date_precision"`
	Year          int               `json:"year"`
	Location      *EnrichedLocation `json:"location"`
	People        []EnrichedPerson  `json:"people"`
}

// EnrichPerson shapes a stored person for the frontend contract.
func EnrichPerson(p Person) EnrichedPerson {
	aliases := p.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	return EnrichedPerson{
		ID:        p.ID,
		Name:      p.Name,
		Aliases:   aliases,
		BookID:    p.ArtifactID,
		BirthYear: p.BirthYear,
		DeathYear: p.DeathYear,
	}
}

// EnrichLocation shapes a stored location for the frontend contract,
// mapping the store's address field to normalized_address.
func EnrichLocation(l Location) *EnrichedLocation {
	return &EnrichedLocation{
		ID:                l.ID,
		Name:              l.Name,
		BookID:            l.ArtifactID,
		NormalizedAddress: l.Address,
		Latitude:          l.Latitude,
		Longitude:         l.Longitude,
	}
}
