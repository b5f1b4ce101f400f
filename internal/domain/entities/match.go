package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MatchStatus represents the review state of a duplicate-candidate pair.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchMerged   MatchStatus = "merged"
	MatchRejected MatchStatus = "rejected"
)

// Entity types that can appear in a match pair.
const (
	MatchEntityPerson   = "person"
	MatchEntityLocation = "location"
)

// EntityMatch is a candidate duplicate pair of persons or locations.
// The pair is stored in canonical order (EntityID1 < EntityID2) so the
// same pair can never exist in both orders.
type EntityMatch struct {
	ID              string         `json:"id"`
	EntityType      string         `json:"entity_type"`
	EntityID1       string         `json:"entity_id_1"`
	EntityID2       string         `json:"entity_id_2"`
	SimilarityScore float64        `json:"similarity_score"`
	MatchingSignals map[string]any `json:"matching_signals"`
	Status          MatchStatus    `json:"status"`
	ReviewedAt      *time.Time     `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// NewEntityMatch builds a pending match, canonicalizing the pair order.
func NewEntityMatch(entityType, idA, idB string, score float64, signals map[string]any) (*EntityMatch, error) {
	if entityType != MatchEntityPerson && entityType != MatchEntityLocation {
		return nil, fmt.Errorf("invalid entity type: %q", entityType)
	}
	if idA == idB {
		return nil, fmt.Errorf("match pair must reference two distinct entities: %q", idA)
	}
	if score < 0 || score > 1 {
		return nil, fmt.Errorf("similarity score must be in [0, 1]: %v", score)
	}

	if idA > idB {
		idA, idB = idB, idA
	}

	if signals == nil {
		signals = map[string]any{}
	}

	return &EntityMatch{
		ID:              uuid.New().String(),
		EntityType:      entityType,
		EntityID1:       idA,
		EntityID2:       idB,
		SimilarityScore: score,
		MatchingSignals: signals,
		Status:          MatchPending,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
