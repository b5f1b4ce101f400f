package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityMatch(t *testing.T) {
	t.Run("canonicalizes pair order", func(t *testing.T) {
		match, err := NewEntityMatch(MatchEntityPerson, "person-b", "person-a", 0.9, nil)
		require.NoError(t, err)
		assert.Equal(t, "person-a", match.EntityID1)
		assert.Equal(t, "person-b", match.EntityID2)
		assert.Equal(t, MatchPending, match.Status)
		assert.NotNil(t, match.MatchingSignals)
	})

	t.Run("already canonical pair unchanged", func(t *testing.T) {
		match, err := NewEntityMatch(MatchEntityLocation, "loc-a", "loc-b", 0.5, map[string]any{"name": 0.8})
		require.NoError(t, err)
		assert.Equal(t, "loc-a", match.EntityID1)
		assert.Equal(t, "loc-b", match.EntityID2)
	})

	t.Run("rejects identical entities", func(t *testing.T) {
		_, err := NewEntityMatch(MatchEntityPerson, "same", "same", 0.9, nil)
		require.Error(t, err)
	})

	t.Run("rejects invalid entity type", func(t *testing.T) {
		_, err := NewEntityMatch("artifact", "a", "b", 0.9, nil)
		require.Error(t, err)
	})

	t.Run("rejects out-of-range score", func(t *testing.T) {
		_, err := NewEntityMatch(MatchEntityPerson, "a", "b", 1.5, nil)
		require.Error(t, err)

		_, err = NewEntityMatch(MatchEntityPerson, "a", "b", -0.1, nil)
		require.Error(t, err)
	})

	t.Run("boundary scores accepted", func(t *testing.T) {
		_, err := NewEntityMatch(MatchEntityPerson, "a", "b", 0, nil)
		assert.NoError(t, err)

		_, err = NewEntityMatch(MatchEntityPerson, "a", "b", 1, nil)
		assert.NoError(t, err)
	})
}
