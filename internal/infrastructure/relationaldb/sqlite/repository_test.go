package sqlite

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ersonp/historian/internal/domain/entities"
	"github.com/ersonp/historian/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

// seedArtifact inserts an artifact so child rows satisfy foreign keys.
func seedArtifact(t *testing.T, repo *Repository, id string) {
	t.Helper()
	err := repo.SaveArtifact(context.Background(), &entities.Artifact{
		ID:        id,
		Title:     "Old Bowery Days",
		Author:    "Alvin Harlow",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	// Verify tables exist
	for _, table := range tableNames {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	// Should not error when called again
	err := repo.EnsureSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_ListEventsChronological(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seedArtifact(t, repo, "artifact-1")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	date1850 := "1850-05-01"
	date1848 := "1848"

	events := []entities.Event{
		{ID: "event-undated-b", Description: "undated later", ArtifactID: "artifact-1", CreatedAt: base.Add(3 * time.Microsecond)},
		{ID: "event-1850", Description: "dated 1850", ArtifactID: "artifact-1", EventDate: &date1850, CreatedAt: base.Add(2 * time.Microsecond)},
		{ID: "event-undated-a", Description: "undated earlier", ArtifactID: "artifact-1", CreatedAt: base.Add(1 * time.Microsecond)},
		{ID: "event-1848", Description: "dated 1848", ArtifactID: "artifact-1", EventDate: &date1848, CreatedAt: base},
	}
	for i := range events {
		require.NoError(t, repo.SaveEvent(ctx, &events[i]))
	}

	got, err := repo.ListEventsChronological(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)

	// Dated events first in date order, undated last in insertion order.
	assert.Equal(t, "event-1848", got[0].ID)
	assert.Equal(t, "event-1850", got[1].ID)
	assert.Equal(t, "event-undated-a", got[2].ID)
	assert.Equal(t, "event-undated-b", got[3].ID)

	assert.Nil(t, got[2].EventDate)
	require.NotNil(t, got[1].EventDate)
	assert.Equal(t, "1850-05-01", *got[1].EventDate)
}

func TestRepository_SaveEvent_InvalidPageRange(t *testing.T) {
	repo := setupTestRepo(t)
	seedArtifact(t, repo, "artifact-1")

	event := &entities.Event{
		ID:          "event-1",
		Description: "bad range",
		ArtifactID:  "artifact-1",
		PageRange:   entities.PageRange{10, 2},
	}
	err := repo.SaveEvent(context.Background(), event)
	require.ErrorIs(t, err, entities.ErrInvalidPageRange)
}

func TestRepository_DeleteArtifact(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("cascades to children", func(t *testing.T) {
		seedArtifact(t, repo, "artifact-1")

		require.NoError(t, repo.SavePerson(ctx, &entities.Person{
			ID: "person-1", Name: "Boss Tweed", ArtifactID: "artifact-1",
		}))
		require.NoError(t, repo.SaveLocation(ctx, &entities.Location{
			ID: "location-1", Name: "Tammany Hall", ArtifactID: "artifact-1",
		}))
		require.NoError(t, repo.SaveContextChunk(ctx, &entities.ContextChunk{
			ID: "chunk-1", ArtifactID: "artifact-1", ChunkLabel: "Chapter 1",
		}))
		chunkID := "chunk-1"
		require.NoError(t, repo.SaveEvent(ctx, &entities.Event{
			ID: "event-1", Description: "a riot", ArtifactID: "artifact-1", ContextChunkID: &chunkID,
		}))
		require.NoError(t, repo.SaveMilestone(ctx, &entities.Milestone{
			ID: "milestone-1", PersonID: "person-1", ArtifactID: "artifact-1", MilestoneType: "death",
		}))
		require.NoError(t, repo.AddEventParticipant(ctx, "event-1", "person-1", "witness"))
		require.NoError(t, repo.AddEventVenue(ctx, "event-1", "location-1"))
		require.NoError(t, repo.AddMilestonePlace(ctx, "milestone-1", "location-1"))

		require.NoError(t, repo.DeleteArtifact(ctx, "artifact-1"))

		counts, err := repo.TableCounts(ctx)
		require.NoError(t, err)
		for _, table := range tableNames {
			if table == "entity_matches" {
				continue
			}
			assert.Equal(t, 0, counts[table], "table %s should be empty after cascade", table)
		}
	})

	t.Run("not found", func(t *testing.T) {
		err := repo.DeleteArtifact(ctx, "no-such-artifact")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestRepository_ChunkDelete_SetsEventNull(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seedArtifact(t, repo, "artifact-1")

	require.NoError(t, repo.SaveContextChunk(ctx, &entities.ContextChunk{
		ID: "chunk-1", ArtifactID: "artifact-1",
	}))
	chunkID := "chunk-1"
	require.NoError(t, repo.SaveEvent(ctx, &entities.Event{
		ID: "event-1", Description: "a fire", ArtifactID: "artifact-1", ContextChunkID: &chunkID,
	}))

	_, err := repo.db.ExecContext(ctx, `DELETE FROM context_chunks WHERE id = ?`, "chunk-1")
	require.NoError(t, err)

	events, err := repo.ListEventsChronological(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].ContextChunkID, "event should survive with context_chunk_id cleared")
}

func TestRepository_VenuesByEventIDs(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seedArtifact(t, repo, "artifact-1")

	require.NoError(t, repo.SaveLocation(ctx, &entities.Location{
		ID: "location-a", Name: "Five Points", ArtifactID: "artifact-1",
	}))
	require.NoError(t, repo.SaveLocation(ctx, &entities.Location{
		ID: "location-b", Name: "The Bowery", ArtifactID: "artifact-1",
	}))
	require.NoError(t, repo.SaveEvent(ctx, &entities.Event{
		ID: "event-1", Description: "two venues", ArtifactID: "artifact-1",
	}))
	require.NoError(t, repo.SaveEvent(ctx, &entities.Event{
		ID: "event-2", Description: "no venue", ArtifactID: "artifact-1",
	}))

	// event-1 has two venues; the lowest location ID wins.
	require.NoError(t, repo.AddEventVenue(ctx, "event-1", "location-b"))
	require.NoError(t, repo.AddEventVenue(ctx, "event-1", "location-a"))

	venues, err := repo.VenuesByEventIDs(ctx, []string{"event-1", "event-2"})
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, "location-a", venues["event-1"].ID)
	assert.Equal(t, "Five Points", venues["event-1"].Name)

	_, ok := venues["event-2"]
	assert.False(t, ok)

	t.Run("empty input", func(t *testing.T) {
		venues, err := repo.VenuesByEventIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, venues)
	})
}

func TestRepository_ParticipantsByEventIDs(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seedArtifact(t, repo, "artifact-1")

	birth := 1823
	require.NoError(t, repo.SavePerson(ctx, &entities.Person{
		ID: "person-a", Name: "Boss Tweed", Aliases: []string{"William M. Tweed"},
		ArtifactID: "artifact-1", BirthYear: &birth,
	}))
	require.NoError(t, repo.SavePerson(ctx, &entities.Person{
		ID: "person-b", Name: "Mose Humphrey", ArtifactID: "artifact-1",
	}))
	require.NoError(t, repo.SaveEvent(ctx, &entities.Event{
		ID: "event-1", Description: "a brawl", ArtifactID: "artifact-1",
	}))
	require.NoError(t, repo.AddEventParticipant(ctx, "event-1", "person-a", ""))
	require.NoError(t, repo.AddEventParticipant(ctx, "event-1", "person-b", "instigator"))

	// Duplicate link is ignored, not an error.
	require.NoError(t, repo.AddEventParticipant(ctx, "event-1", "person-a", "again"))

	participants, err := repo.ParticipantsByEventIDs(ctx, []string{"event-1"})
	require.NoError(t, err)
	require.Len(t, participants["event-1"], 2)

	first := participants["event-1"][0]
	assert.Equal(t, "person-a", first.ID)
	assert.Equal(t, []string{"William M. Tweed"}, first.Aliases)
	require.NotNil(t, first.BirthYear)
	assert.Equal(t, 1823, *first.BirthYear)
	assert.Nil(t, first.DeathYear)
}

func TestRepository_MalformedAliasesTolerated(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seedArtifact(t, repo, "artifact-1")

	// Rows written by other tools may carry junk in the aliases column.
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO persons (id, name, aliases, artifact_id, created_at)
		VALUES ('person-1', 'Unknown Sailor', 'not json{', 'artifact-1', '2024-01-01T00:00:00.000000000Z')
	`)
	require.NoError(t, err)

	require.NoError(t, repo.SaveEvent(ctx, &entities.Event{
		ID: "event-1", Description: "shore leave", ArtifactID: "artifact-1",
	}))
	require.NoError(t, repo.AddEventParticipant(ctx, "event-1", "person-1", ""))

	participants, err := repo.ParticipantsByEventIDs(ctx, []string{"event-1"})
	require.NoError(t, err)
	require.Len(t, participants["event-1"], 1)
	assert.Equal(t, []string{}, participants["event-1"][0].Aliases)
}

func TestRepository_SaveEntityMatch(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	t.Run("saves canonical pair", func(t *testing.T) {
		match, err := entities.NewEntityMatch(entities.MatchEntityPerson, "person-b", "person-a", 0.92, map[string]any{"name": 0.9})
		require.NoError(t, err)

		require.NoError(t, repo.SaveEntityMatch(ctx, match))

		counts, err := repo.TableCounts(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, counts["entity_matches"])
	})

	t.Run("rejects non-canonical pair", func(t *testing.T) {
		match := &entities.EntityMatch{
			ID:         "match-bad",
			EntityType: entities.MatchEntityPerson,
			EntityID1:  "person-z",
			EntityID2:  "person-a",
			Status:     entities.MatchPending,
			CreatedAt:  time.Now(),
		}
		err := repo.SaveEntityMatch(ctx, match)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "canonical order")
	})

	t.Run("schema check rejects raw non-canonical insert", func(t *testing.T) {
		_, err := repo.db.ExecContext(ctx, `
			INSERT INTO entity_matches (id, entity_type, entity_id_1, entity_id_2, similarity_score, status)
			VALUES ('match-raw', 'person', 'person-z', 'person-a', 0.5, 'pending')
		`)
		require.Error(t, err)
	})
}

func TestRepository_TableCounts(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seedArtifact(t, repo, "artifact-1")

	require.NoError(t, repo.SavePerson(ctx, &entities.Person{
		ID: "person-1", Name: "Boss Tweed", ArtifactID: "artifact-1",
	}))

	counts, err := repo.TableCounts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, len(tableNames))
	assert.Equal(t, 1, counts["artifacts"])
	assert.Equal(t, 1, counts["persons"])
	assert.Equal(t, 0, counts["events"])
}

func TestRepository_Dump(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seedArtifact(t, repo, "artifact-1")

	require.NoError(t, repo.SavePerson(ctx, &entities.Person{
		ID: "person-1", Name: "O'Brien", Aliases: []string{"Paddy"}, ArtifactID: "artifact-1",
	}))

	var buf bytes.Buffer
	require.NoError(t, repo.Dump(ctx, &buf))
	dump := buf.String()

	assert.Contains(t, dump, "BEGIN TRANSACTION;")
	assert.Contains(t, dump, "COMMIT;")
	assert.Contains(t, dump, "CREATE TABLE")
	assert.Contains(t, dump, "INSERT INTO artifacts")
	// Single quotes in values must be escaped.
	assert.Contains(t, dump, "'O''Brien'")
}

func TestFormatTime_FixedWidth(t *testing.T) {
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2024, 1, 1, 0, 0, 0, 500, time.UTC)

	a := formatTime(early)
	b := formatTime(later)

	assert.Len(t, a, len(b), "timestamps must be fixed width")
	assert.Less(t, a, b, "lexical order must match chronological order")

	parsed := parseTime(a)
	assert.True(t, parsed.Equal(early))
}
