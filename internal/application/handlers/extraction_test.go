package handlers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ersonp/historian/internal/domain/entities"
	"github.com/ersonp/historian/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionHandler_HandleFile(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts from a source file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chapter.txt")
		require.NoError(t, os.WriteFile(path, []byte("In 1850 a fire swept the Bowery."), 0644))

		extractor := &mocks.Extractor{
			Doc: &entities.DocumentExtraction{
				Artifact: entities.ArtifactExtraction{Title: "Old Bowery Days", Author: "Alvin Harlow"},
				Events:   []entities.EventExtraction{{Description: "a fire swept the Bowery"}},
			},
		}

		doc, err := NewExtractionHandler(extractor).HandleFile(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, "Old Bowery Days", doc.Artifact.Title)
		assert.Len(t, doc.Events, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewExtractionHandler(&mocks.Extractor{}).HandleFile(ctx, "/no/such/chapter.txt")
		require.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.txt")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		_, err := NewExtractionHandler(&mocks.Extractor{}).HandleFile(ctx, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})

	t.Run("extractor failure surfaces", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "chapter.txt")
		require.NoError(t, os.WriteFile(path, []byte("some text"), 0644))

		extractor := &mocks.Extractor{Err: errors.New("rate limited")}
		_, err := NewExtractionHandler(extractor).HandleFile(ctx, path)
		require.Error(t, err)
	})
}
