package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "0.0.0.0", cfg.API.Host)
	assert.Equal(t, 8000, cfg.API.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.API.Addr())
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoad(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "historian init")
	})

	t.Run("defaults applied over partial config", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "api:\n  port: 9000\n")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 9000, cfg.API.Port)
		assert.Equal(t, "0.0.0.0", cfg.API.Host, "unset fields keep defaults")
		assert.Equal(t, "openai", cfg.LLM.Provider)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "api: [not: valid\n")

		_, err := Load(dir)
		require.Error(t, err)
	})

	t.Run("env var fills missing api key", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "llm:\n  model: gpt-4o\n")
		t.Setenv("OPENAI_API_KEY", "sk-from-env")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
	})

	t.Run("config api key wins over env", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "llm:\n  api_key: sk-from-file\n")
		t.Setenv("OPENAI_API_KEY", "sk-from-env")

		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "sk-from-file", cfg.LLM.APIKey)
	})
}

func TestDatabasePath(t *testing.T) {
	t.Run("default location", func(t *testing.T) {
		cfg := Default()
		assert.Equal(t, filepath.Join("/base", ".historian", "historian.db"), cfg.DatabasePath("/base"))
	})

	t.Run("configured override", func(t *testing.T) {
		cfg := Default()
		cfg.SQLite.Path = "/elsewhere/archive.db"
		assert.Equal(t, "/elsewhere/archive.db", cfg.DatabasePath("/base"))
	})
}

func TestWriteDefault(t *testing.T) {
	t.Run("creates config", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, WriteDefault(dir))
		assert.True(t, Exists(dir))

		// The written file parses back to the defaults.
		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, 8000, cfg.API.Port)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, WriteDefault(dir))

		err := WriteDefault(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, Exists(dir))
	require.NoError(t, WriteDefault(dir))
	assert.True(t, Exists(dir))
}

func writeConfig(t *testing.T, basePath, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(ConfigDir(basePath), 0755))
	require.NoError(t, os.WriteFile(ConfigFilePath(basePath), []byte(content), 0644))
}
