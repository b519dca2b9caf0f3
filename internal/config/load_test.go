// internal/config/load_test.go
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/reelroll/internal/catalog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 8080

[database]
driver = "postgres"
dsn = "postgres://localhost/imdb?sslmode=disable"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/imdb?sslmode=disable", cfg.Database.Source())
	assert.Empty(t, cfg.Database.Path, "sqlite path default only applies to sqlite")
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
api_key = "${REELROLL_MISSING_KEY}"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REELROLL_MISSING_KEY")

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, path, cfgErr.Path)
	assert.Equal(t, []string{"REELROLL_MISSING_KEY"}, cfgErr.Missing)
}

func TestLoad_RequiredEnvVarMessage(t *testing.T) {
	path := writeConfig(t, `
[youtube]
api_key = "${REELROLL_YT_KEY:?set a YouTube Data API key}"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REELROLL_YT_KEY: set a YouTube Data API key")
}

func TestLoad_ValidationError(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 99999
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_ParseError(t *testing.T) {
	path := writeConfig(t, `[server`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parsing config"), "got %v", err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, ``)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8585, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "./data/reelroll.db", cfg.Database.Source())
	assert.Equal(t, 32, cfg.Catalog.DefaultPageSize)
	assert.Equal(t, 100, cfg.Catalog.MaxPageSize)
	assert.Equal(t, "rating", cfg.Catalog.DefaultSort)
	assert.Equal(t, 8*time.Second, cfg.Enrichment.Timeout)
	assert.Equal(t, 10*time.Minute, cfg.Enrichment.PruneInterval)
	assert.Nil(t, cfg.TMDB)
	assert.Nil(t, cfg.YouTube)
}

func TestLoadWithoutValidation(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 99999

[tmdb]
api_key = "${REELROLL_MISSING_KEY}"
`)

	cfg, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, 99999, cfg.Server.Port)
	assert.Equal(t, "${REELROLL_MISSING_KEY}", cfg.TMDB.APIKey)
}

func TestLoad_EnvVarDefault(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "${REELROLL_OPTIONAL_HOST:-localhost}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server.Host)
}

func TestLoad_Filters(t *testing.T) {
	path := writeConfig(t, `
[filters]
min_runtime = 75
exclude_adult = true
exclude_types = ["short", "video"]
exclude_genres = ["Animation"]
min_votes = 500
min_rating = 6.5
exclude_languages = ["hi"]
exclude_directors = ["nm0000001"]

[enrichment]
timeout = "3s"
cache_ttl = "1h"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 75, cfg.Filters.MinRuntime)
	assert.InDelta(t, 6.5, cfg.Filters.MinRating, 0.0001)
	assert.Equal(t, []string{"hi"}, cfg.Filters.ExcludeLanguages)
	assert.Equal(t, 3*time.Second, cfg.Enrichment.Timeout)
	assert.Equal(t, time.Hour, cfg.Enrichment.CacheTTL)

	spec := cfg.Filters.Spec(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []catalog.TitleType{catalog.TypeShort, catalog.TypeVideo}, spec.ExcludeTypes)
	assert.Equal(t, 500, spec.MinVotes)
	assert.Equal(t, []string{"nm0000001"}, spec.ExcludeDirectors)
	assert.Zero(t, spec.MaxYear)
}
