package main

import (
	"bytes"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newListCmd returns a fresh command with the movies flags and captured output.
func newListCmd(t *testing.T, args ...string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{Use: "movies"}
	addPageFlags(cmd)
	addFacetFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))

	var out bytes.Buffer
	cmd.SetOut(&out)
	return cmd, &out
}

func TestQueryFromFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want url.Values
	}{
		{"no flags", nil, url.Values{}},
		{"first page", []string{"--page", "1"}, url.Values{"page": {"0"}}},
		{"third page", []string{"--page=3", "--limit=5"}, url.Values{"page": {"2"}, "limit": {"5"}}},
		{"sort and facets", []string{"--sort", "year", "--year", "1999", "--category", "Horror"},
			url.Values{"sort": {"year"}, "year": {"1999"}, "category": {"Horror"}}},
		{"overrides", []string{"--min-votes", "0", "--min-rating", "7.5", "--exclude-genres", "Drama,Romance", "--exclude-adult=false"},
			url.Values{"min_votes": {"0"}, "min_rating": {"7.5"}, "exclude_genres": {"Drama,Romance"}, "exclude_adult": {"false"}}},
		{"runtime and max year", []string{"--min-runtime", "90", "--max-year", "2010"},
			url.Values{"min_runtime": {"90"}, "max_year": {"2010"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := newListCmd(t, tt.args...)
			got, err := queryFromFlags(cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQueryFromFlags_InvalidPage(t *testing.T) {
	cmd, _ := newListCmd(t, "--page", "0")
	_, err := queryFromFlags(cmd)
	assert.ErrorContains(t, err, "--page must be at least 1")
}

func TestQueryFromFlags_FacetsOnly(t *testing.T) {
	cmd := &cobra.Command{Use: "random"}
	addFacetFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--year", "2001"}))

	got, err := queryFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, url.Values{"year": {"2001"}}, got)
}

func TestRunMovies_Table(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/movies").
		ExpectQuery(url.Values{"page": {"1"}}).
		RespondJSON([]Movie{
			{ID: "tt0113277", PrimaryTitle: "Heat", StartYear: intPtr(1995), RuntimeMinutes: intPtr(170),
				Genres: []string{"Crime", "Drama"}, AverageRating: floatPtr(8.3)},
			{ID: "tt0000002", PrimaryTitle: "Unrated"},
		}).
		Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	cmd, out := newListCmd(t, "--page", "2")
	require.NoError(t, runMoviesCmd(cmd, nil))

	assert.Contains(t, out.String(), "Heat")
	assert.Contains(t, out.String(), "8.3")
	assert.Contains(t, out.String(), "170m")
	assert.Contains(t, out.String(), "Crime, Drama")
	assert.Contains(t, out.String(), "Unrated")
}

func TestRunMovies_Empty(t *testing.T) {
	srv := newMockServer(t).RespondJSON([]Movie{}).Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	cmd, out := newListCmd(t)
	require.NoError(t, runMoviesCmd(cmd, nil))
	assert.Equal(t, "No movies found.\n", out.String())
}

func TestRunMovies_JSON(t *testing.T) {
	srv := newMockServer(t).RespondJSON([]Movie{{ID: "tt1", PrimaryTitle: "A"}}).Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	old := jsonOutput
	jsonOutput = true
	defer func() { jsonOutput = old }()

	cmd, out := newListCmd(t)
	require.NoError(t, runMoviesCmd(cmd, nil))
	assert.Contains(t, out.String(), `"primaryTitle": "A"`)
}

func TestRunRandom_NoEligible(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/movies/random").
		RespondError(404, "NO_ELIGIBLE_TITLES", "No titles match the current filters").
		Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	cmd := &cobra.Command{Use: "random"}
	addFacetFlags(cmd)
	err := runRandomCmd(cmd, nil)
	assert.EqualError(t, err, "no movies match the current filters")
}

func TestRunShow(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/movies/tt0113277").
		RespondJSON(Movie{ID: "tt0113277", PrimaryTitle: "Heat", OriginalTitle: "Heat", StartYear: intPtr(1995)}).
		Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runShowCmd(cmd, []string{"tt0113277"}))

	assert.Contains(t, out.String(), "Heat (1995)")
	assert.NotContains(t, out.String(), "Original:")
	assert.Contains(t, out.String(), "Runtime:  -")
}

func TestRunShow_NotFound(t *testing.T) {
	srv := newMockServer(t).RespondError(404, "NOT_FOUND", "Movie not found").Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	err := runShowCmd(&cobra.Command{}, []string{"tt9"})
	assert.EqualError(t, err, "movie tt9 not found")
}

func TestRunEnrich(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/enrich").
		ExpectQuery(url.Values{"title": {"The Matrix"}}).
		RespondJSON(EnrichmentResponse{
			Title:       "The Matrix",
			TrailerURL:  "https://www.youtube.com/embed/abc",
			Description: "A hacker learns the world is a simulation.",
			Unavailable: []string{"poster"},
		}).
		Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.Flags().Int("year", 0, "")
	cmd.Flags().String("id", "", "")
	cmd.SetOut(&out)
	require.NoError(t, runEnrichCmd(cmd, []string{"The", "Matrix"}))

	assert.Contains(t, out.String(), "Poster:   none")
	assert.Contains(t, out.String(), "Trailer:  https://www.youtube.com/embed/abc")
	assert.Contains(t, out.String(), "Unavailable: poster")
	assert.Contains(t, out.String(), "A hacker learns the world is a simulation.")
}

func TestRunEnrich_RequiresTitleOrID(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().Int("year", 0, "")
	cmd.Flags().String("id", "", "")
	assert.Error(t, runEnrichCmd(cmd, nil))
}

func TestRunStatus(t *testing.T) {
	status := StatusResponse{Status: "ok", Version: "1.2.3"}
	status.Catalog.Movies = 42
	status.Enrichment.Poster = true
	srv := newMockServer(t).ExpectPath("/api/v1/status").RespondJSON(status).Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runStatusCmd(cmd, nil))

	assert.Contains(t, out.String(), "reelroll v1.2.3")
	assert.Contains(t, out.String(), "Movies:   42")
	assert.Contains(t, out.String(), "Posters:  configured")
	assert.Contains(t, out.String(), "Trailers: not configured")
}

func TestRunFilters(t *testing.T) {
	srv := newMockServer(t).
		ExpectPath("/api/v1/filters").
		RespondJSON(map[string]any{
			"filters": map[string]any{"minVotes": 1000, "excludeGenres": []string{"Adult", "Reality-TV"}},
			"active":  []string{"minVotes", "excludeGenres"},
		}).
		Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runFiltersCmd(cmd, nil))

	assert.Contains(t, out.String(), "minVotes")
	assert.Contains(t, out.String(), "1000")
	assert.Contains(t, out.String(), "Adult, Reality-TV")
}

func TestRunFilters_None(t *testing.T) {
	srv := newMockServer(t).RespondJSON(map[string]any{"filters": map[string]any{}, "active": []string{}}).Build()
	defer srv.Close()
	defer withServerURL(srv.URL)()

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runFiltersCmd(cmd, nil))
	assert.Contains(t, out.String(), "No filters active")
}

func TestRunInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	newCmd := func(args ...string) (*cobra.Command, *bytes.Buffer) {
		var out bytes.Buffer
		cmd := &cobra.Command{}
		cmd.Flags().Bool("force", false, "")
		require.NoError(t, cmd.ParseFlags(args))
		cmd.SetOut(&out)
		return cmd, &out
	}

	cmd, out := newCmd()
	require.NoError(t, runInitCmd(cmd, []string{path}))
	assert.Contains(t, out.String(), "Wrote "+path)
	_, err := os.Stat(path)
	require.NoError(t, err)

	cmd, _ = newCmd()
	err = runInitCmd(cmd, []string{path})
	assert.ErrorContains(t, err, "already exists")

	cmd, _ = newCmd("--force")
	assert.NoError(t, runInitCmd(cmd, []string{path}))
}

func TestRunConfigTest(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.toml")
	require.NoError(t, os.WriteFile(valid, []byte(`
[database]
path = "/tmp/catalog.db"

[filters]
min_votes = 500
`), 0644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, runConfigTest(cmd, []string{valid}))
	assert.Contains(t, out.String(), "Configuration valid!")
	assert.Contains(t, out.String(), "minVotes")

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte(`
[server]
port = 99999

[tmdb]
api_key = "${REELROLL_TEST_UNSET_KEY}"
`), 0644))

	out.Reset()
	err := runConfigTest(cmd, []string{invalid})
	assert.EqualError(t, err, "configuration invalid")
	assert.Contains(t, out.String(), "REELROLL_TEST_UNSET_KEY")
	assert.Contains(t, out.String(), "server.port")
}

func TestFormatFilterValue(t *testing.T) {
	assert.Equal(t, "1000", formatFilterValue(float64(1000)))
	assert.Equal(t, "7.5", formatFilterValue(7.5))
	assert.Equal(t, "true", formatFilterValue(true))
	assert.Equal(t, "a, b", formatFilterValue([]any{"a", "b"}))
	assert.Equal(t, "-", formatFilterValue(nil))
}

func TestRenderMovies(t *testing.T) {
	table := renderMovies([]Movie{{ID: "tt1", PrimaryTitle: "Nameless"}})
	assert.Contains(t, table, "Nameless")
	assert.Contains(t, table, "Rating")
	assert.Contains(t, table, "-")
}
