package catalog

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/reelroll/internal/migrations"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "open db")
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(migrations.CatalogSQL)
	require.NoError(t, err, "apply schema")
	return db
}

func insertTitle(t *testing.T, db *sql.DB, tr TitleRecord) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO title_basics (tconst, titleType, primaryTitle, originalTitle, isAdult, startYear, runtimeMinutes,
			genres, region, language, directors, actors, keywords)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tr.ID, string(tr.Type), tr.PrimaryTitle, tr.OriginalTitle, boolInt(tr.IsAdult), tr.StartYear, tr.RuntimeMinutes,
		nullable(JoinList(tr.Genres)), nullable(tr.Region), nullable(tr.Language),
		nullable(JoinList(tr.Directors)), nullable(JoinList(tr.Actors)), nullable(JoinList(tr.Keywords)),
	)
	require.NoError(t, err, "insert title %s", tr.ID)
}

func insertRating(t *testing.T, db *sql.DB, r RatingRecord) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO title_ratings (tconst, averageRating, numVotes) VALUES (?, ?, ?)`,
		r.ID, r.AverageRating, r.NumVotes)
	require.NoError(t, err, "insert rating %s", r.ID)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// fixture is a catalog loaded into both backends.
type fixture struct {
	titles  []TitleRecord
	ratings []RatingRecord
}

func (f fixture) sqlStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	db := setupTestDB(t)
	for _, tr := range f.titles {
		insertTitle(t, db, tr)
	}
	for _, r := range f.ratings {
		insertRating(t, db, r)
	}
	return NewStore(db, SQLite, opts...)
}

func (f fixture) memoryStore(opts ...Option) *MemoryStore {
	return NewMemoryStore(f.titles, f.ratings, opts...)
}

func movie(id, title string, year int) TitleRecord {
	return TitleRecord{
		ID:             id,
		PrimaryTitle:   title,
		OriginalTitle:  title,
		Type:           TypeMovie,
		StartYear:      ptr(year),
		RuntimeMinutes: ptr(100),
		Genres:         []string{"Drama"},
	}
}

func ids(items []Summary) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func titles(items []Summary) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.PrimaryTitle
	}
	return out
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}
