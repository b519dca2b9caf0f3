package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand/v2"
)

//go:generate mockgen -destination=mocks/mock_catalog.go -package=mocks github.com/vmunix/reelroll/internal/catalog Catalog

// Catalog is the read surface the API serves from.
type Catalog interface {
	// Page runs a plan and returns the ordered window. No match is an empty slice.
	Page(ctx context.Context, p Plan) ([]Summary, error)
	// Random returns one eligible movie drawn uniformly.
	Random(ctx context.Context, c Criteria) (Summary, error)
	// Get returns a movie by id.
	Get(ctx context.Context, id string) (Summary, error)
	// Stats reports catalog size.
	Stats(ctx context.Context) (Stats, error)
}

// querier abstracts *sql.DB and *sql.Tx for shared query logic.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Store serves the catalog from a SQL database. It never writes.
type Store struct {
	db      *sql.DB
	dialect Dialect
	intn    func(n int) int
}

var _ Catalog = (*Store)(nil)

// Option configures a Store or MemoryStore.
type Option func(*options)

type options struct {
	intn func(n int) int
}

// WithRandom sets the uniform source used for random picks.
// intn must return a value in [0, n) and be safe for concurrent use.
func WithRandom(intn func(n int) int) Option {
	return func(o *options) {
		o.intn = intn
	}
}

func applyOptions(opts []Option) options {
	o := options{intn: rand.IntN}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewStore creates a catalog store over db using the given dialect.
func NewStore(db *sql.DB, d Dialect, opts ...Option) *Store {
	o := applyOptions(opts)
	return &Store{db: db, dialect: d, intn: o.intn}
}

// Ping checks that the store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// read runs fn inside a read transaction that is always released.
func (s *Store) read(ctx context.Context, op string, fn func(q querier) error) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: s.dialect.readOnlyTx})
	if err != nil {
		return unavailable(op, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return unavailable(op, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (Summary, error) {
	var (
		s       Summary
		year    sql.NullInt64
		runtime sql.NullInt64
		genres  sql.NullString
		rating  sql.NullFloat64
	)
	if err := row.Scan(&s.ID, &s.PrimaryTitle, &s.OriginalTitle, &year, &runtime, &genres, &rating); err != nil {
		return Summary{}, err
	}
	if year.Valid {
		y := int(year.Int64)
		s.StartYear = &y
	}
	if runtime.Valid {
		m := int(runtime.Int64)
		s.RuntimeMinutes = &m
	}
	if genres.Valid {
		s.Genres = SplitList(genres.String)
	}
	if rating.Valid {
		r := rating.Float64
		s.AverageRating = &r
	}
	return s, nil
}

func collectSummaries(rows *sql.Rows) ([]Summary, error) {
	defer func() { _ = rows.Close() }()

	results := []Summary{}
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}
	return results, nil
}
