package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Page executes a plan. Filtering happens before ordering and LIMIT/OFFSET,
// so page boundaries always fall on the filtered order.
func (s *Store) Page(ctx context.Context, p Plan) ([]Summary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.Order.Field == FieldRandom {
		return s.randomPage(ctx, p)
	}

	var results []Summary
	err := s.read(ctx, "page", func(q querier) error {
		query, args := pageQuery(s.dialect, p)
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return unavailable("page", err)
		}
		results, err = collectSummaries(rows)
		if err != nil {
			return unavailable("page", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Get returns a movie by id. Non-movie titles are reported as ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Summary, error) {
	var result Summary
	err := s.read(ctx, "get", func(q querier) error {
		query, args := byIDsQuery(s.dialect, []string{id})
		row := q.QueryRowContext(ctx, query, args...)
		var err error
		result, err = scanSummary(row)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("get title %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return unavailable("get", err)
		}
		return nil
	})
	return result, err
}

// Stats counts movies and rated movies.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.read(ctx, "stats", func(q querier) error {
		all, args := countQuery(s.dialect, Criteria{})
		if err := q.QueryRowContext(ctx, all, args...).Scan(&st.Movies); err != nil {
			return unavailable("count movies", err)
		}
		rated, args := countQuery(s.dialect, Criteria{RequireRating: true})
		if err := q.QueryRowContext(ctx, rated, args...).Scan(&st.Rated); err != nil {
			return unavailable("count rated", err)
		}
		return nil
	})
	return st, err
}

// Count returns the size of the eligible set for c.
func (s *Store) Count(ctx context.Context, c Criteria) (int, error) {
	var n int
	err := s.read(ctx, "count", func(q querier) error {
		query, args := countQuery(s.dialect, c)
		if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
			return unavailable("count", err)
		}
		return nil
	})
	return n, err
}
