package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Random picks one eligible movie uniformly at random. The eligible set is
// counted and indexed in id order inside a single read transaction, so each
// title has probability exactly 1/|E| regardless of how it was stored.
func (s *Store) Random(ctx context.Context, c Criteria) (Summary, error) {
	var result Summary
	err := s.read(ctx, "random", func(q querier) error {
		query, args := countQuery(s.dialect, c)
		var n int
		if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
			return unavailable("random count", err)
		}
		if n == 0 {
			return ErrNoEligibleTitles
		}

		idx := s.intn(n)
		query, args = nthQuery(s.dialect, c, idx)
		var err error
		result, err = scanSummary(q.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoEligibleTitles
		}
		if err != nil {
			return unavailable("random pick", err)
		}
		return nil
	})
	return result, err
}

// randomPage samples up to p.Limit distinct eligible titles.
func (s *Store) randomPage(ctx context.Context, p Plan) ([]Summary, error) {
	var results []Summary
	err := s.read(ctx, "random page", func(q querier) error {
		query, args := idsQuery(s.dialect, p.Criteria)
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return unavailable("random ids", err)
		}
		ids, err := collectIDs(rows)
		if err != nil {
			return unavailable("random ids", err)
		}
		if len(ids) == 0 {
			results = []Summary{}
			return nil
		}

		picked := make([]string, 0, p.Limit)
		for _, i := range sample(len(ids), p.Limit, s.intn) {
			picked = append(picked, ids[i])
		}

		query, args = byIDsQuery(s.dialect, picked)
		rows, err = q.QueryContext(ctx, query, args...)
		if err != nil {
			return unavailable("random page", err)
		}
		found, err := collectSummaries(rows)
		if err != nil {
			return unavailable("random page", err)
		}
		results = orderByIDs(found, picked)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func collectIDs(rows *sql.Rows) ([]string, error) {
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func orderByIDs(items []Summary, ids []string) []Summary {
	byID := make(map[string]Summary, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	out := make([]Summary, 0, len(ids))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
		}
	}
	return out
}

// sample draws min(k, n) distinct indices from [0, n) uniformly and returns
// them in random order.
func sample(n, k int, intn func(int) int) []int {
	if k > n {
		k = n
	}
	chosen := make(map[int]bool, k)
	out := make([]int, 0, k)
	// Floyd's algorithm: uniform subset without materializing [0, n).
	for j := n - k; j < n; j++ {
		t := intn(j + 1)
		if chosen[t] {
			t = j
		}
		chosen[t] = true
		out = append(out, t)
	}
	for i := len(out) - 1; i > 0; i-- {
		j := intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
