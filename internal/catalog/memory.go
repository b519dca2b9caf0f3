package catalog

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
)

// MemoryStore serves a fixed set of records from memory. It shares plan
// semantics with Store and is used for small fixtures and tests.
type MemoryStore struct {
	titles  []TitleRecord // sorted by id
	ratings map[string]RatingRecord
	intn    func(n int) int
}

var _ Catalog = (*MemoryStore)(nil)

// NewMemoryStore copies the given records into a new store.
func NewMemoryStore(titles []TitleRecord, ratings []RatingRecord, opts ...Option) *MemoryStore {
	o := applyOptions(opts)
	m := &MemoryStore{
		titles:  slices.Clone(titles),
		ratings: make(map[string]RatingRecord, len(ratings)),
		intn:    o.intn,
	}
	slices.SortFunc(m.titles, func(a, b TitleRecord) int { return strings.Compare(a.ID, b.ID) })
	for _, r := range ratings {
		m.ratings[r.ID] = r
	}
	return m
}

func (m *MemoryStore) rating(id string) *RatingRecord {
	r, ok := m.ratings[id]
	if !ok {
		return nil
	}
	return &r
}

type joined struct {
	title  TitleRecord
	rating *RatingRecord
}

// eligible returns matching records in id order.
func (m *MemoryStore) eligible(c Criteria) []joined {
	var out []joined
	for _, t := range m.titles {
		r := m.rating(t.ID)
		if c.Matches(t, r) {
			out = append(out, joined{title: t, rating: r})
		}
	}
	return out
}

// Page implements Catalog.
func (m *MemoryStore) Page(ctx context.Context, p Plan) ([]Summary, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, unavailable("page", err)
	}

	rows := m.eligible(p.Criteria)
	if p.Order.Field == FieldRandom {
		out := make([]Summary, 0, min(p.Limit, len(rows)))
		for _, i := range sample(len(rows), p.Limit, m.intn) {
			out = append(out, summarize(rows[i].title, rows[i].rating))
		}
		return out, nil
	}

	slices.SortStableFunc(rows, func(a, b joined) int { return compareRows(p.Order, a, b) })

	out := []Summary{}
	for i := p.Offset; i < len(rows) && len(out) < p.Limit; i++ {
		out = append(out, summarize(rows[i].title, rows[i].rating))
	}
	return out, nil
}

// compareRows mirrors sqlBuilder.orderBy: NULL keys last, id ascending on ties.
func compareRows(o Order, a, b joined) int {
	var c int
	switch o.Field {
	case FieldAverageRating:
		c = compareNullable(ratingOf(a), ratingOf(b), o.Desc)
	case FieldStartYear:
		c = compareNullable(a.title.StartYear, b.title.StartYear, o.Desc)
	case FieldPrimaryTitle:
		c = compareFold(a.title.PrimaryTitle, b.title.PrimaryTitle)
		if o.Desc {
			c = -c
		}
	}
	if c != 0 {
		return c
	}
	return strings.Compare(a.title.ID, b.title.ID)
}

func ratingOf(j joined) *float64 {
	if j.rating == nil {
		return nil
	}
	return &j.rating.AverageRating
}

func compareNullable[T cmp.Ordered](a, b *T, desc bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := cmp.Compare(*a, *b)
	if desc {
		return -c
	}
	return c
}

// Random implements Catalog.
func (m *MemoryStore) Random(ctx context.Context, c Criteria) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, unavailable("random", err)
	}
	rows := m.eligible(c)
	if len(rows) == 0 {
		return Summary{}, ErrNoEligibleTitles
	}
	j := rows[m.intn(len(rows))]
	return summarize(j.title, j.rating), nil
}

// Get implements Catalog.
func (m *MemoryStore) Get(ctx context.Context, id string) (Summary, error) {
	i, ok := slices.BinarySearchFunc(m.titles, id, func(t TitleRecord, id string) int {
		return strings.Compare(t.ID, id)
	})
	if !ok || m.titles[i].Type != TypeMovie {
		return Summary{}, fmt.Errorf("get title %s: %w", id, ErrNotFound)
	}
	return summarize(m.titles[i], m.rating(id)), nil
}

// Stats implements Catalog.
func (m *MemoryStore) Stats(ctx context.Context) (Stats, error) {
	return Stats{
		Movies: len(m.eligible(Criteria{})),
		Rated:  len(m.eligible(Criteria{RequireRating: true})),
	}, nil
}
