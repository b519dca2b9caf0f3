package catalog

import (
	"math"
	"strings"
)

// SortOption is a user-facing sort choice.
type SortOption string

const (
	SortRating      SortOption = "rating"
	SortReleaseDate SortOption = "releaseDate"
	SortTitle       SortOption = "title"
	SortYear        SortOption = "year"
	SortRandom      SortOption = "random"
)

// DefaultSort is used when no or an unknown sort option is given.
const DefaultSort = SortRating

// ParseSortOption maps a raw sort value to a SortOption.
// Unknown values map to DefaultSort and report false.
func ParseSortOption(s string) (SortOption, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rating":
		return SortRating, true
	case "releasedate", "release_date":
		return SortReleaseDate, true
	case "title":
		return SortTitle, true
	case "year":
		return SortYear, true
	case "random":
		return SortRandom, true
	default:
		return DefaultSort, false
	}
}

// SortField is a column the executor can order by.
type SortField string

const (
	FieldAverageRating SortField = "averageRating"
	FieldStartYear     SortField = "startYear"
	FieldPrimaryTitle  SortField = "primaryTitle"
	FieldRandom        SortField = "random"
)

// Order is the primary ordering of a plan. Ties are always broken by id ascending.
type Order struct {
	Field SortField
	Desc  bool
}

// PageRequest is one listing interaction. Page is 0-indexed.
type PageRequest struct {
	Sort     SortOption
	Page     int
	PageSize int
	Year     *int
	Category string // genre; "" or "all" means any
}

// Criteria is the full eligibility predicate: the unconditional movie-type
// base predicate, the FilterSpec, and the request's narrowing facets.
type Criteria struct {
	Filter   FilterSpec
	Year     *int
	Category string
	// RequireRating drops titles without a rating row.
	RequireRating bool
}

// Plan is the resolved, deterministic query the executor runs.
type Plan struct {
	Order    Order
	Criteria Criteria
	Offset   int
	Limit    int

	// pageOverflow is set when the requested page has no representable offset.
	pageOverflow bool
}

// Build translates a page request and filter into a plan. It performs no I/O
// and does not validate; executors call Validate before touching storage.
func Build(req PageRequest, spec FilterSpec) Plan {
	p := Plan{
		Order: orderFor(req.Sort),
		Criteria: Criteria{
			Filter:   spec,
			Year:     req.Year,
			Category: normalizeCategory(req.Category),
		},
		Limit: req.PageSize,
	}
	if req.PageSize > 0 && req.Page > math.MaxInt/req.PageSize {
		p.pageOverflow = true
	} else {
		p.Offset = req.Page * req.PageSize
	}
	if p.Order.Field == FieldAverageRating {
		p.Criteria.RequireRating = true
	}
	if p.Order.Field == FieldRandom {
		p.Offset = 0
		p.pageOverflow = false
	}
	return p
}

func orderFor(s SortOption) Order {
	switch s {
	case SortReleaseDate, SortYear:
		return Order{Field: FieldStartYear, Desc: true}
	case SortTitle:
		return Order{Field: FieldPrimaryTitle}
	case SortRandom:
		return Order{Field: FieldRandom}
	default:
		return Order{Field: FieldAverageRating, Desc: true}
	}
}

func normalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	if strings.EqualFold(c, "all") {
		return ""
	}
	return c
}

// Validate rejects plans the executor must not run.
func (p Plan) Validate() error {
	if p.Limit <= 0 {
		return &PlanError{Field: "limit", Reason: "must be positive"}
	}
	if p.pageOverflow {
		return &PlanError{Field: "page", Reason: "out of range"}
	}
	if p.Offset < 0 {
		return &PlanError{Field: "offset", Reason: "must not be negative"}
	}
	switch p.Order.Field {
	case FieldAverageRating, FieldStartYear, FieldPrimaryTitle, FieldRandom:
	default:
		return &PlanError{Field: "order", Reason: "unknown field " + string(p.Order.Field)}
	}
	return nil
}

// Matches evaluates the criteria against one record in memory. It is the
// reference semantics the SQL compilation must agree with.
func (c Criteria) Matches(t TitleRecord, r *RatingRecord) bool {
	if t.Type != TypeMovie {
		return false
	}
	if c.RequireRating && r == nil {
		return false
	}
	if !c.Filter.IsEligible(t, r) {
		return false
	}
	if c.Year != nil && (t.StartYear == nil || *t.StartYear != *c.Year) {
		return false
	}
	if c.Category != "" && !containsFold(t.Genres, strings.TrimSpace(c.Category)) {
		return false
	}
	return true
}
