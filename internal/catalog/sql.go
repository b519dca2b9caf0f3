package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"modernc.org/sqlite"
)

// titleCollation orders text by its lowercase form, then byte-wise. Postgres
// gets the same order from LOWER(col) COLLATE "C" on a UTF-8 database.
const titleCollation = "TITLE_FOLD"

func init() {
	sqlite.MustRegisterCollationUtf8(titleCollation, compareFold)
}

// compareFold is the title ordering shared by every backend.
func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// Dialect captures the SQL differences between supported drivers.
type Dialect struct {
	Name string
	// bindvar renders the n-th (1-based) placeholder.
	bindvar func(n int) string
	// foldKey renders a case-insensitive, deterministic sort key for a text column.
	foldKey func(col string) string
	// byteKey renders a binary-ordered sort key for a text column.
	byteKey func(col string) string
	// readOnlyTx is true when the driver honors sql.TxOptions.ReadOnly.
	readOnlyTx bool
}

var (
	// SQLite is the dialect for modernc.org/sqlite.
	SQLite = Dialect{
		Name:    "sqlite",
		bindvar: func(int) string { return "?" },
		foldKey: func(col string) string { return col + " COLLATE " + titleCollation },
		byteKey: func(col string) string { return col },
	}

	// Postgres is the dialect for github.com/lib/pq.
	Postgres = Dialect{
		Name:       "postgres",
		bindvar:    func(n int) string { return "$" + strconv.Itoa(n) },
		foldKey:    func(col string) string { return "LOWER(" + col + `) COLLATE "C"` },
		byteKey:    func(col string) string { return col + ` COLLATE "C"` },
		readOnlyTx: true,
	}
)

// DialectFor returns the dialect registered under a database/sql driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "pq":
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported catalog driver %q", driver)
	}
}

const (
	fromClause = `FROM title_basics t LEFT JOIN title_ratings r ON r.tconst = t.tconst`

	summaryColumns = `t.tconst, t.primaryTitle, t.originalTitle, t.startYear, t.runtimeMinutes, t.genres, r.averageRating`
)

// sqlBuilder accumulates conditions and their bound arguments.
// Values never reach the query text; every value is a placeholder.
type sqlBuilder struct {
	d     Dialect
	conds []string
	args  []any
}

func newSQLBuilder(d Dialect) *sqlBuilder {
	return &sqlBuilder{d: d}
}

func (b *sqlBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return b.d.bindvar(len(b.args))
}

func (b *sqlBuilder) where(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *sqlBuilder) whereClause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

// tokenExpr wraps a delimited list column so that `%,value,%` matches whole items only.
func tokenExpr(col string) string {
	return "(',' || LOWER(COALESCE(" + col + ", '')) || ',')"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func tokenPattern(v string) string {
	return "%," + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(v))) + ",%"
}

func (b *sqlBuilder) excludeTokens(col string, values []string) {
	for _, v := range values {
		b.where(tokenExpr(col) + " NOT LIKE " + b.bind(tokenPattern(v)) + ` ESCAPE '\'`)
	}
}

func (b *sqlBuilder) excludeValues(col string, values []string) {
	if len(values) == 0 {
		return
	}
	holders := make([]string, len(values))
	for i, v := range values {
		holders[i] = b.bind(strings.ToLower(v))
	}
	b.where("(" + col + " IS NULL OR LOWER(" + col + ") NOT IN (" + strings.Join(holders, ", ") + "))")
}

// criteria compiles the eligibility predicate, base movie-type predicate included.
func (b *sqlBuilder) criteria(c Criteria) {
	f := c.Filter

	b.where("t.titleType = " + b.bind(string(TypeMovie)))

	if f.MinRuntime > 0 {
		b.where("t.runtimeMinutes >= " + b.bind(f.MinRuntime))
	}
	if f.ExcludeAdult {
		b.where("t.isAdult = 0")
	}
	if len(f.ExcludeTypes) > 0 {
		holders := make([]string, len(f.ExcludeTypes))
		for i, tt := range f.ExcludeTypes {
			holders[i] = b.bind(string(tt))
		}
		b.where("t.titleType NOT IN (" + strings.Join(holders, ", ") + ")")
	}
	b.excludeTokens("t.genres", f.ExcludeGenres)
	if f.needsRating() || c.RequireRating {
		b.where("r.tconst IS NOT NULL")
	}
	if f.MinVotes > 0 {
		b.where("r.numVotes >= " + b.bind(f.MinVotes))
	}
	if f.MinRating > 0 {
		b.where("r.averageRating >= " + b.bind(f.MinRating))
	}
	b.excludeValues("t.language", f.ExcludeLanguages)
	if f.MaxYear > 0 {
		b.where("t.startYear <= " + b.bind(f.MaxYear))
	}
	b.excludeValues("t.region", f.ExcludeRegions)
	b.excludeTokens("t.directors", f.ExcludeDirectors)
	b.excludeTokens("t.actors", f.ExcludeActors)
	b.excludeTokens("t.keywords", f.ExcludeKeywords)

	if c.Year != nil {
		b.where("t.startYear = " + b.bind(*c.Year))
	}
	if c.Category != "" {
		b.where(tokenExpr("t.genres") + " LIKE " + b.bind(tokenPattern(c.Category)) + ` ESCAPE '\'`)
	}
}

// orderBy renders the ORDER BY list, always ending in the id tie-break.
// NULL keys sort last in both directions.
func (b *sqlBuilder) orderBy(o Order) string {
	var key string
	switch o.Field {
	case FieldAverageRating:
		key = "r.averageRating"
	case FieldStartYear:
		key = "t.startYear"
	case FieldPrimaryTitle:
		key = b.d.foldKey("t.primaryTitle")
	default:
		return " ORDER BY " + b.d.byteKey("t.tconst") + " ASC"
	}
	dir := " ASC"
	if o.Desc {
		dir = " DESC"
	}
	tieBreak := ", " + b.d.byteKey("t.tconst") + " ASC"
	if o.Field == FieldPrimaryTitle {
		return " ORDER BY " + key + dir + tieBreak
	}
	return " ORDER BY " + key + " IS NULL, " + key + dir + tieBreak
}

// pageQuery renders the full paginated query for a plan.
func pageQuery(d Dialect, p Plan) (string, []any) {
	b := newSQLBuilder(d)
	b.criteria(p.Criteria)
	q := "SELECT " + summaryColumns + " " + fromClause + b.whereClause() + b.orderBy(p.Order)
	q += " LIMIT " + b.bind(p.Limit) + " OFFSET " + b.bind(p.Offset)
	return q, b.args
}

func countQuery(d Dialect, c Criteria) (string, []any) {
	b := newSQLBuilder(d)
	b.criteria(c)
	return "SELECT COUNT(*) " + fromClause + b.whereClause(), b.args
}

// nthQuery selects the eligible title at a 0-based position in id order.
func nthQuery(d Dialect, c Criteria, n int) (string, []any) {
	b := newSQLBuilder(d)
	b.criteria(c)
	q := "SELECT " + summaryColumns + " " + fromClause + b.whereClause() + b.orderBy(Order{})
	q += " LIMIT 1 OFFSET " + b.bind(n)
	return q, b.args
}

func idsQuery(d Dialect, c Criteria) (string, []any) {
	b := newSQLBuilder(d)
	b.criteria(c)
	return "SELECT t.tconst " + fromClause + b.whereClause() + b.orderBy(Order{}), b.args
}

func byIDsQuery(d Dialect, ids []string) (string, []any) {
	b := newSQLBuilder(d)
	b.where("t.titleType = " + b.bind(string(TypeMovie)))
	holders := make([]string, len(ids))
	for i, id := range ids {
		holders[i] = b.bind(id)
	}
	b.where("t.tconst IN (" + strings.Join(holders, ", ") + ")")
	return "SELECT " + summaryColumns + " " + fromClause + b.whereClause(), b.args
}
