// Package catalog provides read-only, filtered and paginated access to the movie catalog.
package catalog

import (
	"strings"
)

// TitleType is the IMDb title type of a catalog entry.
type TitleType string

const (
	TypeMovie        TitleType = "movie"
	TypeShort        TitleType = "short"
	TypeTVEpisode    TitleType = "tvEpisode"
	TypeTVSeries     TitleType = "tvSeries"
	TypeTVMiniSeries TitleType = "tvMiniSeries"
	TypeTVSpecial    TitleType = "tvSpecial"
	TypeTVMovie      TitleType = "tvMovie"
	TypeTVShort      TitleType = "tvShort"
	TypeVideo        TitleType = "video"
	TypeVideoGame    TitleType = "videoGame"
)

// TitleRecord is one catalog entry.
type TitleRecord struct {
	ID             string
	PrimaryTitle   string
	OriginalTitle  string
	Type           TitleType
	StartYear      *int // nil when unknown
	RuntimeMinutes *int // nil when unknown
	Genres         []string
	IsAdult        bool
	Region         string
	Language       string
	Directors      []string
	Actors         []string
	Keywords       []string
}

// RatingRecord holds the aggregate rating of a title.
type RatingRecord struct {
	ID            string
	AverageRating float64
	NumVotes      int
}

// Summary is the listing view of a movie.
type Summary struct {
	ID             string
	PrimaryTitle   string
	OriginalTitle  string
	StartYear      *int
	RuntimeMinutes *int
	Genres         []string
	AverageRating  *float64 // nil when the title has no rating
}

// Stats describes catalog size.
type Stats struct {
	Movies int // movie-type titles
	Rated  int // movie-type titles with a rating row
}

func summarize(t TitleRecord, r *RatingRecord) Summary {
	s := Summary{
		ID:             t.ID,
		PrimaryTitle:   t.PrimaryTitle,
		OriginalTitle:  t.OriginalTitle,
		StartYear:      t.StartYear,
		RuntimeMinutes: t.RuntimeMinutes,
		Genres:         t.Genres,
	}
	if r != nil {
		avg := r.AverageRating
		s.AverageRating = &avg
	}
	return s
}

// listSeparator joins set-valued columns in storage.
const listSeparator = ","

// SplitList parses a delimited set column. IMDb uses `\N` for an empty value.
func SplitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == `\N` {
		return nil
	}
	parts := strings.Split(s, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinList is the inverse of SplitList.
func JoinList(items []string) string {
	return strings.Join(items, listSeparator)
}

// intersects reports whether any element of set appears in items.
// Comparison is case-insensitive.
func intersects(items []string, set []string) bool {
	for _, it := range items {
		for _, s := range set {
			if strings.EqualFold(it, s) {
				return true
			}
		}
	}
	return false
}

func containsFold(set []string, v string) bool {
	if v == "" {
		return false
	}
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}
