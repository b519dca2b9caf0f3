// internal/api/v1/types.go
package v1

import (
	"github.com/vmunix/reelroll/internal/catalog"
	"github.com/vmunix/reelroll/internal/enrich"
)

// movieResponse is the API representation of a catalog summary.
type movieResponse struct {
	ID             string   `json:"id"`
	PrimaryTitle   string   `json:"primaryTitle"`
	OriginalTitle  string   `json:"originalTitle,omitempty"`
	StartYear      *int     `json:"startYear"`
	RuntimeMinutes *int     `json:"runtimeMinutes"`
	Genres         []string `json:"genres"`
	AverageRating  *float64 `json:"averageRating"`
}

func toMovieResponse(s catalog.Summary) movieResponse {
	genres := s.Genres
	if genres == nil {
		genres = []string{}
	}
	return movieResponse{
		ID:             s.ID,
		PrimaryTitle:   s.PrimaryTitle,
		OriginalTitle:  s.OriginalTitle,
		StartYear:      s.StartYear,
		RuntimeMinutes: s.RuntimeMinutes,
		Genres:         genres,
		AverageRating:  s.AverageRating,
	}
}

// enrichmentResponse is the response for GET /enrich.
type enrichmentResponse struct {
	Title       string         `json:"title"`
	Year        int            `json:"year,omitempty"`
	IMDbID      string         `json:"imdbId,omitempty"`
	PosterURL   string         `json:"posterUrl,omitempty"`
	TrailerURL  string         `json:"trailerUrl,omitempty"`
	Description string         `json:"description,omitempty"`
	Unavailable []enrich.Field `json:"unavailable,omitempty"`
}

// filtersResponse is the response for GET /filters.
type filtersResponse struct {
	Filters catalog.FilterSpec `json:"filters"`
	Active  []string           `json:"active"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status     string        `json:"status"`
	Version    string        `json:"version"`
	Catalog    catalogStats  `json:"catalog"`
	Enrichment enrichmentSet `json:"enrichment"`
}

type catalogStats struct {
	Movies int `json:"movies"`
	Rated  int `json:"rated"`
}

type enrichmentSet struct {
	Poster  bool `json:"poster"`
	Trailer bool `json:"trailer"`
}
