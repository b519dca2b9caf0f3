// internal/api/v1/enrich.go
package v1

import (
	"errors"
	"net/http"

	"github.com/vmunix/reelroll/internal/enrich"
)

func (s *Server) getEnrichment(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, err.Error())
		return
	}
	q := enrich.Query{
		Title:  queryString(r, "title"),
		Year:   year,
		IMDbID: queryString(r, "id"),
	}

	// An id alone is resolved through the catalog.
	if q.Title == "" && q.IMDbID != "" {
		movie, err := s.deps.Catalog.Get(r.Context(), q.IMDbID)
		if err != nil {
			s.writeCatalogError(w, r, err)
			return
		}
		q.Title = movie.PrimaryTitle
		if q.Year == 0 && movie.StartYear != nil {
			q.Year = *movie.StartYear
		}
	}
	if q.Title == "" {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "title is required")
		return
	}

	e, err := s.deps.Gateway.Enrich(r.Context(), q)
	switch {
	case errors.Is(err, enrich.ErrEmptyTitle):
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "title is required")
		return
	case err != nil:
		s.log.Warn("enrichment unavailable", "title", q.Title, "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusServiceUnavailable, codeEnrichmentUnavailable, "Poster and trailer lookups failed")
		return
	}

	writeJSON(w, http.StatusOK, enrichmentResponse{
		Title:       q.Title,
		Year:        q.Year,
		IMDbID:      q.IMDbID,
		PosterURL:   e.PosterURL,
		TrailerURL:  e.TrailerURL,
		Description: e.Description,
		Unavailable: e.Unavailable,
	})
}
