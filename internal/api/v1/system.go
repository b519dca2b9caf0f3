// internal/api/v1/system.go
package v1

import (
	"net/http"
)

func (s *Server) getFilters(w http.ResponseWriter, r *http.Request) {
	active := s.cfg.Filters.Active()
	if active == nil {
		active = []string{}
	}
	writeJSON(w, http.StatusOK, filtersResponse{
		Filters: s.cfg.Filters,
		Active:  active,
	})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.Catalog.Stats(r.Context())
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}

	var sources enrichmentSet
	if rep, ok := s.deps.Gateway.(SourceReporter); ok {
		sources.Poster, sources.Trailer = rep.Sources()
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:     "ok",
		Version:    s.cfg.Version,
		Catalog:    catalogStats{Movies: stats.Movies, Rated: stats.Rated},
		Enrichment: sources,
	})
}
