// internal/api/v1/movies.go
package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vmunix/reelroll/internal/catalog"
)

// parsePageRequest reads pagination, sort and facets from the query string.
// Unknown sort values fall back to rating.
func (s *Server) parsePageRequest(r *http.Request) (catalog.PageRequest, error) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		return catalog.PageRequest{}, err
	}
	limit, err := queryInt(r, "limit", s.cfg.DefaultPageSize)
	if err != nil {
		return catalog.PageRequest{}, err
	}
	limit = min(limit, s.cfg.MaxPageSize)

	year, err := queryIntPtr(r, "year")
	if err != nil {
		return catalog.PageRequest{}, err
	}

	sort := s.cfg.DefaultSort
	if raw := queryString(r, "sort"); raw != "" {
		sort, _ = catalog.ParseSortOption(raw)
	}

	return catalog.PageRequest{
		Sort:     sort,
		Page:     page,
		PageSize: limit,
		Year:     year,
		Category: queryString(r, "category"),
	}, nil
}

// parseFilter applies request overrides to the configured FilterSpec.
func (s *Server) parseFilter(r *http.Request) (catalog.FilterSpec, error) {
	var o catalog.FilterOverrides
	var err error
	if o.MinVotes, err = queryIntPtr(r, "min_votes"); err != nil {
		return catalog.FilterSpec{}, err
	}
	if o.MinRuntime, err = queryIntPtr(r, "min_runtime"); err != nil {
		return catalog.FilterSpec{}, err
	}
	if o.MaxYear, err = queryIntPtr(r, "max_year"); err != nil {
		return catalog.FilterSpec{}, err
	}
	if o.MinRating, err = queryFloatPtr(r, "min_rating"); err != nil {
		return catalog.FilterSpec{}, err
	}
	if o.ExcludeAdult, err = queryBoolPtr(r, "exclude_adult"); err != nil {
		return catalog.FilterSpec{}, err
	}
	o.ExcludeGenres = queryList(r, "exclude_genres")
	return s.cfg.Filters.Override(o), nil
}

func (s *Server) listMovies(w http.ResponseWriter, r *http.Request) {
	random, err := queryBoolPtr(r, "random")
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPlan, err.Error())
		return
	}
	if random != nil && *random {
		s.randomMovie(w, r)
		return
	}

	req, err := s.parsePageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPlan, err.Error())
		return
	}
	filter, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPlan, err.Error())
		return
	}

	items, err := s.deps.Catalog.Page(r.Context(), catalog.Build(req, filter))
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}

	resp := make([]movieResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toMovieResponse(it))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) randomMovie(w http.ResponseWriter, r *http.Request) {
	req, err := s.parsePageRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPlan, err.Error())
		return
	}
	filter, err := s.parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidPlan, err.Error())
		return
	}
	req.Sort = catalog.SortRandom

	plan := catalog.Build(req, filter)
	movie, err := s.deps.Catalog.Random(r.Context(), plan.Criteria)
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMovieResponse(movie))
}

func (s *Server) getMovie(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if !validTitleID(id) {
		writeError(w, http.StatusBadRequest, codeInvalidRequest, "Invalid movie ID")
		return
	}

	movie, err := s.deps.Catalog.Get(r.Context(), id)
	if err != nil {
		s.writeCatalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMovieResponse(movie))
}

// validTitleID accepts IMDb title identifiers such as tt0111161.
func validTitleID(id string) bool {
	rest, ok := strings.CutPrefix(id, "tt")
	if !ok || rest == "" {
		return false
	}
	_, err := strconv.ParseUint(rest, 10, 64)
	return err == nil
}
