// Package v1 implements the native REST API.
package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/vmunix/reelroll/internal/catalog"
)

// Config holds API server configuration.
type Config struct {
	Version         string
	DefaultPageSize int
	MaxPageSize     int
	DefaultSort     catalog.SortOption
	// Filters is the process-wide FilterSpec; requests may narrow or relax it.
	Filters catalog.FilterSpec
}

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
	cfg  Config
	log  *slog.Logger
}

// New creates a new v1 API server with the given dependencies.
func New(deps ServerDeps, cfg Config, log *slog.Logger) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingDependency, err)
	}
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 32
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 100
	}
	if cfg.DefaultSort == "" {
		cfg.DefaultSort = catalog.DefaultSort
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Server{deps: deps, cfg: cfg, log: log.With("component", "api")}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Movies
	mux.HandleFunc("GET /api/v1/movies", s.listMovies)
	mux.HandleFunc("GET /api/v1/movies/random", s.randomMovie)
	mux.HandleFunc("GET /api/v1/movies/{id}", s.getMovie)

	// Enrichment
	mux.HandleFunc("GET /api/v1/enrich", s.requireGateway(s.getEnrichment))

	// System
	mux.HandleFunc("GET /api/v1/filters", s.getFilters)
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Handler returns the full HTTP handler: routes wrapped in request ID and
// access log middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return withRequestID(logRequests(mux, s.log))
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Error codes.
const (
	codeInvalidPlan           = "INVALID_PLAN"
	codeInvalidRequest        = "INVALID_REQUEST"
	codeNotFound              = "NOT_FOUND"
	codeNoEligibleTitles      = "NO_ELIGIBLE_TITLES"
	codeStoreUnavailable      = "STORE_UNAVAILABLE"
	codeEnrichmentUnavailable = "ENRICHMENT_UNAVAILABLE"
	codeServiceUnavailable    = "SERVICE_UNAVAILABLE"
	codeInternal              = "INTERNAL_ERROR"
)

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// writeCatalogError maps catalog errors onto status codes. Store details are
// logged, not returned.
func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	var planErr *catalog.PlanError
	switch {
	case errors.As(err, &planErr):
		writeError(w, http.StatusBadRequest, codeInvalidPlan, planErr.Error())
	case errors.Is(err, catalog.ErrInvalidPlan):
		writeError(w, http.StatusBadRequest, codeInvalidPlan, err.Error())
	case errors.Is(err, catalog.ErrNoEligibleTitles):
		writeError(w, http.StatusNotFound, codeNoEligibleTitles, "No titles match the current filters")
	case errors.Is(err, catalog.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Movie not found")
	case errors.Is(err, catalog.ErrStoreUnavailable):
		s.log.Error("catalog unavailable", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, codeStoreUnavailable, "Catalog store unavailable")
	default:
		s.log.Error("unexpected error", "path", r.URL.Path, "request_id", RequestID(r.Context()), "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "Internal error")
	}
}

// paramError is a malformed query parameter.
type paramError struct {
	name   string
	reason string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.name, e.reason)
}

// queryInt extracts an optional non-negative integer from the query string.
func queryInt(r *http.Request, name string, defaultVal int) (int, error) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, &paramError{name: name, reason: "must be an integer"}
	}
	if i < 0 {
		return 0, &paramError{name: name, reason: "must not be negative"}
	}
	return i, nil
}

// queryIntPtr is queryInt for parameters without a default.
func queryIntPtr(r *http.Request, name string) (*int, error) {
	if !r.URL.Query().Has(name) || strings.TrimSpace(r.URL.Query().Get(name)) == "" {
		return nil, nil
	}
	i, err := queryInt(r, name, 0)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func queryFloatPtr(r *http.Request, name string) (*float64, error) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, &paramError{name: name, reason: "must be a number"}
	}
	if f < 0 {
		return nil, &paramError{name: name, reason: "must not be negative"}
	}
	return &f, nil
}

func queryBoolPtr(r *http.Request, name string) (*bool, error) {
	val := strings.TrimSpace(r.URL.Query().Get(name))
	if val == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return nil, &paramError{name: name, reason: "must be true or false"}
	}
	return &b, nil
}

// queryList extracts a comma-separated list. A present but empty parameter
// yields an empty, non-nil list; an absent one yields nil.
func queryList(r *http.Request, name string) []string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	out := []string{}
	for _, v := range strings.Split(r.URL.Query().Get(name), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// queryString extracts an optional string from query string.
func queryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
