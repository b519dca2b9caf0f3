// Package enrich resolves display artwork for catalog titles: a poster and
// plot description from TMDB and a trailer from YouTube. Lookups are memoized, bounded by a
// timeout and independent of each other.
package enrich

//go:generate mockgen -destination=mocks/mock_enrich.go -package=mocks github.com/vmunix/reelroll/internal/enrich PosterFinder,TrailerFinder,Gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/vmunix/reelroll/internal/tmdb"
	"github.com/vmunix/reelroll/internal/ttlcache"
	"github.com/vmunix/reelroll/internal/youtube"
	"github.com/vmunix/reelroll/pkg/titles"
)

const (
	defaultTimeout  = 8 * time.Second
	defaultCacheTTL = 24 * time.Hour
)

// PosterFinder resolves a poster image URL and plot description.
type PosterFinder interface {
	FindArtwork(ctx context.Context, title string, year int, imdbID string) (tmdb.Artwork, error)
}

// TrailerFinder resolves an embeddable trailer URL.
type TrailerFinder interface {
	FindTrailer(ctx context.Context, title string, year int) (string, error)
}

// Gateway enriches one title.
type Gateway interface {
	Enrich(ctx context.Context, q Query) (Enrichment, error)
}

// Query identifies the title to enrich. Year and IMDbID are optional hints.
type Query struct {
	Title  string
	Year   int
	IMDbID string
}

// Field names an enrichable attribute.
type Field string

const (
	FieldPoster  Field = "poster"
	FieldTrailer Field = "trailer"
)

// Enrichment is the result of a lookup. An empty URL without a matching
// entry in Unavailable means the source had no match. Description comes
// with the poster lookup and is reported under FieldPoster.
type Enrichment struct {
	PosterURL   string  `json:"posterUrl,omitempty"`
	Description string  `json:"description,omitempty"`
	TrailerURL  string  `json:"trailerUrl,omitempty"`
	Unavailable []Field `json:"unavailable,omitempty"`
}

// Service is the Gateway backed by TMDB and YouTube.
type Service struct {
	posters  PosterFinder
	trailers TrailerFinder
	timeout  time.Duration
	cache    *ttlcache.Cache[string, Enrichment]
	group    singleflight.Group
	log      *slog.Logger
}

var _ Gateway = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds each upstream lookup.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithCacheTTL sets how long complete results are remembered.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = ttlcache.New[string, Enrichment](ttl)
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// NewService creates an enrichment service. Either finder may be nil, in
// which case its field is always reported unavailable.
func NewService(posters PosterFinder, trailers TrailerFinder, opts ...Option) *Service {
	s := &Service{
		posters:  posters,
		trailers: trailers,
		timeout:  defaultTimeout,
		cache:    ttlcache.New[string, Enrichment](defaultCacheTTL),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sources reports which finders are configured.
func (s *Service) Sources() (poster, trailer bool) {
	return s.posters != nil, s.trailers != nil
}

// Enrich resolves poster and trailer for q. It returns an error only when
// every field failed; partial failures are listed in Enrichment.Unavailable.
// Concurrent calls for the same title share one upstream lookup. A caller
// whose ctx ends stops waiting without cancelling the shared lookup.
func (s *Service) Enrich(ctx context.Context, q Query) (Enrichment, error) {
	if q.Title == "" {
		return Enrichment{}, ErrEmptyTitle
	}
	key := titles.Key(q.Title, q.Year) + "|" + q.IMDbID
	if e, ok := s.cache.Get(key); ok {
		s.log.Debug("cache hit", "title", q.Title, "year", q.Year)
		return e, nil
	}

	ch := s.group.DoChan(key, func() (any, error) {
		e, complete, err := s.fetch(context.WithoutCancel(ctx), q)
		if complete && err == nil {
			s.cache.Set(key, e)
		}
		return e, err
	})

	select {
	case <-ctx.Done():
		return Enrichment{}, fmt.Errorf("%w: %w", ErrEnrichmentUnavailable, ctx.Err())
	case res := <-ch:
		e, _ := res.Val.(Enrichment)
		return e, res.Err
	}
}

// fetch runs both lookups. complete is false when a field failed for a
// reason that may clear up on retry.
func (s *Service) fetch(ctx context.Context, q Query) (e Enrichment, complete bool, err error) {
	var (
		posterErr, trailerErr error
		g                     errgroup.Group
	)
	g.Go(func() error {
		var art tmdb.Artwork
		art, posterErr = s.poster(ctx, q)
		e.PosterURL, e.Description = art.PosterURL, art.Description
		return nil
	})
	g.Go(func() error {
		e.TrailerURL, trailerErr = s.trailer(ctx, q)
		return nil
	})
	_ = g.Wait()

	if posterErr != nil {
		e.Unavailable = append(e.Unavailable, FieldPoster)
		s.logFailure(q, posterErr)
	}
	if trailerErr != nil {
		e.Unavailable = append(e.Unavailable, FieldTrailer)
		s.logFailure(q, trailerErr)
	}
	complete = !transient(posterErr) && !transient(trailerErr)
	if posterErr != nil && trailerErr != nil {
		return e, complete, errors.Join(posterErr, trailerErr)
	}
	return e, complete, nil
}

func (s *Service) logFailure(q Query, err error) {
	level := slog.LevelWarn
	if !transient(err) {
		level = slog.LevelDebug
	}
	s.log.Log(context.Background(), level, "lookup failed", "title", q.Title, "year", q.Year, "error", err)
}

func transient(err error) bool {
	return err != nil && !errors.Is(err, errNotConfigured)
}

func (s *Service) poster(ctx context.Context, q Query) (tmdb.Artwork, error) {
	if s.posters == nil {
		return tmdb.Artwork{}, &FieldError{Field: FieldPoster, Err: errNotConfigured}
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	art, err := s.posters.FindArtwork(ctx, q.Title, q.Year, q.IMDbID)
	if errors.Is(err, tmdb.ErrNotFound) {
		return tmdb.Artwork{}, nil
	}
	if err != nil {
		return tmdb.Artwork{}, &FieldError{Field: FieldPoster, Err: err}
	}
	return art, nil
}

func (s *Service) trailer(ctx context.Context, q Query) (string, error) {
	if s.trailers == nil {
		return "", &FieldError{Field: FieldTrailer, Err: errNotConfigured}
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	u, err := s.trailers.FindTrailer(ctx, q.Title, q.Year)
	if errors.Is(err, youtube.ErrNoResults) {
		return "", nil
	}
	if err != nil {
		return "", &FieldError{Field: FieldTrailer, Err: err}
	}
	return u, nil
}

// Prune drops expired cache entries and returns how many were removed.
func (s *Service) Prune() int {
	return s.cache.Prune()
}
