package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vmunix/reelroll/internal/ttlcache"
	"github.com/vmunix/reelroll/pkg/titles"
)

const (
	defaultBaseURL   = "https://api.themoviedb.org"
	defaultImageBase = "https://image.tmdb.org/t/p"
	defaultCacheTTL  = 24 * time.Hour
	// PosterSize is the rendition used for poster URLs.
	PosterSize = "w500"
)

var (
	// ErrNotFound is returned when no movie or poster matches.
	ErrNotFound = errors.New("movie not found")
	// ErrUnauthorized is returned when TMDB rejects the API key.
	ErrUnauthorized = errors.New("tmdb: invalid api key")
)

// Client is a TMDB API client.
type Client struct {
	apiKey     string
	baseURL    string
	imageBase  string
	httpClient *http.Client
	cache      *ttlcache.Cache[string, []Movie]
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithImageBase sets the image CDN prefix poster paths are joined to.
func WithImageBase(url string) Option {
	return func(c *Client) {
		c.imageBase = strings.TrimRight(url, "/")
	}
}

// WithCacheTTL sets the cache TTL.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = ttlcache.New[string, []Movie](ttl)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:    apiKey,
		baseURL:   defaultBaseURL,
		imageBase: defaultImageBase,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache: ttlcache.New[string, []Movie](defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindByIMDbID resolves an IMDb id (tt...) to a TMDB movie.
func (c *Client) FindByIMDbID(ctx context.Context, imdbID string) (*Movie, error) {
	key := "find:" + imdbID
	movies, ok := c.cache.Get(key)
	if !ok {
		var resp findResponse
		q := url.Values{"external_source": {"imdb_id"}}
		if err := c.get(ctx, "/3/find/"+url.PathEscape(imdbID), q, &resp); err != nil {
			return nil, err
		}
		movies = resp.MovieResults
		c.cache.Set(key, movies)
	}
	if len(movies) == 0 {
		return nil, ErrNotFound
	}
	return &movies[0], nil
}

// SearchMovie searches movies by title. A year > 0 narrows by primary release year.
func (c *Client) SearchMovie(ctx context.Context, query string, year int) ([]Movie, error) {
	key := "search:" + titles.Key(query, year)
	if movies, ok := c.cache.Get(key); ok {
		return movies, nil
	}

	q := url.Values{"query": {query}, "include_adult": {"false"}}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	var resp searchResponse
	if err := c.get(ctx, "/3/search/movie", q, &resp); err != nil {
		return nil, err
	}
	c.cache.Set(key, resp.Results)
	return resp.Results, nil
}

// FindMovie resolves a title to its best TMDB match. The IMDb id is tried
// first when given; otherwise, or when TMDB has no poster for the id, the
// title is searched and the closest match is used.
func (c *Client) FindMovie(ctx context.Context, title string, year int, imdbID string) (*Movie, error) {
	var byID *Movie
	if imdbID != "" {
		m, err := c.FindByIMDbID(ctx, imdbID)
		switch {
		case err == nil && m.PosterPath != "":
			return m, nil
		case err == nil:
			byID = m
		case !errors.Is(err, ErrNotFound):
			return nil, err
		}
	}
	if title == "" {
		if byID != nil {
			return byID, nil
		}
		return nil, ErrNotFound
	}

	results, err := c.SearchMovie(ctx, title, year)
	if err != nil {
		return nil, err
	}
	candidates := make([]titles.Candidate, len(results))
	for i, m := range results {
		candidates[i] = titles.Candidate{Title: m.Title, OriginalTitle: m.OriginalTitle, Year: m.Year()}
	}
	match := titles.Best(title, year, candidates)
	switch {
	case match.Index >= 0 && (results[match.Index].PosterPath != "" || byID == nil):
		return &results[match.Index], nil
	case byID != nil:
		return byID, nil
	}
	return nil, ErrNotFound
}

// FindArtwork returns the poster URL and plot overview of the best match
// for a title. ErrNotFound means TMDB has neither.
func (c *Client) FindArtwork(ctx context.Context, title string, year int, imdbID string) (Artwork, error) {
	m, err := c.FindMovie(ctx, title, year, imdbID)
	if err != nil {
		return Artwork{}, err
	}
	art := Artwork{
		PosterURL:   c.PosterURL(m.PosterPath, PosterSize),
		Description: strings.TrimSpace(m.Overview),
	}
	if art.PosterURL == "" && art.Description == "" {
		return Artwork{}, ErrNotFound
	}
	return art, nil
}

// FindPoster returns the poster URL for a movie. ErrNotFound means no
// poster exists.
func (c *Client) FindPoster(ctx context.Context, title string, year int, imdbID string) (string, error) {
	art, err := c.FindArtwork(ctx, title, year, imdbID)
	if err != nil {
		return "", err
	}
	if art.PosterURL == "" {
		return "", ErrNotFound
	}
	return art.PosterURL, nil
}

// PosterURL returns the full image URL for a poster path.
// Size can be: w92, w154, w185, w342, w500, w780, original
func (c *Client) PosterURL(path, size string) string {
	if path == "" {
		return ""
	}
	return c.imageBase + "/" + size + path
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("api_key", c.apiKey)
	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	default:
		var apiErr apiError
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.StatusMessage != "" {
			return fmt.Errorf("TMDB API error: %s: %s", resp.Status, apiErr.StatusMessage)
		}
		return fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Prune drops expired cache entries.
func (c *Client) Prune() int {
	return c.cache.Prune()
}
