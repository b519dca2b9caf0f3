package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client wraps HTTP calls to the reelroll server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new reelroll API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is an error response from the server.
type APIError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server error %d (%s): %s", e.Status, e.Code, e.Message)
}

func (c *Client) get(path string, query url.Values, result any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	resp, err := c.httpClient.Get(target)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(body, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = string(body)
		}
		return apiErr
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// API response types (mirror server types)

type Movie struct {
	ID             string   `json:"id"`
	PrimaryTitle   string   `json:"primaryTitle"`
	OriginalTitle  string   `json:"originalTitle,omitempty"`
	StartYear      *int     `json:"startYear"`
	RuntimeMinutes *int     `json:"runtimeMinutes"`
	Genres         []string `json:"genres"`
	AverageRating  *float64 `json:"averageRating"`
}

type EnrichmentResponse struct {
	Title       string   `json:"title"`
	Year        int      `json:"year,omitempty"`
	IMDbID      string   `json:"imdbId,omitempty"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	TrailerURL  string   `json:"trailerUrl,omitempty"`
	Description string   `json:"description,omitempty"`
	Unavailable []string `json:"unavailable,omitempty"`
}

type StatusResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Catalog struct {
		Movies int `json:"movies"`
		Rated  int `json:"rated"`
	} `json:"catalog"`
	Enrichment struct {
		Poster  bool `json:"poster"`
		Trailer bool `json:"trailer"`
	} `json:"enrichment"`
}

type FiltersResponse struct {
	Filters map[string]any `json:"filters"`
	Active  []string       `json:"active"`
}

// API methods

func (c *Client) Movies(q url.Values) ([]Movie, error) {
	var result []Movie
	if err := c.get("/api/v1/movies", q, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Random(q url.Values) (*Movie, error) {
	var result Movie
	if err := c.get("/api/v1/movies/random", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Movie(id string) (*Movie, error) {
	var result Movie
	if err := c.get("/api/v1/movies/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Enrich(title string, year int, id string) (*EnrichmentResponse, error) {
	q := url.Values{}
	if title != "" {
		q.Set("title", title)
	}
	if year > 0 {
		q.Set("year", strconv.Itoa(year))
	}
	if id != "" {
		q.Set("id", id)
	}
	var result EnrichmentResponse
	if err := c.get("/api/v1/enrich", q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Status() (*StatusResponse, error) {
	var result StatusResponse
	if err := c.get("/api/v1/status", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Filters() (*FiltersResponse, error) {
	var result FiltersResponse
	if err := c.get("/api/v1/filters", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
