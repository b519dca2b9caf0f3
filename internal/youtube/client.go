// Package youtube finds movie trailers through the YouTube Data API v3 search endpoint.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vmunix/reelroll/pkg/titles"
)

const (
	defaultBaseURL = "https://www.googleapis.com/youtube/v3"
	embedBase      = "https://www.youtube.com/embed/"
)

var (
	// ErrNoResults is returned when the search yields no video.
	ErrNoResults = errors.New("no trailer found")
	// ErrQuotaExceeded is returned when the API key is out of quota or rejected.
	ErrQuotaExceeded = errors.New("youtube: quota exceeded or key rejected")
)

// Client is a YouTube Data API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new YouTube client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Items []struct {
		ID struct {
			Kind    string `json:"kind"`
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// FindTrailer searches for "<title> <year> trailer" and returns an embed URL
// for the top video result.
func (c *Client) FindTrailer(ctx context.Context, title string, year int) (string, error) {
	id, err := c.SearchVideo(ctx, titles.TrailerQuery(title, year))
	if err != nil {
		return "", err
	}
	return EmbedURL(id), nil
}

// SearchVideo returns the id of the top video result for query.
func (c *Client) SearchVideo(ctx context.Context, query string) (string, error) {
	q := url.Values{
		"part":       {"snippet"},
		"q":          {query},
		"type":       {"video"},
		"maxResults": {"1"},
		"key":        {c.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		if resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: %s", ErrQuotaExceeded, e.Error.Message)
		}
		if e.Error.Message != "" {
			return "", fmt.Errorf("YouTube API error: %s: %s", resp.Status, e.Error.Message)
		}
		return "", fmt.Errorf("YouTube API error: %s", resp.Status)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	for _, item := range sr.Items {
		if item.ID.VideoID != "" {
			return item.ID.VideoID, nil
		}
	}
	return "", ErrNoResults
}

// EmbedURL returns the embeddable player URL for a video id.
func EmbedURL(videoID string) string {
	return embedBase + url.PathEscape(videoID)
}
