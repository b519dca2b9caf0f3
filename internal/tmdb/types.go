// Package tmdb provides a client for The Movie Database API.
package tmdb

import "strconv"

// Movie is the subset of TMDB movie metadata used for artwork lookups.
type Movie struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"` // "2024-03-01"
	PosterPath    string  `json:"poster_path"`  // "/abc123.jpg"
	BackdropPath  string  `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	VoteCount     int     `json:"vote_count"`
	Popularity    float64 `json:"popularity"`
}

// Year extracts the year from ReleaseDate.
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// Artwork is what a title lookup resolves for display. Either field may be
// empty.
type Artwork struct {
	PosterURL   string
	Description string
}

// findResponse is the body of /3/find/{external_id}.
type findResponse struct {
	MovieResults []Movie `json:"movie_results"`
}

// searchResponse is the body of /3/search/movie.
type searchResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalResults int     `json:"total_results"`
}

// apiError is the error body TMDB returns with non-2xx statuses.
type apiError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
