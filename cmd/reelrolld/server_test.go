package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/reelroll/internal/config"
)

func TestEnrichmentSources(t *testing.T) {
	tests := []struct {
		name            string
		cfg             config.Config
		poster, trailer bool
	}{
		{"no sections", config.Config{}, false, false},
		{"empty keys", config.Config{TMDB: &config.TMDBConfig{}, YouTube: &config.YouTubeConfig{}}, false, false},
		{"tmdb only", config.Config{TMDB: &config.TMDBConfig{APIKey: "k"}, YouTube: &config.YouTubeConfig{}}, true, false},
		{"both", config.Config{TMDB: &config.TMDBConfig{APIKey: "k"}, YouTube: &config.YouTubeConfig{APIKey: "k"}}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posters, trailers, tmdbClient := enrichmentSources(&tt.cfg)
			assert.Equal(t, tt.poster, posters != nil)
			assert.Equal(t, tt.poster, tmdbClient != nil)
			assert.Equal(t, tt.trailer, trailers != nil)
		})
	}
}
