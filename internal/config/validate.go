// internal/config/validate.go
package config

import (
	"fmt"
	"slices"

	"github.com/vmunix/reelroll/internal/catalog"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validDrivers = map[string]bool{
	"sqlite": true, "postgres": true,
}

var knownTitleTypes = []catalog.TitleType{
	catalog.TypeMovie, catalog.TypeShort, catalog.TypeTVEpisode, catalog.TypeTVSeries,
	catalog.TypeTVMiniSeries, catalog.TypeTVSpecial, catalog.TypeTVMovie, catalog.TypeTVShort,
	catalog.TypeVideo, catalog.TypeVideoGame,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	// Server validation
	if c.Server.Port != 0 && (c.Server.Port < 1 || c.Server.Port > 65535) {
		errs = append(errs, fmt.Sprintf("server.port: must be between 1 and 65535, got %d", c.Server.Port))
	}
	if !validLogLevels[c.Server.LogLevel] {
		errs = append(errs, fmt.Sprintf("server.log_level: must be one of debug, info, warn, error; got %q", c.Server.LogLevel))
	}

	// Database validation
	if c.Database.Driver != "" && !validDrivers[c.Database.Driver] {
		errs = append(errs, fmt.Sprintf("database.driver: must be one of sqlite, postgres; got %q", c.Database.Driver))
	}
	if c.Database.Driver == "postgres" && c.Database.DSN == "" {
		errs = append(errs, "database.dsn: required when driver is postgres")
	}

	// Catalog validation
	if c.Catalog.DefaultPageSize < 0 {
		errs = append(errs, fmt.Sprintf("catalog.default_page_size: must be positive, got %d", c.Catalog.DefaultPageSize))
	}
	if c.Catalog.MaxPageSize < 0 {
		errs = append(errs, fmt.Sprintf("catalog.max_page_size: must be positive, got %d", c.Catalog.MaxPageSize))
	}
	if c.Catalog.MaxPageSize > 0 && c.Catalog.DefaultPageSize > c.Catalog.MaxPageSize {
		errs = append(errs, fmt.Sprintf("catalog.default_page_size: %d exceeds max_page_size %d",
			c.Catalog.DefaultPageSize, c.Catalog.MaxPageSize))
	}
	if c.Catalog.DefaultSort != "" {
		if _, ok := catalog.ParseSortOption(c.Catalog.DefaultSort); !ok {
			errs = append(errs, fmt.Sprintf("catalog.default_sort: unknown sort %q", c.Catalog.DefaultSort))
		}
	}

	// Filters validation
	if c.Filters.MinRuntime < 0 {
		errs = append(errs, "filters.min_runtime: must not be negative")
	}
	if c.Filters.MinVotes < 0 {
		errs = append(errs, "filters.min_votes: must not be negative")
	}
	if c.Filters.MinRating < 0 || c.Filters.MinRating > 10 {
		errs = append(errs, fmt.Sprintf("filters.min_rating: must be between 0 and 10, got %g", c.Filters.MinRating))
	}
	for _, t := range c.Filters.ExcludeTypes {
		if !slices.Contains(knownTitleTypes, catalog.TitleType(t)) {
			errs = append(errs, fmt.Sprintf("filters.exclude_types: unknown title type %q", t))
		}
	}
	if slices.Contains(c.Filters.ExcludeTypes, string(catalog.TypeMovie)) {
		errs = append(errs, "filters.exclude_types: excluding movie leaves nothing to list")
	}

	// Enrichment validation; an empty api_key disables the source
	if c.Enrichment.Timeout < 0 {
		errs = append(errs, "enrichment.timeout: must not be negative")
	}
	if c.Enrichment.CacheTTL < 0 {
		errs = append(errs, "enrichment.cache_ttl: must not be negative")
	}

	return errs
}
