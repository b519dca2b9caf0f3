// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/reelroll/internal/catalog"
)

// Config is the root configuration structure.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Catalog    CatalogConfig    `toml:"catalog"`
	Filters    FiltersConfig    `toml:"filters"`
	TMDB       *TMDBConfig      `toml:"tmdb"`
	YouTube    *YouTubeConfig   `toml:"youtube"`
	Enrichment EnrichmentConfig `toml:"enrichment"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

// DatabaseConfig selects the catalog backend. Path is used by sqlite, DSN by postgres.
type DatabaseConfig struct {
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
	DSN    string `toml:"dsn"`
}

// Source returns the data source name for sql.Open.
func (d DatabaseConfig) Source() string {
	if d.Driver == "postgres" {
		return d.DSN
	}
	return d.Path
}

type CatalogConfig struct {
	DefaultPageSize int    `toml:"default_page_size"`
	MaxPageSize     int    `toml:"max_page_size"`
	DefaultSort     string `toml:"default_sort"`
}

// FiltersConfig holds the process-wide eligibility rules.
type FiltersConfig struct {
	MinRuntime       int      `toml:"min_runtime"`
	ExcludeAdult     bool     `toml:"exclude_adult"`
	ExcludeTypes     []string `toml:"exclude_types"`
	ExcludeGenres    []string `toml:"exclude_genres"`
	MinVotes         int      `toml:"min_votes"`
	MinRating        float64  `toml:"min_rating"`
	ExcludeLanguages []string `toml:"exclude_languages"`
	MaxYear          int      `toml:"max_year"`
	// CapAtCurrentYear sets MaxYear to the current year when MaxYear is unset.
	CapAtCurrentYear bool     `toml:"cap_at_current_year"`
	ExcludeRegions   []string `toml:"exclude_regions"`
	ExcludeDirectors []string `toml:"exclude_directors"`
	ExcludeActors    []string `toml:"exclude_actors"`
	ExcludeKeywords  []string `toml:"exclude_keywords"`
}

// Spec resolves the configured filters into a FilterSpec as of now.
func (f FiltersConfig) Spec(now time.Time) catalog.FilterSpec {
	spec := catalog.FilterSpec{
		MinRuntime:       f.MinRuntime,
		ExcludeAdult:     f.ExcludeAdult,
		ExcludeGenres:    f.ExcludeGenres,
		MinVotes:         f.MinVotes,
		MinRating:        f.MinRating,
		ExcludeLanguages: f.ExcludeLanguages,
		MaxYear:          f.MaxYear,
		ExcludeRegions:   f.ExcludeRegions,
		ExcludeDirectors: f.ExcludeDirectors,
		ExcludeActors:    f.ExcludeActors,
		ExcludeKeywords:  f.ExcludeKeywords,
	}
	for _, t := range f.ExcludeTypes {
		spec.ExcludeTypes = append(spec.ExcludeTypes, catalog.TitleType(t))
	}
	if spec.MaxYear == 0 && f.CapAtCurrentYear {
		spec.MaxYear = now.Year()
	}
	return spec
}

type TMDBConfig struct {
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	ImageBase string `toml:"image_base"`
}

// Enabled reports whether posters can be looked up. A section with an empty
// api_key is treated as absent.
func (c *TMDBConfig) Enabled() bool {
	return c != nil && c.APIKey != ""
}

type YouTubeConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// Enabled reports whether trailers can be looked up.
func (c *YouTubeConfig) Enabled() bool {
	return c != nil && c.APIKey != ""
}

type EnrichmentConfig struct {
	Timeout       time.Duration `toml:"timeout"`
	CacheTTL      time.Duration `toml:"cache_ttl"`
	PruneInterval time.Duration `toml:"prune_interval"`
}

// Load reads, parses, and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := load(path)
	if err != nil {
		return nil, err
	}

	cfgErr := &ConfigError{Path: path, Missing: missing, Errors: cfg.Validate()}
	if cfgErr.HasErrors() {
		return nil, cfgErr
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, applying
// defaults but skipping validation. Unresolved variables are left in place.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := load(path)
	return cfg, err
}

func load(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = "./data/reelroll.db"
	}
	if c.Catalog.DefaultPageSize == 0 {
		c.Catalog.DefaultPageSize = 32
	}
	if c.Catalog.MaxPageSize == 0 {
		c.Catalog.MaxPageSize = 100
	}
	if c.Catalog.DefaultSort == "" {
		c.Catalog.DefaultSort = string(catalog.DefaultSort)
	}
	if c.Enrichment.Timeout == 0 {
		c.Enrichment.Timeout = 8 * time.Second
	}
	if c.Enrichment.CacheTTL == 0 {
		c.Enrichment.CacheTTL = 24 * time.Hour
	}
	if c.Enrichment.PruneInterval == 0 {
		c.Enrichment.PruneInterval = 10 * time.Minute
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// substituteEnvVars replaces variable references with environment values.
// Unresolved references are left unchanged and reported in missing.
// An empty value counts as unset for the :- and :? forms.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	out := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		m := envVarPattern.FindStringSubmatch(match)
		name, op, arg := m[1], m[2], m[3]
		value, ok := os.LookupEnv(name)

		switch op {
		case ":-":
			if value == "" {
				return arg
			}
			return value
		case ":?":
			if value == "" {
				missing = append(missing, name+": "+strings.TrimSpace(arg))
				return match
			}
			return value
		default:
			if !ok {
				missing = append(missing, name)
				return match
			}
			return value
		}
	})
	return out, missing
}
