package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	v1 "github.com/vmunix/reelroll/internal/api/v1"
	"github.com/vmunix/reelroll/internal/catalog"
	"github.com/vmunix/reelroll/internal/config"
	"github.com/vmunix/reelroll/internal/enrich"
	"github.com/vmunix/reelroll/internal/migrations"
	"github.com/vmunix/reelroll/internal/server"
	"github.com/vmunix/reelroll/internal/tmdb"
	"github.com/vmunix/reelroll/internal/youtube"
)

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runServer(configPath string, migrateOnly bool) error {
	// Load config
	path, err := config.Resolve(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// Create logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Server.LogLevel),
	}))

	db, err := openCatalog(cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	// Run migrations
	if _, err := db.Exec(migrations.CatalogSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if migrateOnly {
		logger.Info("catalog schema applied", "driver", cfg.Database.Driver)
		return nil
	}

	dialect, err := catalog.DialectFor(cfg.Database.Driver)
	if err != nil {
		return err
	}
	store := catalog.NewStore(db, dialect)

	// === Enrichment sources (optional - nil if not configured) ===
	posters, trailers, tmdbClient := enrichmentSources(cfg)

	deps := v1.ServerDeps{Catalog: store}
	pruners := []server.Pruner{}
	if posters != nil || trailers != nil {
		svc := enrich.NewService(posters, trailers,
			enrich.WithTimeout(cfg.Enrichment.Timeout),
			enrich.WithCacheTTL(cfg.Enrichment.CacheTTL),
			enrich.WithLogger(logger.With("component", "enrich")),
		)
		deps.Gateway = svc
		pruners = append(pruners, svc)
	}
	if tmdbClient != nil {
		pruners = append(pruners, tmdbClient)
	}

	sortOpt, _ := catalog.ParseSortOption(cfg.Catalog.DefaultSort)
	filters := cfg.Filters.Spec(time.Now())
	api, err := v1.New(deps, v1.Config{
		Version:         version,
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
		DefaultSort:     sortOpt,
		Filters:         filters,
	}, logger)
	if err != nil {
		return fmt.Errorf("api: %w", err)
	}

	// Start server
	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	logger.Info("server starting",
		"addr", addr,
		"driver", cfg.Database.Driver,
		"tmdb", posters != nil,
		"youtube", trailers != nil,
		"filters", strings.Join(filters.Active(), ","),
		"log_level", cfg.Server.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := server.NewRunner(api.Handler(), server.Config{
		Addr:            addr,
		PruneInterval:   cfg.Enrichment.PruneInterval,
		ShutdownTimeout: 30 * time.Second,
	}, logger, pruners...)
	if err := runner.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

// openCatalog opens and pings the configured catalog database.
func openCatalog(dbCfg config.DatabaseConfig) (*sql.DB, error) {
	if dbCfg.Driver == "sqlite" {
		// Ensure database directory exists
		if err := os.MkdirAll(filepath.Dir(dbCfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open(dbCfg.Driver, dbCfg.Source())
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// enrichmentSources builds the upstream clients whose sections carry an API key.
func enrichmentSources(cfg *config.Config) (posters enrich.PosterFinder, trailers enrich.TrailerFinder, tmdbClient *tmdb.Client) {
	if cfg.TMDB.Enabled() {
		opts := []tmdb.Option{tmdb.WithCacheTTL(cfg.Enrichment.CacheTTL)}
		if cfg.TMDB.BaseURL != "" {
			opts = append(opts, tmdb.WithBaseURL(cfg.TMDB.BaseURL))
		}
		if cfg.TMDB.ImageBase != "" {
			opts = append(opts, tmdb.WithImageBase(cfg.TMDB.ImageBase))
		}
		tmdbClient = tmdb.NewClient(cfg.TMDB.APIKey, opts...)
		posters = tmdbClient
	}
	if cfg.YouTube.Enabled() {
		var opts []youtube.Option
		if cfg.YouTube.BaseURL != "" {
			opts = append(opts, youtube.WithBaseURL(cfg.YouTube.BaseURL))
		}
		trailers = youtube.NewClient(cfg.YouTube.APIKey, opts...)
	}
	return posters, trailers, tmdbClient
}
