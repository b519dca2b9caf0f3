// Package server runs the HTTP API and its background maintenance.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

// Pruner drops expired cache entries and reports how many were removed.
type Pruner interface {
	Prune() int
}

// Config for the server runner.
type Config struct {
	Addr            string
	PruneInterval   time.Duration
	ShutdownTimeout time.Duration
}

// Runner manages the HTTP server and the cache pruner.
type Runner struct {
	handler http.Handler
	pruners []Pruner
	config  Config
	logger  *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(handler http.Handler, cfg Config, logger *slog.Logger, pruners ...Pruner) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PruneInterval <= 0 {
		cfg.PruneInterval = 10 * time.Minute
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Runner{
		handler: handler,
		pruners: pruners,
		config:  cfg,
		logger:  logger,
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", r.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", r.config.Addr, err)
	}
	return r.Serve(ctx, ln)
}

// Serve runs all components on ln.
// It blocks until the context is canceled or a component fails, then shuts
// the HTTP server down gracefully.
func (r *Runner) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           r.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r.logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		r.runPruner(ctx)
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.config.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		r.logger.Info("http server stopped")
		return nil
	})

	return g.Wait()
}

func (r *Runner) runPruner(ctx context.Context) {
	if len(r.pruners) == 0 {
		return
	}
	log := r.logger.With("component", "pruner")
	ticker := time.NewTicker(r.config.PruneInterval)
	defer ticker.Stop()

	log.Info("pruner started", "interval", r.config.PruneInterval.String())

	for {
		select {
		case <-ctx.Done():
			log.Info("pruner stopped")
			return
		case <-ticker.C:
			r.prune(log)
		}
	}
}

func (r *Runner) prune(log *slog.Logger) {
	removed := 0
	for _, p := range r.pruners {
		removed += p.Prune()
	}
	if removed > 0 {
		log.Debug("pruned cache entries", "removed", removed)
	}
}
