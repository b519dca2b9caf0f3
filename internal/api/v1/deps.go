package v1

import (
	"errors"

	"github.com/vmunix/reelroll/internal/catalog"
	"github.com/vmunix/reelroll/internal/enrich"
)

// ErrMissingDependency is returned when a required dependency is nil.
var ErrMissingDependency = errors.New("missing required dependency")

// SourceReporter is implemented by gateways that can tell which upstream
// sources are configured.
type SourceReporter interface {
	Sources() (poster, trailer bool)
}

// ServerDeps contains all dependencies for the API server.
// Required dependencies must be non-nil; optional dependencies may be nil.
type ServerDeps struct {
	// Required dependencies
	Catalog catalog.Catalog

	// Optional dependencies (nil if not configured)
	Gateway enrich.Gateway
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Catalog == nil {
		return errors.New("catalog is required")
	}
	return nil
}
