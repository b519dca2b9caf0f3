package enrich

import (
	"errors"
	"fmt"
)

var (
	// ErrEnrichmentUnavailable indicates a lookup failed for a reason other
	// than "no match": timeout, network, upstream 5xx, missing credentials.
	ErrEnrichmentUnavailable = errors.New("enrichment unavailable")

	// ErrEmptyTitle is returned for a query without a title.
	ErrEmptyTitle = errors.New("title is required")

	errNotConfigured = errors.New("source not configured")
)

// FieldError records why one field could not be resolved.
type FieldError struct {
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap makes errors.Is match both ErrEnrichmentUnavailable and the cause.
func (e *FieldError) Unwrap() []error {
	return []error{ErrEnrichmentUnavailable, e.Err}
}
