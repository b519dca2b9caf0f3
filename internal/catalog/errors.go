package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPlan indicates bad pagination or sort input. Callers can
	// recover by correcting the request.
	ErrInvalidPlan = errors.New("invalid plan")

	// ErrStoreUnavailable indicates the backing store could not serve the query.
	ErrStoreUnavailable = errors.New("catalog store unavailable")

	// ErrNoEligibleTitles indicates a random pick found nothing to choose from.
	ErrNoEligibleTitles = errors.New("no eligible titles")

	// ErrNotFound indicates the requested movie doesn't exist.
	ErrNotFound = errors.New("not found")
)

// PlanError describes why a plan was rejected.
type PlanError struct {
	Field  string
	Reason string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("invalid plan: %s %s", e.Field, e.Reason)
}

// Unwrap makes errors.Is(err, ErrInvalidPlan) hold.
func (e *PlanError) Unwrap() error {
	return ErrInvalidPlan
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
