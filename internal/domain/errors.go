package domain

import "errors"

// Domain errors (no external dependencies). The stock engine returns the
// most specific kind and never swallows repository errors.
var (
	// ErrInvalidInput covers all validation failures: bad quantities,
	// movement deltas out of bounds, empty reasons, past replenishment
	// dates. Never retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound means the warehouse or stock line does not exist, or does
	// not belong to the stated tenant/warehouse.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict means a concurrent commit invalidated the caller's view
	// of the stock line (stale version or serialization failure). Safe to
	// retry after re-reading.
	ErrConflict = errors.New("conflict with current state")

	// ErrStorage means the repository could not complete an atomic commit
	// for infrastructural reasons. Never assumed partially committed.
	ErrStorage = errors.New("storage failure")
)
