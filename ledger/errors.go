/*
errors.go - Centralized error types for the ledger

PURPOSE:
  All ledger errors in one place. The API layer maps these to HTTP status
  codes; callers inside the process use errors.Is().

ERROR CATEGORIES:
  1. Validation errors - rejected synchronously, prior state preserved
  2. Lifecycle errors - operation issued before the store finished loading
  3. Snapshot errors - persistence-level misses
*/
package ledger

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotReady is returned when a mutation or query arrives before Load
	// has completed. The boot lifecycle is uninitialized -> loading -> ready.
	ErrNotReady = errors.New("ledger store not ready")

	// ErrUnknownWorker is returned for a kind outside cook/maid/milk.
	ErrUnknownWorker = errors.New("unknown worker kind")

	// ErrUnknownShift is returned for a shift outside morning/evening.
	ErrUnknownShift = errors.New("unknown shift")

	// ErrNoShiftsEnabled rejects a settings update that would disable both
	// shifts. At least one must stay enabled for attendance to be meaningful.
	ErrNoShiftsEnabled = errors.New("at least one shift must be enabled")

	// ErrSundayDisabled rejects attendance entry on a Sunday for a worker
	// whose settings exclude Sundays.
	ErrSundayDisabled = errors.New("sunday attendance is disabled for this worker")

	// ErrNonPositiveAmount rejects a payment that is zero or negative.
	ErrNonPositiveAmount = errors.New("payment amount must be positive")

	// ErrNegativeSetting rejects negative salary, rate, or default quantity.
	ErrNegativeSetting = errors.New("setting value must not be negative")

	// ErrInvalidDate is returned for a date key that is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrSnapshotNotFound is returned by SnapshotStore implementations when
	// no blob exists under a version key. During migration this is a normal
	// fall-through, not a failure.
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// IsValidation reports whether the error is a user-facing validation
// rejection rather than an internal failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoShiftsEnabled) ||
		errors.Is(err, ErrSundayDisabled) ||
		errors.Is(err, ErrNonPositiveAmount) ||
		errors.Is(err, ErrNegativeSetting) ||
		errors.Is(err, ErrUnknownShift) ||
		errors.Is(err, ErrInvalidDate)
}
