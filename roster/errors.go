/*
errors.go - Centralized error types for the roster

PURPOSE:
  All error categories in one place. Callers classify with errors.Is and the
  helpers at the bottom; the HTTP layer maps categories to status codes.

ERROR CATEGORIES:
  1. Validation - malformed input, rejected before any write
  2. Not found  - unknown id, or a report filter with no eligible employee
  3. Conflict   - duplicate holiday, duplicate (employee, date) after retry

STORAGE ERRORS:
  Store implementations translate unique-index violations into
  ErrDuplicateEntry / ErrDuplicateHoliday / ErrDuplicateUsername. All three
  unwrap to ErrConflict.

SEE ALSO:
  - assign/reconciler.go: Retries once on ErrDuplicateEntry
  - api/handlers.go: writeDomainError
*/
package roster

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")

	// ErrDuplicateEntry is returned when an (employee, date) pair already has
	// an entry. The reconciler retries exactly once when it sees it.
	ErrDuplicateEntry = fmt.Errorf("%w: shift already assigned for employee and date", ErrConflict)

	// ErrDuplicateHoliday is returned for a second definition of the same
	// day/month and jurisdiction.
	ErrDuplicateHoliday = fmt.Errorf("%w: holiday already defined for day and jurisdiction", ErrConflict)

	ErrDuplicateUsername = fmt.Errorf("%w: username already taken", ErrConflict)

	// ErrInvalidPeriod is returned when a date range ends before it starts.
	ErrInvalidPeriod = &ValidationError{Field: "fecha_fin", Message: "end before start"}
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError names what was looked up.
type NotFoundError struct {
	Kind string
	ID   any
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return e.Kind + " not found"
	}
	return fmt.Sprintf("%s %v not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// =============================================================================
// ERROR HELPERS
// =============================================================================

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsClientError returns true if the error is due to the caller's input.
func IsClientError(err error) bool {
	return IsValidation(err) || IsNotFound(err) || IsConflict(err)
}
