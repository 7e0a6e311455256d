package apperrors

import "fmt"

// ValidationError: malformed input (bad enum, non-positive number, out-of-range coordinate).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation builds a ValidationError with a formatted reason.
func Validation(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// AuthorizationError: caller lacks the role required for the requested transition,
// including unauthenticated callers.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }

func Authorization(format string, args ...interface{}) error {
	return &AuthorizationError{Reason: fmt.Sprintf(format, args...)}
}

// InvalidStateError: the requested transition is illegal from the listing's current status.
type InvalidStateError struct {
	Current   string
	Requested string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("Cannot %s a listing in status %s", e.Requested, e.Current)
}

func InvalidState(current, requested string) error {
	return &InvalidStateError{Current: current, Requested: requested}
}

// ConflictError: lost a concurrency race on a conditional write.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

func Conflict(format string, args ...interface{}) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError: the listing id does not exist.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

func NotFound(format string, args ...interface{}) error {
	return &NotFoundError{Reason: fmt.Sprintf(format, args...)}
}

// StoreUnavailableError: the persistence layer could not be reached. Not retried
// here; retry policy belongs to the caller.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("Listing store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

func StoreUnavailable(err error) error {
	return &StoreUnavailableError{Err: err}
}
