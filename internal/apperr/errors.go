package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrConflict indicates a state conflict, e.g. a booking that already has live offers.
var ErrConflict = errors.New("conflict")

// ErrNotFound indicates that the requested booking or offer does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyResolved indicates that the offer has already left the pending state.
var ErrAlreadyResolved = errors.New("offer already resolved")

// ErrExpired indicates that the offer deadline has passed.
var ErrExpired = errors.New("offer expired")

// IsClient reports whether err is a non-retryable, client-visible failure.
func IsClient(err error) bool {
	return errors.Is(err, ErrInvalid) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAlreadyResolved) ||
		errors.Is(err, ErrExpired)
}
