package usecase

import "errors"

// Failure taxonomy surfaced to the transport layer. Every operation either
// commits fully or fails with one of these; there is no partial recovery.
var (
	// ErrNotFound: the referenced order or item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden: the caller may not perform the operation, or the
	// requested transition is illegal for the order's current status.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation: malformed input, rejected before any transaction opens.
	ErrValidation = errors.New("invalid input")

	// ErrConflict: the underlying transaction could not commit. The whole
	// operation rolled back, so the caller can safely retry it.
	ErrConflict = errors.New("transaction conflict")
)
