package storage

import "errors"

// Domain-specific errors for store operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrNoRegion is returned by Read when the named region has never
	// been written.
	ErrNoRegion = errors.New("storage: region does not exist")

	// ErrWriteFailed is returned when a region write cannot be completed.
	// Callers persisting safety-relevant state treat this as fatal.
	ErrWriteFailed = errors.New("storage: region write failed")
)
