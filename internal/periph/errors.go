package periph

import "errors"

// Domain-specific errors for peripheral operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrBadDateTime is returned by DateTime.Validate when a field is out
	// of range, meaning the hardware clock cannot be trusted.
	ErrBadDateTime = errors.New("periph: datetime field out of range")

	// ErrClockUnavailable is returned by clock implementations when the
	// bus transaction to the clock chip fails.
	ErrClockUnavailable = errors.New("periph: hardware clock unavailable")
)
