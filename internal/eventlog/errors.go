package eventlog

import "errors"

// Domain-specific errors for event log operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrAppendFailed is returned when an append could not be persisted.
	// Callers treat this as fatal: log integrity is safety-relevant.
	ErrAppendFailed = errors.New("eventlog: append not persisted")

	// ErrLogEmpty is returned when positioning a cursor on an empty log.
	ErrLogEmpty = errors.New("eventlog: log is empty")

	// ErrCursorAtEnd is returned when stepping a cursor past either end.
	// The cursor does not move.
	ErrCursorAtEnd = errors.New("eventlog: cursor at end of log")
)
