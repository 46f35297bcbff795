package autocmd

import "errors"

// Sentinel errors for the autocmd registry.
var (
	// ErrNoEvents is returned when an autocmd is created without events.
	ErrNoEvents = errors.New("no events given")

	// ErrNilCallback is returned when a nil callback is provided.
	ErrNilCallback = errors.New("callback cannot be nil")

	// ErrBadPattern is returned for malformed glob patterns.
	ErrBadPattern = errors.New("bad pattern")

	// ErrNotFound is returned when deleting an unknown handle.
	ErrNotFound = errors.New("autocmd not found")

	// ErrNoRunner is returned by CreateCommand when no command runner is set.
	ErrNoRunner = errors.New("no command runner")

	// ErrCallbackPanic is returned when a callback panics.
	ErrCallbackPanic = errors.New("autocmd callback panicked")
)
