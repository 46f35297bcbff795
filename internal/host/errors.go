package host

import "errors"

var (
	// ErrNoBuffer is returned when an operation needs a current buffer.
	ErrNoBuffer = errors.New("no current buffer")

	// ErrUnknownOption is returned for options the session does not hold.
	ErrUnknownOption = errors.New("unknown option")

	// ErrOptionType is returned when an option has a different type than requested.
	ErrOptionType = errors.New("option type mismatch")
)
