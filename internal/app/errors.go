package app

import "errors"

// Application errors.
var (
	// ErrQuit signals that the preview should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning indicates the preview is already running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrUnknownLine indicates a line name other than statusline or winbar.
	ErrUnknownLine = errors.New("unknown line")

	// ErrUnknownCommand indicates an autocmd command the preview cannot run.
	ErrUnknownCommand = errors.New("unknown command")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
