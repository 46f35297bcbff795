package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call runs past the execution timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrBadExpr is returned for expressions EvalExpr cannot evaluate.
	ErrBadExpr = errors.New("unsupported expression")

	// ErrNotFunction is returned when a called global is not a function.
	ErrNotFunction = errors.New("not a function")
)
