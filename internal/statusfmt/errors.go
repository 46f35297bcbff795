package statusfmt

import (
	"errors"
	"fmt"
)

var (
	// ErrTrailingPercent indicates a format ending in a lone '%'.
	ErrTrailingPercent = errors.New("trailing '%' in format")

	// ErrUnterminated indicates a group or expression item missing its closing delimiter.
	ErrUnterminated = errors.New("unterminated item")

	// ErrUnknownItem indicates an item letter that is not supported.
	ErrUnknownItem = errors.New("unknown item")

	// ErrNoEvaluator indicates an expression item with no evaluator configured.
	ErrNoEvaluator = errors.New("no expression evaluator")

	// ErrRecursion indicates expression results nesting too deep.
	ErrRecursion = errors.New("format recursion too deep")
)

// SyntaxError locates a parse failure in a format string.
type SyntaxError struct {
	Format string
	Offset int
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("statusfmt: %v at offset %d in %q", e.Err, e.Offset, e.Format)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}
