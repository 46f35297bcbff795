package config

import (
	"errors"
	"fmt"

	"github.com/dshills/stormline/internal/statusline/tiles"
	"github.com/dshills/stormline/internal/theme"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownTile indicates a section lists a tile name with no constructor.
	ErrUnknownTile = tiles.ErrUnknownTile

	// ErrInvalidColor indicates a color that is neither a palette name nor "#rrggbb".
	ErrInvalidColor = theme.ErrInvalidColor

	// ErrInvalidLevel indicates an unknown log_level.
	ErrInvalidLevel = errors.New("invalid log level")

	// ErrInvalidCwd indicates a cwd alias without a path or name.
	ErrInvalidCwd = errors.New("invalid cwd alias")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes an invalid setting.
type ValidationError struct {
	// Path is the dotted key of the setting, e.g. "statusline.left".
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
