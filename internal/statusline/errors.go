package statusline

import (
	"errors"
	"fmt"
)

// ErrIconMissing indicates an icon-style tile rendered without an icon.
var ErrIconMissing = errors.New("icon style tile has no icon")

// HostQueryError reports a failed call into the host.
type HostQueryError struct {
	Op   string // e.g. "get_var", "measure"
	Name string // what was queried
	Err  error
}

// NewHostQueryError wraps err as a host query failure.
func NewHostQueryError(op, name string, err error) *HostQueryError {
	return &HostQueryError{Op: op, Name: name, Err: err}
}

func (e *HostQueryError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("host %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("host %s %q: %v", e.Op, e.Name, e.Err)
}

func (e *HostQueryError) Unwrap() error {
	return e.Err
}

// RenderFormatError reports a tile whose output breaks a formatting rule.
type RenderFormatError struct {
	Tile string // highlight name of the tile
	Err  error
}

func (e *RenderFormatError) Error() string {
	return fmt.Sprintf("render tile %s: %v", e.Tile, e.Err)
}

func (e *RenderFormatError) Unwrap() error {
	return e.Err
}
