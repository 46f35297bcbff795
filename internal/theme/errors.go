package theme

import "errors"

var (
	// ErrInvalidColor indicates a color string that is not a hex color.
	ErrInvalidColor = errors.New("invalid color")

	// ErrUnknownColor indicates a palette name that does not exist.
	ErrUnknownColor = errors.New("unknown palette color")

	// ErrLinkCycle indicates highlight links that loop or nest too deep.
	ErrLinkCycle = errors.New("highlight link cycle")
)
