package statusline

import "github.com/dshills/stormline/internal/theme"

// Styler installs highlight groups in the host.
type Styler interface {
	SetHighlight(name string, style theme.HighlightStyle) error
}

// Measurer returns the display width of an evaluated format string.
type Measurer interface {
	MeasureWidth(format string) (int, error)
}

// Host is everything a Line needs from the editor.
type Host interface {
	Styler
	Measurer
	// Filetype returns the file type of the current buffer.
	Filetype() (string, error)
}
