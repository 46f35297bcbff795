package tiles

import (
	"github.com/dshills/stormline/internal/theme"
)

// Mode is the editor mode as shown on the status line.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
	ModeVisual
	ModeReplace
	ModeTerminal
)

// ParseMode maps a raw mode code to a Mode. Unknown codes are terminal mode.
func ParseMode(code string) Mode {
	switch code {
	case "n", "niI", "niR", "niV", "nt", "ntT":
		return ModeNormal
	case "i", "ic", "ix":
		return ModeInsert
	case "v", "vs", "V", "Vs", "\x16", "\x16s", "s", "S", "\x13":
		return ModeVisual
	case "c", "cv", "ce", "rm", "r?":
		return ModeCommand
	case "R", "Rc", "Rx", "Rv", "Rvc", "Rvx", "r":
		return ModeReplace
	default:
		return ModeTerminal
	}
}

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeInsert:
		return "insert"
	case ModeCommand:
		return "command"
	case ModeVisual:
		return "visual"
	case ModeReplace:
		return "replace"
	default:
		return "terminal"
	}
}

// ModeTile shows the current mode in a bubble colored per mode.
type ModeTile struct {
	env  *Env
	mode Mode
}

// NewMode creates a mode tile.
func NewMode(env *Env) *ModeTile {
	return &ModeTile{env: env}
}

// Refresh reads the editor mode.
func (t *ModeTile) Refresh() error {
	code, err := t.env.Editor.Mode()
	if err != nil {
		return hostErr("get_mode", "", err)
	}
	t.mode = ParseMode(code)
	return nil
}

// Content returns the mode name.
func (t *ModeTile) Content() (string, error) {
	return t.mode.String(), nil
}

// HighlightName returns StatusMode.
func (t *ModeTile) HighlightName() (string, error) {
	return "StatusMode", nil
}

// DefaultStyle returns a blue background.
func (t *ModeTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Blue)
}

// UpdateStyle sets the background to the mode color.
func (t *ModeTile) UpdateStyle(prev theme.HighlightStyle) (theme.HighlightStyle, error) {
	return prev.WithBackground(t.modeColor()), nil
}

func (t *ModeTile) modeColor() theme.Color {
	p := t.env.Palette
	switch t.mode {
	case ModeInsert:
		return p.Green
	case ModeCommand:
		return p.Yellow
	case ModeVisual:
		return p.Purple
	case ModeReplace:
		return p.Red
	case ModeTerminal:
		return p.Cyan
	default:
		return p.Blue
	}
}

// LocTile shows the cursor column and line. It shares the mode tile's group
// so it follows the mode color.
type LocTile struct {
	env *Env
}

// NewLoc creates a location tile.
func NewLoc(env *Env) *LocTile {
	return &LocTile{env: env}
}

// Content returns column and line items for the host to expand.
func (t *LocTile) Content() (string, error) {
	return "%3.c:%-3.l", nil
}

// HighlightName returns StatusMode.
func (t *LocTile) HighlightName() (string, error) {
	return "StatusMode", nil
}

// DefaultStyle returns a blue background.
func (t *LocTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Blue)
}
