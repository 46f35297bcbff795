package theme

// Setter installs highlight groups.
type Setter interface {
	SetHighlight(name string, style HighlightStyle) error
}

// StatusColors are the two colors every status tile is drawn against.
type StatusColors struct {
	// BG is the line background, also used as the capsule edge color.
	BG Color
	// FG is the inner color of icon tiles.
	FG Color
}

// StatusColorsFor returns the status colors of a palette.
func StatusColorsFor(p *Palette) StatusColors {
	return StatusColors{BG: p.Bg1, FG: p.Bg2}
}

// BaseGroups returns the editor-wide groups the status lines rely on.
func BaseGroups(p *Palette) []Group {
	sc := StatusColorsFor(p)
	line := WithBg(sc.BG).WithForeground(sc.FG)
	return []Group{
		{"Normal", WithFg(p.White).WithBackground(p.Bg0)},
		{"StatusLine", line},
		{"StatusLineNC", line},
		{"WinBar", line},
		{"WinBarNC", line},

		{"DiagnosticError", WithFg(p.Red)},
		{"DiagnosticWarn", WithFg(p.Yellow)},
		{"DiagnosticInfo", WithFg(p.Blue)},
		{"DiagnosticHint", WithFg(p.Purple)},
		{"DiagnosticOk", WithFg(p.Green)},

		{"Added", WithFg(p.Green).WithBold()},
		{"Changed", WithFg(p.Yellow).WithBold()},
		{"Removed", WithFg(p.Red).WithBold()},
	}
}

// Group is a named highlight style.
type Group struct {
	Name  string
	Style HighlightStyle
}

// Install sets every group in order, stopping at the first error.
func Install(s Setter, groups []Group) error {
	for _, g := range groups {
		if err := s.SetHighlight(g.Name, g.Style); err != nil {
			return err
		}
	}
	return nil
}
