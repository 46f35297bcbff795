package terminal

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stormline/internal/theme"
)

// Groups resolves highlight group names, following links.
type Groups interface {
	Resolve(name string) (theme.HighlightStyle, error)
}

// resolver caches the styles of one paint pass.
type resolver struct {
	groups Groups
	base   theme.HighlightStyle
	cache  map[string]theme.HighlightStyle
}

func newResolver(groups Groups, base string) (*resolver, error) {
	bs, err := groups.Resolve(base)
	if err != nil {
		return nil, err
	}
	return &resolver{groups: groups, base: bs, cache: map[string]theme.HighlightStyle{"": bs}}, nil
}

func (r *resolver) style(group string) (theme.HighlightStyle, error) {
	if s, ok := r.cache[group]; ok {
		return s, nil
	}
	s, err := r.groups.Resolve(group)
	if err != nil {
		return theme.HighlightStyle{}, err
	}
	if s.Fg.IsNone() {
		s.Fg = r.base.Fg
	}
	if s.Bg.IsNone() {
		s.Bg = r.base.Bg
	}
	r.cache[group] = s
	return s, nil
}

func tcellColor(c theme.Color) tcell.Color {
	if c.IsNone() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// TcellStyle converts a resolved highlight style.
func TcellStyle(s theme.HighlightStyle) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcellColor(s.Fg)).
		Background(tcellColor(s.Bg)).
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline).
		StrikeThrough(s.Strikethrough).
		Reverse(s.Reverse)
}

// LipglossStyle converts a resolved highlight style for the given renderer.
func LipglossStyle(r *lipgloss.Renderer, s theme.HighlightStyle) lipgloss.Style {
	st := r.NewStyle().
		Inline(true).
		Bold(s.Bold).
		Italic(s.Italic).
		Underline(s.Underline).
		Strikethrough(s.Strikethrough).
		Reverse(s.Reverse)
	if !s.Fg.IsNone() {
		st = st.Foreground(lipgloss.Color(s.Fg.Hex()))
	}
	if !s.Bg.IsNone() {
		st = st.Background(lipgloss.Color(s.Bg.Hex()))
	}
	return st
}
