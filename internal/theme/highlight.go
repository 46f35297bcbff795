package theme

import (
	"fmt"
	"strings"

	"github.com/mitchellh/hashstructure/v2"
)

// HighlightStyle is the attribute set of a highlight group.
//
// When Link is set the group is an alias of another group and every other
// field is ignored.
type HighlightStyle struct {
	Fg            Color
	Bg            Color
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Reverse       bool
	Link          string
}

// WithFg starts a style with a foreground color.
func WithFg(c Color) HighlightStyle {
	return HighlightStyle{Fg: c}
}

// WithBg starts a style with a background color.
func WithBg(c Color) HighlightStyle {
	return HighlightStyle{Bg: c}
}

// LinkTo creates a style that links to another group.
func LinkTo(group string) HighlightStyle {
	return HighlightStyle{Link: group}
}

// WithForeground returns a copy with the foreground set.
func (s HighlightStyle) WithForeground(c Color) HighlightStyle {
	s.Fg = c
	return s
}

// WithBackground returns a copy with the background set.
func (s HighlightStyle) WithBackground(c Color) HighlightStyle {
	s.Bg = c
	return s
}

// FgIfNone sets the foreground only when none is set.
func (s HighlightStyle) FgIfNone(c Color) HighlightStyle {
	if s.Fg.IsNone() {
		s.Fg = c
	}
	return s
}

// ReverseFgBg swaps foreground and background.
func (s HighlightStyle) ReverseFgBg() HighlightStyle {
	s.Fg, s.Bg = s.Bg, s.Fg
	return s
}

func (s HighlightStyle) WithBold() HighlightStyle {
	s.Bold = true
	return s
}

func (s HighlightStyle) WithItalic() HighlightStyle {
	s.Italic = true
	return s
}

func (s HighlightStyle) WithUnderline() HighlightStyle {
	s.Underline = true
	return s
}

func (s HighlightStyle) WithStrikethrough() HighlightStyle {
	s.Strikethrough = true
	return s
}

func (s HighlightStyle) WithReverse() HighlightStyle {
	s.Reverse = true
	return s
}

// IsLink reports whether the style aliases another group.
func (s HighlightStyle) IsLink() bool {
	return s.Link != ""
}

// Effective drops every attribute a link overrides.
func (s HighlightStyle) Effective() HighlightStyle {
	if s.IsLink() {
		return HighlightStyle{Link: s.Link}
	}
	return s
}

// Equal reports value equality of the effective styles.
func (s HighlightStyle) Equal(other HighlightStyle) bool {
	return s.Effective() == other.Effective()
}

// Hash fingerprints the effective style.
func (s HighlightStyle) Hash() uint64 {
	h, err := hashstructure.Hash(s.Effective(), hashstructure.FormatV2, nil)
	if err != nil {
		// Only reachable with unsupported field kinds, which the struct has none of.
		panic(fmt.Sprintf("theme: hashing highlight style: %v", err))
	}
	return h
}

// String renders the style in ":highlight" notation.
func (s HighlightStyle) String() string {
	if s.IsLink() {
		return "link=" + s.Link
	}
	var parts []string
	if !s.Fg.IsNone() {
		parts = append(parts, "fg="+s.Fg.Hex())
	}
	if !s.Bg.IsNone() {
		parts = append(parts, "bg="+s.Bg.Hex())
	}
	var attrs []string
	for _, a := range []struct {
		on   bool
		name string
	}{
		{s.Bold, "bold"},
		{s.Italic, "italic"},
		{s.Underline, "underline"},
		{s.Strikethrough, "strikethrough"},
		{s.Reverse, "reverse"},
	} {
		if a.on {
			attrs = append(attrs, a.name)
		}
	}
	if len(attrs) > 0 {
		parts = append(parts, "gui="+strings.Join(attrs, ","))
	}
	if len(parts) == 0 {
		return "cleared"
	}
	return strings.Join(parts, " ")
}
