package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/stormline/internal/statusfmt"
)

// ANSI renders status lines as escape sequences.
type ANSI struct {
	renderer *lipgloss.Renderer
	groups   Groups
}

// NewANSI creates an ANSI renderer. A nil renderer uses lipgloss's default,
// which detects the color profile of stdout.
func NewANSI(r *lipgloss.Renderer, groups Groups) *ANSI {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &ANSI{renderer: r, groups: groups}
}

// Render lays info out over width cells and styles each segment. The line is
// padded with the base group's style up to width.
func (a *ANSI) Render(info statusfmt.Info, width int, base string) (string, error) {
	res, err := newResolver(a.groups, base)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	used := 0
	for _, seg := range statusfmt.Layout(info, width) {
		if seg.Text == "" {
			continue
		}
		hs, err := res.style(seg.Group)
		if err != nil {
			return "", err
		}
		sb.WriteString(LipglossStyle(a.renderer, hs).Render(seg.Text))
		used += lipgloss.Width(seg.Text)
	}
	if used < width {
		sb.WriteString(LipglossStyle(a.renderer, res.base).Render(strings.Repeat(" ", width-used)))
	}
	return sb.String(), nil
}
