package tiles

import (
	"fmt"
	"strings"

	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/theme"
)

// DiagnosticCount holds diagnostic totals per severity.
type DiagnosticCount struct {
	Error int
	Warn  int
	Hint  int
	Info  int
}

// Total counts errors and warnings; hints and infos do not count.
func (c DiagnosticCount) Total() int {
	return c.Error + c.Warn
}

// DiagnosticTile shows diagnostic counts of the current buffer, or of every
// buffer when global. The global tile changes color with the total.
type DiagnosticTile struct {
	env    *Env
	global bool
	count  DiagnosticCount
}

// NewDiagnostic creates a diagnostic tile.
func NewDiagnostic(env *Env, global bool) *DiagnosticTile {
	return &DiagnosticTile{env: env, global: global}
}

// Count returns the counts read by the last Refresh.
func (t *DiagnosticTile) Count() DiagnosticCount {
	return t.count
}

// Refresh reads the count of each severity.
func (t *DiagnosticTile) Refresh() error {
	var c DiagnosticCount
	for _, f := range []struct {
		sev Severity
		dst *int
	}{
		{SeverityError, &c.Error},
		{SeverityWarn, &c.Warn},
		{SeverityHint, &c.Hint},
		{SeverityInfo, &c.Info},
	} {
		n, err := t.env.Editor.DiagnosticCount(t.global, f.sev)
		if err != nil {
			return hostErr("diagnostic.get", fmt.Sprintf("severity %d", f.sev), err)
		}
		*f.dst = n
	}
	t.count = c
	return nil
}

// Style returns Icon for the global tile and Bubble otherwise.
func (t *DiagnosticTile) Style() statusline.TileStyle {
	if t.global {
		return statusline.Icon
	}
	return statusline.Bubble
}

// Icon returns the folder icon.
func (t *DiagnosticTile) Icon() (string, error) {
	return IconFolder, nil
}

// Content lists the non-zero counts, each in its severity group.
func (t *DiagnosticTile) Content() (string, error) {
	c := t.count
	var out []string
	if c.Error > 0 {
		out = append(out, fmt.Sprintf("%%#StatusError#%s %d", IconError, c.Error))
	}
	if c.Warn > 0 {
		out = append(out, fmt.Sprintf("%%#StatusWarn#%s %d", IconWarn, c.Warn))
	}
	if c.Hint > 0 {
		out = append(out, fmt.Sprintf("%%#StatusHint#%s %d", IconHint, c.Hint))
	}
	if c.Info > 0 {
		out = append(out, fmt.Sprintf("%%#StatusInfo#%s %d", IconInfo, c.Info))
	}
	return strings.Join(out, " "), nil
}

// HighlightName returns StatusDiagnosticGlobal or StatusDiagnostic.
func (t *DiagnosticTile) HighlightName() (string, error) {
	if t.global {
		return "StatusDiagnosticGlobal", nil
	}
	return "StatusDiagnostic", nil
}

// DefaultStyle returns a red background.
func (t *DiagnosticTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Red)
}

// UpdateStyle colors the global tile by total: none, 1-4, 5-9, 10 and more.
func (t *DiagnosticTile) UpdateStyle(theme.HighlightStyle) (theme.HighlightStyle, error) {
	if !t.global {
		return theme.WithBg(t.env.Colors.FG), nil
	}
	return theme.WithBg(t.totalColor()), nil
}

func (t *DiagnosticTile) totalColor() theme.Color {
	p := t.env.Palette
	switch total := t.count.Total(); {
	case total == 0:
		return p.Purple
	case total < 5:
		return p.Yellow
	case total < 10:
		return p.Orange
	default:
		return p.Red
	}
}

// Setup installs the per-severity groups.
func (t *DiagnosticTile) Setup(s statusline.Styler) error {
	p := t.env.Palette
	inner := t.env.Colors.FG
	return installAll(s, []theme.Group{
		{Name: "StatusError", Style: theme.WithFg(p.Red).WithBackground(inner)},
		{Name: "StatusWarn", Style: theme.WithFg(p.Yellow).WithBackground(inner)},
		{Name: "StatusInfo", Style: theme.WithFg(p.Blue).WithBackground(inner)},
		{Name: "StatusHint", Style: theme.WithFg(p.Purple).WithBackground(inner)},
	})
}
