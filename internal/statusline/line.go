package statusline

import (
	"slices"
	"strings"

	"github.com/dshills/stormline/internal/logging"
	"github.com/dshills/stormline/internal/theme"
)

// Capsule edge glyphs.
const (
	leftCap  = "\ue0b6"
	rightCap = "\ue0b4"
)

// Section identifies one of the five alignment slots of a Line.
type Section int

const (
	Left Section = iota
	LeftCenter
	Center
	RightCenter
	Right

	sectionCount
)

// String returns the section name.
func (s Section) String() string {
	switch s {
	case Left:
		return "left"
	case LeftCenter:
		return "left_center"
	case Center:
		return "center"
	case RightCenter:
		return "right_center"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

type entry struct {
	tile  Tile
	style theme.HighlightStyle // style last installed for the tile
	group string               // group name last installed for the tile
}

// Line is a status line built from tiles.
//
// A Line is not safe for concurrent use; the host renders it from its UI
// goroutine.
type Line struct {
	name     string
	host     Host
	colors   theme.StatusColors
	logger   *logging.Logger
	ready    bool
	sections [sectionCount][]entry
	exclude  []string
}

// Option configures a Line.
type Option func(*Line)

// WithColors sets the line background and inner colors.
func WithColors(c theme.StatusColors) Option {
	return func(l *Line) {
		l.colors = c
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *logging.Logger) Option {
	return func(l *Line) {
		l.logger = logger
	}
}

// WithName names the line in log output.
func WithName(name string) Option {
	return func(l *Line) {
		l.name = name
	}
}

// New creates an empty line rendered against host.
func New(host Host, opts ...Option) *Line {
	l := &Line{
		name:   "statusline",
		host:   host,
		colors: theme.StatusColorsFor(theme.DefaultPalette()),
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.WithComponent("line").WithField("line", l.name)
	return l
}

// Add registers a tile into a section, caching its default style.
func (l *Line) Add(s Section, t Tile) {
	if s < 0 || s >= sectionCount {
		panic("statusline: invalid section " + s.String())
	}
	l.sections[s] = append(l.sections[s], entry{tile: t, style: t.DefaultStyle()})
}

// AddLeft adds a tile to the left section.
func (l *Line) AddLeft(t Tile) { l.Add(Left, t) }

// AddLeftCenter adds a tile to the section left of the center.
func (l *Line) AddLeftCenter(t Tile) { l.Add(LeftCenter, t) }

// AddCenter adds a tile to the center section.
func (l *Line) AddCenter(t Tile) { l.Add(Center, t) }

// AddRightCenter adds a tile to the section right of the center.
func (l *Line) AddRightCenter(t Tile) { l.Add(RightCenter, t) }

// AddRight adds a tile to the right section.
func (l *Line) AddRight(t Tile) { l.Add(Right, t) }

// ExcludeFiletype makes the line render empty for buffers of file type ft.
func (l *Line) ExcludeFiletype(ft string) {
	if !slices.Contains(l.exclude, ft) {
		l.exclude = append(l.exclude, ft)
	}
}

// Name returns the name given with WithName.
func (l *Line) Name() string {
	return l.name
}

// Ready reports whether the one-time setup has run.
func (l *Line) Ready() bool {
	return l.ready
}

// Len returns the number of tiles in a section.
func (l *Line) Len(s Section) int {
	return len(l.sections[s])
}

// Render returns the formatted line for the current editor state.
//
// Any tile error aborts the pass; the caller should keep showing the previous
// output and try again on the next redraw.
func (l *Line) Render() (string, error) {
	if !l.ready {
		if err := l.setup(); err != nil {
			return "", err
		}
		l.ready = true
	}

	ft, err := l.host.Filetype()
	if err != nil {
		return "", NewHostQueryError("get_option", "filetype", err)
	}
	if slices.Contains(l.exclude, ft) {
		return "", nil
	}

	var parts [sectionCount]string
	for s := range sectionCount {
		out, err := l.renderSection(s)
		if err != nil {
			return "", err
		}
		parts[s] = out
	}

	left, right, err := l.equalize(parts[Left], parts[Right])
	if err != nil {
		return "", err
	}
	// The center pair pads toward the middle, so the roles are swapped.
	rcent, lcent, err := l.equalize(parts[RightCenter], parts[LeftCenter])
	if err != nil {
		return "", err
	}

	middle := joinNonEmpty(" ", lcent, parts[Center], rcent)
	if middle == "" {
		return left + "%=" + right, nil
	}
	return left + "%=" + middle + "%=" + right, nil
}

// setup installs every tile's groups in section order.
func (l *Line) setup() error {
	for s := range sectionCount {
		for i := range l.sections[s] {
			e := &l.sections[s][i]
			group, err := l.install(e.tile, e.tile.DefaultStyle())
			if err != nil {
				return err
			}
			e.group = group
			if err := setupTile(e.tile, l.host); err != nil {
				return err
			}
		}
	}
	l.logger.Debug("installed highlight groups")
	return nil
}

// install sets the groups a tile is drawn with, derived from style, and
// returns the tile's group name.
func (l *Line) install(t Tile, style theme.HighlightStyle) (string, error) {
	norm, err := t.HighlightName()
	if err != nil {
		return "", err
	}

	groups := []theme.Group{
		{Name: norm, Style: style.FgIfNone(l.colors.BG)},
	}
	switch styleOf(t) {
	case Icon:
		groups = append(groups,
			theme.Group{Name: reverseName(t, norm), Style: style.ReverseFgBg().WithBackground(l.colors.FG)},
			theme.Group{Name: separatorName(t, norm), Style: style.ReverseFgBg().WithBackground(l.colors.BG)},
		)
	default:
		groups = append(groups,
			theme.Group{Name: reverseName(t, norm), Style: style.ReverseFgBg().WithBackground(l.colors.BG)},
		)
	}

	for _, g := range groups {
		if err := l.host.SetHighlight(g.Name, g.Style); err != nil {
			return "", NewHostQueryError("set_hl", g.Name, err)
		}
	}
	return norm, nil
}

func (l *Line) renderSection(s Section) (string, error) {
	entries := l.sections[s]
	if len(entries) == 0 {
		return "", nil
	}

	tiles := make([]string, 0, len(entries))
	for i := range entries {
		e := &entries[i]

		if err := refresh(e.tile); err != nil {
			return "", err
		}
		content, err := e.tile.Content()
		if err != nil {
			return "", err
		}
		if content == "" {
			continue
		}

		next, err := updateStyle(e.tile, e.style)
		if err != nil {
			return "", err
		}
		group, err := e.tile.HighlightName()
		if err != nil {
			return "", err
		}
		// Group names can follow the file type, so a new name needs its
		// groups even when the style is unchanged.
		if !next.Equal(e.style) || group != e.group {
			if e.group, err = l.install(e.tile, next); err != nil {
				return "", err
			}
			e.style = next
		}

		out, err := l.format(e.tile, content)
		if err != nil {
			return "", err
		}
		tiles = append(tiles, out)
	}
	return strings.Join(tiles, " "), nil
}

func (l *Line) format(t Tile, content string) (string, error) {
	norm, err := t.HighlightName()
	if err != nil {
		return "", err
	}
	rev := reverseName(t, norm)

	switch styleOf(t) {
	case Icon:
		icon, err := iconOf(t)
		if err != nil {
			return "", err
		}
		if icon == "" {
			return "", &RenderFormatError{Tile: norm, Err: ErrIconMissing}
		}
		sep := separatorName(t, norm)
		return "%#" + sep + "#" + leftCap + "%#" + norm + "#" + icon + " %#" + rev + "# " + content + "%*" + rightCap + "%*", nil
	default:
		return "%#" + rev + "#" + leftCap + "%#" + norm + "#" + content + "%#" + rev + "#" + rightCap + "%*", nil
	}
}

// equalize pads a and b with spaces to the same display width. a is padded
// on its right, b on its left.
func (l *Line) equalize(a, b string) (string, string, error) {
	wa, err := l.measure(a)
	if err != nil {
		return "", "", err
	}
	wb, err := l.measure(b)
	if err != nil {
		return "", "", err
	}
	if wb > wa {
		a += strings.Repeat(" ", wb-wa)
	}
	if wa > wb {
		b = strings.Repeat(" ", wa-wb) + b
	}
	return a, b, nil
}

func (l *Line) measure(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	w, err := l.host.MeasureWidth(s)
	if err != nil {
		return 0, NewHostQueryError("measure", "", err)
	}
	return w, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
