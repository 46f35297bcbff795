package statusline

import "github.com/dshills/stormline/internal/theme"

// TileStyle selects how a tile is drawn.
type TileStyle int

const (
	// Bubble draws the content in a single capsule of the tile color.
	Bubble TileStyle = iota
	// Icon draws the icon on the tile color followed by the content on the
	// line's inner color.
	Icon
)

// String returns the style name.
func (s TileStyle) String() string {
	switch s {
	case Bubble:
		return "bubble"
	case Icon:
		return "icon"
	default:
		return "unknown"
	}
}

// Tile is the contract every status tile implements.
//
// The highlight group named by HighlightName should only color the
// background; the Line derives foregrounds and the capsule edges from it.
type Tile interface {
	// Content returns the text for this pass. Empty omits the tile.
	Content() (string, error)
	// HighlightName returns the tile's primary group name.
	HighlightName() (string, error)
	// DefaultStyle is the style installed when the line is set up.
	DefaultStyle() theme.HighlightStyle
}

// Styled is implemented by tiles that are not drawn as bubbles.
type Styled interface {
	Style() TileStyle
}

// IconProvider is implemented by icon-style tiles.
type IconProvider interface {
	Icon() (string, error)
}

// StyleUpdater recomputes a tile's style from the previous one.
type StyleUpdater interface {
	UpdateStyle(prev theme.HighlightStyle) (theme.HighlightStyle, error)
}

// Refresher is implemented by tiles that cache host state between passes.
// Refresh runs before Content and HighlightName are read.
type Refresher interface {
	Refresh() error
}

// SetupTile is implemented by tiles that install extra highlight groups.
// Setup runs exactly once per Line.
type SetupTile interface {
	Setup(s Styler) error
}

// GroupNamer overrides the derived group names.
type GroupNamer interface {
	ReverseName(norm string) string
	SeparatorName(norm string) string
}

func styleOf(t Tile) TileStyle {
	if s, ok := t.(Styled); ok {
		return s.Style()
	}
	return Bubble
}

func iconOf(t Tile) (string, error) {
	if p, ok := t.(IconProvider); ok {
		return p.Icon()
	}
	return "", nil
}

func updateStyle(t Tile, prev theme.HighlightStyle) (theme.HighlightStyle, error) {
	if u, ok := t.(StyleUpdater); ok {
		return u.UpdateStyle(prev)
	}
	return prev, nil
}

func refresh(t Tile) error {
	if r, ok := t.(Refresher); ok {
		return r.Refresh()
	}
	return nil
}

func setupTile(t Tile, s Styler) error {
	if st, ok := t.(SetupTile); ok {
		return st.Setup(s)
	}
	return nil
}

func reverseName(t Tile, norm string) string {
	if n, ok := t.(GroupNamer); ok {
		return n.ReverseName(norm)
	}
	return norm + "Rev"
}

func separatorName(t Tile, norm string) string {
	if n, ok := t.(GroupNamer); ok {
		return n.SeparatorName(norm)
	}
	return norm + "Sep"
}
