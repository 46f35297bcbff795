package tiles

import (
	"fmt"

	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/theme"
)

// ZoomVar holds the GUI scale factor, 1.0 being 100%.
const ZoomVar = "zoom_scale_factor"

// ZoomTile shows the GUI zoom level. The variable is required; add the tile
// only when the host sets it.
type ZoomTile struct {
	env *Env
}

// NewZoom creates a zoom tile.
func NewZoom(env *Env) *ZoomTile {
	return &ZoomTile{env: env}
}

// Style returns Icon.
func (t *ZoomTile) Style() statusline.TileStyle {
	return statusline.Icon
}

// Icon returns the magnifier icon.
func (t *ZoomTile) Icon() (string, error) {
	return IconMagnifier, nil
}

// Content formats the scale factor as a percentage.
func (t *ZoomTile) Content() (string, error) {
	v, err := t.env.Editor.Var(GlobalScope, ZoomVar)
	if err != nil {
		return "", hostErr("get_var", ZoomVar, err)
	}
	f, ok := toFloat(v)
	if !ok {
		return "", hostErr("get_var", ZoomVar, fmt.Errorf("not a number: %v", v))
	}
	return fmt.Sprintf("%.0f%%%%", f*100), nil
}

// HighlightName returns StatusZoom.
func (t *ZoomTile) HighlightName() (string, error) {
	return "StatusZoom", nil
}

// DefaultStyle returns a yellow background.
func (t *ZoomTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Yellow)
}
