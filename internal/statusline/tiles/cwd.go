package tiles

import (
	"path/filepath"

	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/theme"
)

// CwdAlias gives a working directory a short name, icon and color.
type CwdAlias struct {
	Path  string
	Name  string
	Icon  string
	Color theme.Color
}

// CwdTile shows the working directory, using an alias when one matches.
type CwdTile struct {
	env *Env
	cwd string
}

// NewCwd creates a working directory tile.
func NewCwd(env *Env) *CwdTile {
	return &CwdTile{env: env}
}

// Refresh reads the working directory.
func (t *CwdTile) Refresh() error {
	cwd, err := t.env.Editor.Cwd()
	if err != nil {
		return hostErr("getcwd", "", err)
	}
	t.cwd = cwd
	return nil
}

func (t *CwdTile) resolve() CwdAlias {
	clean := filepath.Clean(t.cwd)
	for _, a := range t.env.Cwds {
		if filepath.Clean(a.Path) == clean {
			return a
		}
	}
	return CwdAlias{Path: t.cwd, Name: t.cwd, Icon: IconFolder, Color: t.env.Palette.Yellow}
}

// Style returns Icon.
func (t *CwdTile) Style() statusline.TileStyle {
	return statusline.Icon
}

// Icon returns the alias icon, or a folder when no alias matches.
func (t *CwdTile) Icon() (string, error) {
	return t.resolve().Icon, nil
}

// Content returns the alias name or the full directory.
func (t *CwdTile) Content() (string, error) {
	return escape(t.resolve().Name), nil
}

// HighlightName returns StatusCwd.
func (t *CwdTile) HighlightName() (string, error) {
	return "StatusCwd", nil
}

// DefaultStyle returns a yellow background.
func (t *CwdTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Yellow)
}

// UpdateStyle applies the alias color.
func (t *CwdTile) UpdateStyle(prev theme.HighlightStyle) (theme.HighlightStyle, error) {
	return prev.WithBackground(t.resolve().Color), nil
}
