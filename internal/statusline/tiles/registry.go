package tiles

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/stormline/internal/statusline"
)

// ErrUnknownTile is returned for a tile name with no constructor.
var ErrUnknownTile = errors.New("unknown tile")

// Factory builds a tile. A nil tile with a nil error means the tile does not
// apply to this host and is left out.
type Factory func(env *Env) (statusline.Tile, error)

var factories = map[string]Factory{
	"mode":              func(env *Env) (statusline.Tile, error) { return NewMode(env), nil },
	"loc":               func(env *Env) (statusline.Tile, error) { return NewLoc(env), nil },
	"cwd":               func(env *Env) (statusline.Tile, error) { return NewCwd(env), nil },
	"git_branch":        func(env *Env) (statusline.Tile, error) { return NewGitBranch(env), nil },
	"git_diff":          func(env *Env) (statusline.Tile, error) { return NewGitDiff(env), nil },
	"diagnostic":        func(env *Env) (statusline.Tile, error) { return NewDiagnostic(env, false), nil },
	"diagnostic_global": func(env *Env) (statusline.Tile, error) { return NewDiagnostic(env, true), nil },
	"zoom":              buildZoom,
	"file_name":         func(env *Env) (statusline.Tile, error) { return NewFileName(env), nil },
	"alt_file_name":     func(env *Env) (statusline.Tile, error) { return NewAltFileName(env), nil },
	"file_status":       func(env *Env) (statusline.Tile, error) { return NewFileStatus(env), nil },
	"lsp":               func(env *Env) (statusline.Tile, error) { return NewLSP(env), nil },
	"formatter":         func(env *Env) (statusline.Tile, error) { return NewFormatter(env), nil },
	"tools":             func(env *Env) (statusline.Tile, error) { return NewTools(env), nil },
}

func buildZoom(env *Env) (statusline.Tile, error) {
	_, err := env.Editor.Var(GlobalScope, ZoomVar)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, hostErr("get_var", ZoomVar, err)
	}
	return NewZoom(env), nil
}

// Known reports whether name has a constructor.
func Known(name string) bool {
	_, ok := factories[name]
	return ok
}

// Names returns the sorted tile names.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build constructs the named tile.
func Build(name string, env *Env) (statusline.Tile, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTile, name)
	}
	return f(env)
}

// Populate builds the named tiles into a section of l, skipping tiles that
// do not apply.
func Populate(l *statusline.Line, section statusline.Section, names []string, env *Env) error {
	for _, name := range names {
		t, err := Build(name, env)
		if err != nil {
			return fmt.Errorf("%s %s: %w", l.Name(), section, err)
		}
		if t == nil {
			continue
		}
		l.Add(section, t)
	}
	return nil
}
