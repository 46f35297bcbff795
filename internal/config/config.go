package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/stormline/internal/logging"
	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/statusline/tiles"
	"github.com/dshills/stormline/internal/theme"
)

// Config is the whole configuration file.
type Config struct {
	LogLevel   string            `toml:"log_level"`
	Palette    map[string]string `toml:"palette"`
	Statusline Layout            `toml:"statusline"`
	Winbar     Layout            `toml:"winbar"`
	Cwd        []Cwd             `toml:"cwd"`
}

// Layout lists tile names per section of one line.
type Layout struct {
	Left             []string `toml:"left"`
	LeftCenter       []string `toml:"left_center"`
	Center           []string `toml:"center"`
	RightCenter      []string `toml:"right_center"`
	Right            []string `toml:"right"`
	ExcludeFiletypes []string `toml:"exclude_filetypes"`
}

// Cwd is a working directory alias.
type Cwd struct {
	Path  string `toml:"path"`
	Name  string `toml:"name"`
	Icon  string `toml:"icon"`
	Color string `toml:"color"`
}

// Default returns the built-in layout.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Palette:  map[string]string{},
		Statusline: Layout{
			Left:  []string{"mode", "cwd", "git_branch", "diagnostic_global"},
			Right: []string{"zoom", "loc"},
		},
		Winbar: Layout{
			Left:        []string{"git_diff", "diagnostic"},
			Center:      []string{"file_name"},
			RightCenter: []string{"tools", "file_status"},
			Right:       []string{"alt_file_name"},
		},
	}
}

// Sections returns the tile names of each section in section order.
func (l Layout) Sections() [][]string {
	return [][]string{l.Left, l.LeftCenter, l.Center, l.RightCenter, l.Right}
}

// Section returns the tile names of one section.
func (l Layout) Section(s statusline.Section) []string {
	sections := l.Sections()
	if s < 0 || int(s) >= len(sections) {
		return nil
	}
	return sections[s]
}

// FileSystem reads configuration files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Load reads and validates the file at path. A missing file yields Default.
func Load(path string) (*Config, error) {
	return LoadFS(OSFS{}, path)
}

// LoadFS is Load on fsys.
func LoadFS(fsys FileSystem, path string) (*Config, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, parseError(source, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, nil
}

func parseError(source string, err error) error {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		pe.Line, pe.Column = decErr.Position()
		pe.Message = decErr.Error()
	}
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		first := strict.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = "unknown key " + strings.Join(first.Key(), ".")
	}
	return pe
}

// Validate checks levels, tile names, colors and aliases.
func (c *Config) Validate() error {
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("%w: %q", ErrInvalidLevel, c.LogLevel)}
	}

	for _, line := range []struct {
		name   string
		layout Layout
	}{
		{"statusline", c.Statusline},
		{"winbar", c.Winbar},
	} {
		for s, names := range line.layout.Sections() {
			for _, name := range names {
				if !tiles.Known(name) {
					return &ValidationError{
						Path: line.name + "." + statusline.Section(s).String(),
						Err:  fmt.Errorf("%w: %q", ErrUnknownTile, name),
					}
				}
			}
		}
	}

	if _, err := c.ThemePalette(); err != nil {
		return err
	}

	for i, cwd := range c.Cwd {
		if cwd.Path == "" || cwd.Name == "" {
			return &ValidationError{Path: fmt.Sprintf("cwd[%d]", i), Err: ErrInvalidCwd}
		}
		if cwd.Color != "" {
			if _, err := theme.DefaultPalette().Resolve(cwd.Color); err != nil {
				return &ValidationError{Path: fmt.Sprintf("cwd[%d].color", i), Err: colorErr(err)}
			}
		}
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() logging.Level {
	level, ok := logging.ParseLevel(c.LogLevel)
	if !ok {
		return logging.LevelInfo
	}
	return level
}

// ThemePalette returns the default palette with the overrides applied.
func (c *Config) ThemePalette() (*theme.Palette, error) {
	p := theme.DefaultPalette()

	names := make([]string, 0, len(c.Palette))
	for name := range c.Palette {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := p.Set(name, c.Palette[name]); err != nil {
			return nil, &ValidationError{Path: "palette." + name, Err: colorErr(err)}
		}
	}
	return p, nil
}

// CwdAliases resolves the aliases against p. A leading "~" in a path is
// expanded to home.
func (c *Config) CwdAliases(p *theme.Palette, home string) ([]tiles.CwdAlias, error) {
	aliases := make([]tiles.CwdAlias, 0, len(c.Cwd))
	for i, cwd := range c.Cwd {
		color := p.Yellow
		if cwd.Color != "" {
			var err error
			color, err = p.Resolve(cwd.Color)
			if err != nil {
				return nil, &ValidationError{Path: fmt.Sprintf("cwd[%d].color", i), Err: colorErr(err)}
			}
		}
		icon := cwd.Icon
		if icon == "" {
			icon = tiles.IconFolder
		}
		aliases = append(aliases, tiles.CwdAlias{
			Path:  expandHome(cwd.Path, home),
			Name:  cwd.Name,
			Icon:  icon,
			Color: color,
		})
	}
	return aliases, nil
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return path
}

// colorErr reports unknown palette names as invalid colors.
func colorErr(err error) error {
	if errors.Is(err, theme.ErrUnknownColor) {
		return fmt.Errorf("%w: %w", ErrInvalidColor, err)
	}
	return err
}
