package config

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/stormline/internal/logging"
	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/statusline/tiles"
	"github.com/dshills/stormline/internal/theme"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if got := cfg.Statusline.Section(statusline.Left); !reflect.DeepEqual(got, []string{"mode", "cwd", "git_branch", "diagnostic_global"}) {
		t.Errorf("statusline left = %q", got)
	}
	if got := cfg.Winbar.Section(statusline.Center); !reflect.DeepEqual(got, []string{"file_name"}) {
		t.Errorf("winbar center = %q", got)
	}
	if cfg.Level() != logging.LevelInfo {
		t.Errorf("Level() = %v", cfg.Level())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := LoadFS(NewMemFS(), "/nope.toml")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("missing file = %+v, want defaults", cfg)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/stormline.toml", `
log_level = "debug"

[palette]
blue = "#112233"

[statusline]
left = ["mode"]
exclude_filetypes = ["dashboard", "help"]

[[cwd]]
path = "~/code"
name = "code"
color = "blue"

[[cwd]]
path = "/etc"
name = "etc"
icon = "E"
color = "#ff0000"
`)

	cfg, err := LoadFS(memfs, "/stormline.toml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level() != logging.LevelDebug {
		t.Errorf("Level() = %v", cfg.Level())
	}
	if !reflect.DeepEqual(cfg.Statusline.Left, []string{"mode"}) {
		t.Errorf("left = %q", cfg.Statusline.Left)
	}
	if !reflect.DeepEqual(cfg.Statusline.Right, []string{"zoom", "loc"}) {
		t.Errorf("right lost its default: %q", cfg.Statusline.Right)
	}
	if !reflect.DeepEqual(cfg.Statusline.ExcludeFiletypes, []string{"dashboard", "help"}) {
		t.Errorf("exclude = %q", cfg.Statusline.ExcludeFiletypes)
	}
	if len(cfg.Winbar.Center) != 1 {
		t.Errorf("winbar lost its defaults: %+v", cfg.Winbar)
	}

	p, err := cfg.ThemePalette()
	if err != nil {
		t.Fatal(err)
	}
	if p.Blue != theme.MustHex("#112233") {
		t.Errorf("blue = %v", p.Blue)
	}
	if p.Red != theme.DefaultPalette().Red {
		t.Error("unrelated colors changed")
	}

	aliases, err := cfg.CwdAliases(p, "/home/me")
	if err != nil {
		t.Fatal(err)
	}
	want := []tiles.CwdAlias{
		{Path: "/home/me/code", Name: "code", Icon: tiles.IconFolder, Color: theme.MustHex("#112233")},
		{Path: "/etc", Name: "etc", Icon: "E", Color: theme.MustHex("#ff0000")},
	}
	if !reflect.DeepEqual(aliases, want) {
		t.Errorf("CwdAliases() = %+v, want %+v", aliases, want)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		path    string
	}{
		{"unknown tile", "[statusline]\nright = [\"clock\"]\n", ErrUnknownTile, "statusline.right"},
		{"unknown winbar tile", "[winbar]\nleft_center = [\"x\"]\n", ErrUnknownTile, "winbar.left_center"},
		{"bad hex", "[palette]\nblue = \"#12345\"\n", ErrInvalidColor, "palette.blue"},
		{"unknown palette name", "[palette]\nmauve = \"#123456\"\n", ErrInvalidColor, "palette.mauve"},
		{"bad cwd color", "[[cwd]]\npath = \"/\"\nname = \"root\"\ncolor = \"plaid\"\n", ErrInvalidColor, "cwd[0].color"},
		{"cwd without name", "[[cwd]]\npath = \"/\"\n", ErrInvalidCwd, "cwd[0]"},
		{"bad level", "log_level = \"loud\"\n", ErrInvalidLevel, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.toml", []byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Path != tt.path {
				t.Errorf("Parse() error = %v, want path %s", err, tt.path)
			}
		})
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
		msg  string
	}{
		{"syntax", "log_level = \n", 1, ""},
		{"unknown key", "log_level = \"info\"\ncolour = \"x\"\n", 2, "unknown key colour"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.toml", []byte(tt.data))
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse() error = %v, want ParseError", err)
			}
			if pe.Path != "bad.toml" || pe.Line != tt.line {
				t.Errorf("ParseError = %+v, want line %d", pe, tt.line)
			}
			if tt.msg != "" && !strings.Contains(pe.Error(), tt.msg) {
				t.Errorf("Error() = %q, want %q", pe.Error(), tt.msg)
			}
		})
	}
}

func TestParseErrorFormat(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a", Line: 1, Column: 2, Message: "m"}, "parse error in a at line 1, column 2: m"},
		{ParseError{Path: "a", Line: 3, Message: "m"}, "parse error in a at line 3: m"},
		{ParseError{Path: "a", Message: "m"}, "parse error in a: m"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestExpandHome(t *testing.T) {
	tests := []struct {
		path, home, want string
	}{
		{"~", "/h", "/h"},
		{"~/x/y", "/h", "/h/x/y"},
		{"~other", "/h", "~other"},
		{"/abs", "/h", "/abs"},
		{"~/x", "", "~/x"},
	}
	for _, tt := range tests {
		if got := expandHome(tt.path, tt.home); got != tt.want {
			t.Errorf("expandHome(%q, %q) = %q, want %q", tt.path, tt.home, got, tt.want)
		}
	}
}
