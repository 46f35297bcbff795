package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stormline/internal/config"
	"github.com/dshills/stormline/internal/gitinfo"
	"github.com/dshills/stormline/internal/logging"
	"github.com/dshills/stormline/internal/statusline/tiles"
	"github.com/dshills/stormline/internal/terminal"
	"github.com/dshills/stormline/internal/theme"
)

// gitRunner answers the branch query and reports a clean diff.
type gitRunner struct {
	branch string
	dirs   *[]string
}

func (g gitRunner) Run(_ context.Context, dir string, args ...string) (string, error) {
	if g.dirs != nil {
		*g.dirs = append(*g.dirs, dir)
	}
	if g.branch == "" {
		return "", gitinfo.ErrNotRepository
	}
	if args[0] == "rev-parse" {
		return g.branch + "\n", nil
	}
	return "", nil
}

func newTestApp(t *testing.T, opts Options) *Application {
	t.Helper()
	if opts.Cwd == "" {
		opts.Cwd = t.TempDir()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Git == nil {
		opts.Git = gitinfo.New(gitinfo.WithRunner(gitRunner{}))
	}
	a, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func frame(t *testing.T, a *Application) Frame {
	t.Helper()
	f, err := a.Frame()
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	return f
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestNewDefaultLayout(t *testing.T) {
	a := newTestApp(t, Options{File: "main.go"})

	f := frame(t, a)
	if !strings.Contains(f.Statusline.Str, "normal") {
		t.Errorf("statusline = %q, want the mode", f.Statusline.Str)
	}
	if !strings.Contains(f.Winbar.Str, "main.go") {
		t.Errorf("winbar = %q, want the file name", f.Winbar.Str)
	}
	if f.Statusline.Fills() != 2 {
		t.Errorf("statusline separators = %d, want 2", f.Statusline.Fills())
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := New(Options{Cwd: t.TempDir(), Logger: logging.Nop(), LogLevel: "loud"})
	var ie *InitError
	if !errors.As(err, &ie) {
		t.Fatalf("err = %v, want InitError", err)
	}
	if !errors.Is(err, config.ErrInvalidLevel) {
		t.Errorf("err = %v, want ErrInvalidLevel", err)
	}
}

func TestBrokenConfigFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[statusline]\nleft = [\"nope\"]\n")

	a := newTestApp(t, Options{ConfigPath: path, Cwd: dir})
	if got := a.Config().Statusline.Left; len(got) == 0 || got[0] != "mode" {
		t.Errorf("statusline left = %v, want defaults", got)
	}
}

func TestConfiguredLayout(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", `
[statusline]
left = ["loc"]
right = []

[winbar]
left = []
center = []
right_center = []
right = ["file_status"]
`)
	a := newTestApp(t, Options{ConfigPath: path, Cwd: dir, File: "main.go"})

	f := frame(t, a)
	if strings.Contains(f.Statusline.Str, "normal") {
		t.Errorf("statusline = %q, want no mode tile", f.Statusline.Str)
	}
	if !strings.Contains(f.Statusline.Str, "1:1") {
		t.Errorf("statusline = %q, want the location", f.Statusline.Str)
	}
}

func TestRenderFailureKeepsPreviousOutput(t *testing.T) {
	a := newTestApp(t, Options{File: "main.go"})
	first := frame(t, a)

	reg := a.Registry()
	if err := reg.SetHighlight("DevIconGo", theme.LinkTo("Loop")); err != nil {
		t.Fatal(err)
	}
	if err := reg.SetHighlight("Loop", theme.LinkTo("DevIconGo")); err != nil {
		t.Fatal(err)
	}

	second := frame(t, a)
	if second.Winbar.Str != first.Winbar.Str {
		t.Errorf("winbar = %q, want previous %q", second.Winbar.Str, first.Winbar.Str)
	}
}

func TestInitScriptExcludesFiletype(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "init.lua", `stormline.exclude_filetype("markdown")`)

	a := newTestApp(t, Options{InitScript: script, Cwd: dir, File: "README.md"})
	f := frame(t, a)
	if f.Statusline.Str != "" || f.Winbar.Str != "" {
		t.Errorf("frame = %q / %q, want both lines hidden", f.Statusline.Str, f.Winbar.Str)
	}

	// The exclusion survives a reload.
	if err := a.ApplyConfig(config.Default()); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	if f := frame(t, a); f.Statusline.Str != "" {
		t.Errorf("statusline after reload = %q", f.Statusline.Str)
	}
}

func TestInitScriptAutocmd(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "init.lua", `
stormline.autocmd("BufWritePost", "*.go", function(event, match)
  stormline.set_var("g", "written", match)
end)
`)
	a := newTestApp(t, Options{InitScript: script, Cwd: dir, File: "main.go"})

	if err := a.Session().Write(); err != nil {
		t.Fatalf("Write: %v", err)
	}
	v, err := a.Session().Var(tiles.GlobalScope, "written")
	if err != nil {
		t.Fatalf("Var: %v", err)
	}
	if v != "main.go" {
		t.Errorf("written = %v, want main.go", v)
	}
}

func TestInitScriptOnceAutocmd(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "init.lua", `
writes = 0
stormline.autocmd("BufWritePost", nil, function()
  writes = writes + 1
  stormline.set_var("g", "writes", writes)
end, {once = true})
`)
	a := newTestApp(t, Options{InitScript: script, Cwd: dir, File: "main.go"})

	for range 2 {
		if err := a.Session().Write(); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	v, err := a.Session().Var(tiles.GlobalScope, "writes")
	if err != nil {
		t.Fatalf("Var: %v", err)
	}
	if v != int64(1) {
		t.Errorf("writes = %#v, want 1", v)
	}
}

func TestRedrawTriggers(t *testing.T) {
	a := newTestApp(t, Options{File: "main.go"})

	tests := []struct {
		name string
		fire func() error
	}{
		{"diagnostics", func() error { return a.Session().SetDiagnostics(tiles.SeverityError, 1) }},
		{"mode", func() error { return a.Session().SetMode("i") }},
		{"git update", func() error { return a.Autocmds().Exec("User", gitinfo.UpdateEvent) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.TakeRedraw()
			if err := tt.fire(); err != nil {
				t.Fatal(err)
			}
			if !a.TakeRedraw() {
				t.Error("expected a redraw request")
			}
		})
	}

	a.TakeRedraw()
	if err := a.Autocmds().Exec("User", "OtherPlugin"); err != nil {
		t.Fatal(err)
	}
	if a.TakeRedraw() {
		t.Error("unrelated User event requested a redraw")
	}
}

func TestRunCommand(t *testing.T) {
	a := newTestApp(t, Options{})
	a.TakeRedraw()

	if err := a.runCommand("redrawstatus!"); err != nil || !a.TakeRedraw() {
		t.Errorf("redrawstatus! = %v, want a redraw", err)
	}
	if err := a.runCommand("quit"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("quit = %v, want ErrUnknownCommand", err)
	}
}

func TestInitScriptError(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "init.lua", `error("boom")`)

	_, err := New(Options{InitScript: script, Cwd: dir, Logger: logging.Nop(), Git: gitinfo.New(gitinfo.WithRunner(gitRunner{}))})
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "init script" {
		t.Errorf("err = %v, want init script error", err)
	}
}

func TestRefreshGit(t *testing.T) {
	dir := t.TempDir()
	var dirs []string
	a := newTestApp(t, Options{Cwd: dir, Git: gitinfo.New(gitinfo.WithRunner(gitRunner{branch: "main", dirs: &dirs}))})
	a.TakeRedraw()
	dirs = nil

	a.RefreshGit(context.Background())
	if len(dirs) == 0 {
		t.Fatal("git was not run")
	}
	for _, d := range dirs {
		if d != dir {
			t.Errorf("git ran in %q, want the session directory %q", d, dir)
		}
	}

	v, err := a.Session().Var(tiles.GlobalScope, tiles.GitHeadVar)
	if err != nil || v != "main" {
		t.Errorf("head = %v, %v", v, err)
	}
	if !a.TakeRedraw() {
		t.Error("expected a redraw after the git update")
	}
	if f := frame(t, a); !strings.Contains(f.Statusline.Str, "main") {
		t.Errorf("statusline = %q, want the branch", f.Statusline.Str)
	}
}

func TestHandleKey(t *testing.T) {
	a := newTestApp(t, Options{File: "main.go"})
	s := a.Session()

	key := func(r rune) error {
		return a.handleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}

	for r, code := range modeKeys {
		if err := key(r); err != nil {
			t.Fatalf("key %q: %v", r, err)
		}
		if got, _ := s.Mode(); got != code {
			t.Errorf("key %q: mode = %q, want %q", r, got, code)
		}
	}

	if err := key('m'); err != nil {
		t.Fatal(err)
	}
	if b, _ := s.Current(); !b.Modified {
		t.Error("m should mark the buffer modified")
	}
	if err := key('w'); err != nil {
		t.Fatal(err)
	}
	if b, _ := s.Current(); b.Modified {
		t.Error("w should clear the modified flag")
	}

	a.TakeRedraw()
	if err := key('e'); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.DiagnosticCount(false, tiles.SeverityError); n != 1 {
		t.Errorf("errors = %d, want 1", n)
	}
	if !a.TakeRedraw() {
		t.Error("a diagnostic change should request a redraw")
	}

	if err := key('q'); !errors.Is(err, ErrQuit) {
		t.Errorf("q = %v, want ErrQuit", err)
	}
	if err := a.handleKey(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)); !errors.Is(err, ErrQuit) {
		t.Errorf("ctrl-c = %v, want ErrQuit", err)
	}
}

func TestApplyConfigRequestsRedraw(t *testing.T) {
	a := newTestApp(t, Options{})
	a.TakeRedraw()

	cfg := config.Default()
	cfg.Statusline.Left = []string{"loc"}
	if err := a.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	if !a.TakeRedraw() {
		t.Error("expected a redraw request")
	}
	if a.Config() != cfg {
		t.Error("config not swapped")
	}
}

func TestLineUnknown(t *testing.T) {
	a := newTestApp(t, Options{})
	if _, err := a.Line("tabline"); !errors.Is(err, ErrUnknownLine) {
		t.Errorf("err = %v, want ErrUnknownLine", err)
	}
}

func TestPrint(t *testing.T) {
	a := newTestApp(t, Options{File: "main.go"})
	ansi := terminal.NewANSI(lipgloss.NewRenderer(io.Discard), a.Registry())

	var buf bytes.Buffer
	if err := a.Print(&buf, ansi, 100); err != nil {
		t.Fatalf("Print: %v", err)
	}
	rows := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	for i, row := range rows {
		if w := lipgloss.Width(row); w != 100 {
			t.Errorf("row %d width = %d, want 100", i, w)
		}
	}
	if !strings.Contains(rows[1], "normal") {
		t.Errorf("statusline row = %q", rows[1])
	}
}

func TestInitScriptEnablesZoom(t *testing.T) {
	dir := t.TempDir()
	script := writeFile(t, dir, "init.lua", `stormline.set_var("g", "zoom_scale_factor", 1.5)`)

	a := newTestApp(t, Options{InitScript: script, Cwd: dir})
	if f := frame(t, a); !strings.Contains(f.Statusline.Str, "150%") {
		t.Errorf("statusline = %q, want the zoom level", f.Statusline.Str)
	}
}
