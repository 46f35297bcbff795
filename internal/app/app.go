// Package app wires the status line engine into a runnable program: it owns
// the editor session, the configured lines, the autocmds that trigger
// redraws, the Lua state and the git publisher.
package app

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/stormline/internal/autocmd"
	"github.com/dshills/stormline/internal/config"
	"github.com/dshills/stormline/internal/gitinfo"
	"github.com/dshills/stormline/internal/host"
	"github.com/dshills/stormline/internal/logging"
	"github.com/dshills/stormline/internal/plugin/lua"
	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/theme"
)

// Line names double as the session options that hold their expressions.
const (
	StatuslineName = "statusline"
	WinbarName     = "winbar"
)

// Base highlight groups the painters fall back to.
const (
	StatuslineGroup = "StatusLine"
	WinbarGroup     = "WinBar"
)

// Option expressions. Each calls the Lua global of the same name, which
// renders the line.
const (
	statuslineExpr = "%!v:lua.statusline()"
	winbarExpr     = "%{%v:lua.winbar()%}"
)

// Application is the central coordinator of the stormline components.
type Application struct {
	mu sync.Mutex

	logger   *logging.Logger
	config   *config.Config
	palette  *theme.Palette
	registry *theme.Registry

	session  *host.Session
	autocmds *autocmd.Registry
	script   *lua.State
	git      *gitinfo.Client

	lines    map[string]*statusline.Line
	last     map[string]string
	excluded []string

	// redraw is called after a redraw request; the preview posts a screen
	// event from it.
	redraw func()
	dirty  atomic.Bool

	running atomic.Bool
	opts    Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the TOML configuration file.
	ConfigPath string

	// File is the buffer opened on startup.
	File string

	// Mode is the initial raw mode code.
	Mode string

	// InitScript is a Lua file run after the lines are built.
	InitScript string

	// Cwd is the working directory. Defaults to the process directory.
	Cwd string

	// LogLevel overrides the configured level when set.
	LogLevel string

	Logger *logging.Logger

	// Git replaces the git client, mainly for tests.
	Git *gitinfo.Client
}

// New creates an application and bootstraps every component.
func New(opts Options) (*Application, error) {
	if opts.Logger == nil {
		opts.Logger = logging.New(logging.DefaultConfig())
	}
	if opts.Mode == "" {
		opts.Mode = "n"
	}
	app := &Application{
		opts:   opts,
		logger: opts.Logger,
		last:   make(map[string]string),
	}

	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Session returns the editor session.
func (app *Application) Session() *host.Session {
	return app.session
}

// Registry returns the highlight table.
func (app *Application) Registry() *theme.Registry {
	return app.registry
}

// Autocmds returns the autocmd registry.
func (app *Application) Autocmds() *autocmd.Registry {
	return app.autocmds
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.config
}

// Line returns a configured line by name.
func (app *Application) Line(name string) (*statusline.Line, error) {
	app.mu.Lock()
	defer app.mu.Unlock()
	l, ok := app.lines[name]
	if !ok {
		return nil, ErrUnknownLine
	}
	return l, nil
}

// RequestRedraw marks the lines for repainting.
func (app *Application) RequestRedraw() {
	app.dirty.Store(true)
	app.mu.Lock()
	fn := app.redraw
	app.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// redrawCommand is the command autocmd triggers run to repaint the lines.
const redrawCommand = "redrawstatus!"

// runCommand executes an autocmd command line. Only the redraw commands are
// understood.
func (app *Application) runCommand(command string) error {
	switch strings.TrimSpace(command) {
	case "redrawstatus", redrawCommand:
		app.RequestRedraw()
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
}

// TakeRedraw reports whether a redraw was requested and clears the request.
func (app *Application) TakeRedraw() bool {
	return app.dirty.Swap(false)
}

func (app *Application) setRedraw(fn func()) {
	app.mu.Lock()
	app.redraw = fn
	app.mu.Unlock()
}

// ExcludeFiletype hides both lines for buffers of filetype ft. The exclusion
// survives configuration reloads.
func (app *Application) ExcludeFiletype(ft string) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.excluded = append(app.excluded, ft)
	for _, l := range app.lines {
		l.ExcludeFiletype(ft)
	}
}

// Close releases the Lua state.
func (app *Application) Close() error {
	if app.script == nil {
		return nil
	}
	return app.script.Close()
}
