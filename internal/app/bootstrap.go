package app

import (
	"context"
	"errors"
	"os"

	"github.com/dshills/stormline/internal/autocmd"
	"github.com/dshills/stormline/internal/config"
	"github.com/dshills/stormline/internal/gitinfo"
	"github.com/dshills/stormline/internal/host"
	"github.com/dshills/stormline/internal/logging"
	"github.com/dshills/stormline/internal/plugin/lua"
	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/statusline/tiles"
	"github.com/dshills/stormline/internal/theme"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 6),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initSession,
		b.initAutocmds,
		b.initScript,
		b.initLines,
		b.initDocuments,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

// initConfig loads the configuration. A broken file is logged and replaced
// by the defaults.
func (b *bootstrapper) initConfig() error {
	cfg := config.Default()
	if b.opts.ConfigPath != "" {
		loaded, err := config.Load(b.opts.ConfigPath)
		if err != nil {
			b.app.logger.Error("config: %v (using defaults)", err)
		} else {
			cfg = loaded
		}
	}

	if b.opts.LogLevel != "" {
		level, ok := logging.ParseLevel(b.opts.LogLevel)
		if !ok {
			return &InitError{Component: "logger", Err: config.ErrInvalidLevel}
		}
		b.app.logger.SetLevel(level)
	} else {
		b.app.logger.SetLevel(cfg.Level())
	}

	palette, err := cfg.ThemePalette()
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	b.app.config = cfg
	b.app.palette = palette
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initSession creates the editor session and installs the theme.
func (b *bootstrapper) initSession() error {
	cwd := b.opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return &InitError{Component: "session", Err: err}
		}
		cwd = wd
	}

	b.app.registry = theme.NewRegistry()
	b.app.session = host.New(cwd,
		host.WithRegistry(b.app.registry),
		host.WithLogger(b.app.logger),
	)
	if err := b.app.session.InstallTheme(b.app.palette); err != nil {
		return &InitError{Component: "theme", Err: err}
	}
	b.app.session.SetOption(StatuslineName, statuslineExpr)
	b.app.session.SetOption(WinbarName, winbarExpr)

	b.app.git = b.opts.Git
	if b.app.git == nil {
		b.app.git = gitinfo.New()
	}
	b.initOrder = append(b.initOrder, "session")
	return nil
}

// initAutocmds registers the redraw and git triggers and routes session
// events through them.
func (b *bootstrapper) initAutocmds() error {
	app := b.app
	app.autocmds = autocmd.New(
		autocmd.WithLogger(app.logger),
		autocmd.WithRunner(app.runCommand),
	)
	app.session.SetNotifier(app.autocmds)

	redraws := []struct {
		events, patterns []string
	}{
		{[]string{host.EventDiagnosticChanged, host.EventBufWritePost, host.EventModeChanged}, nil},
		{[]string{"User"}, []string{gitinfo.UpdateEvent}},
	}
	for _, t := range redraws {
		if _, err := app.autocmds.CreateCommand(t.events, t.patterns, redrawCommand); err != nil {
			return &InitError{Component: "autocmd", Err: err}
		}
	}
	_, err := app.autocmds.Create([]string{host.EventBufEnter, host.EventBufWritePost}, nil, func(autocmd.Event) error {
		app.RefreshGit(context.Background())
		return nil
	})
	if err != nil {
		return &InitError{Component: "autocmd", Err: err}
	}
	b.initOrder = append(b.initOrder, "autocmds")
	return nil
}

// initLines builds the statusline and winbar from the configuration.
func (b *bootstrapper) initLines() error {
	lines, err := b.app.buildLines(b.app.config, b.app.palette)
	if err != nil {
		return &InitError{Component: "lines", Err: err}
	}
	b.app.lines = lines
	b.initOrder = append(b.initOrder, "lines")
	return nil
}

// initScript creates the Lua state, exposes the renderers and runs the
// init script. It runs before the lines are built so that variables and
// exclusions the script sets shape them.
func (b *bootstrapper) initScript() error {
	app := b.app
	state, err := lua.NewState()
	if err != nil {
		return &InitError{Component: "lua", Err: err}
	}
	app.script = state
	b.initOrder = append(b.initOrder, "script")

	state.RegisterRenderer(StatuslineName, app.renderer(StatuslineName))
	state.RegisterRenderer(WinbarName, app.renderer(WinbarName))
	lua.InstallAPI(state, &scriptHost{app: app})
	app.session.SetEvaluator(state.EvalExpr)

	if b.opts.InitScript != "" {
		if err := state.DoFile(b.opts.InitScript); err != nil {
			return &InitError{Component: "init script", Err: err}
		}
	}
	return nil
}

// initDocuments sets the initial mode and opens the startup buffer.
func (b *bootstrapper) initDocuments() error {
	s := b.app.session
	if err := s.SetMode(b.opts.Mode); err != nil {
		return &InitError{Component: "documents", Err: err}
	}
	if b.opts.File == "" {
		b.app.RefreshGit(context.Background())
		return nil
	}
	if _, err := s.Open(b.opts.File, ""); err != nil {
		b.app.logger.Warn("open %s: %v", b.opts.File, err)
	}
	return nil
}

// cleanup releases components in reverse initialization order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "script":
			if b.app.script != nil {
				_ = b.app.script.Close()
				b.app.script = nil
			}
		case "autocmds":
			b.app.session.SetNotifier(nil)
			b.app.autocmds = nil
		case "lines":
			b.app.lines = nil
		}
	}
}

// buildLines creates the configured lines. Filetypes excluded at runtime are
// applied on top of the configured ones.
func (app *Application) buildLines(cfg *config.Config, palette *theme.Palette) (map[string]*statusline.Line, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	cwds, err := cfg.CwdAliases(palette, home)
	if err != nil {
		return nil, err
	}

	env := tiles.NewEnv(app.session, palette)
	env.Cwds = cwds

	layouts := []struct {
		name   string
		layout config.Layout
	}{
		{StatuslineName, cfg.Statusline},
		{WinbarName, cfg.Winbar},
	}

	app.mu.Lock()
	excluded := append([]string(nil), app.excluded...)
	app.mu.Unlock()

	lines := make(map[string]*statusline.Line, len(layouts))
	for _, ly := range layouts {
		l := statusline.New(app.session,
			statusline.WithName(ly.name),
			statusline.WithColors(env.Colors),
			statusline.WithLogger(app.logger),
		)
		for s, names := range ly.layout.Sections() {
			if err := tiles.Populate(l, statusline.Section(s), names, env); err != nil {
				return nil, err
			}
		}
		for _, ft := range ly.layout.ExcludeFiletypes {
			l.ExcludeFiletype(ft)
		}
		for _, ft := range excluded {
			l.ExcludeFiletype(ft)
		}
		lines[ly.name] = l
	}
	return lines, nil
}

// ApplyConfig rebuilds the theme and the lines from cfg and requests a
// redraw. On error the running configuration is kept.
func (app *Application) ApplyConfig(cfg *config.Config) error {
	palette, err := cfg.ThemePalette()
	if err != nil {
		return err
	}
	lines, err := app.buildLines(cfg, palette)
	if err != nil {
		return err
	}
	if err := app.session.InstallTheme(palette); err != nil {
		return err
	}

	app.mu.Lock()
	app.config = cfg
	app.palette = palette
	app.lines = lines
	app.mu.Unlock()

	if app.opts.LogLevel == "" {
		app.logger.SetLevel(cfg.Level())
	}
	app.RequestRedraw()
	return nil
}

// RefreshGit publishes the branch and the current buffer's change counts and
// fires the update event when inside a repository. Failures are logged.
func (app *Application) RefreshGit(ctx context.Context) {
	file := ""
	if b, err := app.session.Current(); err == nil {
		file = b.Name
	} else if !errors.Is(err, host.ErrNoBuffer) {
		app.logger.Warn("git: %v", err)
		return
	}
	cwd, err := app.session.Cwd()
	if err != nil {
		app.logger.Warn("git: %v", err)
		return
	}

	ok, err := app.git.Publish(ctx, app.session, cwd, file)
	if err != nil {
		app.logger.Warn("git: %v", err)
		return
	}
	if !ok {
		return
	}
	if err := app.autocmds.Exec("User", gitinfo.UpdateEvent); err != nil {
		app.logger.Warn("%s: %v", gitinfo.UpdateEvent, err)
	}
}
