package app

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/stormline/internal/config"
	"github.com/dshills/stormline/internal/statusline/tiles"
	"github.com/dshills/stormline/internal/terminal"
)

// modeKeys maps preview keys to raw mode codes.
var modeKeys = map[rune]string{
	'n': "n",
	'i': "i",
	'v': "v",
	'R': "R",
	':': "c",
	't': "t",
}

var previewHelp = []string{
	"n i v R : t   switch mode",
	"m             toggle modified",
	"w             write buffer",
	"e / W         add an error / a warning",
	"x             clear diagnostics",
	"a             alternate buffer",
	"q             quit",
}

// maxDiagnostics wraps the preview's diagnostic counters.
const maxDiagnostics = 12

// RunPreview paints the winbar on the first row and the statusline on the
// last row of screen and handles keys until 'q'. When a configuration path
// is set the file is watched and reloaded live.
func (app *Application) RunPreview(screen tcell.Screen) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer screen.Fini()

	app.setRedraw(func() {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer app.setRedraw(nil)

	if app.opts.ConfigPath != "" {
		w, err := config.Watch(app.opts.ConfigPath, app.reloadConfig, config.WithWatchLogger(app.logger))
		if err != nil {
			app.logger.Warn("watch %s: %v", app.opts.ConfigPath, err)
		} else {
			defer w.Close()
		}
	}

	painter := terminal.NewPainter(screen, app.registry)
	app.draw(screen, painter)

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			if !app.TakeRedraw() {
				continue
			}
		case *tcell.EventKey:
			if err := app.handleKey(ev); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				app.logger.Error("key %s: %v", ev.Name(), err)
			}
		default:
			continue
		}
		app.draw(screen, painter)
	}
}

func (app *Application) reloadConfig(cfg *config.Config, err error) {
	if err != nil {
		app.logger.Error("reload config: %v", err)
		return
	}
	if err := app.ApplyConfig(cfg); err != nil {
		app.logger.Error("apply config: %v", err)
		return
	}
	app.logger.Info("configuration reloaded")
}

// handleKey applies one preview key to the session.
func (app *Application) handleKey(ev *tcell.EventKey) error {
	s := app.session
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyEscape:
		return s.SetMode("n")
	case tcell.KeyRune:
	default:
		return nil
	}

	r := ev.Rune()
	if code, ok := modeKeys[r]; ok {
		return s.SetMode(code)
	}

	switch r {
	case 'q':
		return ErrQuit
	case 'm':
		b, err := s.Current()
		if err != nil {
			return err
		}
		return s.SetModified(!b.Modified)
	case 'w':
		return s.Write()
	case 'e':
		return app.bumpDiagnostic(tiles.SeverityError)
	case 'W':
		return app.bumpDiagnostic(tiles.SeverityWarn)
	case 'x':
		for _, sev := range []tiles.Severity{tiles.SeverityError, tiles.SeverityWarn, tiles.SeverityInfo, tiles.SeverityHint} {
			if err := s.SetDiagnostics(sev, 0); err != nil {
				return err
			}
		}
	case 'a':
		return s.SwitchAlt()
	}
	return nil
}

func (app *Application) bumpDiagnostic(sev tiles.Severity) error {
	n, err := app.session.DiagnosticCount(false, sev)
	if err != nil {
		return err
	}
	return app.session.SetDiagnostics(sev, (n+1)%maxDiagnostics)
}

func (app *Application) draw(screen tcell.Screen, p *terminal.Painter) {
	frame, err := app.Frame()
	if err != nil {
		app.logger.Error("frame: %v", err)
		return
	}

	screen.Clear()
	_, height := screen.Size()
	if err := p.PaintLine(0, WinbarGroup, frame.Winbar); err != nil {
		app.logger.Error("paint %s: %v", WinbarName, err)
	}

	normal, err := app.registry.Resolve("Normal")
	if err != nil {
		app.logger.Error("paint help: %v", err)
	}
	style := terminal.TcellStyle(normal)
	for i, line := range app.helpLines() {
		y := 2 + i
		if y >= height-1 {
			break
		}
		drawText(screen, 2, y, line, style)
	}

	if err := p.PaintLine(height-1, StatuslineGroup, frame.Statusline); err != nil {
		app.logger.Error("paint %s: %v", StatuslineName, err)
	}
	screen.Show()
}

func (app *Application) helpLines() []string {
	lines := append([]string(nil), previewHelp...)
	if b, err := app.session.Current(); err == nil {
		lines = append(lines, "", fmt.Sprintf("buffer %s (%s)", b.Name, b.Filetype))
	}
	return lines
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
