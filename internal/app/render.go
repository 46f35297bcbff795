package app

import (
	"fmt"
	"io"

	"github.com/dshills/stormline/internal/statusfmt"
	"github.com/dshills/stormline/internal/terminal"
)

// Frame holds both lines evaluated for one redraw.
type Frame struct {
	Winbar     statusfmt.Info
	Statusline statusfmt.Info
}

// renderer returns the function the Lua global of a line calls.
func (app *Application) renderer(name string) func() (string, error) {
	return func() (string, error) {
		return app.renderLine(name)
	}
}

// renderLine renders a line. A failed render is logged and the previous
// output is returned instead.
func (app *Application) renderLine(name string) (string, error) {
	l, err := app.Line(name)
	if err != nil {
		return "", err
	}

	out, err := l.Render()

	app.mu.Lock()
	defer app.mu.Unlock()
	if err != nil {
		app.logger.Error("render %s: %v", name, err)
		return app.last[name], nil
	}
	app.last[name] = out
	return out, nil
}

// Frame evaluates the winbar and statusline options of the session.
func (app *Application) Frame() (Frame, error) {
	var f Frame
	var err error
	if f.Winbar, err = app.session.RenderOption(WinbarName); err != nil {
		return Frame{}, fmt.Errorf("%s: %w", WinbarName, err)
	}
	if f.Statusline, err = app.session.RenderOption(StatuslineName); err != nil {
		return Frame{}, fmt.Errorf("%s: %w", StatuslineName, err)
	}
	return f, nil
}

// Print writes the winbar and the statusline, each laid out over width cells.
func (app *Application) Print(w io.Writer, ansi *terminal.ANSI, width int) error {
	f, err := app.Frame()
	if err != nil {
		return err
	}
	rows := []struct {
		info statusfmt.Info
		base string
	}{
		{f.Winbar, WinbarGroup},
		{f.Statusline, StatuslineGroup},
	}
	for _, r := range rows {
		line, err := ansi.Render(r.info, width, r.base)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
