package app

import (
	"errors"

	"github.com/dshills/stormline/internal/autocmd"
	"github.com/dshills/stormline/internal/statusline/tiles"
)

// scriptHost exposes the application to Lua scripts.
type scriptHost struct {
	app *Application
}

func (h *scriptHost) Redraw() {
	h.app.RequestRedraw()
}

func (h *scriptHost) ExcludeFiletype(ft string) {
	h.app.ExcludeFiletype(ft)
}

func scope(global bool) tiles.VarScope {
	if global {
		return tiles.GlobalScope
	}
	return tiles.BufferScope
}

func (h *scriptHost) SetVar(global bool, name string, v any) error {
	if v == nil {
		return h.app.session.DelVar(scope(global), name)
	}
	return h.app.session.SetVar(scope(global), name, v)
}

func (h *scriptHost) Var(global bool, name string) (any, error) {
	v, err := h.app.session.Var(scope(global), name)
	if errors.Is(err, tiles.ErrNotFound) {
		return nil, nil
	}
	return v, err
}

func (h *scriptHost) Autocmd(events, patterns []string, once bool, fn func(event, match string) error) error {
	cb := func(ev autocmd.Event) error {
		return fn(ev.Name, ev.Match)
	}
	var err error
	if once {
		_, err = h.app.autocmds.CreateOnce(events, patterns, cb)
	} else {
		_, err = h.app.autocmds.Create(events, patterns, cb)
	}
	return err
}
