package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// Host is what scripts can change through the stormline module.
type Host interface {
	// Redraw asks for the lines to be rendered again.
	Redraw()
	ExcludeFiletype(ft string)
	SetVar(global bool, name string, v any) error
	// Var returns nil for an unset variable.
	Var(global bool, name string) (any, error)
	// Autocmd registers fn for events matching patterns. A once autocmd is
	// removed after it first fires.
	Autocmd(events, patterns []string, once bool, fn func(event, match string) error) error
}

// InstallAPI registers the stormline module backed by h.
func InstallAPI(s *State, h Host) {
	b := NewBridge(s.L)

	s.RegisterModule("stormline", map[string]lua.LGFunction{
		"redraw": func(L *lua.LState) int {
			h.Redraw()
			return 0
		},
		"exclude_filetype": func(L *lua.LState) int {
			for i := 1; i <= L.GetTop(); i++ {
				h.ExcludeFiletype(L.CheckString(i))
			}
			return 0
		},
		"set_var": func(L *lua.LState) int {
			global := scopeArg(L, 1)
			name := L.CheckString(2)
			if err := h.SetVar(global, name, b.ToGoValue(L.Get(3))); err != nil {
				L.RaiseError("set_var %s: %s", name, err.Error())
			}
			return 0
		},
		"get_var": func(L *lua.LState) int {
			global := scopeArg(L, 1)
			name := L.CheckString(2)
			v, err := h.Var(global, name)
			if err != nil {
				L.RaiseError("get_var %s: %s", name, err.Error())
				return 0
			}
			L.Push(b.ToLuaValue(v))
			return 1
		},
		"autocmd": func(L *lua.LState) int {
			events, err := b.StringList(L.Get(1))
			if err != nil {
				L.ArgError(1, err.Error())
				return 0
			}
			patterns, err := b.StringList(L.Get(2))
			if err != nil {
				L.ArgError(2, err.Error())
				return 0
			}
			fn := L.CheckFunction(3)
			once := false
			if opts := L.OptTable(4, nil); opts != nil {
				once = lua.LVAsBool(opts.RawGetString("once"))
			}
			err = h.Autocmd(events, patterns, once, func(event, match string) error {
				_, err := s.CallFunction(fn, lua.LString(event), lua.LString(match))
				return err
			})
			if err != nil {
				L.RaiseError("autocmd: %s", err.Error())
			}
			return 0
		},
	})
}

func scopeArg(L *lua.LState, n int) bool {
	switch scope := L.CheckString(n); scope {
	case "g":
		return true
	case "b":
		return false
	default:
		L.ArgError(n, fmt.Sprintf("scope must be \"g\" or \"b\", got %q", scope))
		return false
	}
}
