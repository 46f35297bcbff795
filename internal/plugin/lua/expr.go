package lua

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

const exprPrefix = "v:lua."

// RegisterRenderer exposes fn as a zero-argument global returning a string.
// An error from fn is raised as a Lua error.
func (s *State) RegisterRenderer(name string, fn func() (string, error)) {
	s.RegisterFunc(name, func(L *lua.LState) int {
		out, err := fn()
		if err != nil {
			L.RaiseError("%s: %s", name, err.Error())
			return 0
		}
		L.Push(lua.LString(out))
		return 1
	})
}

// EvalExpr evaluates an option expression of the form "v:lua.name()",
// optionally prefixed with "%!". name may be a dotted path into tables.
// A nil result evaluates to "".
func (s *State) EvalExpr(expr string) (string, error) {
	e := strings.TrimPrefix(strings.TrimSpace(expr), "%!")
	name, ok := strings.CutPrefix(e, exprPrefix)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrBadExpr, expr)
	}
	name, ok = strings.CutSuffix(name, "()")
	if !ok || name == "" || strings.ContainsAny(name, "() ") {
		return "", fmt.Errorf("%w: %q", ErrBadExpr, expr)
	}

	results, err := s.Call(name)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}
	switch v := results[0].(type) {
	case lua.LString:
		return string(v), nil
	case lua.LNumber, lua.LBool:
		return v.String(), nil
	case *lua.LNilType:
		return "", nil
	default:
		return "", fmt.Errorf("%s returned %s, want string", name, v.Type())
	}
}
