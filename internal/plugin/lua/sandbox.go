package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// Sandbox restricts what user scripts can reach.
type Sandbox struct {
	L       *lua.LState
	allowed map[string]bool
}

// NewSandbox creates a sandbox for the Lua state.
func NewSandbox(L *lua.LState) *Sandbox {
	return &Sandbox{
		L: L,
		allowed: map[string]bool{
			"string": true,
			"table":  true,
			"math":   true,
		},
	}
}

// Install removes loaders and replaces require with a whitelist.
func (s *Sandbox) Install() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.installSafeRequire()
}

// Allow lets require load a module registered with PreloadModule.
func (s *Sandbox) Allow(module string) {
	s.allowed[module] = true
}

// Allowed reports whether require may load module.
func (s *Sandbox) Allowed(module string) bool {
	return s.allowed[module]
}

// installSafeRequire clears the module search paths and wraps require so only
// whitelisted modules load.
func (s *Sandbox) installSafeRequire() {
	if pkg, ok := s.L.GetGlobal("package").(*lua.LTable); ok {
		s.L.SetField(pkg, "path", lua.LString(""))
		s.L.SetField(pkg, "cpath", lua.LString(""))
	}

	originalRequire := s.L.GetGlobal("require")
	s.L.SetGlobal("require", s.L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if !s.allowed[name] {
			L.RaiseError("module %q is not available", name)
			return 0
		}
		L.Push(originalRequire)
		L.Push(lua.LString(name))
		L.Call(1, 1)
		return 1
	}))
}
