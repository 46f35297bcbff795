package lua

import (
	"errors"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

func newTestState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	state, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	t.Cleanup(func() { state.Close() })
	return state
}

func TestStateDoString(t *testing.T) {
	state := newTestState(t)

	if err := state.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v := state.GetGlobal("x"); v != glua.LNumber(2) {
		t.Errorf("x = %v, want 2", v)
	}

	if err := state.DoString(`this is not lua`); err == nil {
		t.Error("DoString() with a syntax error should fail")
	}
}

func TestStateCall(t *testing.T) {
	state := newTestState(t)
	if err := state.DoString(`
		function add(a, b) return a + b end
		git = { branch = function() return "main" end }
		notfn = 3
	`); err != nil {
		t.Fatal(err)
	}

	res, err := state.Call("add", glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 1 || res[0] != glua.LNumber(5) {
		t.Errorf("add(2, 3) = %v", res)
	}

	res, err = state.Call("git.branch")
	if err != nil {
		t.Fatal(err)
	}
	if res[0] != glua.LString("main") {
		t.Errorf("git.branch() = %v", res)
	}

	for _, name := range []string{"missing", "notfn", "git.missing", "notfn.x"} {
		if _, err := state.Call(name); !errors.Is(err, ErrNotFunction) {
			t.Errorf("Call(%q) error = %v, want ErrNotFunction", name, err)
		}
	}
}

func TestStateTimeout(t *testing.T) {
	state := newTestState(t, WithExecutionTimeout(50*time.Millisecond))

	err := state.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("DoString() error = %v, want ErrExecutionTimeout", err)
	}

	if err := state.DoString(`y = 1`); err != nil {
		t.Errorf("state unusable after timeout: %v", err)
	}
}

func TestStateClose(t *testing.T) {
	state, err := NewState()
	if err != nil {
		t.Fatal(err)
	}
	if err := state.Close(); err != nil {
		t.Fatal(err)
	}
	if err := state.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
	if !state.IsClosed() {
		t.Error("IsClosed() = false")
	}
	if err := state.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close = %v", err)
	}
	if _, err := state.Call("print"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call() after Close = %v", err)
	}
	if v := state.GetGlobal("print"); v != glua.LNil {
		t.Errorf("GetGlobal() after Close = %v", v)
	}
}

func TestRegisterModule(t *testing.T) {
	state := newTestState(t)
	state.RegisterModule("util", map[string]glua.LGFunction{
		"double": func(L *glua.LState) int {
			L.Push(glua.LNumber(L.CheckNumber(1) * 2))
			return 1
		},
	})

	if err := state.DoString(`a = util.double(4); b = require("util").double(5)`); err != nil {
		t.Fatal(err)
	}
	if state.GetGlobal("a") != glua.LNumber(8) || state.GetGlobal("b") != glua.LNumber(10) {
		t.Errorf("a = %v, b = %v", state.GetGlobal("a"), state.GetGlobal("b"))
	}
}
