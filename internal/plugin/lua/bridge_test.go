package lua

import (
	"reflect"
	"testing"

	glua "github.com/yuin/gopher-lua"
)

func TestBridgeToGoValue(t *testing.T) {
	state := newTestState(t)
	if err := state.DoString(`
		n = 42
		f = 1.5
		s = "hi"
		list = {"a", "b"}
		dict = {added = 1, name = "x"}
		cyc = {}
		cyc.self = cyc
		shared = {1}
		twice = {a = shared, b = shared}
	`); err != nil {
		t.Fatal(err)
	}
	b := NewBridge(state.L)

	tests := []struct {
		global string
		want   any
	}{
		{"n", int64(42)},
		{"f", 1.5},
		{"s", "hi"},
		{"list", []any{"a", "b"}},
		{"dict", map[string]any{"added": int64(1), "name": "x"}},
		{"cyc", map[string]any{"self": nil}},
		{"twice", map[string]any{"a": []any{int64(1)}, "b": []any{int64(1)}}},
		{"missing", nil},
	}
	for _, tt := range tests {
		got := b.ToGoValue(state.GetGlobal(tt.global))
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s = %#v, want %#v", tt.global, got, tt.want)
		}
	}
}

func TestBridgeToLuaValue(t *testing.T) {
	state := newTestState(t)
	b := NewBridge(state.L)

	state.SetGlobal("v", b.ToLuaValue(map[string]any{"added": 3, "list": []string{"x"}}))
	if err := state.DoString(`ok = v.added == 3 and v.list[1] == "x"`); err != nil {
		t.Fatal(err)
	}
	if state.GetGlobal("ok") != glua.LTrue {
		t.Error("converted table has wrong contents")
	}
	if b.ToLuaValue(nil) != glua.LNil {
		t.Error("nil should convert to LNil")
	}
}

func TestBridgeStringList(t *testing.T) {
	state := newTestState(t)
	b := NewBridge(state.L)

	tbl := state.L.NewTable()
	tbl.Append(glua.LString("BufEnter"))
	tbl.Append(glua.LString("BufWritePost"))

	got, err := b.StringList(tbl)
	if err != nil || !reflect.DeepEqual(got, []string{"BufEnter", "BufWritePost"}) {
		t.Errorf("StringList(table) = %v, %v", got, err)
	}
	if got, err := b.StringList(glua.LString("User")); err != nil || len(got) != 1 {
		t.Errorf("StringList(string) = %v, %v", got, err)
	}
	if got, err := b.StringList(glua.LNil); err != nil || got != nil {
		t.Errorf("StringList(nil) = %v, %v", got, err)
	}
	if _, err := b.StringList(glua.LNumber(1)); err == nil {
		t.Error("StringList(number) should fail")
	}

	bad := state.L.NewTable()
	bad.Append(glua.LNumber(1))
	if _, err := b.StringList(bad); err == nil {
		t.Error("StringList with a number element should fail")
	}
}
