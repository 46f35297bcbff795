package statusline

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/stormline/internal/statusfmt"
	"github.com/dshills/stormline/internal/theme"
)

type fakeHost struct {
	groups     map[string]theme.HighlightStyle
	installs   int
	filetype   string
	ftErr      error
	measureErr error
	setErr     error
}

func newFakeHost() *fakeHost {
	return &fakeHost{groups: make(map[string]theme.HighlightStyle)}
}

func (h *fakeHost) SetHighlight(name string, style theme.HighlightStyle) error {
	if h.setErr != nil {
		return h.setErr
	}
	h.installs++
	h.groups[name] = style
	return nil
}

func (h *fakeHost) MeasureWidth(format string) (int, error) {
	if h.measureErr != nil {
		return 0, h.measureErr
	}
	info, err := statusfmt.Evaluate(format, statusfmt.Context{Line: 10, Col: 4})
	if err != nil {
		return 0, err
	}
	return info.Width, nil
}

func (h *fakeHost) Filetype() (string, error) {
	return h.filetype, h.ftErr
}

type fakeTile struct {
	name     string
	content  string
	icon     string
	style    TileStyle
	def      theme.HighlightStyle
	next     *theme.HighlightStyle
	setups   int
	refreshs int
	err      error
}

func (t *fakeTile) Content() (string, error) { return t.content, t.err }
func (t *fakeTile) HighlightName() (string, error) { return t.name, nil }
func (t *fakeTile) DefaultStyle() theme.HighlightStyle { return t.def }
func (t *fakeTile) Style() TileStyle { return t.style }
func (t *fakeTile) Icon() (string, error) { return t.icon, nil }
func (t *fakeTile) Setup(Styler) error { t.setups++; return nil }
func (t *fakeTile) Refresh() error { t.refreshs++; return nil }
func (t *fakeTile) UpdateStyle(prev theme.HighlightStyle) (theme.HighlightStyle, error) {
	if t.next != nil {
		return *t.next, nil
	}
	return prev, nil
}

func bubble(name, content string) string {
	return "%#" + name + "Rev#\ue0b6%#" + name + "#" + content + "%#" + name + "Rev#\ue0b4%*"
}

func TestRenderScenarioModeAndLocation(t *testing.T) {
	host := newFakeHost()
	line := New(host)
	line.AddLeft(&fakeTile{name: "StatusMode", content: "normal"})
	line.AddRight(&fakeTile{name: "StatusMode", content: "col 4:row 10"})

	got, err := line.Render()
	if err != nil {
		t.Fatal(err)
	}

	// "normal" is 6 cells shorter than "col 4:row 10".
	want := bubble("StatusMode", "normal") + strings.Repeat(" ", 6) + "%=" + bubble("StatusMode", "col 4:row 10")
	if got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderSkipsEmptyContent(t *testing.T) {
	host := newFakeHost()
	line := New(host)
	line.AddLeft(&fakeTile{name: "A", content: "a"})
	line.AddLeft(&fakeTile{name: "B", content: ""})
	line.AddLeft(&fakeTile{name: "C", content: "c"})

	got, err := line.Render()
	if err != nil {
		t.Fatal(err)
	}
	want := bubble("A", "a") + " " + bubble("C", "c") + "%="
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderIdempotentAndCached(t *testing.T) {
	host := newFakeHost()
	line := New(host)
	line.AddLeft(&fakeTile{name: "A", content: "a", def: theme.WithBg(theme.RGB(1, 2, 3))})
	line.AddRight(&fakeTile{name: "B", content: "b", style: Icon, icon: "i"})

	first, err := line.Render()
	if err != nil {
		t.Fatal(err)
	}
	installs := host.installs

	second, err := line.Render()
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("renders differ:\n%q\n%q", first, second)
	}
	if host.installs != installs {
		t.Errorf("second render installed %d groups, want 0", host.installs-installs)
	}
}

func TestSetupRunsOnce(t *testing.T) {
	host := newFakeHost()
	tile := &fakeTile{name: "A", content: "a"}
	line := New(host)
	line.AddCenter(tile)

	if line.Ready() {
		t.Fatal("line ready before first render")
	}
	for range 3 {
		if _, err := line.Render(); err != nil {
			t.Fatal(err)
		}
	}
	if !line.Ready() {
		t.Error("line not ready after render")
	}
	if tile.setups != 1 {
		t.Errorf("Setup called %d times, want 1", tile.setups)
	}
	if tile.refreshs != 3 {
		t.Errorf("Refresh called %d times, want 3", tile.refreshs)
	}
}

func TestSetupInstallsDerivedGroups(t *testing.T) {
	host := newFakeHost()
	colors := theme.StatusColors{BG: theme.RGB(1, 1, 1), FG: theme.RGB(2, 2, 2)}
	blue := theme.RGB(0, 0, 255)

	line := New(host, WithColors(colors))
	line.AddLeft(&fakeTile{name: "Bub", content: "x", def: theme.WithBg(blue)})
	line.AddLeft(&fakeTile{name: "Ico", content: "x", icon: "i", style: Icon, def: theme.WithBg(blue)})

	if _, err := line.Render(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		group string
		want  theme.HighlightStyle
	}{
		{"Bub", theme.WithBg(blue).WithForeground(colors.BG)},
		{"BubRev", theme.WithFg(blue).WithBackground(colors.BG)},
		{"Ico", theme.WithBg(blue).WithForeground(colors.BG)},
		{"IcoRev", theme.WithFg(blue).WithBackground(colors.FG)},
		{"IcoSep", theme.WithFg(blue).WithBackground(colors.BG)},
	}
	for _, tt := range tests {
		got, ok := host.groups[tt.group]
		if !ok {
			t.Errorf("group %s not installed", tt.group)
			continue
		}
		if got != tt.want {
			t.Errorf("group %s = %v, want %v", tt.group, got, tt.want)
		}
	}
	if _, ok := host.groups["BubSep"]; ok {
		t.Error("bubble tile should not get a separator group")
	}
}

func TestRenderReinstallsOnlyChangedStyle(t *testing.T) {
	host := newFakeHost()
	red := theme.WithBg(theme.RGB(255, 0, 0))
	tile := &fakeTile{name: "A", content: "a", def: theme.WithBg(theme.RGB(0, 0, 255))}
	line := New(host)
	line.AddLeft(tile)

	if _, err := line.Render(); err != nil {
		t.Fatal(err)
	}
	base := host.installs

	tile.next = &red
	if _, err := line.Render(); err != nil {
		t.Fatal(err)
	}
	if host.installs-base != 2 {
		t.Errorf("changed style installed %d groups, want 2", host.installs-base)
	}
	if host.groups["A"].Bg != red.Bg {
		t.Errorf("group A bg = %v, want %v", host.groups["A"].Bg, red.Bg)
	}

	base = host.installs
	if _, err := line.Render(); err != nil {
		t.Fatal(err)
	}
	if host.installs != base {
		t.Errorf("unchanged style reinstalled %d groups", host.installs-base)
	}
}

func TestRenderSkippedTileKeepsCachedStyle(t *testing.T) {
	host := newFakeHost()
	red := theme.WithBg(theme.RGB(255, 0, 0))
	tile := &fakeTile{name: "A", content: "", next: &red}
	line := New(host)
	line.AddLeft(tile)

	if _, err := line.Render(); err != nil {
		t.Fatal(err)
	}
	base := host.installs
	if _, err := line.Render(); err != nil {
		t.Fatal(err)
	}
	if host.installs != base {
		t.Error("empty tile should not update its style")
	}
	if line.sections[Left][0].style != (theme.HighlightStyle{}) {
		t.Errorf("cached style changed to %v", line.sections[Left][0].style)
	}
}

func TestRenderCentering(t *testing.T) {
	tests := []struct {
		left, right string
	}{
		{"a", "abcdef"},
		{"abcdef", "a"},
		{"same", "same"},
		{"日本語", "x"},
	}

	for _, tt := range tests {
		host := newFakeHost()
		line := New(host)
		line.AddLeft(&fakeTile{name: "L", content: tt.left})
		line.AddCenter(&fakeTile{name: "C", content: "center"})
		line.AddRight(&fakeTile{name: "R", content: tt.right})

		got, err := line.Render()
		if err != nil {
			t.Fatal(err)
		}
		parts := strings.Split(got, "%=")
		if len(parts) != 3 {
			t.Fatalf("Render() = %q, want three parts", got)
		}
		wl, _ := host.MeasureWidth(parts[0])
		wr, _ := host.MeasureWidth(parts[2])
		ml, _ := host.MeasureWidth(bubble("L", tt.left))
		mr, _ := host.MeasureWidth(bubble("R", tt.right))
		if wl != wr || wl != max(ml, mr) {
			t.Errorf("left/right = %d/%d, want both %d", wl, wr, max(ml, mr))
		}
		if !strings.HasPrefix(parts[2], strings.Repeat(" ", wr-mr)) {
			t.Errorf("right section %q not padded on its left", parts[2])
		}
	}
}

func TestRenderCenterSectionsPadOutward(t *testing.T) {
	host := newFakeHost()
	line := New(host)
	line.AddLeftCenter(&fakeTile{name: "LC", content: "abcd"})
	line.AddCenter(&fakeTile{name: "C", content: "c"})
	line.AddRightCenter(&fakeTile{name: "RC", content: "a"})

	got, err := line.Render()
	if err != nil {
		t.Fatal(err)
	}
	want := "%=" + bubble("LC", "abcd") + " " + bubble("C", "c") + " " + bubble("RC", "a") + "   %="
	if got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderIconTile(t *testing.T) {
	host := newFakeHost()
	line := New(host)
	line.AddLeft(&fakeTile{name: "Git", content: "main", icon: "G", style: Icon})
	line.AddLeft(&fakeTile{name: "Empty", content: "", icon: "E", style: Icon})

	got, err := line.Render()
	if err != nil {
		t.Fatal(err)
	}
	want := "%#GitSep#\ue0b6%#Git#G %#GitRev# main%*\ue0b4%*%="
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderIconMissing(t *testing.T) {
	host := newFakeHost()
	line := New(host)
	line.AddLeft(&fakeTile{name: "Bad", content: "x", style: Icon})

	_, err := line.Render()
	if !errors.Is(err, ErrIconMissing) {
		t.Fatalf("error = %v, want ErrIconMissing", err)
	}
	var fe *RenderFormatError
	if !errors.As(err, &fe) || fe.Tile != "Bad" {
		t.Errorf("error = %#v, want RenderFormatError for Bad", err)
	}
}

func TestRenderExcludedFiletype(t *testing.T) {
	host := newFakeHost()
	host.filetype = "dashboard"
	tile := &fakeTile{name: "A", content: "a"}
	line := New(host)
	line.AddLeft(tile)
	line.ExcludeFiletype("dashboard")
	line.ExcludeFiletype("dashboard")

	got, err := line.Render()
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
	if !line.Ready() || tile.setups != 1 {
		t.Error("setup should still run for excluded file types")
	}
}

func TestRenderErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")

	t.Run("tile", func(t *testing.T) {
		line := New(newFakeHost())
		line.AddLeft(&fakeTile{name: "A", err: boom})
		if _, err := line.Render(); !errors.Is(err, boom) {
			t.Errorf("error = %v, want boom", err)
		}
	})

	t.Run("filetype", func(t *testing.T) {
		host := newFakeHost()
		host.ftErr = boom
		line := New(host)
		_, err := line.Render()
		var he *HostQueryError
		if !errors.As(err, &he) || !errors.Is(err, boom) {
			t.Errorf("error = %v, want HostQueryError wrapping boom", err)
		}
	})

	t.Run("measure", func(t *testing.T) {
		host := newFakeHost()
		host.measureErr = boom
		line := New(host)
		line.AddLeft(&fakeTile{name: "A", content: "a"})
		if _, err := line.Render(); !errors.Is(err, boom) {
			t.Errorf("error = %v, want boom", err)
		}
	})

	t.Run("setup", func(t *testing.T) {
		host := newFakeHost()
		host.setErr = boom
		line := New(host)
		line.AddLeft(&fakeTile{name: "A", content: "a"})
		if _, err := line.Render(); !errors.Is(err, boom) {
			t.Errorf("error = %v, want boom", err)
		}
		if line.Ready() {
			t.Error("line should not be ready after failed setup")
		}
	})
}

func TestEmptyLine(t *testing.T) {
	got, err := New(newFakeHost()).Render()
	if err != nil {
		t.Fatal(err)
	}
	if got != "%=" {
		t.Errorf("Render() = %q, want %%=", got)
	}
}

func TestSectionString(t *testing.T) {
	tests := []struct {
		s    Section
		want string
	}{
		{Left, "left"},
		{LeftCenter, "left_center"},
		{Center, "center"},
		{RightCenter, "right_center"},
		{Right, "right"},
		{Section(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
	if Icon.String() != "icon" || Bubble.String() != "bubble" {
		t.Error("TileStyle.String mismatch")
	}
}
