package tiles

import (
	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/theme"
)

func lspAttached(ed Editor) (bool, error) {
	n, err := ed.LSPClientCount()
	if err != nil {
		return false, hostErr("get_clients", "lsp", err)
	}
	return n > 0, nil
}

func formatterAttached(ed Editor) (bool, error) {
	n, err := ed.FormatterCount()
	if err != nil {
		return false, hostErr("list_formatters", "formatter", err)
	}
	return n > 0, nil
}

func mark(ok bool) string {
	if ok {
		return IconGood
	}
	return IconBad
}

// LSPTile shows whether a language server is attached to the buffer.
type LSPTile struct {
	fileTail
}

// NewLSP creates a language server tile.
func NewLSP(env *Env) *LSPTile {
	return &LSPTile{fileTail{env: env}}
}

// Refresh reads the file name the group is derived from.
func (t *LSPTile) Refresh() error { return t.refresh() }

// Style returns Icon.
func (t *LSPTile) Style() statusline.TileStyle {
	return statusline.Icon
}

// Icon returns the language server icon.
func (t *LSPTile) Icon() (string, error) {
	return IconLSP, nil
}

// Content returns a check or a cross.
func (t *LSPTile) Content() (string, error) {
	ok, err := lspAttached(t.env.Editor)
	if err != nil {
		return "", err
	}
	return mark(ok), nil
}

// HighlightName is derived from the file's devicon group.
func (t *LSPTile) HighlightName() (string, error) {
	return "StatusLsp" + t.devicon().Group(), nil
}

// DefaultStyle returns a blue background.
func (t *LSPTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Blue)
}

// UpdateStyle uses the devicon color as background.
func (t *LSPTile) UpdateStyle(theme.HighlightStyle) (theme.HighlightStyle, error) {
	return t.iconStyle()
}

// FormatterTile shows whether a formatter is configured for the buffer.
type FormatterTile struct {
	fileTail
}

// NewFormatter creates a formatter tile.
func NewFormatter(env *Env) *FormatterTile {
	return &FormatterTile{fileTail{env: env}}
}

// Refresh reads the file name the group is derived from.
func (t *FormatterTile) Refresh() error { return t.refresh() }

// Style returns Icon.
func (t *FormatterTile) Style() statusline.TileStyle {
	return statusline.Icon
}

// Icon returns the formatter icon.
func (t *FormatterTile) Icon() (string, error) {
	return IconFormatter, nil
}

// Content returns a check or a cross.
func (t *FormatterTile) Content() (string, error) {
	ok, err := formatterAttached(t.env.Editor)
	if err != nil {
		return "", err
	}
	return mark(ok), nil
}

// HighlightName is derived from the file's devicon group.
func (t *FormatterTile) HighlightName() (string, error) {
	return "StatusFormatter" + t.devicon().Group(), nil
}

// DefaultStyle returns a blue background.
func (t *FormatterTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Blue)
}

// UpdateStyle uses the devicon color as background.
func (t *FormatterTile) UpdateStyle(theme.HighlightStyle) (theme.HighlightStyle, error) {
	return t.iconStyle()
}

// ToolsTile combines the language server and formatter state in one bubble:
// a check when both are attached, the tool's icon when only one is, and a
// cross when neither is.
type ToolsTile struct {
	fileTail
}

// NewTools creates a combined tools tile.
func NewTools(env *Env) *ToolsTile {
	return &ToolsTile{fileTail{env: env}}
}

// Refresh reads the file name the group is derived from.
func (t *ToolsTile) Refresh() error { return t.refresh() }

// Content returns the combined tool state.
func (t *ToolsTile) Content() (string, error) {
	formatter, err := formatterAttached(t.env.Editor)
	if err != nil {
		return "", err
	}
	lsp, err := lspAttached(t.env.Editor)
	if err != nil {
		return "", err
	}
	switch {
	case formatter && lsp:
		return IconGood, nil
	case formatter:
		return IconFormatter, nil
	case lsp:
		return IconLSP, nil
	default:
		return IconBad, nil
	}
}

// HighlightName is derived from the file's devicon group.
func (t *ToolsTile) HighlightName() (string, error) {
	return "StatusTools" + t.devicon().Group(), nil
}

// DefaultStyle returns a blue background.
func (t *ToolsTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Blue)
}

// UpdateStyle keeps the devicon foreground on the inner background.
func (t *ToolsTile) UpdateStyle(theme.HighlightStyle) (theme.HighlightStyle, error) {
	s, err := t.env.Editor.Highlight(t.devicon().Group())
	if err != nil {
		return theme.HighlightStyle{}, hostErr("get_hl", t.devicon().Group(), err)
	}
	return s.WithBackground(t.env.Colors.FG), nil
}
