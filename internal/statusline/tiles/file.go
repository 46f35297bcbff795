package tiles

import (
	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/theme"
)

// fileTail tracks the current file name for tiles colored by file type.
type fileTail struct {
	env  *Env
	name string
}

func (f *fileTail) refresh() error {
	name, err := f.env.Editor.EvalStatus("%t")
	if err != nil {
		return hostErr("eval_statusline", "%t", err)
	}
	f.name = name
	return nil
}

func (f *fileTail) devicon() Devicon {
	return LookupDevicon(f.name)
}

// iconStyle returns the file type color as a background.
func (f *fileTail) iconStyle() (theme.HighlightStyle, error) {
	group := f.devicon().Group()
	s, err := f.env.Editor.Highlight(group)
	if err != nil {
		return theme.HighlightStyle{}, hostErr("get_hl", group, err)
	}
	return s.ReverseFgBg(), nil
}

// FileNameTile shows the current file name with its file type icon and color.
type FileNameTile struct {
	fileTail
}

// NewFileName creates a file name tile.
func NewFileName(env *Env) *FileNameTile {
	return &FileNameTile{fileTail{env: env}}
}

// Refresh reads the file name.
func (t *FileNameTile) Refresh() error {
	return t.refresh()
}

// Style returns Icon.
func (t *FileNameTile) Style() statusline.TileStyle {
	return statusline.Icon
}

// Icon returns the devicon of the file.
func (t *FileNameTile) Icon() (string, error) {
	return t.devicon().Icon, nil
}

// Content returns the escaped file name.
func (t *FileNameTile) Content() (string, error) {
	return escape(t.name), nil
}

// HighlightName is derived from the file's devicon group.
func (t *FileNameTile) HighlightName() (string, error) {
	return "Status" + t.devicon().Group(), nil
}

// DefaultStyle returns a blue background.
func (t *FileNameTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Blue)
}

// UpdateStyle uses the devicon color as background.
func (t *FileNameTile) UpdateStyle(theme.HighlightStyle) (theme.HighlightStyle, error) {
	return t.iconStyle()
}

// AltFileNameTile shows the alternate file, colored by its file type.
type AltFileNameTile struct {
	fileTail
}

// NewAltFileName creates an alternate file tile.
func NewAltFileName(env *Env) *AltFileNameTile {
	return &AltFileNameTile{fileTail{env: env}}
}

// Refresh reads the alternate file name.
func (t *AltFileNameTile) Refresh() error {
	name, err := t.env.Editor.AltFileName()
	if err != nil {
		return hostErr("expand", "#:t", err)
	}
	t.name = name
	return nil
}

// Content is empty when there is no alternate file.
func (t *AltFileNameTile) Content() (string, error) {
	if t.name == "" {
		return "", nil
	}
	return "alt: " + escape(t.name), nil
}

// HighlightName is derived from the alternate file's devicon group.
func (t *AltFileNameTile) HighlightName() (string, error) {
	return "StatusAlt" + t.devicon().Group(), nil
}

// DefaultStyle returns a blue background.
func (t *AltFileNameTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Blue)
}

// UpdateStyle uses the devicon color as background.
func (t *AltFileNameTile) UpdateStyle(theme.HighlightStyle) (theme.HighlightStyle, error) {
	return t.iconStyle()
}

// FileFlag is the edit state shown by FileStatusTile.
type FileFlag int

const (
	FileClean FileFlag = iota
	FileModified
	FileUnmodifiable
)

// FileStatusTile shows "[+]" for a modified buffer and "[-]" for one that
// cannot be modified.
type FileStatusTile struct {
	env  *Env
	flag FileFlag
}

// NewFileStatus creates a file status tile.
func NewFileStatus(env *Env) *FileStatusTile {
	return &FileStatusTile{env: env}
}

// Refresh reads the modifiable and modified options.
func (t *FileStatusTile) Refresh() error {
	modifiable, err := t.env.Editor.BoolOption("modifiable")
	if err != nil {
		return hostErr("get_option", "modifiable", err)
	}
	modified, err := t.env.Editor.BoolOption("modified")
	if err != nil {
		return hostErr("get_option", "modified", err)
	}
	switch {
	case !modifiable:
		t.flag = FileUnmodifiable
	case modified:
		t.flag = FileModified
	default:
		t.flag = FileClean
	}
	return nil
}

// Content returns "[+]", "[-]" or nothing for a clean buffer.
func (t *FileStatusTile) Content() (string, error) {
	switch t.flag {
	case FileModified:
		return "[+]", nil
	case FileUnmodifiable:
		return "[-]", nil
	default:
		return "", nil
	}
}

// HighlightName returns a group per edit state.
func (t *FileStatusTile) HighlightName() (string, error) {
	switch t.flag {
	case FileModified:
		return "StatusFileMod", nil
	case FileUnmodifiable:
		return "StatusFileUnMod", nil
	default:
		return "StatusFile", nil
	}
}

// DefaultStyle returns an empty style.
func (t *FileStatusTile) DefaultStyle() theme.HighlightStyle {
	return theme.HighlightStyle{}
}

// UpdateStyle keeps prev for a clean buffer.
func (t *FileStatusTile) UpdateStyle(prev theme.HighlightStyle) (theme.HighlightStyle, error) {
	switch t.flag {
	case FileModified:
		return theme.WithBg(t.env.Palette.Green), nil
	case FileUnmodifiable:
		return theme.WithBg(t.env.Palette.Red), nil
	default:
		return prev, nil
	}
}
