package tiles

import (
	"path/filepath"
	"strings"

	"github.com/dshills/stormline/internal/theme"
)

// Devicon is a file type glyph and its color.
type Devicon struct {
	Icon  string
	Name  string
	Color string
}

// Group returns the highlight group of the icon.
func (d Devicon) Group() string {
	return "DevIcon" + d.Name
}

var defaultDevicon = Devicon{Icon: IconFile, Name: "Default", Color: "#6d8086"}

var deviconsByName = map[string]Devicon{
	"makefile":   {Icon: "\ue779", Name: "Makefile", Color: "#6d8086"},
	"dockerfile": {Icon: "\U000f0868", Name: "Dockerfile", Color: "#458ee6"},
	"go.mod":     {Icon: "\ue627", Name: "GoMod", Color: "#519aba"},
	"go.sum":     {Icon: "\ue627", Name: "GoSum", Color: "#519aba"},
	".gitignore": {Icon: "\ue702", Name: "GitIgnore", Color: "#f54d27"},
}

var deviconsByExt = map[string]Devicon{
	"go":   {Icon: "\ue627", Name: "Go", Color: "#519aba"},
	"rs":   {Icon: "\ue7a8", Name: "Rs", Color: "#dea584"},
	"lua":  {Icon: "\ue620", Name: "Lua", Color: "#51a0cf"},
	"md":   {Icon: "\uf48a", Name: "Md", Color: "#dddddd"},
	"toml": {Icon: "\ue6b2", Name: "Toml", Color: "#9c4221"},
	"json": {Icon: "\ue60b", Name: "Json", Color: "#cbcb41"},
	"yaml": {Icon: "\ue6a8", Name: "Yaml", Color: "#6d8086"},
	"yml":  {Icon: "\ue6a8", Name: "Yml", Color: "#6d8086"},
	"py":   {Icon: "\ue606", Name: "Py", Color: "#ffbc03"},
	"js":   {Icon: "\ue60c", Name: "Js", Color: "#cbcb41"},
	"ts":   {Icon: "\ue628", Name: "Ts", Color: "#519aba"},
	"c":    {Icon: "\ue61e", Name: "C", Color: "#599eff"},
	"h":    {Icon: "\uf0fd", Name: "H", Color: "#a074c4"},
	"sh":   {Icon: "\ue795", Name: "Sh", Color: "#4d5a5e"},
	"txt":  {Icon: "\U000f0219", Name: "Txt", Color: "#89e051"},
	"typ":  {Icon: "\uf37f", Name: "Typ", Color: "#0dbcc0"},
}

// LookupDevicon finds the icon for a file name, matching the whole name first
// and the last extension second. Unknown files get the default icon.
func LookupDevicon(file string) Devicon {
	base := strings.ToLower(filepath.Base(file))
	if d, ok := deviconsByName[base]; ok {
		return d
	}
	if ext := strings.TrimPrefix(filepath.Ext(base), "."); ext != "" {
		if d, ok := deviconsByExt[ext]; ok {
			return d
		}
	}
	return defaultDevicon
}

// DeviconGroups returns the highlight groups of every known icon.
func DeviconGroups() []theme.Group {
	groups := []theme.Group{{Name: defaultDevicon.Group(), Style: theme.WithFg(theme.MustHex(defaultDevicon.Color))}}
	seen := map[string]bool{defaultDevicon.Group(): true}
	add := func(d Devicon) {
		if seen[d.Group()] {
			return
		}
		seen[d.Group()] = true
		groups = append(groups, theme.Group{Name: d.Group(), Style: theme.WithFg(theme.MustHex(d.Color))})
	}
	for _, d := range deviconsByName {
		add(d)
	}
	for _, d := range deviconsByExt {
		add(d)
	}
	return groups
}
