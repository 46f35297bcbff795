package tiles

import (
	"errors"
	"strconv"
	"strings"

	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/theme"
)

// Variables the git integration publishes.
const (
	GitHeadVar   = "gitsigns_head"
	GitStatusVar = "gitsigns_status_dict"
)

// GitBranchTile shows the branch of the working directory's repository.
type GitBranchTile struct {
	env *Env
}

// NewGitBranch creates a branch tile.
func NewGitBranch(env *Env) *GitBranchTile {
	return &GitBranchTile{env: env}
}

// Style returns Icon.
func (t *GitBranchTile) Style() statusline.TileStyle {
	return statusline.Icon
}

// Icon returns the branch icon.
func (t *GitBranchTile) Icon() (string, error) {
	return IconGitBranch, nil
}

// Content returns the published branch name, or nothing outside a repository.
func (t *GitBranchTile) Content() (string, error) {
	head, err := stringVar(t.env.Editor, GlobalScope, GitHeadVar)
	if err != nil {
		return "", err
	}
	return escape(head), nil
}

// HighlightName returns StatusGit.
func (t *GitBranchTile) HighlightName() (string, error) {
	return "StatusGit", nil
}

// DefaultStyle returns an orange background.
func (t *GitBranchTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Orange)
}

// GitDiff holds line change counts of a buffer.
type GitDiff struct {
	Added   int
	Changed int
	Removed int
}

// GitDiffTile shows added, changed and removed line counts of the buffer.
type GitDiffTile struct {
	env *Env
}

// NewGitDiff creates a diff tile.
func NewGitDiff(env *Env) *GitDiffTile {
	return &GitDiffTile{env: env}
}

// Style returns Icon.
func (t *GitDiffTile) Style() statusline.TileStyle {
	return statusline.Icon
}

// Icon returns the diff icon.
func (t *GitDiffTile) Icon() (string, error) {
	return IconGitDiff, nil
}

func (t *GitDiffTile) diff() (GitDiff, error) {
	v, err := t.env.Editor.Var(BufferScope, GitStatusVar)
	if errors.Is(err, ErrNotFound) {
		return GitDiff{}, nil
	}
	if err != nil {
		return GitDiff{}, hostErr("get_var", GitStatusVar, err)
	}
	switch d := v.(type) {
	case GitDiff:
		return d, nil
	case map[string]any:
		return GitDiff{Added: toInt(d["added"]), Changed: toInt(d["changed"]), Removed: toInt(d["removed"])}, nil
	default:
		return GitDiff{}, nil
	}
}

// Content lists the non-zero counts as +added ~changed -removed.
func (t *GitDiffTile) Content() (string, error) {
	d, err := t.diff()
	if err != nil {
		return "", err
	}

	var out []string
	if d.Added > 0 {
		out = append(out, "%#StatusGitAdd#+"+strconv.Itoa(d.Added))
	}
	if d.Changed > 0 {
		out = append(out, "%#StatusGitChange#~"+strconv.Itoa(d.Changed))
	}
	if d.Removed > 0 {
		out = append(out, "%#StatusGitRemove#-"+strconv.Itoa(d.Removed))
	}
	return strings.Join(out, " "), nil
}

// HighlightName returns StatusGitDiff.
func (t *GitDiffTile) HighlightName() (string, error) {
	return "StatusGitDiff", nil
}

// DefaultStyle returns an orange background.
func (t *GitDiffTile) DefaultStyle() theme.HighlightStyle {
	return theme.WithBg(t.env.Palette.Orange)
}

// Setup installs the add, change and remove groups.
func (t *GitDiffTile) Setup(s statusline.Styler) error {
	p := t.env.Palette
	inner := t.env.Colors.FG
	return installAll(s, []theme.Group{
		{Name: "StatusGitAdd", Style: theme.WithFg(p.Green).WithBackground(inner)},
		{Name: "StatusGitChange", Style: theme.WithFg(p.Yellow).WithBackground(inner)},
		{Name: "StatusGitRemove", Style: theme.WithFg(p.Red).WithBackground(inner)},
	})
}

func installAll(s statusline.Styler, groups []theme.Group) error {
	for _, g := range groups {
		if err := s.SetHighlight(g.Name, g.Style); err != nil {
			return statusline.NewHostQueryError("set_hl", g.Name, err)
		}
	}
	return nil
}

// escape makes arbitrary text safe inside a status format.
func escape(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
