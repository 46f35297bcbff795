package tiles

import (
	"errors"

	"github.com/dshills/stormline/internal/statusline"
	"github.com/dshills/stormline/internal/theme"
)

// ErrNotFound is returned by Editor lookups for values that are not set.
var ErrNotFound = errors.New("not found")

// VarScope selects the variable namespace.
type VarScope int

const (
	GlobalScope VarScope = iota
	BufferScope
)

// Severity is a diagnostic severity.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarn
	SeverityInfo
	SeverityHint
)

// Editor is the view of the host that tiles query.
type Editor interface {
	// Mode returns the raw mode code, e.g. "n", "i", "Rv".
	Mode() (string, error)
	Cwd() (string, error)
	// Var returns a variable, or ErrNotFound.
	Var(scope VarScope, name string) (any, error)
	// BoolOption reads a buffer-local boolean option.
	BoolOption(name string) (bool, error)
	// EvalStatus evaluates a status format and returns the plain text.
	EvalStatus(format string) (string, error)
	// AltFileName returns the tail of the alternate file, or "".
	AltFileName() (string, error)
	// DiagnosticCount counts diagnostics of a severity in the current buffer,
	// or across all buffers when global is set.
	DiagnosticCount(global bool, sev Severity) (int, error)
	LSPClientCount() (int, error)
	FormatterCount() (int, error)
	// Highlight returns a group's style with links resolved.
	Highlight(name string) (theme.HighlightStyle, error)
}

// Env is what every tile is built with.
type Env struct {
	Editor  Editor
	Palette *theme.Palette
	Colors  theme.StatusColors
	Cwds    []CwdAlias
}

// NewEnv creates an Env with the palette's status colors.
func NewEnv(ed Editor, p *theme.Palette) *Env {
	return &Env{Editor: ed, Palette: p, Colors: theme.StatusColorsFor(p)}
}

func hostErr(op, name string, err error) error {
	var he *statusline.HostQueryError
	if errors.As(err, &he) {
		return err
	}
	return statusline.NewHostQueryError(op, name, err)
}

// stringVar reads a string variable; a missing variable yields "".
func stringVar(ed Editor, scope VarScope, name string) (string, error) {
	v, err := ed.Var(scope, name)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", hostErr("get_var", name, err)
	}
	s, ok := v.(string)
	if !ok {
		return "", nil
	}
	return s, nil
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
