package host

import (
	"fmt"
	"path/filepath"

	"github.com/dshills/stormline/internal/statusfmt"
	"github.com/dshills/stormline/internal/statusline/tiles"
	"github.com/dshills/stormline/internal/theme"
)

// InstallTheme installs the base and file type icon groups for a palette.
func (s *Session) InstallTheme(p *theme.Palette) error {
	if err := theme.Install(s.registry, theme.BaseGroups(p)); err != nil {
		return err
	}
	return theme.Install(s.registry, tiles.DeviconGroups())
}

func (s *Session) context() statusfmt.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctx := statusfmt.Context{Eval: s.eval}
	if b, err := s.currentLocked(); err == nil {
		ctx.FileName = b.Name
		ctx.Line = b.Line
		ctx.Col = b.Col
		ctx.LineCount = b.LineCount
		ctx.Modified = b.Modified
		ctx.ReadOnly = !b.Modifiable
		ctx.Filetype = b.Filetype
	}
	return ctx
}

// Evaluate expands a status format against the current buffer.
func (s *Session) Evaluate(format string) (statusfmt.Info, error) {
	return statusfmt.Evaluate(format, s.context())
}

// RenderOption evaluates a string option such as "statusline" as a status format.
func (s *Session) RenderOption(name string) (statusfmt.Info, error) {
	format, err := s.StringOption(name)
	if err != nil {
		return statusfmt.Info{}, err
	}
	return s.Evaluate(format)
}

// SetHighlight installs a group into the registry.
func (s *Session) SetHighlight(name string, style theme.HighlightStyle) error {
	return s.registry.SetHighlight(name, style)
}

// MeasureWidth returns the display width of an evaluated format.
func (s *Session) MeasureWidth(format string) (int, error) {
	info, err := s.Evaluate(format)
	if err != nil {
		return 0, err
	}
	return info.Width, nil
}

// Filetype returns the file type of the current buffer, or "" without one.
func (s *Session) Filetype() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := s.currentLocked()
	if err != nil {
		return "", nil
	}
	return b.Filetype, nil
}

// Mode returns the raw mode code.
func (s *Session) Mode() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode, nil
}

// Cwd returns the working directory.
func (s *Session) Cwd() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cwd, nil
}

// Var returns a variable or tiles.ErrNotFound.
func (s *Session) Var(scope tiles.VarScope, name string) (any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vars := s.globals
	if scope == tiles.BufferScope {
		b, err := s.currentLocked()
		if err != nil {
			return nil, tiles.ErrNotFound
		}
		vars = b.vars
	}
	v, ok := vars[name]
	if !ok {
		return nil, tiles.ErrNotFound
	}
	return v, nil
}

// BoolOption reads a buffer flag or a global boolean option.
func (s *Session) BoolOption(name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch name {
	case "modified", "modifiable", "readonly":
		b, err := s.currentLocked()
		if err != nil {
			return false, err
		}
		switch name {
		case "modified":
			return b.Modified, nil
		case "modifiable":
			return b.Modifiable, nil
		default:
			return !b.Modifiable, nil
		}
	}

	v, ok := s.options[name]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	on, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s is %T", ErrOptionType, name, v)
	}
	return on, nil
}

// EvalStatus evaluates a format and returns its plain text.
func (s *Session) EvalStatus(format string) (string, error) {
	info, err := s.Evaluate(format)
	if err != nil {
		return "", err
	}
	return info.Str, nil
}

// AltFileName returns the tail of the alternate buffer's name.
func (s *Session) AltFileName() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buffers[s.alternate]
	if !ok || b.Name == "" {
		return "", nil
	}
	return filepath.Base(b.Name), nil
}

// DiagnosticCount counts diagnostics of a severity.
func (s *Session) DiagnosticCount(global bool, sev tiles.Severity) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if global {
		n := 0
		for _, b := range s.buffers {
			n += b.diagnostics[sev]
		}
		return n, nil
	}
	b, err := s.currentLocked()
	if err != nil {
		return 0, nil
	}
	return b.diagnostics[sev], nil
}

// LSPClientCount returns the language servers attached to the current buffer.
func (s *Session) LSPClientCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := s.currentLocked()
	if err != nil {
		return 0, nil
	}
	return b.lspClients, nil
}

// FormatterCount returns the formatters for the current buffer's file type.
func (s *Session) FormatterCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := s.currentLocked()
	if err != nil {
		return 0, nil
	}
	return len(s.formatters[b.Filetype]), nil
}

// Highlight returns a group's style with links followed.
func (s *Session) Highlight(name string) (theme.HighlightStyle, error) {
	return s.registry.Resolve(name)
}
