package host

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dshills/stormline/internal/logging"
	"github.com/dshills/stormline/internal/statusline/tiles"
	"github.com/dshills/stormline/internal/theme"
)

// Event names announced by the session.
const (
	EventDiagnosticChanged = "DiagnosticChanged"
	EventBufEnter          = "BufEnter"
	EventBufWritePost      = "BufWritePost"
	EventModeChanged       = "ModeChanged"
)

// Notifier receives session events.
type Notifier interface {
	Exec(event, match string) error
}

// ExprEvaluator evaluates %{expr} and %! expressions in option values.
type ExprEvaluator func(expr string) (string, error)

// Buffer is an open file.
type Buffer struct {
	ID         int
	Name       string
	Filetype   string
	Modified   bool
	Modifiable bool
	Line       int
	Col        int
	LineCount  int

	vars        map[string]any
	diagnostics map[tiles.Severity]int
	lspClients  int
}

// Session is the editor state. It is safe for concurrent use.
type Session struct {
	mu         sync.RWMutex
	mode       string
	cwd        string
	buffers    map[int]*Buffer
	nextID     int
	current    int
	alternate  int
	globals    map[string]any
	options    map[string]any
	formatters map[string][]string

	registry *theme.Registry
	eval     ExprEvaluator
	notifier Notifier
	logger   *logging.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithRegistry sets the highlight registry groups are installed into.
func WithRegistry(r *theme.Registry) Option {
	return func(s *Session) {
		s.registry = r
	}
}

// WithLogger sets the session logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithNotifier sets the receiver of session events.
func WithNotifier(n Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// New creates a session in normal mode with no buffers.
func New(cwd string, opts ...Option) *Session {
	s := &Session{
		mode:       "n",
		cwd:        cwd,
		buffers:    make(map[int]*Buffer),
		nextID:     1,
		globals:    make(map[string]any),
		options:    make(map[string]any),
		formatters: make(map[string][]string),
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = theme.NewRegistry()
	}
	s.logger = s.logger.WithComponent("host")
	return s
}

// Registry returns the highlight registry.
func (s *Session) Registry() *theme.Registry {
	return s.registry
}

// SetNotifier replaces the event receiver.
func (s *Session) SetNotifier(n Notifier) {
	s.mu.Lock()
	s.notifier = n
	s.mu.Unlock()
}

// SetEvaluator sets the evaluator for option expressions.
func (s *Session) SetEvaluator(e ExprEvaluator) {
	s.mu.Lock()
	s.eval = e
	s.mu.Unlock()
}

func (s *Session) notify(event, match string) error {
	s.mu.RLock()
	n := s.notifier
	s.mu.RUnlock()
	if n == nil {
		return nil
	}
	if err := n.Exec(event, match); err != nil {
		return fmt.Errorf("%s %s: %w", event, match, err)
	}
	return nil
}

// SetMode switches the raw mode code.
func (s *Session) SetMode(code string) error {
	s.mu.Lock()
	old := s.mode
	s.mode = code
	s.mu.Unlock()
	if old == code {
		return nil
	}
	s.logger.Debug("mode %s -> %s", old, code)
	return s.notify(EventModeChanged, old+":"+code)
}

// SetCwd changes the working directory.
func (s *Session) SetCwd(dir string) {
	s.mu.Lock()
	s.cwd = dir
	s.mu.Unlock()
}

// Open adds a buffer and makes it current. The previous current buffer
// becomes the alternate. An empty filetype is guessed from the extension.
func (s *Session) Open(name, filetype string) (*Buffer, error) {
	if filetype == "" {
		filetype = guessFiletype(name)
	}
	s.mu.Lock()
	b := &Buffer{
		ID:          s.nextID,
		Name:        name,
		Filetype:    filetype,
		Modifiable:  true,
		Line:        1,
		Col:         1,
		LineCount:   1,
		vars:        make(map[string]any),
		diagnostics: make(map[tiles.Severity]int),
	}
	s.nextID++
	s.buffers[b.ID] = b
	if s.current != 0 {
		s.alternate = s.current
	}
	s.current = b.ID
	s.mu.Unlock()

	s.logger.WithField("buffer", b.ID).Debug("opened %s", name)
	return b, s.notify(EventBufEnter, name)
}

// SwitchAlt swaps the current and alternate buffers.
func (s *Session) SwitchAlt() error {
	s.mu.Lock()
	if s.alternate == 0 {
		s.mu.Unlock()
		return nil
	}
	s.current, s.alternate = s.alternate, s.current
	name := s.buffers[s.current].Name
	s.mu.Unlock()
	return s.notify(EventBufEnter, name)
}

// Current returns a copy of the current buffer.
func (s *Session) Current() (Buffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := s.currentLocked()
	if err != nil {
		return Buffer{}, err
	}
	return *b, nil
}

func (s *Session) currentLocked() (*Buffer, error) {
	b, ok := s.buffers[s.current]
	if !ok {
		return nil, ErrNoBuffer
	}
	return b, nil
}

func (s *Session) update(fn func(b *Buffer)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.currentLocked()
	if err != nil {
		return err
	}
	fn(b)
	return nil
}

// SetModified sets the modified flag of the current buffer.
func (s *Session) SetModified(modified bool) error {
	return s.update(func(b *Buffer) { b.Modified = modified })
}

// SetModifiable sets whether the current buffer can be edited.
func (s *Session) SetModifiable(modifiable bool) error {
	return s.update(func(b *Buffer) { b.Modifiable = modifiable })
}

// SetCursor moves the cursor of the current buffer.
func (s *Session) SetCursor(line, col int) error {
	return s.update(func(b *Buffer) {
		b.Line = line
		b.Col = col
		b.LineCount = max(b.LineCount, line)
	})
}

// SetLineCount sets the number of lines of the current buffer.
func (s *Session) SetLineCount(n int) error {
	return s.update(func(b *Buffer) { b.LineCount = n })
}

// Write clears the modified flag of the current buffer.
func (s *Session) Write() error {
	var name string
	err := s.update(func(b *Buffer) {
		b.Modified = false
		name = b.Name
	})
	if err != nil {
		return err
	}
	return s.notify(EventBufWritePost, name)
}

// SetVar sets a variable. Buffer variables go to the current buffer.
func (s *Session) SetVar(scope tiles.VarScope, name string, v any) error {
	if scope == tiles.GlobalScope {
		s.mu.Lock()
		s.globals[name] = v
		s.mu.Unlock()
		return nil
	}
	return s.update(func(b *Buffer) { b.vars[name] = v })
}

// DelVar removes a variable.
func (s *Session) DelVar(scope tiles.VarScope, name string) error {
	if scope == tiles.GlobalScope {
		s.mu.Lock()
		delete(s.globals, name)
		s.mu.Unlock()
		return nil
	}
	return s.update(func(b *Buffer) { delete(b.vars, name) })
}

// SetDiagnostics sets the diagnostic count of a severity in the current buffer.
func (s *Session) SetDiagnostics(sev tiles.Severity, n int) error {
	var name string
	err := s.update(func(b *Buffer) {
		b.diagnostics[sev] = n
		name = b.Name
	})
	if err != nil {
		return err
	}
	return s.notify(EventDiagnosticChanged, name)
}

// AttachLSP sets the number of language servers attached to the current buffer.
func (s *Session) AttachLSP(clients int) error {
	return s.update(func(b *Buffer) { b.lspClients = clients })
}

// SetFormatters sets the formatters configured for a file type.
func (s *Session) SetFormatters(filetype string, names ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(names) == 0 {
		delete(s.formatters, filetype)
		return
	}
	s.formatters[filetype] = names
}

// SetOption sets a global option.
func (s *Session) SetOption(name string, v any) {
	s.mu.Lock()
	s.options[name] = v
	s.mu.Unlock()
}

// StringOption returns a global string option.
func (s *Session) StringOption(name string) (string, error) {
	s.mu.RLock()
	v, ok := s.options[name]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T", ErrOptionType, name, v)
	}
	return str, nil
}

var filetypes = map[string]string{
	".go":   "go",
	".rs":   "rust",
	".lua":  "lua",
	".md":   "markdown",
	".toml": "toml",
	".json": "json",
	".yaml": "yaml",
	".yml":  "yaml",
	".py":   "python",
	".js":   "javascript",
	".ts":   "typescript",
	".c":    "c",
	".h":    "c",
	".sh":   "sh",
	".txt":  "text",
	".typ":  "typst",
}

func guessFiletype(name string) string {
	return filetypes[filepath.Ext(name)]
}
