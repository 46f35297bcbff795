// Package autocmd runs callbacks when named editor events fire.
//
// An autocmd listens for one or more events and fires when the event's match
// string (usually a file name) matches one of its glob patterns. "*" matches
// everything. Patterns without a slash are also tried against the base name.
package autocmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/stormline/internal/logging"
)

// Handle identifies an autocmd.
type Handle string

// Event is passed to callbacks.
type Event struct {
	Name   string
	Match  string
	Handle Handle
}

// Callback runs when an autocmd fires.
type Callback func(ev Event) error

// Runner executes an editor command line such as "redrawstatus".
type Runner func(command string) error

type autocmd struct {
	handle   Handle
	events   []string
	patterns []string
	once     bool
	desc     string
	fn       Callback
}

func (a *autocmd) matches(event, match string) bool {
	if !slices.Contains(a.events, event) {
		return false
	}
	for _, p := range a.patterns {
		if matchPattern(p, match) {
			return true
		}
	}
	return false
}

func matchPattern(pattern, s string) bool {
	if pattern == "*" {
		return true
	}
	if ok, _ := filepath.Match(pattern, s); ok {
		return true
	}
	if !strings.Contains(pattern, "/") {
		ok, _ := filepath.Match(pattern, filepath.Base(s))
		return ok
	}
	return false
}

// Registry holds autocmds. It is safe for concurrent use, and callbacks may
// create, delete or fire autocmds.
type Registry struct {
	mu     sync.Mutex
	cmds   []*autocmd
	runner Runner
	logger *logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithRunner sets the runner used by CreateCommand autocmds.
func WithRunner(r Runner) Option {
	return func(reg *Registry) {
		reg.runner = r
	}
}

// WithLogger sets the registry logger.
func WithLogger(l *logging.Logger) Option {
	return func(reg *Registry) {
		reg.logger = l
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{logger: logging.Nop()}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.WithComponent("autocmd")
	return r
}

// Create registers fn for events. No patterns means "*".
func (r *Registry) Create(events, patterns []string, fn Callback) (Handle, error) {
	return r.add(events, patterns, fn, false, "")
}

// CreateOnce is Create for an autocmd that is deleted after it first fires.
func (r *Registry) CreateOnce(events, patterns []string, fn Callback) (Handle, error) {
	return r.add(events, patterns, fn, true, "")
}

// CreateCommand registers an autocmd that runs an editor command.
func (r *Registry) CreateCommand(events, patterns []string, command string) (Handle, error) {
	r.mu.Lock()
	run := r.runner
	r.mu.Unlock()
	if run == nil {
		return "", ErrNoRunner
	}
	return r.add(events, patterns, func(Event) error { return run(command) }, false, command)
}

func (r *Registry) add(events, patterns []string, fn Callback, once bool, desc string) (Handle, error) {
	if len(events) == 0 {
		return "", ErrNoEvents
	}
	if fn == nil {
		return "", ErrNilCallback
	}
	if len(patterns) == 0 {
		patterns = []string{"*"}
	}
	for _, p := range patterns {
		if _, err := filepath.Match(p, ""); err != nil {
			return "", fmt.Errorf("%w: %q", ErrBadPattern, p)
		}
	}

	a := &autocmd{
		handle:   Handle(uuid.New().String()),
		events:   normalize(events),
		patterns: slices.Clone(patterns),
		once:     once,
		desc:     desc,
		fn:       fn,
	}

	r.mu.Lock()
	r.cmds = append(r.cmds, a)
	r.mu.Unlock()

	r.logger.WithField("handle", a.handle).Debug("created for %s %s", strings.Join(a.events, ","), strings.Join(a.patterns, ","))
	return a.handle, nil
}

// Delete removes an autocmd.
func (r *Registry) Delete(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.cmds {
		if a.handle == h {
			r.cmds = slices.Delete(r.cmds, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, h)
}

// Len returns the number of registered autocmds.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cmds)
}

// Exec fires every autocmd registered for event whose patterns match, in
// creation order. All callbacks run; their errors are joined.
func (r *Registry) Exec(event, match string) error {
	event = strings.ToLower(event)

	r.mu.Lock()
	var fire []*autocmd
	kept := r.cmds[:0:0]
	for _, a := range r.cmds {
		hit := a.matches(event, match)
		if hit {
			fire = append(fire, a)
		}
		if !hit || !a.once {
			kept = append(kept, a)
		}
	}
	r.cmds = kept
	r.mu.Unlock()

	var errs []error
	for _, a := range fire {
		if err := call(a, Event{Name: event, Match: match, Handle: a.handle}); err != nil {
			r.logger.WithField("handle", a.handle).Warn("%s %s: %v", event, match, err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func call(a *autocmd, ev Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrCallbackPanic, p)
		}
	}()
	if err := a.fn(ev); err != nil {
		if a.desc != "" {
			return fmt.Errorf("%s: %w", a.desc, err)
		}
		return err
	}
	return nil
}

func normalize(events []string) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = strings.ToLower(e)
	}
	return out
}
