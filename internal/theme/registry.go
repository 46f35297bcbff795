package theme

import (
	"fmt"
	"sort"
	"sync"
)

// maxLinkDepth bounds link resolution.
const maxLinkDepth = 16

// Registry is the table of named highlight groups.
//
// Set is idempotent. Installs counts every Set call so callers can verify they
// are not reinstalling unchanged groups. Generation only moves when a group
// actually changes, which painters use to invalidate cached styles.
type Registry struct {
	mu         sync.RWMutex
	groups     map[string]HighlightStyle
	hashes     map[string]uint64
	installs   int
	generation uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		groups: make(map[string]HighlightStyle),
		hashes: make(map[string]uint64),
	}
}

// SetHighlight installs or replaces a group.
func (r *Registry) SetHighlight(name string, style HighlightStyle) error {
	if name == "" {
		return fmt.Errorf("set highlight: empty group name")
	}
	h := style.Hash()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.installs++
	if prev, ok := r.hashes[name]; ok && prev == h {
		return nil
	}
	r.groups[name] = style.Effective()
	r.hashes[name] = h
	r.generation++
	return nil
}

// Highlight returns the group as it was set, without following links.
func (r *Registry) Highlight(name string) (HighlightStyle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.groups[name]
	return s, ok
}

// Resolve returns the group's style with links followed.
// An unknown group resolves to the empty style.
func (r *Registry) Resolve(name string) (HighlightStyle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	current := name
	for range maxLinkDepth {
		s, ok := r.groups[current]
		if !ok {
			return HighlightStyle{}, nil
		}
		if !s.IsLink() {
			return s, nil
		}
		current = s.Link
	}
	return HighlightStyle{}, fmt.Errorf("%w: %s", ErrLinkCycle, name)
}

// Installs returns the number of SetHighlight calls.
func (r *Registry) Installs() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.installs
}

// Generation changes whenever a group's effective style changes.
func (r *Registry) Generation() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.generation
}

// Names returns all group names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
