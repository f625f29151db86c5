package timer

import (
	"sync"
	"time"
)

// Entry is one accumulated registry value.
type Entry struct {
	Name  string        `json:"name" yaml:"name"`
	Total time.Duration `json:"total" yaml:"total"`
	Count int           `json:"count" yaml:"count"`
}

// Registry maps timer names to accumulated durations. Entries keep the
// order in which their names were first seen. It is safe for concurrent
// use; every Add is applied atomically.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]*Entry
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry shared by timers that are
// not given one explicitly.
func Default() *Registry {
	return defaultRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Register creates a zero entry for name if none exists.
func (r *Registry) Register(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entryLocked(name)
}

// Add accumulates d under name, creating the entry at zero first if
// needed. Negative durations are recorded as zero.
func (r *Registry) Add(name string, d time.Duration) {
	if d < 0 {
		d = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.entryLocked(name)
	e.Total += d
	e.Count++
}

// Get returns the accumulated duration for name.
func (r *Registry) Get(name string) (time.Duration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return 0, false
	}
	return e.Total, true
}

// Count returns how many durations were added under name.
func (r *Registry) Count(name string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.entries[name]; ok {
		return e.Count
	}
	return 0
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Names returns entry names in insertion order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Snapshot returns a copy of all entries in insertion order.
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.entries[name])
	}
	return out
}

// Reset removes every entry. Intended for tests and one-shot CLI runs.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = nil
	r.entries = make(map[string]*Entry)
}

func (r *Registry) entryLocked(name string) *Entry {
	e, ok := r.entries[name]
	if !ok {
		e = &Entry{Name: name}
		r.entries[name] = e
		r.order = append(r.order, name)
	}
	return e
}
