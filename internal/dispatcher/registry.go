package dispatcher

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/tablekeys/internal/dispatcher/handler"
)

// Entry is a registered handler.
type Entry struct {
	Name     string
	Handler  handler.Handler
	Priority int
}

// Registry manages named handlers ordered by priority.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry // sorted by priority (descending), then registration order
}

// NewRegistry creates a new handler registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a handler under a unique name.
// Higher priorities are consulted first; equal priorities keep registration order.
func (r *Registry) Register(name string, h handler.Handler, priority int) error {
	if name == "" {
		return ErrEmptyName
	}
	if h == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexLocked(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateHandler, name)
	}
	r.entries = append(r.entries, Entry{Name: name, Handler: h, Priority: priority})
	slices.SortStableFunc(r.entries, func(a, b Entry) int {
		return b.Priority - a.Priority
	})
	return nil
}

// Entries returns the registered handlers in dispatch order.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.entries)
}

// Names returns the registered handler names in dispatch order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Name
	}
	return names
}

func (r *Registry) indexLocked(name string) int {
	return slices.IndexFunc(r.entries, func(e Entry) bool {
		return e.Name == name
	})
}
