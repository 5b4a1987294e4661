package tool

import (
	"sync"
	"sync/atomic"
)

// Registry is a concurrent name-to-descriptor mapping, populated at
// startup and treated as read-mostly afterwards. Reads are lock-free:
// every write builds a new catalog snapshot and swaps it in atomically, so
// lookups during a concurrent registration see either the old or the new
// catalog, never a partial one.
//
// Registration is last-write-wins on name collision.
type Registry struct {
	mu      sync.Mutex // serializes writers only
	catalog atomic.Pointer[catalog]
}

type catalog struct {
	byName map[string]Tool
	order  []string
}

// NewRegistry constructs a registry pre-populated with the given tools.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{}
	r.catalog.Store(&catalog{byName: map[string]Tool{}})
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds a tool, overwriting any existing descriptor with the same
// name. An overwritten tool keeps its original catalog position.
func (r *Registry) Register(t Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.catalog.Load()
	next := &catalog{
		byName: make(map[string]Tool, len(cur.byName)+1),
		order:  cur.order,
	}
	for name, existing := range cur.byName {
		next.byName[name] = existing
	}
	if _, exists := next.byName[t.Name()]; !exists {
		next.order = append(append([]string(nil), cur.order...), t.Name())
	}
	next.byName[t.Name()] = t
	r.catalog.Store(next)
}

// Get returns the descriptor registered under name, if any.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.catalog.Load().byName[name]
	return t, ok
}

// All returns every registered tool in registration order.
func (r *Registry) All() []Tool {
	cur := r.catalog.Load()
	tools := make([]Tool, 0, len(cur.order))
	for _, name := range cur.order {
		tools = append(tools, cur.byName[name])
	}
	return tools
}

// Len reports the number of registered tools.
func (r *Registry) Len() int {
	return len(r.catalog.Load().byName)
}
