package level

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the level definitions a host can start.
// It is safe for concurrent use; the watcher replaces entries while
// sessions read them.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Definition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a validated definition.
// Returns an error if the definition is invalid or the ID is taken.
func (r *Registry) Register(def Definition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[def.ID]; exists {
		return fmt.Errorf("registry: level %q already registered", def.ID)
	}
	r.defs[def.ID] = def.Clone()
	return nil
}

// Replace adds or overwrites a validated definition.
func (r *Registry) Replace(def Definition) error {
	if err := def.Validate(); err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.defs[def.ID] = def.Clone()
	return nil
}

// Remove deletes a definition. Reports whether it existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.defs[id]
	delete(r.defs, id)
	return ok
}

// Get returns a copy of the definition with the given ID.
func (r *Registry) Get(id string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[id]
	if !ok {
		return Definition{}, false
	}
	return def.Clone(), true
}

// Exists checks if a level with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.defs[id]
	return ok
}

// Len returns the number of registered levels.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.defs)
}

// List returns all definitions sorted by ID.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		result = append(result, def.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}
