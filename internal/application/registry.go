// Package application contains the graph preparation and wave-parallel
// execution engine: the definition registry, the graph state machine, the
// dependency analyzer, the executor binder, and the scheduler.
package application

import (
	"fmt"
	"sync"

	"github.com/ahrav/go-gavel/internal/domain"
)

// Registry is a concurrent-reader/exclusive-writer map from definition name
// to Definition. Writes (Register, Reset) are rare; Get is hot and safe for
// unlimited concurrent callers. Definitions are immutable after
// registration: the zero value is not usable, use NewRegistry.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]domain.Definition
}

// NewRegistry creates an empty Registry ready to accept definitions.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[string]domain.Definition)}
}

// Register adds a Definition under name. It returns an error if name is
// already registered; the caller (typically a catalog's init-time setup)
// decides whether a duplicate name is fatal.
func (r *Registry) Register(name string, def domain.Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.definitions[name]; exists {
		return fmt.Errorf("definition %q already registered", name)
	}
	r.definitions[name] = def
	return nil
}

// Get returns the Definition registered under name, or an
// *domain.UnknownDefinitionError (matching domain.ErrUnknownDefinition via
// errors.Is) if absent. The vertex id in the returned error is always 0;
// callers that need the referring vertex id should wrap the error
// themselves (see analyze).
func (r *Registry) Get(name string) (domain.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, exists := r.definitions[name]
	if !exists {
		return domain.Definition{}, domain.NewUnknownDefinitionError(0, name)
	}
	return def, nil
}

// Reset clears all registered definitions. Intended for test support.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions = make(map[string]domain.Definition)
}

// Names returns the names of every registered definition, in no particular
// order. The returned slice is a copy and safe to modify.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.definitions))
	for name := range r.definitions {
		names = append(names, name)
	}
	return names
}
