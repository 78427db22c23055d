// Package ports defines the interfaces that form the contract between the
// domain/application layers and the infrastructure layer, enabling
// dependency inversion and making the scheduler and compiler testable
// against fakes instead of concrete infrastructure types.
package ports

import "github.com/ahrav/go-gavel/internal/domain"

// DefinitionRegistry is the read side of a definition registry: a
// name-to-Definition lookup with concurrent-reader semantics. The analyzer,
// binder, and compiler depend on this interface rather than on the
// concrete *application.Registry, so they can be exercised against fakes in
// tests.
type DefinitionRegistry interface {
	// Get returns the Definition registered under name, or an error
	// satisfying errors.Is(err, domain.ErrUnknownDefinition) if absent.
	Get(name string) (domain.Definition, error)
}
