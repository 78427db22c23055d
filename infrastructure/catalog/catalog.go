// Package catalog provides the standard library of domain.Definition
// implementations available to a compute graph: constant sources,
// arithmetic, a stateful splitter and accumulator that exercise the
// live-output mask and cross-execution state, an output-device sink, and a
// pure text formatter.
//
// Register populates an *application.Registry with every definition in the
// catalog; callers needing only a subset can call the individual
// *Definition() constructors directly and register them through
// application.Registry.Register instead.
package catalog

import (
	"fmt"

	"github.com/ahrav/go-gavel/internal/application"
	"github.com/ahrav/go-gavel/internal/domain"
)

// MustRegister registers def under name in reg, panicking if name is
// already taken. Unlike application.Registry.Register, which returns an
// error so callers compiling user-supplied graphs can recover from a
// duplicate name, catalog registration happens once at process startup: a
// collision there is a programming error, not a runtime condition to
// handle gracefully.
func MustRegister(reg *application.Registry, name string, def domain.Definition) {
	if err := reg.Register(name, def); err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
}

// Register adds every built-in definition to reg under its standard name.
// It is intended to be called once, early in process startup (see
// cmd/gavelcore).
func Register(reg *application.Registry) {
	MustRegister(reg, "one", oneDefinition())
	MustRegister(reg, "zero", zeroDefinition())
	MustRegister(reg, "add", addDefinition())
	MustRegister(reg, "multiply", multiplyDefinition())
	MustRegister(reg, "negate", negateDefinition())
	MustRegister(reg, "split", splitDefinition())
	MustRegister(reg, "accumulate", accumulateDefinition())
	MustRegister(reg, "to_text", toTextDefinition())
	MustRegister(reg, "sink", sinkDefinition())
}
