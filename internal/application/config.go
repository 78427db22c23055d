package application

// GraphSpec defines the complete declarative specification for a compute
// graph and is the primary configuration entry point for loading graphs
// from YAML. Use GraphSpec when defining a graph as data rather than
// constructing domain.Vertex values directly in Go.
type GraphSpec struct {
	// Version specifies the configuration schema version using semantic
	// versioning to ensure compatibility across future schema changes.
	Version string `yaml:"version" validate:"required,semver"`
	// Metadata contains descriptive information about the graph, useful
	// for organization and discovery but not consumed by the engine.
	Metadata MetadataSpec `yaml:"metadata"`
	// Vertices lists every vertex in the graph. Vertex ids need not be
	// contiguous or ordered; wires reference them by id.
	Vertices []VertexSpec `yaml:"vertices" validate:"required,min=1,dive"`
}

// MetadataSpec provides descriptive, non-functional information about a
// graph.
type MetadataSpec struct {
	// Name is the human-readable identifier for this graph.
	Name string `yaml:"name" validate:"omitempty,min=1,max=255"`
	// Description explains the graph's purpose for documentation.
	Description string `yaml:"description" validate:"max=1000"`
}

// VertexSpec declares one vertex: the operation it instantiates and its
// ordered input list.
type VertexSpec struct {
	// ID uniquely identifies this vertex within the graph; wires in other
	// vertices' inputs reference it by this value.
	ID uint32 `yaml:"id"`
	// Definition names the registered domain.Definition this vertex
	// instantiates.
	Definition string `yaml:"definition" validate:"required,min=1,max=200"`
	// Inputs lists this vertex's ordered input slots. Length and Value
	// kinds must match the named definition's declared inputs. Compiling
	// does not consult the registry: the length is checked when the graph
	// is prepared, and Value kinds are not checked.
	Inputs []InputSpec `yaml:"inputs" validate:"dive"`
}

// InputSpec declares a single input slot as either a literal constant or a
// wire to another vertex's output. Exactly one of Const or Wire must be set;
// Compiler.validateSpec enforces this (struct tags alone cannot express
// mutually-exclusive fields).
type InputSpec struct {
	// Const, when non-nil, supplies a literal value for this input slot.
	Const *ConstSpec `yaml:"const,omitempty"`
	// Wire, when non-nil, binds this input slot to another vertex's
	// output.
	Wire *WireSpec `yaml:"wire,omitempty"`
}

// WireSpec names the producing vertex and output index an InputSpec binds
// to.
type WireSpec struct {
	// From is the producing vertex's id.
	From uint32 `yaml:"from"`
	// Output is the zero-based index into the producing definition's
	// declared output list.
	Output uint8 `yaml:"output"`
}

// ConstSpec is a literal domain.Value expressed in YAML. Kind selects which
// of the typed fields is read; exactly one should be populated for the
// chosen Kind.
type ConstSpec struct {
	// Kind names the domain.ValueKind this constant carries, matching
	// ValueKind.String() (e.g. "count", "text", "toggle").
	Kind string `yaml:"kind" validate:"required,valuekind"`
	// Bool backs Kind "toggle".
	Bool bool `yaml:"bool,omitempty"`
	// Int backs Kind "count".
	Int int64 `yaml:"int,omitempty"`
	// UInt backs Kind "constrained_magnitude".
	UInt uint32 `yaml:"uint,omitempty"`
	// Float backs Kind "unconstrained_magnitude".
	Float float64 `yaml:"float,omitempty"`
	// Text backs Kind "text".
	Text string `yaml:"text,omitempty"`
	// Shader backs Kind "shader_1d", "shader_2d", and "shader_3d".
	Shader uint16 `yaml:"shader,omitempty"`
	// Color backs Kind "color".
	Color *ColorSpec `yaml:"color,omitempty"`
}

// ColorSpec is the YAML form of domain.Color.
type ColorSpec struct {
	R uint16 `yaml:"r"`
	G uint16 `yaml:"g"`
	B uint16 `yaml:"b"`
	A uint16 `yaml:"a"`
}
