package domain

import "fmt"

// OutputRef identifies a single output of a single vertex: the pair
// (producing vertex id, output index). It is the sole key used by the
// result store. Vertex ids are 32-bit; output indices are bounded at 256
// per definition, so the pair packs into a small comparable struct usable
// directly as a map key.
type OutputRef struct {
	FromVertexID uint32
	OutputIndex  uint8
}

// String renders the OutputRef for logging and debugging.
func (r OutputRef) String() string { return fmt.Sprintf("%d:%d", r.FromVertexID, r.OutputIndex) }

// InputKind distinguishes the two Input variants.
type InputKind int

const (
	// InputConst marks an Input that carries a literal Value.
	InputConst InputKind = iota
	// InputWire marks an Input that references another vertex's output.
	InputWire
)

// Input is a vertex's input slot: either a constant Value or a Wire
// referencing another vertex's output. It is a closed two-variant sum
// encoded as a struct with a discriminant rather than an interface, so
// that a Vertex's input list stays a flat, cheaply-copyable slice.
type Input struct {
	Kind  InputKind
	Const Value
	Wire  OutputRef
}

// ConstInput constructs an Input bound to a literal Value.
func ConstInput(v Value) Input { return Input{Kind: InputConst, Const: v} }

// WireInput constructs an Input bound to another vertex's output.
func WireInput(ref OutputRef) Input { return Input{Kind: InputWire, Wire: ref} }

// Vertex is one instance of an operation in a graph: a definition name plus
// an ordered list of inputs. The input order and kinds must match the
// referenced Definition's declared input list; the core does not enforce
// compatibility at prepare-time (see Definition.Inputs) but a Wire that
// references a missing vertex surfaces as ErrInvalidWire at prepare-time.
type Vertex struct {
	ID             uint32
	DefinitionName string
	Inputs         []Input
}

// Clone returns a deep copy of the Vertex, safe to mutate independently of
// the original (its Inputs slice and any Const payloads are copied).
func (v Vertex) Clone() Vertex {
	inputs := make([]Input, len(v.Inputs))
	for i, in := range v.Inputs {
		clone := in
		clone.Const = in.Const.Clone()
		inputs[i] = clone
	}
	return Vertex{ID: v.ID, DefinitionName: v.DefinitionName, Inputs: inputs}
}
