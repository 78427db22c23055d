package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by graph preparation and execution. Detail
// structs below wrap these so callers can use errors.Is against the
// sentinel while still recovering structured detail via errors.As.
var (
	// ErrCycle indicates that wave layering exhausted a pass with vertices
	// remaining unplaced: the graph contains a directed cycle.
	ErrCycle = errors.New("graph contains a cycle")

	// ErrInvalidWire indicates that a Wire input references an unknown
	// vertex, or an output index beyond the producer's declared output
	// count.
	ErrInvalidWire = errors.New("invalid wire")

	// ErrPreconditionNotReady indicates that Execute was called when the
	// graph's state is not Ready.
	ErrPreconditionNotReady = errors.New("graph is not ready")

	// ErrUnknownDefinition indicates that a vertex references a definition
	// name absent from the registry.
	ErrUnknownDefinition = errors.New("unknown definition")

	// ErrInputCountMismatch indicates that a vertex's input list length
	// does not match its definition's declared input count.
	ErrInputCountMismatch = errors.New("input count mismatch")
)

// InvalidWireError carries the endpoints of an invalid wire: the referring
// vertex and the vertex id its wire targets. ToMissing is either a vertex
// absent from the graph or, for an output index beyond the producer's
// declared outputs, the producing vertex itself.
type InvalidWireError struct {
	From      uint32
	ToMissing uint32
}

// Error implements the error interface for InvalidWireError.
func (e *InvalidWireError) Error() string {
	return fmt.Sprintf("invalid wire: vertex %d references missing vertex %d", e.From, e.ToMissing)
}

// Is allows errors.Is(err, ErrInvalidWire) to match an *InvalidWireError.
func (e *InvalidWireError) Is(target error) bool { return target == ErrInvalidWire }

// NewInvalidWireError creates an InvalidWireError for the given endpoints.
func NewInvalidWireError(from, toMissing uint32) *InvalidWireError {
	return &InvalidWireError{From: from, ToMissing: toMissing}
}

// UnknownDefinitionError names the vertex and definition name that could
// not be resolved against the registry.
type UnknownDefinitionError struct {
	VertexID       uint32
	DefinitionName string
}

// Error implements the error interface for UnknownDefinitionError.
func (e *UnknownDefinitionError) Error() string {
	return fmt.Sprintf("vertex %d: unknown definition %q", e.VertexID, e.DefinitionName)
}

// Is allows errors.Is(err, ErrUnknownDefinition) to match an
// *UnknownDefinitionError.
func (e *UnknownDefinitionError) Is(target error) bool { return target == ErrUnknownDefinition }

// NewUnknownDefinitionError creates an UnknownDefinitionError.
func NewUnknownDefinitionError(vertexID uint32, name string) *UnknownDefinitionError {
	return &UnknownDefinitionError{VertexID: vertexID, DefinitionName: name}
}

// InputCountMismatchError carries the vertex id and the expected/actual
// input counts.
type InputCountMismatchError struct {
	VertexID uint32
	Got      int
	Want     int
}

// Error implements the error interface for InputCountMismatchError.
func (e *InputCountMismatchError) Error() string {
	return fmt.Sprintf("vertex %d: expected %d inputs, got %d", e.VertexID, e.Want, e.Got)
}

// Is allows errors.Is(err, ErrInputCountMismatch) to match an
// *InputCountMismatchError.
func (e *InputCountMismatchError) Is(target error) bool { return target == ErrInputCountMismatch }

// NewInputCountMismatchError creates an InputCountMismatchError.
func NewInputCountMismatchError(vertexID uint32, want, got int) *InputCountMismatchError {
	return &InputCountMismatchError{VertexID: vertexID, Got: got, Want: want}
}
