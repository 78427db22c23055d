package application

// State enumerates the phases of a Graph's preparation lifecycle. A fresh or
// mutated Graph starts Unprepared; Prepare moves it to Ready or to one of the
// error states, each of which blocks Execute until the underlying problem is
// fixed and Prepare is called again.
type State int

const (
	// StateUnprepared is the initial state, and the state after any mutation
	// (SetVertex, RemoveVertex) until the next successful Prepare.
	StateUnprepared State = iota

	// StateErrCycle means wave layering could not place every vertex: the
	// graph contains a directed cycle.
	StateErrCycle

	// StateErrInvalidWire means some vertex's Wire input references a
	// missing vertex or an out-of-range output index. Detail is available
	// via Graph.LastInvalidWire.
	StateErrInvalidWire

	// StateErrUnknownDefinition means some vertex names a definition absent
	// from the registry.
	StateErrUnknownDefinition

	// StateErrInputMismatch means some vertex's input count does not match
	// its definition's declared input count.
	StateErrInputMismatch

	// StateReady means the graph has a valid wave plan, bound executors, and
	// is safe to Execute.
	StateReady
)

// String renders the State for logging.
func (s State) String() string {
	switch s {
	case StateUnprepared:
		return "unprepared"
	case StateErrCycle:
		return "err_cycle"
	case StateErrInvalidWire:
		return "err_invalid_wire"
	case StateErrUnknownDefinition:
		return "err_unknown_definition"
	case StateErrInputMismatch:
		return "err_input_mismatch"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
