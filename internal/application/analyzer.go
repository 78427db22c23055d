package application

import (
	"github.com/ahrav/go-gavel/internal/domain"
	"github.com/ahrav/go-gavel/internal/ports"
)

// preparedAnalysis is the output of analyze: a wave plan, a live-output mask
// per vertex, the resolved Definition per vertex, and the width of the
// widest wave (used to size the worker pool).
type preparedAnalysis struct {
	waves     [][]uint32
	liveMasks map[uint32][]bool
	defs      map[uint32]domain.Definition
	maxWidth  int
}

// analyze validates a vertex set against registry and produces a wave plan.
// It runs four passes, each surfacing a distinct error class before moving
// to the next:
//
//  1. dependency extraction: every Wire must reference a vertex present in
//     the set, else ErrInvalidWire.
//  2. definition resolution: every vertex's DefinitionName must resolve in
//     registry, and its input count must match the definition's declared
//     input count, else ErrUnknownDefinition / ErrInputCountMismatch.
//  3. wave layering: a Kahn's-algorithm-style layered topological sort. Each
//     pass collects every not-yet-placed vertex whose dependencies are all
//     placed, forming one wave; a pass that places nothing with vertices
//     remaining means the graph contains a cycle (ErrCycle). Unlike the
//     single-pass "continue 'outer'" variant of this algorithm, the inner
//     per-input readiness check only ever skips the current vertex, never
//     the rest of the outer wave-building pass, so a single stalled vertex
//     cannot mask the remaining placeable vertices in the same wave.
//  4. live-output mask: for every Wire, mark its producer's output index as
//     live. An index at or beyond the producer definition's declared output
//     count is also an invalid wire, resolved here (rather than deferred to
//     execute-time) so that a graph never reaches Ready with a wire the
//     scheduler could not service.
func analyze(vertices map[uint32]domain.Vertex, registry ports.DefinitionRegistry) (*preparedAnalysis, error) {
	deps := make(map[uint32][]uint32, len(vertices))
	for id, v := range vertices {
		var d []uint32
		for _, in := range v.Inputs {
			if in.Kind != domain.InputWire {
				continue
			}
			if _, ok := vertices[in.Wire.FromVertexID]; !ok {
				return nil, domain.NewInvalidWireError(id, in.Wire.FromVertexID)
			}
			d = append(d, in.Wire.FromVertexID)
		}
		deps[id] = d
	}

	defs := make(map[uint32]domain.Definition, len(vertices))
	for id, v := range vertices {
		def, err := registry.Get(v.DefinitionName)
		if err != nil {
			return nil, domain.NewUnknownDefinitionError(id, v.DefinitionName)
		}
		if len(v.Inputs) != len(def.Inputs) {
			return nil, domain.NewInputCountMismatchError(id, len(def.Inputs), len(v.Inputs))
		}
		defs[id] = def
	}

	placed := make(map[uint32]bool, len(vertices))
	var waves [][]uint32
	maxWidth := 0
	for len(placed) < len(vertices) {
		var wave []uint32
		for id, d := range deps {
			if placed[id] {
				continue
			}
			ready := true
			for _, dep := range d {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if !ready {
				continue
			}
			wave = append(wave, id)
		}
		if len(wave) == 0 {
			return nil, domain.ErrCycle
		}
		for _, id := range wave {
			placed[id] = true
		}
		if len(wave) > maxWidth {
			maxWidth = len(wave)
		}
		waves = append(waves, wave)
	}

	liveMasks := make(map[uint32][]bool, len(vertices))
	for id, def := range defs {
		liveMasks[id] = make([]bool, len(def.Outputs))
	}
	for id, v := range vertices {
		for _, in := range v.Inputs {
			if in.Kind != domain.InputWire {
				continue
			}
			mask := liveMasks[in.Wire.FromVertexID]
			if int(in.Wire.OutputIndex) >= len(mask) {
				return nil, domain.NewInvalidWireError(id, in.Wire.FromVertexID)
			}
			mask[in.Wire.OutputIndex] = true
		}
	}

	return &preparedAnalysis{waves: waves, liveMasks: liveMasks, defs: defs, maxWidth: maxWidth}, nil
}
