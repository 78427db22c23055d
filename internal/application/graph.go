package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ahrav/go-gavel/internal/domain"
	"github.com/ahrav/go-gavel/internal/ports"
)

// Graph is the mutable, stateful orchestrator of a vertex set: it tracks
// preparation state, owns the prepared wave plan and bound executors once
// Ready, and drives wave-parallel Execute calls. A Graph is safe for
// concurrent reads (State, Execute) but mutation (SetVertex, RemoveVertex,
// Prepare) is serialized through a single mutex. An in-flight Execute works
// on the vertex snapshot, wave plan, and executors captured from the last
// successful Prepare, so a concurrent mutation does not change what it runs.
type Graph struct {
	registry ports.DefinitionRegistry
	observer ports.WaveObserver
	metrics  ports.MetricsCollector

	mu          sync.RWMutex
	vertices    map[uint32]domain.Vertex
	state       State
	invalidWire *domain.InvalidWireError

	preparedVertices map[uint32]domain.Vertex
	waves            [][]uint32
	defs             map[uint32]domain.Definition
	executors        map[uint32]domain.Executor
	poolSize         int
}

// NewGraph constructs a Graph over vertices, resolving definitions against
// registry at Prepare time. The graph starts Unprepared; call Prepare before
// the first Execute.
func NewGraph(registry ports.DefinitionRegistry, vertices []domain.Vertex) *Graph {
	m := make(map[uint32]domain.Vertex, len(vertices))
	for _, v := range vertices {
		m[v.ID] = v.Clone()
	}
	return &Graph{registry: registry, vertices: m, state: StateUnprepared}
}

// WithObserver attaches a WaveObserver used during Execute. It returns the
// Graph for chaining and must be called before any concurrent use begins.
func (g *Graph) WithObserver(o ports.WaveObserver) *Graph {
	g.observer = o
	return g
}

// WithMetrics attaches a MetricsCollector used during Prepare and Execute.
// It returns the Graph for chaining and must be called before any concurrent
// use begins.
func (g *Graph) WithMetrics(m ports.MetricsCollector) *Graph {
	g.metrics = m
	return g
}

// SetVertex inserts or replaces the vertex with the given id. It invalidates
// any prior preparation: State becomes StateUnprepared until Prepare is
// called again.
func (g *Graph) SetVertex(v domain.Vertex) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.vertices[v.ID] = v.Clone()
	g.invalidate()
}

// RemoveVertex deletes the vertex with the given id, if present. It
// invalidates any prior preparation.
func (g *Graph) RemoveVertex(id uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.vertices, id)
	g.invalidate()
}

// invalidate resets prepared state. Callers must hold mu for writing.
func (g *Graph) invalidate() {
	g.state = StateUnprepared
	g.invalidWire = nil
	g.preparedVertices = nil
	g.waves = nil
	g.defs = nil
	g.executors = nil
	g.poolSize = 0
}

// State reports the graph's current preparation state.
func (g *Graph) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// LastInvalidWire returns the detail of the most recent StateErrInvalidWire
// classification, if the graph is currently in that state.
func (g *Graph) LastInvalidWire() (domain.InvalidWireError, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.invalidWire == nil {
		return domain.InvalidWireError{}, false
	}
	return *g.invalidWire, true
}

// VertexCount returns the number of vertices currently in the graph.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}

// Prepare analyzes the current vertex set, builds a wave plan and
// live-output masks, and binds executors for every stateful vertex. On
// success it transitions State to StateReady and returns true. On failure it
// classifies the error into one of the Err* states, leaves the graph
// unready, and returns false.
//
// maxThreads bounds the worker pool used both to bind executors and to
// evaluate waves; it is clamped to the widest wave so a narrow graph never
// over-allocates goroutine slots it cannot use. A maxThreads of 0 is treated
// as 1.
func (g *Graph) Prepare(ctx context.Context, maxThreads uint16) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	snapshot := make(map[uint32]domain.Vertex, len(g.vertices))
	for id, v := range g.vertices {
		snapshot[id] = v
	}

	analysis, err := analyze(snapshot, g.registry)
	if err != nil {
		g.applyPrepareError(err)
		g.recordPrepareFailure(err)
		return false
	}

	if maxThreads == 0 {
		maxThreads = 1
	}
	poolSize := analysis.maxWidth
	if poolSize < 1 {
		poolSize = 1
	}
	if int(maxThreads) < poolSize {
		poolSize = int(maxThreads)
	}

	executors, err := bindExecutors(ctx, analysis.defs, analysis.liveMasks, poolSize)
	if err != nil {
		g.applyPrepareError(err)
		g.recordPrepareFailure(err)
		return false
	}

	g.preparedVertices = snapshot
	g.waves = analysis.waves
	g.defs = analysis.defs
	g.executors = executors
	g.poolSize = poolSize
	g.state = StateReady
	g.invalidWire = nil

	if g.metrics != nil {
		g.metrics.RecordCounter("graph_prepare_total", 1, nil)
		g.metrics.RecordGauge("graph_wave_count", float64(len(analysis.waves)), nil)
		g.metrics.RecordGauge("graph_wave_max_width", float64(analysis.maxWidth), nil)
	}
	return true
}

// applyPrepareError classifies err and updates state accordingly. Callers
// must hold mu for writing.
func (g *Graph) applyPrepareError(err error) {
	var iw *domain.InvalidWireError
	switch {
	case errors.As(err, &iw):
		g.state = StateErrInvalidWire
		g.invalidWire = iw
	case errors.Is(err, domain.ErrCycle):
		g.state = StateErrCycle
	case errors.Is(err, domain.ErrUnknownDefinition):
		g.state = StateErrUnknownDefinition
	case errors.Is(err, domain.ErrInputCountMismatch):
		g.state = StateErrInputMismatch
	default:
		g.state = StateUnprepared
	}
}

func (g *Graph) recordPrepareFailure(err error) {
	if g.metrics == nil {
		return
	}
	g.metrics.RecordCounter("graph_prepare_failures_total", 1, map[string]string{
		"reason": g.state.String(),
	})
}

// Execute runs one wave-parallel evaluation of the prepared graph and
// returns the resulting ResultStore. It fails with
// domain.ErrPreconditionNotReady if the graph is not in StateReady.
func (g *Graph) Execute(ctx context.Context) (*ResultStore, error) {
	g.mu.RLock()
	if g.state != StateReady {
		g.mu.RUnlock()
		return nil, domain.ErrPreconditionNotReady
	}
	vertices := g.preparedVertices
	defs := g.defs
	executors := g.executors
	waves := g.waves
	poolSize := g.poolSize
	observer := g.observer
	g.mu.RUnlock()

	start := time.Now()
	store, err := runExecute(ctx, vertices, defs, executors, waves, poolSize, observer)
	if g.metrics != nil {
		labels := map[string]string{"outcome": "ok"}
		if err != nil {
			labels["outcome"] = "error"
		}
		g.metrics.RecordLatency("graph_execute", time.Since(start), labels)
	}
	return store, err
}
