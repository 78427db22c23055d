package application

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-gavel/internal/domain"
	"github.com/ahrav/go-gavel/internal/ports"
)

// vertexOutputs pairs a vertex id with the outputs it produced in a wave, so
// a wave's results can be collected from worker goroutines into a plain
// slice before the scheduler takes the store's write lock to publish them.
type vertexOutputs struct {
	id      uint32
	outputs []domain.Value
}

// runWave evaluates every vertex in a single wave, bounded by poolSize
// concurrent goroutines, under the result store's shared read lock. Const
// inputs are read directly off the vertex; Wire inputs are read from the
// store without re-acquiring its lock, since the caller already holds it for
// the duration of the wave.
func runWave(
	ctx context.Context,
	vertices map[uint32]domain.Vertex,
	defs map[uint32]domain.Definition,
	executors map[uint32]domain.Executor,
	wave []uint32,
	store *ResultStore,
	poolSize int,
) ([]vertexOutputs, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	results := make([]vertexOutputs, len(wave))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(poolSize)

	for i, id := range wave {
		i, id := i, id
		g.Go(func() error {
			v := vertices[id]
			inputs := make([]domain.Value, len(v.Inputs))
			for j, in := range v.Inputs {
				switch in.Kind {
				case domain.InputConst:
					inputs[j] = in.Const
				case domain.InputWire:
					val, ok := store.getUnlocked(in.Wire)
					if !ok {
						return domain.NewInvalidWireError(id, in.Wire.FromVertexID)
					}
					inputs[j] = val
				}
			}

			def := defs[id]
			var outputs []domain.Value
			switch def.Runner.Kind {
			case domain.RunnerKindFunc:
				outputs = def.Runner.Func(inputs)
			case domain.RunnerKindExecutor:
				outputs = executors[id].Execute(inputs)
			case domain.RunnerKindOutputDevice:
				def.Runner.Device(inputs)
			}
			results[i] = vertexOutputs{id: id, outputs: outputs}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// runExecute drives the full wave-parallel evaluation of a prepared graph:
// for each wave in order, evaluate its vertices in parallel (phase one, the
// store held under a shared read lock), then publish their outputs under an
// exclusive write lock (phase two) before moving to the next wave. observer
// may be nil.
func runExecute(
	ctx context.Context,
	vertices map[uint32]domain.Vertex,
	defs map[uint32]domain.Definition,
	executors map[uint32]domain.Executor,
	waves [][]uint32,
	poolSize int,
	observer ports.WaveObserver,
) (*ResultStore, error) {
	store := newResultStore()
	start := time.Now()

	if observer != nil {
		observer.PreExecute(ctx, len(waves))
	}

	for waveIdx, wave := range waves {
		waveStart := time.Now()
		if observer != nil {
			observer.PreWave(ctx, waveIdx, len(wave))
		}

		results, err := runWave(ctx, vertices, defs, executors, wave, store, poolSize)
		if err != nil {
			if observer != nil {
				observer.PostWave(ctx, waveIdx, time.Since(waveStart), err)
				observer.PostExecute(ctx, time.Since(start), err)
			}
			return nil, err
		}

		outputs := make(map[domain.OutputRef]domain.Value)
		for _, r := range results {
			for j, v := range r.outputs {
				outputs[domain.OutputRef{FromVertexID: r.id, OutputIndex: uint8(j)}] = v
			}
		}
		store.publish(outputs)

		if observer != nil {
			observer.PostWave(ctx, waveIdx, time.Since(waveStart), nil)
		}
	}

	if observer != nil {
		observer.PostExecute(ctx, time.Since(start), nil)
	}
	return store, nil
}
