package application

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-gavel/internal/domain"
)

// bindExecutors constructs and prepares one Executor per executor-backed
// vertex, in parallel bounded by poolSize concurrent factory calls. Pure
// functions and output devices need no binding; they are invoked directly
// from their Definition at execute time.
func bindExecutors(
	ctx context.Context,
	defs map[uint32]domain.Definition,
	liveMasks map[uint32][]bool,
	poolSize int,
) (map[uint32]domain.Executor, error) {
	executors := make(map[uint32]domain.Executor)
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(poolSize)

	for id, def := range defs {
		if def.Runner.Kind != domain.RunnerKindExecutor {
			continue
		}
		id, def := id, def

		g.Go(func() error {
			exec := def.Runner.Factory()
			exec.Prepare(liveMasks[id])

			mu.Lock()
			executors[id] = exec
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return executors, nil
}
