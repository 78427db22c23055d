package catalog

import "github.com/ahrav/go-gavel/internal/domain"

// splitExecutor derives two counts from a single input count: the input
// itself, and its double. It holds no state across Execute calls; its
// purpose is to exercise Prepare's live-output mask, not retained state.
// Computing "double" is skipped when the graph never wires output 1 to a
// consumer.
type splitExecutor struct {
	live []bool
}

// Prepare records which outputs the graph actually wired. It is called
// once per graph preparation, before any Execute call for this vertex.
func (s *splitExecutor) Prepare(liveOutputs []bool) {
	s.live = append([]bool(nil), liveOutputs...)
}

// Execute returns [in, in*2], but only computes and returns a real value at
// an index whose live-output mask bit is true; other indices carry the
// zero Value.
func (s *splitExecutor) Execute(inputs []domain.Value) []domain.Value {
	in, _ := inputs[0].AsCount()
	out := make([]domain.Value, len(s.live))
	for i, isLive := range s.live {
		if !isLive {
			continue
		}
		switch i {
		case 0:
			out[i] = domain.Count(in)
		case 1:
			out[i] = domain.Count(in * 2)
		}
	}
	return out
}

// splitDefinition declares the two-output stateful "split" operation,
// backed by a fresh splitExecutor per vertex.
func splitDefinition() domain.Definition {
	return domain.Definition{
		Description: "splits a count into itself and its double, skipping unwired outputs",
		Inputs: []domain.InputDecl{
			{Name: "in", Kinds: []domain.ValueKind{domain.KindCount}, Required: true},
		},
		Outputs: []domain.OutputDecl{
			{Name: "passthrough", Kind: domain.KindCount},
			{Name: "doubled", Kind: domain.KindCount},
		},
		Runner: domain.ExecutorRunner(func() domain.Executor { return &splitExecutor{} }),
	}
}

// accumulateExecutor adds its input to a running total on every Execute
// call and emits the new total. The total persists for the lifetime of the
// bound Executor, i.e. across every Execute call on the owning Graph until
// the next successful Prepare rebinds a fresh instance.
type accumulateExecutor struct {
	total int64
}

func (a *accumulateExecutor) Prepare(liveOutputs []bool) {}

func (a *accumulateExecutor) Execute(inputs []domain.Value) []domain.Value {
	delta, _ := inputs[0].AsCount()
	a.total += delta
	return []domain.Value{domain.Count(a.total)}
}

// accumulateDefinition declares the stateful running-total operation.
func accumulateDefinition() domain.Definition {
	return domain.Definition{
		Description: "adds its input to a running total retained across Execute calls",
		Inputs: []domain.InputDecl{
			{Name: "delta", Kinds: []domain.ValueKind{domain.KindCount}, Required: true},
		},
		Outputs: []domain.OutputDecl{{Name: "total", Kind: domain.KindCount}},
		Runner:  domain.ExecutorRunner(func() domain.Executor { return &accumulateExecutor{} }),
	}
}
