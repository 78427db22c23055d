package application

import (
	"fmt"
	"sync"

	"github.com/ahrav/go-gavel/internal/domain"
	"github.com/ahrav/go-gavel/internal/ports"
)

// fakeRegistry is an in-memory ports.DefinitionRegistry for tests that don't
// need Registry's concurrency guarantees, just a fixed name-to-Definition
// map.
type fakeRegistry struct {
	defs map[string]domain.Definition
}

func newFakeRegistry(defs map[string]domain.Definition) *fakeRegistry {
	return &fakeRegistry{defs: defs}
}

func (f *fakeRegistry) Get(name string) (domain.Definition, error) {
	def, ok := f.defs[name]
	if !ok {
		return domain.Definition{}, domain.NewUnknownDefinitionError(0, name)
	}
	return def, nil
}

// constDefinition returns a zero-input, one-output definition that always
// emits v.
func constDefinition(v domain.Value) domain.Definition {
	return domain.Definition{
		Description: "emits a fixed constant",
		Outputs:     []domain.OutputDecl{{Name: "out", Kind: v.Kind()}},
		Runner: domain.FuncRunner(func(inputs []domain.Value) []domain.Value {
			return []domain.Value{v}
		}),
	}
}

// addDefinition sums two KindCount inputs into one KindCount output.
func addDefinition() domain.Definition {
	return domain.Definition{
		Description: "adds two counts",
		Inputs: []domain.InputDecl{
			{Name: "a", Kinds: []domain.ValueKind{domain.KindCount}, Required: true},
			{Name: "b", Kinds: []domain.ValueKind{domain.KindCount}, Required: true},
		},
		Outputs: []domain.OutputDecl{{Name: "sum", Kind: domain.KindCount}},
		Runner: domain.FuncRunner(func(inputs []domain.Value) []domain.Value {
			a, _ := inputs[0].AsCount()
			b, _ := inputs[1].AsCount()
			return []domain.Value{domain.Count(a + b)}
		}),
	}
}

// splitterExecutor is a stateful Executor that records the live-output mask
// it was prepared with, so tests can assert the analyzer computed it
// correctly and that dead outputs are elided.
type splitterExecutor struct {
	mu   sync.Mutex
	live []bool
	runs int
}

func (s *splitterExecutor) Prepare(liveOutputs []bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live = append([]bool(nil), liveOutputs...)
}

func (s *splitterExecutor) Execute(inputs []domain.Value) []domain.Value {
	s.mu.Lock()
	s.runs++
	live := s.live
	s.mu.Unlock()

	in, _ := inputs[0].AsCount()
	out := make([]domain.Value, len(live))
	for i, isLive := range live {
		if !isLive {
			out[i] = domain.Value{}
			continue
		}
		out[i] = domain.Count(in + int64(i))
	}
	return out
}

// splitterDefinition declares a two-output stateful executor definition
// backed by a fresh splitterExecutor per factory call.
func splitterDefinition(executors *[]*splitterExecutor, mu *sync.Mutex) domain.Definition {
	return domain.Definition{
		Description: "splits one count into two derived counts",
		Inputs: []domain.InputDecl{
			{Name: "in", Kinds: []domain.ValueKind{domain.KindCount}, Required: true},
		},
		Outputs: []domain.OutputDecl{
			{Name: "a", Kind: domain.KindCount},
			{Name: "b", Kind: domain.KindCount},
		},
		Runner: domain.ExecutorRunner(func() domain.Executor {
			e := &splitterExecutor{}
			mu.Lock()
			*executors = append(*executors, e)
			mu.Unlock()
			return e
		}),
	}
}

// accumulatorExecutor retains state across Execute calls, incrementing a
// running total by its single input each time it runs.
type accumulatorExecutor struct {
	mu    sync.Mutex
	total int64
}

func (a *accumulatorExecutor) Prepare(liveOutputs []bool) {}

func (a *accumulatorExecutor) Execute(inputs []domain.Value) []domain.Value {
	a.mu.Lock()
	defer a.mu.Unlock()
	delta, _ := inputs[0].AsCount()
	a.total += delta
	return []domain.Value{domain.Count(a.total)}
}

func accumulatorDefinition(factory domain.ExecutorFactory) domain.Definition {
	return domain.Definition{
		Description: "accumulates its input across executions",
		Inputs: []domain.InputDecl{
			{Name: "delta", Kinds: []domain.ValueKind{domain.KindCount}, Required: true},
		},
		Outputs: []domain.OutputDecl{{Name: "total", Kind: domain.KindCount}},
		Runner:  domain.ExecutorRunner(factory),
	}
}

// sinkDefinition is a one-input output device with no outputs; it records
// every value it observes for test assertions.
func sinkDefinition(seen *[]domain.Value, mu *sync.Mutex) domain.Definition {
	return domain.Definition{
		Description: "records observed values",
		Inputs: []domain.InputDecl{
			{Name: "in", Kinds: []domain.ValueKind{domain.KindCount, domain.KindText}, Required: true},
		},
		Runner: domain.OutputDeviceRunner(func(inputs []domain.Value) {
			mu.Lock()
			*seen = append(*seen, inputs[0])
			mu.Unlock()
		}),
	}
}

// toTextDefinition is a pure function converting a count to text.
func toTextDefinition() domain.Definition {
	return domain.Definition{
		Description: "renders a count as text",
		Inputs: []domain.InputDecl{
			{Name: "in", Kinds: []domain.ValueKind{domain.KindCount}, Required: true},
		},
		Outputs: []domain.OutputDecl{{Name: "out", Kind: domain.KindText}},
		Runner: domain.FuncRunner(func(inputs []domain.Value) []domain.Value {
			n, _ := inputs[0].AsCount()
			return []domain.Value{domain.Text(fmt.Sprintf("%d", n))}
		}),
	}
}

var _ ports.DefinitionRegistry = (*fakeRegistry)(nil)
