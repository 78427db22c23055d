package catalog

import "github.com/ahrav/go-gavel/internal/domain"

// oneDefinition emits a constant count of 1 on every execution. It takes no
// inputs; pair it with "add" or "multiply" to build constant-folding
// subgraphs without introducing synthetic source vertices.
func oneDefinition() domain.Definition {
	return domain.Definition{
		Description: "emits a constant count of 1",
		Outputs:     []domain.OutputDecl{{Name: "out", Kind: domain.KindCount}},
		Runner: domain.FuncRunner(func(inputs []domain.Value) []domain.Value {
			return []domain.Value{domain.Count(1)}
		}),
	}
}

// zeroDefinition emits a constant count of 0 on every execution.
func zeroDefinition() domain.Definition {
	return domain.Definition{
		Description: "emits a constant count of 0",
		Outputs:     []domain.OutputDecl{{Name: "out", Kind: domain.KindCount}},
		Runner: domain.FuncRunner(func(inputs []domain.Value) []domain.Value {
			return []domain.Value{domain.Count(0)}
		}),
	}
}

// addDefinition sums two Count inputs into one Count output. It is a pure
// function: safe to call from any number of goroutines concurrently, with
// no preparation step.
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

// multiplyDefinition multiplies two Count inputs into one Count output.
func multiplyDefinition() domain.Definition {
	return domain.Definition{
		Description: "multiplies two counts",
		Inputs: []domain.InputDecl{
			{Name: "a", Kinds: []domain.ValueKind{domain.KindCount}, Required: true},
			{Name: "b", Kinds: []domain.ValueKind{domain.KindCount}, Required: true},
		},
		Outputs: []domain.OutputDecl{{Name: "product", Kind: domain.KindCount}},
		Runner: domain.FuncRunner(func(inputs []domain.Value) []domain.Value {
			a, _ := inputs[0].AsCount()
			b, _ := inputs[1].AsCount()
			return []domain.Value{domain.Count(a * b)}
		}),
	}
}

// negateDefinition negates a single Count input.
func negateDefinition() domain.Definition {
	return domain.Definition{
		Description: "negates a count",
		Inputs: []domain.InputDecl{
			{Name: "in", Kinds: []domain.ValueKind{domain.KindCount}, Required: true},
		},
		Outputs: []domain.OutputDecl{{Name: "out", Kind: domain.KindCount}},
		Runner: domain.FuncRunner(func(inputs []domain.Value) []domain.Value {
			n, _ := inputs[0].AsCount()
			return []domain.Value{domain.Count(-n)}
		}),
	}
}
