package catalog

import (
	"fmt"

	"github.com/ahrav/go-gavel/internal/domain"
)

// toTextDefinition is a pure function rendering a Count as decimal Text.
func toTextDefinition() domain.Definition {
	return domain.Definition{
		Description: "renders a count as decimal text",
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
