package catalog

import (
	"log"

	"github.com/ahrav/go-gavel/internal/domain"
)

// sinkDefinition is an output device: a terminal vertex with no declared
// outputs that logs whatever value it receives. Output devices publish
// nothing to the result store; they exist purely for their side effect.
func sinkDefinition() domain.Definition {
	return domain.Definition{
		Description: "logs its input value; produces no outputs",
		Inputs: []domain.InputDecl{
			{Name: "in", Kinds: []domain.ValueKind{
				domain.KindTrigger, domain.KindToggle, domain.KindCount,
				domain.KindConstrainedMagnitude, domain.KindUnconstrainedMagnitude,
				domain.KindColor, domain.KindText,
			}, Required: true},
		},
		Runner: domain.OutputDeviceRunner(func(inputs []domain.Value) {
			log.Printf("sink: %s", inputs[0].String())
		}),
	}
}
