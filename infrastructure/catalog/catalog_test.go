package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-gavel/internal/application"
	"github.com/ahrav/go-gavel/internal/domain"
)

func TestRegister_PopulatesEveryDefinition(t *testing.T) {
	reg := application.NewRegistry()
	Register(reg)

	for _, name := range []string{"one", "zero", "add", "multiply", "negate", "split", "accumulate", "to_text", "sink"} {
		_, err := reg.Get(name)
		assert.NoError(t, err, "expected %q to be registered", name)
	}
}

func TestRegister_PanicsOnDuplicate(t *testing.T) {
	reg := application.NewRegistry()
	Register(reg)

	assert.Panics(t, func() { Register(reg) })
}

func TestArithmeticDefinitions(t *testing.T) {
	add := addDefinition()
	out := add.Runner.Func([]domain.Value{domain.Count(2), domain.Count(3)})
	sum, _ := out[0].AsCount()
	assert.Equal(t, int64(5), sum)

	mul := multiplyDefinition()
	out = mul.Runner.Func([]domain.Value{domain.Count(2), domain.Count(3)})
	product, _ := out[0].AsCount()
	assert.Equal(t, int64(6), product)

	neg := negateDefinition()
	out = neg.Runner.Func([]domain.Value{domain.Count(4)})
	n, _ := out[0].AsCount()
	assert.Equal(t, int64(-4), n)
}

func TestSplitExecutor_ElidesDeadOutput(t *testing.T) {
	exec := splitDefinition().Runner.Factory()
	exec.Prepare([]bool{true, false})

	out := exec.Execute([]domain.Value{domain.Count(7)})
	require.Len(t, out, 2)

	passthrough, ok := out[0].AsCount()
	require.True(t, ok)
	assert.Equal(t, int64(7), passthrough)

	assert.Equal(t, domain.ValueKind(0), out[1].Kind(), "a dead output is the zero Value")
}

func TestAccumulateExecutor_RetainsStateAcrossExecute(t *testing.T) {
	exec := accumulateDefinition().Runner.Factory()
	exec.Prepare([]bool{true})

	out1 := exec.Execute([]domain.Value{domain.Count(3)})
	total1, _ := out1[0].AsCount()
	assert.Equal(t, int64(3), total1)

	out2 := exec.Execute([]domain.Value{domain.Count(4)})
	total2, _ := out2[0].AsCount()
	assert.Equal(t, int64(7), total2)
}

func TestToTextDefinition(t *testing.T) {
	def := toTextDefinition()
	out := def.Runner.Func([]domain.Value{domain.Count(42)})
	text, _ := out[0].AsText()
	assert.Equal(t, "42", text)
}

func TestSinkDefinition_RunsWithoutError(t *testing.T) {
	def := sinkDefinition()
	assert.NotPanics(t, func() {
		def.Runner.Device([]domain.Value{domain.Text("hello")})
	})
}

func TestCatalogDefinitionsWireIntoAGraph(t *testing.T) {
	reg := application.NewRegistry()
	Register(reg)

	g := application.NewGraph(reg, []domain.Vertex{
		{ID: 0, DefinitionName: "one"},
		{ID: 1, DefinitionName: "add", Inputs: []domain.Input{
			domain.WireInput(domain.OutputRef{FromVertexID: 0, OutputIndex: 0}),
			domain.ConstInput(domain.Count(41)),
		}},
		{ID: 2, DefinitionName: "to_text", Inputs: []domain.Input{
			domain.WireInput(domain.OutputRef{FromVertexID: 1, OutputIndex: 0}),
		}},
		{ID: 3, DefinitionName: "sink", Inputs: []domain.Input{
			domain.WireInput(domain.OutputRef{FromVertexID: 2, OutputIndex: 0}),
		}},
	})

	require.True(t, g.Prepare(context.Background(), 4))
	store, err := g.Execute(context.Background())
	require.NoError(t, err)

	v, ok := store.Get(domain.OutputRef{FromVertexID: 2, OutputIndex: 0})
	require.True(t, ok)
	text, _ := v.AsText()
	assert.Equal(t, "42", text)
}
