package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-gavel/internal/domain"
)

func testCompiler(t *testing.T) (*Compiler, *Registry) {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register("const", constDefinition(domain.Count(2))))
	require.NoError(t, reg.Register("add", addDefinition()))

	c, err := NewCompiler(reg)
	require.NoError(t, err)
	return c, reg
}

func TestCompiler_CompileSimpleSpec(t *testing.T) {
	c, _ := testCompiler(t)

	spec := []byte(`
version: "1.0.0"
metadata:
  name: linear-chain
vertices:
  - id: 0
    definition: const
    inputs: []
  - id: 1
    definition: add
    inputs:
      - wire: {from: 0, output: 0}
      - const: {kind: count, int: 10}
`)

	g, err := c.Compile(context.Background(), spec)
	require.NoError(t, err)
	require.True(t, g.Prepare(context.Background(), 2))

	store, err := g.Execute(context.Background())
	require.NoError(t, err)
	v, ok := store.Get(domain.OutputRef{FromVertexID: 1, OutputIndex: 0})
	require.True(t, ok)
	got, _ := v.AsCount()
	assert.Equal(t, int64(12), got)
}

func TestCompiler_CachesIdenticalSpecs(t *testing.T) {
	c, _ := testCompiler(t)
	spec := []byte(`
version: "1.0.0"
metadata:
  name: cached
vertices:
  - id: 0
    definition: const
    inputs: []
`)

	g1, err := c.Compile(context.Background(), spec)
	require.NoError(t, err)
	g2, err := c.Compile(context.Background(), spec)
	require.NoError(t, err)
	assert.Same(t, g1, g2)
}

func TestCompiler_ClearCacheForcesRebuild(t *testing.T) {
	c, _ := testCompiler(t)
	spec := []byte(`
version: "1.0.0"
metadata:
  name: cached
vertices:
  - id: 0
    definition: const
    inputs: []
`)

	g1, err := c.Compile(context.Background(), spec)
	require.NoError(t, err)
	c.ClearCache()
	g2, err := c.Compile(context.Background(), spec)
	require.NoError(t, err)
	assert.NotSame(t, g1, g2)
}

func TestCompiler_UnknownYAMLFieldFails(t *testing.T) {
	c, _ := testCompiler(t)
	spec := []byte(`
version: "1.0.0"
metadata:
  name: bad
vertices:
  - id: 0
    definition: const
    bogus_field: true
`)

	_, err := c.Compile(context.Background(), spec)
	assert.Error(t, err)
}

func TestCompiler_DuplicateVertexIDFails(t *testing.T) {
	c, _ := testCompiler(t)
	spec := []byte(`
version: "1.0.0"
metadata:
  name: dup
vertices:
  - id: 0
    definition: const
  - id: 0
    definition: const
`)

	_, err := c.Compile(context.Background(), spec)
	assert.Error(t, err)
}

func TestCompiler_InputWithBothConstAndWireFails(t *testing.T) {
	c, _ := testCompiler(t)
	spec := []byte(`
version: "1.0.0"
metadata:
  name: ambiguous
vertices:
  - id: 0
    definition: const
  - id: 1
    definition: add
    inputs:
      - wire: {from: 0, output: 0}
        const: {kind: count, int: 1}
      - const: {kind: count, int: 1}
`)

	_, err := c.Compile(context.Background(), spec)
	assert.Error(t, err)
}

func TestCompiler_InputWithNeitherConstNorWireFails(t *testing.T) {
	c, _ := testCompiler(t)
	spec := []byte(`
version: "1.0.0"
metadata:
  name: empty-input
vertices:
  - id: 0
    definition: const
  - id: 1
    definition: add
    inputs:
      - {}
      - const: {kind: count, int: 1}
`)

	_, err := c.Compile(context.Background(), spec)
	assert.Error(t, err)
}

func TestCompiler_UnknownValueKindFails(t *testing.T) {
	c, _ := testCompiler(t)
	spec := []byte(`
version: "1.0.0"
metadata:
  name: bad-kind
vertices:
  - id: 0
    definition: const
  - id: 1
    definition: add
    inputs:
      - wire: {from: 0, output: 0}
      - const: {kind: nonsense, int: 1}
`)

	_, err := c.Compile(context.Background(), spec)
	assert.Error(t, err)
}

func TestCompiler_InvalidSemverFails(t *testing.T) {
	c, _ := testCompiler(t)
	spec := []byte(`
version: "not-a-version"
metadata:
  name: bad-version
vertices:
  - id: 0
    definition: const
`)

	_, err := c.Compile(context.Background(), spec)
	assert.Error(t, err)
}

func TestCompiler_CompileSurfacesAnalyzerErrorsOnlyAtPrepare(t *testing.T) {
	c, _ := testCompiler(t)
	spec := []byte(`
version: "1.0.0"
metadata:
  name: unknown-definition
vertices:
  - id: 0
    definition: does_not_exist
`)

	g, err := c.Compile(context.Background(), spec)
	require.NoError(t, err, "compile only builds the vertex set, it does not resolve definitions")

	ok := g.Prepare(context.Background(), 1)
	assert.False(t, ok)
	assert.Equal(t, StateErrUnknownDefinition, g.State())
}
