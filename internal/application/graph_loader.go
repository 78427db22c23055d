package application

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-gavel/internal/domain"
	"github.com/ahrav/go-gavel/internal/ports"
)

// Compiler parses, validates, and compiles YAML GraphSpec documents into
// *Graph instances, caching compiled graphs by the SHA-256 hash of their
// normalized source so identical specs are compiled exactly once.
// WARNING: a cached *Graph MUST NOT be mutated (SetVertex, RemoveVertex) by
// one caller while another caller may still be holding the same cached
// pointer; treat a Compiler-returned Graph for a given spec as shared.
type Compiler struct {
	validator *validator.Validate
	registry  ports.DefinitionRegistry

	cacheMu sync.RWMutex
	cache   map[string]*Graph

	sf singleflight.Group
}

// NewCompiler creates a Compiler that resolves vertex definitions against
// registry. It returns an error if custom validator registration fails.
func NewCompiler(registry ports.DefinitionRegistry) (*Compiler, error) {
	v := validator.New()
	if err := registerCustomValidators(v); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}
	return &Compiler{validator: v, registry: registry, cache: make(map[string]*Graph)}, nil
}

// CompileFile reads, parses, and compiles the GraphSpec YAML file at path.
func (c *Compiler) CompileFile(ctx context.Context, path string) (*Graph, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return c.Compile(ctx, data)
}

// CompileReader reads all of r and compiles it as a GraphSpec YAML document.
func (c *Compiler) CompileReader(ctx context.Context, r io.Reader) (*Graph, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read data: %w", err)
	}
	return c.Compile(ctx, data)
}

// Compile parses and compiles raw GraphSpec YAML bytes into a *Graph. It
// deduplicates concurrent compilations of the same normalized content via
// singleflight, and caches the result by content hash so a subsequent call
// with the same spec returns instantly.
func (c *Compiler) Compile(ctx context.Context, data []byte) (*Graph, error) {
	spec, err := parseGraphSpec(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	hash, err := hashGraphSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to hash spec: %w", err)
	}

	v, err, _ := c.sf.Do(hash, func() (any, error) {
		if graph, ok := c.getCached(hash); ok {
			return graph, nil
		}

		if err := c.validateSpec(spec); err != nil {
			return nil, fmt.Errorf("validation failed: %w", err)
		}

		graph, err := c.buildGraph(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to build graph: %w", err)
		}

		c.setCached(hash, graph)
		return graph, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Graph), nil
}

// ClearCache removes every cached compiled graph, forcing subsequent
// Compile calls to rebuild from source.
func (c *Compiler) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.cache = make(map[string]*Graph)
}

func (c *Compiler) getCached(hash string) (*Graph, bool) {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	g, ok := c.cache[hash]
	return g, ok
}

func (c *Compiler) setCached(hash string, g *Graph) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.cache[hash] = g
}

// parseGraphSpec unmarshals YAML into a GraphSpec with strict decoding, so a
// misspelled field fails loudly instead of being silently ignored.
func parseGraphSpec(data []byte) (*GraphSpec, error) {
	var spec GraphSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("YAML decode failed: %w", err)
	}
	return &spec, nil
}

// hashGraphSpec computes a SHA-256 hash over a re-encoded, consistently
// indented form of spec, so semantically identical YAML with different
// whitespace or key order still hits the cache.
func hashGraphSpec(spec *GraphSpec) (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(spec); err != nil {
		return "", fmt.Errorf("failed to encode spec for hashing: %w", err)
	}
	hash := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(hash[:]), nil
}

// validateSpec runs struct-tag validation plus semantic checks that tags
// alone cannot express: unique vertex ids, exactly-one-of Const/Wire per
// input, and well-formed ConstSpec values.
func (c *Compiler) validateSpec(spec *GraphSpec) error {
	if err := c.validator.Struct(spec); err != nil {
		return fmt.Errorf("struct validation failed: %w", err)
	}

	seen := make(map[uint32]struct{}, len(spec.Vertices))
	for _, vs := range spec.Vertices {
		if _, dup := seen[vs.ID]; dup {
			return fmt.Errorf("duplicate vertex id %d", vs.ID)
		}
		seen[vs.ID] = struct{}{}

		for i, in := range vs.Inputs {
			if (in.Const == nil) == (in.Wire == nil) {
				return fmt.Errorf("vertex %d input %d must set exactly one of const or wire", vs.ID, i)
			}
			if in.Const != nil {
				if _, err := constValue(*in.Const); err != nil {
					return fmt.Errorf("vertex %d input %d: %w", vs.ID, i, err)
				}
			}
		}
	}
	return nil
}

// buildGraph converts a validated GraphSpec into a *Graph, resolving each
// VertexSpec into a domain.Vertex. It does not consult c.registry itself;
// definition resolution, input-count checks, and wire validity are the
// analyzer's job at Prepare time, so an invalid spec still compiles to a
// Graph, it simply never reaches StateReady.
func (c *Compiler) buildGraph(spec *GraphSpec) (*Graph, error) {
	vertices := make([]domain.Vertex, 0, len(spec.Vertices))
	for _, vs := range spec.Vertices {
		inputs := make([]domain.Input, 0, len(vs.Inputs))
		for _, in := range vs.Inputs {
			switch {
			case in.Wire != nil:
				inputs = append(inputs, domain.WireInput(domain.OutputRef{
					FromVertexID: in.Wire.From,
					OutputIndex:  in.Wire.Output,
				}))
			case in.Const != nil:
				v, err := constValue(*in.Const)
				if err != nil {
					return nil, fmt.Errorf("vertex %d: %w", vs.ID, err)
				}
				inputs = append(inputs, domain.ConstInput(v))
			}
		}
		vertices = append(vertices, domain.Vertex{
			ID:             vs.ID,
			DefinitionName: vs.Definition,
			Inputs:         inputs,
		})
	}
	return NewGraph(c.registry, vertices), nil
}

// constValue converts a ConstSpec into a domain.Value, using its declared
// Kind to select which typed field to read.
func constValue(spec ConstSpec) (domain.Value, error) {
	kind, ok := valueKindByName(spec.Kind)
	if !ok {
		return domain.Value{}, fmt.Errorf("unknown value kind %q", spec.Kind)
	}
	switch kind {
	case domain.KindTrigger:
		return domain.Trigger(), nil
	case domain.KindToggle:
		return domain.Toggle(spec.Bool), nil
	case domain.KindCount:
		return domain.Count(spec.Int), nil
	case domain.KindConstrainedMagnitude:
		return domain.ConstrainedMagnitude(spec.UInt), nil
	case domain.KindUnconstrainedMagnitude:
		return domain.UnconstrainedMagnitude(spec.Float), nil
	case domain.KindColor:
		if spec.Color == nil {
			return domain.Value{}, fmt.Errorf("color constant missing color field")
		}
		return domain.ColorValue(domain.Color{
			R: spec.Color.R, G: spec.Color.G, B: spec.Color.B, A: spec.Color.A,
		}), nil
	case domain.KindText:
		return domain.Text(spec.Text), nil
	case domain.KindShader1D:
		return domain.Shader1D(spec.Shader), nil
	case domain.KindShader2D:
		return domain.Shader2D(spec.Shader), nil
	case domain.KindShader3D:
		return domain.Shader3D(spec.Shader), nil
	default:
		return domain.Value{}, fmt.Errorf("value kind %q is not constructible from a YAML constant", spec.Kind)
	}
}
