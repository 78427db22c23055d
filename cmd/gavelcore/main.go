// Command gavelcore loads and runs compute graphs described by YAML graph
// specifications, using the definitions registered in the built-in catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/ahrav/go-gavel/internal/application"
	"github.com/ahrav/go-gavel/internal/domain"
	"github.com/ahrav/go-gavel/infrastructure/catalog"
	"github.com/ahrav/go-gavel/infrastructure/middleware"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		runCommand(os.Args[2:])
	case "describe":
		describeCommand(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: gavelcore <run|describe> [flags]")
}

func runCommand(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	graphPath := fs.String("graph", "", "path to a graph YAML file")
	maxThreads := fs.Uint("max-threads", 4, "worker pool size for wave evaluation and executor binding")
	fs.Parse(args)

	if *graphPath == "" {
		log.Fatal("run: -graph is required")
	}

	registry := application.NewRegistry()
	catalog.Register(registry)

	compiler, err := application.NewCompiler(registry)
	if err != nil {
		log.Fatalf("run: building compiler: %v", err)
	}

	ctx := context.Background()

	g, err := compiler.CompileFile(ctx, *graphPath)
	if err != nil {
		log.Fatalf("run: compiling %s: %v", *graphPath, err)
	}

	metrics := middleware.NewPrometheusMetrics()
	observer := middleware.NewOTelWaveObserver(metrics, *graphPath)
	g.WithObserver(observer).WithMetrics(metrics)

	if !g.Prepare(ctx, uint16(*maxThreads)) {
		log.Fatalf("run: graph failed to prepare: state=%s", g.State())
	}

	store, err := g.Execute(ctx)
	if err != nil {
		log.Fatalf("run: execution failed: %v", err)
	}

	fmt.Printf("executed %s: %d vertices, %d published outputs\n", *graphPath, g.VertexCount(), store.Len())
	snapshot := store.Snapshot()
	refs := make([]domain.OutputRef, 0, len(snapshot))
	for ref := range snapshot {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		a, b := refs[i], refs[j]
		return a.FromVertexID < b.FromVertexID || (a.FromVertexID == b.FromVertexID && a.OutputIndex < b.OutputIndex)
	})
	for _, ref := range refs {
		fmt.Printf("  vertex %d, output %d: %s\n", ref.FromVertexID, ref.OutputIndex, snapshot[ref].String())
	}
}

func describeCommand(args []string) {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	name := fs.String("definition", "", "name of a catalog definition to describe; omit to list all")
	fs.Parse(args)

	registry := application.NewRegistry()
	catalog.Register(registry)

	if *name == "" {
		for _, n := range registry.Names() {
			fmt.Println(n)
		}
		return
	}

	def, err := registry.Get(*name)
	if err != nil {
		log.Fatalf("describe: %v", err)
	}

	fmt.Printf("%s: %s\n", *name, def.Description)
	fmt.Println("inputs:")
	for _, in := range def.Inputs {
		fmt.Printf("  %s (%s) required=%v\n", in.Name, kindNames(in.Kinds), in.Required)
	}
	fmt.Println("outputs:")
	for _, out := range def.Outputs {
		fmt.Printf("  %s (%s)\n", out.Name, out.Kind)
	}
}

func kindNames(kinds []domain.ValueKind) string {
	s := ""
	for i, k := range kinds {
		if i > 0 {
			s += "|"
		}
		s += k.String()
	}
	return s
}
