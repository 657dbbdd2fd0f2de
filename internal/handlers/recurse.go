package handlers

import (
	"context"
	"fmt"

	"github.com/spak-project/spak/internal/ast"
	"github.com/spak-project/spak/internal/effect"
	"github.com/spak-project/spak/internal/registry"
)

// SpecLoader compiles the AISpec file at path into a validated SystemSpec.
// *compiler.Compiler satisfies this via CompileFile.
type SpecLoader interface {
	CompileFile(path string) (*ast.SystemSpec, error)
}

// ResolveEntry derives the canonical entry point name for spec, replacing
// what used to be a hard-coded filename-substring lookup: prefer the first
// workflow declared with exactly one parameter (the spec's own notion of a
// runnable entry), and fall back to the sole component's sole function when
// no such workflow exists. Any other shape is ambiguous and is rejected so
// the caller surfaces a clear error instead of guessing.
func ResolveEntry(spec *ast.SystemSpec) (name string, err error) {
	for _, w := range spec.Workflows {
		if len(w.Params) == 1 {
			return w.Name, nil
		}
	}
	if len(spec.Components) != 1 {
		return "", fmt.Errorf("cannot resolve a canonical entry point: no arity-1 workflow and %d components (need exactly 1)", len(spec.Components))
	}
	c := spec.Components[0]
	if len(c.Functions) != 1 {
		return "", fmt.Errorf("cannot resolve a canonical entry point: component %q has %d functions (need exactly 1 to serve as the sole public function)", c.Name, len(c.Functions))
	}
	return c.Functions[0].Name, nil
}

// HandlerSetFactory builds the restricted handler chain installed as the
// ambient runtime for the duration of one sub-agent's execution.
type HandlerSetFactory func() []effect.Handler

// Recursion handles effect.Recurse by following the protocol: save the
// current ambient runtime, install a fresh one scoped to the sub-agent,
// resolve and instantiate its entry point from the registry, invoke it, and
// unconditionally restore the prior ambient runtime regardless of outcome.
type Recursion struct {
	loader   SpecLoader
	registry *registry.Registry
	handlers HandlerSetFactory
}

// NewRecursion returns a ready-to-register Recursion handler. loader
// compiles a sub-spec file into its SystemSpec; reg holds the entry points a
// host has registered for specs it is prepared to run; handlers builds the
// handler chain the sub-agent runs under (pass a factory returning a
// restricted subset — e.g. no further Recurse — to bound recursion depth).
func NewRecursion(loader SpecLoader, reg *registry.Registry, handlers HandlerSetFactory) Recursion {
	return Recursion{loader: loader, registry: reg, handlers: handlers}
}

func (Recursion) CanHandle(k effect.Kind) bool { return k == effect.Recurse }

func (r Recursion) Handle(ctx context.Context, e effect.Effect) (any, error) {
	task, ok := e.Payload.(effect.SubTask)
	if !ok {
		return nil, fmt.Errorf("recursion handler: unexpected payload type %T", e.Payload)
	}

	child := effect.NewRuntime()
	if r.handlers != nil {
		for _, h := range r.handlers() {
			child.Register(h)
		}
	}
	restore := effect.SwapAmbient(child)
	defer restore()

	spec, err := r.loader.CompileFile(task.SpecPath)
	if err != nil {
		return fmt.Sprintf("Error: failed to load sub-agent spec %s: %s", task.SpecPath, err), nil
	}

	entryName, err := ResolveEntry(spec)
	if err != nil {
		return fmt.Sprintf("Error: %s", err), nil
	}

	entry, err := r.registry.Entry(entryName)
	if err != nil {
		return fmt.Sprintf("Error: no implementation registered for entry point %q: %s", entryName, err), nil
	}

	result, err := entry.Invoke(task.Query, task.Context)
	if err != nil {
		return fmt.Sprintf("Error: sub-agent %q failed: %s", entryName, err), nil
	}
	return result, nil
}
