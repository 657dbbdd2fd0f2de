// Package printer serializes a compiled SystemSpec back into canonical
// AISpec source text, the inverse of internal/compiler. It exists to
// support the round-trip testable property: printing a SystemSpec and
// recompiling the result must yield a structurally equal tree.
package printer

import (
	"fmt"
	"strings"

	"github.com/spak-project/spak/internal/ast"
)

// Print renders spec as canonical AISpec source.
func Print(spec *ast.SystemSpec) string {
	var sb strings.Builder

	if len(spec.MetaKeys) > 0 {
		sb.WriteString("meta {\n")
		for _, k := range spec.MetaKeys {
			fmt.Fprintf(&sb, "    %s = %q\n", k, spec.Meta[k])
		}
		sb.WriteString("}\n\n")
	}

	fmt.Fprintf(&sb, "system %s {\n", spec.Name)
	for _, imp := range spec.Imports {
		fmt.Fprintf(&sb, "    import %s;\n", imp)
	}
	for _, c := range spec.Components {
		printComponent(&sb, c)
	}
	for _, e := range spec.Effects {
		printEffect(&sb, e)
	}
	for _, w := range spec.Workflows {
		printWorkflow(&sb, w)
	}
	sb.WriteString("}\n")

	return sb.String()
}

func printComponent(sb *strings.Builder, c ast.ComponentSpec) {
	fmt.Fprintf(sb, "    component %s {\n", c.Name)
	if c.Description != "" {
		fmt.Fprintf(sb, "        description: %q;\n", c.Description)
	}
	for _, st := range c.States {
		printState(sb, st)
	}
	for _, fn := range c.Functions {
		printFunction(sb, fn)
	}
	for _, inv := range c.Invariants {
		fmt.Fprintf(sb, "        invariant: %s;\n", inv)
	}
	for _, con := range c.Constraints {
		fmt.Fprintf(sb, "        constraint: %s;\n", con)
	}
	sb.WriteString("    }\n")
}

func printState(sb *strings.Builder, st ast.StateSpec) {
	fmt.Fprintf(sb, "        state %s { %s }\n", st.Name, printFields(st.Fields, ", "))
}

func printFunction(sb *strings.Builder, fn ast.FunctionSpec) {
	fmt.Fprintf(sb, "        function %s(%s) -> %s", fn.Name, printFields(fn.Params, ", "), fn.Return.String())
	if fn.Body == nil {
		sb.WriteString(";\n")
		return
	}
	fmt.Fprintf(sb, " { %s }\n", *fn.Body)
}

func printEffect(sb *strings.Builder, e ast.EffectSpec) {
	fmt.Fprintf(sb, "    effect %s {\n", e.Name)
	for _, op := range e.Operations {
		fmt.Fprintf(sb, "        operation %s(%s) -> %s;\n", op.Name, printFields(op.Params, ", "), op.Return.String())
	}
	sb.WriteString("    }\n")
}

func printWorkflow(sb *strings.Builder, w ast.WorkflowSpec) {
	fmt.Fprintf(sb, "    workflow %s(%s) {\n", w.Name, printFields(w.Params, ", "))
	for _, step := range w.Steps {
		fmt.Fprintf(sb, "        step %s { %s }\n", step.Name, step.Body)
	}
	sb.WriteString("    }\n")
}

func printFields(fields []ast.Field, sep string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type.String())
	}
	return strings.Join(parts, sep)
}
