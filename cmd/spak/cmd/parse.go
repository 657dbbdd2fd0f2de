package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/spak-project/spak/internal/ast"
	"github.com/spak-project/spak/internal/compiler"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file|dir]",
	Short: "Compile an AISpec file (or every SPEC*.md in a directory) and print its SystemSpec tree",
	Long: `Compile an AISpec system description into its typed SystemSpec and
print a summary of every component, effect, and workflow it declares.

If given a directory, every SPEC*.md file in it is compiled and printed in
natural order (SPEC.2.md before SPEC.10.md, unlike a plain lexicographic
sort). If no file is given, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			return parseDirectory(args[0])
		}
	}

	input, label, err := readSource(args)
	if err != nil {
		return err
	}

	c := compiler.New()
	spec, err := c.Compile(input)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", label, err)
	}
	printSystemSpec(spec)
	return nil
}

// parseDirectory compiles every SPEC*.md file in dir, in natural filename
// order, printing each in turn — the non-interactive equivalent of the
// REPL's do_load walking a directory of spec files.
func parseDirectory(dir string) error {
	matches, err := filepath.Glob(filepath.Join(dir, "SPEC*.md"))
	if err != nil {
		return fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Slice(matches, func(i, j int) bool { return natural.Less(matches[i], matches[j]) })

	c := compiler.New()
	for _, path := range matches {
		spec, err := c.CompileFile(path)
		if err != nil {
			return fmt.Errorf("compiling %s: %w", path, err)
		}
		fmt.Printf("--- %s ---\n", path)
		printSystemSpec(spec)
	}
	return nil
}

func printSystemSpec(spec *ast.SystemSpec) {
	fmt.Printf("system %s\n", spec.Name)
	for _, k := range spec.MetaKeys {
		fmt.Printf("  meta %s = %q\n", k, spec.Meta[k])
	}
	for _, comp := range spec.Components {
		fmt.Printf("  component %s (%d state blocks, %d functions, %d invariants, %d constraints)\n",
			comp.Name, len(comp.States), len(comp.Functions), len(comp.Invariants), len(comp.Constraints))
		for _, fn := range comp.Functions {
			fmt.Printf("    function %s(%s) -> %s\n", fn.Name, formatFields(fn.Params), fn.Return.String())
		}
	}
	for _, eff := range spec.Effects {
		fmt.Printf("  effect %s (%d operations)\n", eff.Name, len(eff.Operations))
		for _, op := range eff.Operations {
			fmt.Printf("    operation %s(%s) -> %s\n", op.Name, formatFields(op.Params), op.Return.String())
		}
	}
	for _, wf := range spec.Workflows {
		fmt.Printf("  workflow %s(%s) (%d steps)\n", wf.Name, formatFields(wf.Params), len(wf.Steps))
	}
	for _, imp := range spec.Imports {
		fmt.Printf("  import %s\n", imp)
	}
}

func formatFields(fields []ast.Field) string {
	s := ""
	for i, f := range fields {
		if i > 0 {
			s += ", "
		}
		s += f.Name + ": " + f.Type.String()
	}
	return s
}
