package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spak-project/spak/internal/ast"
	"github.com/spak-project/spak/internal/compiler"
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a compiled system's components and their public functions",
	Long: `Compile an AISpec file and print a concise listing of its components,
each with its description and the signatures of its declared functions —
the non-interactive equivalent of the REPL's "show" command once a system
has been loaded.

If no file is given, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	input, label, err := readSource(args)
	if err != nil {
		return err
	}

	c := compiler.New()
	spec, err := c.Compile(input)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", label, err)
	}

	printComponents(spec)
	return nil
}

// printComponents lists spec's components with their descriptions and
// function signatures — printing a function's body when one is declared,
// the non-interactive equivalent of the REPL's do_show.
func printComponents(spec *ast.SystemSpec) {
	fmt.Printf("%s\n", spec.Name)
	if len(spec.Components) == 0 {
		fmt.Println("  (no components declared)")
		return
	}
	for _, comp := range spec.Components {
		fmt.Printf("\n%s\n", comp.Name)
		if comp.Description != "" {
			fmt.Printf("  %s\n", comp.Description)
		}
		for _, fn := range comp.Functions {
			fmt.Printf("  - %s(%s) -> %s\n", fn.Name, formatFields(fn.Params), fn.Return.String())
			if fn.Body != nil {
				fmt.Printf("      %s\n", *fn.Body)
			}
		}
	}
}
