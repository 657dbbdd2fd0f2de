package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "spak",
	Short: "Spec-driven agent kernel: AISpec compiler, effect runtime, and verifier",
	Long: `spak compiles AISpec system descriptions into a typed AST, runs
agent policies against an algebraic-effect runtime with a replaceable
handler chain, and verifies candidate component implementations against
that AST and a file of recorded test vectors.

This CLI exposes the kernel's non-interactive operations; it does not
reimplement the LLM-driven Builder/REPL the kernel's specs describe.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
