package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spak-project/spak/internal/compiler"
	"github.com/spak-project/spak/internal/registry"
	"github.com/spak-project/spak/internal/testvectors"
	"github.com/spak-project/spak/internal/verifier"
)

var verifySrcDir string

var verifyCmd = &cobra.Command{
	Use:   "verify FILE --src DIR",
	Short: "Run structural and dynamic verification against a compiled system",
	Long: `Compile FILE and, for every component it declares, run the
structural check against DIR/src/<component>.go (lowercased).

If DIR also contains a component plugin — DIR/src/<component>.so, built
with "go build -buildmode=plugin" and exporting a Register(*registry.Registry)
function — its test vectors at DIR/tests/tests.<component>.yaml (also
lowercased) are run through the dynamic check once the plugin is loaded.
For a component with no plugin present (or no readable test-vector file),
only the structural check runs, and its PASS or FAIL reflects that check
alone.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifySrcDir, "src", ".", "directory containing src/, tests/, and specs/ subdirectories")
}

func runVerify(cmd *cobra.Command, args []string) error {
	input, label, err := readSource(args)
	if err != nil {
		return err
	}

	c := compiler.New()
	spec, err := c.Compile(input)
	if err != nil {
		return fmt.Errorf("compiling %s: %w", label, err)
	}

	if len(spec.Components) == 0 {
		return fmt.Errorf("%s declares no components to verify", label)
	}

	anyFailed := false
	for _, comp := range spec.Components {
		lower := strings.ToLower(comp.Name)
		srcPath := filepath.Join(verifySrcDir, "src", lower+".go")
		pluginPath := filepath.Join(verifySrcDir, "src", lower+".so")
		testsPath := filepath.Join(verifySrcDir, "tests", "tests."+lower+".yaml")

		reg := registry.New()
		var vectors *testvectors.File
		if err := registry.LoadPlugin(pluginPath, reg); err == nil {
			if vf, err := testvectors.Load(testsPath); err == nil {
				vectors = vf
			}
		}

		res := verifier.VerifySpec(comp, srcPath, reg, vectors, verifier.Options{})
		if res.Passed() {
			fmt.Printf("%s: PASS\n", comp.Name)
			continue
		}
		anyFailed = true
		fmt.Printf("%s: FAIL\n", comp.Name)
		for _, p := range res.Structural {
			fmt.Printf("  structural: %s\n", p)
		}
		for _, p := range res.Behavioral {
			fmt.Printf("  behavioral: %s\n", p)
		}
	}

	if anyFailed {
		return fmt.Errorf("verification failed")
	}
	return nil
}
