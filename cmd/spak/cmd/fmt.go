package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spak-project/spak/internal/compiler"
	"github.com/spak-project/spak/internal/printer"
)

var (
	fmtWrite     bool // -w: write result to (source) file instead of stdout
	fmtList      bool // -l: list files whose formatting differs
	fmtDiff      bool // -d: display diffs instead of rewriting files
	fmtRecursive bool // -r: process directories recursively
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [files or directories...]",
	Short: "Print an AISpec file in its canonical form",
	Long: `Format AISpec source files by compiling them and re-serializing the
resulting SystemSpec with internal/printer. Because this round-trips
through the compiler, fmt also doubles as a syntax check: a file that
won't compile can't be formatted.

By default, fmt formats the files named on the command line and writes
the result to standard output. If no path is provided, it reads from
standard input.`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to (source) file instead of stdout")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs")
	fmtCmd.Flags().BoolVarP(&fmtDiff, "diff", "d", false, "display diffs instead of rewriting files")
	fmtCmd.Flags().BoolVarP(&fmtRecursive, "recursive", "r", false, "process directories recursively")
}

func runFmt(cmd *cobra.Command, args []string) error {
	if fmtWrite && fmtList {
		return fmt.Errorf("cannot use -w and -l together")
	}
	if fmtWrite && fmtDiff {
		return fmt.Errorf("cannot use -w and -d together")
	}

	if len(args) == 0 {
		return formatStdin()
	}

	hasErrors := false
	for _, path := range args {
		if err := processPath(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", path, err)
			hasErrors = true
		}
	}
	if hasErrors {
		return fmt.Errorf("formatting failed for one or more files")
	}
	return nil
}

func processPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		if fmtRecursive {
			return processDirectory(path)
		}
		return fmt.Errorf("%s is a directory (use -r to process recursively)", path)
	}
	return formatFile(path)
}

func processDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		if err := formatFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting %s: %v\n", path, err)
		}
		return nil
	})
}

func formatStdin() error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	formatted, err := formatSource(string(src))
	if err != nil {
		return err
	}
	fmt.Print(formatted)
	return nil
}

func formatFile(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	original := string(src)
	formatted, err := formatSource(original)
	if err != nil {
		return err
	}
	changed := original != formatted

	switch {
	case fmtList:
		if changed {
			fmt.Println(filename)
		}
	case fmtDiff:
		if changed {
			fmt.Printf("--- %s (original)\n", filename)
			fmt.Printf("+++ %s (formatted)\n", filename)
			showDiff(original, formatted)
		}
	case fmtWrite:
		if changed {
			if err := os.WriteFile(filename, []byte(formatted), 0o644); err != nil {
				return fmt.Errorf("writing file: %w", err)
			}
		}
	default:
		fmt.Print(formatted)
	}
	return nil
}

func formatSource(source string) (string, error) {
	c := compiler.New()
	spec, err := c.Compile(source)
	if err != nil {
		return "", err
	}
	return printer.Print(spec), nil
}

func showDiff(original, formatted string) {
	origLines := strings.Split(original, "\n")
	fmtLines := strings.Split(formatted, "\n")

	maxLines := len(origLines)
	if len(fmtLines) > maxLines {
		maxLines = len(fmtLines)
	}
	for i := 0; i < maxLines; i++ {
		var origLine, fmtLine string
		if i < len(origLines) {
			origLine = origLines[i]
		}
		if i < len(fmtLines) {
			fmtLine = fmtLines[i]
		}
		if origLine != fmtLine {
			if origLine != "" {
				fmt.Printf("- %s\n", origLine)
			}
			if fmtLine != "" {
				fmt.Printf("+ %s\n", fmtLine)
			}
		}
	}
}
