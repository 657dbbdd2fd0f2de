// Command spak is the spec-driven agent kernel's command-line interface.
package main

import (
	"fmt"
	"os"

	"github.com/spak-project/spak/cmd/spak/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
