// Command lumen is the command-line entry point for the Lumen toolchain:
// running scripts, type-checking them without executing, and reporting
// version information.
package main

import (
	"fmt"
	"os"

	"github.com/lumenlang/lumen/cmd/lumen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
