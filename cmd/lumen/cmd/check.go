package cmd

import (
	"fmt"
	"os"

	"github.com/lumenlang/lumen/internal/diagnostics"
	"github.com/lumenlang/lumen/internal/parser"
	"github.com/lumenlang/lumen/internal/semantic"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Resolve and type-check a Lumen file without running it",
	Long: `Run lexical-scope resolution and type checking over a Lumen program
and report every diagnostic, without executing anything. Exits non-zero if
any error is reported.`,
	Args: cobra.ExactArgs(1),
	RunE: checkScript,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	source := string(content)

	p := parser.New(source)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		printParseErrors(errs, source, filename)
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	_, warnings, errs := semantic.Resolve(program.Statements)

	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, diagnostics.Format(diagnostics.FromWarning(w), source, filename, true))
	}

	if len(errs) > 0 {
		ds := make([]diagnostics.Diagnostic, len(errs))
		for i, e := range errs {
			ds[i] = diagnostics.FromError(e)
		}
		fmt.Fprintln(os.Stderr, diagnostics.FormatAll(ds, source, filename, true))
		return fmt.Errorf("type checking failed with %d error(s)", len(errs))
	}

	fmt.Printf("%s: OK\n", filename)
	return nil
}
