package cmd

import (
	"fmt"
	"os"

	"github.com/lumenlang/lumen/internal/diagnostics"
	"github.com/lumenlang/lumen/internal/interp"
	"github.com/lumenlang/lumen/internal/parser"
	"github.com/lumenlang/lumen/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	evalExpr    string
	dumpAST     bool
	trace       bool
	noTypeCheck bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lumen file or expression",
	Long: `Execute a Lumen program from a file or inline expression.

Examples:
  # Run a script file
  lumen run script.lm

  # Evaluate an inline snippet
  lumen run -e "print 1 + 1;"

  # Run with AST dump (for debugging)
  lumen run --dump-ast script.lm`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace execution (for debugging)")
	runCmd.Flags().BoolVar(&noTypeCheck, "no-type-check", false, "skip reporting type-checker warnings (scope resolution still runs)")
}

func runScript(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Parsing %s...\n", filename)
	}

	p := parser.New(source)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		printParseErrors(errs, source, filename)
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if dumpAST {
		fmt.Println("AST:")
		fmt.Println(program.String())
		fmt.Println()
	}

	locals, warnings, errs := semantic.Resolve(program.Statements)
	if !noTypeCheck {
		for _, w := range warnings {
			fmt.Fprintln(os.Stderr, diagnostics.Format(diagnostics.FromWarning(w), source, filename, true))
		}
	}
	if len(errs) > 0 {
		ds := make([]diagnostics.Diagnostic, len(errs))
		for i, e := range errs {
			ds[i] = diagnostics.FromError(e)
		}
		fmt.Fprintln(os.Stderr, diagnostics.FormatAll(ds, source, filename, true))
		return fmt.Errorf("type checking failed with %d error(s)", len(errs))
	}

	if trace {
		fmt.Fprintf(os.Stderr, "[trace] executing %s\n", filename)
	}

	interpreter := interp.New(os.Stdout)
	if err := interpreter.Run(program, locals); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %s\n", err)
		return fmt.Errorf("execution failed")
	}

	return nil
}

func readSource(evalExpr string, args []string) (source, filename string, err error) {
	if evalExpr != "" {
		return evalExpr, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}

func printParseErrors(errs []*parser.Error, source, filename string) {
	ds := make([]diagnostics.Diagnostic, len(errs))
	for i, e := range errs {
		ds[i] = diagnostics.Diagnostic{Message: e.Msg, Line: e.Pos.Line, Column: e.Pos.Column, Level: "error"}
	}
	fmt.Fprintln(os.Stderr, diagnostics.FormatAll(ds, source, filename, true))
}
