package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pasc-lang/pasc/internal/compiler"
	"github.com/pasc-lang/pasc/internal/errors"
)

var outputFile string

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a program to its stack-VM instruction listing",
	Long: `compile runs the full pipeline (lex, parse, analyze, generate) and
writes the resulting instruction listing to --output, or to standard output
when --output is not given.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: standard output)")
}

func runCompile(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	result, err := compiler.Run(string(source), filename)
	if err != nil {
		return reportCompilerError(err, string(source), filename)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "run %s: %d instructions emitted\n", result.RunID, len(result.Instructions))
	}

	listing := strings.Join(result.Instructions, "\n") + "\n"
	if outputFile == "" {
		fmt.Print(listing)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(listing), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "wrote %s\n", outputFile)
	}
	return nil
}

// reportCompilerError prints err in the caret-pointer shape of
// internal/errors when it is one of the four compiler error kinds, falling
// back to err.Error() otherwise.
func reportCompilerError(err error, source, filename string) error {
	if ce, ok := err.(*errors.CompilerError); ok {
		fmt.Fprintln(os.Stderr, ce.Format(true))
		return fmt.Errorf("%s", ce.Kind)
	}
	return err
}
