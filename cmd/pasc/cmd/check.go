package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pasc-lang/pasc/internal/compiler"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Lex, parse, and type-check a file without generating code",
	Long: `check runs the lex/parse/semantic phases only, exiting 0 if the
program is well-formed and non-zero otherwise, without the cost of code
generation. Useful for editor integration.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	result, err := compiler.Check(string(source), filename)
	if err != nil {
		return reportCompilerError(err, string(source), filename)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "run %s: ok\n", result.RunID)
	}
	fmt.Println("ok")
	return nil
}
