package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pasc-lang/pasc/internal/lexer"
	"github.com/pasc-lang/pasc/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a file and print its AST in pretty-printed form",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	p := parser.New(lexer.New(string(source)), string(source), filename)
	prog, err := p.ParseProgram()
	if err != nil {
		return reportCompilerError(err, string(source), filename)
	}
	fmt.Println(prog.String())
	return nil
}
