package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pasc-lang/pasc/internal/lexer"
	"github.com/pasc-lang/pasc/internal/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Dump the token stream of a file, one token per line",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	l := lexer.New(string(source))
	for {
		tok := l.NextToken()
		fmt.Printf("%-12s %-20q line %d, col %d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
		if tok.Type == token.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "lexical error at line %d, col %d: %s\n", e.Pos.Line, e.Pos.Column, e.Message)
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}
