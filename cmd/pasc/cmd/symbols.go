package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pasc-lang/pasc/internal/ast"
	"github.com/pasc-lang/pasc/internal/lexer"
	"github.com/pasc-lang/pasc/internal/parser"
	"github.com/pasc-lang/pasc/internal/semantic"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols [file]",
	Short: "Print the global symbol table",
	Long: `symbols lexes, parses, and type-checks a file, then prints the
global scope's variables, procedures, and functions as a table: name,
kind, type, and (for variables) global offset.`,
	Args: cobra.ExactArgs(1),
	RunE: runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}

func runSymbols(_ *cobra.Command, args []string) error {
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

	analyzer := semantic.New(string(source), filename)
	if err := analyzer.Analyze(prog); err != nil {
		return reportCompilerError(err, string(source), filename)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Kind", "Type", "Offset"})

	offset := 0
	for _, vd := range prog.Block.VarDecls {
		for _, name := range vd.Names {
			sym, ok := analyzer.Symbols.LookupGlobal(name.Value)
			if !ok {
				continue
			}
			table.Append([]string{sym.Name, "variable", sym.Type.String(), fmt.Sprintf("%d", offset)})
			offset++
		}
	}
	table.Append([]string{"(retval/temps)", "reserved", "-", fmt.Sprintf("%d..", offset)})

	for _, pd := range prog.Block.ProcedureDecls {
		table.Append([]string{pd.Name.Value, "procedure", signature(pd.Params, nil), "-"})
	}
	for _, fd := range prog.Block.FunctionDecls {
		table.Append([]string{fd.Name.Value, "function", signature(fd.Params, fd.ReturnType), "-"})
	}

	table.Render()
	return nil
}

// signature renders a procedure or function's parameter list and, when
// retType is non-nil, its return type, e.g. "(a: integer; b: real): real".
func signature(params []*ast.Param, retType *ast.TypeExpr) string {
	s := "("
	for i, p := range params {
		if i > 0 {
			s += "; "
		}
		s += p.Name.Value + ": " + p.Type.String()
	}
	s += ")"
	if retType != nil {
		s += ": " + retType.String()
	}
	return s
}
