package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pasc-lang/pasc/internal/replay"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Re-parse an instruction listing and pretty-print it",
	Long: `disasm reads an already-generated instruction listing (the output
of pasc compile) and re-parses it with internal/replay's own grammar,
annotating jump targets and validating that the listing is well-formed.`,
	Args: cobra.ExactArgs(1),
	RunE: runDisasm,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
}

func runDisasm(_ *cobra.Command, args []string) error {
	filename := args[0]
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	prog, err := replay.Parse(string(source))
	if err != nil {
		return err
	}

	labels := make(map[string]bool)
	for _, line := range prog.Lines {
		if line.Label != nil {
			labels[line.Label.Name] = true
		}
	}

	for _, line := range prog.Lines {
		switch {
		case line.Label != nil:
			fmt.Printf("%s:\n", line.Label.Name)
		case line.Instr != nil:
			fmt.Printf("    %s", line.Instr.Mnemonic)
			if line.Instr.HasOperand() {
				fmt.Printf(" %s", line.Instr.Operand())
			}
			if isJumpTarget(line.Instr) && !labels[line.Instr.Operand()] {
				fmt.Print("  ; unresolved label")
			}
			fmt.Println()
		}
	}
	return nil
}

func isJumpTarget(instr *replay.Instruction) bool {
	switch strings.ToUpper(instr.Mnemonic) {
	case "JUMP", "JZ", "PUSHA":
		return instr.NameArg != nil
	}
	return false
}
