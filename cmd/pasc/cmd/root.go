// Package cmd implements the pasc CLI: compile, lex, parse, check, disasm,
// and symbols subcommands over a cobra root, grounded on the teacher's
// cmd/dwscript/cmd package split.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version, GitCommit, and BuildDate are set by build flags (-ldflags);
	// left as dev defaults otherwise.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pasc",
	Short: "Compiler for a restricted Pascal-like dialect",
	Long: `pasc compiles a restricted Pascal-like dialect (program/begin/end,
procedures and functions, typed variables, one-dimensional arrays, and
structured control flow) to the textual instruction listing of a simple
stack-based virtual machine.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostics")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
