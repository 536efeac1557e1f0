// Package compiler wires the lexer, parser, semantic analyzer, and code
// generator into the single-pass pipeline the CLI commands drive: each
// phase runs to completion before the next begins, and the first error
// from any phase halts the run, per spec.md §5.
package compiler

import (
	"github.com/google/uuid"

	"github.com/pasc-lang/pasc/internal/ast"
	"github.com/pasc-lang/pasc/internal/codegen"
	"github.com/pasc-lang/pasc/internal/lexer"
	"github.com/pasc-lang/pasc/internal/parser"
	"github.com/pasc-lang/pasc/internal/semantic"
)

// Result carries everything a CLI command might want to report about one
// compilation run.
type Result struct {
	RunID        uuid.UUID
	Program      *ast.Program
	Analyzer     *semantic.Analyzer
	Instructions []string
}

// Check runs the lex/parse/semantic phases only, without code generation —
// the pipeline behind `pasc check`.
func Check(source, filename string) (*Result, error) {
	prog, analyzer, err := analyze(source, filename)
	if err != nil {
		return nil, err
	}
	return &Result{RunID: uuid.New(), Program: prog, Analyzer: analyzer}, nil
}

// Run executes the full pipeline: lex, parse, analyze, generate.
func Run(source, filename string) (*Result, error) {
	prog, analyzer, err := analyze(source, filename)
	if err != nil {
		return nil, err
	}
	instructions, err := codegen.Generate(prog)
	if err != nil {
		return nil, err
	}
	return &Result{
		RunID:        uuid.New(),
		Program:      prog,
		Analyzer:     analyzer,
		Instructions: instructions,
	}, nil
}

func analyze(source, filename string) (*ast.Program, *semantic.Analyzer, error) {
	p := parser.New(lexer.New(source), source, filename)
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, nil, err
	}
	analyzer := semantic.New(source, filename)
	if err := analyzer.Analyze(prog); err != nil {
		return nil, nil, err
	}
	return prog, analyzer, nil
}
