// Package errors provides the compiler's four error kinds and their
// caret-pointer source formatting, grounded on the teacher's
// internal/errors/errors.go.
package errors

import (
	"fmt"
	"strings"

	"github.com/pasc-lang/pasc/internal/token"
)

// Kind distinguishes the compiler phase that raised an error. The phases
// are strictly ordered: a run halts at the first error in the earliest
// phase reached, so a SyntaxError is never reported alongside a
// SemanticError from the same run.
type Kind int

const (
	Lexical Kind = iota
	Syntax
	Semantic
	CodeGen
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical error"
	case Syntax:
		return "syntax error"
	case Semantic:
		return "semantic error"
	case CodeGen:
		return "code generation error"
	}
	return "error"
}

// CompilerError is a single compilation error with its kind, position, and
// enough source context to render a caret pointer.
type CompilerError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     token.Position
}

func New(kind Kind, pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Pos: pos, Message: message, Source: source, File: file}
}

func Lex(pos token.Position, message, source, file string) *CompilerError {
	return New(Lexical, pos, message, source, file)
}

func Syn(pos token.Position, message, source, file string) *CompilerError {
	return New(Syntax, pos, message, source, file)
}

func Sem(pos token.Position, message, source, file string) *CompilerError {
	return New(Semantic, pos, message, source, file)
}

func Gen(pos token.Position, message, source, file string) *CompilerError {
	return New(CodeGen, pos, message, source, file)
}

func (e *CompilerError) Error() string { return e.Format(false) }

// Format renders the error with a one-line source excerpt and a caret
// pointing at the offending column. With color set, the caret and message
// are wrapped in ANSI bold/red, matching the teacher's terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s:%d:%d\n", e.Kind, e.File, e.Pos.Line, e.Pos.Column)
	} else {
		fmt.Fprintf(&sb, "%s at line %d:%d\n", e.Kind, e.Pos.Line, e.Pos.Column)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+max(e.Pos.Column-1, 0)))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) sourceLine(n int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if n < 1 || n > len(lines) {
		return ""
	}
	return lines[n-1]
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
