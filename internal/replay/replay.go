// Package replay parses the VM's own textual instruction format back into
// structured values, the reverse direction of internal/codegen. It backs
// `pasc disasm` (pretty-printing/validating an already-emitted listing).
//
// Grounded on gaarutyunov-guix's pkg/parser (a participle/v2 grammar over a
// small regex lexer) — the same library, repurposed here to parse a flat
// instruction stream instead of a structured source language.
package replay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is a full parsed instruction listing, line by line.
type Program struct {
	Lines []*Line `( @@ | Newline )*`
}

// Line is either a label declaration or an instruction.
type Line struct {
	Pos   lexer.Position
	Label *LabelDecl   `( @@`
	Instr *Instruction `| @@ )`
}

// LabelDecl is `NAME:`, either a subprogram entry point or MAIN.
type LabelDecl struct {
	Pos  lexer.Position
	Name string `@Ident ":"`
}

// Instruction is a mnemonic with at most one operand.
type Instruction struct {
	Pos      lexer.Position
	Mnemonic string  `@Ident`
	IntArg   *int64  `( @Int`
	FloatArg *string `| @Float`
	StrArg   *string `| @String`
	NameArg  *string `| @Ident )?`
}

// HasOperand reports whether the instruction carries an operand.
func (i *Instruction) HasOperand() bool {
	return i.IntArg != nil || i.FloatArg != nil || i.StrArg != nil || i.NameArg != nil
}

// Operand renders the instruction's operand back to source form, or "" if
// there is none.
func (i *Instruction) Operand() string {
	switch {
	case i.IntArg != nil:
		return strconv.FormatInt(*i.IntArg, 10)
	case i.FloatArg != nil:
		return *i.FloatArg
	case i.StrArg != nil:
		return *i.StrArg
	case i.NameArg != nil:
		return *i.NameArg
	}
	return ""
}

// String reconstructs the original instruction line.
func (i *Instruction) String() string {
	if !i.HasOperand() {
		return i.Mnemonic
	}
	return i.Mnemonic + " " + i.Operand()
}

var vmLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Float", Pattern: `[-+]?\d+\.\d+`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "String", Pattern: `"(?:\\.|[^"\\])*"`},
	{Name: "Colon", Pattern: `:`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
})

var parser = participle.MustBuild[Program](
	participle.Lexer(vmLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses a full instruction listing (as produced by
// internal/codegen.Generate, one instruction or label per line) into a
// Program.
func Parse(source string) (*Program, error) {
	prog, err := parser.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return prog, nil
}

// ParseLines is a convenience wrapper over the generator's []string output.
func ParseLines(lines []string) (*Program, error) {
	return Parse(strings.Join(lines, "\n"))
}

// Render reconstructs the textual listing from a parsed Program, one entry
// per line, labels suffixed with a colon.
func Render(p *Program) []string {
	out := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		switch {
		case l.Label != nil:
			out = append(out, l.Label.Name+":")
		case l.Instr != nil:
			out = append(out, l.Instr.String())
		}
	}
	return out
}
