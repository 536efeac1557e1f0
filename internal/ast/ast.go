// Package ast defines the Abstract Syntax Tree node types for the
// Pascal-subset language: programs, declarations, statements and
// expressions.
package ast

import (
	"bytes"
	"fmt"

	"github.com/pasc-lang/pasc/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action but produces no value.
type Statement interface {
	Node
	statementNode()
}

// Type names a declared type: a scalar (integer/real/boolean/string) or a
// 1-D array of a scalar with inclusive bounds. Unlike the teacher's
// interface-based type system (types.Type, with Integer/Float/Boolean/...
// concrete implementations), this dialect has a closed, flat type universe,
// so a single struct is enough; Elem is non-nil only for ARRAY.
type Type struct {
	Name string // "integer", "real", "boolean", "string", or "array"
	Elem *Type  // element type, only set when Name == "array"
	Low  int    // inclusive lower bound, only meaningful for arrays
	High int    // inclusive upper bound, only meaningful for arrays
}

func (t *Type) String() string {
	if t == nil {
		return "<untyped>"
	}
	if t.Name == "array" {
		return fmt.Sprintf("array[%d..%d] of %s", t.Low, t.High, t.Elem.String())
	}
	return t.Name
}

// IsScalar reports whether t is one of the four scalar types.
func (t *Type) IsScalar() bool { return t != nil && t.Name != "array" }

// Equal reports structural equality between two types.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Name != other.Name {
		return false
	}
	if t.Name != "array" {
		return true
	}
	return t.Low == other.Low && t.High == other.High && t.Elem.Equal(other.Elem)
}

// Program is the root node: a program name and a single top-level block.
type Program struct {
	Name  *Ident
	Block *Block
	Tok   token.Token
}

func (p *Program) TokenLiteral() string { return p.Tok.Literal }
func (p *Program) Pos() token.Position  { return p.Tok.Pos }
func (p *Program) String() string {
	var out bytes.Buffer
	out.WriteString("program ")
	out.WriteString(p.Name.String())
	out.WriteString(";\n")
	out.WriteString(p.Block.String())
	out.WriteString(".")
	return out.String()
}

// Block groups the declarations and the compound statement of a program,
// procedure, or function body.
type Block struct {
	VarDecls       []*VarDecl
	ProcedureDecls []*ProcedureDecl
	FunctionDecls  []*FunctionDecl
	Body           *Compound
}

func (b *Block) TokenLiteral() string { return "block" }
func (b *Block) Pos() token.Position  { return b.Body.Pos() }
func (b *Block) String() string {
	var out bytes.Buffer
	for _, v := range b.VarDecls {
		out.WriteString(v.String())
		out.WriteString("\n")
	}
	for _, p := range b.ProcedureDecls {
		out.WriteString(p.String())
		out.WriteString("\n")
	}
	for _, f := range b.FunctionDecls {
		out.WriteString(f.String())
		out.WriteString("\n")
	}
	out.WriteString(b.Body.String())
	return out.String()
}

// Ident is a bare identifier reference (used for names, not as an
// expression in its own right — see Var for identifier expressions).
type Ident struct {
	Tok   token.Token
	Value string
}

func (i *Ident) TokenLiteral() string { return i.Tok.Literal }
func (i *Ident) Pos() token.Position  { return i.Tok.Pos }
func (i *Ident) String() string       { return i.Value }
