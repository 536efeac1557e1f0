package ast

import (
	"bytes"
	"strings"

	"github.com/pasc-lang/pasc/internal/token"
)

// VarDecl declares one or more names of the same type, the way spec.md's
// grammar groups `var` entries: `x, y, z : integer;`.
type VarDecl struct {
	Tok          token.Token
	Names        []*Ident
	Type         *TypeExpr
	ResolvedType *Type // filled in by the semantic analyzer
}

func (v *VarDecl) statementNode()       {}
func (v *VarDecl) TokenLiteral() string { return v.Tok.Literal }
func (v *VarDecl) Pos() token.Position  { return v.Tok.Pos }
func (v *VarDecl) String() string {
	names := make([]string, len(v.Names))
	for i, n := range v.Names {
		names[i] = n.String()
	}
	return strings.Join(names, ", ") + " : " + v.Type.String() + ";"
}

// TypeExpr is the syntactic spelling of a type in a declaration: a bare
// scalar name, or `array[low..high] of elem`.
type TypeExpr struct {
	Tok       token.Token
	Name      string // "integer", "real", "boolean", "string", "array"
	Low, High int
	Elem      *TypeExpr
}

func (t *TypeExpr) TokenLiteral() string { return t.Tok.Literal }
func (t *TypeExpr) Pos() token.Position  { return t.Tok.Pos }
func (t *TypeExpr) String() string {
	if t.Name != "array" {
		return t.Name
	}
	var out bytes.Buffer
	out.WriteString("array[")
	out.WriteString(itoa(t.Low))
	out.WriteString("..")
	out.WriteString(itoa(t.High))
	out.WriteString("] of ")
	out.WriteString(t.Elem.String())
	return out.String()
}

func itoa(n int) string {
	neg := n < 0
	if n == 0 {
		return "0"
	}
	if neg {
		n = -n
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

// Param is one formal parameter of a procedure or function.
type Param struct {
	Tok  token.Token
	Name *Ident
	Type *TypeExpr
}

func (p *Param) TokenLiteral() string { return p.Tok.Literal }
func (p *Param) Pos() token.Position  { return p.Tok.Pos }
func (p *Param) String() string       { return p.Name.String() + " : " + p.Type.String() }

// ProcedureDecl declares a procedure: name, parameters, and a body block.
type ProcedureDecl struct {
	Tok    token.Token
	Name   *Ident
	Params []*Param
	Block  *Block
}

func (p *ProcedureDecl) statementNode()       {}
func (p *ProcedureDecl) TokenLiteral() string { return p.Tok.Literal }
func (p *ProcedureDecl) Pos() token.Position  { return p.Tok.Pos }
func (p *ProcedureDecl) String() string {
	var out bytes.Buffer
	out.WriteString("procedure ")
	out.WriteString(p.Name.String())
	out.WriteString(paramList(p.Params))
	out.WriteString(";\n")
	out.WriteString(p.Block.String())
	out.WriteString(";")
	return out.String()
}

// FunctionDecl declares a function: name, parameters, return type, and a
// body block whose implicit return symbol shares the function's name.
type FunctionDecl struct {
	Tok        token.Token
	Name       *Ident
	Params     []*Param
	ReturnType *TypeExpr
	Block      *Block
}

func (f *FunctionDecl) statementNode()       {}
func (f *FunctionDecl) TokenLiteral() string { return f.Tok.Literal }
func (f *FunctionDecl) Pos() token.Position  { return f.Tok.Pos }
func (f *FunctionDecl) String() string {
	var out bytes.Buffer
	out.WriteString("function ")
	out.WriteString(f.Name.String())
	out.WriteString(paramList(f.Params))
	out.WriteString(" : ")
	out.WriteString(f.ReturnType.String())
	out.WriteString(";\n")
	out.WriteString(f.Block.String())
	out.WriteString(";")
	return out.String()
}

func paramList(params []*Param) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, "; ") + ")"
}
