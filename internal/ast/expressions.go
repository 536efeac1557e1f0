package ast

import (
	"strconv"
	"strings"

	"github.com/pasc-lang/pasc/internal/token"
)

// Var is an identifier used as an expression (a variable read).
type Var struct {
	Tok          token.Token
	Name         string
	ResolvedType *Type
}

func (v *Var) expressionNode()      {}
func (v *Var) TokenLiteral() string { return v.Tok.Literal }
func (v *Var) Pos() token.Position  { return v.Tok.Pos }
func (v *Var) String() string       { return v.Name }

// ArrayAccess is `array-expr[index-expr]`. Target is usually a Var but the
// grammar allows any expression that designates an array.
type ArrayAccess struct {
	Tok          token.Token
	Target       Expression
	Index        Expression
	ResolvedType *Type
}

func (a *ArrayAccess) expressionNode()      {}
func (a *ArrayAccess) TokenLiteral() string { return a.Tok.Literal }
func (a *ArrayAccess) Pos() token.Position  { return a.Tok.Pos }
func (a *ArrayAccess) String() string       { return a.Target.String() + "[" + a.Index.String() + "]" }

// BinOp is a binary operator expression: arithmetic, relational, or
// logical, depending on Op's token type.
type BinOp struct {
	Tok          token.Token
	Left         Expression
	Op           token.Type
	Right        Expression
	ResolvedType *Type
}

func (b *BinOp) expressionNode()      {}
func (b *BinOp) TokenLiteral() string { return b.Tok.Literal }
func (b *BinOp) Pos() token.Position  { return b.Tok.Pos }
func (b *BinOp) String() string {
	return "(" + b.Left.String() + " " + b.Op.String() + " " + b.Right.String() + ")"
}

// UnOp is a prefix unary operator: `-`, `+`, or `not`.
type UnOp struct {
	Tok          token.Token
	Op           token.Type
	Operand      Expression
	ResolvedType *Type
}

func (u *UnOp) expressionNode()      {}
func (u *UnOp) TokenLiteral() string { return u.Tok.Literal }
func (u *UnOp) Pos() token.Position  { return u.Tok.Pos }
func (u *UnOp) String() string       { return "(" + u.Op.String() + u.Operand.String() + ")" }

// LiteralKind distinguishes the four literal forms the lexer can produce.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	RealLiteral
	StringLiteral
	BoolLiteral
)

// Literal is a constant value written directly in source: an integer, a
// real, a string, or a boolean (`true`/`false`).
type Literal struct {
	Tok          token.Token
	Kind         LiteralKind
	IntValue     int64
	RealValue    float64
	StringValue  string
	BoolValue    bool
	ResolvedType *Type
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Tok.Literal }
func (l *Literal) Pos() token.Position  { return l.Tok.Pos }
func (l *Literal) String() string {
	switch l.Kind {
	case IntLiteral:
		return strconv.FormatInt(l.IntValue, 10)
	case RealLiteral:
		return strconv.FormatFloat(l.RealValue, 'g', -1, 64)
	case StringLiteral:
		return "'" + l.StringValue + "'"
	case BoolLiteral:
		return strconv.FormatBool(l.BoolValue)
	}
	return l.Tok.Literal
}

// FuncCall invokes a user function or the `length` builtin as an
// expression. IsLength distinguishes the builtin, which the parser
// recognizes syntactically per spec.md §4.2 rather than by symbol lookup.
type FuncCall struct {
	Tok      token.Token
	Name     *Ident
	Args     []Expression
	IsLength bool

	ResolvedType *Type
}

func (f *FuncCall) expressionNode()      {}
func (f *FuncCall) TokenLiteral() string { return f.Tok.Literal }
func (f *FuncCall) Pos() token.Position  { return f.Tok.Pos }
func (f *FuncCall) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	name := "length"
	if !f.IsLength {
		name = f.Name.String()
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}
