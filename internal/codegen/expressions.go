package codegen

import (
	"strconv"
	"strings"

	"github.com/pasc-lang/pasc/internal/ast"
	"github.com/pasc-lang/pasc/internal/token"
)

// The type universe codegen needs to reason about is the same closed set
// the semantic analyzer checks against; these mirror internal/semantic's
// package-level sentinels so codegen never has to re-derive them.
var (
	integerType = &ast.Type{Name: "integer"}
	realType    = &ast.Type{Name: "real"}
	booleanType = &ast.Type{Name: "boolean"}
	stringType  = &ast.Type{Name: "string"}
)

// resultType recovers the type an already-analyzed expression was resolved
// to, so codegen can pick opcodes and coercions without re-running
// inference.
func resultType(expr ast.Expression) *ast.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.ResolvedType
	case *ast.Var:
		return e.ResolvedType
	case *ast.ArrayAccess:
		return e.ResolvedType
	case *ast.BinOp:
		return e.ResolvedType
	case *ast.UnOp:
		return e.ResolvedType
	case *ast.FuncCall:
		return e.ResolvedType
	}
	return nil
}

// coerce emits ITOF when an integer-typed value on top of the stack must
// match a real-typed destination (assignment, array-element store, etc).
func (g *Generator) coerce(from, to *ast.Type) {
	if from.Equal(integerType) && to.Equal(realType) {
		g.emit("ITOF")
	}
}

func (g *Generator) genExpression(expr ast.Expression) error {
	switch e := expr.(type) {
	case *ast.Literal:
		return g.genLiteral(e)
	case *ast.Var:
		g.loadPlace(e.Name)
		return nil
	case *ast.ArrayAccess:
		return g.genArrayLoad(e)
	case *ast.BinOp:
		return g.genBinOp(e)
	case *ast.UnOp:
		return g.genUnOp(e)
	case *ast.FuncCall:
		return g.genFuncCall(e)
	}
	return g.genCodeGenError(expr, "unsupported expression %T", expr)
}

func (g *Generator) genLiteral(l *ast.Literal) error {
	switch l.Kind {
	case ast.IntLiteral:
		g.emitf("PUSHI %d", l.IntValue)
	case ast.RealLiteral:
		g.emitf("PUSHF %s", formatReal(l.RealValue))
	case ast.StringLiteral:
		g.emitf("PUSHS \"%s\"", escapeString(l.StringValue))
	case ast.BoolLiteral:
		if l.BoolValue {
			g.emit("PUSHI 1")
		} else {
			g.emit("PUSHI 0")
		}
	default:
		return g.genCodeGenError(l, "unsupported literal kind %v", l.Kind)
	}
	return nil
}

// formatReal renders a float64 with at least one fractional digit, matching
// spec.md §6's `PUSHF n.n` operand syntax.
func formatReal(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// genArrayLoad implements "Array access (load)": push base, push adjusted
// index, LOADN — or, for a string target, CHARAT with a fixed low bound
// of 1.
func (g *Generator) genArrayLoad(ac *ast.ArrayAccess) error {
	v, ok := ac.Target.(*ast.Var)
	if !ok {
		return g.genCodeGenError(ac, "array access target must be a plain variable")
	}
	targetType := resultType(ac.Target)

	g.loadPlace(v.Name)
	if err := g.genExpression(ac.Index); err != nil {
		return err
	}
	if targetType.Equal(stringType) {
		g.adjustIndex(1)
		g.emit("CHARAT")
		return nil
	}
	g.adjustIndex(targetType.Low)
	g.emit("LOADN")
	return nil
}

// singleCharCode reports whether expr is a one-character string literal,
// returning its character code.
func singleCharCode(expr ast.Expression) (int64, bool) {
	lit, ok := expr.(*ast.Literal)
	if !ok || lit.Kind != ast.StringLiteral || len(lit.StringValue) != 1 {
		return 0, false
	}
	return int64(lit.StringValue[0]), true
}

// genBinOp implements spec.md §4.4's mandatory operand-spilling protocol:
// evaluate and spill the left operand to a depth-indexed temp slot,
// evaluate the right operand, reload and SWAP to restore source order,
// coerce to a common type, then emit the opcode for (operator, result
// type).
func (g *Generator) genBinOp(b *ast.BinOp) error {
	if (b.Op == token.EQ || b.Op == token.NE) && charCodeRewriteApplies(b) {
		return g.genCharCodeCompare(b)
	}

	depth := g.spillDepth
	g.spillDepth++
	defer func() { g.spillDepth = depth }()

	if err := g.genExpression(b.Left); err != nil {
		return err
	}
	tmp := g.tempSlot(depth)
	g.emitf("STOREG %d", tmp)

	if err := g.genExpression(b.Right); err != nil {
		return err
	}
	g.emitf("PUSHG %d", tmp)
	g.emit("SWAP")

	leftType, rightType := resultType(b.Left), resultType(b.Right)
	g.coerceBinaryOperands(leftType, rightType, b.Op)

	return g.emitBinOpcode(b, leftType, rightType)
}

// charCodeRewriteApplies reports whether b is an =/<> comparison between a
// single-character string literal and a non-literal expression, per
// spec.md §4.4's special case.
func charCodeRewriteApplies(b *ast.BinOp) bool {
	_, leftIsChar := singleCharCode(b.Left)
	_, rightIsChar := singleCharCode(b.Right)
	if leftIsChar == rightIsChar {
		return false // both or neither are single-char literals
	}
	_, leftIsLiteral := b.Left.(*ast.Literal)
	_, rightIsLiteral := b.Right.(*ast.Literal)
	return !(leftIsLiteral && rightIsLiteral)
}

// genCharCodeCompare rewrites the single-character-literal side into its
// character code and compares as integers, per spec.md §4.4.
func (g *Generator) genCharCodeCompare(b *ast.BinOp) error {
	depth := g.spillDepth
	g.spillDepth++
	defer func() { g.spillDepth = depth }()

	emitSide := func(expr ast.Expression) error {
		if code, ok := singleCharCode(expr); ok {
			g.emitf("PUSHI %d", code)
			return nil
		}
		return g.genExpression(expr)
	}

	if err := emitSide(b.Left); err != nil {
		return err
	}
	tmp := g.tempSlot(depth)
	g.emitf("STOREG %d", tmp)
	if err := emitSide(b.Right); err != nil {
		return err
	}
	g.emitf("PUSHG %d", tmp)
	g.emit("SWAP")

	g.emit("EQUAL")
	if b.Op == token.NE {
		g.emit("NOT")
	}
	return nil
}

// coerceBinaryOperands promotes an integer operand to real when the other
// side is real, for operators whose result type may vary with its
// operands (the +/-/* family and comparisons; div/mod are integer-only and
// never reach here with mixed types). For / every integer operand is
// promoted, since its result is always real.
func (g *Generator) coerceBinaryOperands(left, right *ast.Type, op token.Type) {
	switch op {
	case token.DIV, token.MOD, token.AND, token.OR:
		return
	case token.SLASH:
		if right.Equal(integerType) {
			g.emit("ITOF")
		}
		if left.Equal(integerType) {
			g.emit("SWAP")
			g.emit("ITOF")
			g.emit("SWAP")
		}
		return
	}
	switch {
	case left.Equal(realType) && right.Equal(integerType):
		// right (top of stack) needs promotion.
		g.emit("ITOF")
	case left.Equal(integerType) && right.Equal(realType):
		// left (the deeper operand) needs promotion.
		g.emit("SWAP")
		g.emit("ITOF")
		g.emit("SWAP")
	}
}

// emitBinOpcode picks the VM mnemonic for (operator, result type), after
// operands have been evaluated, spilled, reloaded and coerced.
func (g *Generator) emitBinOpcode(b *ast.BinOp, leftType, rightType *ast.Type) error {
	real := leftType.Equal(realType) || rightType.Equal(realType)

	switch b.Op {
	case token.PLUS:
		g.emit(pick(real, "FADD", "ADD"))
	case token.MINUS:
		g.emit(pick(real, "FSUB", "SUB"))
	case token.TIMES:
		g.emit(pick(real, "FMUL", "MUL"))
	case token.SLASH:
		g.emit("FDIV")
	case token.DIV:
		g.emit("DIV")
	case token.MOD:
		g.emit("MOD")
	case token.AND:
		g.emit("AND")
	case token.OR:
		g.emit("OR")
	case token.LT:
		g.emit(pick(real, "FINF", "INF"))
	case token.LE:
		g.emit(pick(real, "FINFEQ", "INFEQ"))
	case token.GT:
		g.emit(pick(real, "FSUP", "SUP"))
	case token.GE:
		g.emit(pick(real, "FSUPEQ", "SUPEQ"))
	case token.EQ:
		g.emit("EQUAL")
	case token.NE:
		g.emit("EQUAL")
		g.emit("NOT")
	default:
		return g.genCodeGenError(b, "unsupported operator %s", b.Op)
	}
	return nil
}

func pick(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// genUnOp lowers not/unary-minus/unary-plus. Unary plus is a no-op: its
// operand is already on the stack with the right value and type.
func (g *Generator) genUnOp(u *ast.UnOp) error {
	if u.Op == token.PLUS {
		return g.genExpression(u.Operand)
	}
	if err := g.genExpression(u.Operand); err != nil {
		return err
	}
	switch u.Op {
	case token.NOT:
		g.emit("NOT")
	case token.MINUS:
		operandType := resultType(u.Operand)
		if operandType.Equal(realType) {
			g.emit("PUSHF 0.0")
			g.emit("SWAP")
			g.emit("FSUB")
		} else {
			g.emit("PUSHI 0")
			g.emit("SWAP")
			g.emit("SUB")
		}
	default:
		return g.genCodeGenError(u, "unsupported unary operator %s", u.Op)
	}
	return nil
}

// genFuncCall lowers length() and user function calls used in expression
// position.
func (g *Generator) genFuncCall(f *ast.FuncCall) error {
	if f.IsLength {
		return g.genLength(f)
	}
	for _, arg := range f.Args {
		if err := g.genExpression(arg); err != nil {
			return err
		}
	}
	g.emitf("PUSHA %s", label(f.Name.Value))
	g.emit("CALL")
	g.emitf("PUSHG %d", g.retvalSlot)
	return nil
}

// genLength follows spec.md §4.4's literal instructions: evaluate the
// argument, and unless it is already a string, stringify it first with
// STRI before STRLEN. This is applied faithfully even for array arguments,
// a known quirk inherited from the specification (see §9).
func (g *Generator) genLength(f *ast.FuncCall) error {
	arg := f.Args[0]
	if err := g.genExpression(arg); err != nil {
		return err
	}
	if !resultType(arg).Equal(stringType) {
		g.emit("STRI")
	}
	g.emit("STRLEN")
	return nil
}
