package semantic

import (
	"strings"

	"github.com/pasc-lang/pasc/internal/ast"
	"github.com/pasc-lang/pasc/internal/token"
)

func (a *Analyzer) analyzeExpression(expr ast.Expression) (*ast.Type, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return a.analyzeLiteral(e)
	case *ast.Var:
		return a.analyzeVar(e)
	case *ast.ArrayAccess:
		return a.analyzeArrayAccess(e)
	case *ast.BinOp:
		return a.analyzeBinOp(e)
	case *ast.UnOp:
		return a.analyzeUnOp(e)
	case *ast.FuncCall:
		return a.analyzeFuncCall(e)
	}
	return nil, a.semErr(expr, "unsupported expression")
}

func (a *Analyzer) analyzeLiteral(l *ast.Literal) (*ast.Type, error) {
	var t *ast.Type
	switch l.Kind {
	case ast.IntLiteral:
		t = integerType
	case ast.RealLiteral:
		t = realType
	case ast.StringLiteral:
		t = stringType
	case ast.BoolLiteral:
		t = booleanType
	}
	l.ResolvedType = t
	return t, nil
}

func (a *Analyzer) analyzeVar(v *ast.Var) (*ast.Type, error) {
	sym, ok := a.Symbols.Lookup(v.Name)
	if !ok {
		return nil, a.semErr(v, "undeclared identifier %q", v.Name)
	}
	if sym.Kind == ProcSymbol || (sym.Kind == FuncSymbol && sym.Type == nil) {
		return nil, a.semErr(v, "%q is not a value", v.Name)
	}
	v.ResolvedType = sym.Type
	return sym.Type, nil
}

// analyzeArrayAccess checks `target[index]`. target must be an array (or a
// string, indexable as a source of character codes per spec.md §4.4); the
// index must be integer.
func (a *Analyzer) analyzeArrayAccess(ac *ast.ArrayAccess) (*ast.Type, error) {
	targetType, err := a.analyzeExpression(ac.Target)
	if err != nil {
		return nil, err
	}
	indexType, err := a.analyzeExpression(ac.Index)
	if err != nil {
		return nil, err
	}
	if !indexType.Equal(integerType) {
		return nil, a.semErr(ac.Index, "array index must be integer, got %s", indexType)
	}
	switch {
	case targetType.Name == "array":
		ac.ResolvedType = targetType.Elem
		return targetType.Elem, nil
	case targetType.Equal(stringType):
		ac.ResolvedType = integerType
		return integerType, nil
	}
	return nil, a.semErr(ac.Target, "cannot index into %s", targetType)
}

func isNumeric(t *ast.Type) bool { return t.Equal(integerType) || t.Equal(realType) }

// analyzeBinOp implements spec.md §4.3's arithmetic/comparison/logical
// rules.
func (a *Analyzer) analyzeBinOp(b *ast.BinOp) (*ast.Type, error) {
	leftType, err := a.analyzeExpression(b.Left)
	if err != nil {
		return nil, err
	}
	rightType, err := a.analyzeExpression(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case token.PLUS, token.MINUS, token.TIMES:
		if !isNumeric(leftType) || !isNumeric(rightType) {
			return nil, a.semErr(b, "operator %s requires numeric operands, got %s and %s", b.Op, leftType, rightType)
		}
		result := integerType
		if leftType.Equal(realType) || rightType.Equal(realType) {
			result = realType
		}
		b.ResolvedType = result
		return result, nil
	case token.DIV, token.MOD:
		// div/mod have no real-valued VM opcode; both operands must already
		// be integer, unlike +/-/* which tolerate int/real mixing.
		if !leftType.Equal(integerType) || !rightType.Equal(integerType) {
			return nil, a.semErr(b, "operator %s requires integer operands, got %s and %s", b.Op, leftType, rightType)
		}
		b.ResolvedType = integerType
		return integerType, nil
	case token.SLASH:
		if !isNumeric(leftType) || !isNumeric(rightType) {
			return nil, a.semErr(b, "operator / requires numeric operands, got %s and %s", leftType, rightType)
		}
		b.ResolvedType = realType
		return realType, nil
	case token.EQ, token.NE, token.LT, token.LE, token.GT, token.GE:
		if !a.comparable(leftType, rightType) {
			return nil, a.semErr(b, "cannot compare %s with %s", leftType, rightType)
		}
		b.ResolvedType = booleanType
		return booleanType, nil
	case token.AND, token.OR:
		if !leftType.Equal(booleanType) || !rightType.Equal(booleanType) {
			return nil, a.semErr(b, "operator %s requires boolean operands, got %s and %s", b.Op, leftType, rightType)
		}
		b.ResolvedType = booleanType
		return booleanType, nil
	}
	return nil, a.semErr(b, "unsupported operator %s", b.Op)
}

func (a *Analyzer) comparable(left, right *ast.Type) bool {
	if isNumeric(left) && isNumeric(right) {
		return true
	}
	return left.Equal(right) && (left.Equal(stringType) || left.Equal(booleanType))
}

func (a *Analyzer) analyzeUnOp(u *ast.UnOp) (*ast.Type, error) {
	operandType, err := a.analyzeExpression(u.Operand)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case token.NOT:
		if !operandType.Equal(booleanType) {
			return nil, a.semErr(u, "operator not requires boolean operand, got %s", operandType)
		}
		u.ResolvedType = booleanType
		return booleanType, nil
	case token.MINUS, token.PLUS:
		if !isNumeric(operandType) {
			return nil, a.semErr(u, "unary %s requires numeric operand, got %s", u.Op, operandType)
		}
		u.ResolvedType = operandType
		return operandType, nil
	}
	return nil, a.semErr(u, "unsupported unary operator %s", u.Op)
}

// analyzeFuncCall handles both `length(e)` and user function calls.
// Unresolved callees are reported per spec.md §4.3's name-resolution rule.
func (a *Analyzer) analyzeFuncCall(f *ast.FuncCall) (*ast.Type, error) {
	if f.IsLength {
		argType, err := a.analyzeExpression(f.Args[0])
		if err != nil {
			return nil, err
		}
		if !argType.Equal(stringType) && argType.Name != "array" {
			return nil, a.semErr(f, "length() requires a string or array argument, got %s", argType)
		}
		f.ResolvedType = integerType
		return integerType, nil
	}

	name := f.Name.Value
	if strings.EqualFold(name, "readln") || strings.EqualFold(name, "writeln") {
		return nil, a.semErr(f, "%q cannot be used as an expression", name)
	}

	sym, ok := a.Symbols.Lookup(name)
	if !ok {
		return nil, a.semErr(f, "undeclared identifier %q", name)
	}
	if sym.Kind != FuncSymbol {
		return nil, a.semErr(f, "%q is not a function", name)
	}
	argTypes := make([]*ast.Type, len(f.Args))
	for i, arg := range f.Args {
		t, err := a.analyzeExpression(arg)
		if err != nil {
			return nil, err
		}
		argTypes[i] = t
	}
	if err := a.checkCallArgs(f, name, argTypes); err != nil {
		return nil, err
	}
	f.ResolvedType = sym.Type
	return sym.Type, nil
}
