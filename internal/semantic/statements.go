package semantic

import (
	"strings"

	"github.com/pasc-lang/pasc/internal/ast"
)

func (a *Analyzer) analyzeCompound(c *ast.Compound) error {
	for _, stmt := range c.Statements {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.NoOp:
		return nil
	case *ast.Compound:
		return a.analyzeCompound(s)
	case *ast.Assign:
		return a.analyzeAssign(s)
	case *ast.If:
		return a.analyzeIf(s)
	case *ast.While:
		return a.analyzeWhile(s)
	case *ast.For:
		return a.analyzeFor(s)
	case *ast.Repeat:
		return a.analyzeRepeat(s)
	case *ast.ProcCall:
		return a.analyzeProcCall(s)
	}
	return a.semErr(stmt, "unsupported statement")
}

// analyzeAssign checks `target := value`: types must match exactly, with
// the single allowed implicit promotion integer -> real on the right.
func (a *Analyzer) analyzeAssign(s *ast.Assign) error {
	targetType, err := a.analyzeLValue(s.Left)
	if err != nil {
		return err
	}
	valueType, err := a.analyzeExpression(s.Right)
	if err != nil {
		return err
	}
	if targetType.Equal(valueType) {
		return nil
	}
	if targetType.Equal(realType) && valueType.Equal(integerType) {
		return nil
	}
	return a.semErr(s, "cannot assign %s to %s", valueType, targetType)
}

// analyzeLValue checks that s.Left is a Var or ArrayAccess and resolves its
// type, without requiring it to be an Expression in general usage.
func (a *Analyzer) analyzeLValue(expr ast.Expression) (*ast.Type, error) {
	switch e := expr.(type) {
	case *ast.Var:
		return a.analyzeVar(e)
	case *ast.ArrayAccess:
		return a.analyzeArrayAccess(e)
	}
	return nil, a.semErr(expr, "invalid assignment target")
}

func (a *Analyzer) analyzeIf(s *ast.If) error {
	condType, err := a.analyzeExpression(s.Condition)
	if err != nil {
		return err
	}
	if !condType.Equal(booleanType) {
		return a.semErr(s.Condition, "if condition must be boolean, got %s", condType)
	}
	if err := a.analyzeStatement(s.Then); err != nil {
		return err
	}
	if s.Else != nil {
		return a.analyzeStatement(s.Else)
	}
	return nil
}

func (a *Analyzer) analyzeWhile(s *ast.While) error {
	condType, err := a.analyzeExpression(s.Condition)
	if err != nil {
		return err
	}
	if !condType.Equal(booleanType) {
		return a.semErr(s.Condition, "while condition must be boolean, got %s", condType)
	}
	return a.analyzeStatement(s.Body)
}

func (a *Analyzer) analyzeRepeat(s *ast.Repeat) error {
	for _, stmt := range s.Body {
		if err := a.analyzeStatement(stmt); err != nil {
			return err
		}
	}
	condType, err := a.analyzeExpression(s.Condition)
	if err != nil {
		return err
	}
	if !condType.Equal(booleanType) {
		return a.semErr(s.Condition, "until condition must be boolean, got %s", condType)
	}
	return nil
}

// analyzeFor checks that the loop variable is an existing integer variable
// in scope, and that both bound expressions are integer.
func (a *Analyzer) analyzeFor(s *ast.For) error {
	sym, ok := a.Symbols.Lookup(s.Var.Value)
	if !ok {
		return a.semErr(s.Var, "undeclared identifier %q", s.Var.Value)
	}
	if sym.Kind == FuncSymbol || sym.Kind == ProcSymbol || !sym.Type.Equal(integerType) {
		return a.semErr(s.Var, "for-loop variable %q must be an integer variable", s.Var.Value)
	}
	fromType, err := a.analyzeExpression(s.From)
	if err != nil {
		return err
	}
	if !fromType.Equal(integerType) {
		return a.semErr(s.From, "for-loop start value must be integer, got %s", fromType)
	}
	toType, err := a.analyzeExpression(s.To)
	if err != nil {
		return err
	}
	if !toType.Equal(integerType) {
		return a.semErr(s.To, "for-loop end value must be integer, got %s", toType)
	}
	return a.analyzeStatement(s.Body)
}

// analyzeProcCall handles readln/writeln (arity-free builtins) and
// user-declared procedure calls.
func (a *Analyzer) analyzeProcCall(s *ast.ProcCall) error {
	name := s.Name.Value
	switch strings.ToLower(name) {
	case "writeln":
		for _, arg := range s.Args {
			if _, err := a.analyzeExpression(arg); err != nil {
				return err
			}
		}
		return nil
	case "readln":
		for _, arg := range s.Args {
			if _, err := a.analyzeLValue(arg); err != nil {
				return err
			}
		}
		return nil
	}

	sym, ok := a.Symbols.Lookup(name)
	if !ok {
		return a.semErr(s, "undeclared identifier %q", name)
	}
	if sym.Kind != ProcSymbol {
		return a.semErr(s, "%q is not a procedure", name)
	}
	argTypes := make([]*ast.Type, len(s.Args))
	for i, arg := range s.Args {
		t, err := a.analyzeExpression(arg)
		if err != nil {
			return err
		}
		argTypes[i] = t
	}
	return a.checkCallArgs(s, name, argTypes)
}

// checkCallArgs validates a call's argument count and types against the
// declared signature, allowing the same integer->real promotion used for
// assignment.
func (a *Analyzer) checkCallArgs(site ast.Node, name string, argTypes []*ast.Type) error {
	params, ok := a.signatures[normalizeName(name)]
	if !ok {
		return nil
	}
	if len(argTypes) != len(params) {
		return a.semErr(site, "%q expects %d argument(s), got %d", name, len(params), len(argTypes))
	}
	for i, pt := range params {
		at := argTypes[i]
		if pt.Equal(at) {
			continue
		}
		if pt.Equal(realType) && at.Equal(integerType) {
			continue
		}
		return a.semErr(site, "argument %d to %q: cannot use %s as %s", i+1, name, at, pt)
	}
	return nil
}
