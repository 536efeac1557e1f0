package codegen

import (
	"strings"

	"github.com/pasc-lang/pasc/internal/ast"
)

func (g *Generator) genCompound(c *ast.Compound) error {
	for _, stmt := range c.Statements {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.NoOp:
		return nil
	case *ast.Compound:
		return g.genCompound(s)
	case *ast.Assign:
		return g.genAssign(s)
	case *ast.If:
		return g.genIf(s)
	case *ast.While:
		return g.genWhile(s)
	case *ast.For:
		return g.genFor(s)
	case *ast.Repeat:
		return g.genRepeat(s)
	case *ast.ProcCall:
		return g.genProcCall(s)
	}
	return g.genCodeGenError(stmt, "unsupported statement %T", stmt)
}

// genAssign lowers `target := value`. Plain-variable targets evaluate and
// store directly; array-element targets follow the "value first, then
// spill" convention of spec.md §4.4's "Array access (store)".
func (g *Generator) genAssign(s *ast.Assign) error {
	switch target := s.Left.(type) {
	case *ast.Var:
		if err := g.genExpression(s.Right); err != nil {
			return err
		}
		g.coerce(resultType(s.Right), target.ResolvedType)
		g.storePlace(target.Name)
		return nil
	case *ast.ArrayAccess:
		return g.genArrayStore(target, s.Right)
	}
	return g.genCodeGenError(s, "invalid assignment target %T", s.Left)
}

// genArrayStore implements "Array access (store)": evaluate the value,
// spill it, push the base and adjusted index, reload the value, STOREN.
func (g *Generator) genArrayStore(target *ast.ArrayAccess, value ast.Expression) error {
	arrType := resultType(target.Target)
	if arrType == nil || arrType.Name != "array" {
		return g.genCodeGenError(target, "assignment into a string character is not supported")
	}

	if err := g.genExpression(value); err != nil {
		return err
	}
	g.coerce(resultType(value), arrType.Elem)
	tmp := g.tempSlot(g.spillDepth)
	g.emitf("STOREG %d", tmp)

	v, ok := target.Target.(*ast.Var)
	if !ok {
		return g.genCodeGenError(target, "array store target must be a plain variable")
	}
	g.loadPlace(v.Name)
	if err := g.genExpression(target.Index); err != nil {
		return err
	}
	g.adjustIndex(arrType.Low)
	g.emitf("PUSHG %d", tmp)
	g.emit("STOREN")
	return nil
}

// genIf lowers if/then/else. Without an else clause the JUMP to L_end is
// still emitted and L_else == L_end, per spec.md §4.4.
func (g *Generator) genIf(s *ast.If) error {
	if err := g.genExpression(s.Condition); err != nil {
		return err
	}
	elseLabel := g.newLabel("L")
	endLabel := elseLabel
	if s.Else != nil {
		endLabel = g.newLabel("L")
	}
	g.emitf("JZ %s", elseLabel)
	if err := g.genStatement(s.Then); err != nil {
		return err
	}
	g.emitf("JUMP %s", endLabel)
	g.emitf("%s:", elseLabel)
	if s.Else != nil {
		if err := g.genStatement(s.Else); err != nil {
			return err
		}
		g.emitf("%s:", endLabel)
	}
	return nil
}

func (g *Generator) genWhile(s *ast.While) error {
	top := g.newLabel("L")
	end := g.newLabel("L")
	g.emitf("%s:", top)
	if err := g.genExpression(s.Condition); err != nil {
		return err
	}
	g.emitf("JZ %s", end)
	if err := g.genStatement(s.Body); err != nil {
		return err
	}
	g.emitf("JUMP %s", top)
	g.emitf("%s:", end)
	return nil
}

func (g *Generator) genRepeat(s *ast.Repeat) error {
	top := g.newLabel("L")
	g.emitf("%s:", top)
	for _, stmt := range s.Body {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}
	if err := g.genExpression(s.Condition); err != nil {
		return err
	}
	g.emitf("JZ %s", top)
	return nil
}

// genFor lowers for/to|downto/do. The end bound is re-evaluated on every
// iteration, matching spec.md §4.4's explicit note.
func (g *Generator) genFor(s *ast.For) error {
	if err := g.genExpression(s.From); err != nil {
		return err
	}
	g.storePlace(s.Var.Value)

	top := g.newLabel("L")
	end := g.newLabel("L")
	g.emitf("%s:", top)
	g.loadPlace(s.Var.Value)
	if err := g.genExpression(s.To); err != nil {
		return err
	}
	if s.Down {
		g.emit("SUPEQ")
	} else {
		g.emit("INFEQ")
	}
	g.emitf("JZ %s", end)
	if err := g.genStatement(s.Body); err != nil {
		return err
	}
	g.loadPlace(s.Var.Value)
	if s.Down {
		g.emit("PUSHI -1")
	} else {
		g.emit("PUSHI 1")
	}
	g.emit("ADD")
	g.storePlace(s.Var.Value)
	g.emitf("JUMP %s", top)
	g.emitf("%s:", end)
	return nil
}

// genProcCall lowers readln/writeln and user procedure calls.
func (g *Generator) genProcCall(s *ast.ProcCall) error {
	switch strings.ToLower(s.Name.Value) {
	case "writeln":
		return g.genWriteln(s.Args)
	case "readln":
		return g.genReadln(s.Args)
	}
	for _, arg := range s.Args {
		if err := g.genExpression(arg); err != nil {
			return err
		}
	}
	g.emitf("PUSHA %s", label(s.Name.Value))
	g.emit("CALL")
	return nil
}

// genWriteln evaluates each argument, emitting the matching write opcode,
// then a single trailing WRITELN.
func (g *Generator) genWriteln(args []ast.Expression) error {
	for _, arg := range args {
		if err := g.genExpression(arg); err != nil {
			return err
		}
		switch t := resultType(arg); {
		case t.Equal(realType):
			g.emit("WRITEF")
		case t.Equal(stringType):
			g.emit("WRITES")
		default:
			g.emit("WRITEI")
		}
	}
	g.emit("WRITELN")
	return nil
}

// genReadln reads one line per argument, parses it to the target type,
// and stores into the target variable or array element.
func (g *Generator) genReadln(args []ast.Expression) error {
	for _, arg := range args {
		g.emit("READ")
		t := resultType(arg)
		switch {
		case t.Equal(integerType), t.Equal(booleanType):
			g.emit("ATOI")
		case t.Equal(realType):
			g.emit("ATOF")
		}

		switch target := arg.(type) {
		case *ast.Var:
			g.storePlace(target.Name)
		case *ast.ArrayAccess:
			arrType := resultType(target.Target)
			if arrType == nil || arrType.Name != "array" {
				return g.genCodeGenError(target, "assignment into a string character is not supported")
			}
			tmp := g.tempSlot(g.spillDepth)
			g.emitf("STOREG %d", tmp)
			v, ok := target.Target.(*ast.Var)
			if !ok {
				return g.genCodeGenError(target, "array store target must be a plain variable")
			}
			g.loadPlace(v.Name)
			if err := g.genExpression(target.Index); err != nil {
				return err
			}
			g.adjustIndex(arrType.Low)
			g.emitf("PUSHG %d", tmp)
			g.emit("STOREN")
		default:
			return g.genCodeGenError(arg, "invalid readln target %T", arg)
		}
	}
	return nil
}
