package parser

import (
	"testing"

	"github.com/pasc-lang/pasc/internal/ast"
	"github.com/pasc-lang/pasc/internal/lexer"
	"github.com/pasc-lang/pasc/internal/token"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src), src, "test.pas")
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestParseMinimalProgram(t *testing.T) {
	prog := parseSource(t, "program Empty; begin end.")
	if prog.Name.Value != "Empty" {
		t.Fatalf("want program name Empty, got %s", prog.Name.Value)
	}
	if len(prog.Block.Body.Statements) != 0 {
		t.Fatalf("want empty body, got %d statements", len(prog.Block.Body.Statements))
	}
}

func TestParseVarDeclGroups(t *testing.T) {
	prog := parseSource(t, `program P;
var
  x, y : integer;
  a : array[1..10] of real;
begin
end.`)
	if len(prog.Block.VarDecls) != 2 {
		t.Fatalf("want 2 var decls, got %d", len(prog.Block.VarDecls))
	}
	if len(prog.Block.VarDecls[0].Names) != 2 {
		t.Fatalf("want 2 names in first decl, got %d", len(prog.Block.VarDecls[0].Names))
	}
	arr := prog.Block.VarDecls[1].Type
	if arr.Name != "array" || arr.Low != 1 || arr.High != 10 || arr.Elem.Name != "real" {
		t.Fatalf("bad array type: %+v", arr)
	}
}

func TestParseDanglingElseBindsToNearestIf(t *testing.T) {
	prog := parseSource(t, `program P;
var x, y : integer;
begin
  if x = 1 then
    if y = 2 then
      x := 1
    else
      x := 2
end.`)
	outer := prog.Block.Body.Statements[0].(*ast.If)
	inner := outer.Then.(*ast.If)
	if inner.Else == nil {
		t.Fatalf("else should bind to the inner if")
	}
	if outer.Else != nil {
		t.Fatalf("outer if should have no else")
	}
}

func TestParseTrailingSemicolonIsNoOp(t *testing.T) {
	prog := parseSource(t, `program P;
var x : integer;
begin
  x := 1;
end.`)
	if len(prog.Block.Body.Statements) != 1 {
		t.Fatalf("want 1 statement (trailing ; stripped), got %d", len(prog.Block.Body.Statements))
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog := parseSource(t, `program P;
var x : integer;
begin
  x := 1 + 2 * 3;
end.`)
	assign := prog.Block.Body.Statements[0].(*ast.Assign)
	bin := assign.Right.(*ast.BinOp)
	if bin.Op != token.PLUS {
		t.Fatalf("want outer op +, got %s", bin.Op)
	}
	rhs := bin.Right.(*ast.BinOp)
	if rhs.Op != token.TIMES {
		t.Fatalf("want nested op *, got %s", rhs.Op)
	}
}

func TestParseComparisonIsNotChainable(t *testing.T) {
	prog := parseSource(t, `program P;
var x : boolean;
begin
  x := 1 < 2;
end.`)
	assign := prog.Block.Body.Statements[0].(*ast.Assign)
	bin := assign.Right.(*ast.BinOp)
	if bin.Op != token.LT {
		t.Fatalf("want <, got %s", bin.Op)
	}
	if _, ok := bin.Left.(*ast.BinOp); ok {
		t.Fatalf("left of comparison should not itself be a comparison")
	}

	chained := "program P;\nvar x : boolean;\nbegin\n  x := 1 < 2 < 3;\nend."
	if _, err := New(lexer.New(chained), chained, "test.pas").ParseProgram(); err == nil {
		t.Fatalf("want syntax error for chained comparison 1 < 2 < 3")
	}
}

func TestParseNotBindsTighterThanOr(t *testing.T) {
	prog := parseSource(t, `program P;
var a, b : boolean;
begin
  a := not a or b;
end.`)
	assign := prog.Block.Body.Statements[0].(*ast.Assign)
	or := assign.Right.(*ast.BinOp)
	if or.Op != token.OR {
		t.Fatalf("want outer op or, got %s", or.Op)
	}
	if _, ok := or.Left.(*ast.UnOp); !ok {
		t.Fatalf("left of or should be the not-expression")
	}
}

func TestParseArrayAccessAndAssignment(t *testing.T) {
	prog := parseSource(t, `program P;
var a : array[0..9] of integer;
begin
  a[1] := a[2] + 1;
end.`)
	assign := prog.Block.Body.Statements[0].(*ast.Assign)
	if _, ok := assign.Left.(*ast.ArrayAccess); !ok {
		t.Fatalf("want array access as lvalue")
	}
}

func TestParseProcedureAndFunctionDecls(t *testing.T) {
	prog := parseSource(t, `program P;

function Square(n : integer) : integer;
begin
  Square := n * n;
end;

procedure Greet(name : string);
begin
  writeln(name);
end;

begin
  writeln(Square(3));
  Greet('hi');
end.`)
	if len(prog.Block.FunctionDecls) != 1 {
		t.Fatalf("want 1 function decl, got %d", len(prog.Block.FunctionDecls))
	}
	if len(prog.Block.ProcedureDecls) != 1 {
		t.Fatalf("want 1 procedure decl, got %d", len(prog.Block.ProcedureDecls))
	}
}

func TestParseForLoopDirections(t *testing.T) {
	prog := parseSource(t, `program P;
var i : integer;
begin
  for i := 1 to 10 do
    writeln(i);
  for i := 10 downto 1 do
    writeln(i);
end.`)
	up := prog.Block.Body.Statements[0].(*ast.For)
	down := prog.Block.Body.Statements[1].(*ast.For)
	if up.Down {
		t.Fatalf("first loop should count up")
	}
	if !down.Down {
		t.Fatalf("second loop should count down")
	}
}

func TestParseRepeatUntil(t *testing.T) {
	prog := parseSource(t, `program P;
var i : integer;
begin
  i := 0;
  repeat
    i := i + 1
  until i = 10;
end.`)
	rep := prog.Block.Body.Statements[1].(*ast.Repeat)
	if len(rep.Body) != 1 {
		t.Fatalf("want 1 repeat-body statement, got %d", len(rep.Body))
	}
}

func TestParseSyntaxErrorOnMissingDot(t *testing.T) {
	p := New(lexer.New("program P; begin end"), "program P; begin end", "t.pas")
	if _, err := p.ParseProgram(); err == nil {
		t.Fatalf("want syntax error for missing trailing dot")
	}
}

func TestParseLengthBuiltin(t *testing.T) {
	prog := parseSource(t, `program P;
var s : string; n : integer;
begin
  n := length(s);
end.`)
	assign := prog.Block.Body.Statements[0].(*ast.Assign)
	call := assign.Right.(*ast.FuncCall)
	if !call.IsLength {
		t.Fatalf("want length builtin call")
	}
}
