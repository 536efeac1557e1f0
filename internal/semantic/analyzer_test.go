package semantic

import (
	"testing"

	"github.com/pasc-lang/pasc/internal/lexer"
	"github.com/pasc-lang/pasc/internal/parser"
)

func analyze(t *testing.T, src string) error {
	t.Helper()
	p := parser.New(lexer.New(src), src, "test.pas")
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return New(src, "test.pas").Analyze(prog)
}

func TestAnalyzeValidProgram(t *testing.T) {
	err := analyze(t, `program P;
var x, y : integer; r : real;
begin
  x := 1;
  y := x + 2;
  r := x;
end.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeRedeclaration(t *testing.T) {
	err := analyze(t, `program P;
var x : integer;
var x : real;
begin end.`)
	if err == nil {
		t.Fatalf("want redeclaration error")
	}
}

func TestAnalyzeUndeclaredIdentifier(t *testing.T) {
	err := analyze(t, `program P;
begin
  x := 1;
end.`)
	if err == nil {
		t.Fatalf("want undeclared identifier error")
	}
}

func TestAnalyzeAssignTypeMismatch(t *testing.T) {
	err := analyze(t, `program P;
var x : integer;
begin
  x := 'hello';
end.`)
	if err == nil {
		t.Fatalf("want type mismatch error")
	}
}

func TestAnalyzeIntToRealPromotion(t *testing.T) {
	err := analyze(t, `program P;
var r : real; i : integer;
begin
  i := 3;
  r := i;
end.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeRealToIntRejected(t *testing.T) {
	err := analyze(t, `program P;
var r : real; i : integer;
begin
  r := 1.5;
  i := r;
end.`)
	if err == nil {
		t.Fatalf("want error assigning real to integer")
	}
}

func TestAnalyzeIfConditionMustBeBoolean(t *testing.T) {
	err := analyze(t, `program P;
var x : integer;
begin
  if x then x := 1;
end.`)
	if err == nil {
		t.Fatalf("want non-boolean condition error")
	}
}

func TestAnalyzeDivisionAlwaysReal(t *testing.T) {
	err := analyze(t, `program P;
var x, y : integer; r : real;
begin
  r := x / y;
end.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeComparisonTypeMismatch(t *testing.T) {
	err := analyze(t, `program P;
var x : integer; s : string;
begin
  if x = s then ;
end.`)
	if err == nil {
		t.Fatalf("want comparison type mismatch error")
	}
}

func TestAnalyzeArrayAccess(t *testing.T) {
	err := analyze(t, `program P;
var a : array[1..10] of integer; i : integer;
begin
  a[1] := 5;
  i := a[2];
end.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeArrayIndexMustBeInteger(t *testing.T) {
	err := analyze(t, `program P;
var a : array[1..10] of integer; r : real;
begin
  a[r] := 1;
end.`)
	if err == nil {
		t.Fatalf("want index type error")
	}
}

func TestAnalyzeFunctionReturnSlot(t *testing.T) {
	err := analyze(t, `program P;
function Square(n : integer) : integer;
begin
  Square := n * n;
end;
var x : integer;
begin
  x := Square(4);
end.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeCallArityMismatch(t *testing.T) {
	err := analyze(t, `program P;
procedure P1(a : integer);
begin
end;
begin
  P1(1, 2);
end.`)
	if err == nil {
		t.Fatalf("want arity mismatch error")
	}
}

func TestAnalyzeForLoopVarMustBeInteger(t *testing.T) {
	err := analyze(t, `program P;
var r : real;
begin
  for r := 1 to 10 do ;
end.`)
	if err == nil {
		t.Fatalf("want for-loop variable type error")
	}
}

func TestAnalyzeLengthOnString(t *testing.T) {
	err := analyze(t, `program P;
var s : string; n : integer;
begin
  n := length(s);
end.`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
