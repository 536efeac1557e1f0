package codegen

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/pasc-lang/pasc/internal/lexer"
	"github.com/pasc-lang/pasc/internal/parser"
	"github.com/pasc-lang/pasc/internal/semantic"
)

func compile(t *testing.T, src string) []string {
	t.Helper()
	p := parser.New(lexer.New(src), src, "test.pas")
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if err := semantic.New(src, "test.pas").Analyze(prog); err != nil {
		t.Fatalf("unexpected semantic error: %v", err)
	}
	lines, err := Generate(prog)
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}
	return lines
}

func TestGenerateArithmeticSnapshot(t *testing.T) {
	lines := compile(t, `program p;
var x : integer;
begin
  x := 2 + 3 * 4;
  writeln(x);
end.`)
	snaps.MatchSnapshot(t, "arithmetic", strings.Join(lines, "\n"))
}

func TestGenerateRealDivisionSnapshot(t *testing.T) {
	lines := compile(t, `program p;
var r : real;
begin
  r := 5 / 2;
  writeln(r);
end.`)
	snaps.MatchSnapshot(t, "real_division", strings.Join(lines, "\n"))
}

func TestGenerateArrayLoopSnapshot(t *testing.T) {
	lines := compile(t, `program p;
var a : array[1..3] of integer; i : integer;
begin
  for i := 1 to 3 do a[i] := i * i;
  writeln(a[1], a[2], a[3]);
end.`)
	snaps.MatchSnapshot(t, "array_loop", strings.Join(lines, "\n"))
}

func TestGenerateFunctionCallSnapshot(t *testing.T) {
	lines := compile(t, `program p;
function sq(n : integer) : integer;
begin
  sq := n * n;
end;
var x : integer;
begin
  x := sq(7);
  writeln(x);
end.`)
	snaps.MatchSnapshot(t, "function_call", strings.Join(lines, "\n"))
}

func TestGenerateIfElseSnapshot(t *testing.T) {
	lines := compile(t, `program p;
var x : integer;
begin
  if x > 0 then
    writeln(1)
  else
    writeln(0);
end.`)
	snaps.MatchSnapshot(t, "if_else", strings.Join(lines, "\n"))
}

func TestGenerateWhileSnapshot(t *testing.T) {
	lines := compile(t, `program p;
var x : integer;
begin
  while x < 10 do x := x + 1;
end.`)
	snaps.MatchSnapshot(t, "while_loop", strings.Join(lines, "\n"))
}

func TestGenerateRepeatSnapshot(t *testing.T) {
	lines := compile(t, `program p;
var x : integer;
begin
  repeat
    x := x + 1;
  until x >= 10;
end.`)
	snaps.MatchSnapshot(t, "repeat_until", strings.Join(lines, "\n"))
}

func TestGenerateStringLengthSnapshot(t *testing.T) {
	lines := compile(t, `program p;
var s : string;
begin
  s := 'abc';
  writeln(length(s));
end.`)
	snaps.MatchSnapshot(t, "string_length", strings.Join(lines, "\n"))
}

func TestGenerateProducesStartStop(t *testing.T) {
	lines := compile(t, `program p;
begin
end.`)
	if len(lines) < 2 {
		t.Fatalf("expected at least START/STOP, got %v", lines)
	}
	if lines[0] != "START" {
		t.Errorf("first instruction = %q, want START", lines[0])
	}
	if lines[1] != "JUMP MAIN" {
		t.Errorf("second instruction = %q, want JUMP MAIN", lines[1])
	}
	if lines[len(lines)-1] != "STOP" {
		t.Errorf("last instruction = %q, want STOP", lines[len(lines)-1])
	}
}

func TestGenerateNestedBinOpUsesDistinctTempSlots(t *testing.T) {
	lines := compile(t, `program p;
var x : integer;
begin
  x := (1 + 2) * (3 + 4);
end.`)
	joined := strings.Join(lines, "\n")
	// x is global 0 and the return-value slot is 1, so temps start at 2:
	// the outer * spills to slot 2, each nested + to slot 3.
	if !strings.Contains(joined, "STOREG 2") || !strings.Contains(joined, "STOREG 3") {
		t.Errorf("expected spills to distinct temp slots 2 and 3 in output:\n%s", joined)
	}
}
