package lexer

import (
	"testing"

	"github.com/pasc-lang/pasc/internal/token"
)

func TestNextTokenProgram(t *testing.T) {
	input := `program Demo;
var
  x, y : integer;
begin
  x := 1;
  y := x + 2 * (3 - 1);
  if x <= y then
    writeln(x)
  else
    writeln('hi');
end.`

	want := []token.Type{
		token.PROGRAM, token.IDENT, token.SEMICOLON,
		token.VAR,
		token.IDENT, token.COMMA, token.IDENT, token.COLON, token.INTEGER, token.SEMICOLON,
		token.BEGIN,
		token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON,
		token.IDENT, token.ASSIGN, token.IDENT, token.PLUS, token.INT, token.TIMES, token.LPAREN, token.INT, token.MINUS, token.INT, token.RPAREN, token.SEMICOLON,
		token.IF, token.IDENT, token.LE, token.IDENT, token.THEN,
		token.WRITELN, token.LPAREN, token.IDENT, token.RPAREN,
		token.ELSE,
		token.WRITELN, token.LPAREN, token.STRING, token.RPAREN, token.SEMICOLON,
		token.END, token.DOT,
		token.EOF,
	}

	l := New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt {
			t.Fatalf("token %d: want %s, got %s (%q)", i, tt, tok.Type, tok.Literal)
		}
	}
	if len(l.Errors()) != 0 {
		t.Fatalf("unexpected lexical errors: %v", l.Errors())
	}
}

func TestNextTokenKeywordsCaseInsensitive(t *testing.T) {
	l := New("BEGIN End WHILE")
	for _, want := range []token.Type{token.BEGIN, token.END, token.WHILE} {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("want %s, got %s", want, tok.Type)
		}
	}
}

func TestNextTokenIdentifierPreservesCase(t *testing.T) {
	l := New("MyVar")
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "MyVar" {
		t.Fatalf("got %s %q", tok.Type, tok.Literal)
	}
}

func TestNextTokenRealVsInt(t *testing.T) {
	cases := []struct {
		in   string
		want token.Type
		lit  string
	}{
		{"123", token.INT, "123"},
		{"3.14", token.REAL, "3.14"},
		{"1.5e10", token.REAL, "1.5e10"},
		{"1.5e+10", token.REAL, "1.5e+10"},
	}
	for _, c := range cases {
		l := New(c.in)
		tok := l.NextToken()
		if tok.Type != c.want || tok.Literal != c.lit {
			t.Fatalf("%q: want %s %q, got %s %q", c.in, c.want, c.lit, tok.Type, tok.Literal)
		}
	}
}

func TestNextTokenTrailingDotNotConsumedByNumber(t *testing.T) {
	l := New("3.")
	first := l.NextToken()
	if first.Type != token.INT || first.Literal != "3" {
		t.Fatalf("want INT 3, got %s %q", first.Type, first.Literal)
	}
	second := l.NextToken()
	if second.Type != token.DOT {
		t.Fatalf("want DOT, got %s", second.Type)
	}
}

func TestNextTokenDotDotBeforeDot(t *testing.T) {
	l := New("1..10")
	want := []token.Type{token.INT, token.DOTDOT, token.INT, token.EOF}
	for _, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("want %s, got %s", w, tok.Type)
		}
	}
}

func TestNextTokenOperators(t *testing.T) {
	l := New(":= = <> <= >= < >")
	want := []token.Type{token.ASSIGN, token.EQ, token.NE, token.LE, token.GE, token.LT, token.GT}
	for _, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("want %s, got %s", w, tok.Type)
		}
	}
}

func TestNextTokenBraceComment(t *testing.T) {
	l := New("{ this is a comment\nspanning lines } x")
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "x" {
		t.Fatalf("got %s %q", tok.Type, tok.Literal)
	}
	if tok.Pos.Line != 2 {
		t.Fatalf("want line 2, got %d", tok.Pos.Line)
	}
}

func TestNextTokenParenStarComment(t *testing.T) {
	l := New("(* comment *) y")
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "y" {
		t.Fatalf("got %s %q", tok.Type, tok.Literal)
	}
}

func TestNextTokenUnterminatedComment(t *testing.T) {
	l := New("{ never closed")
	tok := l.NextToken()
	if tok.Type != token.EOF {
		t.Fatalf("want EOF, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("want 1 error, got %d", len(l.Errors()))
	}
}

func TestNextTokenStringNoDoubleQuoteEscape(t *testing.T) {
	l := New("'it''s'")
	first := l.NextToken()
	if first.Type != token.STRING || first.Literal != "it" {
		t.Fatalf("got %s %q", first.Type, first.Literal)
	}
	second := l.NextToken()
	if second.Type != token.STRING || second.Literal != "s" {
		t.Fatalf("got %s %q", second.Type, second.Literal)
	}
}

func TestNextTokenIllegalCharacter(t *testing.T) {
	l := New("x @ y")
	l.NextToken() // x
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("want ILLEGAL, got %s", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("want 1 error, got %d", len(l.Errors()))
	}
}

func TestNextTokenUnicodeIdentifierRejected(t *testing.T) {
	l := New("café")
	tok := l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "caf" {
		t.Fatalf("got %s %q", tok.Type, tok.Literal)
	}
	next := l.NextToken()
	if next.Type != token.ILLEGAL {
		t.Fatalf("want ILLEGAL for non-ASCII rune, got %s", next.Type)
	}
}
