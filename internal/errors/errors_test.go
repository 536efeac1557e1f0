package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pasc-lang/pasc/internal/token"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Lexical: "lexical error",
		Syntax:  "syntax error",
		Semantic: "semantic error",
		CodeGen: "code generation error",
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.String())
	}
}

func TestConstructorsSetKind(t *testing.T) {
	pos := token.Position{Line: 1, Column: 1}
	require.Equal(t, Lexical, Lex(pos, "bad char", "", "f.pas").Kind)
	require.Equal(t, Syntax, Syn(pos, "unexpected token", "", "f.pas").Kind)
	require.Equal(t, Semantic, Sem(pos, "undeclared identifier", "", "f.pas").Kind)
	require.Equal(t, CodeGen, Gen(pos, "unsupported operator", "", "f.pas").Kind)
}

func TestFormatIncludesCaretAtColumn(t *testing.T) {
	source := "program P;\nbegin\n  x := ;\nend.\n"
	err := Syn(token.Position{Line: 3, Column: 8}, "expected expression", source, "f.pas")

	got := err.Format(false)

	require.Contains(t, got, "syntax error in f.pas:3:8")
	require.Contains(t, got, "  x := ;")
	require.Contains(t, got, "expected expression")

	lines := splitLines(got)
	caretLine := lines[2]
	assert.True(t, len(caretLine) > 0 && caretLine[len(caretLine)-1] == '^')
}

func TestFormatColorWrapsCaretAndMessage(t *testing.T) {
	err := Sem(token.Position{Line: 1, Column: 1}, "type mismatch", "x := 1;\n", "f.pas")
	got := err.Format(true)
	assert.Contains(t, got, "\033[1;31m")
	assert.Contains(t, got, "\033[1m")
}

func TestFormatWithoutFileOrSource(t *testing.T) {
	err := New(Lexical, token.Position{Line: 5, Column: 2}, "illegal character '$'", "", "")
	got := err.Format(false)
	assert.Contains(t, got, "lexical error at line 5:2")
	assert.Contains(t, got, "illegal character '$'")
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	var err error = New(Syntax, token.Position{Line: 1, Column: 1}, "boom", "", "")
	require.EqualError(t, err, err.(*CompilerError).Format(false))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
