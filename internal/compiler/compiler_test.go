package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProgram = `program Sum;
var a, b, total : integer;
begin
  a := 2;
  b := 3;
  total := a + b;
  writeln(total);
end.`

func TestCheckValidProgramReturnsNoInstructions(t *testing.T) {
	result, err := Check(validProgram, "sum.pas")
	require.NoError(t, err)
	assert.NotEqual(t, result.RunID.String(), "")
	assert.Nil(t, result.Instructions)
}

func TestRunValidProgramEmitsInstructions(t *testing.T) {
	result, err := Run(validProgram, "sum.pas")
	require.NoError(t, err)
	require.NotEmpty(t, result.Instructions)
	assert.Equal(t, "START", result.Instructions[0])
	assert.Equal(t, "STOP", result.Instructions[len(result.Instructions)-1])
}

func TestCheckReportsUndeclaredIdentifier(t *testing.T) {
	_, err := Check(`program Bad;
begin
  x := 1;
end.`, "bad.pas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "semantic error")
}

func TestRunReportsLexicalErrorBeforeSemantic(t *testing.T) {
	_, err := Run("program Bad;\nbegin\n  x := 1 $ 2;\nend.", "bad.pas")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lexical error")
}

func TestTwoRunsProduceDistinctRunIDs(t *testing.T) {
	r1, err := Run(validProgram, "sum.pas")
	require.NoError(t, err)
	r2, err := Run(validProgram, "sum.pas")
	require.NoError(t, err)
	assert.NotEqual(t, r1.RunID, r2.RunID)
	assert.Equal(t, strings.Join(r1.Instructions, "\n"), strings.Join(r2.Instructions, "\n"))
}
