package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhysd/dachs/internal/token"
)

func TestCompilerErrorFormatIncludesHeaderSourceLineAndCaret(t *testing.T) {
	src := "func main\n  x = 1\nend\n"
	e := NewCompilerError(token.Position{File: "a.dachs", Line: 2, Column: 3}, "unexpected token", src)

	out := e.Format(false)
	assert.Contains(t, out, "Error in a.dachs:2:3")
	assert.Contains(t, out, "  x = 1")
	assert.Contains(t, out, "\n         ^\n") // under column 3, after the "   2 | " prefix
	assert.Contains(t, out, "unexpected token")
}

func TestCompilerErrorFormatOmitsFileWhenAbsent(t *testing.T) {
	e := NewCompilerError(token.Position{Line: 1, Column: 1}, "boom", "")
	assert.Contains(t, e.Format(false), "Error at 1:1")
}

func TestCompilerErrorFormatAddsColorCodesOnlyWhenTTY(t *testing.T) {
	e := NewCompilerError(token.Position{Line: 1, Column: 1}, "boom", "x\n")
	plain := e.Format(false)
	colored := e.Format(true)
	assert.NotContains(t, plain, "\033[")
	assert.Contains(t, colored, "\033[")
}

func TestFormatErrorsNumbersMultipleDiagnostics(t *testing.T) {
	a := NewCompilerError(token.Position{Line: 1, Column: 1}, "first", "")
	b := NewCompilerError(token.Position{Line: 2, Column: 1}, "second", "")
	out := FormatErrors([]*CompilerError{a, b}, false)
	assert.Contains(t, out, "2 error(s)")
	assert.Contains(t, out, "[Error 1 of 2]")
	assert.Contains(t, out, "[Error 2 of 2]")
}

func TestCollectorAccumulatesWithoutAborting(t *testing.T) {
	c := NewCollector("")
	c.Errorf(token.Position{Line: 1, Column: 1}, "first %s", "error")
	c.Errorf(token.Position{Line: 2, Column: 1}, "second error")

	require.True(t, c.HasErrors())
	require.Len(t, c.Errors(), 2)

	err := c.Err()
	require.Error(t, err)
	passErr, ok := err.(*PassError)
	require.True(t, ok)
	assert.Len(t, passErr.Errors, 2)
}

func TestCollectorErrIsNilWhenEmpty(t *testing.T) {
	c := NewCollector("")
	assert.NoError(t, c.Err())
}

func TestInternalPanics(t *testing.T) {
	assert.Panics(t, func() {
		Internal("unreachable: %s", "state")
	})
}
