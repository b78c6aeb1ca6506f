package compiler_test

import (
	"testing"

	"github.com/filipefalcaos/falcon/lang/chunk"
	"github.com/filipefalcaos/falcon/lang/compiler"
	"github.com/filipefalcaos/falcon/lang/gc"
	"github.com/filipefalcaos/falcon/lang/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSimpleExpression(t *testing.T) {
	heap := gc.New()
	fn, err := compiler.Compile(heap, []byte(`print(1 + 2);`), "test.fl")
	require.NoError(t, err)
	require.NotNil(t, fn)
	assert.NotEmpty(t, fn.Chunk.Code)
	assert.Equal(t, chunk.Opcode(fn.Chunk.Code[0]), chunk.GETGLOBAL)
}

func TestCompileErrorsAccumulate(t *testing.T) {
	heap := gc.New()
	_, err := compiler.Compile(heap, []byte(`var x = ; var y = ;`), "test.fl")
	require.Error(t, err)
	// both syntax errors should be reported, not just the first.
	assert.Contains(t, err.Error(), "CompilerError")
	var errs compiler.ErrorList
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
}

func TestUndeclaredBreakIsAnError(t *testing.T) {
	heap := gc.New()
	_, err := compiler.Compile(heap, []byte(`break;`), "test.fl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'break' used outside of a loop")
}

func TestSuperOutsideClassIsAnError(t *testing.T) {
	heap := gc.New()
	_, err := compiler.Compile(heap, []byte(`fn f() { return super.x(); }`), "test.fl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'super'")
}

func TestMarkRootsIsEmptyAfterCompilationFinishes(t *testing.T) {
	heap := gc.New()
	c := compiler.NewCompiler(heap, "test.fl")
	_, err := c.Run([]byte(`
fn outer() {
	fn inner() {
		return 1;
	}
	return inner;
}
`))
	require.NoError(t, err)

	// Run pops every funcCompiler as each function finishes, so once
	// compilation returns there is no in-progress chain left to mark.
	var marks int
	c.MarkRoots(func(value.Obj) { marks++ })
	assert.Equal(t, 0, marks)
}
