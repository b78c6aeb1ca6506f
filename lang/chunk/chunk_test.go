package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filipefalcaos/falcon/lang/chunk"
	"github.com/filipefalcaos/falcon/lang/value"
)

func TestWriteAndReadU16RoundTrips(t *testing.T) {
	var c chunk.Chunk
	c.Write(byte(chunk.LOADCONST), 1)
	c.WriteU16(0x1234, 1)

	require.Equal(t, 3, c.Len())
	assert.Equal(t, uint16(0x1234), c.ReadU16(1))
}

func TestAddConstantDoesNotDeduplicate(t *testing.T) {
	var c chunk.Chunk
	i1 := c.AddConstant(value.Num(1))
	i2 := c.AddConstant(value.Num(1))

	assert.NotEqual(t, i1, i2)
	assert.Equal(t, 2, len(c.Constants))
}

func TestWriteConstantEmitsOpcodeAndIndex(t *testing.T) {
	var c chunk.Chunk
	idx := c.AddConstant(value.Num(42))
	c.WriteConstant(chunk.LOADCONST, idx, 7)

	require.Equal(t, 3, c.Len())
	assert.Equal(t, byte(chunk.LOADCONST), c.Code[0])
	assert.Equal(t, uint16(idx), c.ReadU16(1))
}

func TestSourceLineOfTracksMultipleLines(t *testing.T) {
	var c chunk.Chunk
	c.Write(byte(chunk.LOADTRUE), 1)
	c.Write(byte(chunk.LOADFALSE), 1)
	c.Write(byte(chunk.NOT), 2)
	c.Write(byte(chunk.RETURN), 5)

	assert.Equal(t, 1, c.SourceLineOf(0))
	assert.Equal(t, 1, c.SourceLineOf(1))
	assert.Equal(t, 2, c.SourceLineOf(2))
	assert.Equal(t, 5, c.SourceLineOf(3))
}

func TestOperandSizeMatchesEncoding(t *testing.T) {
	assert.Equal(t, 2, chunk.OperandSize(chunk.LOADCONST))
	assert.Equal(t, 1, chunk.OperandSize(chunk.GETLOCAL))
	assert.Equal(t, 2, chunk.OperandSize(chunk.INVPROP))
	assert.Equal(t, 0, chunk.OperandSize(chunk.RETURN))
	assert.Equal(t, -1, chunk.OperandSize(chunk.CLOSURE))
}

func TestOpcodeStringNamesKnownOpcodes(t *testing.T) {
	assert.Equal(t, "LOADCONST", chunk.LOADCONST.String())
	assert.Equal(t, "INVSUPER", chunk.INVSUPER.String())
}
