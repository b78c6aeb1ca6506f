// Package chunk implements the append-only bytecode container compiled
// functions own: the instruction stream, the run-length line table, and the
// constant pool (spec §4.2).
package chunk

import (
	"encoding/binary"

	"github.com/filipefalcaos/falcon/lang/value"
)

type lineEntry struct {
	offset int
	line   int
}

// Chunk is an append-only byte array plus its constants and its
// offset-to-line mapping. It never shrinks; the only bytes changed after
// being written are jump operands and break placeholders that the compiler
// patches in place (spec §3 invariant: the lines table is monotone in both
// offset and line, enabling binary-search lookup).
type Chunk struct {
	Code      []byte
	Constants []value.Value
	lines     []lineEntry
}

// Write appends a single byte, extending the line table only when line
// differs from the last recorded entry.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	if n := len(c.lines); n == 0 || c.lines[n-1].line != line {
		c.lines = append(c.lines, lineEntry{offset: len(c.Code) - 1, line: line})
	}
}

// WriteU16 appends a little-endian 16-bit operand.
func (c *Chunk) WriteU16(v uint16, line int) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	c.Write(buf[0], line)
	c.Write(buf[1], line)
}

// ReadU16 decodes the little-endian 16-bit operand starting at offset.
func (c *Chunk) ReadU16(offset int) uint16 {
	return binary.LittleEndian.Uint16(c.Code[offset : offset+2])
}

// AddConstant appends value to the constant pool and returns its index.
// Indices are dense and duplicates are permitted — there is no
// deduplication contract (spec §8 property 3).
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// WriteConstant emits op (the compiler passes LOADCONST) followed by the
// 16-bit little-endian index.
func (c *Chunk) WriteConstant(op Opcode, index int, line int) {
	c.Write(byte(op), line)
	c.WriteU16(uint16(index), line)
}

// SourceLineOf returns the source line that produced the instruction at
// offset, via binary search over the monotone line table.
func (c *Chunk) SourceLineOf(offset int) int {
	lo, hi := 0, len(c.lines)-1
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if c.lines[mid].offset <= offset {
			best = c.lines[mid].line
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}

// Len returns the number of bytes written so far, used as a jump target when
// patching forward jumps.
func (c *Chunk) Len() int { return len(c.Code) }
