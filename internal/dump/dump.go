// Package dump implements Falcon's debug-dump formatters: a bytecode
// disassembler, a stack-trace renderer, and a deterministic globals-table
// dump. None of it is consulted by the VM core — only by the CLI, for
// `--dump-opcodes` (Disassemble), `--trace-memory` (ObjectsByType) and the
// stack trace `run` prints after a runtime error (StackTrace) — so the
// interpreter runs headless without this package.
package dump

import (
	"fmt"
	"io"
	"sort"

	"github.com/dolthub/swiss"
	"golang.org/x/exp/maps"

	"github.com/filipefalcaos/falcon/lang/chunk"
	"github.com/filipefalcaos/falcon/lang/gc"
	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/value"
)

// Disassemble prints every instruction in c, one per line, under a name
// header — the classic clox `disassembleChunk` shape, adapted to this
// repo's Chunk.
func Disassemble(w io.Writer, c *chunk.Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < c.Len(); {
		offset = DisassembleInstruction(w, c, offset)
	}
}

// DisassembleInstruction prints the instruction at offset and returns the
// offset of the next instruction.
func DisassembleInstruction(w io.Writer, c *chunk.Chunk, offset int) int {
	fmt.Fprintf(w, "%04d %4d ", offset, c.SourceLineOf(offset))

	op := chunk.Opcode(c.Code[offset])
	switch op {
	case chunk.LOADCONST:
		return constantInstr(w, c, op, offset)
	case chunk.DEFLIST, chunk.DEFMAP:
		return countInstr(w, c, op, offset)
	case chunk.AND, chunk.OR, chunk.JUMP, chunk.JUMPIFF:
		return jumpInstr(w, c, op, offset, 1)
	case chunk.LOOP:
		return jumpInstr(w, c, op, offset, -1)
	case chunk.DEFGLOBAL, chunk.GETGLOBAL, chunk.SETGLOBAL,
		chunk.DEFCLASS, chunk.DEFMETHOD, chunk.GETPROP, chunk.SETPROP, chunk.SUPER:
		return nameInstr(w, c, op, offset)
	case chunk.GETLOCAL, chunk.SETLOCAL, chunk.GETUPVAL, chunk.SETUPVAL, chunk.CALL:
		return byteInstr(w, c, op, offset)
	case chunk.INVPROP, chunk.INVSUPER:
		return invokeInstr(w, c, op, offset)
	case chunk.CLOSURE:
		return closureInstr(w, c, offset)
	default:
		fmt.Fprintln(w, op)
		return offset + 1
	}
}

func constantInstr(w io.Writer, c *chunk.Chunk, op chunk.Opcode, offset int) int {
	idx := c.ReadU16(offset + 1)
	fmt.Fprintf(w, "%-14s %4d '%s'\n", op, idx, value.ToString(c.Constants[idx]))
	return offset + 3
}

func countInstr(w io.Writer, c *chunk.Chunk, op chunk.Opcode, offset int) int {
	n := c.ReadU16(offset + 1)
	fmt.Fprintf(w, "%-14s %4d\n", op, n)
	return offset + 3
}

func jumpInstr(w io.Writer, c *chunk.Chunk, op chunk.Opcode, offset, sign int) int {
	jump := int(c.ReadU16(offset + 1))
	target := offset + 3 + sign*jump
	fmt.Fprintf(w, "%-14s %4d -> %d\n", op, offset, target)
	return offset + 3
}

func nameInstr(w io.Writer, c *chunk.Chunk, op chunk.Opcode, offset int) int {
	idx := c.Code[offset+1]
	fmt.Fprintf(w, "%-14s %4d '%s'\n", op, idx, value.ToString(c.Constants[idx]))
	return offset + 2
}

func byteInstr(w io.Writer, c *chunk.Chunk, op chunk.Opcode, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(w, "%-14s %4d\n", op, slot)
	return offset + 2
}

func invokeInstr(w io.Writer, c *chunk.Chunk, op chunk.Opcode, offset int) int {
	idx := c.Code[offset+1]
	argc := c.Code[offset+2]
	fmt.Fprintf(w, "%-14s (%d args) %4d '%s'\n", op, argc, idx, value.ToString(c.Constants[idx]))
	return offset + 3
}

func closureInstr(w io.Writer, c *chunk.Chunk, offset int) int {
	idx := c.Code[offset+1]
	fn := c.Constants[idx].AsObj().(*object.Function)
	fmt.Fprintf(w, "%-14s %4d '%s'\n", chunk.CLOSURE, idx, value.ToString(c.Constants[idx]))

	next := offset + 2
	for i := 0; i < fn.UpvalueCount; i++ {
		isLocal := c.Code[next]
		index := c.Code[next+1]
		kind := "upvalue"
		if isLocal == 1 {
			kind = "local"
		}
		fmt.Fprintf(w, "%04d      |                     %s %d\n", next, kind, index)
		next += 2
	}
	return next
}

// StackTrace renders the innermost-first call-stack format spec.md §7
// mandates: "[Line N] in <fn>()" per line.
func StackTrace(w io.Writer, trace []string) {
	fmt.Fprintln(w, "Stack trace (last call first):")
	for _, t := range trace {
		fmt.Fprintln(w, t)
	}
}

// Globals dumps name -> value pairs from the globals table in a
// deterministic (sorted) order, so the output never depends on the table's
// internal bucket layout.
func Globals(w io.Writer, globals *object.Map) {
	names := maps.Keys(keyedByName(globals))
	sort.Strings(names)
	byName := keyedByName(globals)
	for _, name := range names {
		v, _ := globals.Get(byName[name])
		fmt.Fprintf(w, "%s = %s\n", name, value.ToString(v))
	}
}

func keyedByName(m *object.Map) map[string]*object.String {
	out := make(map[string]*object.String)
	for _, k := range m.Keys() {
		out[k.String()] = k
	}
	return out
}

// ObjectsByType walks every live object on the heap and prints a
// kind -> count tally, sorted by kind name. This is pure tooling: the tally
// is built in a github.com/dolthub/swiss map, never traced by the
// collector and never consulted by language semantics (unlike
// lang/object.Map, which the GC must be able to walk directly).
func ObjectsByType(w io.Writer, h *gc.Heap) {
	tally := swiss.NewMap[string, int](16)
	h.Walk(func(o value.Obj) {
		kind := o.ObjKind().String()
		n, _ := tally.Get(kind)
		tally.Put(kind, n+1)
	})

	counts := make(map[string]int, tally.Count())
	tally.Iter(func(kind string, n int) bool {
		counts[kind] = n
		return false
	})

	kinds := maps.Keys(counts)
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Fprintf(w, "%-12s %d\n", kind, counts[kind])
	}
}
