package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/filipefalcaos/falcon/internal/dump"
	"github.com/filipefalcaos/falcon/lang/compiler"
	"github.com/filipefalcaos/falcon/lang/gc"
	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/value"
)

func (c *Cmd) Compile(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return CompileFile(stdio, c.DumpOpcodes, args[0])
}

// CompileFile runs the scanner+compiler over filename and, if dumpOpcodes
// is set, disassembles the resulting chunk and every nested function chunk.
func CompileFile(stdio mainer.Stdio, dumpOpcodes bool, filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	heap := gc.New()
	fn, err := compiler.Compile(heap, src, filename)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	if dumpOpcodes {
		disassembleRecursive(stdio, fn)
	}
	return nil
}

// disassembleRecursive dumps fn's own chunk, then recurses into every
// nested Function found in its constant pool.
func disassembleRecursive(stdio mainer.Stdio, fn *object.Function) {
	name := "<script>"
	if fn.Name != nil {
		name = fn.Name.String()
	}
	dump.Disassemble(stdio.Stdout, &fn.Chunk, name)
	for _, k := range fn.Chunk.Constants {
		if k.IsObjKind(value.ObjFunction) {
			disassembleRecursive(stdio, k.AsObj().(*object.Function))
		}
	}
}
