package object

import (
	"fmt"

	"github.com/filipefalcaos/falcon/lang/chunk"
	"github.com/filipefalcaos/falcon/lang/value"
)

// FunctionType distinguishes how a compiled function's implicit receiver and
// implicit return behave (spec §4.4).
type FunctionType uint8

const (
	TypeScript FunctionType = iota
	TypeFunction
	TypeMethod
	TypeInit
)

// Function is the immutable compiled form of a function body: its arity,
// its upvalue count, an optional name (nil only for the top-level script,
// spec §3 invariant), and its bytecode chunk.
type Function struct {
	value.ObjHeader
	Name         *String
	Arity        int
	UpvalueCount int
	Type         FunctionType
	Chunk        chunk.Chunk
}

var _ value.Obj = (*Function)(nil)

func (f *Function) ObjKind() value.ObjKind   { return value.ObjFunction }
func (f *Function) Header() *value.ObjHeader { return &f.ObjHeader }
func (f *Function) Size() int                { return 64 + len(f.Chunk.Code) }

func (f *Function) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name.String())
}

// Trace marks the function's name and every constant that is itself a heap
// object (spec §4.5 step 2).
func (f *Function) Trace(mark func(value.Obj)) {
	if f.Name != nil {
		mark(f.Name)
	}
	for _, c := range f.Chunk.Constants {
		if c.IsObj() {
			mark(c.AsObj())
		}
	}
}
