package object

import (
	"fmt"

	"github.com/filipefalcaos/falcon/lang/value"
)

// NativeRuntime is implemented by the VM and handed to every native call, so
// a native can report a runtime error (spec's native-function contract:
// "if the function reports a runtime error it must return the Err sentinel
// to tell the dispatch loop to unwind"). Fail records the message and
// returns value.Err, so a native reports and unwinds in one statement:
// return rt.Fail("...")
type NativeRuntime interface {
	Fail(format string, args ...interface{}) value.Value
}

// NativeFn is the host-function signature (spec §6): it receives the
// argument values and returns a Value — value.Err if rt.Fail was called to
// report a runtime error, any other Value on success.
type NativeFn func(rt NativeRuntime, args []value.Value) value.Value

// Native wraps a Go function as a callable Falcon value. Exactly one Native
// object exists per registered builtin, created once at VM init (spec §3).
type Native struct {
	value.ObjHeader
	Name string
	Fn   NativeFn
	// Arity, if >= 0, is the exact argument count the dispatch loop enforces
	// before calling Fn; -1 means variadic (Fn itself validates argc).
	Arity int
}

var _ value.Obj = (*Native)(nil)

func NewNative(name string, arity int, fn NativeFn) *Native {
	return &Native{Name: name, Arity: arity, Fn: fn}
}

func (n *Native) ObjKind() value.ObjKind   { return value.ObjNative }
func (n *Native) Header() *value.ObjHeader { return &n.ObjHeader }
func (n *Native) String() string           { return fmt.Sprintf("<native fn %s>", n.Name) }
func (n *Native) Size() int                { return 16 }
func (n *Native) Trace(func(value.Obj))    {}
