package object_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filipefalcaos/falcon/lang/chunk"
	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/value"
)

func TestClassMethodLookupMissesOnUndefinedName(t *testing.T) {
	c := object.NewClass(object.NewString([]byte("Animal")))

	_, ok := c.Method(object.NewString([]byte("speak")))
	assert.False(t, ok)
}

func TestClassMethodLookupFindsDefinedMethod(t *testing.T) {
	c := object.NewClass(object.NewString([]byte("Animal")))
	fn := &object.Function{Name: object.NewString([]byte("speak")), Chunk: chunk.Chunk{}}
	closure := object.NewClosure(fn)
	name := object.NewString([]byte("speak"))
	c.Methods.Set(name, value.FromObj(closure))

	got, ok := c.Method(name)
	require.True(t, ok)
	assert.Same(t, closure, got)
}

func TestInstanceFieldsStartEmptyAndAreIndependentPerInstance(t *testing.T) {
	c := object.NewClass(object.NewString([]byte("Point")))
	a := object.NewInstance(c)
	b := object.NewInstance(c)

	a.Fields.Set(object.NewString([]byte("x")), value.Num(1))

	assert.Equal(t, 1, a.Fields.Len())
	assert.Equal(t, 0, b.Fields.Len())
	assert.Same(t, c, a.Class)
}

func TestBoundMethodRendersUnderlyingClosureString(t *testing.T) {
	fn := &object.Function{Name: object.NewString([]byte("greet")), Chunk: chunk.Chunk{}}
	closure := object.NewClosure(fn)
	bm := object.NewBoundMethod(value.Null, closure)

	assert.Equal(t, closure.String(), bm.String())
}

// fakeRuntime is a minimal object.NativeRuntime for testing NativeFn
// implementations in isolation from a real VM.
type fakeRuntime struct{ failed string }

func (r *fakeRuntime) Fail(format string, a ...interface{}) value.Value {
	r.failed = fmt.Sprintf(format, a...)
	return value.Err
}

func TestNativeArityAndDispatch(t *testing.T) {
	n := object.NewNative("double", 1, func(rt object.NativeRuntime, args []value.Value) value.Value {
		return value.Num(args[0].AsNum() * 2)
	})

	assert.Equal(t, 1, n.Arity)
	out := n.Fn(&fakeRuntime{}, []value.Value{value.Num(21)})
	assert.Equal(t, 42.0, out.AsNum())
}

func TestNativeFailReturnsErrSentinelAndRecordsMessage(t *testing.T) {
	n := object.NewNative("boom", 0, func(rt object.NativeRuntime, args []value.Value) value.Value {
		return rt.Fail("%s went wrong", "something")
	})

	rt := &fakeRuntime{}
	out := n.Fn(rt, nil)
	assert.True(t, out.IsErr())
	assert.Equal(t, "something went wrong", rt.failed)
}
