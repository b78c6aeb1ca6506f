package object

import "github.com/filipefalcaos/falcon/lang/value"

// BoundMethod pairs a receiver with a Closure, produced whenever a method is
// read as a value via GETPROP (spec §3, §4.8).
type BoundMethod struct {
	value.ObjHeader
	Receiver value.Value
	Method   *Closure
}

var _ value.Obj = (*BoundMethod)(nil)

func NewBoundMethod(receiver value.Value, method *Closure) *BoundMethod {
	return &BoundMethod{Receiver: receiver, Method: method}
}

func (b *BoundMethod) ObjKind() value.ObjKind   { return value.ObjBoundMethod }
func (b *BoundMethod) Header() *value.ObjHeader { return &b.ObjHeader }
func (b *BoundMethod) String() string           { return b.Method.String() }
func (b *BoundMethod) Size() int                { return 24 }

func (b *BoundMethod) Trace(mark func(value.Obj)) {
	if b.Receiver.IsObj() {
		mark(b.Receiver.AsObj())
	}
	mark(b.Method)
}
