package object

import "github.com/filipefalcaos/falcon/lang/value"

// Closure pairs a compiled Function with the Upvalues it captured at
// OP_CLOSURE time (spec §3 invariant: len(Upvalues) == Function.UpvalueCount).
type Closure struct {
	value.ObjHeader
	Fn       *Function
	Upvalues []*Upvalue
}

var _ value.Obj = (*Closure)(nil)

func NewClosure(fn *Function) *Closure {
	return &Closure{Fn: fn, Upvalues: make([]*Upvalue, fn.UpvalueCount)}
}

func (c *Closure) ObjKind() value.ObjKind   { return value.ObjClosure }
func (c *Closure) Header() *value.ObjHeader { return &c.ObjHeader }
func (c *Closure) String() string           { return c.Fn.String() }
func (c *Closure) Size() int                { return 24 + 8*len(c.Upvalues) }
func (c *Closure) Name() string {
	if c.Fn.Name == nil {
		return "script"
	}
	return c.Fn.Name.String()
}

func (c *Closure) Trace(mark func(value.Obj)) {
	mark(c.Fn)
	for _, uv := range c.Upvalues {
		if uv != nil {
			mark(uv)
		}
	}
}
