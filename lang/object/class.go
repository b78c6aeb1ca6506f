package object

import (
	"fmt"

	"github.com/filipefalcaos/falcon/lang/value"
)

// Class holds a name and its method table (String -> Closure, spec §3).
// OP_DEFCLASS creates it; OP_INHERIT copies a superclass's methods into it.
type Class struct {
	value.ObjHeader
	Name    *String
	Methods *Map
}

var _ value.Obj = (*Class)(nil)

func NewClass(name *String) *Class {
	return &Class{Name: name, Methods: NewMap()}
}

func (c *Class) ObjKind() value.ObjKind   { return value.ObjClass }
func (c *Class) Header() *value.ObjHeader { return &c.ObjHeader }
func (c *Class) String() string           { return fmt.Sprintf("<class %s>", c.Name.String()) }
func (c *Class) Size() int                { return 32 }

// Method looks up name directly in the class's own method table, bypassing
// any instance (used by SUPER/INVSUPER, spec §4.8).
func (c *Class) Method(name *String) (*Closure, bool) {
	v, ok := c.Methods.Get(name)
	if !ok {
		return nil, false
	}
	return v.AsObj().(*Closure), true
}

func (c *Class) Trace(mark func(value.Obj)) {
	mark(c.Name)
	mark(c.Methods)
}
