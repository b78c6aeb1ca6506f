package object

import (
	"fmt"

	"github.com/filipefalcaos/falcon/lang/value"
)

// Instance is a Class value paired with its own field table (String ->
// Value, spec §3), created by calling a Class.
type Instance struct {
	value.ObjHeader
	Class  *Class
	Fields *Map
}

var _ value.Obj = (*Instance)(nil)

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: NewMap()}
}

func (i *Instance) ObjKind() value.ObjKind   { return value.ObjInstance }
func (i *Instance) Header() *value.ObjHeader { return &i.ObjHeader }
func (i *Instance) String() string           { return fmt.Sprintf("<%s instance>", i.Class.Name.String()) }
func (i *Instance) Size() int                { return 32 }

func (i *Instance) Trace(mark func(value.Obj)) {
	mark(i.Class)
	mark(i.Fields)
}
