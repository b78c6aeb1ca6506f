package object

import "github.com/filipefalcaos/falcon/lang/value"

// Upvalue references a variable captured by a closure. While open it points
// directly at its owning VM stack slot; once closed (the slot's frame has
// returned) it owns a copy of the value instead (spec §3).
type Upvalue struct {
	value.ObjHeader
	Location *value.Value // non-nil while open
	Closed   value.Value
	NextOpen *Upvalue // open-upvalue list link; nil at the tail
	Slot     int      // absolute VM stack index while open, for list ordering
}

var _ value.Obj = (*Upvalue)(nil)

func NewOpenUpvalue(slot *value.Value, slotIndex int) *Upvalue {
	return &Upvalue{Location: slot, Slot: slotIndex}
}

func (u *Upvalue) ObjKind() value.ObjKind   { return value.ObjUpvalue }
func (u *Upvalue) Header() *value.ObjHeader { return &u.ObjHeader }
func (u *Upvalue) String() string           { return "<upvalue>" }
func (u *Upvalue) Size() int                { return 40 }

// Trace marks the closed-over value once the upvalue has been closed; while
// open its referent is still reachable from the VM's stack roots directly.
func (u *Upvalue) Trace(mark func(value.Obj)) {
	if u.Location == nil && u.Closed.IsObj() {
		mark(u.Closed.AsObj())
	}
}

// Get returns the upvalue's current value, open or closed.
func (u *Upvalue) Get() value.Value {
	if u.Location != nil {
		return *u.Location
	}
	return u.Closed
}

// Set writes through to the stack slot while open, or to the closed copy.
func (u *Upvalue) Set(v value.Value) {
	if u.Location != nil {
		*u.Location = v
		return
	}
	u.Closed = v
}

// Close snapshots the current value and severs the stack-slot pointer.
func (u *Upvalue) Close() {
	u.Closed = *u.Location
	u.Location = nil
}

// IsOpen reports whether the upvalue still points at a live stack slot.
func (u *Upvalue) IsOpen() bool { return u.Location != nil }
