package object

import (
	"strconv"
	"strings"

	"github.com/filipefalcaos/falcon/lang/value"
)

// List is a dynamic, geometrically-growing array of Values (spec §3),
// created by OP_DEFLIST. Append grows the backing array from capacity 8,
// doubling each time it fills (spec §5).
type List struct {
	value.ObjHeader
	Elems []value.Value
}

var _ value.Obj = (*List)(nil)

func NewList(elems []value.Value) *List {
	return &List{Elems: elems}
}

func (l *List) ObjKind() value.ObjKind   { return value.ObjList }
func (l *List) Header() *value.ObjHeader { return &l.ObjHeader }
func (l *List) Size() int                { return 24 + 16*cap(l.Elems) }
func (l *List) Len() int                 { return len(l.Elems) }

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range l.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		if e.IsObjKind(value.ObjString) {
			sb.WriteByte('"')
			sb.WriteString(value.ToString(e))
			sb.WriteByte('"')
		} else {
			sb.WriteString(value.ToString(e))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func (l *List) Trace(mark func(value.Obj)) {
	for _, e := range l.Elems {
		if e.IsObj() {
			mark(e.AsObj())
		}
	}
}

// ResolveIndex applies spec §4.3's Python-style negative-index wrap and
// bounds check, returning the resolved non-negative index and true, or
// (0, false) if i is out of range after wrapping.
func (l *List) ResolveIndex(i int) (int, bool) {
	n := len(l.Elems)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

func (l *List) Append(v value.Value) {
	if len(l.Elems) == cap(l.Elems) {
		newCap := 2 * cap(l.Elems)
		if newCap < 8 {
			newCap = 8
		}
		grown := make([]value.Value, len(l.Elems), newCap)
		copy(grown, l.Elems)
		l.Elems = grown
	}
	l.Elems = append(l.Elems, v)
}

// IndexErr formats the standard out-of-bounds message, used by both GETSUB
// and SETSUB in the VM.
func IndexErr(i, n int) string {
	return "list index " + strconv.Itoa(i) + " out of range (length " + strconv.Itoa(n) + ")"
}
