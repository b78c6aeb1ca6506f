// Package value defines Falcon's tagged-union runtime value and the minimal
// Obj interface that heap objects (implemented by package object) satisfy.
// Keeping Obj here — rather than in package object — lets value.Value
// reference heap objects without object importing value creating a cycle:
// object depends on value, never the reverse.
package value

import (
	"fmt"
	"math"
	"strconv"
)

// Kind tags a Value's immediate variant, or Obj for anything heap-allocated.
type Kind uint8

const (
	KindBool Kind = iota
	KindNull
	KindNum
	KindObj
	KindErr // sentinel: a native already reported a runtime error
)

// ObjKind tags the concrete kind of a heap object.
type ObjKind uint8

const (
	ObjString ObjKind = iota
	ObjFunction
	ObjUpvalue
	ObjClosure
	ObjClass
	ObjInstance
	ObjBoundMethod
	ObjList
	ObjMap
	ObjNative
)

func (k ObjKind) String() string {
	switch k {
	case ObjString:
		return "string"
	case ObjFunction:
		return "function"
	case ObjUpvalue:
		return "upvalue"
	case ObjClosure:
		return "closure"
	case ObjClass:
		return "class"
	case ObjInstance:
		return "instance"
	case ObjBoundMethod:
		return "bound method"
	case ObjList:
		return "list"
	case ObjMap:
		return "map"
	case ObjNative:
		return "native function"
	default:
		return "unknown"
	}
}

// ObjHeader is embedded by every heap object. It carries the GC mark bit and
// the object's link in the VM's single global allocation list (spec §3: a
// GC-owned arena, not per-object ownership).
type ObjHeader struct {
	Marked bool
	Next   Obj
}

// Obj is implemented by every heap-allocated kind (string, function,
// upvalue, closure, class, instance, bound method, list, map, native).
type Obj interface {
	ObjKind() ObjKind
	String() string
	Header() *ObjHeader
	// Trace calls mark for every Obj directly reachable from the receiver, so
	// the collector can blacken it without a type switch living outside this
	// package's implementers.
	Trace(mark func(Obj))
	// Size is the receiver's approximate heap footprint in bytes, used for the
	// GC's bytesAllocated/nextGC bookkeeping.
	Size() int
}

// Value is Falcon's tagged union: Bool | Null | Num(f64) | Obj(ObjRef) | Err.
type Value struct {
	kind Kind
	b    bool
	n    float64
	o    Obj
}

var (
	Null = Value{kind: KindNull}
	Err  = Value{kind: KindErr}
)

func Bool(b bool) Value  { return Value{kind: KindBool, b: b} }
func Num(n float64) Value { return Value{kind: KindNum, n: n} }
func FromObj(o Obj) Value { return Value{kind: KindObj, o: o} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsBool() bool { return v.kind == KindBool }
func (v Value) IsNull() bool { return v.kind == KindNull }
func (v Value) IsNum() bool  { return v.kind == KindNum }
func (v Value) IsObj() bool  { return v.kind == KindObj }
func (v Value) IsErr() bool  { return v.kind == KindErr }

func (v Value) AsBool() bool { return v.b }
func (v Value) AsNum() float64 { return v.n }
func (v Value) AsObj() Obj     { return v.o }

// IsObjKind reports whether v holds a heap object of exactly kind k.
func (v Value) IsObjKind(k ObjKind) bool {
	return v.kind == KindObj && v.o.ObjKind() == k
}

// IsFalsy implements spec §4.6: Null, false, 0, "", [] and {} are falsy;
// everything else is truthy.
func IsFalsy(v Value) bool {
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return !v.b
	case KindNum:
		return v.n == 0
	case KindObj:
		if sz, ok := v.o.(interface{ Len() int }); ok {
			return sz.Len() == 0
		}
		return false
	default:
		return false
	}
}

// Equal implements spec §3: identity for Obj, structural for immediates.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull, KindErr:
		return true
	case KindBool:
		return a.b == b.b
	case KindNum:
		return a.n == b.n
	case KindObj:
		return a.o == b.o
	default:
		return false
	}
}

// ToString renders v the way print()/string coercion do: numbers use %.14g,
// heap objects defer to their own String().
func ToString(v Value) string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNum:
		return formatNum(v.n, '.', 14)
	case KindObj:
		return v.o.String()
	case KindErr:
		return "<error>"
	default:
		return "<invalid>"
	}
}

// formatNum mirrors C's printf("%.14g", n) / printf("%g", n) semantics close
// enough for script output: trim trailing zeros, use scientific notation
// only for very large/small magnitudes.
func formatNum(n float64, _ byte, prec int) string {
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	if math.IsNaN(n) {
		return "nan"
	}
	return strconv.FormatFloat(n, 'g', prec, 64)
}

// GoStringer is satisfied by Value for debug dumps.
func (v Value) GoString() string { return fmt.Sprintf("Value(%s)", ToString(v)) }
