package vm

import (
	"fmt"
	"strconv"
	"time"

	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/value"
)

// registerNatives installs every builtin (spec §6) as a global binding,
// exactly as if `var name = <native fn>;` had run at startup.
func (vm *VM) registerNatives() {
	vm.defineNative("print", -1, vm.nativePrint)
	vm.defineNative("len", 1, vm.nativeLen)
	vm.defineNative("clock", 0, nativeClock)
	vm.defineNative("type", 1, vm.nativeType)
	vm.defineNative("str", 1, vm.nativeStr)
	vm.defineNative("num", 1, vm.nativeNum)
}

func (vm *VM) defineNative(name string, arity int, fn object.NativeFn) {
	native := object.NewNative(name, arity, fn)
	vm.heap.Track(native, native.Size())
	key := vm.heap.Intern([]byte(name))
	vm.globals.Set(key, value.FromObj(native))
}

// nativePrint writes every argument's ToString rendering to Stdout,
// space-separated, followed by a newline, and returns null.
func (vm *VM) nativePrint(rt object.NativeRuntime, args []value.Value) value.Value {
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(vm.Stdout, " ")
		}
		fmt.Fprint(vm.Stdout, value.ToString(a))
	}
	fmt.Fprintln(vm.Stdout)
	return value.Null
}

// nativeLen reports the length of a string, list, or map (spec §6); any
// other argument kind is a runtime error.
func (vm *VM) nativeLen(rt object.NativeRuntime, args []value.Value) value.Value {
	a := args[0]
	if a.IsObj() {
		if sized, ok := a.AsObj().(interface{ Len() int }); ok {
			return value.Num(float64(sized.Len()))
		}
	}
	return rt.Fail("len() expects a string, list, or map")
}

// nativeClock returns seconds elapsed since the Unix epoch, as a float
// (spec §6), for benchmarking scripts.
func nativeClock(rt object.NativeRuntime, args []value.Value) value.Value {
	return value.Num(float64(time.Now().UnixNano()) / 1e9)
}

// nativeType names a value's runtime kind: "bool", "null", "number",
// "string", "list", "map", "function", "class", "instance", etc (spec §6).
func (vm *VM) nativeType(rt object.NativeRuntime, args []value.Value) value.Value {
	a := args[0]
	switch {
	case a.IsBool():
		return value.FromObj(vm.heap.Intern([]byte("bool")))
	case a.IsNull():
		return value.FromObj(vm.heap.Intern([]byte("null")))
	case a.IsNum():
		return value.FromObj(vm.heap.Intern([]byte("number")))
	case a.IsObj():
		switch a.AsObj().ObjKind() {
		case value.ObjString:
			return value.FromObj(vm.heap.Intern([]byte("string")))
		case value.ObjList:
			return value.FromObj(vm.heap.Intern([]byte("list")))
		case value.ObjMap:
			return value.FromObj(vm.heap.Intern([]byte("map")))
		case value.ObjClass:
			return value.FromObj(vm.heap.Intern([]byte("class")))
		case value.ObjInstance:
			return value.FromObj(vm.heap.Intern([]byte("instance")))
		default:
			return value.FromObj(vm.heap.Intern([]byte("function")))
		}
	default:
		return value.FromObj(vm.heap.Intern([]byte("unknown")))
	}
}

// nativeStr coerces any value to its display string (spec §6), interning
// the result so it joins the rest of the runtime's canonical strings.
func (vm *VM) nativeStr(rt object.NativeRuntime, args []value.Value) value.Value {
	return value.FromObj(vm.heap.Intern([]byte(value.ToString(args[0]))))
}

// nativeNum parses a string into a number, or passes a number through
// unchanged; any other argument kind is a runtime error (spec §6).
func (vm *VM) nativeNum(rt object.NativeRuntime, args []value.Value) value.Value {
	a := args[0]
	if a.IsNum() {
		return a
	}
	if a.IsObjKind(value.ObjString) {
		s := a.AsObj().(*object.String)
		f, err := strconv.ParseFloat(s.String(), 64)
		if err != nil {
			return rt.Fail("num() could not parse %q as a number", s.String())
		}
		return value.Num(f)
	}
	return rt.Fail("num() expects a string or number")
}
