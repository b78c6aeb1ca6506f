// Package vm implements Falcon's stack-based bytecode interpreter (spec
// §4.8): a fixed-capacity call-frame stack and value stack, a decode-execute
// dispatch loop, and the calling conventions for every callable object kind.
package vm

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/filipefalcaos/falcon/lang/chunk"
	"github.com/filipefalcaos/falcon/lang/compiler"
	"github.com/filipefalcaos/falcon/lang/gc"
	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/value"
)

const (
	maxFrames           = 64
	framesSlotsPerFrame = 256
	stackSize           = maxFrames * framesSlotsPerFrame
)

// VM owns one interpreter session: its value stack, call frames, globals,
// and the heap it allocates through. Exactly one VM exists per `run`/`repl`
// CLI invocation (spec §6).
type VM struct {
	heap *gc.Heap

	stack [stackSize]value.Value
	sp    int
	frames []frame

	openUpvalues *object.Upvalue // head; strictly descending by Slot

	globals    *object.Map
	initString *object.String

	// compiler is non-nil only while Interpret is compiling source, so the
	// compiler's in-progress function chain is scanned as a GC root (spec
	// §4.5, §4.8's "cached pointer to the current compiler").
	compiler *compiler.Compiler

	filename string
	isREPL   bool

	// TraceExec, when set, makes the dispatch loop print one line per
	// instruction to Stderr (the --trace-exec debug flag, spec §6).
	TraceExec bool

	Stdout io.Writer
	Stderr io.Writer

	// pendingNativeErr holds the message passed to the most recent Fail
	// call, consumed by the ObjNative case in callValue right after the
	// native returns value.Err.
	pendingNativeErr error
}

// Fail implements object.NativeRuntime: it records msg and returns the Err
// sentinel, letting a native function report-and-unwind in one statement.
func (vm *VM) Fail(format string, a ...interface{}) value.Value {
	vm.pendingNativeErr = fmt.Errorf(format, a...)
	return value.Err
}

// New returns a VM backed by heap, with natives registered and the heap's
// root provider wired back to the VM.
func New(heap *gc.Heap) *VM {
	vm := &VM{
		heap:    heap,
		globals: object.NewMap(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
	heap.SetRoots(vm)
	vm.initString = heap.Intern([]byte("init"))
	vm.registerNatives()
	return vm
}

// SetFilename sets the name Interpret reports in compile/runtime errors.
func (vm *VM) SetFilename(name string) { vm.filename = name }

// SetREPL toggles interactive-feedback mode: POPEXPR prints non-null
// expression-statement results (spec §9's "possibly-buggy" note, adopted
// deliberately: null yields no output even interactively).
func (vm *VM) SetREPL(on bool) { vm.isREPL = on }

// MarkRoots implements gc.RootMarker (spec §4.5 step 1): every value-stack
// slot in use, every active closure, every open upvalue, the globals table,
// the interned "init" string, and — while compiling — the compiler's chain
// of in-progress functions.
func (vm *VM) MarkRoots(mark func(value.Obj)) {
	for i := 0; i < vm.sp; i++ {
		if vm.stack[i].IsObj() {
			mark(vm.stack[i].AsObj())
		}
	}
	for i := range vm.frames {
		mark(vm.frames[i].closure)
	}
	for uv := vm.openUpvalues; uv != nil; uv = uv.NextOpen {
		mark(uv)
	}
	mark(vm.globals)
	if vm.initString != nil {
		mark(vm.initString)
	}
	if vm.compiler != nil {
		vm.compiler.MarkRoots(mark)
	}
}

func (vm *VM) push(v value.Value) {
	vm.stack[vm.sp] = v
	vm.sp++
}

func (vm *VM) pop() value.Value {
	vm.sp--
	return vm.stack[vm.sp]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.sp-1-distance]
}

func (vm *VM) resetStack() {
	vm.sp = 0
	vm.frames = vm.frames[:0]
	vm.openUpvalues = nil
}

func (vm *VM) curFrame() *frame { return &vm.frames[len(vm.frames)-1] }

// runtimeErrorf reports a runtime fault (spec §7): it captures the call
// stack innermost-first, then resets the VM to a clean, empty-stack state.
func (vm *VM) runtimeErrorf(format string, a ...interface{}) error {
	msg := fmt.Sprintf(format, a...)
	trace := make([]string, 0, len(vm.frames))
	for i := len(vm.frames) - 1; i >= 0; i-- {
		f := &vm.frames[i]
		line := f.closure.Fn.Chunk.SourceLineOf(f.ip - 1)
		name := "script"
		if f.closure.Fn.Name != nil {
			name = f.closure.Fn.Name.String() + "()"
		} else {
			name = "script"
		}
		trace = append(trace, fmt.Sprintf("[Line %d] in %s", line, name))
	}
	vm.resetStack()
	return &RuntimeError{Msg: msg, Trace: trace}
}

// Interpret compiles and runs source under filename (set via SetFilename).
// A compiler.ErrorList error return means compilation failed and nothing
// ran; a *RuntimeError means the program started but faulted partway
// through.
func (vm *VM) Interpret(source []byte) error {
	c := compiler.NewCompiler(vm.heap, vm.filename)
	vm.compiler = c
	fn, err := c.Run(source)
	vm.compiler = nil
	if err != nil {
		return err
	}

	closure := object.NewClosure(fn)
	vm.heap.Track(closure, closure.Size())
	vm.resetStack()
	vm.push(value.FromObj(closure))
	if err := vm.callClosure(closure, 0); err != nil {
		return err
	}
	return vm.run()
}

// --- calling conventions (spec §4.8) ---

func (vm *VM) callValue(callee value.Value, argc int) error {
	if !callee.IsObj() {
		return vm.runtimeErrorf("can only call functions and classes")
	}
	switch callee.AsObj().ObjKind() {
	case value.ObjClosure:
		return vm.callClosure(callee.AsObj().(*object.Closure), argc)

	case value.ObjClass:
		class := callee.AsObj().(*object.Class)
		inst := object.NewInstance(class)
		vm.heap.Track(inst, inst.Size())
		vm.stack[vm.sp-argc-1] = value.FromObj(inst)
		if initializer, ok := class.Method(vm.initString); ok {
			return vm.callClosure(initializer, argc)
		}
		if argc != 0 {
			return vm.runtimeErrorf("expected 0 arguments but got %d", argc)
		}
		return nil

	case value.ObjBoundMethod:
		bound := callee.AsObj().(*object.BoundMethod)
		vm.stack[vm.sp-argc-1] = bound.Receiver
		return vm.callClosure(bound.Method, argc)

	case value.ObjNative:
		native := callee.AsObj().(*object.Native)
		if native.Arity >= 0 && argc != native.Arity {
			return vm.runtimeErrorf("expected %d arguments but got %d", native.Arity, argc)
		}
		args := vm.stack[vm.sp-argc : vm.sp]
		result := native.Fn(vm, args)
		if result.IsErr() {
			err := vm.pendingNativeErr
			vm.pendingNativeErr = nil
			return vm.runtimeErrorf("%s", err)
		}
		vm.sp -= argc + 1
		vm.push(result)
		return nil

	default:
		return vm.runtimeErrorf("can only call functions and classes")
	}
}

func (vm *VM) callClosure(closure *object.Closure, argc int) error {
	if argc != closure.Fn.Arity {
		return vm.runtimeErrorf("expected %d arguments but got %d", closure.Fn.Arity, argc)
	}
	if len(vm.frames) >= maxFrames {
		return vm.runtimeErrorf("stack overflow")
	}
	vm.frames = append(vm.frames, frame{closure: closure, base: vm.sp - argc - 1})
	return nil
}

// invoke implements INVPROP: resolve name against the receiver's fields
// first (and call the field value if found, spec §4.8), else against its
// class's methods (called directly, receiver already in slot 0).
func (vm *VM) invoke(name *object.String, argc int) error {
	receiver := vm.peek(argc)
	if !receiver.IsObjKind(value.ObjInstance) {
		return vm.runtimeErrorf("only instances have methods")
	}
	inst := receiver.AsObj().(*object.Instance)
	if field, ok := inst.Fields.Get(name); ok {
		vm.stack[vm.sp-argc-1] = field
		return vm.callValue(field, argc)
	}
	method, ok := inst.Class.Method(name)
	if !ok {
		return vm.runtimeErrorf("undefined property '%s'", name.String())
	}
	return vm.callClosure(method, argc)
}

func (vm *VM) invokeFromClass(class *object.Class, name *object.String, argc int) error {
	method, ok := class.Method(name)
	if !ok {
		return vm.runtimeErrorf("undefined property '%s'", name.String())
	}
	return vm.callClosure(method, argc)
}

// --- upvalues (spec §4.5, §8 property 7: strictly descending Slot order) ---

func (vm *VM) captureUpvalue(slot int) *object.Upvalue {
	var prev *object.Upvalue
	cur := vm.openUpvalues
	for cur != nil && cur.Slot > slot {
		prev = cur
		cur = cur.NextOpen
	}
	if cur != nil && cur.Slot == slot {
		return cur
	}

	uv := object.NewOpenUpvalue(&vm.stack[slot], slot)
	vm.heap.Track(uv, uv.Size())
	uv.NextOpen = cur
	if prev == nil {
		vm.openUpvalues = uv
	} else {
		prev.NextOpen = uv
	}
	return uv
}

func (vm *VM) closeUpvalues(from int) {
	for vm.openUpvalues != nil && vm.openUpvalues.Slot >= from {
		uv := vm.openUpvalues
		uv.Close()
		vm.openUpvalues = uv.NextOpen
		uv.NextOpen = nil
	}
}

// --- subscript semantics (spec §4.3, §4.8) ---

func (vm *VM) getSubscript() error {
	idx := vm.pop()
	recv := vm.pop()
	switch {
	case recv.IsObjKind(value.ObjList):
		list := recv.AsObj().(*object.List)
		if !idx.IsNum() {
			return vm.runtimeErrorf("list index must be a number")
		}
		i, ok := list.ResolveIndex(int(idx.AsNum()))
		if !ok {
			return vm.runtimeErrorf("%s", object.IndexErr(int(idx.AsNum()), list.Len()))
		}
		vm.push(list.Elems[i])
	case recv.IsObjKind(value.ObjMap):
		m := recv.AsObj().(*object.Map)
		if !idx.IsObjKind(value.ObjString) {
			return vm.runtimeErrorf("map keys must be strings")
		}
		v, ok := m.Get(idx.AsObj().(*object.String))
		if !ok {
			vm.push(value.Null)
		} else {
			vm.push(v)
		}
	default:
		return vm.runtimeErrorf("only lists and maps support subscript access")
	}
	return nil
}

func (vm *VM) setSubscript() error {
	val := vm.pop()
	idx := vm.pop()
	recv := vm.pop()
	switch {
	case recv.IsObjKind(value.ObjList):
		list := recv.AsObj().(*object.List)
		if !idx.IsNum() {
			return vm.runtimeErrorf("list index must be a number")
		}
		i, ok := list.ResolveIndex(int(idx.AsNum()))
		if !ok {
			return vm.runtimeErrorf("%s", object.IndexErr(int(idx.AsNum()), list.Len()))
		}
		list.Elems[i] = val
		vm.push(val)
	case recv.IsObjKind(value.ObjMap):
		m := recv.AsObj().(*object.Map)
		if !idx.IsObjKind(value.ObjString) {
			return vm.runtimeErrorf("map keys must be strings")
		}
		m.Set(idx.AsObj().(*object.String), val)
		vm.push(val)
	case recv.IsObjKind(value.ObjString):
		return vm.runtimeErrorf("strings do not support subscript assignment")
	default:
		return vm.runtimeErrorf("only lists and maps support subscript assignment")
	}
	return nil
}

// --- arithmetic/comparison helpers ---

func (vm *VM) numericBinary(f func(a, b float64) float64) error {
	b := vm.pop()
	a := vm.pop()
	if !a.IsNum() || !b.IsNum() {
		return vm.runtimeErrorf("operands must be two numbers")
	}
	vm.push(value.Num(f(a.AsNum(), b.AsNum())))
	return nil
}

func (vm *VM) compare(greater bool) error {
	b := vm.pop()
	a := vm.pop()
	switch {
	case a.IsNum() && b.IsNum():
		res := a.AsNum() < b.AsNum()
		if greater {
			res = a.AsNum() > b.AsNum()
		}
		vm.push(value.Bool(res))
		return nil
	case a.IsObjKind(value.ObjString) && b.IsObjKind(value.ObjString):
		cmp := a.AsObj().(*object.String).Compare(b.AsObj().(*object.String))
		res := cmp < 0
		if greater {
			res = cmp > 0
		}
		vm.push(value.Bool(res))
		return nil
	default:
		return vm.runtimeErrorf("operands must be two numbers or two strings")
	}
}

// --- bytecode readers ---

func (vm *VM) readByte() byte {
	f := vm.curFrame()
	b := f.closure.Fn.Chunk.Code[f.ip]
	f.ip++
	return b
}

func (vm *VM) readU16() uint16 {
	f := vm.curFrame()
	v := f.closure.Fn.Chunk.ReadU16(f.ip)
	f.ip += 2
	return v
}

func (vm *VM) readConstant() value.Value {
	idx := vm.readU16()
	return vm.curFrame().closure.Fn.Chunk.Constants[idx]
}

func (vm *VM) readNameConstant() *object.String {
	idx := vm.readByte()
	return vm.curFrame().closure.Fn.Chunk.Constants[idx].AsObj().(*object.String)
}

// --- dispatch loop ---

func (vm *VM) run() error {
	for {
		if vm.TraceExec {
			vm.traceInstruction()
		}

		op := chunk.Opcode(vm.readByte())
		switch op {
		case chunk.LOADCONST:
			vm.push(vm.readConstant())
		case chunk.LOADTRUE:
			vm.push(value.Bool(true))
		case chunk.LOADFALSE:
			vm.push(value.Bool(false))
		case chunk.LOADNULL:
			vm.push(value.Null)

		case chunk.DEFLIST:
			n := int(vm.readU16())
			elems := make([]value.Value, n)
			copy(elems, vm.stack[vm.sp-n:vm.sp])
			vm.sp -= n
			list := object.NewList(elems)
			vm.heap.Track(list, list.Size())
			vm.push(value.FromObj(list))

		case chunk.DEFMAP:
			n := int(vm.readU16())
			base := vm.sp - 2*n
			m := object.NewMap()
			vm.heap.Track(m, m.Size())
			for i := 0; i < n; i++ {
				k := vm.stack[base+2*i]
				v := vm.stack[base+2*i+1]
				if !k.IsObjKind(value.ObjString) {
					return vm.runtimeErrorf("map keys must be strings")
				}
				m.Set(k.AsObj().(*object.String), v)
			}
			vm.sp = base
			vm.push(value.FromObj(m))

		case chunk.GETSUB:
			if err := vm.getSubscript(); err != nil {
				return err
			}
		case chunk.SETSUB:
			if err := vm.setSubscript(); err != nil {
				return err
			}

		case chunk.AND:
			offset := vm.readU16()
			if value.IsFalsy(vm.peek(0)) {
				vm.curFrame().ip += int(offset)
			}
		case chunk.OR:
			offset := vm.readU16()
			if !value.IsFalsy(vm.peek(0)) {
				vm.curFrame().ip += int(offset)
			}

		case chunk.NOT:
			vm.push(value.Bool(value.IsFalsy(vm.pop())))
		case chunk.NEG:
			v := vm.pop()
			if !v.IsNum() {
				return vm.runtimeErrorf("operand must be a number")
			}
			vm.push(value.Num(-v.AsNum()))

		case chunk.EQUAL:
			b := vm.pop()
			a := vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case chunk.GREATER:
			if err := vm.compare(true); err != nil {
				return err
			}
		case chunk.LESS:
			if err := vm.compare(false); err != nil {
				return err
			}

		case chunk.ADD:
			b := vm.pop()
			a := vm.pop()
			switch {
			case a.IsNum() && b.IsNum():
				vm.push(value.Num(a.AsNum() + b.AsNum()))
			case a.IsObjKind(value.ObjString) && b.IsObjKind(value.ObjString):
				sa := a.AsObj().(*object.String)
				sb := b.AsObj().(*object.String)
				concatenated := make([]byte, 0, len(sa.Bytes)+len(sb.Bytes))
				concatenated = append(concatenated, sa.Bytes...)
				concatenated = append(concatenated, sb.Bytes...)
				// Canonicalize (intern) before the result ever reaches the
				// stack, so pointer equality still holds for computed
				// strings (spec §9).
				vm.push(value.FromObj(vm.heap.Intern(concatenated)))
			default:
				return vm.runtimeErrorf("operands must be two numbers or two strings")
			}
		case chunk.SUB:
			if err := vm.numericBinary(func(a, b float64) float64 { return a - b }); err != nil {
				return err
			}
		case chunk.MULT:
			if err := vm.numericBinary(func(a, b float64) float64 { return a * b }); err != nil {
				return err
			}
		case chunk.DIV:
			b := vm.pop()
			a := vm.pop()
			if !a.IsNum() || !b.IsNum() {
				return vm.runtimeErrorf("operands must be two numbers")
			}
			if b.AsNum() == 0 {
				return vm.runtimeErrorf("Divisor must be a non-zero number.")
			}
			vm.push(value.Num(a.AsNum() / b.AsNum()))
		case chunk.MOD:
			b := vm.pop()
			a := vm.pop()
			if !a.IsNum() || !b.IsNum() {
				return vm.runtimeErrorf("operands must be two numbers")
			}
			// Integer modulus: both operands truncate toward zero first
			// (spec §5), so the zero-divisor check must run after truncation
			// too — a divisor like 0.5 truncates to 0 and must still error.
			ai := math.Trunc(a.AsNum())
			bi := math.Trunc(b.AsNum())
			if bi == 0 {
				return vm.runtimeErrorf("Divisor must be a non-zero number.")
			}
			vm.push(value.Num(math.Mod(ai, bi)))
		case chunk.POW:
			if err := vm.numericBinary(math.Pow); err != nil {
				return err
			}

		case chunk.DEFGLOBAL:
			name := vm.readNameConstant()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case chunk.GETGLOBAL:
			name := vm.readNameConstant()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeErrorf("undefined variable '%s'", name.String())
			}
			vm.push(v)
		case chunk.SETGLOBAL:
			name := vm.readNameConstant()
			if _, ok := vm.globals.Get(name); !ok {
				return vm.runtimeErrorf("undefined variable '%s'", name.String())
			}
			vm.globals.Set(name, vm.peek(0))

		case chunk.GETLOCAL:
			slot := vm.readByte()
			vm.push(vm.stack[vm.curFrame().base+int(slot)])
		case chunk.SETLOCAL:
			slot := vm.readByte()
			vm.stack[vm.curFrame().base+int(slot)] = vm.peek(0)

		case chunk.GETUPVAL:
			slot := vm.readByte()
			vm.push(vm.curFrame().closure.Upvalues[slot].Get())
		case chunk.SETUPVAL:
			slot := vm.readByte()
			vm.curFrame().closure.Upvalues[slot].Set(vm.peek(0))
		case chunk.CLOSEUPVAL:
			vm.closeUpvalues(vm.sp - 1)
			vm.pop()

		case chunk.JUMP:
			offset := vm.readU16()
			vm.curFrame().ip += int(offset)
		case chunk.JUMPIFF:
			offset := vm.readU16()
			if value.IsFalsy(vm.peek(0)) {
				vm.curFrame().ip += int(offset)
			}
		case chunk.LOOP:
			offset := vm.readU16()
			vm.curFrame().ip -= int(offset)

		case chunk.CLOSURE:
			idx := vm.readByte()
			fn := vm.curFrame().closure.Fn.Chunk.Constants[idx].AsObj().(*object.Function)
			closure := object.NewClosure(fn)
			vm.heap.Track(closure, closure.Size())
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := vm.readByte()
				index := vm.readByte()
				if isLocal == 1 {
					closure.Upvalues[i] = vm.captureUpvalue(vm.curFrame().base + int(index))
				} else {
					closure.Upvalues[i] = vm.curFrame().closure.Upvalues[index]
				}
			}
			vm.push(value.FromObj(closure))

		case chunk.CALL:
			argc := int(vm.readByte())
			callee := vm.peek(argc)
			if err := vm.callValue(callee, argc); err != nil {
				return err
			}

		case chunk.RETURN:
			result := vm.pop()
			finished := vm.frames[len(vm.frames)-1]
			vm.closeUpvalues(finished.base)
			vm.frames = vm.frames[:len(vm.frames)-1]
			if len(vm.frames) == 0 {
				vm.pop() // the top-level script closure itself
				return nil
			}
			vm.sp = finished.base
			vm.push(result)

		case chunk.DEFCLASS:
			name := vm.readNameConstant()
			class := object.NewClass(name)
			vm.heap.Track(class, class.Size())
			vm.push(value.FromObj(class))
		case chunk.DEFMETHOD:
			name := vm.readNameConstant()
			method := vm.peek(0).AsObj().(*object.Closure)
			class := vm.peek(1).AsObj().(*object.Class)
			class.Methods.Set(name, value.FromObj(method))
			vm.pop()
		case chunk.INHERIT:
			superVal := vm.peek(1)
			if !superVal.IsObjKind(value.ObjClass) {
				return vm.runtimeErrorf("superclass must be a class")
			}
			super := superVal.AsObj().(*object.Class)
			sub := vm.peek(0).AsObj().(*object.Class)
			for _, k := range super.Methods.Keys() {
				v, _ := super.Methods.Get(k)
				sub.Methods.Set(k, v)
			}
			vm.pop() // subclass; the superclass stays as the "super" local

		case chunk.GETPROP:
			name := vm.readNameConstant()
			receiver := vm.peek(0)
			if !receiver.IsObjKind(value.ObjInstance) {
				return vm.runtimeErrorf("only instances have properties")
			}
			inst := receiver.AsObj().(*object.Instance)
			if v, ok := inst.Fields.Get(name); ok {
				vm.pop()
				vm.push(v)
				break
			}
			method, ok := inst.Class.Method(name)
			if !ok {
				return vm.runtimeErrorf("undefined property '%s'", name.String())
			}
			bound := object.NewBoundMethod(receiver, method)
			vm.heap.Track(bound, bound.Size())
			vm.pop()
			vm.push(value.FromObj(bound))
		case chunk.SETPROP:
			name := vm.readNameConstant()
			receiver := vm.peek(1)
			if !receiver.IsObjKind(value.ObjInstance) {
				return vm.runtimeErrorf("only instances have fields")
			}
			inst := receiver.AsObj().(*object.Instance)
			val := vm.pop()
			inst.Fields.Set(name, val)
			vm.pop()
			vm.push(val)
		case chunk.INVPROP:
			name := vm.readNameConstant()
			argc := int(vm.readByte())
			if err := vm.invoke(name, argc); err != nil {
				return err
			}
		case chunk.SUPER:
			name := vm.readNameConstant()
			super := vm.pop().AsObj().(*object.Class)
			method, ok := super.Method(name)
			if !ok {
				return vm.runtimeErrorf("undefined property '%s'", name.String())
			}
			receiver := vm.pop()
			bound := object.NewBoundMethod(receiver, method)
			vm.heap.Track(bound, bound.Size())
			vm.push(value.FromObj(bound))
		case chunk.INVSUPER:
			name := vm.readNameConstant()
			argc := int(vm.readByte())
			super := vm.pop().AsObj().(*object.Class)
			if err := vm.invokeFromClass(super, name, argc); err != nil {
				return err
			}

		case chunk.DUPT:
			vm.push(vm.peek(0))
		case chunk.POPT:
			vm.pop()
		case chunk.POPEXPR:
			v := vm.pop()
			if vm.isREPL && !v.IsNull() {
				fmt.Fprintln(vm.Stdout, value.ToString(v))
			}

		case chunk.TEMP:
			return vm.runtimeErrorf("unreachable TEMP opcode executed")

		default:
			return vm.runtimeErrorf("unknown opcode %d", op)
		}
	}
}

// traceInstruction prints the current instruction and value stack to Stderr
// (the --trace-exec debug flag, spec §6).
func (vm *VM) traceInstruction() {
	f := vm.curFrame()
	fmt.Fprintf(vm.Stderr, "          ")
	for i := 0; i < vm.sp; i++ {
		fmt.Fprintf(vm.Stderr, "[ %s ]", value.ToString(vm.stack[i]))
	}
	fmt.Fprintln(vm.Stderr)
	fmt.Fprintf(vm.Stderr, "%04d %s\n", f.ip, chunk.Opcode(f.closure.Fn.Chunk.Code[f.ip]))
}
