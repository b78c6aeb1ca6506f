package chunk

import "fmt"

// Opcode is a single bytecode instruction (spec §4.3).
type Opcode uint8

//nolint:revive
const (
	LOADCONST  Opcode = iota // u16 constant index
	LOADTRUE                 // -
	LOADFALSE                // -
	LOADNULL                 // -
	DEFLIST                  // u16 element count
	DEFMAP                   // u16 pair count
	GETSUB                   // -
	SETSUB                   // -
	AND                      // u16 jump offset
	OR                       // u16 jump offset
	NOT                      // -
	NEG                      // -
	EQUAL                    // -
	GREATER                  // -
	LESS                     // -
	ADD                      // -
	SUB                      // -
	MULT                     // -
	DIV                      // -
	MOD                      // -
	POW                      // -
	DEFGLOBAL                // u8 constant index (name)
	GETGLOBAL                // u8 constant index (name)
	SETGLOBAL                // u8 constant index (name)
	GETLOCAL                 // u8 slot
	SETLOCAL                 // u8 slot
	GETUPVAL                 // u8 slot
	SETUPVAL                 // u8 slot
	CLOSEUPVAL                // -
	JUMP                      // u16 forward offset
	JUMPIFF                   // u16 forward offset
	LOOP                      // u16 backward offset
	CLOSURE                   // u8 function constant index, then per-upvalue (u8 isLocal, u8 index)
	CALL                      // u8 argc
	RETURN                    // -
	DEFCLASS                  // u8 constant index (name)
	DEFMETHOD                 // u8 constant index (name)
	INHERIT                   // -
	GETPROP                   // u8 constant index (name)
	SETPROP                   // u8 constant index (name)
	INVPROP                   // u8 constant index (name), u8 argc
	SUPER                     // u8 constant index (name)
	INVSUPER                  // u8 constant index (name), u8 argc
	DUPT                      // -
	POPT                      // -
	POPEXPR                   // -
	TEMP                      // compile-time-only placeholder for break; never reaches the VM
)

var opcodeNames = [...]string{
	LOADCONST:  "LOADCONST",
	LOADTRUE:   "LOADTRUE",
	LOADFALSE:  "LOADFALSE",
	LOADNULL:   "LOADNULL",
	DEFLIST:    "DEFLIST",
	DEFMAP:     "DEFMAP",
	GETSUB:     "GETSUB",
	SETSUB:     "SETSUB",
	AND:        "AND",
	OR:         "OR",
	NOT:        "NOT",
	NEG:        "NEG",
	EQUAL:      "EQUAL",
	GREATER:    "GREATER",
	LESS:       "LESS",
	ADD:        "ADD",
	SUB:        "SUB",
	MULT:       "MULT",
	DIV:        "DIV",
	MOD:        "MOD",
	POW:        "POW",
	DEFGLOBAL:  "DEFGLOBAL",
	GETGLOBAL:  "GETGLOBAL",
	SETGLOBAL:  "SETGLOBAL",
	GETLOCAL:   "GETLOCAL",
	SETLOCAL:   "SETLOCAL",
	GETUPVAL:   "GETUPVAL",
	SETUPVAL:   "SETUPVAL",
	CLOSEUPVAL: "CLOSEUPVAL",
	JUMP:       "JUMP",
	JUMPIFF:    "JUMPIFF",
	LOOP:       "LOOP",
	CLOSURE:    "CLOSURE",
	CALL:       "CALL",
	RETURN:     "RETURN",
	DEFCLASS:   "DEFCLASS",
	DEFMETHOD:  "DEFMETHOD",
	INHERIT:    "INHERIT",
	GETPROP:    "GETPROP",
	SETPROP:    "SETPROP",
	INVPROP:    "INVPROP",
	SUPER:      "SUPER",
	INVSUPER:   "INVSUPER",
	DUPT:       "DUPT",
	POPT:       "POPT",
	POPEXPR:    "POPEXPR",
	TEMP:       "TEMP",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("OP<%d>", op)
}

// OperandSize returns the number of operand bytes following op, used by the
// break-placeholder rewriter (spec §4.4) to skip instructions correctly
// without decoding them.
func OperandSize(op Opcode) int {
	switch op {
	case LOADCONST, AND, OR, JUMP, JUMPIFF, LOOP, TEMP:
		return 2
	case DEFLIST, DEFMAP:
		return 2
	case DEFGLOBAL, GETGLOBAL, SETGLOBAL, GETLOCAL, SETLOCAL, GETUPVAL, SETUPVAL,
		CALL, DEFCLASS, DEFMETHOD, GETPROP, SETPROP, SUPER:
		return 1
	case INVPROP, INVSUPER:
		return 2
	case CLOSURE:
		// variable size: handled specially by callers that have the chunk
		// available (1 byte function index + 2 bytes per upvalue).
		return -1
	default:
		return 0
	}
}
