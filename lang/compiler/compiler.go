// Package compiler implements Falcon's single-pass, tree-free compiler: a
// Pratt expression parser wired directly into a recursive-descent statement
// parser that emits bytecode into a chunk.Chunk as it goes, with no
// intermediate AST (spec §4.4).
package compiler

import (
	"github.com/filipefalcaos/falcon/lang/chunk"
	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/scanner"
	"github.com/filipefalcaos/falcon/lang/token"
	"github.com/filipefalcaos/falcon/lang/value"
)

const (
	maxLocals       = 256
	maxUpvalues      = 256
	maxArgs          = 255
	maxConstants     = 65535
	maxListMapElems  = 65535
	maxNameConstants = 256 // DEFGLOBAL/GETPROP/etc. name operands are u8 (spec §4.3)
)

type local struct {
	name     string
	depth    int // -1 while the initializer is still being compiled
	captured bool
}

type upvalue struct {
	index   uint8
	isLocal bool
}

// loopState tracks the innermost enclosing loop so break/next know what
// scope depth to unwind to and what offset to jump back to.
type loopState struct {
	enclosing      *loopState
	scopeDepth     int
	continueTarget int // where `next` jumps: the condition (while) or increment (for)
	bodyStart      int // chunk offset where TEMP-rewriting starts scanning
}

// funcCompiler is one stack frame of function compilers, mirroring the
// nested-closures structure of the source itself (spec §4.4: "the compiler
// maintains one FunctionCompiler per lexical function nesting level").
type funcCompiler struct {
	enclosing *funcCompiler
	fn        *object.Function
	fnType    object.FunctionType
	locals    []local
	upvalues  []upvalue
	scopeDepth int
	loop      *loopState
}

type classCompiler struct {
	enclosing *classCompiler
	hasSuper  bool
}

// Compiler drives one compilation pass over a single source buffer.
type Compiler struct {
	sc       scanner.Scanner
	alloc    object.Allocator
	filename string

	prev, cur       token.Token
	prevVal, curVal token.Value

	hadError  bool
	panicMode bool
	errs      ErrorList

	fc *funcCompiler
	cc *classCompiler
}

// NewCompiler prepares a compiler for a single Run call. Callers that need
// to expose the in-progress compiler as a GC root (the VM, via its own
// MarkRoots) hold onto the returned *Compiler between NewCompiler and Run.
func NewCompiler(alloc object.Allocator, filename string) *Compiler {
	return &Compiler{alloc: alloc, filename: filename}
}

// Run compiles source into a top-level script Function. Every allocation it
// performs (interned strings, the Function object itself, nested closures)
// goes through the Allocator passed to NewCompiler, so the resulting object
// graph is already linked into the GC heap when Run returns.
func (c *Compiler) Run(source []byte) (*object.Function, error) {
	c.sc.Init(source)
	c.pushFunc(object.TypeScript, "")

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}

	fn := c.endFunc()
	if c.hadError {
		return nil, c.errs.Err()
	}
	return fn, nil
}

// Compile is a convenience wrapper around NewCompiler+Run for callers (tests,
// simple tools) that have no need to root the in-progress compiler
// themselves.
func Compile(alloc object.Allocator, source []byte, filename string) (*object.Function, error) {
	return NewCompiler(alloc, filename).Run(source)
}

// MarkRoots marks every function under active compilation as a GC root
// (spec §4.5: "the compiler and its chain of in-progress functions are
// themselves roots", since a nested function literal's constant pool can
// already hold heap objects before the enclosing function — and hence the
// whole chain — is reachable from anywhere else). The VM holds a pointer to
// the active *Compiler (nil outside of Compile) and forwards to this method
// from its own MarkRoots.
func (c *Compiler) MarkRoots(mark func(value.Obj)) {
	for fc := c.fc; fc != nil; fc = fc.enclosing {
		if fc.fn != nil {
			mark(fc.fn)
		}
	}
}

// --- function-compiler stack ---

func (c *Compiler) pushFunc(ft object.FunctionType, name string) {
	fn := &object.Function{Type: ft}
	if name != "" {
		fn.Name = c.alloc.Intern([]byte(name))
	}
	fc := &funcCompiler{enclosing: c.fc, fn: fn, fnType: ft}

	// Slot 0 is reserved: `this` for methods/initializers, unnamed (but still
	// occupied) for plain functions and the top-level script.
	recv := ""
	if ft == object.TypeMethod || ft == object.TypeInit {
		recv = "this"
	}
	fc.locals = append(fc.locals, local{name: recv, depth: 0})

	c.fc = fc
}

func (c *Compiler) endFunc() *object.Function {
	c.emitReturn()
	fn := c.fc.fn
	fn.UpvalueCount = len(c.fc.upvalues)
	c.fc = c.fc.enclosing
	return fn
}

func (c *Compiler) emitReturn() {
	if c.fc.fnType == object.TypeInit {
		c.emitBytes(chunk.GETLOCAL, 0)
	} else {
		c.emitOp(chunk.LOADNULL)
	}
	c.emitOp(chunk.RETURN)
}

// --- low-level emission ---

func (c *Compiler) chunkPtr() *chunk.Chunk { return &c.fc.fn.Chunk }

func (c *Compiler) line() int {
	l, _ := c.prevVal.Pos.LineCol()
	return l
}

func (c *Compiler) emitByte(b byte)            { c.chunkPtr().Write(b, c.line()) }
func (c *Compiler) emitOp(op chunk.Opcode)      { c.emitByte(byte(op)) }
func (c *Compiler) emitBytes(op chunk.Opcode, b byte) {
	c.emitOp(op)
	c.emitByte(b)
}

func (c *Compiler) emitConstant(v value.Value) {
	idx := c.chunkPtr().AddConstant(v)
	if idx > maxConstants {
		c.error("too many constants in one chunk")
		idx = 0
	}
	c.chunkPtr().WriteConstant(chunk.LOADCONST, idx, c.line())
}

// nameConstant interns s and adds it to the constant pool, for the family of
// opcodes (DEFGLOBAL, GETPROP, DEFMETHOD, ...) whose name operand is a
// single byte (spec §4.3).
func (c *Compiler) nameConstant(s string) byte {
	name := c.alloc.Intern([]byte(s))
	idx := c.chunkPtr().AddConstant(value.FromObj(name))
	if idx >= maxNameConstants {
		c.error("too many distinct names in one chunk")
		return 0
	}
	return byte(idx)
}

// emitJump writes op followed by a 2-byte placeholder and returns the
// placeholder's offset, to be patched once the jump target is known.
func (c *Compiler) emitJump(op chunk.Opcode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return c.chunkPtr().Len() - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := c.chunkPtr().Len() - (offset + 2)
	if jump > 0xffff {
		c.error("too much code to jump over")
		return
	}
	ch := c.chunkPtr()
	ch.Code[offset] = byte(jump)
	ch.Code[offset+1] = byte(jump >> 8)
}

// emitLoop writes a backward LOOP jump to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(chunk.LOOP)
	offset := c.chunkPtr().Len() - loopStart + 2
	if offset > 0xffff {
		c.error("loop body too large")
	}
	c.emitByte(byte(offset))
	c.emitByte(byte(offset >> 8))
}

// --- token stream ---

func (c *Compiler) advance() {
	c.prev, c.prevVal = c.cur, c.curVal
	for {
		c.cur, c.curVal = c.sc.Scan()
		if c.cur != token.ERROR {
			break
		}
		c.errorAtCurrent(c.curVal.Str)
	}
}

func (c *Compiler) check(t token.Token) bool { return c.cur == t }

func (c *Compiler) match(t token.Token) bool {
	if !c.check(t) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(t token.Token, msg string) {
	if c.cur == t {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

// --- error reporting ---

func (c *Compiler) errorAt(v token.Value, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	c.errs.Add(&CompileError{
		Filename: c.filename,
		Pos:      v.Pos,
		Msg:      msg,
		Line:     string(c.sc.CurrentSourceLine()),
	})
}

func (c *Compiler) errorAtCurrent(msg string) { c.errorAt(c.curVal, msg) }
func (c *Compiler) error(msg string)          { c.errorAt(c.prevVal, msg) }

// synchronize discards tokens until it reaches a plausible statement
// boundary, so one error reports instead of a cascade (spec §7).
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.cur != token.EOF {
		if c.prev == token.SEMI {
			return
		}
		switch c.cur {
		case token.CLASS, token.FN, token.VAR, token.FOR, token.IF,
			token.WHILE, token.SWITCH, token.RETURN, token.BREAK, token.NEXT:
			return
		}
		c.advance()
	}
}

// --- scopes and variable resolution ---

func (c *Compiler) beginScope() { c.fc.scopeDepth++ }

func (c *Compiler) endScope() {
	c.fc.scopeDepth--
	locals := c.fc.locals
	for len(locals) > 0 && locals[len(locals)-1].depth > c.fc.scopeDepth {
		if locals[len(locals)-1].captured {
			c.emitOp(chunk.CLOSEUPVAL)
		} else {
			c.emitOp(chunk.POPT)
		}
		locals = locals[:len(locals)-1]
	}
	c.fc.locals = locals
}

// emitPopLocalsAbove discards (at runtime) every local deeper than depth,
// without removing them from the compiler's own local list — used by
// break/next, which jump out of a scope that compilation continues past
// (spec §4.4).
func (c *Compiler) emitPopLocalsAbove(depth int) {
	for i := len(c.fc.locals) - 1; i >= 0 && c.fc.locals[i].depth > depth; i-- {
		if c.fc.locals[i].captured {
			c.emitOp(chunk.CLOSEUPVAL)
		} else {
			c.emitOp(chunk.POPT)
		}
	}
}

func (c *Compiler) declareLocal() {
	if c.fc.scopeDepth == 0 {
		return
	}
	name := c.prevVal.Raw
	for i := len(c.fc.locals) - 1; i >= 0; i-- {
		l := c.fc.locals[i]
		if l.depth != -1 && l.depth < c.fc.scopeDepth {
			break
		}
		if l.name == name {
			c.error("variable with this name already declared in this scope")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name string) {
	if len(c.fc.locals) >= maxLocals {
		c.error("too many local variables in function")
		return
	}
	c.fc.locals = append(c.fc.locals, local{name: name, depth: -1})
}

func (c *Compiler) markInitialized() {
	if c.fc.scopeDepth == 0 {
		return
	}
	c.fc.locals[len(c.fc.locals)-1].depth = c.fc.scopeDepth
}

// resolveLocal returns the slot of the innermost local named name, and
// whether it is still mid-initialization (depth == -1, meaning its own
// initializer referenced it — spec §4.4 forbids this).
func resolveLocal(fc *funcCompiler, name string) (int, bool) {
	for i := len(fc.locals) - 1; i >= 0; i-- {
		if fc.locals[i].name == name {
			return i, fc.locals[i].depth == -1
		}
	}
	return -1, false
}

func (c *Compiler) resolveUpvalue(fc *funcCompiler, name string) int {
	if fc.enclosing == nil {
		return -1
	}
	if slot, pending := resolveLocal(fc.enclosing, name); slot != -1 {
		if pending {
			c.error("can't read local variable in its own initializer")
		}
		fc.enclosing.locals[slot].captured = true
		return c.addUpvalue(fc, uint8(slot), true)
	}
	if up := c.resolveUpvalue(fc.enclosing, name); up != -1 {
		return c.addUpvalue(fc, uint8(up), false)
	}
	return -1
}

func (c *Compiler) addUpvalue(fc *funcCompiler, index uint8, isLocal bool) int {
	for i, u := range fc.upvalues {
		if u.index == index && u.isLocal == isLocal {
			return i
		}
	}
	if len(fc.upvalues) >= maxUpvalues {
		c.error("too many closure variables in function")
		return 0
	}
	fc.upvalues = append(fc.upvalues, upvalue{index: index, isLocal: isLocal})
	return len(fc.upvalues) - 1
}

func (c *Compiler) namedVariable(nameVal token.Value, canAssign bool) {
	var getOp, setOp chunk.Opcode
	var arg byte

	if slot, pending := resolveLocal(c.fc, nameVal.Raw); slot != -1 {
		if pending {
			c.error("can't read local variable in its own initializer")
		}
		getOp, setOp, arg = chunk.GETLOCAL, chunk.SETLOCAL, byte(slot)
	} else if up := c.resolveUpvalue(c.fc, nameVal.Raw); up != -1 {
		getOp, setOp, arg = chunk.GETUPVAL, chunk.SETUPVAL, byte(up)
	} else {
		arg = c.nameConstant(nameVal.Raw)
		getOp, setOp = chunk.GETGLOBAL, chunk.SETGLOBAL
	}

	if canAssign && c.match(token.EQ) {
		c.expression()
		c.emitBytes(setOp, arg)
		return
	}
	if canAssign {
		if op, ok := compoundOp(c.cur); ok {
			c.advance()
			c.emitBytes(getOp, arg)
			c.expression()
			c.emitOp(op)
			c.emitBytes(setOp, arg)
			return
		}
	}
	c.emitBytes(getOp, arg)
}

// --- Pratt expression parsing ---

func (c *Compiler) parsePrecedence(level Precedence) {
	c.advance()
	rule := rules[c.prev]
	if rule.prefix == nil {
		c.error("expected an expression")
		return
	}
	canAssign := level <= PrecTernary
	rule.prefix(c, canAssign)

	for level <= rules[c.cur].prec {
		c.advance()
		infix := rules[c.prev].infix
		infix(c, canAssign)
	}

	if canAssign && c.match(token.EQ) {
		c.error("invalid assignment target")
	}
}

func (c *Compiler) expression() { c.parsePrecedence(PrecAssign) }

func (c *Compiler) argumentList() byte {
	var argc int
	if !c.check(token.RPAREN) {
		for {
			c.expression()
			argc++
			if argc > maxArgs {
				c.error("can't have more than 255 arguments")
			}
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "expected ')' after arguments")
	return byte(argc)
}

// --- declarations ---

func (c *Compiler) declaration() {
	switch {
	case c.match(token.CLASS):
		c.classDeclaration()
	case c.match(token.FN):
		c.fnDeclaration()
	case c.match(token.VAR):
		c.varDeclaration()
	default:
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) parseVariable(msg string) byte {
	c.consume(token.IDENT, msg)
	c.declareLocal()
	if c.fc.scopeDepth > 0 {
		return 0
	}
	return c.nameConstant(c.prevVal.Raw)
}

func (c *Compiler) defineVariable(global byte) {
	if c.fc.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitBytes(chunk.DEFGLOBAL, global)
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("expected a variable name")
	if c.match(token.EQ) {
		c.expression()
	} else {
		c.emitOp(chunk.LOADNULL)
	}
	c.consume(token.SEMI, "expected ';' after variable declaration")
	c.defineVariable(global)
}

func (c *Compiler) fnDeclaration() {
	global := c.parseVariable("expected a function name")
	c.markInitialized()
	c.function(object.TypeFunction)
	c.defineVariable(global)
}

// function compiles a parameter list and body into a new Function, nested
// under c.fc, then emits the CLOSURE instruction that captures it in the
// enclosing function (spec §4.4).
func (c *Compiler) function(ft object.FunctionType) {
	name := c.prevVal.Raw
	c.pushFunc(ft, name)
	fc := c.fc
	c.beginScope()

	c.consume(token.LPAREN, "expected '(' after function name")
	if !c.check(token.RPAREN) {
		for {
			fc.fn.Arity++
			if fc.fn.Arity > maxArgs {
				c.errorAtCurrent("can't have more than 255 parameters")
			}
			paramConst := c.parseVariable("expected a parameter name")
			c.defineVariable(paramConst)
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RPAREN, "expected ')' after parameters")
	c.consume(token.LBRACE, "expected '{' before function body")
	c.block()

	fn := c.endFunc()
	idx := c.chunkPtr().AddConstant(value.FromObj(fn))
	if idx >= maxNameConstants {
		c.error("too many functions in one chunk")
		idx = 0
	}
	c.emitOp(chunk.CLOSURE)
	c.emitByte(byte(idx))
	for _, uv := range fc.upvalues {
		if uv.isLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(uv.index)
	}
}

func (c *Compiler) classDeclaration() {
	c.consume(token.IDENT, "expected a class name")
	nameTok := c.prevVal
	nameConst := c.nameConstant(nameTok.Raw)
	c.declareLocal()

	c.emitBytes(chunk.DEFCLASS, nameConst)
	c.defineVariable(nameConst)

	cc := &classCompiler{enclosing: c.cc}
	c.cc = cc

	if c.match(token.LT) {
		c.consume(token.IDENT, "expected a superclass name")
		if c.prevVal.Raw == nameTok.Raw {
			c.error("a class can't inherit from itself")
		}
		c.namedVariable(c.prevVal, false)

		c.beginScope()
		c.addLocal("super")
		c.markInitialized()

		c.namedVariable(nameTok, false)
		c.emitOp(chunk.INHERIT)
		cc.hasSuper = true
	}

	c.namedVariable(nameTok, false)
	c.consume(token.LBRACE, "expected '{' before class body")
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.method()
	}
	c.consume(token.RBRACE, "expected '}' after class body")
	c.emitOp(chunk.POPT) // discard the class value pushed for method attachment

	if cc.hasSuper {
		c.endScope()
	}
	c.cc = cc.enclosing
}

func (c *Compiler) method() {
	c.consume(token.IDENT, "expected a method name")
	name := c.prevVal.Raw
	constant := c.nameConstant(name)

	ft := object.TypeMethod
	if name == "init" {
		ft = object.TypeInit
	}
	c.function(ft)
	c.emitBytes(chunk.DEFMETHOD, constant)
}

// --- statements ---

func (c *Compiler) statement() {
	switch {
	case c.match(token.LBRACE):
		c.beginScope()
		c.block()
		c.endScope()
	case c.match(token.IF):
		c.ifStatement()
	case c.match(token.WHILE):
		c.whileStatement()
	case c.match(token.FOR):
		c.forStatement()
	case c.match(token.SWITCH):
		c.switchStatement()
	case c.match(token.BREAK):
		c.breakStatement()
	case c.match(token.NEXT):
		c.nextStatement()
	case c.match(token.RETURN):
		c.returnStatement()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RBRACE, "expected '}' after block")
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.SEMI, "expected ';' after expression")
	c.emitOp(chunk.POPEXPR)
}

func (c *Compiler) ifStatement() {
	c.expression()
	thenJump := c.emitJump(chunk.JUMPIFF)
	c.emitOp(chunk.POPT)
	c.consume(token.LBRACE, "expected '{' after if condition")
	c.beginScope()
	c.block()
	c.endScope()

	elseJump := c.emitJump(chunk.JUMP)
	c.patchJump(thenJump)
	c.emitOp(chunk.POPT)

	if c.match(token.ELSE) {
		if c.match(token.IF) {
			c.ifStatement()
		} else {
			c.consume(token.LBRACE, "expected '{' after else")
			c.beginScope()
			c.block()
			c.endScope()
		}
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := c.chunkPtr().Len()

	c.expression()
	exitJump := c.emitJump(chunk.JUMPIFF)
	c.emitOp(chunk.POPT)

	ls := &loopState{enclosing: c.fc.loop, scopeDepth: c.fc.scopeDepth, continueTarget: loopStart, bodyStart: c.chunkPtr().Len()}
	c.fc.loop = ls

	c.consume(token.LBRACE, "expected '{' after while condition")
	c.beginScope()
	c.block()
	c.endScope()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(chunk.POPT)
	c.endLoop()
}

// forStatement compiles `for (init, cond, inc) { body }` with the classic
// desugaring: run init once, jump past the increment into the body, loop the
// increment before re-testing the condition (spec §4.4).
func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(token.LPAREN, "expected '(' after 'for'")

	switch {
	case c.match(token.COMMA):
		// no initializer clause
	case c.match(token.VAR):
		c.forVarClause()
	default:
		c.expression()
		c.emitOp(chunk.POPEXPR)
		c.consume(token.COMMA, "expected ',' after for-loop initializer")
	}

	loopStart := c.chunkPtr().Len()
	exitJump := -1
	if !c.check(token.COMMA) {
		c.expression()
		exitJump = c.emitJump(chunk.JUMPIFF)
		c.emitOp(chunk.POPT)
	}
	c.consume(token.COMMA, "expected ',' after for-loop condition")

	bodyJump := c.emitJump(chunk.JUMP)
	incrStart := c.chunkPtr().Len()
	if !c.check(token.RPAREN) {
		c.expression()
		c.emitOp(chunk.POPT)
	}
	c.consume(token.RPAREN, "expected ')' after for-loop clauses")
	c.emitLoop(loopStart)
	c.patchJump(bodyJump)

	ls := &loopState{enclosing: c.fc.loop, scopeDepth: c.fc.scopeDepth, continueTarget: incrStart, bodyStart: c.chunkPtr().Len()}
	c.fc.loop = ls

	c.consume(token.LBRACE, "expected '{' for loop body")
	c.beginScope()
	c.block()
	c.endScope()
	c.emitLoop(incrStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(chunk.POPT)
	}

	c.endLoop()
	c.endScope()
}

// forVarClause parses `var name = expr` terminated by ',' rather than ';',
// since the for-loop's three clauses are comma-separated (spec §4.1).
func (c *Compiler) forVarClause() {
	global := c.parseVariable("expected a variable name")
	if c.match(token.EQ) {
		c.expression()
	} else {
		c.emitOp(chunk.LOADNULL)
	}
	c.consume(token.COMMA, "expected ',' after for-loop initializer")
	c.defineVariable(global)
}

// endLoop rewrites every TEMP placeholder break emitted inside the loop
// body into a forward JUMP that lands here, by scanning the body's raw
// bytecode and skipping each instruction's operands (spec §4.4). Scanning
// rather than tracking break offsets directly means nested control flow
// (if/switch inside a loop) needs no special bookkeeping at emission time.
func (c *Compiler) endLoop() {
	ls := c.fc.loop
	ch := c.chunkPtr()
	end := ch.Len()

	i := ls.bodyStart
	for i < end {
		op := chunk.Opcode(ch.Code[i])
		size := instructionSize(ch, i)
		if op == chunk.TEMP {
			ch.Code[i] = byte(chunk.JUMP)
			offset := end - (i + 3)
			ch.Code[i+1] = byte(offset)
			ch.Code[i+2] = byte(offset >> 8)
		}
		i += size
	}
	c.fc.loop = ls.enclosing
}

// instructionSize returns 1 (opcode) plus the operand bytes for the
// instruction at offset. CLOSURE is variable-length: its constant-pool entry
// (already populated, since CLOSURE is only emitted after its function body
// compiles) tells us how many upvalue pairs follow.
func instructionSize(ch *chunk.Chunk, offset int) int {
	op := chunk.Opcode(ch.Code[offset])
	if op == chunk.CLOSURE {
		fnIdx := ch.Code[offset+1]
		fn := ch.Constants[fnIdx].AsObj().(*object.Function)
		return 2 + 2*fn.UpvalueCount
	}
	sz := chunk.OperandSize(op)
	if sz < 0 {
		sz = 0
	}
	return 1 + sz
}

func (c *Compiler) breakStatement() {
	if c.fc.loop == nil {
		c.error("'break' used outside of a loop")
	}
	c.consume(token.SEMI, "expected ';' after 'break'")
	if c.fc.loop == nil {
		return
	}
	c.emitPopLocalsAbove(c.fc.loop.scopeDepth)
	c.emitOp(chunk.TEMP)
	c.emitByte(0xff)
	c.emitByte(0xff)
}

func (c *Compiler) nextStatement() {
	if c.fc.loop == nil {
		c.error("'next' used outside of a loop")
	}
	c.consume(token.SEMI, "expected ';' after 'next'")
	if c.fc.loop == nil {
		return
	}
	c.emitPopLocalsAbove(c.fc.loop.scopeDepth)
	c.emitLoop(c.fc.loop.continueTarget)
}

func (c *Compiler) switchStatement() {
	c.expression()
	c.consume(token.LBRACE, "expected '{' after switch value")

	const (
		beforeCases = iota
		inCases
		afterElse
	)
	state := beforeCases
	var endJumps []int

	for !c.check(token.RBRACE) && !c.check(token.EOF) {
		switch {
		case c.match(token.WHEN):
			if state == afterElse {
				c.error("'when' case after 'else' in switch")
			}
			state = inCases

			c.emitOp(chunk.DUPT)
			c.expression()
			c.emitOp(chunk.EQUAL)
			c.consume(token.ARROW, "expected '->' after 'when' value")

			thenJump := c.emitJump(chunk.JUMPIFF)
			c.emitOp(chunk.POPT)
			c.switchCaseBody()
			endJumps = append(endJumps, c.emitJump(chunk.JUMP))

			c.patchJump(thenJump)
			c.emitOp(chunk.POPT)
		case c.match(token.ELSE):
			if state == beforeCases {
				c.error("switch must have at least one 'when' case before 'else'")
			}
			if state == afterElse {
				c.error("switch can only have one 'else' clause")
			}
			state = afterElse
			c.consume(token.ARROW, "expected '->' after 'else'")
			c.switchCaseBody()
		default:
			c.errorAtCurrent("expected 'when' or 'else' in switch body")
			c.advance()
		}
	}
	c.consume(token.RBRACE, "expected '}' to close switch")

	for _, j := range endJumps {
		c.patchJump(j)
	}
	c.emitOp(chunk.POPT) // discard the switch value
}

func (c *Compiler) switchCaseBody() {
	for !c.check(token.WHEN) && !c.check(token.ELSE) && !c.check(token.RBRACE) && !c.check(token.EOF) {
		c.statement()
	}
}

func (c *Compiler) returnStatement() {
	if c.fc.fnType == object.TypeScript {
		c.error("can't return from top-level code")
	}
	if c.match(token.SEMI) {
		c.emitReturn()
		return
	}
	if c.fc.fnType == object.TypeInit {
		c.error("can't return a value from an initializer")
	}
	c.expression()
	c.consume(token.SEMI, "expected ';' after return value")
	c.emitOp(chunk.RETURN)
}
