package compiler

import (
	"github.com/filipefalcaos/falcon/lang/chunk"
	"github.com/filipefalcaos/falcon/lang/token"
	"github.com/filipefalcaos/falcon/lang/value"
)

// Precedence is the precedence ladder from spec §4.4, ascending.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssign
	PrecTernary
	PrecOr
	PrecAnd
	PrecEqual
	PrecCompare
	PrecTerm
	PrecFactor
	PrecUnary
	PrecPow
	PrecTop
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix parseFn
	infix  parseFn
	prec   Precedence
}

var rules [token.Count]parseRule

func init() {
	rules[token.LPAREN] = parseRule{grouping, call, PrecTop}
	rules[token.LBRACK] = parseRule{listLiteral, subscript, PrecTop}
	rules[token.LBRACE] = parseRule{mapLiteral, nil, PrecNone}
	rules[token.DOT] = parseRule{nil, dot, PrecTop}
	rules[token.MINUS] = parseRule{unary, binary, PrecTerm}
	rules[token.PLUS] = parseRule{nil, binary, PrecTerm}
	rules[token.SLASH] = parseRule{nil, binary, PrecFactor}
	rules[token.STAR] = parseRule{nil, binary, PrecFactor}
	rules[token.PERCENT] = parseRule{nil, binary, PrecFactor}
	rules[token.CIRCUMFLEX] = parseRule{nil, binary, PrecPow}
	rules[token.NOT] = parseRule{unary, nil, PrecNone}
	rules[token.BANG_EQ] = parseRule{nil, binary, PrecEqual}
	rules[token.EQ_EQ] = parseRule{nil, binary, PrecEqual}
	rules[token.GT] = parseRule{nil, binary, PrecCompare}
	rules[token.GT_EQ] = parseRule{nil, binary, PrecCompare}
	rules[token.LT] = parseRule{nil, binary, PrecCompare}
	rules[token.LT_EQ] = parseRule{nil, binary, PrecCompare}
	rules[token.IDENT] = parseRule{variable, nil, PrecNone}
	rules[token.STRING] = parseRule{stringLit, nil, PrecNone}
	rules[token.INT] = parseRule{number, nil, PrecNone}
	rules[token.FLOAT] = parseRule{number, nil, PrecNone}
	rules[token.AND] = parseRule{nil, andExpr, PrecAnd}
	rules[token.OR] = parseRule{nil, orExpr, PrecOr}
	rules[token.TRUE] = parseRule{literal, nil, PrecNone}
	rules[token.FALSE] = parseRule{literal, nil, PrecNone}
	rules[token.NULL] = parseRule{literal, nil, PrecNone}
	rules[token.THIS] = parseRule{thisExpr, nil, PrecNone}
	rules[token.SUPER] = parseRule{superExpr, nil, PrecNone}
	rules[token.QMARK] = parseRule{nil, ternary, PrecTernary}
}

func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.RPAREN, "expected ')' after expression")
}

func number(c *Compiler, _ bool) {
	c.emitConstant(value.Num(c.prevVal.Float))
}

func stringLit(c *Compiler, _ bool) {
	s := c.alloc.Intern([]byte(c.prevVal.Str))
	c.emitConstant(value.FromObj(s))
}

func literal(c *Compiler, _ bool) {
	switch c.prev {
	case token.TRUE:
		c.emitOp(chunk.LOADTRUE)
	case token.FALSE:
		c.emitOp(chunk.LOADFALSE)
	case token.NULL:
		c.emitOp(chunk.LOADNULL)
	}
}

func unary(c *Compiler, _ bool) {
	op := c.prev
	c.parsePrecedence(PrecUnary)
	switch op {
	case token.MINUS:
		c.emitOp(chunk.NEG)
	case token.NOT:
		c.emitOp(chunk.NOT)
	}
}

// binary compiles a left-associative arithmetic/relational/equality
// operator, except CIRCUMFLEX (exponentiation) which is right-associative
// (spec §4.4's precedence table lists POW above UNARY, and §4.3 notes it is
// typically right-assoc in languages that have it).
func binary(c *Compiler, _ bool) {
	op := c.prev
	rule := rules[op]
	nextLevel := rule.prec + 1
	if op == token.CIRCUMFLEX {
		nextLevel = rule.prec
	}
	c.parsePrecedence(nextLevel)

	switch op {
	case token.PLUS:
		c.emitOp(chunk.ADD)
	case token.MINUS:
		c.emitOp(chunk.SUB)
	case token.STAR:
		c.emitOp(chunk.MULT)
	case token.SLASH:
		c.emitOp(chunk.DIV)
	case token.PERCENT:
		c.emitOp(chunk.MOD)
	case token.CIRCUMFLEX:
		c.emitOp(chunk.POW)
	case token.EQ_EQ:
		c.emitOp(chunk.EQUAL)
	case token.BANG_EQ:
		c.emitOp(chunk.EQUAL)
		c.emitOp(chunk.NOT)
	case token.GT:
		c.emitOp(chunk.GREATER)
	case token.GT_EQ:
		c.emitOp(chunk.LESS)
		c.emitOp(chunk.NOT)
	case token.LT:
		c.emitOp(chunk.LESS)
	case token.LT_EQ:
		c.emitOp(chunk.GREATER)
		c.emitOp(chunk.NOT)
	}
}

// andExpr/orExpr implement short-circuit evaluation via the AND/OR opcodes,
// which peek-test the stack top rather than popping unconditionally.
func andExpr(c *Compiler, _ bool) {
	endJump := c.emitJump(chunk.AND)
	c.emitOp(chunk.POPT)
	c.parsePrecedence(rules[token.AND].prec + 1)
	c.patchJump(endJump)
}

func orExpr(c *Compiler, _ bool) {
	endJump := c.emitJump(chunk.OR)
	c.emitOp(chunk.POPT)
	c.parsePrecedence(rules[token.OR].prec + 1)
	c.patchJump(endJump)
}

// ternary compiles `cond ? then : else`, right-associative so nested
// ternaries in the "else" branch parse naturally.
func ternary(c *Compiler, _ bool) {
	thenJump := c.emitJump(chunk.JUMPIFF)
	c.emitOp(chunk.POPT)
	c.parsePrecedence(PrecTernary)

	elseJump := c.emitJump(chunk.JUMP)
	c.patchJump(thenJump)
	c.emitOp(chunk.POPT)

	c.consume(token.COLON, "expected ':' in ternary expression")
	c.parsePrecedence(PrecTernary)
	c.patchJump(elseJump)
}

func variable(c *Compiler, canAssign bool) {
	c.namedVariable(c.prevVal, canAssign)
}

func thisExpr(c *Compiler, _ bool) {
	if c.cc == nil {
		c.error("can't use 'this' outside of a class")
	}
	c.namedVariable(token.Value{Raw: "this"}, false)
}

func superExpr(c *Compiler, _ bool) {
	if c.cc == nil {
		c.error("can't use 'super' outside of a class")
	} else if !c.cc.hasSuper {
		c.error("can't use 'super' in a class with no superclass")
	}

	c.consume(token.DOT, "expected '.' after 'super'")
	c.consume(token.IDENT, "expected superclass method name")
	nameConst := c.nameConstant(c.prevVal.Raw)

	c.namedVariable(token.Value{Raw: "this"}, false)
	if c.match(token.LPAREN) {
		argc := c.argumentList()
		c.namedVariable(token.Value{Raw: "super"}, false)
		c.emitOp(chunk.INVSUPER)
		c.emitByte(nameConst)
		c.emitByte(argc)
		return
	}
	c.namedVariable(token.Value{Raw: "super"}, false)
	c.emitBytes(chunk.SUPER, nameConst)
}

func listLiteral(c *Compiler, _ bool) {
	count := 0
	if !c.check(token.RBRACK) {
		for {
			if c.check(token.RBRACK) {
				break
			}
			c.expression()
			count++
			if count > maxListMapElems {
				c.error("too many elements in list literal")
			}
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RBRACK, "expected ']' after list elements")
	// Elements were pushed left-to-right above; DEFLIST must build the list
	// in that same order (spec §9: the "possibly-buggy" reversed-pop variant
	// is explicitly not reproduced here).
	c.emitOp(chunk.DEFLIST)
	c.chunkPtr().WriteU16(uint16(count), c.line())
}

func mapLiteral(c *Compiler, _ bool) {
	count := 0
	if !c.check(token.RBRACE) {
		for {
			if c.check(token.RBRACE) {
				break
			}
			c.expression()
			c.consume(token.COLON, "expected ':' after map key")
			c.expression()
			count++
			if count > maxListMapElems {
				c.error("too many elements in map literal")
			}
			if !c.match(token.COMMA) {
				break
			}
		}
	}
	c.consume(token.RBRACE, "expected '}' after map entries")
	c.emitOp(chunk.DEFMAP)
	c.chunkPtr().WriteU16(uint16(count), c.line())
}

func call(c *Compiler, _ bool) {
	argc := c.argumentList()
	c.emitBytes(chunk.CALL, argc)
}

func dot(c *Compiler, canAssign bool) {
	c.consume(token.IDENT, "expected property name after '.'")
	nameConst := c.nameConstant(c.prevVal.Raw)

	if canAssign && c.match(token.EQ) {
		c.expression()
		c.emitBytes(chunk.SETPROP, nameConst)
		return
	}
	if canAssign {
		if op, ok := compoundOp(c.cur); ok {
			c.advance()
			c.emitOp(chunk.DUPT)
			c.emitBytes(chunk.GETPROP, nameConst)
			c.expression()
			c.emitOp(op)
			c.emitBytes(chunk.SETPROP, nameConst)
			return
		}
	}
	if c.match(token.LPAREN) {
		argc := c.argumentList()
		c.emitOp(chunk.INVPROP)
		c.emitByte(nameConst)
		c.emitByte(argc)
		return
	}
	c.emitBytes(chunk.GETPROP, nameConst)
}

func subscript(c *Compiler, canAssign bool) {
	c.expression()
	c.consume(token.RBRACK, "expected ']' after index")

	if canAssign && c.match(token.EQ) {
		c.expression()
		c.emitOp(chunk.SETSUB)
		return
	}
	c.emitOp(chunk.GETSUB)
}

// compoundOp maps a compound-assign token to the binary opcode it desugars
// to (spec §4.1's compound-assign dialect: x += y compiles as x = x + y).
// Not supported on subscript targets (see DESIGN.md).
func compoundOp(tok token.Token) (chunk.Opcode, bool) {
	switch tok {
	case token.PLUS_EQ:
		return chunk.ADD, true
	case token.MINUS_EQ:
		return chunk.SUB, true
	case token.STAR_EQ:
		return chunk.MULT, true
	case token.SLASH_EQ:
		return chunk.DIV, true
	case token.PERCENT_EQ:
		return chunk.MOD, true
	case token.CIRCUMFLEX_EQ:
		return chunk.POW, true
	}
	return 0, false
}

