// Some of the scanner package's shape is adapted from the nenuphar scanner,
// itself adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner tokenizes Falcon source text. The scanner operates on raw
// bytes — it does not assume UTF-8 — and decodes literal values eagerly so
// the compiler never re-parses a number or re-scans a string's escapes.
package scanner

import (
	"github.com/filipefalcaos/falcon/lang/token"
)

// Scanner tokenizes a single source buffer for the compiler to consume.
type Scanner struct {
	src []byte

	start     int // start offset of the token currently being scanned
	current   int // offset of the next unread byte
	line      int
	lineStart int // offset of the first byte of the current line
}

// Init positions the scanner at the beginning of src.
func (s *Scanner) Init(src []byte) {
	s.src = src
	s.start = 0
	s.current = 0
	s.line = 1
	s.lineStart = 0
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.src) }

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *Scanner) advance() byte {
	b := s.src[s.current]
	s.current++
	return b
}

// advanceIf consumes the current byte and returns true if it equals want.
func (s *Scanner) advanceIf(want byte) bool {
	if s.atEnd() || s.src[s.current] != want {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) newLine() {
	s.line++
	s.lineStart = s.current
}

func (s *Scanner) skipWhitespace() {
	for {
		if s.atEnd() {
			return
		}
		switch c := s.peek(); c {
		case ' ', '\t', '\r':
			s.current++
		case '\n':
			s.current++
			s.newLine()
		case '#':
			for !s.atEnd() && s.peek() != '\n' {
				s.current++
			}
		default:
			return
		}
	}
}

func (s *Scanner) column() int { return s.start - s.lineStart + 1 }

func (s *Scanner) pos() token.Pos {
	line := s.line
	if line > token.MaxLines {
		line = token.MaxLines
	}
	col := s.column()
	if col > token.MaxCols {
		col = token.MaxCols
	}
	return token.MakePos(line, col)
}

func (s *Scanner) lexeme() string { return string(s.src[s.start:s.current]) }

func (s *Scanner) errorToken(msg string) (token.Token, token.Value) {
	return token.ERROR, token.Value{Raw: s.lexeme(), Pos: s.pos(), Str: msg}
}

// CurrentSourceLine returns the bytes of the source line that contains the
// token most recently returned by Scan, for error display (the
// "file:line:column => CompilerError: <msg>" + caret format from spec §7).
func (s *Scanner) CurrentSourceLine() []byte {
	end := s.lineStart
	for end < len(s.src) && s.src[end] != '\n' {
		end++
	}
	return s.src[s.lineStart:end]
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }

// Scan returns the next token and its decoded value. Once EOF is reached it
// keeps returning TK_EOF.
func (s *Scanner) Scan() (token.Token, token.Value) {
	s.skipWhitespace()
	s.start = s.current

	if s.atEnd() {
		return token.EOF, token.Value{Pos: s.pos()}
	}

	c := s.advance()
	switch {
	case isAlpha(c):
		return s.identifier()
	case isDigit(c):
		return s.number()
	}

	switch c {
	case '(':
		return s.simple(token.LPAREN)
	case ')':
		return s.simple(token.RPAREN)
	case '{':
		return s.simple(token.LBRACE)
	case '}':
		return s.simple(token.RBRACE)
	case '[':
		return s.simple(token.LBRACK)
	case ']':
		return s.simple(token.RBRACK)
	case ',':
		return s.simple(token.COMMA)
	case '.':
		return s.simple(token.DOT)
	case ';':
		return s.simple(token.SEMI)
	case ':':
		return s.simple(token.COLON)
	case '?':
		return s.simple(token.QMARK)
	case '+':
		return s.compound('=', token.PLUS, token.PLUS_EQ)
	case '*':
		return s.compound('=', token.STAR, token.STAR_EQ)
	case '/':
		return s.compound('=', token.SLASH, token.SLASH_EQ)
	case '%':
		return s.compound('=', token.PERCENT, token.PERCENT_EQ)
	case '^':
		return s.compound('=', token.CIRCUMFLEX, token.CIRCUMFLEX_EQ)
	case '!':
		return s.compound('=', token.BANG, token.BANG_EQ)
	case '=':
		return s.compound('=', token.EQ, token.EQ_EQ)
	case '>':
		return s.compound('=', token.GT, token.GT_EQ)
	case '<':
		return s.compound('=', token.LT, token.LT_EQ)
	case '-':
		if s.advanceIf('=') {
			return token.MINUS_EQ, token.Value{Raw: s.lexeme(), Pos: s.pos()}
		}
		if s.advanceIf('>') {
			return token.ARROW, token.Value{Raw: s.lexeme(), Pos: s.pos()}
		}
		return s.simple(token.MINUS)
	case '"', '\'':
		return s.string(c)
	}

	return s.errorToken("unexpected character")
}

func (s *Scanner) simple(tok token.Token) (token.Token, token.Value) {
	return tok, token.Value{Raw: s.lexeme(), Pos: s.pos()}
}

func (s *Scanner) compound(next byte, plain, withEq token.Token) (token.Token, token.Value) {
	tok := plain
	if s.advanceIf(next) {
		tok = withEq
	}
	return tok, token.Value{Raw: s.lexeme(), Pos: s.pos()}
}

func (s *Scanner) identifier() (token.Token, token.Value) {
	for isAlphaNumeric(s.peek()) {
		s.current++
	}
	lit := s.lexeme()
	return token.LookupIdent(lit), token.Value{Raw: lit, Pos: s.pos()}
}
