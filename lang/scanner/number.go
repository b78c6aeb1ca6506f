package scanner

import (
	"strconv"

	"github.com/filipefalcaos/falcon/lang/token"
)

// number scans an integer or floating-point literal. Both kinds decode into
// the same IEEE-754 double, matching spec.md's single Num(f64) variant; the
// compiler treats INT and FLOAT tokens alike. A '.' is part of the number
// only when a digit follows it, so "1." followed by an identifier scans as
// INT, DOT, IDENT.
func (s *Scanner) number() (token.Token, token.Value) {
	for isDigit(s.peek()) {
		s.current++
	}

	isFloat := false
	if s.peek() == '.' && isDigit(s.peekNext()) {
		isFloat = true
		s.current++ // consume '.'
		for isDigit(s.peek()) {
			s.current++
		}
	}

	if c := s.peek(); c == 'e' || c == 'E' {
		next := s.peekNext()
		lookahead := next
		extra := 1
		if (next == '+' || next == '-') && s.current+2 < len(s.src) {
			lookahead = s.src[s.current+2]
			extra = 2
		}
		if isDigit(lookahead) {
			isFloat = true
			s.current += extra
			for isDigit(s.peek()) {
				s.current++
			}
		}
	}

	lit := s.lexeme()
	val := token.Value{Raw: lit, Pos: s.pos()}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		s.errorToken("malformed number literal")
		val.Str = "malformed number literal"
		return token.ERROR, val
	}
	val.Float = f

	if isFloat {
		return token.FLOAT, val
	}
	val.Int = int64(f)
	return token.INT, val
}
