package scanner

import (
	"strings"

	"github.com/filipefalcaos/falcon/lang/token"
)

// string scans a single- or double-quoted string literal, decoding the
// escape alphabet from spec §4.1: \" \\ \b \n \r \f \t \v. The decoded bytes
// are returned on the token; the compiler is responsible for interning them.
func (s *Scanner) string(quote byte) (token.Token, token.Value) {
	var sb strings.Builder
	for {
		if s.atEnd() {
			return s.errorToken("unterminated string")
		}
		c := s.peek()
		if c == quote {
			s.current++
			break
		}
		if c == '\n' {
			return s.errorToken("unterminated string")
		}
		if c == '\\' {
			s.current++
			if s.atEnd() {
				return s.errorToken("unterminated string")
			}
			esc := s.advance()
			switch esc {
			case '"':
				sb.WriteByte('"')
			case '\'':
				sb.WriteByte('\'')
			case '\\':
				sb.WriteByte('\\')
			case 'b':
				sb.WriteByte('\b')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 'f':
				sb.WriteByte('\f')
			case 't':
				sb.WriteByte('\t')
			case 'v':
				sb.WriteByte('\v')
			default:
				return s.errorToken("invalid escape sequence")
			}
			continue
		}
		s.current++
		sb.WriteByte(c)
	}

	lit := s.lexeme()
	return token.STRING, token.Value{Raw: lit, Pos: s.pos(), Str: sb.String()}
}
