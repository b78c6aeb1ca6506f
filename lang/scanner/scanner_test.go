package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/filipefalcaos/falcon/lang/scanner"
	"github.com/filipefalcaos/falcon/lang/token"
)

func scanAll(t *testing.T, src string) []token.Token {
	t.Helper()
	var s scanner.Scanner
	s.Init([]byte(src))
	var toks []token.Token
	for {
		tok, _ := s.Scan()
		toks = append(toks, tok)
		if tok == token.EOF {
			break
		}
	}
	return toks
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, `+ += - -= -> * *= / /= % %= ^ ^= ! != = == > >= < <= ? : ; , . ( ) { } [ ]`)
	want := []token.Token{
		token.PLUS, token.PLUS_EQ, token.MINUS, token.MINUS_EQ, token.ARROW,
		token.STAR, token.STAR_EQ, token.SLASH, token.SLASH_EQ,
		token.PERCENT, token.PERCENT_EQ, token.CIRCUMFLEX, token.CIRCUMFLEX_EQ,
		token.BANG, token.BANG_EQ, token.EQ, token.EQ_EQ,
		token.GT, token.GT_EQ, token.LT, token.LT_EQ,
		token.QMARK, token.COLON, token.SEMI, token.COMMA, token.DOT,
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.LBRACK, token.RBRACK,
		token.EOF,
	}
	require.Equal(t, want, toks)
}

func TestScanKeywords(t *testing.T) {
	src := "and break class else false for fn if next not null or return super switch this true var when while"
	toks := scanAll(t, src)
	want := []token.Token{
		token.AND, token.BREAK, token.CLASS, token.ELSE, token.FALSE, token.FOR,
		token.FN, token.IF, token.NEXT, token.NOT, token.NULL, token.OR,
		token.RETURN, token.SUPER, token.SWITCH, token.THIS, token.TRUE,
		token.VAR, token.WHEN, token.WHILE, token.EOF,
	}
	require.Equal(t, want, toks)
}

func TestScanIdentifierNotKeyword(t *testing.T) {
	toks := scanAll(t, "classify")
	require.Equal(t, []token.Token{token.IDENT, token.EOF}, toks)
}

func TestScanComment(t *testing.T) {
	var s scanner.Scanner
	s.Init([]byte("1 # a comment\n2"))
	tok, val := s.Scan()
	require.Equal(t, token.INT, tok)
	require.Equal(t, float64(1), val.Float)
	tok, val = s.Scan()
	require.Equal(t, token.INT, tok)
	require.Equal(t, float64(2), val.Float)
}

func TestScanNumbers(t *testing.T) {
	var s scanner.Scanner
	s.Init([]byte("123 1.5 1e3 1.2e-3"))

	tok, val := s.Scan()
	require.Equal(t, token.INT, tok)
	require.Equal(t, int64(123), val.Int)

	tok, val = s.Scan()
	require.Equal(t, token.FLOAT, tok)
	require.InDelta(t, 1.5, val.Float, 1e-9)

	tok, val = s.Scan()
	require.Equal(t, token.FLOAT, tok)
	require.InDelta(t, 1000.0, val.Float, 1e-9)

	tok, val = s.Scan()
	require.Equal(t, token.FLOAT, tok)
	require.InDelta(t, 0.0012, val.Float, 1e-9)
}

func TestScanStringEscapes(t *testing.T) {
	var s scanner.Scanner
	s.Init([]byte(`"a\nb\tc\"d"`))
	tok, val := s.Scan()
	require.Equal(t, token.STRING, tok)
	require.Equal(t, "a\nb\tc\"d", val.Str)
}

func TestScanUnterminatedString(t *testing.T) {
	var s scanner.Scanner
	s.Init([]byte(`"unterminated`))
	tok, val := s.Scan()
	require.Equal(t, token.ERROR, tok)
	require.Equal(t, "unterminated string", val.Str)
}

func TestScanIllegalEscape(t *testing.T) {
	var s scanner.Scanner
	s.Init([]byte(`"bad\qescape"`))
	tok, _ := s.Scan()
	require.Equal(t, token.ERROR, tok)
}

func TestCurrentSourceLine(t *testing.T) {
	var s scanner.Scanner
	s.Init([]byte("var x = 1;\nvar y = 2;\n"))
	s.Scan() // var
	tok, _ := s.Scan()
	require.Equal(t, token.IDENT, tok)
	require.Equal(t, "var x = 1;", string(s.CurrentSourceLine()))
}
