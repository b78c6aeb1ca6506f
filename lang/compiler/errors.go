package compiler

import (
	"fmt"
	"strings"

	"github.com/filipefalcaos/falcon/lang/token"
)

// CompileError is one reported syntax or semantic violation (spec §7). Its
// Error() string matches the "file:line:column => CompilerError: <msg>"
// format from spec §7, followed by the offending source line and a caret.
type CompileError struct {
	Filename string
	Pos      token.Pos
	Msg      string
	Line     string // source text of the offending line
}

func (e *CompileError) Error() string {
	line, col := e.Pos.LineCol()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s:%d:%d => CompilerError: %s", e.Filename, line, col, e.Msg)
	if e.Line != "" {
		sb.WriteByte('\n')
		sb.WriteString(e.Line)
		sb.WriteByte('\n')
		for i := 1; i < col; i++ {
			sb.WriteByte(' ')
		}
		sb.WriteByte('^')
	}
	return sb.String()
}

// ErrorList collects every compile error recorded in one pass (spec §7: the
// compiler keeps consuming source after an error, under panic-mode
// suppression, so the host sees every independent error in one report).
// Its shape mirrors go/scanner.ErrorList, which the rest of this codebase's
// ambient stack already leans on for diagnostics.
type ErrorList []*CompileError

func (el *ErrorList) Add(e *CompileError) { *el = append(*el, e) }

func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	}
	parts := make([]string, len(el))
	for i, e := range el {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n\n")
}

// Unwrap lets callers range over the individual errors with errors.Is/As.
func (el ErrorList) Unwrap() []error {
	errs := make([]error, len(el))
	for i, e := range el {
		errs[i] = e
	}
	return errs
}

func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}
