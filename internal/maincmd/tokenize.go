package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/filipefalcaos/falcon/lang/scanner"
	"github.com/filipefalcaos/falcon/lang/token"
)

func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return TokenizeFiles(stdio, args...)
}

// TokenizeFiles runs the scanner alone over each file and prints one line
// per token: "filename:line:col  TokenName  lexeme" (the lexeme is omitted
// when it is empty).
func TokenizeFiles(stdio mainer.Stdio, files ...string) error {
	for _, filename := range files {
		src, err := os.ReadFile(filename)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}

		var sc scanner.Scanner
		sc.Init(src)
		for {
			tok, val := sc.Scan()
			line, col := val.Pos.LineCol()
			fmt.Fprintf(stdio.Stdout, "%s:%d:%d  %s", filename, line, col, tok)
			if val.Raw != "" {
				fmt.Fprintf(stdio.Stdout, "  %s", val.Raw)
			}
			fmt.Fprintln(stdio.Stdout)
			if tok == token.EOF {
				break
			}
			if tok == token.ERROR {
				fmt.Fprintf(stdio.Stderr, "%s:%d:%d: %s\n", filename, line, col, val.Str)
				return fmt.Errorf("%s: tokenize error: %s", filename, val.Str)
			}
		}
	}
	return nil
}
