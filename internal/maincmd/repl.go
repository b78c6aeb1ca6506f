package maincmd

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/mna/mainer"

	"github.com/filipefalcaos/falcon/lang/gc"
	"github.com/filipefalcaos/falcon/lang/vm"
)

func (c *Cmd) Repl(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return Repl(ctx, stdio, replOpts{
		traceExec:   c.TraceExec,
		traceMemory: c.TraceMemory,
		stressGC:    c.StressGC,
	})
}

type replOpts struct {
	traceExec   bool
	traceMemory bool
	stressGC    bool
}

// Repl runs an interactive read-eval-print loop against a single
// long-lived VM: each line (or block, if unterminated) is compiled and run
// immediately, with non-null expression-statement results printed (spec
// §9's OP_POPEXPR interactive-feedback behavior).
func Repl(ctx context.Context, stdio mainer.Stdio, opts replOpts) error {
	heap := gc.New()
	heap.SetStressGC(opts.stressGC)
	if opts.traceMemory {
		heap.LogWriter = stdio.Stderr
	}

	v := vm.New(heap)
	v.SetFilename("<repl>")
	v.SetREPL(true)
	v.TraceExec = opts.traceExec
	v.Stdout = stdio.Stdout
	v.Stderr = stdio.Stderr

	scan := bufio.NewScanner(stdio.Stdin)
	var buf strings.Builder

	fmt.Fprint(stdio.Stdout, "> ")
	for scan.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := scan.Text()
		buf.WriteString(line)
		buf.WriteByte('\n')

		if needsContinuation(buf.String()) {
			fmt.Fprint(stdio.Stdout, "... ")
			continue
		}

		source := buf.String()
		buf.Reset()
		if strings.TrimSpace(source) != "" {
			if err := v.Interpret([]byte(source)); err != nil {
				fmt.Fprintln(stdio.Stderr, err)
			}
		}
		fmt.Fprint(stdio.Stdout, "> ")
	}
	fmt.Fprintln(stdio.Stdout)
	return scan.Err()
}

// needsContinuation is a light heuristic (spec §10's REPL-ergonomics
// supplement): an unbalanced brace/paren/bracket count means the
// expression isn't finished yet.
func needsContinuation(line string) bool {
	depth := 0
	for _, r := range line {
		switch r {
		case '(', '{', '[':
			depth++
		case ')', '}', ']':
			depth--
		}
	}
	return depth > 0
}
