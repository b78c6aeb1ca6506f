package maincmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/filipefalcaos/falcon/internal/dump"
	"github.com/filipefalcaos/falcon/lang/gc"
	"github.com/filipefalcaos/falcon/lang/vm"
)

func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	return RunFile(stdio, runOpts{
		dumpOpcodes: c.DumpOpcodes,
		traceExec:   c.TraceExec,
		traceMemory: c.TraceMemory,
		stressGC:    c.StressGC,
	}, args[0])
}

type runOpts struct {
	dumpOpcodes bool
	traceExec   bool
	traceMemory bool
	stressGC    bool
}

// RunFile compiles and executes filename, honoring the VM/GC debug flags.
func RunFile(stdio mainer.Stdio, opts runOpts, filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	if opts.dumpOpcodes {
		if err := CompileFile(stdio, true, filename); err != nil {
			return err
		}
	}

	heap := gc.New()
	heap.SetStressGC(opts.stressGC)
	if opts.traceMemory {
		heap.LogWriter = stdio.Stderr
	}

	v := vm.New(heap)
	v.SetFilename(filename)
	v.TraceExec = opts.traceExec
	v.Stdout = stdio.Stdout
	v.Stderr = stdio.Stderr

	err = v.Interpret(src)
	if opts.traceMemory {
		fmt.Fprintln(stdio.Stderr, "-- live objects by type --")
		dump.ObjectsByType(stdio.Stderr, heap)
	}
	if err != nil {
		if re, ok := err.(*vm.RuntimeError); ok {
			fmt.Fprintf(stdio.Stderr, "RuntimeError: %s\n", re.Msg)
			dump.StackTrace(stdio.Stderr, re.Trace)
		} else {
			fmt.Fprintln(stdio.Stderr, err)
		}
		return err
	}
	return nil
}
