package vm

import "github.com/filipefalcaos/falcon/lang/object"

// frame is one call frame: the running closure, its program counter, and
// the stack index of slot 0 for this invocation (spec §4.8).
type frame struct {
	closure *object.Closure
	ip      int
	base    int
}
