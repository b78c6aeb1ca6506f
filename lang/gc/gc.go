// Package gc implements Falcon's tri-color mark-and-sweep collector (spec
// §4.5). It owns the single global heap list every object is linked into
// exactly once, the string-intern table, and the allocation-triggered
// collection policy; package object's constructors allocate only through
// the Heap's Allocator interface, so every object an opcode creates is
// accounted for and reachable from the roots the VM and compiler expose.
package gc

import (
	"fmt"
	"io"

	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/value"
)

const defaultGrowthFactor = 2
const initialNextGC = 1 << 20 // 1 MiB before the first collection

// RootMarker is implemented by the VM (and, during compilation, by the
// compiler's chain of in-progress functions) to expose every object the
// collector must treat as reachable (spec §4.5 step 1): stack values,
// active closures, open upvalues, the globals table, the compiler-roots
// chain, and the interned "init" string.
type RootMarker interface {
	MarkRoots(mark func(value.Obj))
}

// Heap is the collector plus the allocation arena it manages.
type Heap struct {
	head value.Obj // heap-list head; objects link via their ObjHeader.Next

	bytesAllocated int
	nextGC         int
	growthFactor   float64

	gray []value.Obj // gray-stack: marked but not yet traced

	strings *object.Map // the string-intern table

	stressGC bool // force a collection on every Track call
	disabled int  // >0 while GC is temporarily disabled

	roots RootMarker

	// LogWriter, if non-nil, receives one line per collection and per
	// allocation in stress mode (the VM's --trace-memory flag, spec §6).
	LogWriter io.Writer
}

// New returns a Heap with an empty intern table and the default growth
// policy. SetRoots must be called once the owning VM exists, since the VM
// itself needs a *Heap to allocate its own bootstrap objects.
func New() *Heap {
	h := &Heap{growthFactor: defaultGrowthFactor, nextGC: initialNextGC}
	h.strings = object.NewMap()
	return h
}

// SetRoots installs the root provider (normally the owning VM) used by
// Collect to find reachable objects.
func (h *Heap) SetRoots(r RootMarker) { h.roots = r }

// SetStressGC enables or disables the --stress-gc debug mode, which forces
// a full collection on every Track call.
func (h *Heap) SetStressGC(on bool) { h.stressGC = on }

// Disable temporarily suppresses collection, for sequences of allocations
// whose intermediate values aren't yet reachable from any root (spec §4.5:
// e.g. building a class whose method map isn't linked into anything yet).
// Calls nest; Enable must be called once per Disable.
func (h *Heap) Disable() { h.disabled++ }

// Enable reverses one Disable call.
func (h *Heap) Enable() {
	if h.disabled > 0 {
		h.disabled--
	}
}

// Strings returns the intern table, exposed read-only for GC-root
// enumeration (the "init" string constant) and for debug dumps.
func (h *Heap) Strings() *object.Map { return h.strings }

// BytesAllocated and NextGC expose the collector's bookkeeping for
// --trace-memory reporting.
func (h *Heap) BytesAllocated() int { return h.bytesAllocated }
func (h *Heap) NextGC() int         { return h.nextGC }

// Track links o into the heap list, charges its size, and then collects if
// due (spec §4.5's allocation-triggered policy) or if stress mode is on. That
// collection already sees o, so o survives it only if it is reachable from
// the roots or collection is disabled.
func (h *Heap) Track(o value.Obj, size int) {
	o.Header().Next = h.head
	h.head = o
	h.bytesAllocated += size

	if h.disabled > 0 {
		return
	}
	if h.stressGC {
		h.Collect()
		return
	}
	if h.bytesAllocated > h.nextGC {
		h.Collect()
	}
}

// Intern returns the canonical *object.String for b, allocating (and
// tracking) a new one only if an equal string isn't already interned (spec
// §3, §4.7).
func (h *Heap) Intern(b []byte) *object.String {
	hash := object.Hash(b)
	if s := h.strings.FindString(b, hash); s != nil {
		return s
	}
	s := object.NewString(b)
	// The new string isn't reachable from any root until the Set below runs;
	// push it as a GC root manually by disabling collection around the two
	// allocations (Track, then the Map's own possible backing-array growth).
	h.Disable()
	h.Track(s, s.Size())
	h.strings.Set(s, value.Bool(true))
	h.Enable()
	return s
}

func (h *Heap) markObject(o value.Obj) {
	if o == nil {
		return
	}
	hdr := o.Header()
	if hdr.Marked {
		return
	}
	hdr.Marked = true
	h.gray = append(h.gray, o)
}

func (h *Heap) markValue(v value.Value) {
	if v.IsObj() {
		h.markObject(v.AsObj())
	}
}

// Collect runs one full mark-sweep cycle (spec §4.5).
func (h *Heap) Collect() {
	if h.roots == nil {
		return
	}

	before := h.bytesAllocated
	h.roots.MarkRoots(h.markObject)

	for len(h.gray) > 0 {
		n := len(h.gray) - 1
		o := h.gray[n]
		h.gray = h.gray[:n]
		o.Trace(h.markObject)
	}

	h.sweepStrings()
	freed := h.sweep()

	h.nextGC = int(float64(h.bytesAllocated) * h.growthFactor)
	if h.nextGC < initialNextGC {
		h.nextGC = initialNextGC
	}

	if h.LogWriter != nil {
		fmt.Fprintf(h.LogWriter, "gc: collected %d bytes (%d -> %d), next at %d\n",
			freed, before, h.bytesAllocated, h.nextGC)
	}
}

// sweepStrings removes intern-table entries whose key string didn't survive
// the mark phase (spec §4.5 step 3), so unreachable interned strings can be
// freed in the object sweep that follows.
func (h *Heap) sweepStrings() {
	for _, s := range h.strings.Keys() {
		if !s.Header().Marked {
			h.strings.Delete(s)
		}
	}
}

// sweep walks the heap list, unlinking and discarding unmarked objects and
// clearing the mark bit on survivors for the next cycle. It returns the
// number of bytes reclaimed.
func (h *Heap) sweep() int {
	var (
		prev value.Obj
		freed int
	)
	cur := h.head
	for cur != nil {
		hdr := cur.Header()
		next := hdr.Next
		if hdr.Marked {
			hdr.Marked = false
			prev = cur
		} else {
			freed += cur.Size()
			h.bytesAllocated -= cur.Size()
			if prev == nil {
				h.head = next
			} else {
				prev.Header().Next = next
			}
		}
		cur = next
	}
	return freed
}

// Walk calls fn for every live object currently on the heap list, in no
// particular order; used only by debug tooling.
func (h *Heap) Walk(fn func(value.Obj)) {
	for o := h.head; o != nil; o = o.Header().Next {
		fn(o)
	}
}
