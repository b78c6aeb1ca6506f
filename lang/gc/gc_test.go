package gc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filipefalcaos/falcon/lang/gc"
	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/value"
)

// fakeRoots reports exactly the objects it's told to, standing in for a VM
// during collection tests.
type fakeRoots struct {
	roots []value.Obj
}

func (r *fakeRoots) MarkRoots(mark func(value.Obj)) {
	for _, o := range r.roots {
		mark(o)
	}
}

func TestInternReturnsSamePointerForEqualBytes(t *testing.T) {
	h := gc.New()
	h.SetRoots(&fakeRoots{})

	a := h.Intern([]byte("falcon"))
	b := h.Intern([]byte("falcon"))

	assert.Same(t, a, b)
}

func TestInternDistinctStringsAreDistinctObjects(t *testing.T) {
	h := gc.New()
	h.SetRoots(&fakeRoots{})

	a := h.Intern([]byte("hawk"))
	b := h.Intern([]byte("eagle"))

	assert.NotSame(t, a, b)
}

func TestCollectFreesUnreachableAndKeepsRooted(t *testing.T) {
	h := gc.New()
	roots := &fakeRoots{}
	h.SetRoots(roots)

	kept := object.NewList(nil)
	h.Track(kept, kept.Size())
	roots.roots = []value.Obj{kept}

	discarded := object.NewList(nil)
	h.Track(discarded, discarded.Size())

	before := h.BytesAllocated()
	h.Collect()

	var seen []value.Obj
	h.Walk(func(o value.Obj) { seen = append(seen, o) })

	require.Len(t, seen, 1)
	assert.Same(t, kept, seen[0])
	assert.Less(t, h.BytesAllocated(), before)
}

func TestCollectTracesReachableList(t *testing.T) {
	h := gc.New()
	roots := &fakeRoots{}
	h.SetRoots(roots)

	elem := object.NewString([]byte("payload"))
	h.Track(elem, elem.Size())
	list := object.NewList([]value.Value{value.FromObj(elem)})
	h.Track(list, list.Size())
	roots.roots = []value.Obj{list}

	h.Collect()

	var seen []value.Obj
	h.Walk(func(o value.Obj) { seen = append(seen, o) })
	assert.Len(t, seen, 2, "both the list and the string it holds must survive")
}

func TestSweepStringsRemovesUnreachableInternEntries(t *testing.T) {
	h := gc.New()
	roots := &fakeRoots{}
	h.SetRoots(roots)

	h.Intern([]byte("ephemeral"))
	require.Equal(t, 1, h.Strings().Len())

	h.Collect()

	assert.Equal(t, 0, h.Strings().Len())
}

func TestDisableSuppressesCollectionDuringTrack(t *testing.T) {
	h := gc.New()
	roots := &fakeRoots{}
	h.SetRoots(roots)

	h.Disable()
	defer h.Enable()

	orphan := object.NewList(nil)
	h.Track(orphan, orphan.Size())

	// stress mode would normally collect (and drop the unrooted orphan)
	// on every Track call; Disable must suppress that.
	h.SetStressGC(true)
	another := object.NewList(nil)
	h.Track(another, another.Size())

	var seen []value.Obj
	h.Walk(func(o value.Obj) { seen = append(seen, o) })
	assert.Len(t, seen, 2)
}

func TestStressGCCollectsOnEveryTrack(t *testing.T) {
	h := gc.New()
	roots := &fakeRoots{}
	h.SetRoots(roots)
	h.SetStressGC(true)

	orphan := object.NewList(nil)
	h.Track(orphan, orphan.Size())

	var seen []value.Obj
	h.Walk(func(o value.Obj) { seen = append(seen, o) })
	assert.Empty(t, seen, "an unrooted object must not survive a stress-mode Track")
}
