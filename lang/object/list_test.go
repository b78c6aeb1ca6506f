package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/value"
)

func TestListResolveIndexPositive(t *testing.T) {
	l := object.NewList([]value.Value{value.Num(1), value.Num(2), value.Num(3)})

	idx, ok := l.ResolveIndex(1)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestListResolveIndexNegativeWraps(t *testing.T) {
	l := object.NewList([]value.Value{value.Num(1), value.Num(2), value.Num(3)})

	idx, ok := l.ResolveIndex(-1)
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
}

func TestListResolveIndexOutOfRange(t *testing.T) {
	l := object.NewList([]value.Value{value.Num(1), value.Num(2)})

	_, ok := l.ResolveIndex(2)
	assert.False(t, ok)

	_, ok = l.ResolveIndex(-3)
	assert.False(t, ok)
}

func TestListAppendGrowsLen(t *testing.T) {
	l := object.NewList(nil)
	l.Append(value.Num(1))
	l.Append(value.Num(2))

	assert.Equal(t, 2, l.Len())
}

func TestIndexErrFormat(t *testing.T) {
	assert.Equal(t, "list index 5 out of range (length 2)", object.IndexErr(5, 2))
}
