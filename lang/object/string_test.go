package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/filipefalcaos/falcon/lang/object"
)

func TestHashIsStableAndContentSensitive(t *testing.T) {
	h1 := object.Hash([]byte("falcon"))
	h2 := object.Hash([]byte("falcon"))
	h3 := object.Hash([]byte("falcons"))

	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
}

func TestNewStringCopiesInput(t *testing.T) {
	b := []byte("hawk")
	s := object.NewString(b)
	b[0] = 'x'

	assert.Equal(t, "hawk", s.String())
}

func TestStringEqualComparesBytesNotIdentity(t *testing.T) {
	s := object.NewString([]byte("wing"))

	assert.True(t, s.Equal([]byte("wing")))
	assert.False(t, s.Equal([]byte("wings")))
}

func TestStringCompareIsLexicographic(t *testing.T) {
	a := object.NewString([]byte("ant"))
	b := object.NewString([]byte("bee"))
	c := object.NewString([]byte("ant"))

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(c))
}

func TestStringCompareIsLengthSensitiveOnCommonPrefix(t *testing.T) {
	short := object.NewString([]byte("go"))
	long := object.NewString([]byte("gopher"))

	assert.Equal(t, -1, short.Compare(long))
	assert.Equal(t, 1, long.Compare(short))
}
