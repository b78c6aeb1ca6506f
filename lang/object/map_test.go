package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/value"
)

func TestMapSetGetRoundTrips(t *testing.T) {
	m := object.NewMap()
	k := object.NewString([]byte("answer"))

	isNew := m.Set(k, value.Num(42))
	assert.True(t, isNew)

	v, ok := m.Get(k)
	require.True(t, ok)
	assert.Equal(t, 42.0, v.AsNum())
}

func TestMapGetMissingKeyReturnsNullFalse(t *testing.T) {
	m := object.NewMap()
	k := object.NewString([]byte("missing"))

	v, ok := m.Get(k)
	assert.False(t, ok)
	assert.True(t, v.IsNull())
}

func TestMapSetOverwriteReportsNotNew(t *testing.T) {
	m := object.NewMap()
	k := object.NewString([]byte("x"))

	assert.True(t, m.Set(k, value.Num(1)))
	assert.False(t, m.Set(k, value.Num(2)))

	v, ok := m.Get(k)
	require.True(t, ok)
	assert.Equal(t, 2.0, v.AsNum())
}

func TestMapDeleteThenReinsertReusesTombstone(t *testing.T) {
	m := object.NewMap()
	k := object.NewString([]byte("transient"))

	m.Set(k, value.Num(1))
	assert.True(t, m.Delete(k))
	assert.False(t, m.Delete(k)) // already gone

	_, ok := m.Get(k)
	assert.False(t, ok)

	assert.True(t, m.Set(k, value.Num(9)))
	v, ok := m.Get(k)
	require.True(t, ok)
	assert.Equal(t, 9.0, v.AsNum())
}

func TestMapGrowsPastLoadFactorAndKeepsAllEntries(t *testing.T) {
	m := object.NewMap()
	keys := make([]*object.String, 0, 64)
	for i := 0; i < 64; i++ {
		k := object.NewString([]byte{byte('a' + i%26), byte(i)})
		keys = append(keys, k)
		m.Set(k, value.Num(float64(i)))
	}

	assert.Equal(t, 64, m.Len())
	for i, k := range keys {
		v, ok := m.Get(k)
		require.True(t, ok)
		assert.Equal(t, float64(i), v.AsNum())
	}
}

func TestMapFindStringMatchesByContentNotPointer(t *testing.T) {
	m := object.NewMap()
	k := object.NewString([]byte("shared"))
	m.Set(k, value.Bool(true))

	found := m.FindString([]byte("shared"), object.Hash([]byte("shared")))
	require.NotNil(t, found)
	assert.Same(t, k, found)

	assert.Nil(t, m.FindString([]byte("absent"), object.Hash([]byte("absent"))))
}

func TestMapKeysReturnsOnlyLiveKeys(t *testing.T) {
	m := object.NewMap()
	a := object.NewString([]byte("a"))
	b := object.NewString([]byte("b"))
	m.Set(a, value.Num(1))
	m.Set(b, value.Num(2))
	m.Delete(a)

	keys := m.Keys()
	require.Len(t, keys, 1)
	assert.Same(t, b, keys[0])
}
