package object_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/filipefalcaos/falcon/lang/object"
	"github.com/filipefalcaos/falcon/lang/value"
)

func TestUpvalueOpenReadsThroughStackSlot(t *testing.T) {
	slot := value.Num(1)
	uv := object.NewOpenUpvalue(&slot, 3)

	assert.True(t, uv.IsOpen())
	assert.Equal(t, 1.0, uv.Get().AsNum())

	slot = value.Num(2)
	assert.Equal(t, 2.0, uv.Get().AsNum())
}

func TestUpvalueSetWritesThroughWhileOpen(t *testing.T) {
	slot := value.Num(0)
	uv := object.NewOpenUpvalue(&slot, 0)

	uv.Set(value.Num(7))
	assert.Equal(t, 7.0, slot.AsNum())
}

func TestUpvalueCloseSnapshotsAndSevers(t *testing.T) {
	slot := value.Num(5)
	uv := object.NewOpenUpvalue(&slot, 0)

	uv.Close()
	assert.False(t, uv.IsOpen())
	assert.Equal(t, 5.0, uv.Get().AsNum())

	slot = value.Num(99)
	assert.Equal(t, 5.0, uv.Get().AsNum(), "closed upvalue must not see further stack writes")

	uv.Set(value.Num(6))
	assert.Equal(t, 6.0, uv.Get().AsNum())
}
