package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignal_EmitInConnectionOrder(t *testing.T) {
	var s Signal[string]
	var got []string

	s.Connect(func(v string) { got = append(got, "a:"+v) })
	s.Connect(func(v string) { got = append(got, "b:"+v) })
	s.Emit("x")

	assert.Equal(t, []string{"a:x", "b:x"}, got)
	assert.Equal(t, 2, s.Len())
}

func TestSignal_DisconnectIsIdempotent(t *testing.T) {
	var s Signal[int]
	calls := 0
	id := s.Connect(func(int) { calls++ })

	assert.True(t, s.Disconnect(id))
	assert.False(t, s.Disconnect(id))
	assert.False(t, s.Disconnect(0))

	s.Emit(1)
	assert.Zero(t, calls)
}

func TestSignal_DisconnectDuringEmit(t *testing.T) {
	var s Signal[int]
	var second HandlerID
	calls := 0

	s.Connect(func(int) { s.Disconnect(second) })
	second = s.Connect(func(int) { calls++ })

	s.Emit(1)
	assert.Zero(t, calls, "handler removed mid-emission must not run")
	assert.Equal(t, 1, s.Len())
}

func TestChain_StopsAtFirstConsumer(t *testing.T) {
	var c Chain[int]
	var order []int

	c.Connect(func(v int) bool { order = append(order, 1); return false })
	c.Connect(func(v int) bool { order = append(order, 2); return v > 0 })
	c.Connect(func(v int) bool { order = append(order, 3); return true })

	require.True(t, c.Emit(5))
	assert.Equal(t, []int{1, 2}, order)

	order = nil
	require.True(t, c.Emit(0))
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestChain_EmptyDoesNotConsume(t *testing.T) {
	var c Chain[int]
	assert.False(t, c.Emit(1))
}

func TestHandlerIDsAreUnique(t *testing.T) {
	var a Signal[int]
	var b Chain[int]
	ids := map[HandlerID]bool{}
	for i := 0; i < 10; i++ {
		ids[a.Connect(func(int) {})] = true
		ids[b.Connect(func(int) bool { return false })] = true
	}
	assert.Len(t, ids, 20)
	assert.False(t, ids[0])
}

func TestConnection_Release(t *testing.T) {
	var s Signal[int]
	calls := 0

	var conn Connection
	assert.False(t, conn.Active())
	conn.Release() // zero value is safe

	conn = Bind(s.Connect(func(int) { calls++ }), s.Disconnect)
	assert.True(t, conn.Active())
	assert.NotZero(t, conn.ID())

	s.Emit(1)
	conn.Release()
	conn.Release()
	s.Emit(1)

	assert.Equal(t, 1, calls)
	assert.False(t, conn.Active())
	assert.Zero(t, s.Len())
}
