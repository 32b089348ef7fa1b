package coopio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunQueueCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	require.Equal(t, 1, newRunQueue(0).Cap())
	require.Equal(t, 1, newRunQueue(1).Cap())
	require.Equal(t, 4, newRunQueue(3).Cap())
	require.Equal(t, 8, newRunQueue(8).Cap())
	require.Equal(t, 16, newRunQueue(9).Cap())
}

func TestRunQueueFIFOOrder(t *testing.T) {
	q := newRunQueue(4)
	a := &taskHandle{id: 1}
	b := &taskHandle{id: 2}
	c := &taskHandle{id: 3}

	require.True(t, q.Push(a))
	require.True(t, q.Push(b))
	require.True(t, q.Push(c))
	require.Equal(t, 3, q.Len())

	require.Same(t, a, q.Pop())
	require.Same(t, b, q.Pop())
	require.Same(t, c, q.Pop())
	require.Nil(t, q.Pop())
	require.Equal(t, 0, q.Len())
}

func TestRunQueuePushAtCapacityIsNoOp(t *testing.T) {
	q := newRunQueue(2)
	require.True(t, q.Push(&taskHandle{id: 1}))
	require.True(t, q.Push(&taskHandle{id: 2}))
	require.False(t, q.Push(&taskHandle{id: 3}))
	require.Equal(t, 2, q.Len())
}

func TestRunQueueWrapsAroundAfterDraining(t *testing.T) {
	q := newRunQueue(2)
	for i := 0; i < 10; i++ {
		th := &taskHandle{id: uint64(i)}
		require.True(t, q.Push(th))
		require.Same(t, th, q.Pop())
	}
	require.Equal(t, 0, q.Len())
}
