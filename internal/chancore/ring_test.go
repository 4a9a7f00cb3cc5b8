package chancore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRingAddRemoveFIFO(t *testing.T) {
	r := newRing(3)
	require.Equal(t, 3, r.capacity())
	require.Equal(t, 0, r.currentSize())

	require.NoError(t, r.add(1))
	require.NoError(t, r.add(2))
	require.NoError(t, r.add(3))
	require.Equal(t, 3, r.currentSize())
	require.Error(t, r.add(4))

	v, err := r.remove()
	require.NoError(t, err)
	require.Equal(t, 1, v)
	v, err = r.remove()
	require.NoError(t, err)
	require.Equal(t, 2, v)
	v, err = r.remove()
	require.NoError(t, err)
	require.Equal(t, 3, v)

	_, err = r.remove()
	require.Error(t, err)
}

func TestRingWrapsAroundIndices(t *testing.T) {
	r := newRing(2)
	require.NoError(t, r.add("a"))
	require.NoError(t, r.add("b"))
	v, err := r.remove()
	require.NoError(t, err)
	require.Equal(t, "a", v)
	require.NoError(t, r.add("c")) // wraps sendx back to 0
	v, err = r.remove()
	require.NoError(t, err)
	require.Equal(t, "b", v)
	v, err = r.remove()
	require.NoError(t, err)
	require.Equal(t, "c", v)
}

func TestRingCapacityPanicsOnNonPositive(t *testing.T) {
	require.Panics(t, func() { newRing(0) })
	require.Panics(t, func() { newRing(-1) })
}
