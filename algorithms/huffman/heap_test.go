package huffman

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func checkHeap(t *testing.T, h *MinHeap) {
	t.Helper()
	for i := 1; i < len(h.entries); i++ {
		parent := (i - 1) / 2
		require.False(t, h.less(i, parent), "position %d is smaller than its parent %d", i, parent)
		require.LessOrEqual(t, h.entries[parent].node.freq, h.entries[i].node.freq)
	}
}

func TestNewMinHeapInvalidCapacity(t *testing.T) {
	for _, c := range []int{0, -1} {
		h, err := NewMinHeap(c)
		require.ErrorIs(t, err, ErrInvalidCapacity)
		require.Nil(t, h)
	}
}

func TestMinHeapFull(t *testing.T) {
	h, err := NewMinHeap(2)
	require.NoError(t, err)
	require.NoError(t, h.Insert(&Node{freq: 3}))
	require.NoError(t, h.Insert(&Node{freq: 1}))
	require.ErrorIs(t, h.Insert(&Node{freq: 0}), ErrHeapFull)
	require.Equal(t, 2, h.Len())

	n, ok := h.ExtractMin()
	require.True(t, ok)
	require.Equal(t, uint64(1), n.Freq())
}

func TestMinHeapEmpty(t *testing.T) {
	h, err := NewMinHeap(4)
	require.NoError(t, err)
	n, ok := h.ExtractMin()
	require.False(t, ok)
	require.Nil(t, n)
}

func TestMinHeapInvariant(t *testing.T) {
	rnd := rand.New(rand.NewSource(114514))
	h, err := NewMinHeap(Symbols)
	require.NoError(t, err)

	for round := 0; round < 2000; round++ {
		if h.Len() < h.Cap() && (h.Len() == 0 || rnd.Intn(3) != 0) {
			require.NoError(t, h.Insert(&Node{freq: uint64(rnd.Intn(50))}))
		} else {
			_, ok := h.ExtractMin()
			require.True(t, ok)
		}
		checkHeap(t, h)
	}

	var last uint64
	for h.Len() > 0 {
		n, ok := h.ExtractMin()
		require.True(t, ok)
		require.GreaterOrEqual(t, n.Freq(), last)
		last = n.Freq()
		checkHeap(t, h)
	}
}

func TestMinHeapTieBreak(t *testing.T) {
	h, err := NewMinHeap(8)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		require.NoError(t, h.Insert(&Node{symbol: byte(i), freq: 7}))
	}
	for i := 0; i < 8; i++ {
		n, ok := h.ExtractMin()
		require.True(t, ok)
		require.Equal(t, byte(i), n.Symbol(), "equal frequencies come out in insertion order")
	}
}
