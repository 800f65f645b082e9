package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairHeapPopsHighestFrequency(t *testing.T) {
	counts := map[Pair]int{
		{0, 1}: 3,
		{1, 2}: 7,
		{2, 3}: 5,
	}
	h := newPairHeap()
	for p, f := range counts {
		h.push(p, f)
	}

	p, f, ok := h.pop(counts)
	require.True(t, ok)
	assert.Equal(t, Pair{1, 2}, p)
	assert.Equal(t, 7, f)
}

func TestPairHeapTieBreak(t *testing.T) {
	counts := map[Pair]int{
		{2, 0}: 4,
		{0, 5}: 4,
		{0, 2}: 4,
	}
	h := newPairHeap()
	for p, f := range counts {
		h.push(p, f)
	}

	// equal frequencies resolve to the lexicographically smallest pair
	p, _, ok := h.pop(counts)
	require.True(t, ok)
	assert.Equal(t, Pair{0, 2}, p)

	delete(counts, p)
	p, _, ok = h.pop(counts)
	require.True(t, ok)
	assert.Equal(t, Pair{0, 5}, p)
}

func TestPairHeapSkipsStaleEntries(t *testing.T) {
	counts := map[Pair]int{
		{0, 1}: 9,
		{1, 2}: 4,
	}
	h := newPairHeap()
	h.push(Pair{0, 1}, 9)
	h.push(Pair{1, 2}, 4)

	// (0,1) decays to 2; the entry recording 9 is now stale and a fresh
	// one reflects the live count
	counts[Pair{0, 1}] = 2
	h.push(Pair{0, 1}, 2)

	p, f, ok := h.pop(counts)
	require.True(t, ok)
	assert.Equal(t, Pair{1, 2}, p)
	assert.Equal(t, 4, f)
}

func TestPairHeapSkipsRemovedPairs(t *testing.T) {
	counts := map[Pair]int{{1, 2}: 1}
	h := newPairHeap()
	h.push(Pair{0, 1}, 9)
	h.push(Pair{1, 2}, 1)

	// (0,1) vanished from the counter entirely
	p, _, ok := h.pop(counts)
	require.True(t, ok)
	assert.Equal(t, Pair{1, 2}, p)
}

func TestPairHeapDrained(t *testing.T) {
	h := newPairHeap()
	_, _, ok := h.pop(map[Pair]int{})
	assert.False(t, ok)

	// entries that are all stale also drain to nothing
	h.push(Pair{0, 1}, 5)
	_, _, ok = h.pop(map[Pair]int{})
	assert.False(t, ok)
	assert.Equal(t, 0, h.len())
}
