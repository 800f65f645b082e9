package tokenizer

import (
	"github.com/emirpasic/gods/v2/trees/binaryheap"
)

// pairEntry is one heap element: a pair and the frequency it was enqueued
// with. Entries are never updated in place. Whenever a pair's count changes,
// a fresh entry is pushed; superseded entries are detected at pop time by
// comparing their recorded frequency against the live counter and discarded.
type pairEntry struct {
	pair Pair
	freq int
}

// byFreqDesc orders entries highest frequency first. Ties fall back to the
// lexicographically smallest pair, so the top of the heap is always unique
// and two runs over the same corpus pop pairs in the same order.
func byFreqDesc(a, b pairEntry) int {
	if a.freq != b.freq {
		return b.freq - a.freq
	}
	if a.pair.Left != b.pair.Left {
		return a.pair.Left - b.pair.Left
	}
	return a.pair.Right - b.pair.Right
}

// pairHeap is the training priority structure.
type pairHeap struct {
	h *binaryheap.Heap[pairEntry]
}

func newPairHeap() *pairHeap {
	return &pairHeap{h: binaryheap.NewWith(byFreqDesc)}
}

func (ph *pairHeap) push(p Pair, freq int) {
	ph.h.Push(pairEntry{pair: p, freq: freq})
}

// pop returns the highest-frequency pair still present in counts, skipping
// stale entries. The second return is that frequency; ok is false once the
// heap has drained.
func (ph *pairHeap) pop(counts map[Pair]int) (Pair, int, bool) {
	for {
		e, ok := ph.h.Pop()
		if !ok {
			return Pair{}, 0, false
		}
		if cur, live := counts[e.pair]; live && cur == e.freq {
			return e.pair, e.freq, true
		}
	}
}

func (ph *pairHeap) len() int {
	return ph.h.Size()
}
