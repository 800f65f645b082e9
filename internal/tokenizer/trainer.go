package tokenizer

import (
	"fmt"
	"sort"

	"github.com/leo-du/bytebpe/internal/corpus"
	"github.com/leo-du/bytebpe/internal/logging"
)

// ProgressFunc receives phase progress during training. Phases are reported
// in a fixed order; done counts up to total within each phase.
type ProgressFunc func(phase string, done, total int64)

// Training phase names passed to ProgressFunc.
const (
	PhaseTokens  = "indexing tokens"
	PhasePairs   = "indexing byte pairs"
	PhaseHeap    = "building heap"
	PhaseSymbols = "creating new symbols"
)

// Trainer runs the BPE merge loop against a corpus and fills a Model. All
// intermediate indices live only for the duration of Learn.
type Trainer struct {
	Model    *Model
	Progress ProgressFunc
}

// tokenEntry is one unique corpus token: its evolving symbol vector and its
// fixed multiplicity.
type tokenEntry struct {
	vec  []int
	freq int
}

// trainState holds the indices the merge loop keeps mutually consistent:
//
//	pairFreq[p]  == sum over tokens t of t.freq * occurrences(p, t.vec)
//	pairToks[p][i] == occurrences(p, tokens[i].vec), present iff positive
//
// The heap holds one live entry per pairFreq key (plus stale ones that pop
// filters out), so the top selection is always exact.
type trainState struct {
	tokens   []tokenEntry
	pairFreq map[Pair]int
	pairToks map[Pair]map[int]int
	heap     *pairHeap
}

// Learn trains from scratch, clearing any prior model state. The symbol
// table ends at exactly vocabSize entries when the corpus supports that many
// merges, and smaller when pairs run out first; vocabSize at or below the
// base size means no merges at all.
func (t *Trainer) Learn(corpusPath string, vocabSize int) error {
	m := t.Model
	m.Clear()

	lines, err := corpus.CountLines(corpusPath)
	if err != nil {
		return err
	}
	logging.Infof("learning BPE on %s (%d lines)", corpusPath, lines)

	stats, err := corpus.Collect(corpusPath, func(done int64) {
		t.report(PhaseTokens, done, lines)
	})
	if err != nil {
		return err
	}

	for _, b := range stats.InternalBytes() {
		m.appendByte(b, false)
	}
	for _, b := range stats.FinalBytes() {
		m.appendByte(b, true)
	}
	base := m.VocabSize()
	logging.Debugf("base vocabulary: %d symbols, %d unique tokens", base, len(stats.Counts))

	st, err := t.index(stats)
	if err != nil {
		return err
	}

	t.report(PhaseSymbols, 0, int64(vocabSize-base))
	for id := base; id < vocabSize; id++ {
		merged, err := st.mergeOnce(m)
		if err != nil {
			return err
		}
		if !merged {
			logging.Infof("pairs exhausted after %d merges", id-base)
			break
		}
		t.report(PhaseSymbols, int64(id-base+1), int64(vocabSize-base))
	}

	m.render()
	logging.Infof("learned %d symbols (%d base)", m.VocabSize(), base)
	return nil
}

// index builds the unique-token table, the pair counters, and the heap. The
// token table is ordered by token bytes so that two runs over the same
// corpus assign the same indices.
func (t *Trainer) index(stats *corpus.Stats) (*trainState, error) {
	m := t.Model

	uniq := make([]string, 0, len(stats.Counts))
	for tok := range stats.Counts {
		uniq = append(uniq, tok)
	}
	sort.Strings(uniq)

	st := &trainState{
		tokens:   make([]tokenEntry, 0, len(uniq)),
		pairFreq: make(map[Pair]int),
		pairToks: make(map[Pair]map[int]int),
		heap:     newPairHeap(),
	}

	for i, tok := range uniq {
		freq := stats.Counts[tok]
		vec := make([]int, len(tok))
		for j := 0; j+1 < len(tok); j++ {
			id, ok := m.byteID(tok[j], false)
			if !ok {
				return nil, fmt.Errorf("internal byte %d missing from base vocabulary: %w", tok[j], ErrIndexCorrupt)
			}
			vec[j] = id
		}
		id, ok := m.byteID(tok[len(tok)-1], true)
		if !ok {
			return nil, fmt.Errorf("final byte %d missing from base vocabulary: %w", tok[len(tok)-1], ErrIndexCorrupt)
		}
		vec[len(tok)-1] = id

		tokIdx := len(st.tokens)
		st.tokens = append(st.tokens, tokenEntry{vec: vec, freq: freq})

		for j := 0; j+1 < len(vec); j++ {
			p := Pair{Left: vec[j], Right: vec[j+1]}
			if err := adjustCount(st.pairFreq, p, freq); err != nil {
				return nil, err
			}
			if err := st.adjustOccurrence(p, tokIdx, 1); err != nil {
				return nil, err
			}
		}
		t.report(PhasePairs, int64(i+1), int64(len(uniq)))
	}

	var built int64
	for p, freq := range st.pairFreq {
		st.heap.push(p, freq)
		built++
		t.report(PhaseHeap, built, int64(len(st.pairFreq)))
	}
	return st, nil
}

// mergeOnce runs one iteration of the merge loop: pop the top pair, append
// the new symbol, rewrite every affected token, and apply the resulting
// frequency deltas. Returns false when no pair is left to merge.
func (st *trainState) mergeOnce(m *Model) (bool, error) {
	top, freq, ok := st.heap.pop(st.pairFreq)
	if !ok {
		return false, nil
	}
	newID := m.appendPair(top.Left, top.Right)
	logging.Debugf("merge %d: (%d,%d) freq %d", newID, top.Left, top.Right, freq)

	// Snapshot the affected token indices: rewriting mutates the inner
	// counter maps, including the one being enumerated.
	affected := make([]int, 0, len(st.pairToks[top]))
	for tokIdx := range st.pairToks[top] {
		affected = append(affected, tokIdx)
	}
	sort.Ints(affected)

	delta := make(map[Pair]int)
	for _, tokIdx := range affected {
		entry := st.tokens[tokIdx]
		newVec := substitutePair(entry.vec, top, newID)

		for j := 0; j+1 < len(newVec); j++ {
			p := Pair{Left: newVec[j], Right: newVec[j+1]}
			delta[p] += entry.freq
			if err := st.adjustOccurrence(p, tokIdx, 1); err != nil {
				return false, err
			}
		}
		for j := 0; j+1 < len(entry.vec); j++ {
			p := Pair{Left: entry.vec[j], Right: entry.vec[j+1]}
			delta[p] -= entry.freq
			if err := st.adjustOccurrence(p, tokIdx, -1); err != nil {
				return false, err
			}
		}
		st.tokens[tokIdx] = tokenEntry{vec: newVec, freq: entry.freq}
	}

	// The merged pair must vanish exactly: every one of its occurrences
	// was rewritten away.
	if delta[top]+freq != 0 {
		return false, fmt.Errorf("merged pair (%d,%d) delta %d does not cancel count %d: %w",
			top.Left, top.Right, delta[top], freq, ErrIndexCorrupt)
	}
	delete(st.pairFreq, top)
	delete(delta, top)

	for p, d := range delta {
		if d == 0 {
			continue
		}
		cur, exists := st.pairFreq[p]
		if !exists {
			if d < 0 {
				return false, fmt.Errorf("negative count %d for unseen pair (%d,%d): %w",
					d, p.Left, p.Right, ErrIndexCorrupt)
			}
			st.pairFreq[p] = d
			st.heap.push(p, d)
			continue
		}
		next := cur + d
		switch {
		case next < 0:
			return false, fmt.Errorf("count for pair (%d,%d) went negative: %w", p.Left, p.Right, ErrIndexCorrupt)
		case next == 0:
			delete(st.pairFreq, p)
		default:
			st.pairFreq[p] = next
			st.heap.push(p, next)
		}
	}
	return true, nil
}

// adjustOccurrence adds d to the pair's occurrence count inside one token,
// creating and erasing entries so both map levels stay present-iff-positive.
// Decrementing a missing entry means the indices disagree.
func (st *trainState) adjustOccurrence(p Pair, tokIdx, d int) error {
	if d == 0 {
		return ErrZeroDelta
	}
	inner := st.pairToks[p]
	if inner == nil {
		if d < 0 {
			return fmt.Errorf("pair (%d,%d) absent from token index: %w", p.Left, p.Right, ErrIndexCorrupt)
		}
		st.pairToks[p] = map[int]int{tokIdx: d}
		return nil
	}
	cur, ok := inner[tokIdx]
	if !ok && d < 0 {
		return fmt.Errorf("pair (%d,%d) has no entry for token %d: %w", p.Left, p.Right, tokIdx, ErrIndexCorrupt)
	}
	next := cur + d
	switch {
	case next < 0:
		return fmt.Errorf("occurrence count for pair (%d,%d) in token %d went negative: %w",
			p.Left, p.Right, tokIdx, ErrIndexCorrupt)
	case next == 0:
		delete(inner, tokIdx)
		if len(inner) == 0 {
			delete(st.pairToks, p)
		}
	default:
		inner[tokIdx] = next
	}
	return nil
}

// adjustCount adds d to counter[p], deleting the key when it reaches zero.
func adjustCount(counter map[Pair]int, p Pair, d int) error {
	if d == 0 {
		return ErrZeroDelta
	}
	next := counter[p] + d
	switch {
	case next < 0:
		return fmt.Errorf("count for pair (%d,%d) went negative: %w", p.Left, p.Right, ErrIndexCorrupt)
	case next == 0:
		delete(counter, p)
	default:
		counter[p] = next
	}
	return nil
}

func (t *Trainer) report(phase string, done, total int64) {
	if t.Progress != nil {
		t.Progress(phase, done, total)
	}
}
