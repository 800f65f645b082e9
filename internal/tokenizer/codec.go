package tokenizer

import (
	"bytes"
	"fmt"
)

// EncodeToken converts one token (a byte string with no spaces) to symbol
// ids by applying learned merges in training order: in each round the pair
// whose symbol id is smallest is substituted greedily left to right, until
// no adjacent pair has a learned symbol or the vector collapses to a single
// id. Bytes the model never saw in the required position produce
// ErrUnknownByte. An empty token encodes to nothing.
func (m *Model) EncodeToken(token []byte) ([]int, error) {
	if len(token) == 0 {
		return nil, nil
	}

	vec := make([]int, len(token))
	for i := 0; i+1 < len(token); i++ {
		id, ok := m.byteID(token[i], false)
		if !ok {
			return nil, fmt.Errorf("internal byte %d: %w", token[i], ErrUnknownByte)
		}
		vec[i] = id
	}
	last := token[len(token)-1]
	id, ok := m.byteID(last, true)
	if !ok {
		return nil, fmt.Errorf("final byte %d: %w", last, ErrUnknownByte)
	}
	vec[len(vec)-1] = id

	for len(vec) > 1 {
		best := -1
		var bestPair Pair
		for i := 0; i+1 < len(vec); i++ {
			p := Pair{Left: vec[i], Right: vec[i+1]}
			if id, ok := m.pairID(p); ok && (best == -1 || id < best) {
				best = id
				bestPair = p
			}
		}
		if best == -1 {
			break
		}
		vec = substitutePair(vec, bestPair, best)
	}
	return vec, nil
}

// EncodeLine splits the line on ASCII spaces and concatenates the per-token
// encodings in order. Empty fields from consecutive spaces are skipped, the
// same way corpus ingestion skips them.
func (m *Model) EncodeLine(line []byte) ([]int, error) {
	var out []int
	for _, tok := range bytes.Split(line, []byte{' '}) {
		ids, err := m.EncodeToken(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, ids...)
	}
	return out, nil
}

// Decode concatenates the pre-rendered byte strings of the given symbol ids.
// Final symbols render with a trailing space, so a well-formed token
// sequence decodes to space-separated tokens with a trailing space after the
// last one. Nothing is trimmed.
func (m *Model) Decode(ids []int) ([]byte, error) {
	var buf bytes.Buffer
	for _, id := range ids {
		if id < 0 || id >= len(m.rendered) {
			return nil, fmt.Errorf("symbol id %d out of range [0,%d)", id, len(m.rendered))
		}
		buf.Write(m.rendered[id])
	}
	return buf.Bytes(), nil
}
