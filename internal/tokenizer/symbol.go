package tokenizer

// SymbolType discriminates the three symbol variants. The numeric values
// double as the type codes in the model file format and must not change.
type SymbolType int

const (
	// TypeInternal is an atomic byte occurring strictly before the last
	// byte of some token.
	TypeInternal SymbolType = 0
	// TypeFinal is an atomic byte occurring as the last byte of some token.
	TypeFinal SymbolType = 1
	// TypePair is a composite of two previously defined symbols.
	TypePair SymbolType = 2
)

// Symbol is a tagged record. Byte is the payload for TypeInternal and
// TypeFinal; Left and Right are the component ids for TypePair and always
// reference ids smaller than the symbol's own.
type Symbol struct {
	Type  SymbolType
	Byte  byte
	Left  int
	Right int
}

// Pair is an ordered adjacency of two symbol ids within a token's current
// symbol vector. Comparable, so it can key maps directly.
type Pair struct {
	Left  int
	Right int
}

// byteKey keys the reverse lookup for atomic symbols. The same byte may
// appear both token-internal and token-final and gets a distinct id for each.
type byteKey struct {
	b     byte
	final bool
}

// substitutePair rewrites vec, replacing every non-overlapping occurrence of
// p with id. Matches are consumed greedily left to right: after a match the
// scan resumes past both elements, so [l r r] becomes [s r] and [l l r]
// becomes [l s].
func substitutePair(vec []int, p Pair, id int) []int {
	out := make([]int, 0, len(vec))
	for i := 0; i < len(vec); i++ {
		if i+1 < len(vec) && vec[i] == p.Left && vec[i+1] == p.Right {
			out = append(out, id)
			i++
		} else {
			out = append(out, vec[i])
		}
	}
	return out
}
