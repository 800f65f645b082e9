package tokenizer

// Model holds the trained symbol vocabulary and the derived lookup
// structures. Invariants we maintain:
//   - ids are dense, starting at 0, in insertion order
//   - every TypePair symbol references ids strictly less than its own
//   - Internal and Final occurrences of a byte are distinct symbols
//   - rendered[id] is the exact byte expansion of symbol id (Final symbols
//     carry a trailing space)
//
// The symbol table only grows; entries are immutable once appended. A Model
// is not safe for concurrent use while Learn or Load is running.
type Model struct {
	symbols []Symbol

	// reverse lookups, kept in sync with symbols
	byteIDs map[byteKey]int
	pairIDs map[Pair]int

	// rendered[id] is built bottom-up after training or loading
	rendered [][]byte
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		byteIDs: make(map[byteKey]int),
		pairIDs: make(map[Pair]int),
	}
}

// VocabSize returns the number of symbols in the table.
func (m *Model) VocabSize() int {
	return len(m.symbols)
}

// Symbol returns the symbol at the given id and whether it exists.
func (m *Model) Symbol(id int) (Symbol, bool) {
	if id < 0 || id >= len(m.symbols) {
		return Symbol{}, false
	}
	return m.symbols[id], true
}

// Clear drops all symbols and derived state, returning the model to its
// freshly constructed state.
func (m *Model) Clear() {
	m.symbols = nil
	m.byteIDs = make(map[byteKey]int)
	m.pairIDs = make(map[Pair]int)
	m.rendered = nil
}

// appendByte adds an atomic symbol and returns its id.
func (m *Model) appendByte(b byte, final bool) int {
	id := len(m.symbols)
	typ := TypeInternal
	if final {
		typ = TypeFinal
	}
	m.symbols = append(m.symbols, Symbol{Type: typ, Byte: b})
	key := byteKey{b: b, final: final}
	if _, ok := m.byteIDs[key]; !ok {
		m.byteIDs[key] = id
	}
	return id
}

// appendPair adds a composite symbol and returns its id. The reverse map
// keeps the smallest id for a pair, which is the merge learned earliest.
func (m *Model) appendPair(left, right int) int {
	id := len(m.symbols)
	m.symbols = append(m.symbols, Symbol{Type: TypePair, Left: left, Right: right})
	p := Pair{Left: left, Right: right}
	if _, ok := m.pairIDs[p]; !ok {
		m.pairIDs[p] = id
	}
	return id
}

// byteID looks up the id of an atomic symbol.
func (m *Model) byteID(b byte, final bool) (int, bool) {
	id, ok := m.byteIDs[byteKey{b: b, final: final}]
	return id, ok
}

// pairID looks up the id of the earliest symbol merging the given pair.
func (m *Model) pairID(p Pair) (int, bool) {
	id, ok := m.pairIDs[p]
	return id, ok
}

// render precomputes the byte expansion of every symbol. Pair symbols only
// reference smaller ids, so a single forward pass suffices.
func (m *Model) render() {
	m.rendered = make([][]byte, len(m.symbols))
	for id, s := range m.symbols {
		switch s.Type {
		case TypeInternal:
			m.rendered[id] = []byte{s.Byte}
		case TypeFinal:
			m.rendered[id] = []byte{s.Byte, ' '}
		case TypePair:
			left := m.rendered[s.Left]
			right := m.rendered[s.Right]
			buf := make([]byte, 0, len(left)+len(right))
			buf = append(buf, left...)
			buf = append(buf, right...)
			m.rendered[id] = buf
		}
	}
}
