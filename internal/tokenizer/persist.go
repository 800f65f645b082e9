package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Save writes the symbol table as one line per symbol in id order. Atomic
// symbols serialise as "<byte> <type>" with type 0 (internal) or 1 (final);
// composites as "<left> <right> 2". All fields are space-separated decimal
// integers.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, s := range m.symbols {
		switch s.Type {
		case TypeInternal, TypeFinal:
			fmt.Fprintf(w, "%d %d\n", s.Byte, s.Type)
		case TypePair:
			fmt.Fprintf(w, "%d %d %d\n", s.Left, s.Right, TypePair)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing model file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing model file: %w", err)
	}
	return nil
}

// Load replaces the model with the symbol table parsed from path. Loading
// over a non-empty model requires overwrite; without it the load is refused
// before the file is touched. Validation per line: two fields must carry
// type 0 or 1 with a byte-range payload; three fields must carry type 2 and
// reference ids strictly below the line's own id. Anything else is
// ErrMalformedModel. A successful load rebuilds the reverse maps and the
// pre-rendered symbol strings.
func (m *Model) Load(path string, overwrite bool) error {
	if len(m.symbols) > 0 && !overwrite {
		return ErrOverwriteRefused
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening model file: %w", err)
	}
	defer f.Close()

	m.Clear()
	sc := bufio.NewScanner(f)
	id := 0
	for sc.Scan() {
		if err := m.parseSymbolLine(sc.Text(), id); err != nil {
			m.Clear()
			return err
		}
		id++
	}
	if err := sc.Err(); err != nil {
		m.Clear()
		return fmt.Errorf("reading model file: %w", err)
	}

	m.render()
	return nil
}

func (m *Model) parseSymbolLine(line string, id int) error {
	fields := strings.Fields(line)
	nums := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return fmt.Errorf("line %d: field %q is not an integer: %w", id+1, field, ErrMalformedModel)
		}
		nums[i] = n
	}

	switch len(nums) {
	case 2:
		typ := SymbolType(nums[1])
		if typ != TypeInternal && typ != TypeFinal {
			return fmt.Errorf("line %d: bad atomic symbol type %d: %w", id+1, nums[1], ErrMalformedModel)
		}
		if nums[0] < 0 || nums[0] > 255 {
			return fmt.Errorf("line %d: byte value %d out of range: %w", id+1, nums[0], ErrMalformedModel)
		}
		m.appendByte(byte(nums[0]), typ == TypeFinal)
	case 3:
		if SymbolType(nums[2]) != TypePair {
			return fmt.Errorf("line %d: bad pair symbol type %d: %w", id+1, nums[2], ErrMalformedModel)
		}
		if nums[0] < 0 || nums[0] >= id || nums[1] < 0 || nums[1] >= id {
			return fmt.Errorf("line %d: pair (%d,%d) references a symbol at or past itself: %w",
				id+1, nums[0], nums[1], ErrMalformedModel)
		}
		m.appendPair(nums[0], nums[1])
	default:
		return fmt.Errorf("line %d: expected 2 or 3 fields, got %d: %w", id+1, len(nums), ErrMalformedModel)
	}
	return nil
}
