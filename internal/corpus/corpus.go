// Package corpus streams training text and accumulates the token statistics
// the trainer starts from. A corpus is an opaque byte stream: lines are
// delimited by '\n', tokens within a line by a single ASCII space. No
// encoding interpretation or normalisation happens here.
package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// scanner buffer sizing; corpus lines can be much longer than bufio's default
const (
	initialBufSize = 64 * 1024
	maxLineSize    = 16 * 1024 * 1024
)

// Stats holds everything the trainer needs from a corpus scan: per-token
// multiplicities and the sets of bytes observed token-internal and
// token-final.
type Stats struct {
	Counts   map[string]int
	internal [256]bool
	final    [256]bool
}

// InternalBytes returns the bytes seen before the last position of any
// token, in ascending order.
func (s *Stats) InternalBytes() []byte {
	return setToBytes(&s.internal)
}

// FinalBytes returns the bytes seen in the last position of any token, in
// ascending order.
func (s *Stats) FinalBytes() []byte {
	return setToBytes(&s.final)
}

func setToBytes(set *[256]bool) []byte {
	out := make([]byte, 0, 64)
	for b := 0; b < 256; b++ {
		if set[b] {
			out = append(out, byte(b))
		}
	}
	return out
}

// CountLines scans the file once and returns its line count. The count only
// sizes progress reporting; collection does not depend on it.
func CountLines(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	sc := newLineScanner(f)
	var n int64
	for sc.Scan() {
		n++
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading corpus: %w", err)
	}
	return n, nil
}

// Collect tokenises the corpus and accumulates statistics. Lines are split
// on 0x20; the line terminator is never part of a token. Empty tokens
// produced by consecutive spaces (or leading/trailing ones) are skipped:
// they have no final byte, so no symbol can represent them. The progress
// callback, when non-nil, receives the number of lines consumed so far.
func Collect(path string, progress func(lines int64)) (*Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()

	stats := &Stats{Counts: make(map[string]int)}
	sc := newLineScanner(f)
	var lines int64

	for sc.Scan() {
		for _, tok := range strings.Split(sc.Text(), " ") {
			if tok == "" {
				continue
			}
			stats.Counts[tok]++
			for i := 0; i+1 < len(tok); i++ {
				stats.internal[tok[i]] = true
			}
			stats.final[tok[len(tok)-1]] = true
		}
		lines++
		if progress != nil {
			progress(lines)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading corpus: %w", err)
	}
	return stats, nil
}

func newLineScanner(f *os.File) *bufio.Scanner {
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, initialBufSize), maxLineSize)
	// split on '\n' only; bufio.ScanLines would also drop a trailing '\r'
	sc.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			return i + 1, data[:i], nil
		}
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}
		return 0, nil, nil
	})
	return sc
}
