package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTokenUnknownByte(t *testing.T) {
	m := learn(t, "ab ab\n", 4)

	tests := []struct {
		name  string
		token string
	}{
		{"unseen byte", "xy"},
		// 'a' was only ever internal and 'b' only ever final, so each in
		// the other position class is just as unknown
		{"final-only byte in internal position", "ba"},
		{"internal-only byte in final position", "aa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.EncodeToken([]byte(tt.token))
			assert.ErrorIs(t, err, ErrUnknownByte)
		})
	}
}

func TestEncodeTokenEmpty(t *testing.T) {
	m := learn(t, "ab ab\n", 4)
	ids, err := m.EncodeToken(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestEncodeLineSkipsEmptyFields(t *testing.T) {
	m := learn(t, "a b\n", 4)

	single, err := m.EncodeLine([]byte("a b"))
	require.NoError(t, err)
	multi, err := m.EncodeLine([]byte("a  b "))
	require.NoError(t, err)
	assert.Equal(t, single, multi)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := learn(t, "hello world hello there world peace\nhello hello world\n", 40)

	// whitespace-normalised input decodes to itself plus the trailing
	// space every final symbol carries
	for _, line := range []string{
		"hello world",
		"world peace there",
		"hello",
	} {
		ids, err := m.EncodeLine([]byte(line))
		require.NoError(t, err)
		decoded, err := m.Decode(ids)
		require.NoError(t, err)
		assert.Equal(t, line+" ", string(decoded))
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	m := learn(t, "ab ab\n", 4)

	_, err := m.Decode([]int{0, 99})
	assert.Error(t, err)
	_, err = m.Decode([]int{-1})
	assert.Error(t, err)
}

func TestDecodeEmpty(t *testing.T) {
	m := learn(t, "ab ab\n", 4)
	decoded, err := m.Decode(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestEncodeGreedySubstitution(t *testing.T) {
	// greedy left-to-right consumption: a run l r r collapses to s r, and
	// l l r to l s
	vec := substitutePair([]int{0, 1, 1}, Pair{Left: 0, Right: 1}, 9)
	assert.Equal(t, []int{9, 1}, vec)

	vec = substitutePair([]int{0, 0, 1}, Pair{Left: 0, Right: 1}, 9)
	assert.Equal(t, []int{0, 9}, vec)

	vec = substitutePair([]int{0, 1, 0, 1}, Pair{Left: 0, Right: 1}, 9)
	assert.Equal(t, []int{9, 9}, vec)

	// length-1 vectors pass through untouched
	vec = substitutePair([]int{3}, Pair{Left: 0, Right: 1}, 9)
	assert.Equal(t, []int{3}, vec)
}
