package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStringRejectsInvalidUTF8(t *testing.T) {
	_, err := NewString([]byte{0xff, 0xfe})
	assert.Error(t, err)
}

func TestNewStringRoundTripsRuneLength(t *testing.T) {
	s, err := NewString([]byte("héllo 界"))
	require.NoError(t, err)
	assert.Equal(t, 7, s.RuneLen())
	assert.Equal(t, 'h', s.RuneAt(0))
	assert.Equal(t, '界', s.RuneAt(6))
}

func TestCompareIsLexicographic(t *testing.T) {
	a, _ := NewString([]byte("abc"))
	b, _ := NewString([]byte("abd"))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
}

func TestAppendConcatenatesBytes(t *testing.T) {
	a, _ := NewString([]byte("foo"))
	b, _ := NewString([]byte("bar"))
	joined := a.Append(b)
	assert.Equal(t, "foobar", joined.String())
}

func TestRunesIteratesInOrder(t *testing.T) {
	s, _ := NewString([]byte("abc"))
	var got []rune
	s.Runes(func(r rune) bool {
		got = append(got, r)
		return true
	})
	assert.Equal(t, []rune{'a', 'b', 'c'}, got)
}

func TestRunesStopsEarlyWhenYieldReturnsFalse(t *testing.T) {
	s, _ := NewString([]byte("abcdef"))
	var got []rune
	s.Runes(func(r rune) bool {
		got = append(got, r)
		return len(got) < 2
	})
	assert.Equal(t, []rune{'a', 'b'}, got)
}

func TestNormalizedComposesCombiningSequences(t *testing.T) {
	decomposed, _ := NewString([]byte("é")) // e + combining acute
	normalized := decomposed.Normalized()
	assert.Equal(t, 1, normalized.RuneLen())
}

func TestArenaAllocAndGet(t *testing.T) {
	a := &Arena{}
	s, _ := NewString([]byte("hi"))
	idx := a.Alloc(s)
	assert.Equal(t, s, a.Get(idx))
	assert.Equal(t, 1, a.Len())
}

func TestArenaResetDropsObjects(t *testing.T) {
	a := &Arena{}
	s, _ := NewString([]byte("hi"))
	a.Alloc(s)
	a.Reset()
	assert.Equal(t, 0, a.Len())
}
