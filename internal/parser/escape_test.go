package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnescapeHandlesControlShorthands(t *testing.T) {
	got, err := unescape(`a\tb\nc`, '"')
	require.NoError(t, err)
	assert.Equal(t, "a\tb\nc", got)
}

func TestUnescapeHandlesQuoteAndBackslash(t *testing.T) {
	got, err := unescape(`\"\\`, '"')
	require.NoError(t, err)
	assert.Equal(t, `"\`, got)
}

func TestUnescapeHandlesRuneQuote(t *testing.T) {
	got, err := unescape(`\'`, '\'')
	require.NoError(t, err)
	assert.Equal(t, "'", got)
}

func TestUnescapeHandlesUnicodeEscape(t *testing.T) {
	got, err := unescape(`\u{41}`, '"')
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}

func TestUnescapeRejectsSurrogateCodepoints(t *testing.T) {
	_, err := unescape(`\u{D800}`, '"')
	assert.Error(t, err)
}

func TestUnescapeRejectsOutOfRangeCodepoints(t *testing.T) {
	_, err := unescape(`\u{110000}`, '"')
	assert.Error(t, err)
}

func TestUnescapeRejectsUnterminatedUnicodeEscape(t *testing.T) {
	_, err := unescape(`\u{41`, '"')
	assert.Error(t, err)
}

func TestUnescapeRejectsUnknownEscapeSequence(t *testing.T) {
	_, err := unescape(`\q`, '"')
	assert.Error(t, err)
}

func TestUnescapeRejectsTrailingBackslash(t *testing.T) {
	_, err := unescape(`abc\`, '"')
	assert.Error(t, err)
}

func TestUnescapePassesThroughPlainText(t *testing.T) {
	got, err := unescape("hello world", '"')
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
}
