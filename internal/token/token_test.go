package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordsMapsLogicOperatorsNotKeywordKinds(t *testing.T) {
	cases := map[string]Kind{
		"not": OPERATOR_LOGIC_NOT,
		"and": OPERATOR_LOGIC_AND,
		"or":  OPERATOR_LOGIC_OR,
		"if":  KEYWORD_IF,
		"def": KEYWORD_DEF,
	}
	for word, want := range cases {
		got, ok := Keywords[word]
		assert.Truef(t, ok, "Keywords should contain %q", word)
		assert.Equal(t, want, got)
	}
}

func TestHasTextDistinguishesLiteralsFromFixedKinds(t *testing.T) {
	assert.True(t, Token{Kind: IDENTIFIER, Text: "x"}.HasText())
	assert.True(t, Token{Kind: LITERAL_STRING, Text: "hi"}.HasText())
	assert.False(t, Token{Kind: KEYWORD_IF}.HasText())
	assert.False(t, Token{Kind: OPERATOR_ADD}.HasText())
}

func TestKindStringIsStableForEveryDeclaredKind(t *testing.T) {
	for k := range names {
		assert.NotEmptyf(t, k.String(), "Kind %d should render a name", k)
	}
}

func TestKindStringFallsBackForUnknownKind(t *testing.T) {
	unknown := Kind(255)
	assert.Contains(t, unknown.String(), "Kind(255)")
}

func TestTokenStringIncludesTextWhenPresent(t *testing.T) {
	tok := Token{Kind: IDENTIFIER, Text: "count"}
	assert.Contains(t, tok.String(), "count")
}
