package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/source"
	"github.com/dauw-lang/dauw/internal/token"
)

type tokenExpectation struct {
	Kind token.Kind
	Text string
}

func lex(t *testing.T, text string) ([]token.Token, *diagnostic.Collector) {
	t.Helper()
	src := source.New("test.dw", text)
	c := &diagnostic.Collector{}
	tokens := New(src, c).Tokenize()
	return tokens, c
}

func assertTokens(t *testing.T, got []token.Token, want []tokenExpectation) {
	t.Helper()
	gotSimplified := make([]tokenExpectation, len(got))
	for i, tok := range got {
		gotSimplified[i] = tokenExpectation{Kind: tok.Kind, Text: tok.Text}
	}
	if diff := cmp.Diff(want, gotSimplified); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeSimpleExpression(t *testing.T) {
	tokens, c := lex(t, "echo 1 + 2")
	require.False(t, c.HasErrors())
	assertTokens(t, tokens, []tokenExpectation{
		{token.KEYWORD_ECHO, ""},
		{token.LITERAL_INT, "1"},
		{token.OPERATOR_ADD, ""},
		{token.LITERAL_INT, "2"},
		{token.NEWLINE, ""},
		{token.END, ""},
	})
}

func TestTokenizeIdentifierVsKeyword(t *testing.T) {
	tokens, c := lex(t, "ifdef")
	require.False(t, c.HasErrors())
	assertTokens(t, tokens, []tokenExpectation{
		{token.IDENTIFIER, "ifdef"},
		{token.NEWLINE, ""},
		{token.END, ""},
	})
}

func TestTokenizeBlankLinesAreSkipped(t *testing.T) {
	tokens, c := lex(t, "echo 1\n\n\necho 2")
	require.False(t, c.HasErrors())
	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.KEYWORD_ECHO, token.LITERAL_INT, token.NEWLINE,
		token.KEYWORD_ECHO, token.LITERAL_INT, token.NEWLINE,
		token.END,
	}, kinds)
}

func TestTokenizeIndentAndDedent(t *testing.T) {
	src := "if true then\n  echo 1\necho 2"
	tokens, c := lex(t, src)
	require.False(t, c.HasErrors())
	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.KEYWORD_IF, token.KEYWORD_TRUE, token.KEYWORD_THEN, token.NEWLINE,
		token.INDENT, token.KEYWORD_ECHO, token.LITERAL_INT, token.NEWLINE,
		token.DEDENT, token.KEYWORD_ECHO, token.LITERAL_INT, token.NEWLINE,
		token.END,
	}, kinds)
}

func TestTokenizeTrailingDedentsBeforeEnd(t *testing.T) {
	src := "if true then\n  echo 1"
	tokens, c := lex(t, src)
	require.False(t, c.HasErrors())
	last := tokens[len(tokens)-1]
	secondLast := tokens[len(tokens)-2]
	assert.Equal(t, token.END, last.Kind)
	assert.Equal(t, token.DEDENT, secondLast.Kind)
}

func TestTokenizeFirstLineIndentedIsAnError(t *testing.T) {
	_, c := lex(t, "  echo 1")
	assert.True(t, c.HasErrors())
	assert.Equal(t, diagnostic.SyntaxError, c.Diagnostics[0].Kind)
}

func TestTokenizeMismatchedIndentationIsAnError(t *testing.T) {
	src := "if true then\n    echo 1\n  echo 2"
	_, c := lex(t, src)
	assert.True(t, c.HasErrors())
}

func TestTokenizeShebangOnlyAllowedOnFirstLine(t *testing.T) {
	tokens, c := lex(t, "#!/usr/bin/env dauw\necho 1")
	require.False(t, c.HasErrors())
	assertTokens(t, tokens, []tokenExpectation{
		{token.KEYWORD_ECHO, ""},
		{token.LITERAL_INT, "1"},
		{token.NEWLINE, ""},
		{token.END, ""},
	})

	_, c2 := lex(t, "echo 1\n#!/usr/bin/env dauw")
	assert.True(t, c2.HasErrors())
}

func TestTokenizeComments(t *testing.T) {
	tokens, c := lex(t, "echo 1 -- trailing remark")
	require.False(t, c.HasErrors())
	assertTokens(t, tokens, []tokenExpectation{
		{token.KEYWORD_ECHO, ""},
		{token.LITERAL_INT, "1"},
		{token.COMMENT, "trailing remark"},
		{token.NEWLINE, ""},
		{token.END, ""},
	})
}

func TestTokenizeStroppedIdentifier(t *testing.T) {
	tokens, c := lex(t, "`my name`")
	require.False(t, c.HasErrors())
	assertTokens(t, tokens, []tokenExpectation{
		{token.IDENTIFIER, "my name"},
		{token.NEWLINE, ""},
		{token.END, ""},
	})
}

func TestTokenizeStringAndRuneLiterals(t *testing.T) {
	tokens, c := lex(t, `echo "hi" 'a'`)
	require.False(t, c.HasErrors())
	assertTokens(t, tokens, []tokenExpectation{
		{token.KEYWORD_ECHO, ""},
		{token.LITERAL_STRING, "hi"},
		{token.LITERAL_RUNE, "a"},
		{token.NEWLINE, ""},
		{token.END, ""},
	})
}

func TestTokenizeRealLiteral(t *testing.T) {
	tokens, c := lex(t, "3.14")
	require.False(t, c.HasErrors())
	assertTokens(t, tokens, []tokenExpectation{
		{token.LITERAL_REAL, "3.14"},
		{token.NEWLINE, ""},
		{token.END, ""},
	})
}

func TestTokenizeLongestMatchWinsOverShorterOperators(t *testing.T) {
	tokens, c := lex(t, "a <=> b")
	require.False(t, c.HasErrors())
	assertTokens(t, tokens, []tokenExpectation{
		{token.IDENTIFIER, "a"},
		{token.OPERATOR_COMPARE, ""},
		{token.IDENTIFIER, "b"},
		{token.NEWLINE, ""},
		{token.END, ""},
	})
}

func TestTokenizeInvalidCharacterReportsSyntaxError(t *testing.T) {
	_, c := lex(t, "echo @")
	require.True(t, c.HasErrors())
	assert.Equal(t, diagnostic.SyntaxError, c.Diagnostics[0].Kind)
}

func TestTokenizeIndentedFirstLineIsAnError(t *testing.T) {
	tokens, c := lex(t, "  if true")
	require.True(t, c.HasErrors()) // first line must not be indented
	_ = tokens
}

func TestTokenizeNegativeIntLiteral(t *testing.T) {
	tokens, c := lex(t, "-42")
	require.False(t, c.HasErrors())
	assertTokens(t, tokens, []tokenExpectation{
		{token.LITERAL_INT, "-42"},
		{token.NEWLINE, ""},
		{token.END, ""},
	})
}

func FuzzTokenize(f *testing.F) {
	f.Add("echo 1 + 2")
	f.Add("if true then\n  echo 1\nelse\n  echo 2")
	f.Add("`weird name` = 1")
	f.Add("")
	f.Fuzz(func(t *testing.T, text string) {
		src := source.New("fuzz.dw", text)
		c := &diagnostic.Collector{}
		assert.NotPanics(t, func() {
			tokens := New(src, c).Tokenize()
			require.NotEmpty(t, tokens)
			assert.Equal(t, token.END, tokens[len(tokens)-1].Kind)
		})
	})
}
