package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/lexer"
	"github.com/dauw-lang/dauw/internal/source"
	"github.com/dauw-lang/dauw/internal/token"
)

func parse(t *testing.T, text string) (*ast.Block, *diagnostic.Collector) {
	t.Helper()
	src := source.New("test.dw", text)
	c := &diagnostic.Collector{}
	tokens := lexer.New(src, c).Tokenize()
	block := New(tokens, c).Parse()
	return block, c
}

func TestParseArithmeticRespectsPrecedence(t *testing.T) {
	block, c := parse(t, "1 + 2 * 3")
	require.False(t, c.HasErrors())
	require.Len(t, block.Exprs, 1)

	bin, ok := block.Exprs[0].(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.OPERATOR_ADD, bin.Op)

	lit, ok := bin.Left.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, int64(1), lit.Scalar.AsInt())

	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.OPERATOR_MULTIPLY, rhs.Op)
}

func TestParseChainOperatorsAreLeftAssociative(t *testing.T) {
	block, c := parse(t, "1 + 2 + 3")
	require.False(t, c.HasErrors())
	top, ok := block.Exprs[0].(*ast.Binary)
	require.True(t, ok)
	_, ok = top.Left.(*ast.Binary)
	assert.True(t, ok, "left child of a chained + should itself be a Binary")
	_, ok = top.Right.(*ast.Literal)
	assert.True(t, ok, "right child should be the last operand")
}

func TestParseNonChainOperatorRejectsRepeatedUse(t *testing.T) {
	_, c := parse(t, "1 < 2 < 3")
	assert.True(t, c.HasErrors(), "comparison operators must not chain")
}

func TestParseUnaryIsRightRecursive(t *testing.T) {
	block, c := parse(t, "- - 1")
	require.False(t, c.HasErrors())
	outer, ok := block.Exprs[0].(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, token.OPERATOR_SUBTRACT, outer.Op)
	inner, ok := outer.Right.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, token.OPERATOR_SUBTRACT, inner.Op)
}

func TestParseGroupedExpression(t *testing.T) {
	block, c := parse(t, "(1 + 2) * 3")
	require.False(t, c.HasErrors())
	bin, ok := block.Exprs[0].(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, token.OPERATOR_MULTIPLY, bin.Op)
	_, ok = bin.Left.(*ast.Grouped)
	assert.True(t, ok)
}

func TestParseIfThenElse(t *testing.T) {
	block, c := parse(t, "if true then 1 else 2")
	require.False(t, c.HasErrors())
	ifExpr, ok := block.Exprs[0].(*ast.If)
	require.True(t, ok)
	assert.NotNil(t, ifExpr.Cond)
	assert.NotNil(t, ifExpr.Then)
	assert.NotNil(t, ifExpr.Else)
}

func TestParseIfWithIndentedBody(t *testing.T) {
	block, c := parse(t, "if true then\n  echo 1\n  echo 2")
	require.False(t, c.HasErrors())
	ifExpr, ok := block.Exprs[0].(*ast.If)
	require.True(t, ok)
	body, ok := ifExpr.Then.(*ast.Block)
	require.True(t, ok)
	assert.Len(t, body.Exprs, 2)
}

func TestParseWhileAndUntilLoops(t *testing.T) {
	block, c := parse(t, "while true do echo 1")
	require.False(t, c.HasErrors())
	loop, ok := block.Exprs[0].(*ast.Loop)
	require.True(t, ok)
	assert.Equal(t, ast.LoopWhile, loop.Kind)

	block2, c2 := parse(t, "until true do echo 1")
	require.False(t, c2.HasErrors())
	loop2, ok := block2.Exprs[0].(*ast.Loop)
	require.True(t, ok)
	assert.Equal(t, ast.LoopUntil, loop2.Kind)
}

func TestParseForLoop(t *testing.T) {
	block, c := parse(t, "for x in xs do echo x")
	require.False(t, c.HasErrors())
	forExpr, ok := block.Exprs[0].(*ast.For)
	require.True(t, ok)
	assert.Equal(t, "x", forExpr.Name)
}

func TestParseDefSimple(t *testing.T) {
	block, c := parse(t, "def x = 1")
	require.False(t, c.HasErrors())
	def, ok := block.Exprs[0].(*ast.Def)
	require.True(t, ok)
	assert.Equal(t, "x", def.Name)
	assert.Nil(t, def.Params)
}

func TestParseDefFunction(t *testing.T) {
	block, c := parse(t, "def add(a, b) = a + b")
	require.False(t, c.HasErrors())
	def, ok := block.Exprs[0].(*ast.Def)
	require.True(t, ok)
	assert.Equal(t, "add", def.Name)
	fn, ok := def.Value.(*ast.Function)
	require.True(t, ok)
	assert.Len(t, fn.Params, 2)
}

func TestParseEcho(t *testing.T) {
	block, c := parse(t, "echo 1 + 1")
	require.False(t, c.HasErrors())
	echo, ok := block.Exprs[0].(*ast.Echo)
	require.True(t, ok)
	assert.NotNil(t, echo.Inner)
}

func TestParseSequenceLiteral(t *testing.T) {
	block, c := parse(t, "[1, 2, 3]")
	require.False(t, c.HasErrors())
	seq, ok := block.Exprs[0].(*ast.Sequence)
	require.True(t, ok)
	assert.Len(t, seq.Items, 3)
}

func TestParseRecordLiteral(t *testing.T) {
	block, c := parse(t, `{a: 1, b: 2}`)
	require.False(t, c.HasErrors())
	rec, ok := block.Exprs[0].(*ast.Record)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, rec.Keys)
}

func TestParseSynchronizationRecoversAfterMalformedStatement(t *testing.T) {
	block, c := parse(t, "1 +\necho 2")
	require.True(t, c.HasErrors())
	// The parser should still have produced a node for the second line,
	// rather than aborting the whole parse at the first error.
	found := false
	for _, e := range block.Exprs {
		if _, ok := e.(*ast.Echo); ok {
			found = true
		}
	}
	assert.True(t, found, "parser should resynchronize and keep parsing after a malformed statement")
}

func TestParseMultipleTopLevelStatements(t *testing.T) {
	block, c := parse(t, "echo 1\necho 2\necho 3")
	require.False(t, c.HasErrors())
	assert.Len(t, block.Exprs, 3)
}

func FuzzParse(f *testing.F) {
	f.Add("echo 1 + 2")
	f.Add("if true then\n  echo 1\nelse\n  echo 2")
	f.Add("def f(a, b) = a + b")
	f.Add("")
	f.Fuzz(func(t *testing.T, text string) {
		src := source.New("fuzz.dw", text)
		c := &diagnostic.Collector{}
		tokens := lexer.New(src, c).Tokenize()
		assert.NotPanics(t, func() {
			block := New(tokens, c).Parse()
			require.NotNil(t, block)
		})
	})
}
