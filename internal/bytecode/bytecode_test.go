package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dauw-lang/dauw/internal/value"
)

func TestHasOperandOnlyForConstantLoads(t *testing.T) {
	assert.True(t, ICONST.HasOperand())
	assert.True(t, RCONST.HasOperand())
	assert.True(t, UCONST.HasOperand())
	assert.False(t, NOP.HasOperand())
	assert.False(t, IADD.HasOperand())
	assert.False(t, ECHO.HasOperand())
}

func TestEmitAppendsOneByteAndOneLocation(t *testing.T) {
	c := New()
	c.Emit(IADD, Location{Line: 1, Col: 2})
	assert.Equal(t, []byte{byte(IADD)}, c.Bytes)
	assert.Equal(t, []Location{{Line: 1, Col: 2}}, c.Locations)
	assert.Equal(t, 1, c.Len())
}

func TestEmitConstAppendsOpcodeAndIndex(t *testing.T) {
	c := New()
	idx := c.AddConstant(value.MustInt(42))
	c.EmitConst(ICONST, idx, Location{Line: 0, Col: 0})
	assert.Equal(t, []byte{byte(ICONST), idx}, c.Bytes)
	require.Len(t, c.Locations, 2)
}

func TestAddConstantPanicsPast256Entries(t *testing.T) {
	c := New()
	for i := 0; i < 256; i++ {
		c.AddConstant(value.MustInt(int64(i)))
	}
	assert.Panics(t, func() { c.AddConstant(value.MustInt(256)) })
}

func TestOpStringRendersMnemonics(t *testing.T) {
	assert.Equal(t, "IADD", IADD.String())
	assert.Equal(t, "ECHO", ECHO.String())
}

func TestOpStringFallsBackForUnknownOpcode(t *testing.T) {
	invalid := Op(255)
	assert.Equal(t, "INVALID", invalid.String())
}

func TestDisassembleRendersOneLinePerInstruction(t *testing.T) {
	c := New()
	idx := c.AddConstant(value.MustInt(7))
	c.EmitConst(ICONST, idx, Location{})
	c.Emit(ECHO, Location{})

	out := Disassemble(c)
	assert.Contains(t, out, "ICONST")
	assert.Contains(t, out, "ECHO")
	assert.Contains(t, out, "7")
}

func TestCacheKeyIsStableForIdenticalSource(t *testing.T) {
	a := CacheKey([]byte("echo 1"))
	b := CacheKey([]byte("echo 1"))
	c := CacheKey([]byte("echo 2"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSaveAndLoadCacheRoundTrips(t *testing.T) {
	dir := t.TempDir()
	code := New()
	idx := code.AddConstant(value.MustInt(9))
	code.EmitConst(ICONST, idx, Location{Line: 3, Col: 1})
	code.Emit(ECHO, Location{Line: 3, Col: 1})

	key := CacheKey([]byte("echo 9"))
	require.NoError(t, SaveCache(dir, key, code))

	loaded, ok, err := LoadCache(dir, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, code.Bytes, loaded.Bytes)
	assert.Equal(t, code.Constants, loaded.Constants)
}

func TestLoadCacheMissIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	_, ok, err := LoadCache(dir, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, ok)
}
