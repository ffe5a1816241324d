package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dauw-lang/dauw/internal/bytecode"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/value"
)

func runCode(t *testing.T, code *bytecode.Code) (*bytes.Buffer, State, *diagnostic.Diagnostic) {
	t.Helper()
	var out bytes.Buffer
	machine := New(&out)
	state, diag := machine.Run(code)
	return &out, state, diag
}

func intConst(c *bytecode.Code, n int64) byte { return c.AddConstant(value.MustInt(n)) }

func TestArithmeticAddsTwoIntsAndEchoes(t *testing.T) {
	c := bytecode.New()
	c.EmitConst(bytecode.ICONST, intConst(c, 2), bytecode.Location{})
	c.EmitConst(bytecode.ICONST, intConst(c, 3), bytecode.Location{})
	c.Emit(bytecode.IADD, bytecode.Location{})
	c.Emit(bytecode.ECHO, bytecode.Location{})

	out, state, diag := runCode(t, c)
	require.Nil(t, diag)
	assert.Equal(t, Success, state)
	assert.Equal(t, "5\n", out.String())
}

func TestIntegerDivisionByZeroIsARuntimeError(t *testing.T) {
	c := bytecode.New()
	c.EmitConst(bytecode.ICONST, intConst(c, 1), bytecode.Location{})
	c.EmitConst(bytecode.ICONST, intConst(c, 0), bytecode.Location{})
	c.Emit(bytecode.IQUO, bytecode.Location{})

	_, state, diag := runCode(t, c)
	require.NotNil(t, diag)
	assert.Equal(t, RuntimeError, state)
	assert.Equal(t, diagnostic.DivisionByZero, diag.Kind)
}

func TestFloorDivisionRoundsTowardNegativeInfinity(t *testing.T) {
	c := bytecode.New()
	c.EmitConst(bytecode.ICONST, intConst(c, -7), bytecode.Location{})
	c.EmitConst(bytecode.ICONST, intConst(c, 2), bytecode.Location{})
	c.Emit(bytecode.IQUO, bytecode.Location{})
	c.Emit(bytecode.ECHO, bytecode.Location{})

	out, state, diag := runCode(t, c)
	require.Nil(t, diag)
	assert.Equal(t, Success, state)
	assert.Equal(t, "-4\n", out.String())
}

func TestIntDivisionPromotesToReal(t *testing.T) {
	c := bytecode.New()
	c.EmitConst(bytecode.ICONST, intConst(c, 1), bytecode.Location{})
	c.EmitConst(bytecode.ICONST, intConst(c, 4), bytecode.Location{})
	c.Emit(bytecode.IDIV, bytecode.Location{})
	c.Emit(bytecode.ECHO, bytecode.Location{})

	out, state, diag := runCode(t, c)
	require.Nil(t, diag)
	assert.Equal(t, Success, state)
	assert.Equal(t, "0.25\n", out.String())
}

func TestThreewayComparison(t *testing.T) {
	c := bytecode.New()
	c.EmitConst(bytecode.ICONST, intConst(c, 3), bytecode.Location{})
	c.EmitConst(bytecode.ICONST, intConst(c, 5), bytecode.Location{})
	c.Emit(bytecode.ICMP, bytecode.Location{})
	c.Emit(bytecode.ECHO, bytecode.Location{})

	out, state, diag := runCode(t, c)
	require.Nil(t, diag)
	assert.Equal(t, Success, state)
	assert.Equal(t, "-1\n", out.String())
}

func TestPoppingAnEmptyStackIsAStackUnderflow(t *testing.T) {
	c := bytecode.New()
	c.Emit(bytecode.POP, bytecode.Location{})

	_, state, diag := runCode(t, c)
	require.NotNil(t, diag)
	assert.Equal(t, RuntimeError, state)
	assert.Equal(t, diagnostic.StackUnderflow, diag.Kind)
}

func TestStackDepthTracksPushes(t *testing.T) {
	machine := New(&bytes.Buffer{})
	c := bytecode.New()
	c.Emit(bytecode.TRUE, bytecode.Location{})
	c.Emit(bytecode.FALSE, bytecode.Location{})
	_, diag := machine.Run(c)
	require.Nil(t, diag)
	assert.Equal(t, 2, machine.StackDepth())
}

func TestResetStackClearsOperandsBetweenRuns(t *testing.T) {
	machine := New(&bytes.Buffer{})
	c := bytecode.New()
	c.Emit(bytecode.TRUE, bytecode.Location{})
	_, diag := machine.Run(c)
	require.Nil(t, diag)
	machine.ResetStack()
	assert.Equal(t, 0, machine.StackDepth())
}

func TestTopReportsFalseOnEmptyStack(t *testing.T) {
	machine := New(&bytes.Buffer{})
	_, ok := machine.Top()
	assert.False(t, ok)
}

func TestRuneConvertsToItsCodePoint(t *testing.T) {
	c := bytecode.New()
	idx := c.AddConstant(mustRune(t, 'A'))
	c.EmitConst(bytecode.UCONST, idx, bytecode.Location{})
	c.Emit(bytecode.UTOI, bytecode.Location{})
	c.Emit(bytecode.ECHO, bytecode.Location{})

	out, state, diag := runCode(t, c)
	require.Nil(t, diag)
	assert.Equal(t, Success, state)
	assert.Equal(t, "65\n", out.String())
}

func mustRune(t *testing.T, r rune) value.Value {
	t.Helper()
	v, err := value.OfRune(r)
	require.NoError(t, err)
	return v
}

func TestStateStringRendersEveryState(t *testing.T) {
	for _, s := range []State{Idle, Running, Success, RuntimeError, CompileError} {
		assert.NotEqual(t, "Unknown", s.String())
	}
	assert.Equal(t, "Unknown", State(255).String())
}
