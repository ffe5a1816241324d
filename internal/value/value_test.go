package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiersAreMutuallyExclusive(t *testing.T) {
	vals := []Value{
		Nothing, False, True,
		MustInt(0), MustInt(-1), MustInt(42),
		Real(0), Real(-0.0), Real(3.5), Real(math.NaN()), Real(math.Inf(1)),
		mustRune(t, 'a'), mustRune(t, '界'),
	}

	for _, v := range vals {
		count := 0
		for _, is := range []bool{v.IsNothing(), v.IsBool(), v.IsInt(), v.IsReal(), v.IsRune()} {
			if is {
				count++
			}
		}
		assert.Equalf(t, 1, count, "value %x should match exactly one classifier", uint64(v))
	}
}

func mustRune(t *testing.T, r rune) Value {
	t.Helper()
	v, err := OfRune(r)
	require.NoError(t, err)
	return v
}

func TestOfIntRangeCheck(t *testing.T) {
	const maxInt = int64(1)<<47 - 1
	const minInt = -(int64(1) << 47)

	v, err := OfInt(maxInt)
	require.NoError(t, err)
	assert.Equal(t, maxInt, v.AsInt())

	v, err = OfInt(minInt)
	require.NoError(t, err)
	assert.Equal(t, minInt, v.AsInt())

	_, err = OfInt(maxInt + 1)
	assert.Error(t, err)

	_, err = OfInt(minInt - 1)
	assert.Error(t, err)
}

func TestOfRuneRejectsSurrogatesAndOutOfRange(t *testing.T) {
	_, err := OfRune(0xD800)
	assert.Error(t, err)

	_, err = OfRune(0x110000)
	assert.Error(t, err)

	v, err := OfRune(0x10FFFF)
	require.NoError(t, err)
	assert.Equal(t, rune(0x10FFFF), v.AsRune())
}

func TestRealCanonicalizesNaN(t *testing.T) {
	v := Real(math.NaN())
	assert.True(t, v.IsReal())
	assert.True(t, math.IsNaN(v.AsReal()))
}

func TestEqualFollowsIEEE754ForReals(t *testing.T) {
	nan := Real(math.NaN())
	assert.False(t, nan.Equal(nan), "NaN must not equal itself")

	posZero := Real(0.0)
	negZero := Real(math.Copysign(0, -1))
	assert.True(t, posZero.Equal(negZero), "+0.0 must equal -0.0")
}

func TestEqualIsBitwiseForNonReals(t *testing.T) {
	a := MustInt(7)
	b := MustInt(7)
	assert.True(t, a.Equal(b))

	assert.True(t, True.Equal(True))
	assert.False(t, True.Equal(False))
	assert.True(t, Nothing.Equal(Nothing))
}

func TestTextFormatsSpecialReals(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want string
	}{
		{"positive zero", Real(0.0), "0.0"},
		{"negative zero", Real(math.Copysign(0, -1)), "-0.0"},
		{"positive infinity", Real(math.Inf(1)), "infinity"},
		{"negative infinity", Real(math.Inf(-1)), "-infinity"},
		{"nan", Real(math.NaN()), "nan"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.v.Text(nil))
		})
	}
}

func TestTextFormatsScalars(t *testing.T) {
	assert.Equal(t, "nothing", Nothing.Text(nil))
	assert.Equal(t, "true", True.Text(nil))
	assert.Equal(t, "false", False.Text(nil))
	assert.Equal(t, "42", MustInt(42).Text(nil))
}

func TestAccessorsPanicOnTypeMismatch(t *testing.T) {
	assert.Panics(t, func() { MustInt(1).AsReal() })
	assert.Panics(t, func() { Real(1).AsInt() })
	assert.Panics(t, func() { Nothing.AsBool() })
}
