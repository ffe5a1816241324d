package langtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqualIsStructuralIgnoringName(t *testing.T) {
	a := Type{Kind: Int, Name: "Int"}
	b := Type{Kind: Int, Name: "MyIntAlias"}
	assert.True(t, a.Equal(b))
}

func TestEqualDistinguishesKinds(t *testing.T) {
	assert.False(t, TypeInt.Equal(TypeReal))
	assert.False(t, TypeBool.Equal(TypeString))
}

func TestEqualComparesInnerTypesForGenerics(t *testing.T) {
	seqOfInt := Generic(Sequence, "Sequence", TypeInt)
	seqOfReal := Generic(Sequence, "Sequence", TypeReal)
	assert.False(t, seqOfInt.Equal(seqOfReal))

	seqOfInt2 := Generic(Sequence, "Sequence", TypeInt)
	assert.True(t, seqOfInt.Equal(seqOfInt2))
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, TypeInt.IsNumeric())
	assert.True(t, TypeReal.IsNumeric())
	assert.False(t, TypeBool.IsNumeric())
	assert.False(t, TypeString.IsNumeric())
}

func TestStringRendersName(t *testing.T) {
	assert.Equal(t, "Int", TypeInt.String())
}
