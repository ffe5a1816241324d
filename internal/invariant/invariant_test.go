package invariant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreconditionPanicsWhenFalse(t *testing.T) {
	assert.Panics(t, func() { Precondition(false, "must hold") })
	assert.NotPanics(t, func() { Precondition(true, "must hold") })
}

func TestPostconditionPanicsWhenFalse(t *testing.T) {
	assert.Panics(t, func() { Postcondition(1 == 2, "math broke") })
	assert.NotPanics(t, func() { Postcondition(1 == 1, "math broke") })
}

func TestInvariantPanicsWhenFalse(t *testing.T) {
	assert.Panics(t, func() { Invariant(false, "stack must not be empty") })
	assert.NotPanics(t, func() { Invariant(true, "stack must not be empty") })
}

func TestNotNilPanicsOnNilInterfaceAndTypedNilPointer(t *testing.T) {
	assert.Panics(t, func() { NotNil(nil, "arena") })

	var p *int
	assert.Panics(t, func() { NotNil(p, "p") })

	x := 1
	assert.NotPanics(t, func() { NotNil(&x, "p") })
}

func TestNotNilAllowsNonPointerZeroValues(t *testing.T) {
	assert.NotPanics(t, func() { NotNil(0, "n") })
	assert.NotPanics(t, func() { NotNil("", "s") })
}

func TestInRangePanicsOutsideBounds(t *testing.T) {
	assert.Panics(t, func() { InRange(-1, 0, 255, "index") })
	assert.Panics(t, func() { InRange(256, 0, 255, "index") })
	assert.NotPanics(t, func() { InRange(128, 0, 255, "index") })
}

func TestFailMessageIncludesCallerLocation(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic value, got %T", r)
		}
		assert.Contains(t, msg, "PRECONDITION VIOLATION")
		assert.Contains(t, msg, "invariant_test.go")
	}()
	Precondition(false, "boom")
}
