package vm

import (
	"math"

	"github.com/dauw-lang/dauw/internal/bytecode"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/value"
)

// unaryInt pops an Int, applies f, and boxes the result, reporting
// ValueOverflow if f's result doesn't fit in 48 bits — the edge case
// being negation/absolute-value of the most negative representable
// Int, whose magnitude has no positive counterpart in 48 bits.
func (vm *VM) unaryInt(loc bytecode.Location, f func(int64) (int64, bool)) *diagnostic.Diagnostic {
	v, err := vm.pop(loc)
	if err != nil {
		return err
	}
	n, ok := f(v.AsInt())
	if !ok {
		return vm.fail(diagnostic.ValueOverflow, loc, "integer result out of range")
	}
	boxed, boxErr := value.OfInt(n)
	if boxErr != nil {
		return vm.fail(diagnostic.ValueOverflow, loc, "%s", boxErr)
	}
	return vm.push(boxed, loc)
}

func (vm *VM) unaryReal(loc bytecode.Location, f func(float64) float64) *diagnostic.Diagnostic {
	v, err := vm.pop(loc)
	if err != nil {
		return err
	}
	return vm.push(value.Real(f(v.AsReal())), loc)
}

func (vm *VM) unaryBool(loc bytecode.Location, f func(bool) bool) *diagnostic.Diagnostic {
	v, err := vm.pop(loc)
	if err != nil {
		return err
	}
	return vm.push(value.Bool(f(v.AsBool())), loc)
}

func (vm *VM) binaryInt(loc bytecode.Location, f func(a, b int64) (int64, bool)) *diagnostic.Diagnostic {
	return vm.binaryIntChecked(loc, func(a, b int64) (int64, *diagnostic.Diagnostic) {
		n, ok := f(a, b)
		if !ok {
			return 0, vm.fail(diagnostic.ValueOverflow, loc, "integer result out of range")
		}
		return n, nil
	})
}

func (vm *VM) binaryIntChecked(loc bytecode.Location, f func(a, b int64) (int64, *diagnostic.Diagnostic)) *diagnostic.Diagnostic {
	right, err := vm.pop(loc)
	if err != nil {
		return err
	}
	left, err := vm.pop(loc)
	if err != nil {
		return err
	}
	n, failErr := f(left.AsInt(), right.AsInt())
	if failErr != nil {
		return failErr
	}
	boxed, boxErr := value.OfInt(n)
	if boxErr != nil {
		return vm.fail(diagnostic.ValueOverflow, loc, "%s", boxErr)
	}
	return vm.push(boxed, loc)
}

func (vm *VM) binaryReal(loc bytecode.Location, f func(a, b float64) float64) *diagnostic.Diagnostic {
	right, err := vm.pop(loc)
	if err != nil {
		return err
	}
	left, err := vm.pop(loc)
	if err != nil {
		return err
	}
	return vm.push(value.Real(f(left.AsReal(), right.AsReal())), loc)
}

// intDivToReal implements IDIV: Int/Int promotes to a Real result
// (spec.md §6), but division by zero still raises DivisionByZero
// before the promotion happens.
func (vm *VM) intDivToReal(loc bytecode.Location) *diagnostic.Diagnostic {
	right, err := vm.pop(loc)
	if err != nil {
		return err
	}
	left, err := vm.pop(loc)
	if err != nil {
		return err
	}
	if right.AsInt() == 0 {
		return vm.fail(diagnostic.DivisionByZero, loc, "integer division by zero")
	}
	return vm.push(value.Real(float64(left.AsInt())/float64(right.AsInt())), loc)
}

func (vm *VM) intPredicate(loc bytecode.Location, f func(int64) bool) *diagnostic.Diagnostic {
	v, err := vm.pop(loc)
	if err != nil {
		return err
	}
	return vm.push(value.Bool(f(v.AsInt())), loc)
}

func (vm *VM) compareInt(loc bytecode.Location) *diagnostic.Diagnostic {
	right, err := vm.pop(loc)
	if err != nil {
		return err
	}
	left, err := vm.pop(loc)
	if err != nil {
		return err
	}
	return vm.push(value.MustInt(int64(threeway(left.AsInt(), right.AsInt()))), loc)
}

func (vm *VM) compareReal(loc bytecode.Location) *diagnostic.Diagnostic {
	right, err := vm.pop(loc)
	if err != nil {
		return err
	}
	left, err := vm.pop(loc)
	if err != nil {
		return err
	}
	a, b := left.AsReal(), right.AsReal()
	var c int
	switch {
	case a < b:
		c = -1
	case a > b:
		c = 1
	default:
		c = 0
	}
	return vm.push(value.MustInt(int64(c)), loc)
}

func (vm *VM) compareRune(loc bytecode.Location) *diagnostic.Diagnostic {
	right, err := vm.pop(loc)
	if err != nil {
		return err
	}
	left, err := vm.pop(loc)
	if err != nil {
		return err
	}
	return vm.push(value.MustInt(int64(threeway(int64(left.AsRune()), int64(right.AsRune())))), loc)
}

func threeway(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// realToInt pops a Real, applies a rounding function, and boxes the
// result as Int. NaN input raises ConversionError (spec.md §4.5); a
// magnitude too large to fit in 48 bits raises ValueOverflow.
func (vm *VM) realToInt(loc bytecode.Location, round func(float64) float64) *diagnostic.Diagnostic {
	v, err := vm.pop(loc)
	if err != nil {
		return err
	}
	f := v.AsReal()
	if math.IsNaN(f) {
		return vm.fail(diagnostic.ConversionError, loc, "cannot convert NaN to Int")
	}
	boxed, boxErr := value.OfInt(int64(round(f)))
	if boxErr != nil {
		return vm.fail(diagnostic.ValueOverflow, loc, "%s", boxErr)
	}
	return vm.push(boxed, loc)
}

func absReal(f float64) float64  { return math.Abs(f) }
func floorReal(f float64) float64 { return math.Floor(f) }
func ceilReal(f float64) float64  { return math.Ceil(f) }
func trunc(f float64) float64    { return math.Trunc(f) }

func signReal(f float64) float64 {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

// floorDivInt and floorModInt implement floor (not truncating)
// division on two's-complement integers, used by IQUO/IREM per
// spec.md §6.
func floorDivInt(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorModInt(a, b int64) int64 {
	m := a % b
	if m != 0 && ((a < 0) != (b < 0)) {
		m += b
	}
	return m
}

func floorDivReal(a, b float64) float64 {
	return math.Floor(a / b)
}

func floorModReal(a, b float64) float64 {
	return a - math.Floor(a/b)*b
}
