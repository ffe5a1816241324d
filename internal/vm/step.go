package vm

import (
	"github.com/dauw-lang/dauw/internal/bytecode"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/value"
)

// step executes one instruction: op plus its already-fetched operand
// byte (meaningful only when op.HasOperand()).
func (vm *VM) step(code *bytecode.Code, op bytecode.Op, operand byte, loc bytecode.Location) *diagnostic.Diagnostic {
	switch op {
	case bytecode.NOP:
		return nil

	case bytecode.NIL:
		return vm.push(value.Nothing, loc)
	case bytecode.FALSE:
		return vm.push(value.False, loc)
	case bytecode.TRUE:
		return vm.push(value.True, loc)

	case bytecode.ICONST, bytecode.RCONST, bytecode.UCONST:
		if int(operand) >= len(code.Constants) {
			return vm.fail(diagnostic.CompilerError, loc, "constant index %d out of range", operand)
		}
		return vm.push(code.Constants[operand], loc)

	case bytecode.NOT:
		return vm.unaryBool(loc, func(b bool) bool { return !b })

	case bytecode.INEG:
		return vm.unaryInt(loc, func(n int64) (int64, bool) { return -n, true })
	case bytecode.RNEG:
		return vm.unaryReal(loc, func(f float64) float64 { return -f })
	case bytecode.IABS:
		return vm.unaryInt(loc, func(n int64) (int64, bool) {
			if n < 0 {
				return -n, true
			}
			return n, true
		})
	case bytecode.RABS:
		return vm.unaryReal(loc, absReal)
	case bytecode.ISIGN:
		return vm.unaryInt(loc, func(n int64) (int64, bool) {
			switch {
			case n > 0:
				return 1, true
			case n < 0:
				return -1, true
			default:
				return 0, true
			}
		})
	case bytecode.RSIGN:
		return vm.unaryReal(loc, signReal)

	case bytecode.IADD:
		return vm.binaryInt(loc, func(a, b int64) (int64, bool) { return a + b, true })
	case bytecode.RADD:
		return vm.binaryReal(loc, func(a, b float64) float64 { return a + b })
	case bytecode.ISUB:
		return vm.binaryInt(loc, func(a, b int64) (int64, bool) { return a - b, true })
	case bytecode.RSUB:
		return vm.binaryReal(loc, func(a, b float64) float64 { return a - b })
	case bytecode.IMUL:
		return vm.binaryInt(loc, func(a, b int64) (int64, bool) { return a * b, true })
	case bytecode.RMUL:
		return vm.binaryReal(loc, func(a, b float64) float64 { return a * b })

	case bytecode.IDIV:
		return vm.intDivToReal(loc)
	case bytecode.RDIV:
		return vm.binaryReal(loc, func(a, b float64) float64 { return a / b })
	case bytecode.IQUO:
		return vm.binaryIntChecked(loc, func(a, b int64) (int64, *diagnostic.Diagnostic) {
			if b == 0 {
				return 0, vm.fail(diagnostic.DivisionByZero, loc, "integer division by zero")
			}
			return floorDivInt(a, b), nil
		})
	case bytecode.IREM:
		return vm.binaryIntChecked(loc, func(a, b int64) (int64, *diagnostic.Diagnostic) {
			if b == 0 {
				return 0, vm.fail(diagnostic.DivisionByZero, loc, "integer division by zero")
			}
			return floorModInt(a, b), nil
		})
	case bytecode.RQUO:
		return vm.binaryReal(loc, floorDivReal)
	case bytecode.RREM:
		return vm.binaryReal(loc, floorModReal)

	case bytecode.BEQ:
		right, err := vm.pop(loc)
		if err != nil {
			return err
		}
		left, err := vm.pop(loc)
		if err != nil {
			return err
		}
		return vm.push(value.Bool(left.AsBool() == right.AsBool()), loc)

	case bytecode.ICMP:
		return vm.compareInt(loc)
	case bytecode.RCMP:
		return vm.compareReal(loc)
	case bytecode.UCMP:
		return vm.compareRune(loc)

	case bytecode.IEQZ:
		return vm.intPredicate(loc, func(n int64) bool { return n == 0 })
	case bytecode.INEZ:
		return vm.intPredicate(loc, func(n int64) bool { return n != 0 })
	case bytecode.ILTZ:
		return vm.intPredicate(loc, func(n int64) bool { return n < 0 })
	case bytecode.ILEZ:
		return vm.intPredicate(loc, func(n int64) bool { return n <= 0 })
	case bytecode.IGTZ:
		return vm.intPredicate(loc, func(n int64) bool { return n > 0 })
	case bytecode.IGEZ:
		return vm.intPredicate(loc, func(n int64) bool { return n >= 0 })

	case bytecode.REQZ:
		v, err := vm.pop(loc)
		if err != nil {
			return err
		}
		return vm.push(value.Bool(v.AsReal() == 0), loc)
	case bytecode.RNAN:
		v, err := vm.pop(loc)
		if err != nil {
			return err
		}
		return vm.push(value.Bool(v.IsNaN()), loc)

	case bytecode.ITOR:
		v, err := vm.pop(loc)
		if err != nil {
			return err
		}
		return vm.push(value.Real(float64(v.AsInt())), loc)
	case bytecode.ITOU:
		v, err := vm.pop(loc)
		if err != nil {
			return err
		}
		r, boxErr := value.OfRune(rune(v.AsInt()))
		if boxErr != nil {
			return vm.fail(diagnostic.ValueOverflow, loc, "%s", boxErr)
		}
		return vm.push(r, loc)
	case bytecode.RTRUNC:
		return vm.realToInt(loc, func(f float64) float64 { return trunc(f) })
	case bytecode.RFLOOR:
		return vm.realToInt(loc, floorReal)
	case bytecode.RCEIL:
		return vm.realToInt(loc, ceilReal)
	case bytecode.UTOI:
		v, err := vm.pop(loc)
		if err != nil {
			return err
		}
		return vm.push(value.MustInt(int64(v.AsRune())), loc)

	case bytecode.POP:
		_, err := vm.pop(loc)
		return err

	case bytecode.ECHO:
		v, err := vm.pop(loc)
		if err != nil {
			return err
		}
		return vm.echo(v, loc)

	default:
		return vm.fail(diagnostic.CompilerError, loc, "invalid opcode byte %d", byte(op))
	}
}
