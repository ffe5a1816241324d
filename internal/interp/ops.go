package interp

import (
	"math"

	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/langtype"
	"github.com/dauw-lang/dauw/internal/token"
	"github.com/dauw-lang/dauw/internal/value"
)

func (in *Interp) evalUnary(u *ast.Unary) (value.Value, bool) {
	switch u.Op {
	case token.OPERATOR_LENGTH, token.OPERATOR_STRING:
		in.reportUnimplemented(u, "'%s' is reserved but unimplemented by the tree-walker", u.Op)
		return value.Nothing, false
	case token.OPERATOR_LOGIC_NOT:
		right, ok := in.eval(u.Right)
		if !ok {
			return value.Nothing, false
		}
		return value.Bool(!right.AsBool()), true
	case token.OPERATOR_SUBTRACT:
		right, ok := in.eval(u.Right)
		if !ok {
			return value.Nothing, false
		}
		operand, _ := u.Right.ResolvedType()
		switch operand.Kind {
		case langtype.Int:
			boxed, err := value.OfInt(-right.AsInt())
			if err != nil {
				in.reportRuntime(diagnostic.ValueOverflow, u, "%s", err)
				return value.Nothing, false
			}
			return boxed, true
		case langtype.Real:
			return value.Real(-right.AsReal()), true
		default:
			in.reportRuntime(diagnostic.CompilerError, u, "unary '-' requires an Int or Real operand, got %s", operand)
			return value.Nothing, false
		}
	default:
		in.reportRuntime(diagnostic.CompilerError, u, "no evaluation rule for unary '%s'", u.Op)
		return value.Nothing, false
	}
}

func (in *Interp) evalBinary(b *ast.Binary) (value.Value, bool) {
	switch b.Op {
	case token.OPERATOR_ADD, token.OPERATOR_SUBTRACT, token.OPERATOR_MULTIPLY,
		token.OPERATOR_DIVIDE, token.OPERATOR_QUOTIENT, token.OPERATOR_REMAINDER:
		return in.evalArith(b)
	case token.OPERATOR_COMPARE:
		return in.evalThreeway(b)
	case token.OPERATOR_LESS, token.OPERATOR_LESS_EQUAL, token.OPERATOR_GREATER, token.OPERATOR_GREATER_EQUAL:
		return in.evalRelational(b)
	case token.OPERATOR_EQUAL, token.OPERATOR_NOT_EQUAL:
		return in.evalEquality(b)
	case token.OPERATOR_MATCH, token.OPERATOR_NOT_MATCH:
		in.reportUnimplemented(b, "'%s' pattern matching has no evaluation rule in the tree-walker", b.Op)
		return value.Nothing, false
	case token.OPERATOR_IDENTICAL, token.OPERATOR_NOT_IDENTICAL:
		in.reportUnimplemented(b, "identity comparison ('%s') is left open by the design", b.Op)
		return value.Nothing, false
	case token.OPERATOR_LOGIC_AND, token.OPERATOR_LOGIC_OR:
		return in.evalLogic(b)
	default:
		in.reportRuntime(diagnostic.CompilerError, b, "no evaluation rule for binary '%s'", b.Op)
		return value.Nothing, false
	}
}

// evalLogic implements and/or with short-circuit evaluation, the one
// place the tree-walker can do something the bytecode backend cannot:
// no opcode sequence without jumps can short-circuit, so this and
// compileBinary's and/or handling necessarily diverge.
func (in *Interp) evalLogic(b *ast.Binary) (value.Value, bool) {
	leftType, _ := b.Left.ResolvedType()
	if leftType.Kind != langtype.Bool {
		in.reportRuntime(diagnostic.CompilerError, b, "'%s' requires Bool operands, got %s", b.Op, leftType)
		return value.Nothing, false
	}
	left, ok := in.eval(b.Left)
	if !ok {
		return value.Nothing, false
	}
	if b.Op == token.OPERATOR_LOGIC_AND && !left.AsBool() {
		return value.False, true
	}
	if b.Op == token.OPERATOR_LOGIC_OR && left.AsBool() {
		return value.True, true
	}
	rightType, _ := b.Right.ResolvedType()
	if rightType.Kind != langtype.Bool {
		in.reportRuntime(diagnostic.CompilerError, b, "'%s' requires Bool operands, got %s", b.Op, rightType)
		return value.Nothing, false
	}
	right, ok := in.eval(b.Right)
	if !ok {
		return value.Nothing, false
	}
	return value.Bool(right.AsBool()), true
}

func (in *Interp) evalArith(b *ast.Binary) (value.Value, bool) {
	leftType, _ := b.Left.ResolvedType()
	rightType, _ := b.Right.ResolvedType()

	if b.Op == token.OPERATOR_ADD && leftType.Kind == langtype.String && rightType.Kind == langtype.String {
		in.reportUnimplemented(b, "String + String concatenation has no evaluation rule in the tree-walker")
		return value.Nothing, false
	}

	left, ok := in.eval(b.Left)
	if !ok {
		return value.Nothing, false
	}
	right, ok := in.eval(b.Right)
	if !ok {
		return value.Nothing, false
	}

	switch {
	case leftType.Kind == langtype.Int && rightType.Kind == langtype.Int:
		return in.arithInt(b, left.AsInt(), right.AsInt())
	case leftType.Kind == langtype.Real && rightType.Kind == langtype.Real:
		return in.arithReal(b, left.AsReal(), right.AsReal())
	default:
		in.reportRuntime(diagnostic.CompilerError, b, "arithmetic '%s' requires matching Int or Real operands, got %s and %s", b.Op, leftType, rightType)
		return value.Nothing, false
	}
}

func (in *Interp) arithInt(b *ast.Binary, left, right int64) (value.Value, bool) {
	var n int64
	switch b.Op {
	case token.OPERATOR_ADD:
		n = left + right
	case token.OPERATOR_SUBTRACT:
		n = left - right
	case token.OPERATOR_MULTIPLY:
		n = left * right
	case token.OPERATOR_DIVIDE:
		if right == 0 {
			in.reportRuntime(diagnostic.DivisionByZero, b, "integer division by zero")
			return value.Nothing, false
		}
		return value.Real(float64(left) / float64(right)), true
	case token.OPERATOR_QUOTIENT:
		if right == 0 {
			in.reportRuntime(diagnostic.DivisionByZero, b, "integer division by zero")
			return value.Nothing, false
		}
		n = floorDivInt(left, right)
	case token.OPERATOR_REMAINDER:
		if right == 0 {
			in.reportRuntime(diagnostic.DivisionByZero, b, "integer division by zero")
			return value.Nothing, false
		}
		n = floorModInt(left, right)
	}
	boxed, err := value.OfInt(n)
	if err != nil {
		in.reportRuntime(diagnostic.ValueOverflow, b, "%s", err)
		return value.Nothing, false
	}
	return boxed, true
}

func (in *Interp) arithReal(b *ast.Binary, left, right float64) (value.Value, bool) {
	var f float64
	switch b.Op {
	case token.OPERATOR_ADD:
		f = left + right
	case token.OPERATOR_SUBTRACT:
		f = left - right
	case token.OPERATOR_MULTIPLY:
		f = left * right
	case token.OPERATOR_DIVIDE:
		f = left / right
	case token.OPERATOR_QUOTIENT:
		f = math.Floor(left / right)
	case token.OPERATOR_REMAINDER:
		f = left - math.Floor(left/right)*right
	}
	return value.Real(f), true
}

func cmpKind(k langtype.Kind) bool {
	return k == langtype.Int || k == langtype.Real || k == langtype.Rune
}

func (in *Interp) evalThreeway(b *ast.Binary) (value.Value, bool) {
	leftType, _ := b.Left.ResolvedType()
	rightType, _ := b.Right.ResolvedType()
	if !leftType.Equal(rightType) || !cmpKind(leftType.Kind) {
		in.reportRuntime(diagnostic.CompilerError, b, "'<=>' requires matching Int, Real, or Rune operands, got %s and %s", leftType, rightType)
		return value.Nothing, false
	}
	left, ok := in.eval(b.Left)
	if !ok {
		return value.Nothing, false
	}
	right, ok := in.eval(b.Right)
	if !ok {
		return value.Nothing, false
	}
	return value.MustInt(int64(compareValues(leftType.Kind, left, right))), true
}

func (in *Interp) evalRelational(b *ast.Binary) (value.Value, bool) {
	leftType, _ := b.Left.ResolvedType()
	rightType, _ := b.Right.ResolvedType()
	if !leftType.Equal(rightType) || !cmpKind(leftType.Kind) {
		in.reportRuntime(diagnostic.CompilerError, b, "'%s' requires matching Int, Real, or Rune operands, got %s and %s", b.Op, leftType, rightType)
		return value.Nothing, false
	}
	left, ok := in.eval(b.Left)
	if !ok {
		return value.Nothing, false
	}
	right, ok := in.eval(b.Right)
	if !ok {
		return value.Nothing, false
	}
	c := compareValues(leftType.Kind, left, right)
	var result bool
	switch b.Op {
	case token.OPERATOR_LESS:
		result = c < 0
	case token.OPERATOR_LESS_EQUAL:
		result = c <= 0
	case token.OPERATOR_GREATER:
		result = c > 0
	case token.OPERATOR_GREATER_EQUAL:
		result = c >= 0
	}
	return value.Bool(result), true
}

func (in *Interp) evalEquality(b *ast.Binary) (value.Value, bool) {
	leftType, _ := b.Left.ResolvedType()
	rightType, _ := b.Right.ResolvedType()
	if !leftType.Equal(rightType) {
		in.reportRuntime(diagnostic.CompilerError, b, "'%s' requires both operands to be the same type, got %s and %s", b.Op, leftType, rightType)
		return value.Nothing, false
	}
	left, ok := in.eval(b.Left)
	if !ok {
		return value.Nothing, false
	}
	right, ok := in.eval(b.Right)
	if !ok {
		return value.Nothing, false
	}

	var eq bool
	switch leftType.Kind {
	case langtype.Bool:
		eq = left.AsBool() == right.AsBool()
	case langtype.Int, langtype.Real, langtype.Rune:
		eq = compareValues(leftType.Kind, left, right) == 0
	default:
		in.reportRuntime(diagnostic.CompilerError, b, "'%s' requires Bool, Int, Real, or Rune operands, got %s", b.Op, leftType)
		return value.Nothing, false
	}
	if b.Op == token.OPERATOR_NOT_EQUAL {
		eq = !eq
	}
	return value.Bool(eq), true
}

func compareValues(kind langtype.Kind, left, right value.Value) int {
	switch kind {
	case langtype.Int:
		return threeway(left.AsInt(), right.AsInt())
	case langtype.Real:
		a, b := left.AsReal(), right.AsReal()
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	case langtype.Rune:
		return threeway(int64(left.AsRune()), int64(right.AsRune()))
	default:
		return 0
	}
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
