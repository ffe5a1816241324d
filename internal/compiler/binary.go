package compiler

import (
	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/bytecode"
	"github.com/dauw-lang/dauw/internal/langtype"
	"github.com/dauw-lang/dauw/internal/token"
)

func (c *Compiler) compileBinary(b *ast.Binary) bool {
	switch b.Op {
	case token.OPERATOR_ADD, token.OPERATOR_SUBTRACT, token.OPERATOR_MULTIPLY,
		token.OPERATOR_DIVIDE, token.OPERATOR_QUOTIENT, token.OPERATOR_REMAINDER:
		return c.compileArith(b)
	case token.OPERATOR_COMPARE:
		return c.compileThreeway(b)
	case token.OPERATOR_LESS, token.OPERATOR_LESS_EQUAL, token.OPERATOR_GREATER, token.OPERATOR_GREATER_EQUAL:
		return c.compileRelational(b)
	case token.OPERATOR_EQUAL, token.OPERATOR_NOT_EQUAL:
		return c.compileEquality(b)
	case token.OPERATOR_MATCH, token.OPERATOR_NOT_MATCH:
		c.reportUnimplemented(b.Location(), "'%s' pattern matching has no opcode in the instruction set", b.Op)
		return false
	case token.OPERATOR_IDENTICAL, token.OPERATOR_NOT_IDENTICAL:
		c.reportUnimplemented(b.Location(), "identity comparison ('%s') is left open by the instruction set", b.Op)
		return false
	case token.OPERATOR_LOGIC_AND, token.OPERATOR_LOGIC_OR:
		c.reportUnimplemented(b.Location(), "'%s' has no short-circuit opcode in the instruction set", b.Op)
		return false
	default:
		c.reportCompilerError(b.Location(), "no compilation rule for binary '%s'", b.Op)
		return false
	}
}

// arithOps maps an arithmetic operator to its (Int, Real) opcode pair.
var arithOps = map[token.Kind][2]bytecode.Op{
	token.OPERATOR_ADD:      {bytecode.IADD, bytecode.RADD},
	token.OPERATOR_SUBTRACT: {bytecode.ISUB, bytecode.RSUB},
	token.OPERATOR_MULTIPLY: {bytecode.IMUL, bytecode.RMUL},
	token.OPERATOR_DIVIDE:   {bytecode.IDIV, bytecode.RDIV},
	token.OPERATOR_QUOTIENT: {bytecode.IQUO, bytecode.RQUO},
	token.OPERATOR_REMAINDER: {bytecode.IREM, bytecode.RREM},
}

func (c *Compiler) compileArith(b *ast.Binary) bool {
	left, _ := b.Left.ResolvedType()
	right, _ := b.Right.ResolvedType()

	if b.Op == token.OPERATOR_ADD && left.Kind == langtype.String && right.Kind == langtype.String {
		c.reportUnimplemented(b.Location(), "String + String concatenation has no opcode in the instruction set")
		return false
	}

	pair, known := arithOps[b.Op]
	var op bytecode.Op
	switch {
	case known && left.Kind == langtype.Int && right.Kind == langtype.Int:
		op = pair[0]
	case known && left.Kind == langtype.Real && right.Kind == langtype.Real:
		op = pair[1]
	default:
		c.reportCompilerError(b.Location(), "arithmetic '%s' requires matching Int or Real operands, got %s and %s", b.Op, left, right)
		return false
	}

	if !c.compileExpr(b.Left) {
		return false
	}
	if !c.compileExpr(b.Right) {
		return false
	}
	c.emit(op, b.Location())
	return true
}

func cmpOpFor(k langtype.Kind) (bytecode.Op, bool) {
	switch k {
	case langtype.Int:
		return bytecode.ICMP, true
	case langtype.Real:
		return bytecode.RCMP, true
	case langtype.Rune:
		return bytecode.UCMP, true
	default:
		return 0, false
	}
}

// compileThreeway lowers '<=>' to a single (I|R|U)CMP, which already
// returns -1/0/1 as an Int per spec.md §6.
func (c *Compiler) compileThreeway(b *ast.Binary) bool {
	left, _ := b.Left.ResolvedType()
	right, _ := b.Right.ResolvedType()
	if !left.Equal(right) {
		c.reportCompilerError(b.Location(), "'<=>' requires both operands to be the same type, got %s and %s", left, right)
		return false
	}
	op, ok := cmpOpFor(left.Kind)
	if !ok {
		c.reportCompilerError(b.Location(), "'<=>' requires Int, Real, or Rune operands, got %s", left)
		return false
	}
	if !c.compileExpr(b.Left) || !c.compileExpr(b.Right) {
		return false
	}
	c.emit(op, b.Location())
	return true
}

// compileRelational lowers <, <=, >, >= to a compare followed by a
// sign-of-int test, since the instruction set has no dedicated
// relational opcodes (spec.md §4.4).
func (c *Compiler) compileRelational(b *ast.Binary) bool {
	left, _ := b.Left.ResolvedType()
	right, _ := b.Right.ResolvedType()
	if !left.Equal(right) {
		c.reportCompilerError(b.Location(), "'%s' requires both operands to be the same type, got %s and %s", b.Op, left, right)
		return false
	}
	cmp, ok := cmpOpFor(left.Kind)
	if !ok {
		c.reportCompilerError(b.Location(), "'%s' requires Int, Real, or Rune operands, got %s", b.Op, left)
		return false
	}
	var test bytecode.Op
	switch b.Op {
	case token.OPERATOR_LESS:
		test = bytecode.ILTZ
	case token.OPERATOR_LESS_EQUAL:
		test = bytecode.ILEZ
	case token.OPERATOR_GREATER:
		test = bytecode.IGTZ
	case token.OPERATOR_GREATER_EQUAL:
		test = bytecode.IGEZ
	}
	if !c.compileExpr(b.Left) || !c.compileExpr(b.Right) {
		return false
	}
	c.emit(cmp, b.Location())
	c.emit(test, b.Location())
	return true
}

// compileEquality lowers == and != to a compare-and-zero-test for the
// scalar kinds, or BEQ for Bool, per spec.md §4.4's equality row.
func (c *Compiler) compileEquality(b *ast.Binary) bool {
	left, _ := b.Left.ResolvedType()
	right, _ := b.Right.ResolvedType()
	if !left.Equal(right) {
		c.reportCompilerError(b.Location(), "'%s' requires both operands to be the same type, got %s and %s", b.Op, left, right)
		return false
	}

	var compareOp bytecode.Op
	useBEQ := false
	switch left.Kind {
	case langtype.Bool:
		useBEQ = true
	default:
		op, ok := cmpOpFor(left.Kind)
		if !ok {
			c.reportCompilerError(b.Location(), "'%s' requires Bool, Int, Real, or Rune operands, got %s", b.Op, left)
			return false
		}
		compareOp = op
	}

	if !c.compileExpr(b.Left) || !c.compileExpr(b.Right) {
		return false
	}
	if useBEQ {
		c.emit(bytecode.BEQ, b.Location())
	} else {
		c.emit(compareOp, b.Location())
		c.emit(bytecode.IEQZ, b.Location())
	}
	if b.Op == token.OPERATOR_NOT_EQUAL {
		c.emit(bytecode.NOT, b.Location())
	}
	return true
}
