// Package compiler lowers a type-resolved AST to bytecode (spec.md
// §4.4). Only the subset of the AST that the minimal one-byte-opcode
// ISA can actually express compiles to instructions; every other node
// — variable definitions and references, calls, control flow, string
// and collection literals, identity and pattern-match operators — has
// no corresponding opcode in spec.md §6's table, so the compiler
// reports UnimplementedError for it and emits nothing, per the
// propagation policy in spec.md §7 ("emitting nothing for the
// offending node").
package compiler

import (
	"fmt"
	"log/slog"

	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/bytecode"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/langtype"
	"github.com/dauw-lang/dauw/internal/source"
	"github.com/dauw-lang/dauw/internal/token"
)

// Compiler walks a resolved AST and appends to one Code. Construct
// with New and call Compile once.
type Compiler struct {
	code     *bytecode.Code
	reporter diagnostic.Reporter
	logger   *slog.Logger
}

// Option configures an optional Compiler behavior.
type Option func(*Compiler)

// WithLogger attaches a debug logger; nil (the default) disables
// tracing entirely.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

func New(reporter diagnostic.Reporter, opts ...Option) *Compiler {
	c := &Compiler{code: bytecode.New(), reporter: reporter}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Compiler) debugf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(fmt.Sprintf(format, args...))
	}
}

// Compile lowers root (normally the parser's top-level Block, after a
// resolver pass) and returns the finished Code. Nodes the backend
// cannot express are skipped after reporting UnimplementedError;
// Compile itself never fails — check the reporter for errors.
func (c *Compiler) Compile(root ast.Expr) *bytecode.Code {
	c.compileExpr(root)
	return c.code
}

func loc(l source.Location) bytecode.Location {
	return bytecode.Location{Line: l.Line, Col: l.Col}
}

func (c *Compiler) emit(op bytecode.Op, at source.Location) {
	c.debugf("emit %s at %s", op, at)
	c.code.Emit(op, loc(at))
}

func (c *Compiler) reportUnimplemented(at source.Location, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.debugf("unimplemented at %s: %s", at, msg)
	c.reporter.Report(diagnostic.Diagnostic{Kind: diagnostic.UnimplementedError, Location: at, Message: msg})
}

func (c *Compiler) reportCompilerError(at source.Location, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.debugf("compiler error at %s: %s", at, msg)
	c.reporter.Report(diagnostic.Diagnostic{Kind: diagnostic.CompilerError, Location: at, Message: msg})
}

// compileExpr compiles expr, returning true if it pushed exactly one
// value onto the (conceptual) stack. A false return means an error was
// already reported and nothing was emitted for this node.
func (c *Compiler) compileExpr(expr ast.Expr) bool {
	switch e := expr.(type) {
	case *ast.Literal:
		return c.compileLiteral(e)
	case *ast.Grouped:
		return c.compileExpr(e.Inner)
	case *ast.Block:
		ok := true
		for _, sub := range e.Exprs {
			if !c.compileExpr(sub) {
				ok = false
			}
		}
		return ok
	case *ast.Echo:
		if !c.compileExpr(e.Inner) {
			return false
		}
		c.emit(bytecode.ECHO, e.Location())
		return true
	case *ast.Unary:
		return c.compileUnary(e)
	case *ast.Binary:
		return c.compileBinary(e)
	case *ast.Def:
		c.reportUnimplemented(e.Location(), "definitions have no storage opcode in the instruction set; '%s' was not compiled", e.Name)
		return false
	case *ast.Name:
		c.reportUnimplemented(e.Location(), "name references have no load opcode in the instruction set")
		return false
	case *ast.Call:
		c.reportUnimplemented(e.Location(), "function calls are not implemented by the bytecode backend")
		return false
	case *ast.Get:
		c.reportUnimplemented(e.Location(), "member access is not implemented by the bytecode backend")
		return false
	case *ast.If:
		c.reportUnimplemented(e.Location(), "'if' has no branch opcode in the instruction set")
		return false
	case *ast.For:
		c.reportUnimplemented(e.Location(), "'for' has no loop opcode in the instruction set")
		return false
	case *ast.Loop:
		c.reportUnimplemented(e.Location(), "'while'/'until' have no loop opcode in the instruction set")
		return false
	case *ast.Function:
		c.reportUnimplemented(e.Location(), "function literals are not implemented by the bytecode backend")
		return false
	case *ast.Sequence:
		c.reportUnimplemented(e.Location(), "sequence literals are not implemented by the bytecode backend")
		return false
	case *ast.Record:
		c.reportUnimplemented(e.Location(), "record literals are not implemented by the bytecode backend")
		return false
	default:
		c.reportCompilerError(expr.Location(), "no compilation rule for this expression")
		return false
	}
}

func (c *Compiler) compileLiteral(lit *ast.Literal) bool {
	if lit.IsString {
		c.reportUnimplemented(lit.Location(), "string constants have no load opcode in the instruction set")
		return false
	}
	v := lit.Scalar
	switch {
	case v.IsNothing():
		c.emit(bytecode.NIL, lit.Location())
	case v.IsFalse():
		c.emit(bytecode.FALSE, lit.Location())
	case v.IsTrue():
		c.emit(bytecode.TRUE, lit.Location())
	case v.IsInt():
		idx := c.code.AddConstant(v)
		c.code.EmitConst(bytecode.ICONST, idx, loc(lit.Location()))
	case v.IsReal():
		idx := c.code.AddConstant(v)
		c.code.EmitConst(bytecode.RCONST, idx, loc(lit.Location()))
	case v.IsRune():
		idx := c.code.AddConstant(v)
		c.code.EmitConst(bytecode.UCONST, idx, loc(lit.Location()))
	default:
		c.reportCompilerError(lit.Location(), "literal has no representable scalar form")
		return false
	}
	return true
}

func (c *Compiler) compileUnary(u *ast.Unary) bool {
	switch u.Op {
	case token.OPERATOR_LENGTH, token.OPERATOR_STRING:
		c.reportUnimplemented(u.Location(), "'%s' is reserved but unimplemented by the bytecode backend", u.Op)
		return false
	case token.OPERATOR_LOGIC_NOT:
		if !c.compileExpr(u.Right) {
			return false
		}
		c.emit(bytecode.NOT, u.Location())
		return true
	case token.OPERATOR_SUBTRACT:
		operand, _ := u.Right.ResolvedType()
		var op bytecode.Op
		switch operand.Kind {
		case langtype.Int:
			op = bytecode.INEG
		case langtype.Real:
			op = bytecode.RNEG
		default:
			c.reportCompilerError(u.Location(), "unary '-' requires an Int or Real operand, got %s", operand)
			return false
		}
		if !c.compileExpr(u.Right) {
			return false
		}
		c.emit(op, u.Location())
		return true
	default:
		c.reportCompilerError(u.Location(), "no compilation rule for unary '%s'", u.Op)
		return false
	}
}
