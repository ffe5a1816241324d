// Package interp implements the tree-walking alternative backend
// (spec.md §2: "the tree-walker is an alternative sink that consumes
// AST' directly and writes to stdout without a Code intermediate").
// It walks the same resolved AST the compiler does and covers the same
// operator/literal subset, with one exception: `and`/`or`, which the
// compiler reports as unimplemented, are evaluated here with
// short-circuiting. Every other construct the bytecode backend leaves as
// an explicit gap is left unimplemented here too, for the same reason —
// no runtime representation exists for it (spec.md §9's open questions).
package interp

import (
	"fmt"
	"io"

	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/heap"
	"github.com/dauw-lang/dauw/internal/value"
)

// Interp evaluates one AST at a time against a persistent heap arena,
// writing Echo output to out and reporting errors through reporter.
// Unlike the VM, which aborts its run on the first runtime error, the
// tree-walker follows the compiler's propagation policy: it reports an
// error for the offending node and continues with its siblings.
type Interp struct {
	arena    *heap.Arena
	out      io.Writer
	reporter diagnostic.Reporter
}

func New(out io.Writer, reporter diagnostic.Reporter) *Interp {
	return &Interp{arena: &heap.Arena{}, out: out, reporter: reporter}
}

func (in *Interp) Arena() *heap.Arena { return in.arena }

// Run evaluates root (normally the parser's top-level Block, after a
// resolver pass) purely for its Echo side effects.
func (in *Interp) Run(root ast.Expr) {
	in.eval(root)
}

func (in *Interp) reportUnimplemented(expr ast.Expr, format string, args ...any) {
	in.reporter.Report(diagnostic.Diagnostic{Kind: diagnostic.UnimplementedError, Location: expr.Location(), Message: fmt.Sprintf(format, args...)})
}

func (in *Interp) reportRuntime(kind diagnostic.Kind, expr ast.Expr, format string, args ...any) {
	in.reporter.Report(diagnostic.Diagnostic{Kind: kind, Location: expr.Location(), Message: fmt.Sprintf(format, args...)})
}

// eval evaluates expr, returning its Value and whether evaluation
// succeeded. A false return means an error was already reported.
func (in *Interp) eval(expr ast.Expr) (value.Value, bool) {
	switch e := expr.(type) {
	case *ast.Literal:
		return in.evalLiteral(e)
	case *ast.Grouped:
		return in.eval(e.Inner)
	case *ast.Block:
		var last value.Value
		ok := true
		if len(e.Exprs) == 0 {
			return value.Nothing, true
		}
		for _, sub := range e.Exprs {
			v, subOk := in.eval(sub)
			if !subOk {
				ok = false
				continue
			}
			last = v
		}
		return last, ok
	case *ast.Echo:
		v, ok := in.eval(e.Inner)
		if !ok {
			return value.Nothing, false
		}
		if _, err := io.WriteString(in.out, v.Text(in.arena)+"\n"); err != nil {
			in.reportRuntime(diagnostic.CompilerError, e, "write failed: %s", err)
			return value.Nothing, false
		}
		return value.Nothing, true
	case *ast.Unary:
		return in.evalUnary(e)
	case *ast.Binary:
		return in.evalBinary(e)
	case *ast.Def:
		in.reportUnimplemented(e, "definitions have no runtime representation in the tree-walker")
		return value.Nothing, false
	case *ast.Name:
		in.reportUnimplemented(e, "name references have no runtime representation in the tree-walker")
		return value.Nothing, false
	case *ast.Call:
		in.reportUnimplemented(e, "function calls are not implemented by the tree-walker")
		return value.Nothing, false
	case *ast.Get:
		in.reportUnimplemented(e, "member access is not implemented by the tree-walker")
		return value.Nothing, false
	case *ast.If:
		in.reportUnimplemented(e, "'if' is not implemented by the tree-walker")
		return value.Nothing, false
	case *ast.For:
		in.reportUnimplemented(e, "'for' is not implemented by the tree-walker")
		return value.Nothing, false
	case *ast.Loop:
		in.reportUnimplemented(e, "'while'/'until' are not implemented by the tree-walker")
		return value.Nothing, false
	case *ast.Function:
		in.reportUnimplemented(e, "function literals are not implemented by the tree-walker")
		return value.Nothing, false
	case *ast.Sequence:
		in.reportUnimplemented(e, "sequence literals are not implemented by the tree-walker")
		return value.Nothing, false
	case *ast.Record:
		in.reportUnimplemented(e, "record literals are not implemented by the tree-walker")
		return value.Nothing, false
	default:
		in.reportRuntime(diagnostic.CompilerError, expr, "no evaluation rule for this expression")
		return value.Nothing, false
	}
}

func (in *Interp) evalLiteral(lit *ast.Literal) (value.Value, bool) {
	if lit.IsString {
		in.reportUnimplemented(lit, "string constants have no runtime representation in the tree-walker")
		return value.Nothing, false
	}
	return lit.Scalar, true
}

