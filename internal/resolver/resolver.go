// Package resolver implements dauw's type resolver (spec.md §4.3): a
// single pass over the AST that fills in each node's resolved type,
// which the compiler later uses to pick operand-type-specialized
// instructions. It is not a full type checker — user-defined functions,
// calls, and the control-flow forms are explicitly open (their resolved
// type is left unset, matching the source's own scope), so this stage
// never fails on them; it only reports TypeUnresolvedError when asked
// to resolve strictly and a node genuinely has no core rule.
package resolver

import (
	"fmt"

	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/langtype"
	"github.com/dauw-lang/dauw/internal/source"
	"github.com/dauw-lang/dauw/internal/token"
)

// Resolver walks Exprs and calls SetResolvedType on each. Construct with
// New and call Resolve once per top-level expression (or once on the
// root Block).
type Resolver struct {
	reporter diagnostic.Reporter
	strict   bool
}

// Option configures the Resolver.
type Option func(*Resolver)

// Strict makes an unresolvable node report TypeUnresolvedError instead
// of silently leaving its type unset.
func Strict() Option {
	return func(r *Resolver) { r.strict = true }
}

func New(reporter diagnostic.Reporter, opts ...Option) *Resolver {
	r := &Resolver{reporter: reporter}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve assigns a resolved type to expr and every sub-expression it
// contains, per spec.md §4.3's table. It always returns the type it
// assigned (the zero Type if the node is open and strict mode is off).
func (r *Resolver) Resolve(expr ast.Expr) langtype.Type {
	t, ok := r.resolve(expr)
	if ok {
		expr.SetResolvedType(t)
	} else if r.strict {
		r.reporter.Report(diagnostic.Diagnostic{
			Kind:     diagnostic.TypeUnresolvedError,
			Location: expr.Location(),
			Message:  "Could not resolve a type for this expression",
		})
	}
	return t
}

func (r *Resolver) resolve(expr ast.Expr) (langtype.Type, bool) {
	switch e := expr.(type) {
	case *ast.Literal:
		return r.resolveLiteral(e), true
	case *ast.Grouped:
		return r.Resolve(e.Inner), true
	case *ast.Block:
		return r.resolveBlock(e)
	case *ast.Def:
		return r.Resolve(e.Value), true
	case *ast.Echo:
		r.Resolve(e.Inner)
		return langtype.TypeNothing, true
	case *ast.Unary:
		return r.resolveUnary(e)
	case *ast.Binary:
		return r.resolveBinary(e)
	case *ast.Sequence:
		for _, item := range e.Items {
			r.Resolve(item)
		}
		return langtype.New(langtype.Sequence), true
	case *ast.Record:
		for _, v := range e.Values {
			r.Resolve(v)
		}
		return langtype.New(langtype.Record), true
	case *ast.Function:
		r.Resolve(e.Body)
		return langtype.New(langtype.Function), true
	case *ast.Name, *ast.Call, *ast.Get, *ast.If, *ast.For, *ast.Loop:
		r.resolveOpenChildren(expr)
		return langtype.Type{}, false
	default:
		return langtype.Type{}, false
	}
}

// resolveOpenChildren still visits the sub-expressions of an open-typed
// node, so a TypeMismatch or TypeUnresolvedError nested deeper is never
// missed just because the enclosing form has no resolved type of its
// own.
func (r *Resolver) resolveOpenChildren(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Call:
		r.Resolve(e.Callee)
		for _, a := range e.Args.Items {
			r.Resolve(a)
		}
	case *ast.Get:
		r.Resolve(e.Object)
	case *ast.If:
		r.Resolve(e.Cond)
		r.Resolve(e.Then)
		if e.Else != nil {
			r.Resolve(e.Else)
		}
	case *ast.For:
		r.Resolve(e.Iter)
		r.Resolve(e.Body)
	case *ast.Loop:
		r.Resolve(e.Cond)
		r.Resolve(e.Body)
	}
}

func (r *Resolver) resolveLiteral(lit *ast.Literal) langtype.Type {
	if lit.IsString {
		return langtype.TypeString
	}
	switch {
	case lit.Scalar.IsNothing():
		return langtype.TypeNothing
	case lit.Scalar.IsBool():
		return langtype.TypeBool
	case lit.Scalar.IsInt():
		return langtype.TypeInt
	case lit.Scalar.IsRune():
		return langtype.TypeRune
	case lit.Scalar.IsReal():
		return langtype.TypeReal
	default:
		return langtype.TypeNothing
	}
}

func (r *Resolver) resolveBlock(b *ast.Block) (langtype.Type, bool) {
	if len(b.Exprs) == 0 {
		return langtype.TypeNothing, true
	}
	var last langtype.Type
	var lastOk bool
	for _, sub := range b.Exprs {
		t, ok := r.resolve(sub)
		if ok {
			sub.SetResolvedType(t)
		}
		last, lastOk = t, ok
	}
	return last, lastOk
}

func (r *Resolver) resolveUnary(u *ast.Unary) (langtype.Type, bool) {
	operand := r.Resolve(u.Right)
	switch u.Op {
	case token.OPERATOR_SUBTRACT:
		switch operand.Kind {
		case langtype.Int:
			return langtype.TypeInt, true
		case langtype.Real:
			return langtype.TypeReal, true
		default:
			r.reportMismatch(u.Location(), "Unary '-' requires an Int or Real operand, got %s", operand)
			return langtype.Type{}, false
		}
	case token.OPERATOR_LENGTH:
		return langtype.TypeInt, true
	case token.OPERATOR_STRING:
		return langtype.TypeString, true
	case token.OPERATOR_LOGIC_NOT:
		return langtype.TypeBool, true
	default:
		return langtype.Type{}, false
	}
}

func (r *Resolver) resolveBinary(b *ast.Binary) (langtype.Type, bool) {
	left := r.Resolve(b.Left)
	right := r.Resolve(b.Right)

	switch b.Op {
	case token.OPERATOR_ADD, token.OPERATOR_SUBTRACT, token.OPERATOR_MULTIPLY,
		token.OPERATOR_DIVIDE, token.OPERATOR_QUOTIENT, token.OPERATOR_REMAINDER:
		return r.resolveArith(b, left, right)
	case token.OPERATOR_COMPARE:
		return langtype.TypeInt, true
	case token.OPERATOR_LESS, token.OPERATOR_LESS_EQUAL, token.OPERATOR_GREATER, token.OPERATOR_GREATER_EQUAL,
		token.OPERATOR_MATCH, token.OPERATOR_NOT_MATCH,
		token.OPERATOR_EQUAL, token.OPERATOR_NOT_EQUAL,
		token.OPERATOR_IDENTICAL, token.OPERATOR_NOT_IDENTICAL:
		return langtype.TypeBool, true
	case token.OPERATOR_LOGIC_AND, token.OPERATOR_LOGIC_OR:
		if left.Kind != langtype.Bool || right.Kind != langtype.Bool {
			r.reportMismatch(b.Location(), "'%s' requires Bool operands, got %s and %s", b.Op, left, right)
			return langtype.Type{}, false
		}
		return langtype.TypeBool, true
	default:
		return langtype.Type{}, false
	}
}

func (r *Resolver) resolveArith(b *ast.Binary, left, right langtype.Type) (langtype.Type, bool) {
	if b.Op == token.OPERATOR_ADD && left.Kind == langtype.String && right.Kind == langtype.String {
		return langtype.TypeString, true
	}
	if left.Kind == langtype.Int && right.Kind == langtype.Int {
		if b.Op == token.OPERATOR_DIVIDE {
			return langtype.TypeReal, true
		}
		return langtype.TypeInt, true
	}
	if left.Kind == langtype.Real && right.Kind == langtype.Real {
		return langtype.TypeReal, true
	}
	r.reportMismatch(b.Location(), "Arithmetic operand types do not match: %s and %s", left, right)
	return langtype.Type{}, false
}

func (r *Resolver) reportMismatch(loc source.Location, format string, args ...any) {
	r.reporter.Report(diagnostic.Diagnostic{
		Kind:     diagnostic.TypeMismatch,
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
	})
}
