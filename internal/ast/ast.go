// Package ast defines dauw's abstract syntax tree as a tagged variant
// (spec.md §9's design note): one Expr interface implemented by a
// closed set of expression structs, each carrying its source location
// and an optional resolved Type filled in by the type resolver. There
// is no visitor double-dispatch — callers (the resolver, the compiler,
// the tree-walker) switch on the concrete type, which the Go compiler
// can check for exhaustiveness at the call site.
package ast

import (
	"github.com/dauw-lang/dauw/internal/langtype"
	"github.com/dauw-lang/dauw/internal/source"
	"github.com/dauw-lang/dauw/internal/token"
	"github.com/dauw-lang/dauw/internal/value"
)

// Expr is any node of the expression tree.
type Expr interface {
	Location() source.Location
	ResolvedType() (langtype.Type, bool)
	SetResolvedType(t langtype.Type)
}

// base is embedded by every Expr implementation to provide its
// location and resolved-type bookkeeping.
type base struct {
	loc      source.Location
	resolved *langtype.Type
}

func (b *base) Location() source.Location { return b.loc }

func (b *base) ResolvedType() (langtype.Type, bool) {
	if b.resolved == nil {
		return langtype.Type{}, false
	}
	return *b.resolved, true
}

func (b *base) SetResolvedType(t langtype.Type) { b.resolved = &t }

func newBase(loc source.Location) base { return base{loc: loc} }

// --- Literal ---

// Literal holds either a scalar NaN-boxed Value (nothing, bool, int,
// real, rune — none of which need heap allocation) or, for a string or
// regex literal, the decoded text content. String literals can't carry
// a ready-made heap Value at parse time because boxing one requires a
// VM-owned arena to allocate into (spec.md §5). Neither the compiler nor
// the tree-walker lowers string or regex literals; both report
// UnimplementedError for them.
type Literal struct {
	base
	Scalar      value.Value
	IsString    bool
	StringValue string
}

func NewScalarLiteral(loc source.Location, v value.Value) *Literal {
	return &Literal{base: newBase(loc), Scalar: v}
}

func NewStringLiteral(loc source.Location, s string) *Literal {
	return &Literal{base: newBase(loc), IsString: true, StringValue: s}
}

// --- Name ---

type Name struct {
	base
	Name string
}

func NewName(tok token.Token) *Name {
	return &Name{base: newBase(tok.Location), Name: tok.Text}
}

// --- Sequence ---

type Sequence struct {
	base
	Open  token.Token
	Items []Expr
}

func NewSequence(open token.Token, items []Expr) *Sequence {
	return &Sequence{base: newBase(open.Location), Open: open, Items: items}
}

// --- Record ---

// Record preserves insertion order via parallel Keys/Values slices
// rather than a Go map, since spec.md's map<String,Expr> is read back
// in source order by everything that inspects a Record (formatting,
// future compilation).
type Record struct {
	base
	Open   token.Token
	Keys   []string
	Values []Expr
}

func NewRecord(open token.Token, keys []string, values []Expr) *Record {
	return &Record{base: newBase(open.Location), Open: open, Keys: keys, Values: values}
}

// --- FunctionParameter ---

type FunctionParameter struct {
	base
	Name string
	Type TypeExpr // nil if unannotated
}

func NewFunctionParameter(loc source.Location, name string, t TypeExpr) *FunctionParameter {
	return &FunctionParameter{base: newBase(loc), Name: name, Type: t}
}

// --- Function ---

type Function struct {
	base
	Token      token.Token
	Params     []*FunctionParameter
	ReturnType TypeExpr // nil if unannotated
	Body       Expr
}

func NewFunction(tok token.Token, params []*FunctionParameter, ret TypeExpr, body Expr) *Function {
	return &Function{base: newBase(tok.Location), Token: tok, Params: params, ReturnType: ret, Body: body}
}

// --- Grouped ---

type Grouped struct {
	base
	Inner Expr
}

func NewGrouped(loc source.Location, inner Expr) *Grouped {
	return &Grouped{base: newBase(loc), Inner: inner}
}

// --- Call ---

type Call struct {
	base
	Callee Expr
	Token  token.Token
	Args   *Sequence
}

func NewCall(callee Expr, tok token.Token, args *Sequence) *Call {
	return &Call{base: newBase(tok.Location), Callee: callee, Token: tok, Args: args}
}

// --- Get ---

type Get struct {
	base
	Object Expr
	Name   string
}

func NewGet(object Expr, nameTok token.Token) *Get {
	return &Get{base: newBase(nameTok.Location), Object: object, Name: nameTok.Text}
}

// --- Unary ---

type Unary struct {
	base
	Op    token.Kind
	Right Expr
}

func NewUnary(opTok token.Token, right Expr) *Unary {
	return &Unary{base: newBase(opTok.Location), Op: opTok.Kind, Right: right}
}

// --- Binary ---

type Binary struct {
	base
	Left  Expr
	Op    token.Kind
	Right Expr
}

func NewBinary(left Expr, opTok token.Token, right Expr) *Binary {
	return &Binary{base: newBase(opTok.Location), Left: left, Op: opTok.Kind, Right: right}
}

// --- Echo ---

type Echo struct {
	base
	Keyword token.Token
	Inner   Expr
}

func NewEcho(keyword token.Token, inner Expr) *Echo {
	return &Echo{base: newBase(keyword.Location), Keyword: keyword, Inner: inner}
}

// --- If ---

type If struct {
	base
	Keyword token.Token
	Cond    Expr
	Then    Expr
	Else    Expr // nil if absent
}

func NewIf(keyword token.Token, cond, then, els Expr) *If {
	return &If{base: newBase(keyword.Location), Keyword: keyword, Cond: cond, Then: then, Else: els}
}

// --- For ---

type For struct {
	base
	Keyword token.Token
	Name    string
	Iter    Expr
	Body    Expr
}

func NewFor(keyword token.Token, name string, iter, body Expr) *For {
	return &For{base: newBase(keyword.Location), Keyword: keyword, Name: name, Iter: iter, Body: body}
}

// --- While / Until ---

// LoopKind distinguishes the two conditional-loop forms, which share
// every field but the exit test's polarity.
type LoopKind uint8

const (
	LoopWhile LoopKind = iota
	LoopUntil
)

type Loop struct {
	base
	Keyword token.Token
	Kind    LoopKind
	Cond    Expr
	Body    Expr
}

func NewLoop(keyword token.Token, kind LoopKind, cond, body Expr) *Loop {
	return &Loop{base: newBase(keyword.Location), Keyword: keyword, Kind: kind, Cond: cond, Body: body}
}

// --- Block ---

type Block struct {
	base
	Exprs []Expr
}

func NewBlock(loc source.Location, exprs []Expr) *Block {
	return &Block{base: newBase(loc), Exprs: exprs}
}

// --- Def ---

type Def struct {
	base
	Name   string
	Type   TypeExpr // nil if unannotated
	Params []*FunctionParameter // nil as built by the parser; a function def's parameters are on the *Function in Value
	Value  Expr
}

func NewDef(loc source.Location, name string, t TypeExpr, params []*FunctionParameter, value Expr) *Def {
	return &Def{base: newBase(loc), Name: name, Type: t, Params: params, Value: value}
}
