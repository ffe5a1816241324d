// Package langtype implements dauw's nominal type representation: a
// kind tag, an optional name, and an optional list of inner types used
// by the generic/maybe/union/intersection forms.
package langtype

import "strings"

// Kind is the closed set of type kinds from spec.md §3.
type Kind uint8

const (
	Nothing Kind = iota
	Bool
	Int
	Real
	Rune
	String
	Sequence
	Record
	Function
	TypeKind // the "Type" type itself (a type expression's own type)
	Maybe
	Intersection
	Union
)

var kindNames = [...]string{
	"Nothing", "Bool", "Int", "Real", "Rune", "String",
	"Sequence", "Record", "Function", "Type", "Maybe", "Intersection", "Union",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Type is (kind, name, inner types). Equality is structural: kind and
// the inner list compared elementwise; Name is descriptive only (it
// does not participate in equality, matching the original's nominal-by-
// structure comparison for the core's built-in kinds).
type Type struct {
	Kind  Kind
	Name  string
	Inner []Type
}

func New(kind Kind) Type { return Type{Kind: kind, Name: kind.String()} }

func Generic(kind Kind, name string, inner ...Type) Type {
	return Type{Kind: kind, Name: name, Inner: inner}
}

var (
	TypeNothing = New(Nothing)
	TypeBool    = New(Bool)
	TypeInt     = New(Int)
	TypeReal    = New(Real)
	TypeRune    = New(Rune)
	TypeString  = New(String)
)

// Equal reports structural equality: same kind and elementwise-equal
// inner type lists. Names are not compared.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	if len(t.Inner) != len(other.Inner) {
		return false
	}
	for i := range t.Inner {
		if !t.Inner[i].Equal(other.Inner[i]) {
			return false
		}
	}
	return true
}

// IsNumeric reports whether t is Int or Real, the two kinds eligible
// for arithmetic instruction selection in the compiler.
func (t Type) IsNumeric() bool {
	return t.Kind == Int || t.Kind == Real
}

func (t Type) String() string {
	if len(t.Inner) == 0 {
		return t.Kind.String()
	}
	parts := make([]string, len(t.Inner))
	for i, inner := range t.Inner {
		parts[i] = inner.String()
	}
	return t.Kind.String() + "<" + strings.Join(parts, ", ") + ">"
}
