// Package value implements dauw's 64-bit NaN-boxed value representation:
// a single machine word that holds either an IEEE-754 real or one of a
// handful of small tagged values (nothing, bool, int48, rune) or a
// pointer into the VM's heap-object arena, packed into the unused bit
// patterns of a quiet NaN (spec.md §3).
//
// Layout (bit 63 is the sign bit, bits 52-62 the exponent, bit 51 the
// quiet-NaN indicator):
//
//	bits 63        : sign — 0 = small value, 1 = heap reference
//	bits 51-62     : quiet-NaN marker, all 1 for every non-real value
//	bits 48-50     : 3-bit tag (small values only)
//	bits 0-47      : 48-bit payload (small-value payload, or arena index)
//
// A real value is its raw IEEE-754 bit pattern, except that any NaN
// produced by a real operation is canonicalized to the single reserved
// pattern (quiet-NaN marker with every remaining bit set) before it is
// boxed, so that bit pattern is never ambiguous with a tagged value.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dauw-lang/dauw/internal/heap"
)

const (
	qnanMask    uint64 = 0x7FF8_0000_0000_0000 // bits 51-62
	signBit     uint64 = 0x8000_0000_0000_0000
	payloadMask uint64 = 0x0000_FFFF_FFFF_FFFF // low 48 bits
	tagShift           = 48
	tagMask     uint64 = 0x7 << tagShift

	// nanBits is the single canonical pattern reserved for "NaN the
	// value": the quiet-NaN marker plus every other non-sign bit set.
	// No legitimate tag uses all three tag bits, so this can never be
	// produced by OfInt/OfRune/Bool/Nothing.
	nanBits uint64 = qnanMask | payloadMask | tagMask
)

// tag is the 3-bit discriminator for small (non-heap) non-real values.
type tag uint64

const (
	tagNothing tag = 1
	tagFalse   tag = 2
	tagTrue    tag = 3
	tagInt     tag = 4
	tagRune    tag = 5
)

// Value is a single NaN-boxed 64-bit word.
type Value uint64

// Nothing is the unique "nothing" value.
var Nothing = Value(qnanMask | uint64(tagNothing)<<tagShift)

// False and True are the two boolean values.
var (
	False = Value(qnanMask | uint64(tagFalse)<<tagShift)
	True  = Value(qnanMask | uint64(tagTrue)<<tagShift)
)

// Bool boxes a Go bool as True or False.
func Bool(b bool) Value {
	if b {
		return True
	}
	return False
}

// Real boxes an IEEE-754 float64. Any NaN input (regardless of its bit
// pattern or sign) is canonicalized to the single reserved NaN pattern.
func Real(f float64) Value {
	if math.IsNaN(f) {
		return Value(nanBits)
	}
	return Value(math.Float64bits(f))
}

// OfInt boxes a two's-complement integer that fits in 48 bits
// (-2^47 .. 2^47-1). It reports an error if n is out of range.
func OfInt(n int64) (Value, error) {
	const limit = int64(1) << 47
	if n < -limit || n >= limit {
		return 0, fmt.Errorf("ValueOverflow: int %d does not fit in 48 bits", n)
	}
	payload := uint64(n) & payloadMask
	return Value(qnanMask | uint64(tagInt)<<tagShift | payload), nil
}

// MustInt is OfInt without the error return, for callers (constant
// folding, tests) that have already range-checked n.
func MustInt(n int64) Value {
	v, err := OfInt(n)
	if err != nil {
		panic(err)
	}
	return v
}

// OfRune boxes a Unicode scalar value. Surrogates and code points above
// U+10FFFF are rejected.
func OfRune(r rune) (Value, error) {
	if r < 0 || r > 0x10FFFF || (r >= 0xD800 && r <= 0xDFFF) {
		return 0, fmt.Errorf("ValueOverflow: rune U+%X is not a scalar value", r)
	}
	return Value(qnanMask | uint64(tagRune)<<tagShift | uint64(r)&payloadMask), nil
}

// HeapRef boxes an index into the VM's heap-object arena. The index,
// not a raw pointer, is what lives in the 48-bit payload — this keeps
// object lifetime explicit and a future mark-and-sweep straightforward
// (spec.md §9 design note).
func HeapRef(index uint32) Value {
	return Value(signBit | qnanMask | uint64(index)&payloadMask)
}

// --- classification ---

// IsReal reports whether v holds a real number (including the
// canonical boxed NaN): exactly when the quiet-NaN marker bits are not
// all set, or v is the canonical NaN pattern itself.
func (v Value) IsReal() bool {
	return uint64(v)&qnanMask != qnanMask || uint64(v) == nanBits
}

func (v Value) smallTag() tag {
	return tag((uint64(v) & tagMask) >> tagShift)
}

func (v Value) IsNothing() bool { return v == Nothing }
func (v Value) IsFalse() bool   { return v == False }
func (v Value) IsTrue() bool    { return v == True }
func (v Value) IsBool() bool    { return v.IsFalse() || v.IsTrue() }

func (v Value) IsHeap() bool {
	return !v.IsReal() && uint64(v)&signBit != 0
}

func (v Value) IsInt() bool {
	return !v.IsReal() && !v.IsHeap() && v.smallTag() == tagInt
}

func (v Value) IsRune() bool {
	return !v.IsReal() && !v.IsHeap() && v.smallTag() == tagRune
}

// --- extraction ---

// AsReal returns the real value v holds. Panics if !v.IsReal().
func (v Value) AsReal() float64 {
	if !v.IsReal() {
		panic("value: AsReal on non-real Value")
	}
	return math.Float64frombits(uint64(v))
}

// AsBool returns the boolean v holds. Panics if !v.IsBool().
func (v Value) AsBool() bool {
	switch {
	case v.IsTrue():
		return true
	case v.IsFalse():
		return false
	default:
		panic("value: AsBool on non-bool Value")
	}
}

// AsInt returns the sign-extended 48-bit integer v holds. Panics if
// !v.IsInt().
func (v Value) AsInt() int64 {
	if !v.IsInt() {
		panic("value: AsInt on non-int Value")
	}
	payload := uint64(v) & payloadMask
	// Sign-extend bit 47 across the top 16 bits.
	const signBit48 = uint64(1) << 47
	if payload&signBit48 != 0 {
		payload |= ^payloadMask
	}
	return int64(payload)
}

// AsRune returns the Unicode scalar value v holds. Panics if !v.IsRune().
func (v Value) AsRune() rune {
	if !v.IsRune() {
		panic("value: AsRune on non-rune Value")
	}
	return rune(uint64(v) & payloadMask)
}

// AsHeapIndex returns the arena index v refers to. Panics if !v.IsHeap().
func (v Value) AsHeapIndex() uint32 {
	if !v.IsHeap() {
		panic("value: AsHeapIndex on non-heap Value")
	}
	return uint32(uint64(v) & payloadMask)
}

// IsNaN reports whether v is the boxed real NaN.
func (v Value) IsNaN() bool {
	return v.IsReal() && math.IsNaN(v.AsReal())
}

// Equal implements spec.md §3's structural equality: two reals compare
// by IEEE-754 equality (so NaN != NaN, and -0.0 == 0.0); everything
// else compares by bitwise identity of the 64-bit word.
func (v Value) Equal(other Value) bool {
	if v.IsReal() && other.IsReal() {
		return v.AsReal() == other.AsReal()
	}
	return v == other
}

func (v Value) String() string {
	switch {
	case v.IsNothing():
		return "nothing"
	case v.IsBool():
		return fmt.Sprintf("%v", v.AsBool())
	case v.IsInt():
		return fmt.Sprintf("%d", v.AsInt())
	case v.IsRune():
		return fmt.Sprintf("%q", v.AsRune())
	case v.IsHeap():
		return fmt.Sprintf("<heap#%d>", v.AsHeapIndex())
	case v.IsReal():
		return fmt.Sprintf("%v", v.AsReal())
	default:
		return "<invalid value>"
	}
}

// Text renders v's canonical textual form, the representation ECHO
// writes to standard output (spec.md §4.5): nothing/booleans/integers
// literally, a rune as the raw UTF-8 encoding of its one code point, a
// heap object resolved through arena, and a real as a locale-
// independent decimal using the special tokens "infinity"/"-infinity"/
// "nan". A negative zero real prints as "-0.0" rather than "0.0",
// matching the original implementation's value-to-string routine.
func (v Value) Text(arena *heap.Arena) string {
	switch {
	case v.IsNothing():
		return "nothing"
	case v.IsBool():
		if v.AsBool() {
			return "true"
		}
		return "false"
	case v.IsInt():
		return strconv.FormatInt(v.AsInt(), 10)
	case v.IsRune():
		return string(v.AsRune())
	case v.IsHeap():
		return heapText(arena, v.AsHeapIndex())
	case v.IsReal():
		return formatReal(v.AsReal())
	default:
		return "<invalid value>"
	}
}

func heapText(arena *heap.Arena, idx uint32) string {
	obj := arena.Get(idx)
	if s, ok := obj.(*heap.String); ok {
		return s.String()
	}
	return fmt.Sprintf("<object %s at 0x%x>", obj.Kind(), idx)
}

func formatReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "infinity"
	case math.IsInf(f, -1):
		return "-infinity"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
