package heap

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// String is an immutable, validated UTF-8 byte buffer with code-point
// (not byte) indexing semantics.
type String struct {
	bytes []byte
}

func (s *String) Kind() Kind { return KindString }

// NewString validates data as UTF-8 and wraps it. Invalid UTF-8 fails
// with StringError; the validation happens once, here, so every other
// operation on a *String can assume well-formed input.
func NewString(data []byte) (*String, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("StringError: invalid UTF-8 byte sequence")
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return &String{bytes: cp}, nil
}

// NewStringFromRunes builds a String from already-validated scalar
// values (e.g. after escape decoding in the parser), which by
// construction cannot contain surrogates or invalid code points.
func NewStringFromRunes(runes []rune) *String {
	buf := make([]byte, 0, len(runes))
	for _, r := range runes {
		buf = utf8.AppendRune(buf, r)
	}
	return &String{bytes: buf}
}

// Bytes returns the raw UTF-8 bytes. The caller must not mutate them.
func (s *String) Bytes() []byte { return s.bytes }

// ByteLen returns the length in bytes.
func (s *String) ByteLen() int { return len(s.bytes) }

// RuneLen returns the length in code points, by walking the buffer
// once (spec.md §3: "code-point length (UTF-8 distance)").
func (s *String) RuneLen() int {
	return utf8.RuneCount(s.bytes)
}

// RuneAt returns the i-th code point (0-based). Panics if i is out of
// range — the compiler/VM are expected to bounds-check via length
// first, per the core's VM safety discipline.
func (s *String) RuneAt(i int) rune {
	n := 0
	for _, r := range string(s.bytes) {
		if n == i {
			return r
		}
		n++
	}
	panic("heap: RuneAt index out of range")
}

// Runes returns a forward iterator over code points. Invalid input can
// never reach here since NewString rejects it at construction, so no
// replacement characters are ever yielded (spec.md §3).
func (s *String) Runes(yield func(rune) bool) {
	for _, r := range string(s.bytes) {
		if !yield(r) {
			return
		}
	}
}

// Compare returns -1, 0, or 1 comparing s and other lexicographically
// by code point.
func (s *String) Compare(other *String) int {
	a, b := string(s.bytes), string(other.bytes)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Append returns a new String holding s's bytes followed by other's.
func (s *String) Append(other *String) *String {
	buf := make([]byte, 0, len(s.bytes)+len(other.bytes))
	buf = append(buf, s.bytes...)
	buf = append(buf, other.bytes...)
	return &String{bytes: buf}
}

// Normalized returns a new String in Unicode NFC normal form, so that
// visually identical but differently-composed texts compare equal. The
// lexer does not call it; backtick-quoted identifiers keep their bytes
// as written.
func (s *String) Normalized() *String {
	return &String{bytes: norm.NFC.Bytes(s.bytes)}
}

func (s *String) String() string { return string(s.bytes) }
