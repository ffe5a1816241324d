// Package source owns the source text of a dauw program and the
// line index used to format caret diagnostics under it.
package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/width"

	"github.com/dauw-lang/dauw/internal/invariant"
)

// Location is a zero-based line/column pair into a Source. Ordering is
// lexicographic: (line, col).
type Location struct {
	Line uint32
	Col  uint32
}

// Before reports whether l sorts strictly before other.
func (l Location) Before(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Col < other.Col
}

// String renders the location one-based, e.g. "12:4".
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line+1, l.Col+1)
}

// Source owns a file path and its source text, split into lines once at
// construction. Source is immutable after New returns.
type Source struct {
	path  string
	text  string
	lines []string
}

// New splits text into lines on \r?\n and returns an immutable Source.
func New(path, text string) *Source {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	return &Source{
		path:  path,
		text:  text,
		lines: strings.Split(normalized, "\n"),
	}
}

// Path returns the file path the source was loaded from.
func (s *Source) Path() string { return s.path }

// Text returns the raw, unmodified source text.
func (s *Source) Text() string { return s.text }

// LineCount returns the number of lines, counting a trailing partial line.
func (s *Source) LineCount() int { return len(s.lines) }

// Line returns the text of the given zero-based line, or "" if out of range.
func (s *Source) Line(n uint32) string {
	if int(n) >= len(s.lines) {
		return ""
	}
	return s.lines[n]
}

// Format renders a three-line diagnostic: the file:line:col tag, the
// offending source line, and a caret aligned under the column — widened
// for East-Asian and combining runes so the caret lands under the right
// glyph rather than one terminal cell short.
func (s *Source) Format(loc Location) string {
	invariant.Precondition(s != nil, "source must not be nil")
	line := s.Line(loc.Line)

	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s\n", s.path, loc.String())
	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(caretPrefix(line, loc.Col))
	b.WriteByte('^')
	return b.String()
}

// caretPrefix builds the whitespace run that places a caret under column
// col of line, accounting for display-width runes (CJK, combining marks)
// via golang.org/x/text/width rather than assuming one cell per rune.
func caretPrefix(line string, col uint32) string {
	var b strings.Builder
	var seen uint32
	for _, r := range line {
		if seen >= col {
			break
		}
		w := 1
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w = 2
		case width.Neutral:
			if isCombining(r) {
				w = 0
			}
		}
		for i := 0; i < w; i++ {
			b.WriteByte(' ')
		}
		seen++
	}
	// Column may exceed the line length (end-of-line locations); pad
	// with single-width spaces for the remainder.
	for ; seen < col; seen++ {
		b.WriteByte(' ')
	}
	return b.String()
}

func isCombining(r rune) bool {
	return r >= 0x0300 && r <= 0x036F
}
