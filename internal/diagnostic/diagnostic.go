// Package diagnostic defines the closed set of error kinds raised across
// the lexer, parser, type resolver, compiler, and VM (spec.md §7), and
// the Reporter seam each stage is injected with instead of calling
// fmt.Print or panicking directly.
package diagnostic

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/dauw-lang/dauw/internal/source"
)

// Kind is the closed set of error kinds from spec.md §7.
type Kind uint8

const (
	SyntaxError Kind = iota
	ValueMismatch
	ValueOverflow
	TypeMismatch
	TypeUnresolvedError
	CompilerError
	UnimplementedError
	StackOverflow
	StackUnderflow
	DivisionByZero
	ConversionError
	StringError
)

var kindNames = map[Kind]string{
	SyntaxError: "SyntaxError", ValueMismatch: "ValueMismatch", ValueOverflow: "ValueOverflow",
	TypeMismatch: "TypeMismatch", TypeUnresolvedError: "TypeUnresolvedError",
	CompilerError: "CompilerError", UnimplementedError: "UnimplementedError",
	StackOverflow: "StackOverflow", StackUnderflow: "StackUnderflow",
	DivisionByZero: "DivisionByZero", ConversionError: "ConversionError",
	StringError: "StringError",
}

func (k Kind) String() string { return kindNames[k] }

// Diagnostic is a single reported error: its kind, the location it
// occurred at, and a human-readable message.
type Diagnostic struct {
	Kind     Kind
	Location source.Location
	Message  string
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s at %s: %s", d.Kind, d.Location, d.Message)
}

// Reporter receives diagnostics as they occur. The default
// implementation accumulates them and formats a caret diagnostic against
// a Source on request; a host embedding the interpreter may supply its
// own (e.g. to route diagnostics to an LSP client) without this package
// ever touching stdout itself.
type Reporter interface {
	Report(d Diagnostic)
}

// Collector is the default Reporter: it accumulates diagnostics in
// report order and never stops a run on its own.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

func (c *Collector) HasErrors() bool { return len(c.Diagnostics) > 0 }

// Format renders every collected diagnostic against src, one caret block
// per diagnostic, separated by blank lines.
func (c *Collector) Format(src *source.Source) string {
	out := ""
	for i, d := range c.Diagnostics {
		if i > 0 {
			out += "\n\n"
		}
		out += fmt.Sprintf("%s: %s\n%s", d.Kind, d.Message, src.Format(d.Location))
	}
	return out
}

// SuggestName searches candidates for the closest fuzzy match to name
// and, if one exists, returns a "did you mean 'X'?" suffix; otherwise
// returns "".
//
// Grounded on runtime/planner.findClosestMatch in the teacher, which
// ranks candidates with fuzzy.RankFindFold rather than a hand-rolled
// edit-distance routine.
func SuggestName(name string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, r := range ranks[1:] {
		if r.Distance < best.Distance {
			best = r
		}
	}
	return fmt.Sprintf(" (did you mean '%s'?)", best.Target)
}
