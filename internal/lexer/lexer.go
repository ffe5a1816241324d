// Package lexer turns dauw source text into a flat token stream,
// synthesizing INDENT/DEDENT/NEWLINE delimiters from leading whitespace
// the way spec.md §4.1 describes (a streaming adapter bolted onto a
// simple per-line, per-rule-table tokenizer — see spec.md §9's design
// note on keeping the indentation state machine separate from the
// character classifier, which is exactly how this file is split from
// rules.go).
package lexer

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/source"
	"github.com/dauw-lang/dauw/internal/token"
)

// Telemetry mirrors the teacher's zero-overhead-by-default counters:
// nil unless the caller opts in, so a production run pays nothing.
type Telemetry struct {
	Lines  int
	Tokens int
}

// Lexer converts a Source into a token list. Construct with New and
// call Tokenize once; a Lexer is not reusable across sources.
type Lexer struct {
	src      *source.Source
	reporter diagnostic.Reporter
	logger   *slog.Logger
	telemetry *Telemetry
}

// Option configures an optional Lexer behavior.
type Option func(*Lexer)

// WithLogger attaches a debug logger; nil (the default) disables
// tracing entirely rather than logging to a discard handler, to keep
// the hot path free of even a disabled-handler call.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lexer) { l.logger = logger }
}

// WithTelemetry enables token/line counters, written into t as
// Tokenize proceeds.
func WithTelemetry(t *Telemetry) Option {
	return func(l *Lexer) { l.telemetry = t }
}

// New creates a Lexer for src, reporting malformed input to reporter.
func New(src *source.Source, reporter diagnostic.Reporter, opts ...Option) *Lexer {
	l := &Lexer{src: src, reporter: reporter}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lexer) debugf(format string, args ...any) {
	if l.logger != nil {
		l.logger.Debug(fmt.Sprintf(format, args...))
	}
}

// Tokenize lexes the whole source and returns its token list, which
// always ends in END. On the first malformed construct it reports the
// error and returns a stream holding only END, discarding the tokens
// lexed before it — the caller is expected to check the reporter for
// errors before trusting the result.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	indents := []int{0}

	fail := func(loc source.Location, msg string) []token.Token {
		l.reporter.Report(diagnostic.Diagnostic{Kind: diagnostic.SyntaxError, Location: loc, Message: msg})
		return []token.Token{{Kind: token.END, Location: loc}}
	}

	lineCount := l.src.LineCount()
	for lineNo := 0; lineNo < lineCount; lineNo++ {
		line := l.src.Line(uint32(lineNo))
		loc := source.Location{Line: uint32(lineNo), Col: 0}

		if shebangPattern.MatchString(line) {
			if lineNo != 0 {
				return fail(loc, "A shebang is only allowed on the first line of the source")
			}
			continue
		}

		if isBlank(line) {
			continue
		}

		indent := countIndent(line)
		if indent > indents[len(indents)-1] {
			if lineNo == 0 {
				return fail(loc, "The first line of the source must not be indented")
			}
			indents = append(indents, indent)
			tokens = append(tokens, token.Token{Kind: token.INDENT, Location: loc})
			l.debugf("indent -> %d", indent)
		}
		for indent < indents[len(indents)-1] {
			indents = indents[:len(indents)-1]
			tokens = append(tokens, token.Token{Kind: token.DEDENT, Location: loc})
			l.debugf("dedent -> %d", indents[len(indents)-1])
		}
		if indent != indents[len(indents)-1] {
			return fail(loc, "The indentation does not match any outer indentation level")
		}

		col := indent
		for col < len(line) {
			cur := source.Location{Line: uint32(lineNo), Col: uint32(col)}
			rest := line[col:]

			if m := commentPattern.FindStringSubmatchIndex(rest); m != nil {
				text := rest[m[2]:m[3]]
				tokens = append(tokens, token.Token{Kind: token.COMMENT, Text: text, Location: cur})
				col += m[1]
				continue
			}
			if m := whitespacePattern.FindStringIndex(rest); m != nil {
				col += m[1]
				continue
			}

			tok, length, ok := l.matchRule(rest, cur)
			if !ok {
				return fail(cur, fmt.Sprintf("Invalid character '%c'", firstRune(rest)))
			}
			tokens = append(tokens, tok)
			col += length
		}

		tokens = append(tokens, token.Token{Kind: token.NEWLINE, Location: source.Location{Line: uint32(lineNo), Col: uint32(len(line))}})
		if l.telemetry != nil {
			l.telemetry.Lines++
		}
	}

	endLoc := source.Location{Line: uint32(lineCount), Col: 0}
	for len(indents) > 1 {
		indents = indents[:len(indents)-1]
		tokens = append(tokens, token.Token{Kind: token.DEDENT, Location: endLoc})
	}
	tokens = append(tokens, token.Token{Kind: token.END, Location: endLoc})

	if l.telemetry != nil {
		l.telemetry.Tokens = len(tokens)
	}
	return tokens
}

// matchRule runs every rule in the fixed table against rest (anchored
// at its start) and selects the winner by longest match, breaking ties
// in favor of the earlier rule — spec.md §4.1's "(a) shortest
// token-kind sort key, then (b) longest match".
func (l *Lexer) matchRule(rest string, loc source.Location) (token.Token, int, bool) {
	bestIdx := -1
	bestLen := -1
	var bestText string

	for i, r := range rules {
		m := r.pattern.FindStringSubmatchIndex(rest)
		if m == nil {
			continue
		}
		length := m[1]
		if length > bestLen {
			bestLen = length
			bestIdx = i
			if r.group > 0 && 2*r.group+1 < len(m) && m[2*r.group] >= 0 {
				bestText = rest[m[2*r.group]:m[2*r.group+1]]
			} else {
				bestText = rest[m[0]:m[1]]
			}
		}
	}

	if bestIdx < 0 {
		return token.Token{}, 0, false
	}
	r := rules[bestIdx]
	text := ""
	if r.kind == token.IDENTIFIER || r.kind == token.COMMENT ||
		r.kind == token.LITERAL_INT || r.kind == token.LITERAL_REAL ||
		r.kind == token.LITERAL_RUNE || r.kind == token.LITERAL_STRING ||
		r.kind == token.LITERAL_REGEX {
		text = bestText
	}
	if r.group == 1 && r.kind == token.IDENTIFIER && strings.IndexByte(text, '\\') >= 0 {
		text = unescapeBacktick(text)
	}
	return token.Token{Kind: r.kind, Text: text, Location: loc}, bestLen, true
}

func unescapeBacktick(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '`' || s[i+1] == '\\') {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isBlank(line string) bool {
	return strings.TrimRight(strings.TrimLeft(line, " \t"), " \t\r") == ""
}

func countIndent(line string) int {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
