// Package parser implements dauw's recursive-descent, precedence-climbing
// expression parser (spec.md §4.2): it consumes the flat token list the
// lexer produces and builds the tagged-variant ast.Expr tree, reporting
// malformed input through a diagnostic.Reporter and resynchronizing at
// the next NEWLINE rather than aborting the whole parse.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/invariant"
	"github.com/dauw-lang/dauw/internal/token"
)

// Parser holds the cursor over a fixed token slice. Construct with New
// and call Parse once; a Parser is not reusable.
type Parser struct {
	tokens   []token.Token
	comments []token.Token
	pos      int
	reporter diagnostic.Reporter
	logger   *slog.Logger
}

// Option configures an optional Parser behavior.
type Option func(*Parser)

// WithLogger attaches a debug logger; nil (the default) disables
// tracing entirely, the same opt-in-only discipline as the lexer's
// WithLogger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

// New builds a Parser over tokens, reporting malformed syntax to
// reporter. Comment tokens are filtered out of the grammar stream up
// front and kept on the side — spec.md's grammar never mentions them,
// and a comment-only line never turns into an AST node.
func New(tokens []token.Token, reporter diagnostic.Reporter, opts ...Option) *Parser {
	p := &Parser{reporter: reporter}
	for _, opt := range opts {
		opt(p)
	}
	for _, tok := range tokens {
		if tok.Kind == token.COMMENT {
			p.comments = append(p.comments, tok)
			continue
		}
		p.tokens = append(p.tokens, tok)
	}
	return p
}

func (p *Parser) debugf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(fmt.Sprintf(format, args...))
	}
}

// Comments returns every comment token encountered, in source order.
func (p *Parser) Comments() []token.Token { return p.comments }

// Parse parses the whole token stream as a sequence of top-level
// expressions separated by NEWLINE, returning the root Block. Malformed
// statements are reported and skipped; Parse always returns a non-nil
// Block, so callers must check the reporter (or a diagnostic.Collector)
// for errors before trusting the result.
func (p *Parser) Parse() *ast.Block {
	loc := p.peek().Location
	var exprs []ast.Expr
	for !p.isAtEnd() {
		if p.match(token.NEWLINE) {
			continue
		}
		prev := p.pos
		exprs = append(exprs, p.parseStatement())
		p.finishStatement()
		invariant.Invariant(p.pos > prev, "parser made no progress at %s", p.peek().Location)
	}
	return ast.NewBlock(loc, exprs)
}

// finishStatement consumes the NEWLINE that must end a top-level or
// block statement, or resynchronizes past a malformed tail.
func (p *Parser) finishStatement() {
	if p.match(token.NEWLINE) || p.check(token.DEDENT) || p.isAtEnd() {
		return
	}
	p.errorf("Expected a new line after statement, but found %s", p.peek().Kind)
	p.synchronize()
}

// synchronize discards tokens until the next NEWLINE (which it also
// consumes) or END/DEDENT, so one malformed statement doesn't cascade
// into spurious errors for every statement after it.
func (p *Parser) synchronize() {
	start := p.peek().Location
	for !p.isAtEnd() && !p.check(token.DEDENT) {
		if p.match(token.NEWLINE) {
			p.debugf("synchronize: resumed at %s after discarding tokens from %s", p.peek().Location, start)
			return
		}
		p.advance()
	}
	p.debugf("synchronize: ran to end of block from %s", start)
}

// --- token cursor ---

func (p *Parser) peek() token.Token     { return p.tokens[p.pos] }
func (p *Parser) previous() token.Token { return p.tokens[p.pos-1] }
func (p *Parser) isAtEnd() bool         { return p.peek().Kind == token.END }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.pos++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume requires kind next, reporting a SyntaxError at the current
// location and returning ok=false if it isn't there. The caller decides
// whether that's recoverable.
func (p *Parser) consume(kind token.Kind, context string) (token.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.errorf("Expected %s %s, but found %s", kind, context, p.peek().Kind)
	return token.Token{}, false
}

func (p *Parser) errorf(format string, args ...any) {
	p.reporter.Report(diagnostic.Diagnostic{
		Kind:     diagnostic.SyntaxError,
		Location: p.peek().Location,
		Message:  fmt.Sprintf(format, args...),
	})
}

// skipNewlines discards any run of NEWLINE tokens, used where the
// grammar allows blank lines (inside sequence/record literals spanning
// several lines, and between block statements).
func (p *Parser) skipNewlines() {
	for p.match(token.NEWLINE) {
	}
}
