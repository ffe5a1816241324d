package main

import (
	"log/slog"

	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/bytecode"
	"github.com/dauw-lang/dauw/internal/compiler"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/lexer"
	"github.com/dauw-lang/dauw/internal/parser"
	"github.com/dauw-lang/dauw/internal/resolver"
	"github.com/dauw-lang/dauw/internal/source"
)

// pipeline runs every static stage — lex, parse, resolve, compile — in
// order, collecting diagnostics from all of them into one Collector.
// Each stage still runs on whatever the previous one returned, even
// after an earlier one reports an error (the lexer itself stops at its
// first error and hands on a bare END); the caller decides whether
// HasErrors() should stop it from running the result.
func pipeline(src *source.Source, logger *slog.Logger) (*ast.Block, *bytecode.Code, *diagnostic.Collector) {
	collector := &diagnostic.Collector{}

	lex := lexer.New(src, collector, lexer.WithLogger(logger))
	tokens := lex.Tokenize()

	p := parser.New(tokens, collector, parser.WithLogger(logger))
	block := p.Parse()

	res := resolver.New(collector)
	res.Resolve(block)

	comp := compiler.New(collector, compiler.WithLogger(logger))
	code := comp.Compile(block)

	return block, code, collector
}

// exitCodeFor classifies a diagnostic.Kind into the exit code family
// of spec.md §6: 65 for malformed/ill-typed source, 70 for everything
// that is a runtime or backend failure once the source was accepted.
func exitCodeFor(kind diagnostic.Kind) int {
	switch kind {
	case diagnostic.SyntaxError, diagnostic.ValueMismatch, diagnostic.ValueOverflow,
		diagnostic.TypeMismatch, diagnostic.TypeUnresolvedError, diagnostic.StringError:
		return 65
	case diagnostic.CompilerError, diagnostic.UnimplementedError, diagnostic.StackOverflow,
		diagnostic.StackUnderflow, diagnostic.DivisionByZero, diagnostic.ConversionError:
		return 70
	default:
		return 70
	}
}
