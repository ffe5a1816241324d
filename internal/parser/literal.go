package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/diagnostic"
	"github.com/dauw-lang/dauw/internal/token"
	"github.com/dauw-lang/dauw/internal/value"
)

// parseIntLiteral strips thousand-separator underscores and delegates
// base detection to strconv's "0x" auto-recognition, grounded on
// original_source's utils/string.cpp parse_int (which does the same
// strip-then-parse, via std::stoll's base-16-or-10 switch there).
func (p *Parser) parseIntLiteral(tok token.Token) ast.Expr {
	clean := strings.ReplaceAll(tok.Text, "_", "")
	n, err := strconv.ParseInt(clean, 0, 64)
	if err != nil {
		p.reportValue(tok, diagnostic.ValueMismatch, "Invalid integer literal '%s'", tok.Text)
		return ast.NewScalarLiteral(tok.Location, value.MustInt(0))
	}
	v, err := value.OfInt(n)
	if err != nil {
		p.reportValue(tok, diagnostic.ValueOverflow, "Integer literal '%s' does not fit in 48 bits", tok.Text)
		return ast.NewScalarLiteral(tok.Location, value.MustInt(0))
	}
	return ast.NewScalarLiteral(tok.Location, v)
}

func (p *Parser) parseRealLiteral(tok token.Token) ast.Expr {
	clean := strings.ReplaceAll(tok.Text, "_", "")
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		p.reportValue(tok, diagnostic.ValueMismatch, "Invalid real literal '%s'", tok.Text)
		return ast.NewScalarLiteral(tok.Location, value.Real(0))
	}
	return ast.NewScalarLiteral(tok.Location, value.Real(f))
}

func (p *Parser) parseRuneLiteral(tok token.Token) ast.Expr {
	decoded, err := unescape(tok.Text, '\'')
	if err != nil {
		p.reportValue(tok, diagnostic.ValueMismatch, "%s", err)
		return ast.NewScalarLiteral(tok.Location, value.MustInt(0))
	}
	runes := []rune(decoded)
	switch len(runes) {
	case 0:
		p.reportValue(tok, diagnostic.ValueMismatch, "Missing code point in rune literal")
		return ast.NewScalarLiteral(tok.Location, value.MustInt(0))
	case 1:
		v, err := value.OfRune(runes[0])
		if err != nil {
			p.reportValue(tok, diagnostic.ValueOverflow, "%s", err)
			return ast.NewScalarLiteral(tok.Location, value.MustInt(0))
		}
		return ast.NewScalarLiteral(tok.Location, v)
	default:
		p.reportValue(tok, diagnostic.ValueMismatch, "Unexpected extra code point(s) in rune literal")
		return ast.NewScalarLiteral(tok.Location, value.MustInt(0))
	}
}

func (p *Parser) parseStringLiteral(tok token.Token) ast.Expr {
	decoded, err := unescape(tok.Text, '"')
	if err != nil {
		p.reportValue(tok, diagnostic.ValueMismatch, "%s", err)
		decoded = ""
	}
	return ast.NewStringLiteral(tok.Location, decoded)
}

// parseRegexLiteral treats a regex literal as a plain decoded string for
// now (the runtime has no regex-matching object yet), matching the
// open TODO in original_source's parse_regex.
func (p *Parser) parseRegexLiteral(tok token.Token) ast.Expr {
	decoded, err := unescape(tok.Text, '"')
	if err != nil {
		p.reportValue(tok, diagnostic.ValueMismatch, "%s", err)
		decoded = ""
	}
	return ast.NewStringLiteral(tok.Location, decoded)
}

func (p *Parser) reportValue(tok token.Token, kind diagnostic.Kind, format string, args ...any) {
	p.reporter.Report(diagnostic.Diagnostic{Kind: kind, Location: tok.Location, Message: fmt.Sprintf(format, args...)})
}
