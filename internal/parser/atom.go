package parser

import (
	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/token"
	"github.com/dauw-lang/dauw/internal/value"
)

// parseAtom parses one of spec.md §4.2's atom forms.
func (p *Parser) parseAtom() ast.Expr {
	tok := p.peek()
	switch tok.Kind {
	case token.KEYWORD_NOTHING:
		p.advance()
		return ast.NewScalarLiteral(tok.Location, value.Nothing)
	case token.KEYWORD_FALSE:
		p.advance()
		return ast.NewScalarLiteral(tok.Location, value.False)
	case token.KEYWORD_TRUE:
		p.advance()
		return ast.NewScalarLiteral(tok.Location, value.True)
	case token.LITERAL_INT:
		p.advance()
		return p.parseIntLiteral(tok)
	case token.LITERAL_REAL:
		p.advance()
		return p.parseRealLiteral(tok)
	case token.LITERAL_RUNE:
		p.advance()
		return p.parseRuneLiteral(tok)
	case token.LITERAL_STRING:
		p.advance()
		return p.parseStringLiteral(tok)
	case token.LITERAL_REGEX:
		p.advance()
		return p.parseRegexLiteral(tok)
	case token.IDENTIFIER:
		p.advance()
		return ast.NewName(tok)
	case token.SQUARE_BRACKET_LEFT:
		return p.parseSequence()
	case token.CURLY_BRACKET_LEFT:
		return p.parseRecord()
	case token.SYMBOL_BACKSLASH:
		return p.parseLambda()
	case token.PARENTHESIS_LEFT:
		return p.parseGrouped()
	default:
		p.errorf("Expected an expression, but found %s", tok.Kind)
		if tok.Kind != token.NEWLINE {
			p.advance()
		}
		return ast.NewScalarLiteral(tok.Location, value.Nothing)
	}
}

// parseSequence parses "[ expr, expr, ... ]".
func (p *Parser) parseSequence() ast.Expr {
	open := p.advance()
	p.skipNewlines()
	var items []ast.Expr
	if !p.check(token.SQUARE_BRACKET_RIGHT) {
		items = append(items, p.parseExpr())
		p.skipNewlines()
		for p.match(token.SYMBOL_COMMA) {
			p.skipNewlines()
			if p.check(token.SQUARE_BRACKET_RIGHT) {
				break
			}
			items = append(items, p.parseExpr())
			p.skipNewlines()
		}
	}
	p.consume(token.SQUARE_BRACKET_RIGHT, "to close a sequence literal")
	return ast.NewSequence(open, items)
}

// parseRecord parses "{ key: expr, key: expr, ... }".
func (p *Parser) parseRecord() ast.Expr {
	open := p.advance()
	p.skipNewlines()
	var keys []string
	var values []ast.Expr
	if !p.check(token.CURLY_BRACKET_RIGHT) {
		p.parseRecordEntry(&keys, &values)
		p.skipNewlines()
		for p.match(token.SYMBOL_COMMA) {
			p.skipNewlines()
			if p.check(token.CURLY_BRACKET_RIGHT) {
				break
			}
			p.parseRecordEntry(&keys, &values)
			p.skipNewlines()
		}
	}
	p.consume(token.CURLY_BRACKET_RIGHT, "to close a record literal")
	return ast.NewRecord(open, keys, values)
}

func (p *Parser) parseRecordEntry(keys *[]string, values *[]ast.Expr) {
	var key string
	switch {
	case p.check(token.IDENTIFIER):
		key = p.advance().Text
	case p.check(token.LITERAL_STRING):
		tok := p.advance()
		decoded, err := unescape(tok.Text, '"')
		if err != nil {
			decoded = tok.Text
		}
		key = decoded
	default:
		p.errorf("Expected a record key, but found %s", p.peek().Kind)
		p.advance()
	}
	p.consume(token.SYMBOL_COLON, "after a record key")
	*keys = append(*keys, key)
	*values = append(*values, p.parseExpr())
}

// parseLambda parses "\( params ) (: type)? = body".
func (p *Parser) parseLambda() ast.Expr {
	backslash := p.advance()
	p.consume(token.PARENTHESIS_LEFT, "after '\\' to begin a lambda's parameters")
	params := p.parseParamList()
	p.consume(token.PARENTHESIS_RIGHT, "to close a lambda's parameter list")

	var typeExpr ast.TypeExpr
	if p.match(token.SYMBOL_COLON) {
		typeExpr = p.parseTypeExpr()
	}
	p.consume(token.OPERATOR_ASSIGN, "before a lambda's body")
	body := p.parseBody()
	return ast.NewFunction(backslash, params, typeExpr, body)
}

// parseGrouped parses "( expr )".
func (p *Parser) parseGrouped() ast.Expr {
	open := p.advance()
	inner := p.parseExpr()
	p.consume(token.PARENTHESIS_RIGHT, "to close a grouped expression")
	return ast.NewGrouped(open.Location, inner)
}
