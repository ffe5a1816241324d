package parser

import (
	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/token"
)

// parseExpr enters the precedence-climbing chain at its lowest level,
// spec.md §4.2's table (top row binds loosest).
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

// chain builds a left-chaining binary level: zero or more repetitions
// of one of ops, each combined with the previous result.
func (p *Parser) chain(next func() ast.Expr, ops ...token.Kind) ast.Expr {
	left := next()
	for p.match(ops...) {
		opTok := p.previous()
		right := next()
		left = ast.NewBinary(left, opTok, right)
	}
	return left
}

// nonChain builds a non-chaining binary level: at most one operator use,
// since spec.md marks equality/comparison/threeway/range as "non-chain"
// (so "a < b < c" is a syntax error, not a chained comparison).
func (p *Parser) nonChain(next func() ast.Expr, ops ...token.Kind) ast.Expr {
	left := next()
	if p.match(ops...) {
		opTok := p.previous()
		right := next()
		return ast.NewBinary(left, opTok, right)
	}
	return left
}

func (p *Parser) parseOr() ast.Expr {
	return p.chain(p.parseAnd, token.OPERATOR_LOGIC_OR)
}

func (p *Parser) parseAnd() ast.Expr {
	return p.chain(p.parseNot, token.OPERATOR_LOGIC_AND)
}

// parseNot is right-recursive unary, per spec.md's "prefix not, right-
// recursive" row.
func (p *Parser) parseNot() ast.Expr {
	if p.match(token.OPERATOR_LOGIC_NOT) {
		opTok := p.previous()
		return ast.NewUnary(opTok, p.parseNot())
	}
	return p.parseEquality()
}

func (p *Parser) parseEquality() ast.Expr {
	return p.nonChain(p.parseComparison,
		token.OPERATOR_EQUAL, token.OPERATOR_NOT_EQUAL,
		token.OPERATOR_IDENTICAL, token.OPERATOR_NOT_IDENTICAL)
}

func (p *Parser) parseComparison() ast.Expr {
	return p.nonChain(p.parseThreeway,
		token.OPERATOR_LESS, token.OPERATOR_LESS_EQUAL,
		token.OPERATOR_GREATER, token.OPERATOR_GREATER_EQUAL,
		token.OPERATOR_MATCH, token.OPERATOR_NOT_MATCH)
}

func (p *Parser) parseThreeway() ast.Expr {
	return p.nonChain(p.parseRange, token.OPERATOR_COMPARE)
}

func (p *Parser) parseRange() ast.Expr {
	return p.nonChain(p.parseTerm, token.OPERATOR_RANGE)
}

func (p *Parser) parseTerm() ast.Expr {
	return p.chain(p.parseFactor, token.OPERATOR_ADD, token.OPERATOR_SUBTRACT)
}

func (p *Parser) parseFactor() ast.Expr {
	return p.chain(p.parseUnary,
		token.OPERATOR_MULTIPLY, token.OPERATOR_DIVIDE,
		token.OPERATOR_QUOTIENT, token.OPERATOR_REMAINDER)
}

// parseUnary is right-recursive prefix -, #, $.
func (p *Parser) parseUnary() ast.Expr {
	if p.match(token.OPERATOR_SUBTRACT, token.OPERATOR_LENGTH, token.OPERATOR_STRING) {
		opTok := p.previous()
		return ast.NewUnary(opTok, p.parseUnary())
	}
	return p.parsePostfix()
}

// parsePostfix chains call and get forms onto an atom, left to right.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parseAtom()
	for {
		switch {
		case p.check(token.PARENTHESIS_LEFT):
			open := p.advance()
			args := p.parseCallArgs(open)
			p.consume(token.PARENTHESIS_RIGHT, "to close a call's argument list")
			expr = ast.NewCall(expr, open, args)
		case p.match(token.SYMBOL_DOT):
			nameTok, ok := p.consume(token.IDENTIFIER, "after '.'")
			if !ok {
				return expr
			}
			expr = ast.NewGet(expr, nameTok)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs(open token.Token) *ast.Sequence {
	var items []ast.Expr
	if !p.check(token.PARENTHESIS_RIGHT) {
		items = append(items, p.parseExpr())
		for p.match(token.SYMBOL_COMMA) {
			items = append(items, p.parseExpr())
		}
	}
	return ast.NewSequence(open, items)
}
