package parser

import (
	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/token"
)

// parseTypeExpr parses the type-expression grammar that appears after a
// ':' annotation: a union of intersections of maybe-postfixed atoms,
// each atom a bare name optionally followed by a generic argument list
// or a parenthesized group.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	return p.parseTypeUnion()
}

func (p *Parser) parseTypeUnion() ast.TypeExpr {
	left := p.parseTypeIntersection()
	for p.match(token.OPERATOR_UNION) {
		right := p.parseTypeIntersection()
		left = ast.NewTypeUnion(left, right)
	}
	return left
}

func (p *Parser) parseTypeIntersection() ast.TypeExpr {
	left := p.parseTypePostfix()
	for p.match(token.OPERATOR_INTERSECTION) {
		right := p.parseTypePostfix()
		left = ast.NewTypeIntersection(left, right)
	}
	return left
}

func (p *Parser) parseTypePostfix() ast.TypeExpr {
	base := p.parseTypeAtom()
	for p.match(token.OPERATOR_MAYBE) {
		base = ast.NewTypeMaybe(base)
	}
	return base
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	switch {
	case p.check(token.IDENTIFIER):
		nameTok := p.advance()
		base := ast.TypeExpr(ast.NewTypeName(nameTok))
		if p.match(token.OPERATOR_LESS) {
			var args []ast.TypeExpr
			args = append(args, p.parseTypeExpr())
			for p.match(token.SYMBOL_COMMA) {
				args = append(args, p.parseTypeExpr())
			}
			p.consume(token.OPERATOR_GREATER, "to close a generic argument list")
			base = ast.NewTypeGeneric(base, args)
		}
		return base
	case p.check(token.PARENTHESIS_LEFT):
		open := p.advance()
		inner := p.parseTypeExpr()
		p.consume(token.PARENTHESIS_RIGHT, "to close a grouped type expression")
		return ast.NewTypeGrouped(open.Location, inner)
	default:
		p.errorf("Expected a type, but found %s", p.peek().Kind)
		tok := p.advance()
		return ast.NewTypeName(tok)
	}
}
