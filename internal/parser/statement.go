package parser

import (
	"github.com/dauw-lang/dauw/internal/ast"
	"github.com/dauw-lang/dauw/internal/invariant"
	"github.com/dauw-lang/dauw/internal/token"
)

// parseStatement dispatches to a def/control-flow form, or falls
// through to a plain expression — spec.md §4.2's "Def and control".
func (p *Parser) parseStatement() ast.Expr {
	p.debugf("parseStatement: %s at %s", p.peek().Kind, p.peek().Location)
	switch p.peek().Kind {
	case token.KEYWORD_DEF:
		return p.parseDef()
	case token.KEYWORD_IF:
		return p.parseIf()
	case token.KEYWORD_FOR:
		return p.parseFor()
	case token.KEYWORD_WHILE:
		return p.parseLoop(ast.LoopWhile)
	case token.KEYWORD_UNTIL:
		return p.parseLoop(ast.LoopUntil)
	case token.KEYWORD_ECHO:
		return p.parseEcho()
	default:
		return p.parseExpr()
	}
}

// parseBody parses the body of a then/do clause: either a single
// expression on the same line, or an indented block.
func (p *Parser) parseBody() ast.Expr {
	if p.check(token.NEWLINE) {
		return p.parseIndentedBlock()
	}
	return p.parseExpr()
}

// parseIndentedBlock parses "NEWLINE INDENT stmt (NEWLINE stmt)* DEDENT",
// spec.md §4.2's indented-block form.
func (p *Parser) parseIndentedBlock() ast.Expr {
	loc := p.peek().Location
	if _, ok := p.consume(token.NEWLINE, "before an indented block"); !ok {
		return ast.NewBlock(loc, nil)
	}
	if _, ok := p.consume(token.INDENT, "to begin an indented block"); !ok {
		return ast.NewBlock(loc, nil)
	}

	var exprs []ast.Expr
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		p.skipNewlines()
		if p.check(token.DEDENT) || p.isAtEnd() {
			break
		}
		prev := p.pos
		exprs = append(exprs, p.parseStatement())
		p.finishStatement()
		invariant.Invariant(p.pos > prev, "parser made no progress in block at %s", p.peek().Location)
	}
	p.consume(token.DEDENT, "to end an indented block")
	return ast.NewBlock(loc, exprs)
}

// parseDef parses "def NAME (: type)? = expr" or
// "def NAME ( params ) (: type)? = expr".
func (p *Parser) parseDef() ast.Expr {
	keyword, _ := p.consume(token.KEYWORD_DEF, "")
	nameTok, ok := p.consume(token.IDENTIFIER, "as the name in a definition")
	if !ok {
		return ast.NewDef(keyword.Location, "", nil, nil, p.parseExpr())
	}

	var params []*ast.FunctionParameter
	isFunction := false
	if p.match(token.PARENTHESIS_LEFT) {
		isFunction = true
		params = p.parseParamList()
		p.consume(token.PARENTHESIS_RIGHT, "to close a parameter list")
	}

	var typeExpr ast.TypeExpr
	if p.match(token.SYMBOL_COLON) {
		typeExpr = p.parseTypeExpr()
	}

	p.consume(token.OPERATOR_ASSIGN, "to separate a definition's name from its value")
	value := p.parseBody()

	if isFunction {
		fn := ast.NewFunction(nameTok, params, typeExpr, value)
		return ast.NewDef(keyword.Location, nameTok.Text, nil, nil, fn)
	}
	return ast.NewDef(keyword.Location, nameTok.Text, typeExpr, nil, value)
}

func (p *Parser) parseParamList() []*ast.FunctionParameter {
	var params []*ast.FunctionParameter
	if p.check(token.PARENTHESIS_RIGHT) {
		return params
	}
	for {
		nameTok, ok := p.consume(token.IDENTIFIER, "as a parameter name")
		if !ok {
			break
		}
		var typeExpr ast.TypeExpr
		if p.match(token.SYMBOL_COLON) {
			typeExpr = p.parseTypeExpr()
		}
		params = append(params, ast.NewFunctionParameter(nameTok.Location, nameTok.Text, typeExpr))
		if !p.match(token.SYMBOL_COMMA) {
			break
		}
	}
	return params
}

// parseIf parses "if cond then body (else body)?".
func (p *Parser) parseIf() ast.Expr {
	keyword, _ := p.consume(token.KEYWORD_IF, "")
	cond := p.parseExpr()
	p.consume(token.KEYWORD_THEN, "after an if condition")
	then := p.parseBody()

	var els ast.Expr
	if p.match(token.KEYWORD_ELSE) {
		els = p.parseBody()
	}
	return ast.NewIf(keyword, cond, then, els)
}

// parseFor parses "for name in iter do body".
func (p *Parser) parseFor() ast.Expr {
	keyword, _ := p.consume(token.KEYWORD_FOR, "")
	nameTok, _ := p.consume(token.IDENTIFIER, "as a for loop's binding name")
	p.consume(token.KEYWORD_IN, "after a for loop's binding name")
	iter := p.parseExpr()
	p.consume(token.KEYWORD_DO, "after a for loop's iterable")
	body := p.parseBody()
	return ast.NewFor(keyword, nameTok.Text, iter, body)
}

// parseLoop parses "while cond do body" or "until cond do body".
func (p *Parser) parseLoop(kind ast.LoopKind) ast.Expr {
	keyword := p.advance()
	cond := p.parseExpr()
	p.consume(token.KEYWORD_DO, "after a loop condition")
	body := p.parseBody()
	return ast.NewLoop(keyword, kind, cond, body)
}

// parseEcho parses "echo expr".
func (p *Parser) parseEcho() ast.Expr {
	keyword := p.advance()
	return ast.NewEcho(keyword, p.parseExpr())
}
