package parser

import (
	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/source"
	"cymbol/internal/token"
)

// parseType съедает ключевое слово типа. Вызывающий уже проверил IsTypeKeyword,
// кроме параметров, где тип может отсутствовать.
func (p *Parser) parseType() ast.TypeRef {
	if !p.lx.Peek().IsTypeKeyword() {
		p.err(diag.SynExpectType, "expected type (int, float, void or bool), got "+quoteTok(p.lx.Peek()))
		return ast.TypeRef{}
	}
	tok := p.advance()
	return ast.TypeRef{Kind: tok.Kind, Span: tok.Span}
}

// parseVarRest разбирает `('=' expr)? ';'` после `type ID`.
func (p *Parser) parseVarRest(typ ast.TypeRef, name source.StringID, nameSpan source.Span) (ast.VarDecl, bool) {
	value := ast.NoExprID
	if p.at(token.Assign) {
		p.advance()
		var ok bool
		value, ok = p.parseExpr()
		if !ok {
			return ast.VarDecl{}, false
		}
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after variable declaration",
		p.insertFix("insert ';'", ";"))
	if !ok {
		return ast.VarDecl{}, false
	}

	return ast.VarDecl{
		Name:     name,
		NameSpan: nameSpan,
		Type:     typ,
		Value:    value,
		Span:     typ.Span.Cover(semi.Span),
	}, true
}

// parseFnRest разбирает `'(' formalParameters? ')' block` после `type ID`.
func (p *Parser) parseFnRest(ret ast.TypeRef, name source.StringID, nameSpan source.Span) (ast.ItemID, bool) {
	params, ok := p.parseParams()
	if !ok {
		return ast.NoItemID, false
	}

	if !p.at(token.LBrace) {
		p.err(diag.SynUnexpectedToken, "expected '{' to start function body, got "+quoteTok(p.lx.Peek()))
		return ast.NoItemID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}

	span := ret.Span.Cover(p.arenas.Stmts.Get(body).Span)
	return p.arenas.Items.NewFn(name, nameSpan, ret, params, body, span), true
}

func (p *Parser) parseParams() ([]ast.FnParamID, bool) {
	open := p.advance() // '('
	var params []ast.FnParamID

	if p.at(token.RParen) {
		p.advance()
		return params, true
	}

	for {
		typ := p.parseType()
		if !typ.IsValid() {
			return nil, false
		}
		pname, pspan, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		params = append(params, p.arenas.Items.NewParam(pname, pspan, typ, typ.Span.Cover(pspan)))

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}

	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters",
		openedAt(open.Span, "parameter list")); !ok {
		return nil, false
	}
	return params, true
}
