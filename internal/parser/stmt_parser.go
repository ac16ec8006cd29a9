package parser

import (
	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/token"
)

func (p *Parser) parseBlock() (ast.StmtID, bool) {
	if !p.at(token.LBrace) {
		return ast.NoStmtID, false
	}

	openTok := p.advance()
	var stmtIDs []ast.StmtID

	for !p.at(token.EOF) && !p.at(token.RBrace) {
		stmtID, ok := p.parseStmt()
		if ok {
			stmtIDs = append(stmtIDs, stmtID)
			continue
		}

		// ошибка при парсинге statement, восстанавливаемся до следующего statement
		p.resyncStatement()
	}

	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block",
		openedAt(openTok.Span, "block"),
		p.insertFix("insert '}'", "}"))
	if !ok {
		return ast.NoStmtID, false
	}

	blockSpan := openTok.Span.Cover(closeTok.Span)
	return p.arenas.Stmts.NewBlock(blockSpan, stmtIDs), true
}

// resyncStatement пропускает хвост сломанного statement: до ';' (съедаем),
// до '}' или типа, с которого начнётся следующее объявление.
func (p *Parser) resyncStatement() {
	stop := append([]token.Kind{token.Semicolon, token.RBrace}, typeKeywords...)
	p.resyncUntil(stop...)
	if p.at(token.Semicolon) {
		p.advance()
	}
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.LBrace:
		return p.parseBlock()
	case tok.IsTypeKeyword():
		return p.parseVarStmt()
	case tok.Kind == token.KwIf:
		return p.parseIfStmt()
	case tok.Kind == token.KwReturn:
		return p.parseReturnStmt()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseVarStmt() (ast.StmtID, bool) {
	typ := p.parseType()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.LParen) {
		p.err(diag.SynUnexpectedToken, "function declarations are only allowed at top level")
		return ast.NoStmtID, false
	}
	decl, ok := p.parseVarRest(typ, name, nameSpan)
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewVar(decl), true
}

// parseIfStmt: `if expr then? stat (else stat)?`
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	ifTok := p.advance()

	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if p.at(token.KwThen) {
		p.advance()
	}

	then, ok := p.parseStmt()
	if !ok {
		return ast.NoStmtID, false
	}
	span := ifTok.Span.Cover(p.arenas.Stmts.Get(then).Span)

	els := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		els, ok = p.parseStmt()
		if !ok {
			return ast.NoStmtID, false
		}
		span = span.Cover(p.arenas.Stmts.Get(els).Span)
	}

	return p.arenas.Stmts.NewIf(span, cond, then, els), true
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	retTok := p.advance()

	exprID := ast.NoExprID
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) {
		var ok bool
		exprID, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}

	semiTok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return statement",
		p.insertFix("insert ';'", ";"))
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(retTok.Span.Cover(semiTok.Span), exprID), true
}

// parseExprOrAssignStmt: `expr '=' expr ';'` или `expr ';'`.
func (p *Parser) parseExprOrAssignStmt() (ast.StmtID, bool) {
	lhs, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	start := p.arenas.Exprs.Get(lhs).Span

	if p.at(token.Assign) {
		p.advance()
		rhs, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		semiTok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after assignment",
			p.insertFix("insert ';'", ";"))
		if !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewAssign(start.Cover(semiTok.Span), lhs, rhs), true
	}

	semiTok, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after expression",
		p.insertFix("insert ';'", ";"))
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(start.Cover(semiTok.Span), lhs), true
}
