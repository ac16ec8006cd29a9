package parser

import (
	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/source"
	"cymbol/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(precComparison)
}

// parseBinaryExpr реализует Pratt parsing для бинарных операторов
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		prec := binaryPrec(p.lx.Peek().Kind)
		if prec == precNone || prec < minPrec {
			break
		}
		opTok := p.advance()

		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}

		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, opTok.Kind, left, right)
	}

	return left, true
}

// parseUnaryExpr: '-' и '!' связывают сильнее любого бинарного оператора,
// но слабее постфиксной индексации: -a[i] == -(a[i]).
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	if !isUnaryOp(p.lx.Peek().Kind) {
		return p.parsePostfixExpr()
	}
	opTok := p.advance()
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
	return p.arenas.Exprs.NewUnary(span, opTok.Kind, operand), true
}

func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.LBracket) {
		expr, ok = p.parseIndexExpr(expr)
		if !ok {
			return ast.NoExprID, false
		}
	}
	return expr, true
}

func (p *Parser) parseIndexExpr(target ast.ExprID) (ast.ExprID, bool) {
	open := p.advance() // '['
	index, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RBracket, diag.SynExpectRightBracket, "expected ']' after index",
		openedAt(open.Span, "index"))
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(target).Span.Cover(closeTok.Span)
	return p.arenas.Exprs.NewIndex(span, target, index), true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		name := p.arenas.StringsInterner.Intern(tok.Text)
		if p.at(token.LParen) {
			return p.parseCallExpr(tok, name)
		}
		return p.arenas.Exprs.NewIdent(tok.Span, name), true

	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(ast.ExprIntLit, tok.Span, tok.Text), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(ast.ExprFloatLit, tok.Span, tok.Text), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(ast.ExprBoolLit, tok.Span, tok.Text), true

	case token.LParen:
		return p.parseParenExpr()

	case token.Invalid:
		// лексер уже сообщил об ошибке, второй раз не ругаемся
		p.advance()
		p.opts.CurrentErrors++
		return ast.NoExprID, false

	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+quoteTok(tok))
		return ast.NoExprID, false
	}
}

func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open := p.advance()
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'",
		openedAt(open.Span, "parenthesis"))
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewGroup(open.Span.Cover(closeTok.Span), inner), true
}

// parseCallExpr: `ID '(' exprList? ')'`, имя уже съедено.
func (p *Parser) parseCallExpr(callee token.Token, name source.StringID) (ast.ExprID, bool) {
	open := p.advance() // '('
	var args []ast.ExprID

	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list",
		openedAt(open.Span, "argument list"))
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(callee.Span.Cover(closeTok.Span), name, callee.Span, args), true
}
