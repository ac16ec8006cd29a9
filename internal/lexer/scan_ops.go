package lexer

import (
	"fmt"
	"unicode/utf8"

	"cymbol/internal/diag"
	"cymbol/internal/token"
)

// Сначала двухсимвольные (==, !=), потом односимвольные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	switch {
	case lx.cursor.Try2('=', '='):
		return emit(token.EqEq)
	case lx.cursor.Try2('!', '='):
		return emit(token.BangEq)
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '=':
		return emit(token.Assign)
	case '!':
		return emit(token.Bang)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	}

	// неизвестный символ: съедаем руну целиком, а не один байт
	if ch >= utf8.RuneSelf {
		lx.cursor.Reset(start)
		lx.cursor.BumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", text))
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}
