package lexer

import (
	"cymbol/internal/diag"
	"cymbol/internal/token"
)

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// numberAfterDot: ".5" начинает FLOAT, одиночная точка нет
func (lx *Lexer) numberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

// scanNumber reads INT ([0-9]+) and FLOAT (INT '.' [0-9]* | '.' [0-9]+).
// A letter glued to the digits ("12ab") is reported and the whole run is
// returned as one Invalid token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	if b := lx.cursor.Peek(); isIdentStartByte(b) || b == '.' {
		for {
			b = lx.cursor.Peek()
			if !isIdentContinueByte(b) && b != '.' {
				break
			}
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		text := string(lx.file.Content[sp.Start:sp.End])
		lx.errLex(diag.LexBadNumber, sp, "malformed number literal '"+text+"'")
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
