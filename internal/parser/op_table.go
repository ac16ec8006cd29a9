package parser

import (
	"cymbol/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; все бинарные операторы левоассоциативны.
const (
	precNone           = 0
	precComparison     = 1 // == != < >
	precAdditive       = 2 // + -
	precMultiplicative = 3 // * /
)

// binaryPrec возвращает приоритет оператора или precNone, если токен не бинарный.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.EqEq, token.BangEq, token.Lt, token.Gt:
		return precComparison
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash:
		return precMultiplicative
	default:
		return precNone
	}
}

func isUnaryOp(kind token.Kind) bool {
	return kind == token.Minus || kind == token.Bang
}
