package token

import (
	"cymbol/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= RBracket
}

func (t Token) IsKeyword() bool {
	return t.Kind >= KwInt && t.Kind <= KwFalse
}

// IsTypeKeyword reports whether the token starts a type (int, float, void, bool).
func (t Token) IsTypeKeyword() bool {
	switch t.Kind {
	case KwInt, KwFloat, KwVoid, KwBool:
		return true
	default:
		return false
	}
}

func (t Token) IsIdent() bool { return t.Kind == Ident }
