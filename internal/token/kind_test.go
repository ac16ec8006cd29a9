package token_test

import (
	"testing"

	"cymbol/internal/source"
	"cymbol/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.FloatLit, token.KwTrue, token.KwFalse} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwInt, token.Plus, token.LParen} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Assign,
		token.EqEq, token.Bang, token.BangEq, token.Lt, token.Gt,
		token.Semicolon, token.Comma, token.LParen, token.RParen,
		token.LBrace, token.RBrace, token.LBracket, token.RBracket,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwIf, token.IntLit, token.EOF} {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsKeywordAndType(t *testing.T) {
	kws := []token.Kind{
		token.KwInt, token.KwFloat, token.KwVoid, token.KwBool, token.KwIf,
		token.KwThen, token.KwElse, token.KwReturn, token.KwTrue, token.KwFalse,
	}
	for _, k := range kws {
		if !tok(k).IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	if tok(token.Ident).IsKeyword() {
		t.Fatal("Ident must not be keyword")
	}
	for _, k := range []token.Kind{token.KwInt, token.KwFloat, token.KwVoid, token.KwBool} {
		if !tok(k).IsTypeKeyword() {
			t.Fatalf("%v should start a type", k)
		}
	}
	if tok(token.KwReturn).IsTypeKeyword() {
		t.Fatal("return is not a type")
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.Ident:     "Ident",
		token.KwVoid:    "void",
		token.BangEq:    "!=",
		token.EOF:       "EOF",
		token.Kind(250): "Kind(?)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
