package ast

import (
	"cymbol/internal/source"
	"cymbol/internal/token"
)

// TypeRef is the type keyword written in a declaration.
// A zero TypeRef (Kind == token.Invalid) means the parser found no type.
type TypeRef struct {
	Kind token.Kind
	Span source.Span
}

func (t TypeRef) IsValid() bool {
	return t.Kind != token.Invalid
}
