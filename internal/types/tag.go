// Package types holds the builtin type tags of Cymbol and the mapping from
// type keywords to tags. Full type checking is not performed; a tag only
// records what a declaration says.
package types

import (
	"fmt"

	"cymbol/internal/token"
)

// Tag is a builtin type.
type Tag uint8

const (
	Invalid Tag = iota
	Int
	Float
	Void
	Bool
)

func (t Tag) String() string {
	switch t {
	case Invalid:
		return "invalid"
	case Int:
		return "int"
	case Float:
		return "float"
	case Void:
		return "void"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("Tag(%d)", t)
	}
}

// FromToken maps a type keyword to its tag.
func FromToken(k token.Kind) (Tag, bool) {
	switch k {
	case token.KwInt:
		return Int, true
	case token.KwFloat:
		return Float, true
	case token.KwVoid:
		return Void, true
	case token.KwBool:
		return Bool, true
	default:
		return Invalid, false
	}
}

// MustFromToken is FromToken for callers that require a well-formed tree.
// A declaration without a type keyword is a broken precondition, so it panics.
func MustFromToken(k token.Kind) Tag {
	t, ok := FromToken(k)
	if !ok {
		panic(fmt.Sprintf("types: %v is not a type keyword", k))
	}
	return t
}

// ParseTag is the inverse of Tag.String for builtin names.
func ParseTag(s string) (Tag, bool) {
	switch s {
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "void":
		return Void, true
	case "bool":
		return Bool, true
	}
	return Invalid, false
}
