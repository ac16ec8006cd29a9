package symbols

import (
	"cymbol/internal/source"
	"cymbol/internal/types"
)

// SymbolKind classifies a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolVariable
	SymbolFunction
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	default:
		return "invalid"
	}
}

type SymbolFlags uint8

const (
	SymbolFlagParam SymbolFlags = 1 << iota
	SymbolFlagGlobal
)

// Symbol is a named entity declared in exactly one scope.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Type  types.Tag
	Scope ScopeID // declaring scope
	Span  source.Span
	Flags SymbolFlags

	// function symbols only
	Params []SymbolID
	Own    ScopeID // the function scope this symbol is
}

func (s *Symbol) IsFunction() bool { return s != nil && s.Kind == SymbolFunction }
func (s *Symbol) IsVariable() bool { return s != nil && s.Kind == SymbolVariable }
