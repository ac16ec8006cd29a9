package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"cymbol/internal/source"
)

// arena is 1-based storage: slot 0 is the sentinel behind NoScopeID and
// NoSymbolID, so a zero ID never resolves.
type arena[T any, ID ~uint32] struct {
	data []T
}

func newArena[T any, ID ~uint32](capacity uint32) arena[T, ID] {
	return arena[T, ID]{data: make([]T, 1, capacity+1)}
}

func (a *arena[T, ID]) push(v T, what string) ID {
	next, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("%s arena overflow: %w", what, err))
	}
	a.data = append(a.data, v)
	return ID(next)
}

func (a *arena[T, ID]) Get(id ID) *T {
	if id == 0 || int(id) >= len(a.data) {
		return nil
	}
	return &a.data[id]
}

// Len excludes the sentinel.
func (a *arena[T, ID]) Len() int { return len(a.data) - 1 }

// Scopes owns every scope of a table.
type Scopes struct {
	arena[Scope, ScopeID]
}

func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{newArena[Scope, ScopeID](capacity)}
}

// New allocates a scope and appends it to its parent's children.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, owner ScopeOwner, span source.Span) ScopeID {
	id := s.push(Scope{
		Kind:      kind,
		Parent:    parent,
		Owner:     owner,
		Span:      span,
		NameIndex: make(map[source.StringID]SymbolID),
	}, "scope")
	if p := s.Get(parent); p != nil {
		p.Children = append(p.Children, id)
	}
	return id
}

// Symbols owns every symbol of a table, in declaration order.
type Symbols struct {
	arena[Symbol, SymbolID]
}

func NewSymbols(capacity uint32) *Symbols {
	if capacity == 0 {
		capacity = 64
	}
	return &Symbols{newArena[Symbol, SymbolID](capacity)}
}

func (s *Symbols) New(sym Symbol) SymbolID {
	return s.push(sym, "symbol")
}
