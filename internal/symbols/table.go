package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"cymbol/internal/source"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Symbols uint }

// Table aggregates the scope and symbol arenas of one analysis.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols
	Strings *source.Interner
	Global  ScopeID

	sealed bool
}

// NewTable builds a fresh table. A nil interner gets a fresh one.
func NewTable(h Hints, strings *source.Interner) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[uint32](h.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if strings == nil {
		strings = source.NewInterner()
	}
	return &Table{
		Scopes:  NewScopes(scopeCap),
		Symbols: NewSymbols(symCap),
		Strings: strings,
	}
}

// GlobalScope returns the global scope, creating it on first use.
func (t *Table) GlobalScope(span source.Span) ScopeID {
	if t.Global.IsValid() {
		return t.Global
	}
	t.mustBeOpen()
	t.Global = t.Scopes.New(ScopeGlobal, NoScopeID, OwnerFile(), span)
	return t.Global
}

// NewScope allocates a function or local scope under parent.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, owner ScopeOwner, span source.Span) ScopeID {
	t.mustBeOpen()
	if kind == ScopeGlobal {
		panic("symbols: use GlobalScope for the global scope")
	}
	if t.Scopes.Get(parent) == nil {
		panic(fmt.Sprintf("symbols: %s scope with unknown parent %d", kind, parent))
	}
	return t.Scopes.New(kind, parent, owner, span)
}

// Define inserts sym under its name in scope. When the name is already
// bound in that very scope nothing is inserted and the earlier symbol is
// returned as prev with ok == false.
func (t *Table) Define(scope ScopeID, sym Symbol) (id, prev SymbolID, ok bool) {
	t.mustBeOpen()
	s := t.Scopes.Get(scope)
	if s == nil {
		panic(fmt.Sprintf("symbols: define in unknown scope %d", scope))
	}
	if existing, dup := s.NameIndex[sym.Name]; dup {
		return NoSymbolID, existing, false
	}
	sym.Scope = scope
	id = t.Symbols.New(sym)
	s.NameIndex[sym.Name] = id
	s.Symbols = append(s.Symbols, id)
	return id, NoSymbolID, true
}

// Resolve looks name up innermost-first along the parent chain of scope.
func (t *Table) Resolve(scope ScopeID, name source.StringID) (SymbolID, bool) {
	for s := t.Scopes.Get(scope); s != nil; s = t.Scopes.Get(s.Parent) {
		if id, ok := s.NameIndex[name]; ok {
			return id, true
		}
	}
	return NoSymbolID, false
}

// ResolveLocal looks name up in scope only.
func (t *Table) ResolveLocal(scope ScopeID, name source.StringID) (SymbolID, bool) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoSymbolID, false
	}
	id, ok := s.NameIndex[name]
	return id, ok
}

// Enclosing returns the parent of scope, NoScopeID for the global scope.
func (t *Table) Enclosing(scope ScopeID) ScopeID {
	if s := t.Scopes.Get(scope); s != nil {
		return s.Parent
	}
	return NoScopeID
}

// Depth counts parent links from scope to the global scope.
func (t *Table) Depth(scope ScopeID) int {
	d := -1
	for s := t.Scopes.Get(scope); s != nil; s = t.Scopes.Get(s.Parent) {
		d++
	}
	return d
}

// AddParam appends param to the parameter list of function symbol fn.
func (t *Table) AddParam(fn, param SymbolID) {
	t.mustBeOpen()
	f := t.Symbols.Get(fn)
	if !f.IsFunction() {
		panic(fmt.Sprintf("symbols: AddParam on non-function symbol %d", fn))
	}
	f.Params = append(f.Params, param)
}

// LinkFunction records that fn is the symbol of function scope own.
func (t *Table) LinkFunction(fn SymbolID, own ScopeID) {
	t.mustBeOpen()
	f := t.Symbols.Get(fn)
	s := t.Scopes.Get(own)
	if !f.IsFunction() || s == nil || s.Kind != ScopeFunction {
		panic(fmt.Sprintf("symbols: cannot link symbol %d to scope %d", fn, own))
	}
	f.Own = own
	s.Func = fn
}

func (t *Table) Symbol(id SymbolID) *Symbol { return t.Symbols.Get(id) }
func (t *Table) Scope(id ScopeID) *Scope    { return t.Scopes.Get(id) }

// Name returns the text of a symbol name.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return ""
	}
	s, _ := t.Strings.Lookup(sym.Name)
	return s
}

// Seal makes the table read-only; later mutations panic.
func (t *Table) Seal() { t.sealed = true }

func (t *Table) Sealed() bool { return t.sealed }

func (t *Table) mustBeOpen() {
	if t.sealed {
		panic("symbols: table is sealed")
	}
}
