package symbols

import (
	"fmt"

	"cymbol/internal/diag"
	"cymbol/internal/source"
)

// ResolverOptions configures resolver construction.
type ResolverOptions struct {
	Reporter diag.Reporter
	// WarnShadowing reports declarations that hide a name of an enclosing scope.
	WarnShadowing bool
	// OnScope is called after every push (enter=true) and pop with the
	// stack depth after the move; used for tracing.
	OnScope func(enter bool, scope ScopeID, depth int)
}

// Resolver keeps the stack of active scopes during one traversal.
type Resolver struct {
	table                 *Table
	opts                  ResolverOptions
	stack                 []ScopeID
	scopeMismatchReported map[ScopeID]bool
}

// NewResolver creates a resolver with an empty stack.
func NewResolver(table *Table, opts ResolverOptions) *Resolver {
	return &Resolver{
		table:                 table,
		opts:                  opts,
		stack:                 make([]ScopeID, 0, 8),
		scopeMismatchReported: make(map[ScopeID]bool),
	}
}

func (r *Resolver) Table() *Table { return r.table }

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() ScopeID {
	if len(r.stack) == 0 {
		return NoScopeID
	}
	return r.stack[len(r.stack)-1]
}

func (r *Resolver) Depth() int { return len(r.stack) }

// Enter creates a child of the current scope and pushes it.
func (r *Resolver) Enter(kind ScopeKind, owner ScopeOwner, span source.Span) ScopeID {
	scope := r.table.NewScope(kind, r.CurrentScope(), owner, span)
	r.Push(scope)
	return scope
}

// Push makes an existing scope current.
func (r *Resolver) Push(scope ScopeID) {
	r.stack = append(r.stack, scope)
	r.notify(true, scope)
}

// Leave pops the current scope and checks it is expected. A mismatch means
// the traversal lost track of nesting: debug builds panic, release builds
// emit a warning once per scope.
func (r *Resolver) Leave(expected ScopeID) {
	if len(r.stack) == 0 {
		r.reportScopeMismatch(expected, NoScopeID)
		return
	}
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	if expected.IsValid() && top != expected {
		if strictScopes {
			panic(fmt.Sprintf("symbols: leaving scope %d while %d is active", expected, top))
		}
		r.reportScopeMismatch(expected, top)
	}
	r.notify(false, top)
}

// Declare defines sym in the current scope. A duplicate within the scope
// is reported and the first declaration stays bound.
func (r *Resolver) Declare(sym Symbol) (SymbolID, bool) {
	scope := r.CurrentScope()
	if !scope.IsValid() {
		return NoSymbolID, false
	}
	id, prev, ok := r.table.Define(scope, sym)
	if !ok {
		r.reportDuplicateSymbol(sym, prev)
		return NoSymbolID, false
	}
	if r.opts.WarnShadowing {
		if outer, found := r.table.Resolve(r.table.Enclosing(scope), sym.Name); found {
			r.reportShadowing(sym, outer)
		}
	}
	return id, true
}

// Lookup resolves name from the current scope outward.
func (r *Resolver) Lookup(name source.StringID) (SymbolID, bool) {
	return r.table.Resolve(r.CurrentScope(), name)
}

func (r *Resolver) notify(enter bool, scope ScopeID) {
	if r.opts.OnScope != nil {
		r.opts.OnScope(enter, scope, len(r.stack))
	}
}

func (r *Resolver) name(id source.StringID) string {
	s, _ := r.table.Strings.Lookup(id)
	return s
}

func (r *Resolver) reportDuplicateSymbol(sym Symbol, prev SymbolID) {
	if r.opts.Reporter == nil {
		return
	}
	b := diag.ReportError(r.opts.Reporter, diag.SemaDuplicateSymbol, sym.Span,
		fmt.Sprintf("duplicate declaration of '%s'", r.name(sym.Name)))
	if p := r.table.Symbols.Get(prev); p != nil {
		b.WithNote(p.Span, "previous declaration here")
	}
	b.Emit()
}

func (r *Resolver) reportShadowing(sym Symbol, outer SymbolID) {
	if r.opts.Reporter == nil {
		return
	}
	b := diag.ReportWarning(r.opts.Reporter, diag.SemaShadowSymbol, sym.Span,
		fmt.Sprintf("declaration of '%s' shadows previous binding", r.name(sym.Name)))
	if o := r.table.Symbols.Get(outer); o != nil {
		b.WithNote(o.Span, "shadowed declaration here")
	}
	b.Emit()
}

func (r *Resolver) reportScopeMismatch(expected, actual ScopeID) {
	if r.opts.Reporter == nil || r.scopeMismatchReported[expected] {
		return
	}
	r.scopeMismatchReported[expected] = true
	var span source.Span
	if s := r.table.Scopes.Get(expected); s != nil {
		span = s.Span
	}
	diag.ReportWarning(r.opts.Reporter, diag.SemaScopeMismatch, span,
		fmt.Sprintf("scope mismatch: leaving %d while %d is active", expected, actual)).Emit()
}
