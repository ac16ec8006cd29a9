package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// Validate checks the structural invariants of the table and returns every
// violation joined, or nil.
func (t *Table) Validate() error {
	var errs []error
	scopes := t.Scopes.data
	globals := 0

	for idx := 1; idx < len(scopes); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := &scopes[idx]
		switch scope.Kind {
		case ScopeGlobal:
			globals++
			if scope.Parent.IsValid() {
				errs = append(errs, fmt.Errorf("global scope %d has parent %d", scopeID, scope.Parent))
			}
		case ScopeFunction, ScopeLocal:
			if !scope.Parent.IsValid() {
				errs = append(errs, fmt.Errorf("%s scope %d has no parent", scope.Kind, scopeID))
			}
		default:
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}

		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(scopes) || scope.Parent == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
				continue
			}
			if !containsScope(scopes[scope.Parent].Children, scopeID) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
			if err := t.checkChain(scopeID); err != nil {
				errs = append(errs, err)
			}
		}

		for _, child := range scope.Children {
			if int(child) >= len(scopes) || child == scopeID || scopes[child].Parent != scopeID {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scopeID, child))
			}
		}

		errs = append(errs, t.checkNameIndex(scopeID, scope)...)

		// a rejected duplicate function keeps an unlinked scope
		if scope.Kind == ScopeFunction && scope.Func.IsValid() {
			fn := t.Symbols.Get(scope.Func)
			if !fn.IsFunction() || fn.Own != scopeID {
				errs = append(errs, fmt.Errorf("function scope %d not linked to its symbol", scopeID))
			}
		}
	}
	if len(scopes) > 1 && globals != 1 {
		errs = append(errs, fmt.Errorf("expected exactly one global scope, found %d", globals))
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		symbolID, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sym := &t.Symbols.data[idx]
		scope := t.Scopes.Get(sym.Scope)
		if scope == nil {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", symbolID, sym.Scope))
			continue
		}
		if scope.NameIndex[sym.Name] != symbolID {
			errs = append(errs, fmt.Errorf("symbol %d is not bound in scope %d", symbolID, sym.Scope))
		}
		if sym.Kind == SymbolFunction {
			own := t.Scopes.Get(sym.Own)
			if own == nil || own.Parent != sym.Scope {
				errs = append(errs, fmt.Errorf("function %d scope %d is not a child of its declaring scope", symbolID, sym.Own))
			}
			for _, p := range sym.Params {
				if ps := t.Symbols.Get(p); ps == nil || ps.Scope != sym.Own {
					errs = append(errs, fmt.Errorf("function %d parameter %d outside its scope", symbolID, p))
				}
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// checkChain follows parent links and requires them to end at the global
// scope within len(scopes) steps.
func (t *Table) checkChain(start ScopeID) error {
	limit := len(t.Scopes.data)
	cur := start
	for steps := 0; steps < limit; steps++ {
		s := t.Scopes.Get(cur)
		if s == nil {
			return fmt.Errorf("scope %d chain breaks at %d", start, cur)
		}
		if !s.Parent.IsValid() {
			if s.Kind != ScopeGlobal {
				return fmt.Errorf("scope %d chain ends at non-global scope %d", start, cur)
			}
			return nil
		}
		cur = s.Parent
	}
	return fmt.Errorf("scope %d chain has a cycle", start)
}

func (t *Table) checkNameIndex(scopeID ScopeID, scope *Scope) []error {
	var errs []error
	if len(scope.NameIndex) != len(scope.Symbols) {
		errs = append(errs, fmt.Errorf("scope %d has %d names for %d symbols", scopeID, len(scope.NameIndex), len(scope.Symbols)))
	}
	for name, id := range scope.NameIndex {
		sym := t.Symbols.Get(id)
		if sym == nil || sym.Name != name || sym.Scope != scopeID {
			errs = append(errs, fmt.Errorf("scope %d name index %d references foreign symbol %d", scopeID, name, id))
		}
	}
	return errs
}

func containsScope(list []ScopeID, id ScopeID) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbolID, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
