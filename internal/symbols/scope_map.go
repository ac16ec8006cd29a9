package symbols

import "fmt"

// ScopeMap links scope-owning AST nodes to the scopes created for them.
// The definition pass writes it; later passes only read.
type ScopeMap map[ScopeOwner]ScopeID

// Record stores owner -> scope. Recording the same owner twice is a
// traversal bug and returns an error.
func (m ScopeMap) Record(owner ScopeOwner, scope ScopeID) error {
	if prev, ok := m[owner]; ok {
		return fmt.Errorf("scope owner %+v already mapped to scope %d", owner, prev)
	}
	m[owner] = scope
	return nil
}

func (m ScopeMap) Lookup(owner ScopeOwner) (ScopeID, bool) {
	id, ok := m[owner]
	return id, ok
}
