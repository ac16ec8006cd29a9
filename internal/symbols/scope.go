package symbols

import (
	"cymbol/internal/ast"
	"cymbol/internal/source"
)

// ScopeKind enumerates scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // one per analysed file
	ScopeFunction           // parameters of one function
	ScopeLocal              // one per block
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeLocal:
		return "local"
	default:
		return "invalid"
	}
}

// ScopeOwnerKind distinguishes what AST element owns a scope.
type ScopeOwnerKind uint8

const (
	ScopeOwnerUnknown ScopeOwnerKind = iota
	ScopeOwnerFile
	ScopeOwnerItem
	ScopeOwnerStmt
)

// ScopeOwner is the identity of the AST node that opened a scope. It is a
// comparable value so it can key the scope map.
type ScopeOwner struct {
	Kind ScopeOwnerKind
	Item ast.ItemID
	Stmt ast.StmtID
}

func OwnerFile() ScopeOwner               { return ScopeOwner{Kind: ScopeOwnerFile} }
func OwnerItem(id ast.ItemID) ScopeOwner { return ScopeOwner{Kind: ScopeOwnerItem, Item: id} }
func OwnerStmt(id ast.StmtID) ScopeOwner { return ScopeOwner{Kind: ScopeOwnerStmt, Stmt: id} }

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	Kind      ScopeKind
	Parent    ScopeID // NoScopeID only for the global scope
	Owner     ScopeOwner
	Span      source.Span
	NameIndex map[source.StringID]SymbolID
	Symbols   []SymbolID // declaration order
	Children  []ScopeID
	Func      SymbolID // function symbol for ScopeFunction
}
