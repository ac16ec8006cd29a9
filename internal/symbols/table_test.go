package symbols

import (
	"strings"
	"testing"

	"github.com/go-test/deep"

	"cymbol/internal/ast"
	"cymbol/internal/source"
	"cymbol/internal/types"
)

func variable(t *Table, name string) Symbol {
	return Symbol{Name: t.Strings.Intern(name), Kind: SymbolVariable, Type: types.Int}
}

func TestGlobalScopeReuse(t *testing.T) {
	table := NewTable(Hints{}, nil)
	first := table.GlobalScope(source.Span{})
	second := table.GlobalScope(source.Span{})
	if !first.IsValid() || first != second {
		t.Fatalf("expected one global scope, got %v and %v", first, second)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDefineRejectsDuplicateInSameScope(t *testing.T) {
	table := NewTable(Hints{}, nil)
	g := table.GlobalScope(source.Span{})

	first, _, ok := table.Define(g, variable(table, "x"))
	if !ok {
		t.Fatal("first define failed")
	}
	second, prev, ok := table.Define(g, variable(table, "x"))
	if ok || second.IsValid() || prev != first {
		t.Fatalf("duplicate: id=%v prev=%v ok=%v", second, prev, ok)
	}
	if got, _ := table.ResolveLocal(g, table.Strings.Intern("x")); got != first {
		t.Fatalf("first declaration must stay bound, got %v", got)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestResolveInnermostFirst(t *testing.T) {
	table := NewTable(Hints{}, nil)
	g := table.GlobalScope(source.Span{})
	outer, _, _ := table.Define(g, variable(table, "x"))
	fnScope := table.NewScope(ScopeFunction, g, OwnerItem(1), source.Span{})
	local := table.NewScope(ScopeLocal, fnScope, OwnerStmt(1), source.Span{})
	inner, _, _ := table.Define(local, variable(table, "x"))

	x := table.Strings.Intern("x")
	if got, _ := table.Resolve(local, x); got != inner {
		t.Fatalf("inner lookup = %v, want %v", got, inner)
	}
	if got, _ := table.Resolve(fnScope, x); got != outer {
		t.Fatalf("function-scope lookup = %v, want %v", got, outer)
	}
	if _, ok := table.Resolve(local, table.Strings.Intern("missing")); ok {
		t.Fatal("missing name resolved")
	}
	if _, ok := table.ResolveLocal(fnScope, x); ok {
		t.Fatal("ResolveLocal must not look outward")
	}
	if table.Enclosing(local) != fnScope || table.Enclosing(g) != NoScopeID {
		t.Fatal("Enclosing mismatch")
	}
	if table.Depth(local) != 2 || table.Depth(g) != 0 {
		t.Fatalf("depth local=%d global=%d", table.Depth(local), table.Depth(g))
	}
}

func TestSiblingScopesAreInvisible(t *testing.T) {
	table := NewTable(Hints{}, nil)
	g := table.GlobalScope(source.Span{})
	a := table.NewScope(ScopeLocal, g, OwnerStmt(1), source.Span{})
	b := table.NewScope(ScopeLocal, g, OwnerStmt(2), source.Span{})
	table.Define(a, variable(table, "only_in_a"))
	if _, ok := table.Resolve(b, table.Strings.Intern("only_in_a")); ok {
		t.Fatal("sibling scope leaked a name")
	}
}

func TestFunctionSymbolLinks(t *testing.T) {
	table := NewTable(Hints{}, nil)
	g := table.GlobalScope(source.Span{})
	fn, _, _ := table.Define(g, Symbol{Name: table.Strings.Intern("f"), Kind: SymbolFunction, Type: types.Void})
	own := table.NewScope(ScopeFunction, g, OwnerItem(ast.ItemID(3)), source.Span{})
	table.LinkFunction(fn, own)
	for _, name := range []string{"a", "b"} {
		p, _, _ := table.Define(own, Symbol{Name: table.Strings.Intern(name), Kind: SymbolVariable, Type: types.Int, Flags: SymbolFlagParam})
		table.AddParam(fn, p)
	}
	if err := table.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	var names []string
	for _, p := range table.Symbol(fn).Params {
		names = append(names, table.Name(p))
	}
	if diff := deep.Equal(names, []string{"a", "b"}); diff != nil {
		t.Fatal(diff)
	}
	if table.Scope(own).Func != fn {
		t.Fatal("function scope does not point back to its symbol")
	}
}

func TestSealedTablePanics(t *testing.T) {
	table := NewTable(Hints{}, nil)
	g := table.GlobalScope(source.Span{})
	table.Seal()
	defer func() {
		if recover() == nil {
			t.Fatal("Define on sealed table did not panic")
		}
	}()
	table.Define(g, variable(table, "late"))
}

func TestValidateReportsCorruption(t *testing.T) {
	table := NewTable(Hints{}, nil)
	g := table.GlobalScope(source.Span{})
	local := table.NewScope(ScopeLocal, g, OwnerStmt(1), source.Span{})
	id, _, _ := table.Define(local, variable(table, "x"))

	// break the parent backlink and the name index by hand
	table.Scopes.Get(g).Children = nil
	delete(table.Scopes.Get(local).NameIndex, table.Symbol(id).Name)

	err := table.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	for _, want := range []string{"missing backlink", "is not bound"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
}

func TestScopeMapRecordOnce(t *testing.T) {
	m := ScopeMap{}
	if err := m.Record(OwnerStmt(4), 2); err != nil {
		t.Fatal(err)
	}
	if err := m.Record(OwnerStmt(4), 3); err == nil {
		t.Fatal("second record of the same owner must fail")
	}
	if id, ok := m.Lookup(OwnerStmt(4)); !ok || id != 2 {
		t.Fatalf("Lookup = %v,%v", id, ok)
	}
	if _, ok := m.Lookup(OwnerItem(4)); ok {
		t.Fatal("item and stmt owners with the same id must differ")
	}
}
