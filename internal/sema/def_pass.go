package sema

import (
	"fmt"

	"cymbol/internal/ast"
	"cymbol/internal/symbols"
	"cymbol/internal/types"
)

// defPass creates the scope tree and declares every function, parameter
// and variable. Apart from duplicates it reports nothing.
type defPass struct {
	ast.BaseListener
	b        *ast.Builder
	res      *Result
	resolver *symbols.Resolver
	// функция, чьи параметры сейчас объявляются; NoSymbolID у отвергнутого дубликата
	fn symbols.SymbolID
}

func newDefPass(b *ast.Builder, res *Result, resolver *symbols.Resolver) *defPass {
	return &defPass{b: b, res: res, resolver: resolver}
}

func (d *defPass) EnterFile(_ ast.FileID, f *ast.File) {
	d.resolver.Push(d.res.Table.GlobalScope(f.Span))
}

func (d *defPass) ExitFile(ast.FileID, *ast.File) {
	d.resolver.Leave(d.res.Table.Global)
}

func (d *defPass) EnterFuncDecl(id ast.ItemID, fn *ast.FnItem) {
	sym := symbols.Symbol{
		Name: fn.Name,
		Kind: symbols.SymbolFunction,
		Type: types.MustFromToken(fn.ReturnType.Kind),
		Span: fn.NameSpan,
	}
	if d.resolver.CurrentScope() == d.res.Table.Global {
		sym.Flags |= symbols.SymbolFlagGlobal
	}
	fnID, ok := d.resolver.Declare(sym)

	// тело дубликата всё равно получает свою область, чтобы проверить ссылки внутри
	owner := symbols.OwnerItem(id)
	scope := d.resolver.Enter(symbols.ScopeFunction, owner, fn.Span)
	d.record(owner, scope)
	if ok {
		d.res.Table.LinkFunction(fnID, scope)
	}
	d.fn = fnID
}

func (d *defPass) ExitFuncDecl(id ast.ItemID, _ *ast.FnItem) {
	d.resolver.Leave(d.res.Scopes[symbols.OwnerItem(id)])
	d.fn = symbols.NoSymbolID
}

func (d *defPass) ExitParam(_ ast.FnParamID, p *ast.FnParam) {
	id, ok := d.resolver.Declare(symbols.Symbol{
		Name:  p.Name,
		Kind:  symbols.SymbolVariable,
		Type:  types.MustFromToken(p.Type.Kind),
		Span:  p.NameSpan,
		Flags: symbols.SymbolFlagParam,
	})
	if ok && d.fn.IsValid() {
		d.res.Table.AddParam(d.fn, id)
	}
}

func (d *defPass) EnterBlock(id ast.StmtID, _ *ast.BlockStmt) {
	owner := symbols.OwnerStmt(id)
	scope := d.resolver.Enter(symbols.ScopeLocal, owner, d.b.Stmts.Get(id).Span)
	d.record(owner, scope)
}

func (d *defPass) ExitBlock(id ast.StmtID, _ *ast.BlockStmt) {
	d.resolver.Leave(d.res.Scopes[symbols.OwnerStmt(id)])
}

func (d *defPass) ExitVarDecl(item ast.ItemID, _ ast.StmtID, v *ast.VarDecl) {
	sym := symbols.Symbol{
		Name: v.Name,
		Kind: symbols.SymbolVariable,
		Type: types.MustFromToken(v.Type.Kind),
		Span: v.NameSpan,
	}
	if item.IsValid() {
		sym.Flags |= symbols.SymbolFlagGlobal
	}
	d.resolver.Declare(sym)
}

func (d *defPass) record(owner symbols.ScopeOwner, scope symbols.ScopeID) {
	if err := d.res.Scopes.Record(owner, scope); err != nil {
		panic(fmt.Errorf("sema: %w", err))
	}
}
