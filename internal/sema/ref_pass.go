package sema

import (
	"fmt"

	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/source"
	"cymbol/internal/symbols"
)

// refPass re-enters the scopes recorded by defPass and resolves every
// variable reference and callee. It only reads the table.
type refPass struct {
	ast.BaseListener
	b        *ast.Builder
	res      *Result
	reporter diag.Reporter
	resolver *symbols.Resolver
}

func newRefPass(b *ast.Builder, res *Result, reporter diag.Reporter, resolver *symbols.Resolver) *refPass {
	return &refPass{b: b, res: res, reporter: reporter, resolver: resolver}
}

func (r *refPass) EnterFile(ast.FileID, *ast.File) {
	r.resolver.Push(r.res.Global)
}

func (r *refPass) ExitFile(ast.FileID, *ast.File) {
	r.resolver.Leave(r.res.Global)
}

func (r *refPass) EnterFuncDecl(id ast.ItemID, _ *ast.FnItem) {
	r.resolver.Push(r.scope(symbols.OwnerItem(id)))
}

func (r *refPass) ExitFuncDecl(id ast.ItemID, _ *ast.FnItem) {
	r.resolver.Leave(r.scope(symbols.OwnerItem(id)))
}

func (r *refPass) EnterBlock(id ast.StmtID, _ *ast.BlockStmt) {
	r.resolver.Push(r.scope(symbols.OwnerStmt(id)))
}

func (r *refPass) ExitBlock(id ast.StmtID, _ *ast.BlockStmt) {
	r.resolver.Leave(r.scope(symbols.OwnerStmt(id)))
}

func (r *refPass) ExitVarRef(id ast.ExprID, ref *ast.ExprIdentData) {
	span := r.b.Exprs.Get(id).Span
	symID, ok := r.resolver.Lookup(ref.Name)
	if !ok {
		r.report(diag.SemaUndefinedVariable, span, "no such variable: "+r.b.Name(ref.Name), symbols.NoSymbolID)
		return
	}
	if r.res.Table.Symbol(symID).IsFunction() {
		r.report(diag.SemaKindMismatch, span, r.b.Name(ref.Name)+" is not a variable", symID)
		return
	}
	r.res.Bindings[id] = symID
}

func (r *refPass) ExitCall(id ast.ExprID, call *ast.ExprCallData) {
	symID, ok := r.resolver.Lookup(call.Callee)
	if !ok {
		r.report(diag.SemaUndefinedFunction, call.CalleeSpan, "no such function: "+r.b.Name(call.Callee), symbols.NoSymbolID)
		return
	}
	if r.res.Table.Symbol(symID).IsVariable() {
		r.report(diag.SemaKindMismatch, call.CalleeSpan, r.b.Name(call.Callee)+" is not a function", symID)
		return
	}
	r.res.Bindings[id] = symID
}

// scope returns the scope defPass recorded for owner. A miss means the
// tree changed between the passes.
func (r *refPass) scope(owner symbols.ScopeOwner) symbols.ScopeID {
	id, ok := r.res.Scopes.Lookup(owner)
	if !ok {
		panic(fmt.Sprintf("sema: no scope recorded for %+v", owner))
	}
	return id
}

func (r *refPass) report(code diag.Code, span source.Span, msg string, decl symbols.SymbolID) {
	if r.reporter == nil {
		return
	}
	b := diag.ReportError(r.reporter, code, span, msg)
	if sym := r.res.Table.Symbol(decl); sym != nil {
		b.WithNote(sym.Span, fmt.Sprintf("%s '%s' declared here", sym.Kind, r.b.Name(sym.Name)))
	}
	b.Emit()
}
