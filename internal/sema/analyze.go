package sema

import (
	"strconv"

	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/symbols"
	"cymbol/internal/trace"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
	// WarnShadowing reports SEM3004 when a declaration hides an outer name.
	WarnShadowing bool
	Hints         symbols.Hints
	// Tracer receives one span per pass and, at trace.LevelScope, an
	// enter/leave event for every scope either pass visits.
	Tracer     trace.Tracer
	ParentSpan uint64
}

// Result stores semantic artefacts produced by the analyzer.
type Result struct {
	Table  *symbols.Table
	Global symbols.ScopeID
	// Scopes maps every function declaration and block to its scope.
	Scopes symbols.ScopeMap
	// Bindings holds the symbol every successfully resolved variable
	// reference and call resolved to.
	Bindings map[ast.ExprID]symbols.SymbolID
}

// Analyze runs the definition pass over the whole file, seals the table
// and then runs the reference pass. The file must be free of syntax errors.
func Analyze(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		Table:    symbols.NewTable(opts.Hints, builder.StringsInterner),
		Scopes:   make(symbols.ScopeMap),
		Bindings: make(map[ast.ExprID]symbols.SymbolID),
	}
	if builder.Files.Get(fileID) == nil {
		return res
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}

	span := trace.Begin(tracer, trace.CatPass, "sema.def", opts.ParentSpan)
	def := newDefPass(builder, &res, symbols.NewResolver(res.Table, symbols.ResolverOptions{
		Reporter:      opts.Reporter,
		WarnShadowing: opts.WarnShadowing,
		OnScope:       scopeTracer(tracer, "def", span.ID()),
	}))
	ast.Walk(builder, fileID, def)
	res.Global = res.Table.Global
	span.WithExtra("scopes", strconv.Itoa(res.Table.Scopes.Len())).
		WithExtra("symbols", strconv.Itoa(res.Table.Symbols.Len())).
		End("")

	res.Table.Seal()

	span = trace.Begin(tracer, trace.CatPass, "sema.ref", opts.ParentSpan)
	ref := newRefPass(builder, &res, opts.Reporter, symbols.NewResolver(res.Table, symbols.ResolverOptions{
		Reporter: opts.Reporter,
		OnScope:  scopeTracer(tracer, "ref", span.ID()),
	}))
	ast.Walk(builder, fileID, ref)
	span.WithExtra("bindings", strconv.Itoa(len(res.Bindings))).End("")

	return res
}

// scopeTracer returns an OnScope hook emitting scope moves under the pass
// span, or nil when the tracer does not admit them.
func scopeTracer(t trace.Tracer, pass string, parent uint64) func(bool, symbols.ScopeID, int) {
	if !t.Level().Admits(trace.CatScope) {
		return nil
	}
	return func(enter bool, scope symbols.ScopeID, depth int) {
		m := trace.ScopeMove{Pass: pass, Scope: uint32(scope), Depth: depth}
		if enter {
			trace.EnterScope(t, parent, m)
		} else {
			trace.LeaveScope(t, parent, m)
		}
	}
}

// SymbolOf returns the symbol a variable reference or call resolved to.
func (r Result) SymbolOf(expr ast.ExprID) (*symbols.Symbol, bool) {
	id, ok := r.Bindings[expr]
	if !ok {
		return nil, false
	}
	return r.Table.Symbol(id), true
}

// ScopeOf returns the scope recorded for a function declaration or block.
func (r Result) ScopeOf(owner symbols.ScopeOwner) (symbols.ScopeID, bool) {
	return r.Scopes.Lookup(owner)
}
