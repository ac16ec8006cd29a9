package sema

import (
	"strings"
	"testing"

	"github.com/go-test/deep"

	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/source"
	"cymbol/internal/symbols"
	"cymbol/internal/trace"
	"cymbol/internal/types"
)

func TestScenarios(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "call across functions",
			input: "int f(int x) { int y; y = x; return y; } int g() { return f(5); }",
			want:  []string{},
		},
		{
			name:  "undefined variable",
			input: "void h() { z = 1; }",
			want:  []string{"SEM3005 no such variable: z"},
		},
		{
			name:  "function used as variable",
			input: "int f() { return 0; } void g() { f = 1; }",
			want:  []string{"SEM3007 f is not a variable"},
		},
		{
			name:  "variable called",
			input: "int x; void g() { x(); }",
			want:  []string{"SEM3007 x is not a function"},
		},
		{
			name:  "local shadows global",
			input: "int x; void g() { int x; x = 5; }",
			want:  []string{},
		},
		{
			name:  "undefined function",
			input: "void g() { nope(1); }",
			want:  []string{"SEM3006 no such function: nope"},
		},
		{
			name:  "errors do not stop the pass",
			input: "void g() { a = b(c); d(); }",
			want: []string{
				"SEM3005 no such variable: a",
				"SEM3005 no such variable: c",
				"SEM3006 no such function: b",
				"SEM3006 no such function: d",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := analyzeSource(t, tt.input)
			if diff := deep.Equal(messages(a.bag), tt.want); diff != nil {
				t.Error(diff)
			}
		})
	}
}

func TestDiagnosticLocationIsTheIdentifier(t *testing.T) {
	a := analyzeSource(t, "int x;\nvoid g() {\n\tx();\n\tq = 1;\n}")
	items := a.bag.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 diagnostics, got %s", summary(a.bag))
	}
	start, end := a.fs.Resolve(items[0].Primary)
	if start.Line != 3 || start.Col != 2 || end.Col != 3 {
		t.Errorf("x() reported at %v-%v, want 3:2-3:3", start, end)
	}
	start, _ = a.fs.Resolve(items[1].Primary)
	if start.Line != 4 || start.Col != 2 {
		t.Errorf("q reported at %v, want 4:2", start)
	}
}

func TestKindMismatchPointsAtDeclaration(t *testing.T) {
	a := analyzeSource(t, "int x; void g() { x(); }")
	d := a.bag.Items()[0]
	if len(d.Notes) != 1 {
		t.Fatalf("expected a note, got %+v", d.Notes)
	}
	if d.Notes[0].Span.Start != 4 || d.Notes[0].Msg != "variable 'x' declared here" {
		t.Errorf("unexpected note %+v", d.Notes[0])
	}
}

func TestForwardAndMutualRecursion(t *testing.T) {
	input := `
int even(int n) { if n == 0 then return 1; return odd(n - 1); }
int odd(int n) { if n == 0 then return 0; return even(n - 1); }
int fact(int n) { if n < 2 then return 1; return n * fact(n - 1); }
void main() { later(); }
void later() { }
`
	a := analyzeSource(t, input)
	if a.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.bag))
	}
	for _, name := range []string{"odd", "even", "fact", "later"} {
		want := a.globalSymbol(t, name)
		for _, use := range a.uses(name) {
			if got := a.res.Bindings[use]; got != want {
				t.Errorf("%s: call bound to %d, want %d", name, got, want)
			}
		}
	}
}

func TestShadowingYieldsDistinctSymbols(t *testing.T) {
	a := analyzeSource(t, "int x; void g() { int x; x = 5; { float x; x = 1.0; } x = 2; } void h() { x = 3; }")
	if a.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.bag))
	}
	uses := a.uses("x")
	if len(uses) != 4 {
		t.Fatalf("expected 4 uses of x, got %d", len(uses))
	}

	global := a.globalSymbol(t, "x")
	outerLocal := a.res.Bindings[uses[0]]
	inner := a.res.Bindings[uses[1]]

	if outerLocal == global || inner == global || inner == outerLocal {
		t.Fatalf("expected three distinct symbols, got global=%d local=%d inner=%d", global, outerLocal, inner)
	}
	if got := a.res.Bindings[uses[2]]; got != outerLocal {
		t.Errorf("after the inner block x must bind to the function local, got %d", got)
	}
	if got := a.res.Bindings[uses[3]]; got != global {
		t.Errorf("x in h must bind to the global, got %d", got)
	}

	tbl := a.res.Table
	if tbl.Symbol(global).Type != types.Int || tbl.Symbol(inner).Type != types.Float {
		t.Errorf("types not kept apart: global=%s inner=%s", tbl.Symbol(global).Type, tbl.Symbol(inner).Type)
	}
	if tbl.Symbol(global).Flags&symbols.SymbolFlagGlobal == 0 {
		t.Errorf("global x must carry the global flag")
	}
}

func TestSiblingScopesAreInvisible(t *testing.T) {
	a := analyzeSource(t, "void f() { { int a; a = 1; } { a = 2; } } void g() { a = 3; }")
	want := []string{
		"SEM3005 no such variable: a",
		"SEM3005 no such variable: a",
	}
	if diff := deep.Equal(messages(a.bag), want); diff != nil {
		t.Error(diff)
	}
}

func TestParametersVisibleInBody(t *testing.T) {
	a := analyzeSource(t, "float f(int a, float b) { return a * b; }")
	if a.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.bag))
	}

	tbl := a.res.Table
	fn := tbl.Symbol(a.globalSymbol(t, "f"))
	if fn.Kind != symbols.SymbolFunction || fn.Type != types.Float {
		t.Fatalf("unexpected function symbol %+v", fn)
	}
	var names []string
	for _, p := range fn.Params {
		sym := tbl.Symbol(p)
		names = append(names, tbl.Name(p)+":"+sym.Type.String())
		if sym.Scope != fn.Own || sym.Flags&symbols.SymbolFlagParam == 0 {
			t.Errorf("param %s not declared in the function scope", tbl.Name(p))
		}
	}
	if diff := deep.Equal(names, []string{"a:int", "b:float"}); diff != nil {
		t.Error(diff)
	}

	own := tbl.Scope(fn.Own)
	if own.Kind != symbols.ScopeFunction || own.Func != a.globalSymbol(t, "f") || own.Parent != a.res.Global {
		t.Errorf("function scope not linked: %+v", own)
	}
}

func TestBodyBlockIsNestedInFunctionScope(t *testing.T) {
	// параметр и локальная переменная живут в разных областях
	a := analyzeSource(t, "void f(int x) { int x; x = 1; }")
	if a.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.bag))
	}
	tbl := a.res.Table
	use := a.uses("x")[0]
	local := tbl.Symbol(a.res.Bindings[use])
	if local.Flags&symbols.SymbolFlagParam != 0 {
		t.Fatalf("x must bind to the body local, not the parameter")
	}
	body := tbl.Scope(local.Scope)
	if body.Kind != symbols.ScopeLocal || tbl.Scope(body.Parent).Kind != symbols.ScopeFunction {
		t.Errorf("body scope must be a local scope under the function scope")
	}
}

func TestScopeMapCoversFunctionsAndBlocks(t *testing.T) {
	a := analyzeSource(t, "int g; void f() { { } if g then { } else { } } int h() { return 0; }")
	fns, blocks := 0, 0
	for owner, scope := range a.res.Scopes {
		kind := a.res.Table.Scope(scope).Kind
		switch owner.Kind {
		case symbols.ScopeOwnerItem:
			fns++
			if kind != symbols.ScopeFunction {
				t.Errorf("item owner mapped to %s scope", kind)
			}
		case symbols.ScopeOwnerStmt:
			blocks++
			if kind != symbols.ScopeLocal {
				t.Errorf("block owner mapped to %s scope", kind)
			}
		default:
			t.Errorf("unexpected owner %+v", owner)
		}
	}
	// two bodies plus three nested blocks
	if fns != 2 || blocks != 5 {
		t.Errorf("scope map has %d functions and %d blocks, want 2 and 5", fns, blocks)
	}
	if a.res.Table.Scopes.Len() != 1+fns+blocks {
		t.Errorf("every scope except the global one must be in the map")
	}
}

func TestDeepNestingKeepsStackDiscipline(t *testing.T) {
	const depth = 64
	var sb strings.Builder
	sb.WriteString("int v; void f() ")
	for i := 0; i < depth; i++ {
		sb.WriteString("{ int v; ")
	}
	sb.WriteString("v = 1; ")
	for i := 0; i < depth; i++ {
		sb.WriteString("} v = 2; ")
	}
	// последнее "v = 2;" стоит после тела функции, уберём его
	input := strings.TrimSuffix(sb.String(), " v = 2; ") + " void g() { v = 3; }"

	a := analyzeSource(t, input)
	if a.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(a.bag))
	}

	tbl := a.res.Table
	uses := a.uses("v")
	innermost := tbl.Symbol(a.res.Bindings[uses[0]])
	if got := tbl.Depth(innermost.Scope); got != depth+1 {
		t.Errorf("innermost v declared at depth %d, want %d", got, depth+1)
	}
	// each "v = 2" after closing block k binds to the declaration one level up
	for i, use := range uses[1 : len(uses)-1] {
		sym := tbl.Symbol(a.res.Bindings[use])
		if got, want := tbl.Depth(sym.Scope), depth-i; got != want {
			t.Errorf("use %d: bound at depth %d, want %d", i+1, got, want)
		}
	}
	last := a.res.Bindings[uses[len(uses)-1]]
	if tbl.Symbol(last).Scope != a.res.Global {
		t.Errorf("v in g must bind to the global")
	}
}

func TestDuplicateDefinitionFirstWins(t *testing.T) {
	a := analyzeSource(t, "int x;\nfloat x;\nvoid g() { x = 1; }")
	items := a.bag.Items()
	if len(items) != 1 || items[0].Code != diag.SemaDuplicateSymbol {
		t.Fatalf("expected one duplicate diagnostic, got %s", summary(a.bag))
	}
	if len(items[0].Notes) != 1 || items[0].Notes[0].Msg != "previous declaration here" || items[0].Notes[0].Span.Start != 4 {
		t.Errorf("unexpected notes %+v", items[0].Notes)
	}
	sym := a.res.Table.Symbol(a.res.Bindings[a.uses("x")[0]])
	if sym.Type != types.Int {
		t.Errorf("x must stay bound to the first declaration, got %s", sym.Type)
	}
	if n := len(a.res.Table.Scope(a.res.Global).Symbols); n != 2 {
		t.Errorf("global scope holds %d symbols, want 2 (x and g)", n)
	}
}

func TestDuplicateFunctionBodyIsStillChecked(t *testing.T) {
	a := analyzeSource(t, "void f(int a) { }\nvoid f(int b) { y = b; }")
	want := []string{
		"SEM3002 duplicate declaration of 'f'",
		"SEM3005 no such variable: y",
	}
	if diff := deep.Equal(messages(a.bag), want); diff != nil {
		t.Error(diff)
	}
	b := a.uses("b")
	if len(b) != 1 {
		t.Fatalf("expected one use of b")
	}
	if _, ok := a.res.Bindings[b[0]]; !ok {
		t.Errorf("parameter of the rejected duplicate must still resolve")
	}
	fn := a.res.Table.Symbol(a.globalSymbol(t, "f"))
	if len(fn.Params) != 1 || a.res.Table.Name(fn.Params[0]) != "a" {
		t.Errorf("first f must keep its own parameters")
	}
}

func TestDuplicateParameter(t *testing.T) {
	a := analyzeSource(t, "void f(int a, float a) { }")
	if diff := deep.Equal(messages(a.bag), []string{"SEM3002 duplicate declaration of 'a'"}); diff != nil {
		t.Error(diff)
	}
	fn := a.res.Table.Symbol(a.globalSymbol(t, "f"))
	if len(fn.Params) != 1 {
		t.Errorf("rejected parameter must not be appended, got %d params", len(fn.Params))
	}
}

func TestWarnShadowing(t *testing.T) {
	input := "int x; void g() { int x; x = 5; }"
	a := analyzeSourceWithOptions(t, input, Options{WarnShadowing: true})
	items := a.bag.Items()
	if len(items) != 1 {
		t.Fatalf("expected one warning, got %s", summary(a.bag))
	}
	if items[0].Code != diag.SemaShadowSymbol || items[0].Severity != diag.SevWarning {
		t.Errorf("unexpected diagnostic %+v", items[0])
	}
	if a.bag.HasErrors() {
		t.Errorf("shadowing must not be an error")
	}
}

func TestTableSealedAfterAnalyze(t *testing.T) {
	a := analyzeSource(t, "int x;")
	if !a.res.Table.Sealed() {
		t.Fatalf("table must be sealed after analysis")
	}
	defer func() {
		if recover() == nil {
			t.Errorf("define on a sealed table must panic")
		}
	}()
	a.res.Table.Define(a.res.Global, symbols.Symbol{Name: a.builder.StringsInterner.Intern("y"), Kind: symbols.SymbolVariable})
}

func TestSymbolOf(t *testing.T) {
	a := analyzeSource(t, "int f() { return 1; } void g() { f(); }")
	call := a.uses("f")[0]
	sym, ok := a.res.SymbolOf(call)
	if !ok || !sym.IsFunction() {
		t.Fatalf("call must resolve to the function symbol")
	}
	if _, ok := a.res.SymbolOf(ast.NoExprID); ok {
		t.Errorf("NoExprID must not resolve")
	}
}

func TestAnalyzeEmptyFile(t *testing.T) {
	a := analyzeSource(t, "")
	if a.bag.Len() != 0 || !a.res.Global.IsValid() {
		t.Fatalf("empty file must still get a global scope")
	}
	if len(a.res.Scopes) != 0 {
		t.Errorf("no scopes expected in the map")
	}
}

func TestMissingTypePanics(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{}, nil)
	file := b.NewFile(source.Span{})
	b.PushItem(file, b.Items.NewVar(ast.VarDecl{Name: b.StringsInterner.Intern("x")}))
	defer func() {
		if recover() == nil {
			t.Errorf("declaration without a type must panic")
		}
	}()
	Analyze(b, file, Options{})
}

func TestScopeMovesAreTraced(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelScope)
	analyzeSourceWithOptions(t, "void f() { }", Options{Tracer: ring})

	var passes []string
	var depths []int
	var moves []trace.Event
	for _, ev := range ring.Snapshot() {
		if ev.Move == nil {
			continue
		}
		moves = append(moves, ev)
		passes = append(passes, ev.Move.Pass)
		depths = append(depths, ev.Move.Depth)
	}
	wantPasses := []string{"def", "def", "def", "def", "def", "def", "ref", "ref", "ref", "ref", "ref", "ref"}
	if diff := deep.Equal(passes, wantPasses); diff != nil {
		t.Fatal(diff)
	}
	if diff := deep.Equal(depths, []int{1, 2, 3, 2, 1, 0, 1, 2, 3, 2, 1, 0}); diff != nil {
		t.Error(diff)
	}
	// global, function, body block: left in reverse order
	for i := 0; i < 3; i++ {
		enter, leave := moves[i], moves[5-i]
		if enter.Kind != trace.KindEnter || leave.Kind != trace.KindLeave || enter.Move.Scope != leave.Move.Scope {
			t.Errorf("move %d: enter %+v does not match leave %+v", i, enter.Move, leave.Move)
		}
	}
}

func TestScopeMovesFilteredBelowScopeLevel(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelPhase)
	analyzeSourceWithOptions(t, "void f() { int x; }", Options{Tracer: ring})

	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Move != nil {
			t.Fatalf("scope move traced at phase level: %+v", ev)
		}
		if ev.Kind == trace.KindEnd {
			names = append(names, ev.Name)
		}
	}
	if diff := deep.Equal(names, []string{"sema.def", "sema.ref"}); diff != nil {
		t.Error(diff)
	}
}
