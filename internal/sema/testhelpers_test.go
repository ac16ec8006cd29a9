package sema

import (
	"fmt"
	"strings"
	"testing"

	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/lexer"
	"cymbol/internal/parser"
	"cymbol/internal/source"
	"cymbol/internal/symbols"
	"cymbol/internal/testkit"
)

type analyzed struct {
	builder *ast.Builder
	file    ast.FileID
	fs      *source.FileSet
	bag     *diag.Bag
	res     Result
}

func analyzeSource(t *testing.T, input string) analyzed {
	return analyzeSourceWithOptions(t, input, Options{})
}

func analyzeSourceWithOptions(t *testing.T, input string, opts Options) analyzed {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cym", []byte(input))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	pres := parser.ParseFile(fs, lx, builder, parser.Options{MaxErrors: 100, Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("syntax errors: %s", summary(bag))
	}
	if err := testkit.CheckSpanInvariants(builder, pres.File, fs.Get(fileID)); err != nil {
		t.Fatalf("span invariants violated: %v", err)
	}

	opts.Reporter = reporter
	res := Analyze(builder, pres.File, opts)
	if err := res.Table.Validate(); err != nil {
		t.Fatalf("table invariants violated: %v", err)
	}
	return analyzed{builder: builder, file: pres.File, fs: fs, bag: bag, res: res}
}

func summary(bag *diag.Bag) string {
	if bag.Len() == 0 {
		return "<none>"
	}
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(lines, "; ")
}

// messages returns "CODE message" for every diagnostic in report order.
func messages(bag *diag.Bag) []string {
	out := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID()+" "+d.Message)
	}
	return out
}

// refs collects variable references and calls named name, in source order.
type refCollector struct {
	ast.BaseListener
	b    *ast.Builder
	name string
	ids  []ast.ExprID
}

func (c *refCollector) ExitVarRef(id ast.ExprID, ref *ast.ExprIdentData) {
	if c.b.Name(ref.Name) == c.name {
		c.ids = append(c.ids, id)
	}
}

func (c *refCollector) ExitCall(id ast.ExprID, call *ast.ExprCallData) {
	if c.b.Name(call.Callee) == c.name {
		c.ids = append(c.ids, id)
	}
}

func (a analyzed) uses(name string) []ast.ExprID {
	c := &refCollector{b: a.builder, name: name}
	ast.Walk(a.builder, a.file, c)
	return c.ids
}

// globalSymbol resolves name in the global scope.
func (a analyzed) globalSymbol(t *testing.T, name string) symbols.SymbolID {
	t.Helper()
	id, ok := a.res.Table.ResolveLocal(a.res.Global, a.builder.StringsInterner.Intern(name))
	if !ok {
		t.Fatalf("%s is not declared globally", name)
	}
	return id
}
