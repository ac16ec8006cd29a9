package callgraph

import (
	"testing"

	"github.com/go-test/deep"

	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/lexer"
	"cymbol/internal/parser"
	"cymbol/internal/sema"
	"cymbol/internal/source"
)

func build(t *testing.T, input string) *Graph {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("graph.cym", []byte(input))
	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(fs, lx, builder, parser.Options{MaxErrors: 100, Reporter: reporter})
	if bag.HasErrors() {
		t.Fatalf("syntax errors in %q", input)
	}
	return Build(builder, res.File, sema.Analyze(builder, res.File, sema.Options{Reporter: reporter}))
}

const sample = `
int main() { fact(); a(); }
float fact(int n) {
  print(n);
  if n == 0 then return 1;
  return n * fact(n - 1);
}
void a() { int x; b(); if false then { c(); d(); } }
void b() { c(); }
void c() { b(); }
void d() { }
void e() { }
`

func TestBuildSample(t *testing.T) {
	g := build(t, sample)
	if diff := deep.Equal(g.Nodes, []string{"main", "fact", "a", "b", "c", "d", "e"}); diff != nil {
		t.Errorf("nodes: %v", diff)
	}
	want := map[string][]string{
		"main": {"fact", "a"},
		"fact": {"print", "fact"},
		"a":    {"b", "c", "d"},
		"b":    {"c"},
		"c":    {"b"},
	}
	if diff := deep.Equal(g.Edges, want); diff != nil {
		t.Errorf("edges: %v", diff)
	}
}

func TestString(t *testing.T) {
	g := build(t, "void f() { g(); g(); f(); } void g() { }")
	want := "edges: {f=[g, f]}, functions: [f, g]"
	if got := g.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDOT(t *testing.T) {
	g := build(t, "void f() { g(); } void g() { }")
	want := "digraph G {\n" +
		"  ranksep=.25;\n" +
		"  edge [arrowsize=.5]\n" +
		"  node [shape=circle, fontname=\"ArialNarrow\",\n" +
		"        fontsize=12, fixedsize=true, height=.45];\n" +
		"  f; g; \n" +
		"  f -> g;\n" +
		"}\n"
	if got := g.DOT(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestGlobalInitializerCallsHaveNoCaller(t *testing.T) {
	g := build(t, "int f() { return 1; } int x = f();")
	if len(g.Callers) != 0 {
		t.Errorf("unexpected edges %v", g.Edges)
	}
}

func TestEmptyFile(t *testing.T) {
	g := build(t, "")
	if got := g.String(); got != "edges: {}, functions: []" {
		t.Errorf("got %q", got)
	}
}
