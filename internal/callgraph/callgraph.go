// Package callgraph derives a caller -> callee graph from a checked file.
package callgraph

import (
	"fmt"
	"strings"

	"cymbol/internal/ast"
	"cymbol/internal/sema"
)

// Graph holds functions as nodes and calls between them as edges.
// Nodes keep declaration order; callers and callees keep first-call order.
type Graph struct {
	Nodes []string
	// Callers lists every function with at least one outgoing edge.
	Callers []string
	Edges   map[string][]string
}

func newGraph() *Graph {
	return &Graph{Edges: make(map[string][]string)}
}

func (g *Graph) node(name string) {
	for _, n := range g.Nodes {
		if n == name {
			return
		}
	}
	g.Nodes = append(g.Nodes, name)
}

// Edge records a call from source to target. Repeated calls collapse
// into one edge.
func (g *Graph) Edge(source, target string) {
	targets, seen := g.Edges[source]
	if !seen {
		g.Callers = append(g.Callers, source)
	}
	for _, t := range targets {
		if t == target {
			return
		}
	}
	g.Edges[source] = append(targets, target)
}

// Callees returns the functions called by name.
func (g *Graph) Callees(name string) []string { return g.Edges[name] }

// String renders "edges: {main=[fact], fact=[fact]}, functions: [main, fact]".
func (g *Graph) String() string {
	var sb strings.Builder
	sb.WriteString("edges: {")
	for i, src := range g.Callers {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=[%s]", src, strings.Join(g.Edges[src], ", "))
	}
	sb.WriteString("}, functions: [")
	sb.WriteString(strings.Join(g.Nodes, ", "))
	sb.WriteString("]")
	return sb.String()
}

// DOT renders the graph for Graphviz.
func (g *Graph) DOT() string {
	var sb strings.Builder
	sb.WriteString("digraph G {\n")
	sb.WriteString("  ranksep=.25;\n")
	sb.WriteString("  edge [arrowsize=.5]\n")
	sb.WriteString("  node [shape=circle, fontname=\"ArialNarrow\",\n")
	sb.WriteString("        fontsize=12, fixedsize=true, height=.45];\n")
	sb.WriteString("  ")
	for _, n := range g.Nodes {
		sb.WriteString(n)
		sb.WriteString("; ")
	}
	sb.WriteString("\n")
	for _, src := range g.Callers {
		for _, dst := range g.Edges[src] {
			fmt.Fprintf(&sb, "  %s -> %s;\n", src, dst)
		}
	}
	sb.WriteString("}\n")
	return sb.String()
}

// Build walks fileID and collects one edge per distinct call inside a
// function body. A resolved call is attributed to the function symbol it
// bound to; an unresolved one keeps the name written at the call site.
// Calls in global initializers have no caller and are skipped.
func Build(b *ast.Builder, fileID ast.FileID, res sema.Result) *Graph {
	c := &collector{b: b, res: res, g: newGraph()}
	ast.Walk(b, fileID, c)
	return c.g
}

type collector struct {
	ast.BaseListener
	b      *ast.Builder
	res    sema.Result
	g      *Graph
	caller string
}

func (c *collector) EnterFuncDecl(_ ast.ItemID, fn *ast.FnItem) {
	c.caller = c.b.Name(fn.Name)
	c.g.node(c.caller)
}

func (c *collector) ExitFuncDecl(ast.ItemID, *ast.FnItem) {
	c.caller = ""
}

func (c *collector) ExitCall(id ast.ExprID, call *ast.ExprCallData) {
	if c.caller == "" {
		return
	}
	callee := c.b.Name(call.Callee)
	if sym, ok := c.res.SymbolOf(id); ok && sym.IsFunction() {
		callee = c.res.Table.Name(c.res.Bindings[id])
	}
	c.g.Edge(c.caller, callee)
}
