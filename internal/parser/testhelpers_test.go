package parser

import (
	"fmt"
	"strings"
	"testing"

	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/lexer"
	"cymbol/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag) {
	return parseSourceWithOptions(t, input, Options{})
}

func parseSourceWithOptions(t *testing.T, input string, opts Options) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cym", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)

	if opts.MaxErrors == 0 {
		opts.MaxErrors = 100
	}
	opts.Reporter = reporter

	result := ParseFile(fs, lx, builder, opts)
	if result.Bag == nil {
		result.Bag = bag
	}
	return builder, result.File, result.Bag
}

// mustParse fails the test on any diagnostic.
func mustParse(t *testing.T, input string) (*ast.Builder, *ast.File) {
	t.Helper()
	builder, fileID, bag := parseSource(t, input)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	return builder, builder.Files.Get(fileID)
}

func hasDiagnosticCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// sexpr renders an expression tree in prefix form, e.g. (+ 1 (* 2 x)).
func sexpr(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		return b.Name(d.Name)
	case ast.ExprIntLit, ast.ExprFloatLit, ast.ExprBoolLit:
		d, _ := b.Exprs.Literal(id)
		return d.Text
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		parts := []string{"call", b.Name(d.Callee)}
		for _, a := range d.Args {
			parts = append(parts, sexpr(b, a))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return "(" + d.Op.String() + " " + sexpr(b, d.Operand) + ")"
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return "(" + d.Op.String() + " " + sexpr(b, d.Left) + " " + sexpr(b, d.Right) + ")"
	case ast.ExprIndex:
		d, _ := b.Exprs.Index(id)
		return "(index " + sexpr(b, d.Target) + " " + sexpr(b, d.Index) + ")"
	case ast.ExprGroup:
		d, _ := b.Exprs.Group(id)
		return "(group " + sexpr(b, d.Inner) + ")"
	}
	return "?"
}

// globalInit parses `int x = <expr>;` and returns the rendered initializer.
func globalInit(t *testing.T, expr string) string {
	t.Helper()
	b, file := mustParse(t, "int x = "+expr+";")
	if len(file.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(file.Items))
	}
	v, ok := b.Items.Var(file.Items[0])
	if !ok {
		t.Fatalf("item is not a variable")
	}
	return sexpr(b, v.Value)
}
