package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cymbol/internal/sema"
	"cymbol/internal/source"
	"cymbol/internal/symbols"
)

// FormatScopesPretty prints the scope tree with the symbols each scope
// declares, in declaration order:
//
//	global [int x, int f(int n)]
//	└─ function f [int n]
//	   └─ local [int y]
func FormatScopesPretty(w io.Writer, res *sema.Result, fs *source.FileSet) error {
	if res == nil || res.Table == nil || !res.Global.IsValid() {
		return fmt.Errorf("no semantic result")
	}
	fmt.Fprintln(w, scopeLabel(res.Table, res.Global, fs))
	writeScopeChildren(w, res.Table, res.Global, "", fs)
	return nil
}

func writeScopeChildren(w io.Writer, t *symbols.Table, id symbols.ScopeID, prefix string, fs *source.FileSet) {
	children := t.Scope(id).Children
	for i, child := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, scopeLabel(t, child, fs))
		writeScopeChildren(w, t, child, prefix+next, fs)
	}
}

func scopeLabel(t *symbols.Table, id symbols.ScopeID, fs *source.FileSet) string {
	scope := t.Scope(id)
	head := scope.Kind.String()
	if scope.Func.IsValid() {
		head += " " + t.Name(scope.Func)
	}
	decls := make([]string, 0, len(scope.Symbols))
	for _, symID := range scope.Symbols {
		decls = append(decls, symbolSignature(t, symID))
	}
	label := fmt.Sprintf("%s [%s]", head, strings.Join(decls, ", "))
	if fs != nil && scope.Kind != symbols.ScopeGlobal {
		label += " @ " + formatSpan(scope.Span, fs)
	}
	return label
}

// symbolSignature renders "int x" or "int f(int a, float b)".
func symbolSignature(t *symbols.Table, id symbols.SymbolID) string {
	sym := t.Symbol(id)
	sig := sym.Type.String() + " " + t.Name(id)
	if !sym.IsFunction() {
		return sig
	}
	params := make([]string, 0, len(sym.Params))
	for _, p := range sym.Params {
		params = append(params, symbolSignature(t, p))
	}
	return sig + "(" + strings.Join(params, ", ") + ")"
}

// FormatScopesJSON emits the semantic dump alone.
func FormatScopesJSON(w io.Writer, in *SemanticsInput) error {
	out, err := buildSemanticsOutput(in)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
