package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"cymbol/internal/diag"
	"cymbol/internal/lexer"
	"cymbol/internal/source"
	"cymbol/internal/token"
)

// testReporter собирает все диагностики лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cym", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Kind)
	}
	return out
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	toks := lx.All()
	got := kinds(toks)
	want = append(want, token.EOF)
	if len(got) != len(want) {
		t.Fatalf("%q: got kinds %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("%q: unexpected diagnostics %v", input, rep.ErrorMessages())
	}
	return toks
}

func TestFunctionDeclTokens(t *testing.T) {
	toks := expectKinds(t, "int f(int x, float y) { return x; }",
		token.KwInt, token.Ident, token.LParen, token.KwInt, token.Ident, token.Comma,
		token.KwFloat, token.Ident, token.RParen, token.LBrace, token.KwReturn,
		token.Ident, token.Semicolon, token.RBrace,
	)
	if toks[1].Text != "f" || toks[4].Text != "x" {
		t.Fatalf("unexpected texts %q %q", toks[1].Text, toks[4].Text)
	}
	if toks[1].Span.Start != 4 || toks[1].Span.End != 5 {
		t.Fatalf("span of f = %v", toks[1].Span)
	}
}

func TestOperators(t *testing.T) {
	expectKinds(t, "a == b != c < d > e = -f + g * h / !i",
		token.Ident, token.EqEq, token.Ident, token.BangEq, token.Ident, token.Lt,
		token.Ident, token.Gt, token.Ident, token.Assign, token.Minus, token.Ident,
		token.Plus, token.Ident, token.Star, token.Ident, token.Slash, token.Bang, token.Ident,
	)
}

func TestKeywordsAndLiterals(t *testing.T) {
	toks := expectKinds(t, "if x then y else return true false void bool 42 3.14 .5 7.",
		token.KwIf, token.Ident, token.KwThen, token.Ident, token.KwElse, token.KwReturn,
		token.KwTrue, token.KwFalse, token.KwVoid, token.KwBool,
		token.IntLit, token.FloatLit, token.FloatLit, token.FloatLit,
	)
	if toks[11].Text != "3.14" || toks[12].Text != ".5" {
		t.Fatalf("literal texts %q %q", toks[11].Text, toks[12].Text)
	}
}

func TestIndexExpression(t *testing.T) {
	expectKinds(t, "a[i+1]",
		token.Ident, token.LBracket, token.Ident, token.Plus, token.IntLit, token.RBracket,
	)
}

func TestTriviaAttachedToNextToken(t *testing.T) {
	lx, _ := makeTestLexer("// header\n/* block /* nested */ */ int x;")
	tok := lx.Next()
	if tok.Kind != token.KwInt {
		t.Fatalf("first token %v", tok.Kind)
	}
	var got []token.TriviaKind
	for _, tr := range tok.Leading {
		got = append(got, tr.Kind)
	}
	want := []token.TriviaKind{token.TriviaLineComment, token.TriviaNewline, token.TriviaBlockComment, token.TriviaSpace}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("trivia = %v, want %v", got, want)
	}
	if tok.Leading[2].Text != "/* block /* nested */ */" {
		t.Fatalf("block comment text %q", tok.Leading[2].Text)
	}
}

func TestDivisionIsNotComment(t *testing.T) {
	expectKinds(t, "a / b", token.Ident, token.Slash, token.Ident)
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("x y")
	p1 := lx.Peek()
	p2 := lx.Peek()
	n := lx.Next()
	if p1.Text != "x" || p2.Text != "x" || n.Text != "x" {
		t.Fatalf("peek/next mismatch: %q %q %q", p1.Text, p2.Text, n.Text)
	}
	if lx.Next().Text != "y" {
		t.Fatal("second token lost")
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("  ")
	for i := 0; i < 3; i++ {
		if k := lx.Next().Kind; k != token.EOF {
			t.Fatalf("call %d: got %v", i, k)
		}
	}
}

func TestUnicodeIdentifierNormalized(t *testing.T) {
	decomposed := "cafe\u0301"
	lx, rep := makeTestLexer("int " + decomposed + ";")
	toks := lx.All()
	if len(rep.diagnostics) != 0 {
		t.Fatalf("diagnostics: %v", rep.ErrorMessages())
	}
	if toks[1].Kind != token.Ident || toks[1].Text != "caf\u00e9" {
		t.Fatalf("ident = %v %q", toks[1].Kind, toks[1].Text)
	}
	if int(toks[1].Span.Len()) != len(decomposed) {
		t.Fatalf("span must cover source bytes, got %d", toks[1].Span.Len())
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		input string
		code  diag.Code
	}{
		{"int x = 12ab;", diag.LexBadNumber},
		{"int x = 1.2.3;", diag.LexBadNumber},
		{"x $ y", diag.LexUnknownChar},
		{"a → b", diag.LexUnknownChar},
		{"/* never closed", diag.LexUnterminatedBlockComment},
	}
	for _, tc := range cases {
		lx, rep := makeTestLexer(tc.input)
		lx.All()
		if len(rep.diagnostics) != 1 {
			t.Fatalf("%q: expected one diagnostic, got %v", tc.input, rep.ErrorMessages())
		}
		if rep.diagnostics[0].Code != tc.code {
			t.Fatalf("%q: code %s, want %s", tc.input, rep.diagnostics[0].Code.ID(), tc.code.ID())
		}
	}
}

func TestUnknownRuneIsOneToken(t *testing.T) {
	lx, _ := makeTestLexer("→")
	tok := lx.Next()
	if tok.Kind != token.Invalid || tok.Text != "→" {
		t.Fatalf("got %v %q", tok.Kind, tok.Text)
	}
}

func TestNilReporterKeepsLexing(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("nil.cym", []byte("$ int"))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	got := kinds(lx.All())
	want := []token.Kind{token.Invalid, token.KwInt, token.EOF}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("got %v", got)
	}
}

func TestLongProgram(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, "int v%d = %d;\n", i, i)
	}
	lx, rep := makeTestLexer(b.String())
	if n := len(lx.All()); n != 500*5+1 {
		t.Fatalf("token count %d", n)
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("diagnostics: %v", rep.ErrorMessages())
	}
}
