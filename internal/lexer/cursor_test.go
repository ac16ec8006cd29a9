package lexer

import (
	"testing"

	"cymbol/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.cym", []byte(content)))
}

func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if c.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Fatal("expected sticky EOF")
	}
}

func TestCursorMarkAndReset(t *testing.T) {
	c := NewCursor(createFile("hello"))
	c.Bump()
	m := c.Mark()
	c.Bump()
	c.Bump()
	if sp := c.SpanFrom(m); sp.Start != 1 || sp.End != 3 {
		t.Fatalf("span = %v", sp)
	}
	c.Reset(m)
	if c.Peek() != 'e' {
		t.Fatalf("after reset Peek = %q", c.Peek())
	}
}

func TestCursorPeek2AndEat(t *testing.T) {
	c := NewCursor(createFile("=="))
	if b0, b1, ok := c.Peek2(); !ok || b0 != '=' || b1 != '=' {
		t.Fatalf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if !c.Eat('=') || c.Eat('!') {
		t.Fatal("Eat mismatch")
	}
	if _, _, ok := c.Peek2(); ok {
		t.Fatal("Peek2 past end reported ok")
	}
}

func TestCursorLimit(t *testing.T) {
	c := NewCursor(createFile("abcdef"))
	c.Limit = 2
	c.Bump()
	c.Bump()
	if !c.EOF() {
		t.Fatal("limit not honoured")
	}
}

func TestCursorRunesAndTry2(t *testing.T) {
	c := NewCursor(createFile("é!="))
	if r, sz := c.PeekRune(); r != 'é' || sz != 2 {
		t.Fatalf("PeekRune = %q %d", r, sz)
	}
	c.BumpRune()
	if c.Try2('=', '=') {
		t.Fatal("Try2 matched \"!=\" as \"==\"")
	}
	if c.Bump() != '!' || c.Try2('=', '=') {
		t.Fatal("Try2 crossed the end")
	}
	c.BumpRune()
	if _, sz := c.PeekRune(); sz != 0 || !c.EOF() {
		t.Fatalf("PeekRune at EOF size = %d", sz)
	}
}
