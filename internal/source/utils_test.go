package source

import (
	"path/filepath"
	"testing"
)

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc\r\n"))
	if !changed || string(out) != "a\nb\rc\n" {
		t.Fatalf("got %q changed=%v", out, changed)
	}
	out, changed = normalizeCRLF([]byte("plain\n"))
	if changed || string(out) != "plain\n" {
		t.Fatalf("got %q changed=%v", out, changed)
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(out) != "x" {
		t.Fatalf("got %q had=%v", out, had)
	}
	if _, had := removeBOM([]byte{0xEF}); had {
		t.Fatal("short input reported a BOM")
	}
}

func TestRelativePathOutsideBase(t *testing.T) {
	base := t.TempDir()
	other := t.TempDir()
	target := filepath.Join(other, "x.cym")
	got, err := RelativePath(target, base)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := AbsolutePath(target)
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestToLineColEmptyIndex(t *testing.T) {
	if got := toLineCol(nil, 7); got != (LineCol{Line: 1, Col: 8}) {
		t.Fatalf("got %+v", got)
	}
}
