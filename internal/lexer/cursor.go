package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"cymbol/internal/source"
)

// Cursor walks the bytes of one normalized file. Off never passes Limit.
type Cursor struct {
	File  *source.File
	Off   uint32
	Limit uint32 // exclusive; NewCursor sets it to the content length
}

func NewCursor(f *source.File) Cursor {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("%s: file too large: %w", f.Path, err))
	}
	return Cursor{File: f, Limit: n}
}

func (c *Cursor) EOF() bool { return c.Off >= c.Limit }

// Peek returns the current byte, 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 returns the next two bytes when both are inside the limit.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.Limit {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if c.EOF() || c.File.Content[c.Off] != b {
		return false
	}
	c.Off++
	return true
}

// Try2 consumes the pair a, b ("==", "!=") if it is next.
func (c *Cursor) Try2(a, b byte) bool {
	b0, b1, ok := c.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	c.Off += 2
	return true
}

// PeekRune decodes the rune at Off; size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.File.Content[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// BumpRune skips one rune; an invalid byte counts as a rune of size 1.
func (c *Cursor) BumpRune() {
	if _, size := c.PeekRune(); size > 0 {
		c.Off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
	}
}

// Mark is a saved Off for SpanFrom and Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
