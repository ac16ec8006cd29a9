package ast

import (
	"cymbol/internal/source"
)

type Hints struct{ Files, Items, Stmts, Exprs uint }

// File is the root of one parsed source: its global declarations in order.
// Span runs from the first byte to EOF.
type File struct {
	Span  source.Span
	Items []ItemID
}

type Files struct{ Arena *Arena[File] }

func (f *Files) Get(id FileID) *File { return f.Arena.Get(uint32(id)) }

// Builder owns every arena of one parse plus the identifier interner.
type Builder struct {
	Files           *Files
	Items           *Items
	Stmts           *Stmts
	Exprs           *Exprs
	StringsInterner *source.Interner
}

// NewBuilder creates a builder; a nil interner gets a fresh one.
func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Files:           &Files{Arena: NewArena[File](hints.Files)},
		Items:           NewItems(hints.Items),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		StringsInterner: interner,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return FileID(b.Files.Arena.Allocate(File{Span: sp}))
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	f := b.Files.Get(file)
	f.Items = append(f.Items, item)
}

// Name returns the interned text for id, or "" when unknown.
func (b *Builder) Name(id source.StringID) string {
	s, _ := b.StringsInterner.Lookup(id)
	return s
}
