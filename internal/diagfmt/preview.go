package diagfmt

import (
	"fmt"
	"strings"

	"cymbol/internal/diag"
	"cymbol/internal/source"
)

// fixPreview holds the lines an edit touches, before and after applying it.
type fixPreview struct {
	before []string
	after  []string
}

func previewFixEdit(fs *source.FileSet, edit diag.FixEdit) (fixPreview, error) {
	if fs == nil || int(edit.Span.File) >= fs.Len() {
		return fixPreview{}, fmt.Errorf("edit refers to unknown file %d", edit.Span.File)
	}
	file := fs.Get(edit.Span.File)
	if edit.Span.Start > edit.Span.End || int(edit.Span.End) > len(file.Content) {
		return fixPreview{}, fmt.Errorf("edit span %d..%d out of range", edit.Span.Start, edit.Span.End)
	}

	start, end := fs.Resolve(edit.Span)
	before := make([]string, 0, end.Line-start.Line+1)
	for line := start.Line; line <= end.Line; line++ {
		before = append(before, file.GetLine(line))
	}

	// столбцы байтовые: оставляем начало первой строки и хвост последней
	head := before[0][:start.Col-1]
	tail := before[len(before)-1][end.Col-1:]
	text := strings.TrimSuffix(head+edit.NewText+tail, "\n")
	return fixPreview{before: before, after: strings.Split(text, "\n")}, nil
}
