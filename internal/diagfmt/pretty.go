package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cymbol/internal/diag"
	"cymbol/internal/source"
)

type palette struct {
	err, warn, info, note, loc, gutter, caret, fix *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		fix:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.loc, p.gutter, p.caret, p.fix} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sev := p.severity(d.Severity)
		fmt.Fprintf(w, "%s %s %s\n",
			p.loc.Sprintf("%s:", location(fs, d.Primary, opts.PathMode)),
			sev.Sprintf("%s %s:", d.Severity, d.Code.ID()),
			d.Message)
		writeSnippet(w, fs, d.Primary, p, sev)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s %s\n", p.note.Sprint("note:"), p.loc.Sprintf("%s:", location(fs, n.Span, opts.PathMode)), n.Msg)
				writeSnippet(w, fs, n.Span, p, p.note)
			}
		}
		if opts.ShowFixes {
			for _, fix := range d.Fixes {
				fmt.Fprintf(w, "  %s %s\n", p.fix.Sprint("fix:"), fix.Title)
			}
		}
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n... %d more diagnostic(s) not shown (limit %d)\n", n, bag.Cap())
	}
}

func location(fs *source.FileSet, span source.Span, mode PathMode) string {
	if int(span.File) >= fs.Len() {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs, fs.Get(span.File), mode), start.Line, start.Col)
}

// writeSnippet печатает строку начала span и подчёркивание под ним.
// Ширина считается по отображению, табуляции сохраняются.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, p palette, mark *color.Color) {
	if int(span.File) >= fs.Len() {
		return
	}
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := file.GetLine(start.Line)

	col := min(int(start.Col)-1, len(line))
	stop := len(line)
	if end.Line == start.Line {
		stop = min(int(end.Col)-1, len(line))
	}
	stop = max(stop, col)

	gutter := fmt.Sprintf("%d", start.Line)
	pad := strings.Repeat(" ", len(gutter))
	fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprint(gutter), p.gutter.Sprint("|"), line)

	var under strings.Builder
	for _, r := range line[:col] {
		if r == '\t' {
			under.WriteByte('\t')
			continue
		}
		under.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := max(runewidth.StringWidth(line[col:stop]), 1)
	caret := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s %s%s\n", pad, p.gutter.Sprint("|"), under.String(), mark.Sprint(caret))
}

// Short renders one line per diagnostic, the stable format used by tests
// and editors.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, showNotes bool, mode PathMode) {
	out := diag.FormatShortDiagnostics(bag.Items(), fs, showNotes, mode.String())
	if out != "" {
		fmt.Fprintln(w, out)
	}
}
