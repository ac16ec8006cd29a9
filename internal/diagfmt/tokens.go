package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cymbol/internal/source"
	"cymbol/internal/token"
)

// TokenPos is a 1-based line and byte column.
type TokenPos struct {
	Line uint32 `json:"line"`
	Col  uint32 `json:"col"`
}

// TokenOutput is one row of the token dump.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Class   string      `json:"class"`
	Text    string      `json:"text,omitempty"`
	Start   TokenPos    `json:"start"`
	End     TokenPos    `json:"end"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// tokenClass groups kinds the way the grammar uses them.
func tokenClass(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "eof"
	case tok.IsTypeKeyword():
		return "type"
	case tok.IsLiteral():
		return "literal"
	case tok.IsKeyword():
		return "keyword"
	case tok.IsIdent():
		return "ident"
	case tok.IsPunctOrOp():
		return "punct"
	}
	return "invalid"
}

// tokenRows converts lexer output up to and including EOF.
func tokenRows(tokens []token.Token, fs *source.FileSet) []TokenOutput {
	rows := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		start, end := fs.Resolve(tok.Span)
		row := TokenOutput{
			Kind:  tok.Kind.String(),
			Class: tokenClass(tok),
			Text:  tok.Text,
			Start: TokenPos{start.Line, start.Col},
			End:   TokenPos{end.Line, end.Col},
			Span:  tok.Span,
		}
		for _, tr := range tok.Leading {
			row.Leading = append(row.Leading, tr.Kind.String())
		}
		rows = append(rows, row)
		if tok.Kind == token.EOF {
			break
		}
	}
	return rows
}

// FormatTokensPretty пишет по строке на токен: номер, вид, класс, текст, позиция
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	var sb strings.Builder
	for i, row := range tokenRows(tokens, fs) {
		fmt.Fprintf(&sb, "%3d: %-15s %-7s", i+1, row.Kind, row.Class)
		if row.Text != "" {
			fmt.Fprintf(&sb, " %q", row.Text)
		}
		fmt.Fprintf(&sb, " at %d:%d-%d:%d", row.Start.Line, row.Start.Col, row.End.Line, row.End.Col)
		if len(row.Leading) > 0 {
			sb.WriteString(" (leading: " + strings.Join(row.Leading, ", ") + ")")
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenRows(tokens, fs))
}
