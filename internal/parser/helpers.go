package parser

import (
	"fmt"

	"cymbol/internal/diag"
	"cymbol/internal/source"
	"cymbol/internal/token"
)

var typeKeywords = []token.Kind{token.KwInt, token.KwFloat, token.KwVoid, token.KwBool}

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: возвращает лучший span для диагностики.
// На EOF указываем сразу за последним съеденным токеном, а не в конец файла.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.afterLast()
	}
	return peek.Span
}

// afterLast: пустой span сразу после последнего съеденного токена
func (p *Parser) afterLast() source.Span {
	return source.Span{
		File:  p.lastSpan.File,
		Start: p.lastSpan.End,
		End:   p.lastSpan.End,
	}
}

// expect: ожидаем конкретный токен. Если нет, репортим и возвращаем (invalid,false).
// decorate позволяет добавить к диагностике заметки и исправления.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string, decorate ...func(*diag.ReportBuilder)) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	b := p.reportBuilder(code, diag.SevError, diagSpan, msg)
	for _, fn := range decorate {
		fn(b)
	}
	b.Emit()
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// insertFix: decorator для expect: предлагает вставить text после последнего токена
func (p *Parser) insertFix(title, text string) func(*diag.ReportBuilder) {
	return func(b *diag.ReportBuilder) {
		if b == nil {
			return
		}
		at := p.afterLast()
		b.WithFix(title, diag.FixEdit{Span: at, NewText: text})
	}
}

// openedAt: decorator для expect: заметка на открывающей скобке
func openedAt(sp source.Span, what string) func(*diag.ReportBuilder) {
	return func(b *diag.ReportBuilder) {
		b.WithNote(sp, what+" opened here")
	}
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	b := p.reportBuilder(code, sev, sp, msg)
	if b == nil {
		return false
	}
	b.Emit()
	return true
}

// reportBuilder считает ошибки и возвращает nil, когда писать уже некуда
// или лимит исчерпан. Методы ReportBuilder безопасны на nil.
func (p *Parser) reportBuilder(code diag.Code, sev diag.Severity, sp source.Span, msg string) *diag.ReportBuilder {
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return nil
	}
	if sev == diag.SevError && p.opts.MaxErrors != 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
		return nil
	}
	return diag.NewReportBuilder(p.opts.Reporter, sev, code, sp, msg)
}

// resyncUntil пропускает токены, пока не встретит один из stop или EOF.
// Сам stop-токен не съедается.
func (p *Parser) resyncUntil(stop ...token.Kind) {
	for !p.at(token.EOF) && !p.atOr(stop...) {
		p.advance()
	}
}

func quoteTok(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Invalid:
		if tok.Text == "" {
			return "invalid token"
		}
	}
	return fmt.Sprintf("%q", tok.Text)
}
