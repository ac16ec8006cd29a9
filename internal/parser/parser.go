package parser

import (
	"slices"

	"cymbol/internal/ast"
	"cymbol/internal/diag"
	"cymbol/internal/lexer"
	"cymbol/internal/source"
	"cymbol/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
	// Errors is the number of syntax errors seen, including ones past MaxErrors.
	Errors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer    // поток токенов (Peek/Next)
	arenas   *ast.Builder    // построитель аренных узлов
	file     ast.FileID      // текущий FileID (в AST)
	fs       *source.FileSet // нужен только для спанов/путей при надобности
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile: входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	var bag *diag.Bag
	switch r := opts.Reporter.(type) {
	case *diag.BagReporter:
		bag = r.Bag
	case diag.BagReporter:
		bag = r.Bag
	}
	return Result{
		File:   p.file,
		Bag:    bag,
		Errors: p.opts.CurrentErrors,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseItems: основной цикл верхнего уровня, пока не EOF, вызываем parseItem.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
		} else {
			p.arenas.PushItem(p.file, itemID)
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem: каждое объявление верхнего уровня начинается с типа,
// дальше имя, а '(' после имени отличает функцию от переменной.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	if p.at(token.Invalid) {
		// лексер уже сообщил об ошибке
		p.advance()
		p.opts.CurrentErrors++
		return ast.NoItemID, false
	}
	if !p.lx.Peek().IsTypeKeyword() {
		p.report(diag.SynUnexpectedTopLevel, diag.SevError, p.lx.Peek().Span,
			"unexpected top-level construct "+quoteTok(p.lx.Peek())+", expected a function or variable declaration")
		return ast.NoItemID, false
	}

	typ := p.parseType()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		return ast.NoItemID, false
	}

	if p.at(token.LParen) {
		return p.parseFnRest(typ, name, nameSpan)
	}
	decl, ok := p.parseVarRest(typ, name, nameSpan)
	if !ok {
		return ast.NoItemID, false
	}
	return p.arenas.Items.NewVar(decl), true
}

// resyncTop: восстановление после ошибки на верхнем уровне:
// прокручиваем до ';', '}' или до типа, с которого начнётся следующее объявление.
func (p *Parser) resyncTop() {
	stop := append([]token.Kind{token.Semicolon, token.RBrace}, typeKeywords...)
	p.resyncUntil(stop...)

	// ';' и лишняя '}' принадлежат сломанному объявлению
	if p.atOr(token.Semicolon, token.RBrace) {
		p.advance()
	}
}

// parseIdent: утилита: ожидает Ident и интернирует его.
// На ошибке репорт SynExpectIdentifier.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		id := p.arenas.StringsInterner.Intern(tok.Text)
		return id, tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got "+quoteTok(p.lx.Peek()))
	return source.NoStringID, source.Span{}, false
}
