package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cymbol/internal/ast"
	"cymbol/internal/source"
)

// CheckSpanInvariants runs the span invariants on a parsed file:
// 1) file.Span is non-empty, within file content bounds and in sf
// 2) every item, parameter, statement and expression span is non-empty
// and fully contained in the span of the node that encloses it
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	// 1) file span sanity
	if len(sf.Content) > 0 && f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	// 2) вложенные узлы лежат внутри родителя
	c := &spanChecker{file: sf.ID, stack: []source.Span{f.Span}}
	ast.Walk(b, fileID, c)
	return c.err
}

type spanChecker struct {
	ast.BaseListener
	file  source.FileID
	stack []source.Span
	err   error
}

func (c *spanChecker) push(what string, sp source.Span) {
	if c.err == nil {
		parent := c.stack[len(c.stack)-1]
		switch {
		case sp.End <= sp.Start:
			c.err = fmt.Errorf("empty %s span: %v", what, sp)
		case sp.File != c.file:
			c.err = fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, c.file)
		case !parent.Contains(sp):
			c.err = fmt.Errorf("%s span %v is outside enclosing span %v", what, sp, parent)
		}
	}
	c.stack = append(c.stack, sp)
}

func (c *spanChecker) pop() { c.stack = c.stack[:len(c.stack)-1] }

func (c *spanChecker) EnterFuncDecl(id ast.ItemID, fn *ast.FnItem) { c.push("function", fn.Span) }
func (c *spanChecker) ExitFuncDecl(ast.ItemID, *ast.FnItem)        { c.pop() }

func (c *spanChecker) EnterParam(_ ast.FnParamID, p *ast.FnParam) { c.push("parameter", p.Span) }
func (c *spanChecker) ExitParam(ast.FnParamID, *ast.FnParam)      { c.pop() }

// локальные объявления уже проверены как операторы
func (c *spanChecker) EnterVarDecl(item ast.ItemID, _ ast.StmtID, v *ast.VarDecl) {
	if item.IsValid() {
		c.push("variable", v.Span)
	}
}

func (c *spanChecker) ExitVarDecl(item ast.ItemID, _ ast.StmtID, _ *ast.VarDecl) {
	if item.IsValid() {
		c.pop()
	}
}

func (c *spanChecker) EnterStmt(_ ast.StmtID, s *ast.Stmt) { c.push("statement", s.Span) }
func (c *spanChecker) ExitStmt(ast.StmtID, *ast.Stmt)      { c.pop() }

func (c *spanChecker) EnterExpr(_ ast.ExprID, e *ast.Expr) { c.push("expression", e.Span) }
func (c *spanChecker) ExitExpr(ast.ExprID, *ast.Expr)      { c.pop() }
