package ast

// Listener receives Enter callbacks in pre-order and Exit callbacks in
// post-order while Walk descends the tree. Children are visited in source
// order. Stmt and Expr hooks fire for every statement and expression around
// the kind-specific hooks.
type Listener interface {
	EnterFile(id FileID, f *File)
	ExitFile(id FileID, f *File)

	EnterFuncDecl(id ItemID, fn *FnItem)
	ExitFuncDecl(id ItemID, fn *FnItem)
	EnterParam(id FnParamID, p *FnParam)
	ExitParam(id FnParamID, p *FnParam)

	// VarDecl fires for global items (stmt == NoStmtID) and for local
	// declaration statements (item == NoItemID).
	EnterVarDecl(item ItemID, stmt StmtID, v *VarDecl)
	ExitVarDecl(item ItemID, stmt StmtID, v *VarDecl)

	EnterBlock(id StmtID, b *BlockStmt)
	ExitBlock(id StmtID, b *BlockStmt)
	EnterStmt(id StmtID, s *Stmt)
	ExitStmt(id StmtID, s *Stmt)

	EnterExpr(id ExprID, e *Expr)
	ExitExpr(id ExprID, e *Expr)
	EnterVarRef(id ExprID, ref *ExprIdentData)
	ExitVarRef(id ExprID, ref *ExprIdentData)
	EnterCall(id ExprID, call *ExprCallData)
	ExitCall(id ExprID, call *ExprCallData)
}

// BaseListener implements Listener with no-op methods; embed it and
// override what you need.
type BaseListener struct{}

func (BaseListener) EnterFile(FileID, *File)               {}
func (BaseListener) ExitFile(FileID, *File)                {}
func (BaseListener) EnterFuncDecl(ItemID, *FnItem)         {}
func (BaseListener) ExitFuncDecl(ItemID, *FnItem)          {}
func (BaseListener) EnterParam(FnParamID, *FnParam)        {}
func (BaseListener) ExitParam(FnParamID, *FnParam)         {}
func (BaseListener) EnterVarDecl(ItemID, StmtID, *VarDecl) {}
func (BaseListener) ExitVarDecl(ItemID, StmtID, *VarDecl)  {}
func (BaseListener) EnterBlock(StmtID, *BlockStmt)         {}
func (BaseListener) ExitBlock(StmtID, *BlockStmt)          {}
func (BaseListener) EnterStmt(StmtID, *Stmt)               {}
func (BaseListener) ExitStmt(StmtID, *Stmt)                {}
func (BaseListener) EnterExpr(ExprID, *Expr)               {}
func (BaseListener) ExitExpr(ExprID, *Expr)                {}
func (BaseListener) EnterVarRef(ExprID, *ExprIdentData)    {}
func (BaseListener) ExitVarRef(ExprID, *ExprIdentData)     {}
func (BaseListener) EnterCall(ExprID, *ExprCallData)       {}
func (BaseListener) ExitCall(ExprID, *ExprCallData)        {}

var _ Listener = BaseListener{}

// Walk drives l over file in one depth-first pass.
func Walk(b *Builder, file FileID, l Listener) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	w := walker{b: b, l: l}
	l.EnterFile(file, f)
	for _, id := range f.Items {
		w.item(id)
	}
	l.ExitFile(file, f)
}

type walker struct {
	b *Builder
	l Listener
}

func (w *walker) item(id ItemID) {
	item := w.b.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ItemFn:
		fn, _ := w.b.Items.Fn(id)
		w.l.EnterFuncDecl(id, fn)
		for _, pid := range fn.Params {
			p := w.b.Items.Param(pid)
			w.l.EnterParam(pid, p)
			w.l.ExitParam(pid, p)
		}
		w.stmt(fn.Body)
		w.l.ExitFuncDecl(id, fn)
	case ItemVar:
		v, _ := w.b.Items.Var(id)
		w.l.EnterVarDecl(id, NoStmtID, v)
		w.expr(v.Value)
		w.l.ExitVarDecl(id, NoStmtID, v)
	}
}

func (w *walker) stmt(id StmtID) {
	st := w.b.Stmts.Get(id)
	if st == nil {
		return
	}
	w.l.EnterStmt(id, st)
	switch st.Kind {
	case StmtBlock:
		blk, _ := w.b.Stmts.Block(id)
		w.l.EnterBlock(id, blk)
		for _, child := range blk.Stmts {
			w.stmt(child)
		}
		w.l.ExitBlock(id, blk)
	case StmtVar:
		v, _ := w.b.Stmts.Var(id)
		w.l.EnterVarDecl(NoItemID, id, v)
		w.expr(v.Value)
		w.l.ExitVarDecl(NoItemID, id, v)
	case StmtIf:
		s, _ := w.b.Stmts.If(id)
		w.expr(s.Cond)
		w.stmt(s.Then)
		w.stmt(s.Else)
	case StmtReturn:
		s, _ := w.b.Stmts.Return(id)
		w.expr(s.Value)
	case StmtAssign:
		s, _ := w.b.Stmts.Assign(id)
		w.expr(s.Target)
		w.expr(s.Value)
	case StmtExpr:
		s, _ := w.b.Stmts.Expr(id)
		w.expr(s.Expr)
	}
	w.l.ExitStmt(id, st)
}

func (w *walker) expr(id ExprID) {
	ex := w.b.Exprs.Get(id)
	if ex == nil {
		return
	}
	w.l.EnterExpr(id, ex)
	switch ex.Kind {
	case ExprIdent:
		ref, _ := w.b.Exprs.Ident(id)
		w.l.EnterVarRef(id, ref)
		w.l.ExitVarRef(id, ref)
	case ExprCall:
		call, _ := w.b.Exprs.Call(id)
		w.l.EnterCall(id, call)
		for _, arg := range call.Args {
			w.expr(arg)
		}
		w.l.ExitCall(id, call)
	case ExprUnary:
		u, _ := w.b.Exprs.Unary(id)
		w.expr(u.Operand)
	case ExprBinary:
		bin, _ := w.b.Exprs.Binary(id)
		w.expr(bin.Left)
		w.expr(bin.Right)
	case ExprIndex:
		ix, _ := w.b.Exprs.Index(id)
		w.expr(ix.Target)
		w.expr(ix.Index)
	case ExprGroup:
		g, _ := w.b.Exprs.Group(id)
		w.expr(g.Inner)
	}
	w.l.ExitExpr(id, ex)
}
