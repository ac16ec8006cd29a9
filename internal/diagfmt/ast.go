package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"cymbol/internal/ast"
	"cymbol/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Text     string          `json:"text,omitempty"`
	Span     source.Span     `json:"span"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// label renders "Type kind text (span: ...)"; fs may be nil.
func (n *ASTNodeOutput) label(fs *source.FileSet) string {
	parts := []string{n.Type}
	if n.Kind != "" {
		parts = append(parts, n.Kind)
	}
	if n.Text != "" {
		parts = append(parts, n.Text)
	}
	return fmt.Sprintf("%s (span: %s)", strings.Join(parts, " "), formatSpan(n.Span, fs))
}

// FormatASTPretty prints the file as an indented tree.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := buildFileNode(builder, fileID)
	if err != nil {
		return err
	}
	header := "File"
	if fs != nil {
		header = formatPath(fs, fs.Get(root.Span.File), PathModeAuto)
	}
	fmt.Fprintf(w, "%s (span: %s)\n", header, formatSpan(root.Span, fs))
	writeTreeChildren(w, root.Children, "", fs)
	return nil
}

func writeTreeChildren(w io.Writer, children []ASTNodeOutput, prefix string, fs *source.FileSet) {
	for i := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, branch, children[i].label(fs))
		writeTreeChildren(w, children[i].Children, prefix+next, fs)
	}
}

func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	root, err := buildFileNode(builder, fileID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func buildFileNode(builder *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file not found")
	}
	root := ASTNodeOutput{Type: "File", Span: file.Span}
	for _, itemID := range file.Items {
		root.Children = append(root.Children, itemNode(builder, itemID))
	}
	return root, nil
}

func itemNode(b *ast.Builder, id ast.ItemID) ASTNodeOutput {
	item := b.Items.Get(id)
	if fn, ok := b.Items.Fn(id); ok {
		node := ASTNodeOutput{Type: "Fn", Kind: fn.ReturnType.Kind.String(), Text: b.Name(fn.Name), Span: item.Span}
		for _, pid := range fn.Params {
			p := b.Items.Param(pid)
			node.Children = append(node.Children, ASTNodeOutput{Type: "Param", Kind: p.Type.Kind.String(), Text: b.Name(p.Name), Span: p.Span})
		}
		node.Children = append(node.Children, stmtNode(b, fn.Body))
		return node
	}
	if v, ok := b.Items.Var(id); ok {
		return varNode(b, v)
	}
	return ASTNodeOutput{Type: "Item(?)", Span: item.Span}
}

func varNode(b *ast.Builder, v *ast.VarDecl) ASTNodeOutput {
	node := ASTNodeOutput{Type: "Var", Kind: v.Type.Kind.String(), Text: b.Name(v.Name), Span: v.Span}
	if v.Value.IsValid() {
		node.Children = append(node.Children, exprNode(b, v.Value))
	}
	return node
}

func stmtNode(b *ast.Builder, id ast.StmtID) ASTNodeOutput {
	stmt := b.Stmts.Get(id)
	node := ASTNodeOutput{Type: stmt.Kind.String(), Span: stmt.Span}
	switch stmt.Kind {
	case ast.StmtBlock:
		blk, _ := b.Stmts.Block(id)
		for _, s := range blk.Stmts {
			node.Children = append(node.Children, stmtNode(b, s))
		}
	case ast.StmtVar:
		v, _ := b.Stmts.Var(id)
		return varNode(b, v)
	case ast.StmtIf:
		s, _ := b.Stmts.If(id)
		node.Children = append(node.Children, exprNode(b, s.Cond), stmtNode(b, s.Then))
		if s.Else.IsValid() {
			node.Children = append(node.Children, stmtNode(b, s.Else))
		}
	case ast.StmtReturn:
		s, _ := b.Stmts.Return(id)
		if s.Value.IsValid() {
			node.Children = append(node.Children, exprNode(b, s.Value))
		}
	case ast.StmtAssign:
		s, _ := b.Stmts.Assign(id)
		node.Children = append(node.Children, exprNode(b, s.Target), exprNode(b, s.Value))
	case ast.StmtExpr:
		s, _ := b.Stmts.Expr(id)
		node.Children = append(node.Children, exprNode(b, s.Expr))
	}
	return node
}

func exprNode(b *ast.Builder, id ast.ExprID) ASTNodeOutput {
	expr := b.Exprs.Get(id)
	node := ASTNodeOutput{Type: expr.Kind.String(), Span: expr.Span}
	switch expr.Kind {
	case ast.ExprIdent:
		e, _ := b.Exprs.Ident(id)
		node.Text = b.Name(e.Name)
	case ast.ExprIntLit, ast.ExprFloatLit, ast.ExprBoolLit:
		e, _ := b.Exprs.Literal(id)
		node.Text = e.Text
	case ast.ExprCall:
		e, _ := b.Exprs.Call(id)
		node.Text = b.Name(e.Callee)
		for _, arg := range e.Args {
			node.Children = append(node.Children, exprNode(b, arg))
		}
	case ast.ExprUnary:
		e, _ := b.Exprs.Unary(id)
		node.Kind = e.Op.String()
		node.Children = append(node.Children, exprNode(b, e.Operand))
	case ast.ExprBinary:
		e, _ := b.Exprs.Binary(id)
		node.Kind = e.Op.String()
		node.Children = append(node.Children, exprNode(b, e.Left), exprNode(b, e.Right))
	case ast.ExprIndex:
		e, _ := b.Exprs.Index(id)
		node.Children = append(node.Children, exprNode(b, e.Target), exprNode(b, e.Index))
	case ast.ExprGroup:
		e, _ := b.Exprs.Group(id)
		node.Children = append(node.Children, exprNode(b, e.Inner))
	}
	return node
}
