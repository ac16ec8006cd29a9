package ast

import (
	"cymbol/internal/source"
	"cymbol/internal/token"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprCall
	ExprIntLit
	ExprFloatLit
	ExprBoolLit
	ExprUnary
	ExprBinary
	ExprIndex
	ExprGroup
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Ident"
	case ExprCall:
		return "Call"
	case ExprIntLit:
		return "IntLit"
	case ExprFloatLit:
		return "FloatLit"
	case ExprBoolLit:
		return "BoolLit"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprIndex:
		return "Index"
	case ExprGroup:
		return "Group"
	}
	return "Expr(?)"
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprIdentData is a variable reference.
type ExprIdentData struct {
	Name source.StringID
}

type ExprLiteralData struct {
	Text string
}

// ExprCallData is `name(args)`; Cymbol callees are always plain names.
type ExprCallData struct {
	Callee     source.StringID
	CalleeSpan source.Span
	Args       []ExprID
}

type ExprUnaryData struct {
	Op      token.Kind
	Operand ExprID
}

type ExprBinaryData struct {
	Op    token.Kind
	Left  ExprID
	Right ExprID
}

type ExprIndexData struct {
	Target ExprID
	Index  ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLiteralData]
	Calls    *Arena[ExprCallData]
	Unaries  *Arena[ExprUnaryData]
	Binaries *Arena[ExprBinaryData]
	Indices  *Arena[ExprIndexData]
	Groups   *Arena[ExprGroupData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Calls:    NewArena[ExprCallData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Indices:  NewArena[ExprIndexData](capHint),
		Groups:   NewArena[ExprGroupData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	return e.new(ExprIdent, span, e.Idents.Allocate(ExprIdentData{Name: name}))
}

// NewLiteral accepts ExprIntLit, ExprFloatLit or ExprBoolLit.
func (e *Exprs) NewLiteral(kind ExprKind, span source.Span, text string) ExprID {
	return e.new(kind, span, e.Literals.Allocate(ExprLiteralData{Text: text}))
}

func (e *Exprs) NewCall(span source.Span, callee source.StringID, calleeSpan source.Span, args []ExprID) ExprID {
	return e.new(ExprCall, span, e.Calls.Allocate(ExprCallData{
		Callee:     callee,
		CalleeSpan: calleeSpan,
		Args:       args,
	}))
}

func (e *Exprs) NewUnary(span source.Span, op token.Kind, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) NewBinary(span source.Span, op token.Kind, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) NewIndex(span source.Span, target, index ExprID) ExprID {
	return e.new(ExprIndex, span, e.Indices.Allocate(ExprIndexData{Target: target, Index: index}))
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	return e.new(ExprGroup, span, e.Groups.Allocate(ExprGroupData{Inner: inner}))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	ex := e.Get(id)
	if ex == nil {
		return nil, false
	}
	switch ex.Kind {
	case ExprIntLit, ExprFloatLit, ExprBoolLit:
		return e.Literals.Get(uint32(ex.Payload)), true
	}
	return nil, false
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(ex.Payload)), true
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	ex := e.Get(id)
	if ex == nil || ex.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(ex.Payload)), true
}
