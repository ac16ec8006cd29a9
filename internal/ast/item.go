package ast

import (
	"cymbol/internal/source"
)

type ItemKind uint8

const (
	ItemFn ItemKind = iota
	ItemVar
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "Fn"
	case ItemVar:
		return "Var"
	}
	return "Item(?)"
}

type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

type Items struct {
	Arena    *Arena[Item]
	Fns      *Arena[FnItem]
	FnParams *Arena[FnParam]
	Vars     *Arena[VarDecl]
}

// NewItems creates per-kind arenas; capHint 0 selects 1<<7.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena:    NewArena[Item](capHint),
		Fns:      NewArena[FnItem](capHint),
		FnParams: NewArena[FnParam](capHint),
		Vars:     NewArena[VarDecl](capHint),
	}
}

func (i *Items) New(kind ItemKind, span source.Span, payloadID PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payloadID,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// FnItem is `type name(params) block`.
type FnItem struct {
	Name       source.StringID
	NameSpan   source.Span
	ReturnType TypeRef
	Params     []FnParamID
	Body       StmtID // always a StmtBlock
	Span       source.Span
}

type FnParam struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeRef
	Span     source.Span
}

// VarDecl is shared by global items and local declaration statements.
type VarDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Type     TypeRef
	Value    ExprID // NoExprID when there is no initializer
	Span     source.Span
}

func (i *Items) Fn(id ItemID) (*FnItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return i.Fns.Get(uint32(item.Payload)), true
}

func (i *Items) Var(id ItemID) (*VarDecl, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemVar {
		return nil, false
	}
	return i.Vars.Get(uint32(item.Payload)), true
}

func (i *Items) Param(id FnParamID) *FnParam {
	return i.FnParams.Get(uint32(id))
}

func (i *Items) NewParam(name source.StringID, nameSpan source.Span, typ TypeRef, span source.Span) FnParamID {
	return FnParamID(i.FnParams.Allocate(FnParam{
		Name:     name,
		NameSpan: nameSpan,
		Type:     typ,
		Span:     span,
	}))
}

func (i *Items) NewFn(
	name source.StringID,
	nameSpan source.Span,
	returnType TypeRef,
	params []FnParamID,
	body StmtID,
	span source.Span,
) ItemID {
	payload := i.Fns.Allocate(FnItem{
		Name:       name,
		NameSpan:   nameSpan,
		ReturnType: returnType,
		Params:     params,
		Body:       body,
		Span:       span,
	})
	return i.New(ItemFn, span, PayloadID(payload))
}

func (i *Items) NewVar(decl VarDecl) ItemID {
	payload := i.Vars.Allocate(decl)
	return i.New(ItemVar, decl.Span, PayloadID(payload))
}
