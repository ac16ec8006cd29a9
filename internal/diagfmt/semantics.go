package diagfmt

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"cymbol/internal/ast"
	"cymbol/internal/sema"
	"cymbol/internal/source"
	"cymbol/internal/symbols"
)

// SemanticsInput carries the data required to build a semantic dump.
type SemanticsInput struct {
	Builder *ast.Builder
	FileID  ast.FileID
	Result  *sema.Result
}

// SemanticsOutput represents semantic data emitted alongside diagnostics.
type SemanticsOutput struct {
	Global       uint32            `json:"global"`
	Scopes       []ScopeJSON       `json:"scopes"`
	Symbols      []SymbolJSON      `json:"symbols"`
	ExprBindings []ExprBindingJSON `json:"expr_bindings"`
}

type ScopeJSON struct {
	ID       uint32         `json:"id"`
	Kind     string         `json:"kind"`
	Parent   uint32         `json:"parent,omitempty"`
	Span     source.Span    `json:"span"`
	Owner    ScopeOwnerJSON `json:"owner"`
	Function uint32         `json:"function,omitempty"`
	Symbols  []uint32       `json:"symbols,omitempty"`
}

type ScopeOwnerJSON struct {
	Kind string `json:"kind"`
	Item uint32 `json:"item,omitempty"`
	Stmt uint32 `json:"stmt,omitempty"`
}

type SymbolJSON struct {
	ID     uint32      `json:"id"`
	Name   string      `json:"name"`
	Kind   string      `json:"kind"`
	Type   string      `json:"type"`
	Scope  uint32      `json:"scope"`
	Span   source.Span `json:"span"`
	Flags  []string    `json:"flags,omitempty"`
	Params []uint32    `json:"params,omitempty"`
}

type ExprBindingJSON struct {
	ExprID   uint32      `json:"expr_id"`
	SymbolID uint32      `json:"symbol_id"`
	Span     source.Span `json:"span"`
	Name     string      `json:"name"`
}

func buildSemanticsOutput(in *SemanticsInput) (*SemanticsOutput, error) {
	if in == nil || in.Result == nil || in.Result.Table == nil {
		return nil, nil
	}
	table := in.Result.Table

	output := &SemanticsOutput{
		Global:       uint32(in.Result.Global),
		Scopes:       make([]ScopeJSON, 0, table.Scopes.Len()),
		Symbols:      make([]SymbolJSON, 0, table.Symbols.Len()),
		ExprBindings: make([]ExprBindingJSON, 0, len(in.Result.Bindings)),
	}

	for idx := 1; idx <= table.Scopes.Len(); idx++ {
		id, err := safecast.Conv[uint32](idx)
		if err != nil {
			return nil, fmt.Errorf("semantics: scope id overflow: %w", err)
		}
		scope := table.Scopes.Get(symbols.ScopeID(id))
		owner := ScopeOwnerJSON{Kind: scopeOwnerKindString(scope.Owner.Kind)}
		if scope.Owner.Item.IsValid() {
			owner.Item = uint32(scope.Owner.Item)
		}
		if scope.Owner.Stmt.IsValid() {
			owner.Stmt = uint32(scope.Owner.Stmt)
		}
		output.Scopes = append(output.Scopes, ScopeJSON{
			ID:       id,
			Kind:     scope.Kind.String(),
			Parent:   uint32(scope.Parent),
			Span:     scope.Span,
			Owner:    owner,
			Function: uint32(scope.Func),
			Symbols:  symbolIDs(scope.Symbols),
		})
	}

	for idx := 1; idx <= table.Symbols.Len(); idx++ {
		id, err := safecast.Conv[uint32](idx)
		if err != nil {
			return nil, fmt.Errorf("semantics: symbol id overflow: %w", err)
		}
		sym := table.Symbols.Get(symbols.SymbolID(id))
		name, _ := table.Strings.Lookup(sym.Name)
		output.Symbols = append(output.Symbols, SymbolJSON{
			ID:     id,
			Name:   name,
			Kind:   sym.Kind.String(),
			Type:   sym.Type.String(),
			Scope:  uint32(sym.Scope),
			Span:   sym.Span,
			Flags:  symbolFlagStrings(sym.Flags),
			Params: symbolIDs(sym.Params),
		})
	}

	// Expression bindings
	if len(in.Result.Bindings) > 0 && in.Builder != nil {
		exprIDs := make([]ast.ExprID, 0, len(in.Result.Bindings))
		for exprID := range in.Result.Bindings {
			exprIDs = append(exprIDs, exprID)
		}
		sort.Slice(exprIDs, func(i, j int) bool { return exprIDs[i] < exprIDs[j] })

		for _, exprID := range exprIDs {
			expr := in.Builder.Exprs.Get(exprID)
			if expr == nil {
				continue
			}
			symID := in.Result.Bindings[exprID]
			output.ExprBindings = append(output.ExprBindings, ExprBindingJSON{
				ExprID:   uint32(exprID),
				SymbolID: uint32(symID),
				Span:     expr.Span,
				Name:     table.Name(symID),
			})
		}
	}

	return output, nil
}

func symbolIDs(ids []symbols.SymbolID) []uint32 {
	if len(ids) == 0 {
		return nil
	}
	out := make([]uint32, len(ids))
	for i, id := range ids {
		out[i] = uint32(id)
	}
	return out
}

func symbolFlagStrings(flags symbols.SymbolFlags) []string {
	var out []string
	if flags&symbols.SymbolFlagGlobal != 0 {
		out = append(out, "global")
	}
	if flags&symbols.SymbolFlagParam != 0 {
		out = append(out, "param")
	}
	return out
}

func scopeOwnerKindString(kind symbols.ScopeOwnerKind) string {
	switch kind {
	case symbols.ScopeOwnerFile:
		return "file"
	case symbols.ScopeOwnerItem:
		return "item"
	case symbols.ScopeOwnerStmt:
		return "stmt"
	default:
		return "unknown"
	}
}
