// Package diag defines the diagnostic model shared by the lexer, parser and
// the semantic passes.
//
// A Diagnostic carries a Severity, a stable Code (rendered as LEX1xxx,
// SYN2xxx, SEM3xxx, IO4xxx), a short message, the primary source.Span and
// optional Notes pointing at related locations such as the first
// declaration of a duplicated name.
//
// Phases never store diagnostics themselves. They receive a Reporter and
// either call Report directly or go through a ReportBuilder:
//
//	diag.ReportError(r, diag.SemaDuplicateSymbol, span, msg).
//		WithNote(prev, "previous declaration here").
//		Emit()
//
// BagReporter collects into a Bag, which enforces the --max-diagnostics
// limit and offers deterministic Sort and Dedup. Reporting never aborts a
// traversal; callers decide success from Bag.HasErrors.
//
// Rendering lives in internal/diagfmt. The single-line formats used by
// golden tests and --format=short live here because tests in several
// packages depend on them.
package diag
