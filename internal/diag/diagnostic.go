package diag

import (
	"cymbol/internal/source"
)

// Severity orders diagnostics; Bag.Sort puts errors first.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

// upper для pretty/JSON, lower для short/golden, sarif для result.level
var severityNames = [...]struct{ upper, lower, sarif string }{
	SevInfo:    {"INFO", "info", "note"},
	SevWarning: {"WARNING", "warning", "warning"},
	SevError:   {"ERROR", "error", "error"},
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s].upper
	}
	return "UNKNOWN"
}

// Label is the lowercase form of the short and golden formats.
func (s Severity) Label() string {
	if int(s) < len(severityNames) {
		return severityNames[s].lower
	}
	return "info"
}

// SarifLevel maps s to a SARIF result level.
func (s Severity) SarifLevel() string {
	if int(s) < len(severityNames) {
		return severityNames[s].sarif
	}
	return "note"
}

// Note is a secondary location attached to a diagnostic,
// e.g. "previous declaration here".
type Note struct {
	Span source.Span
	Msg  string
}

type FixEdit struct {
	Span    source.Span
	NewText string
}

type Fix struct {
	Title string
	Edits []FixEdit
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(d.Fixes, Fix{Title: title, Edits: edits})
	return d
}
