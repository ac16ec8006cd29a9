// Package fix applies the text edits attached to diagnostics.
package fix

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"cymbol/internal/diag"
	"cymbol/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// Options configures Apply.
type Options struct {
	// Write stores the edited contents back to disk. Virtual files are
	// never written.
	Write bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	Title     string
	Code      diag.Code
	Message   string
	Path      string
	EditCount int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	Title  string
	Code   diag.Code
	Reason string
}

// FileChange is the new content of one edited file.
type FileChange struct {
	FileID    source.FileID
	Path      string
	EditCount int
	Content   []byte
}

// Result aggregates applied fixes, skipped ones, and file changes.
type Result struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	Files   []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply accepts fixes in source order, skipping any whose edits overlap
// an already accepted edit, and computes the edited file contents.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts Options) (*Result, error) {
	result := &Result{}
	if fs == nil {
		return result, fmt.Errorf("fix: FileSet is nil")
	}

	candidates := gatherCandidates(diagnostics, result)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)

	accepted := make(map[source.FileID][]diag.FixEdit)
	for _, cand := range candidates {
		if reason := checkEdits(fs, accepted, cand.fix.Edits); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{Title: cand.fix.Title, Code: cand.diag.Code, Reason: reason})
			continue
		}
		for _, e := range cand.fix.Edits {
			accepted[e.Span.File] = append(accepted[e.Span.File], e)
		}
		result.Applied = append(result.Applied, AppliedFix{
			Title:     cand.fix.Title,
			Code:      cand.diag.Code,
			Message:   cand.diag.Message,
			Path:      formatFilePath(fs, cand.diag.Primary.File),
			EditCount: len(cand.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	fileIDs := make([]source.FileID, 0, len(accepted))
	for id := range accepted {
		fileIDs = append(fileIDs, id)
	}
	sort.Slice(fileIDs, func(i, j int) bool { return fileIDs[i] < fileIDs[j] })

	for _, id := range fileIDs {
		file := fs.Get(id)
		change := FileChange{
			FileID:    id,
			Path:      formatFilePath(fs, id),
			EditCount: len(accepted[id]),
			Content:   applyEdits(file.Content, accepted[id]),
		}
		result.Files = append(result.Files, change)
		if !opts.Write || file.Flags&source.FileVirtual != 0 {
			continue
		}
		mode := os.FileMode(0o644)
		if info, err := os.Stat(file.Path); err == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(file.Path, change.Content, mode); err != nil {
			return result, fmt.Errorf("write %s: %w", file.Path, err)
		}
	}
	return result, nil
}

func gatherCandidates(diagnostics []diag.Diagnostic, result *Result) []candidate {
	cands := make([]candidate, 0)
	order := 0
	for _, d := range diagnostics {
		for _, f := range d.Fixes {
			if len(f.Edits) == 0 {
				result.Skipped = append(result.Skipped, SkippedFix{Title: f.Title, Code: d.Code, Reason: "fix has no edits"})
				continue
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates orders candidates by file, primary span and then by
// insertion order.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := candidates[i].diag, candidates[j].diag
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		return candidates[i].order < candidates[j].order
	})
}

// checkEdits returns a non-empty reason when edits cannot be accepted.
func checkEdits(fs *source.FileSet, accepted map[source.FileID][]diag.FixEdit, edits []diag.FixEdit) string {
	for i, e := range edits {
		if int(e.Span.File) >= fs.Len() {
			return "edit targets an unknown file"
		}
		size := len(fs.Get(e.Span.File).Content)
		if e.Span.End < e.Span.Start || int(e.Span.End) > size {
			return "edit span out of range"
		}
		for _, prev := range accepted[e.Span.File] {
			if spansConflict(prev.Span, e.Span) {
				return "conflicts with a previously applied edit"
			}
		}
		for _, other := range edits[:i] {
			if other.Span.File == e.Span.File && spansConflict(other.Span, e.Span) {
				return "fix edits overlap each other"
			}
		}
	}
	return ""
}

// spansConflict reports whether two edit spans overlap.
// Spans are treated as half-open intervals [Start, End). Two insertions
// (Start == End) conflict only at the same offset, because their order
// would be ambiguous. An insertion conflicts with a non-empty span that
// strictly contains its position.
func spansConflict(a, b source.Span) bool {
	switch {
	case a.Start == a.End && b.Start == b.End:
		return a.Start == b.Start
	case a.Start == a.End:
		return b.Start < a.Start && a.Start < b.End
	case b.Start == b.End:
		return a.Start < b.Start && b.Start < a.End
	}
	return a.Start < b.End && b.Start < a.End
}

// applyEdits applies non-overlapping edits back to front so earlier
// offsets stay valid.
func applyEdits(content []byte, edits []diag.FixEdit) []byte {
	sorted := append([]diag.FixEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End > sorted[j].Span.End
		}
		return sorted[i].Span.Start > sorted[j].Span.Start
	})
	out := append([]byte(nil), content...)
	for _, e := range sorted {
		tail := append([]byte(e.NewText), out[e.Span.End:]...)
		out = append(out[:e.Span.Start], tail...)
	}
	return out
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	if fs == nil || int(fileID) >= fs.Len() {
		return ""
	}
	return fs.Get(fileID).FormatPath("auto", fs.BaseDir())
}
