// Package fix applies the automatic fixes of lint reports to source text.
package fix

import (
	"errors"
	"fmt"
	"sort"

	m "github.com/mouse-blink/gorule/internal/model"
)

// ErrNoFixes is returned when no fix could be applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// DefaultMaxPasses bounds how often a file is re-linted and re-fixed.
const DefaultMaxPasses = 10

// AppliedFix records a fix that made it into the output.
type AppliedFix struct {
	Rule      string
	Message   string
	EditCount int
}

// SkippedFix records a fix that was left out and why.
type SkippedFix struct {
	Rule   string
	Reason string
}

// Result is the outcome of one Apply call.
type Result struct {
	Content []byte
	Applied []AppliedFix
	Skipped []SkippedFix
}

type candidate struct {
	report m.Report
	order  int
}

// Apply applies the fixes carried by reports to content. Fixes are taken in
// source order; a fix overlapping an already accepted one is skipped and left
// for the next pass. Suggestions are never applied.
func Apply(content []byte, reports []m.Report) (Result, error) {
	res := Result{Content: content}

	cands := make([]candidate, 0, len(reports))

	for i, r := range reports {
		if !r.Fixable() {
			continue
		}

		cands = append(cands, candidate{report: r, order: i})
	}

	if len(cands) == 0 {
		return res, ErrNoFixes
	}

	sortCandidates(cands)

	var accepted []m.Edit

	for _, c := range cands {
		edits := c.report.Fix

		if reason := validate(edits, len(content)); reason != "" {
			res.Skipped = append(res.Skipped, SkippedFix{Rule: c.report.Rule, Reason: reason})

			continue
		}

		if conflictsWithExisting(accepted, edits) {
			res.Skipped = append(res.Skipped, SkippedFix{
				Rule:   c.report.Rule,
				Reason: "conflicts with previously applied edits",
			})

			continue
		}

		accepted = append(accepted, edits...)
		res.Applied = append(res.Applied, AppliedFix{
			Rule:      c.report.Rule,
			Message:   c.report.Message,
			EditCount: len(edits),
		})
	}

	if len(res.Applied) == 0 {
		return res, ErrNoFixes
	}

	out, err := applyEdits(content, accepted)
	if err != nil {
		return res, err
	}

	res.Content = out

	return res, nil
}

// sortCandidates orders fixes by the start of their first edit, then by
// report order.
func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		si, sj := firstStart(cands[i].report.Fix), firstStart(cands[j].report.Fix)
		if si != sj {
			return si < sj
		}

		return cands[i].order < cands[j].order
	})
}

func firstStart(edits []m.Edit) int {
	start := edits[0].Range.Start
	for _, e := range edits[1:] {
		start = min(start, e.Range.Start)
	}

	return start
}

func validate(edits []m.Edit, size int) string {
	for i, e := range edits {
		if e.Range.Start < 0 || e.Range.End < e.Range.Start || e.Range.End > size {
			return "edit range out of bounds"
		}

		for _, other := range edits[i+1:] {
			if rangesConflict(e.Range, other.Range) {
				return "fix contains overlapping edits"
			}
		}
	}

	return ""
}

func conflictsWithExisting(existing, edits []m.Edit) bool {
	for _, prev := range existing {
		for _, e := range edits {
			if rangesConflict(prev.Range, e.Range) {
				return true
			}
		}
	}

	return false
}

// rangesConflict reports whether two half-open ranges overlap. Two
// insertions never conflict; an insertion conflicts with a range strictly
// containing its position.
func rangesConflict(a, b m.Range) bool {
	if a.Len() == 0 && b.Len() == 0 {
		return false
	}

	if a.Len() == 0 {
		return b.Start < a.Start && a.Start < b.End
	}

	if b.Len() == 0 {
		return a.Start < b.Start && b.Start < a.End
	}

	return a.Start < b.End && b.Start < a.End
}

// applyEdits writes edits back to front so earlier offsets stay valid.
// Insertions at the same offset keep their acceptance order.
func applyEdits(content []byte, edits []m.Edit) ([]byte, error) {
	sorted := append([]m.Edit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Range.Start > sorted[j].Range.Start
	})

	out := append([]byte(nil), content...)

	for i := 0; i < len(sorted); {
		// group insertions sharing one offset so they land in order
		j := i + 1
		for j < len(sorted) && sorted[j].Range.Start == sorted[i].Range.Start {
			j++
		}

		group := sorted[i:j]
		start := group[0].Range.Start
		end := start

		var text []byte

		for _, e := range group {
			if e.Range.End > len(out) {
				return nil, fmt.Errorf("edit %d:%d out of range", e.Range.Start, e.Range.End)
			}

			end = max(end, e.Range.End)
			text = append(text, e.Text...)
		}

		out = replaceRange(out, start, end, text)
		i = j
	}

	return out, nil
}

func replaceRange(content []byte, start, end int, replacement []byte) []byte {
	mutated := make([]byte, 0, len(content)-(end-start)+len(replacement))
	mutated = append(mutated, content[:start]...)
	mutated = append(mutated, replacement...)
	mutated = append(mutated, content[end:]...)

	return mutated
}
