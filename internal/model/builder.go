package model

import (
	"go/ast"
	"go/token"

	"github.com/mouse-blink/gorule/internal/engine/flat"
)

// Builder creates edits against one parsed file. Offsets come from the file
// set, text from the original content.
type Builder struct {
	fset    *token.FileSet
	content []byte
}

// NewBuilder returns a Builder for a file parsed into fset from content.
func NewBuilder(fset *token.FileSet, content []byte) *Builder {
	return &Builder{fset: fset, content: content}
}

// Offset converts pos into a byte offset, reporting false for positions
// outside any known file.
func (b *Builder) Offset(pos token.Pos) (int, bool) {
	if !pos.IsValid() {
		return 0, false
	}

	file := b.fset.File(pos)
	if file == nil {
		return 0, false
	}

	return file.Offset(pos), true
}

// Range returns the byte range covered by n.
func (b *Builder) Range(n ast.Node) Range {
	start, _ := b.Offset(n.Pos())
	end, ok := b.Offset(n.End())

	if !ok {
		end = start
	}

	return Range{Start: start, End: end}
}

// Text returns the original source of n.
func (b *Builder) Text(n ast.Node) string {
	return b.TextRange(b.Range(n))
}

// TextRange returns the original source covered by r, or "" when r is out of
// bounds.
func (b *Builder) TextRange(r Range) string {
	if r.Start < 0 || r.End < r.Start || r.End > len(b.content) {
		return ""
	}

	return string(b.content[r.Start:r.End])
}

// ReplaceRange replaces the bytes of r with text.
func (b *Builder) ReplaceRange(r Range, text string) Edits {
	return flat.Of(Edit{Range: r, Text: text})
}

// Replace replaces n with text.
func (b *Builder) Replace(n ast.Node, text string) Edits {
	return b.ReplaceRange(b.Range(n), text)
}

// InsertBefore inserts text right before n.
func (b *Builder) InsertBefore(n ast.Node, text string) Edits {
	r := b.Range(n)

	return b.ReplaceRange(Range{Start: r.Start, End: r.Start}, text)
}

// InsertAfter inserts text right after n.
func (b *Builder) InsertAfter(n ast.Node, text string) Edits {
	r := b.Range(n)

	return b.ReplaceRange(Range{Start: r.End, End: r.End}, text)
}

// Remove deletes n.
func (b *Builder) Remove(n ast.Node) Edits {
	return b.ReplaceRange(b.Range(n), "")
}

// RemoveRange deletes the bytes of r.
func (b *Builder) RemoveRange(r Range) Edits {
	return b.ReplaceRange(r, "")
}

// Position converts a byte offset into a 1-based line/column pair.
func (b *Builder) Position(pos token.Pos) Position {
	p := b.fset.Position(pos)

	return Position{Line: p.Line, Column: p.Column}
}

// LineRange widens r to cover its whole line, including the trailing
// newline, when only blanks surround it on that line. Otherwise r is
// returned unchanged.
func (b *Builder) LineRange(r Range) Range {
	start := r.Start
	for start > 0 && isBlank(b.content[start-1]) {
		start--
	}

	if start > 0 && b.content[start-1] != '\n' {
		return r
	}

	end := r.End
	for end < len(b.content) && isBlank(b.content[end]) {
		end++
	}

	switch {
	case end == len(b.content):
	case b.content[end] == '\n':
		end++
	default:
		return r
	}

	return Range{Start: start, End: end}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}
