package model

import (
	"errors"
	"go/ast"

	"github.com/mouse-blink/gorule/internal/engine/flat"
)

// ErrAborted is returned by Handle.Abort. A fix that ends with it is treated
// as declining to fix anything.
var ErrAborted = errors.New("fix aborted")

// Range is a half-open byte range [Start, End) over the original source.
type Range struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// Len returns the number of bytes covered by r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Edit replaces the bytes in Range with Text.
type Edit struct {
	Range Range  `yaml:"range"`
	Text  string `yaml:"text"`
}

// IsZero reports whether e is the absent edit.
func (e Edit) IsZero() bool {
	return e == Edit{}
}

// Edits is a single edit, nil, or a lazily nested sequence of edits.
type Edits = flat.Value[Edit]

// Handle lets a fix abandon itself. The zero value is ready to use.
type Handle struct {
	aborted bool
}

// Abort marks the fix as abandoned and returns ErrAborted so callers can
// write `return nil, h.Abort()`.
func (h *Handle) Abort() error {
	h.aborted = true

	return ErrAborted
}

// Aborted reports whether Abort was called.
func (h *Handle) Aborted() bool {
	return h != nil && h.aborted
}

// FixFunc computes the edits of a fix. It must not modify the tree.
type FixFunc func(b *Builder, h *Handle) (Edits, error)

// Fixer is the host-facing form of a fix: a concrete edit list, nil when the
// fix declined or aborted.
type Fixer func(b *Builder) ([]Edit, error)

// Suggestion is an alternative fix that is never applied automatically.
type Suggestion struct {
	MessageID string
	Desc      string
	Data      map[string]string
	Fix       FixFunc

	// Resolve is set by the engine on normalized suggestions.
	Resolve Fixer
}

// Problem is a single finding produced by a rule listener.
type Problem struct {
	Node      ast.Node
	Message   string
	MessageID string
	Data      map[string]string
	Fix       FixFunc

	Suggestions []Suggestion

	// Resolve is set by the engine on normalized problems that carry a Fix.
	Resolve Fixer
}
