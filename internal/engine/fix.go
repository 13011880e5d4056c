package engine

import (
	"errors"
	"fmt"

	"github.com/mouse-blink/gorule/internal/engine/flat"
	m "github.com/mouse-blink/gorule/internal/model"
)

// State is the terminal state of one fix invocation.
type State uint8

const (
	// Idle is the zero Outcome: the fix has not been resolved.
	Idle State = iota
	// Completed carries the edits, possibly none.
	Completed
	// Aborted means the fix called Handle.Abort; any edits are discarded.
	Aborted
	// Failed carries the error returned by the fix.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	case Failed:
		return "failed"
	}

	return fmt.Sprintf("state(%d)", uint8(s))
}

// Outcome is the result of resolving a fix.
type Outcome struct {
	State State
	Edits []m.Edit
	Err   error
}

// Resolve calls fix once with b and a fresh handle and materializes its
// edits. Absent edits are dropped; an empty result has nil Edits.
func Resolve(fix m.FixFunc, b *m.Builder) Outcome {
	h := &m.Handle{}

	v, err := fix(b, h)
	if h.Aborted() || errors.Is(err, m.ErrAborted) {
		return Outcome{State: Aborted}
	}

	if err != nil {
		return Outcome{State: Failed, Err: err}
	}

	var edits []m.Edit

	for e := range flat.Flatten(v) {
		if h.Aborted() {
			return Outcome{State: Aborted}
		}

		if e.IsZero() {
			continue
		}

		edits = append(edits, e)
	}

	if h.Aborted() {
		return Outcome{State: Aborted}
	}

	return Outcome{State: Completed, Edits: edits}
}

// NormalizeFix wraps fix into the host fixer shape: aborted fixes return no
// edits and no error, failed fixes return the fix's own error.
func NormalizeFix(fix m.FixFunc) m.Fixer {
	return func(b *m.Builder) ([]m.Edit, error) {
		out := Resolve(fix, b)
		if out.State == Failed {
			return nil, out.Err
		}

		return out.Edits, nil
	}
}
