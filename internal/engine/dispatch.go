package engine

import (
	"github.com/mouse-blink/gorule/internal/engine/flat"
	m "github.com/mouse-blink/gorule/internal/model"
)

// Sink receives normalized problems as they are produced.
type Sink func(p *m.Problem)

// Table is the immutable dispatch table produced by Registry.Compile.
// It may be shared between goroutines.
type Table struct {
	order    []string
	composed map[string]Composed
}

// Selectors returns the compiled selectors in first-registration order.
func (t *Table) Selectors() []string {
	return append([]string(nil), t.order...)
}

// Has reports whether selector has any listener.
func (t *Table) Has(selector string) bool {
	_, ok := t.Composed(selector)

	return ok
}

// Composed returns the composed callback of selector.
func (t *Table) Composed(selector string) (Composed, bool) {
	c, ok := t.composed[selector]

	return c, ok
}

// Dispatch runs the listeners of selector for ev and reports every present
// problem to sink, in order, before returning. A panicking listener stops
// the remaining ones; problems already reported are kept.
func (t *Table) Dispatch(selector string, ev m.Event, sink Sink) {
	c, ok := t.Composed(selector)
	if !ok {
		return
	}

	for p := range flat.Flatten(c(ev)) {
		if p == nil {
			continue
		}

		sink(NormalizeProblem(p))
	}
}

// Handler binds selector and sink into the callback shape the traversal host
// calls directly.
func (t *Table) Handler(selector string, sink Sink) func(ev m.Event) {
	return func(ev m.Event) {
		t.Dispatch(selector, ev, sink)
	}
}
