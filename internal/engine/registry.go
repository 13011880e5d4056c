// Package engine composes rule listeners per selector and normalizes the
// problems and fixes they produce into the shape the lint host consumes.
//
// Rules register listeners on a Registry once per activation. Compile freezes
// the registry into a Table, which the traversal host calls per firing
// selector. Every present problem is normalized and handed to the host sink
// as soon as it is produced.
package engine

import (
	"github.com/mouse-blink/gorule/internal/engine/flat"
	m "github.com/mouse-blink/gorule/internal/model"
)

const exitSuffix = ":exit"

// Findings is nil, a single problem, or a lazily nested sequence of problems.
type Findings = flat.Value[*m.Problem]

// Listener handles one event for the selectors it is registered on.
type Listener func(ev m.Event) Findings

// ExitSelector decorates selector so that it fires when leaving a node.
func ExitSelector(selector string) string {
	return selector + exitSuffix
}

// Registry is an ordered multimap from selector to listeners.
// It is not safe for concurrent use.
type Registry struct {
	order     []string
	listeners map[string][]Listener
	compiled  bool
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[string][]Listener)}
}

// On appends l to the listeners of selector.
func (r *Registry) On(selector string, l Listener) *Registry {
	r.add(selector, l)

	return r
}

// OnEach appends l to the listeners of every selector.
func (r *Registry) OnEach(selectors []string, l Listener) *Registry {
	for _, s := range selectors {
		r.add(s, l)
	}

	return r
}

// OnExit appends l to the listeners of the exit variant of selector.
func (r *Registry) OnExit(selector string, l Listener) *Registry {
	r.add(ExitSelector(selector), l)

	return r
}

// OnExitEach appends l to the exit variant of every selector.
func (r *Registry) OnExitEach(selectors []string, l Listener) *Registry {
	for _, s := range selectors {
		r.add(ExitSelector(s), l)
	}

	return r
}

// Len returns the number of registered (selector, listener) pairs.
func (r *Registry) Len() int {
	n := 0
	for _, ls := range r.listeners {
		n += len(ls)
	}

	return n
}

func (r *Registry) add(selector string, l Listener) {
	if r.compiled {
		panic("engine: registry modified after Compile")
	}

	if l == nil {
		return
	}

	if _, ok := r.listeners[selector]; !ok {
		r.order = append(r.order, selector)
	}

	r.listeners[selector] = append(r.listeners[selector], l)
}

// Compile freezes the registry and returns one composed callback per
// selector with at least one listener.
func (r *Registry) Compile() *Table {
	r.compiled = true

	t := &Table{
		order:    make([]string, 0, len(r.order)),
		composed: make(map[string]Composed, len(r.order)),
	}

	for _, sel := range r.order {
		ls := r.listeners[sel]
		if len(ls) == 0 {
			continue
		}

		t.order = append(t.order, sel)
		t.composed[sel] = compose(append([]Listener(nil), ls...))
	}

	return t
}

// Composed runs every listener of one selector and returns their findings as
// one lazy value.
type Composed func(ev m.Event) Findings

func compose(ls []Listener) Composed {
	return func(ev m.Event) Findings {
		return flat.Gen(func(yield func(Findings) bool) {
			for _, l := range ls {
				if !yield(l(ev)) {
					return
				}
			}
		})
	}
}
