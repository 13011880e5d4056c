// Package traverse walks a Go syntax tree and fires selector events.
package traverse

import (
	"go/ast"
	"reflect"

	"github.com/mouse-blink/gorule/internal/engine"
	m "github.com/mouse-blink/gorule/internal/model"
)

const (
	// AnySelector fires for every node.
	AnySelector = "*"
	// FileSelector fires once for the file root, before any other node.
	FileSelector = "File"
	// CommentSelector fires once per comment group with a CommentEvent.
	CommentSelector = "Comment"
)

// FireFunc receives every event in traversal order.
type FireFunc func(selector string, ev m.Event)

// Selector returns the node type name used as selector for n, e.g.
// "BinaryExpr" for *ast.BinaryExpr.
func Selector(n ast.Node) string {
	t := reflect.TypeOf(n)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}

// Walk visits file depth-first. Comment groups are announced right after the
// file root is entered and before its declarations. For every node the
// wildcard fires before the type selector on entry and after it on exit.
func Walk(file *ast.File, fire FireFunc) {
	if file == nil {
		return
	}

	var stack []ast.Node

	ast.Inspect(file, func(n ast.Node) bool {
		if n == nil {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			ev := m.NewNodeEvent(top, true)
			fire(engine.ExitSelector(Selector(top)), ev)
			fire(engine.ExitSelector(AnySelector), ev)

			return true
		}

		// comment groups are delivered as CommentEvents instead
		switch n.(type) {
		case *ast.CommentGroup, *ast.Comment:
			return false
		}

		stack = append(stack, n)

		ev := m.NewNodeEvent(n, false)
		fire(AnySelector, ev)
		fire(Selector(n), ev)

		if n == ast.Node(file) {
			for _, group := range file.Comments {
				fire(CommentSelector, m.NewCommentEvent(file, group))
			}
		}

		return true
	})
}

// Run walks file and dispatches every event the table has listeners for.
func Run(file *ast.File, table *engine.Table, sink engine.Sink) {
	Walk(file, func(selector string, ev m.Event) {
		if !table.Has(selector) {
			return
		}

		table.Dispatch(selector, ev, sink)
	})
}
