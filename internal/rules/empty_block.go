package rules

import (
	"go/ast"

	"github.com/mouse-blink/gorule/internal/engine"
	"github.com/mouse-blink/gorule/internal/engine/flat"
	m "github.com/mouse-blink/gorule/internal/model"
)

func init() {
	register(Rule{
		Meta: Meta{
			Name:           "empty-block",
			Description:    "disallow empty if, for and range bodies",
			Category:       "suspicious",
			HasSuggestions: true,
			Messages: map[string]string{
				"empty":  "empty {{kind}} body",
				"remove": "remove the {{kind}} statement",
				"todo":   "mark the {{kind}} body with {{marker}}",
			},
		},
		Create: createEmptyBlock,
	})
}

func createEmptyBlock(ctx *Context) {
	marker := ctx.StringOption("marker", "TODO")

	// else-if branches cannot be removed on their own
	elseIf := make(map[ast.Node]bool)

	ctx.On("IfStmt", func(ev m.Event) engine.Findings {
		if n, ok := ev.Node.(*ast.IfStmt); ok {
			if next, ok := n.Else.(*ast.IfStmt); ok {
				elseIf[next] = true
			}
		}

		return nil
	})

	ctx.OnEach([]string{"IfStmt", "ForStmt", "RangeStmt"}, func(ev m.Event) engine.Findings {
		var (
			body    *ast.BlockStmt
			kind    string
			header  []ast.Node
			keep    bool
		)

		switch n := ev.Node.(type) {
		case *ast.IfStmt:
			body, kind, keep = n.Body, "if", n.Else != nil || elseIf[n]
			header = []ast.Node{n.Init, n.Cond}
		case *ast.ForStmt:
			// removing for {} would let the function return
			body, kind, keep = n.Body, "for", n.Cond == nil
			header = []ast.Node{n.Init, n.Cond, n.Post}
		case *ast.RangeStmt:
			body, kind = n.Body, "range"
			header = []ast.Node{n.X}
		default:
			return nil
		}

		if body == nil || len(body.List) > 0 || containsComment(ctx.File(), body) {
			return nil
		}

		stmt := ev.Node

		suggestions := []m.Suggestion{{
			MessageID: "todo",
			Data:      map[string]string{"marker": marker},
			Fix: func(b *m.Builder, _ *m.Handle) (m.Edits, error) {
				at := b.Range(body).Start + 1

				return b.ReplaceRange(m.Range{Start: at, End: at}, " /* "+marker+": "+kind+" body left empty */ "), nil
			},
		}}

		if !keep {
			remove := m.Suggestion{
				MessageID: "remove",
				Fix: func(b *m.Builder, h *m.Handle) (m.Edits, error) {
					for _, n := range header {
						if n != nil && hasCall(n) {
							return nil, h.Abort()
						}
					}

					return b.RemoveRange(b.LineRange(b.Range(stmt))), nil
				},
			}
			suggestions = append([]m.Suggestion{remove}, suggestions...)
		}

		return flat.Of(&m.Problem{
			Node:        stmt,
			MessageID:   "empty",
			Data:        map[string]string{"kind": kind},
			Suggestions: suggestions,
		})
	})
}
