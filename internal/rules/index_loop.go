package rules

import (
	"go/ast"
	"go/token"

	"github.com/mouse-blink/gorule/internal/engine"
	"github.com/mouse-blink/gorule/internal/engine/flat"
	m "github.com/mouse-blink/gorule/internal/model"
)

func init() {
	register(Rule{
		Meta: Meta{
			Name:           "index-loop",
			Description:    "suggest range loops for counting loops over len(s)",
			Category:       "style",
			HasSuggestions: true,
			Messages: map[string]string{
				"index": "loop over {{slice}} by index {{index}} can use range",
				"range": "rewrite as for {{index}} := range {{slice}} (slices and arrays only)",
			},
		},
		Create: createIndexLoop,
	})
}

func createIndexLoop(ctx *Context) {
	ctx.On("ForStmt", func(ev m.Event) engine.Findings {
		loop, ok := ev.Node.(*ast.ForStmt)
		if !ok {
			return nil
		}

		index, slice, ok := countingLoop(loop)
		if !ok || assigns(loop.Body, index.Name) {
			return nil
		}

		sliceText := ctx.Text(slice)

		return flat.Of(&m.Problem{
			Node:      loop,
			MessageID: "index",
			Data:      map[string]string{"index": index.Name, "slice": sliceText},
			Suggestions: []m.Suggestion{{
				MessageID: "range",
				Fix: func(b *m.Builder, h *m.Handle) (m.Edits, error) {
					// range evaluates its operand once and steps strings by rune
					if hasCall(slice) || isStringLiteral(slice) || assignsText(ctx, loop.Body, sliceText) {
						return nil, h.Abort()
					}

					header := m.Range{Start: b.Range(loop).Start, End: b.Range(loop.Body).Start}

					return b.ReplaceRange(header, "for "+index.Name+" := range "+sliceText+" "), nil
				},
			}},
		})
	})
}

// countingLoop matches for i := 0; i < len(s); i++.
func countingLoop(loop *ast.ForStmt) (*ast.Ident, ast.Expr, bool) {
	init, ok := loop.Init.(*ast.AssignStmt)
	if !ok || init.Tok != token.DEFINE || len(init.Lhs) != 1 || len(init.Rhs) != 1 {
		return nil, nil, false
	}

	index, ok := init.Lhs[0].(*ast.Ident)
	if !ok {
		return nil, nil, false
	}

	if zero, ok := init.Rhs[0].(*ast.BasicLit); !ok || zero.Value != "0" {
		return nil, nil, false
	}

	cond, ok := loop.Cond.(*ast.BinaryExpr)
	if !ok || cond.Op != token.LSS || !isIdent(cond.X, index.Name) {
		return nil, nil, false
	}

	call, ok := cond.Y.(*ast.CallExpr)
	if !ok || !isIdent(call.Fun, "len") || len(call.Args) != 1 {
		return nil, nil, false
	}

	post, ok := loop.Post.(*ast.IncDecStmt)
	if !ok || post.Tok != token.INC || !isIdent(post.X, index.Name) {
		return nil, nil, false
	}

	return index, call.Args[0], true
}

func isIdent(e ast.Expr, name string) bool {
	id, ok := e.(*ast.Ident)

	return ok && id.Name == name
}

// assigns reports whether body assigns to, increments or takes the address
// of the variable name.
func assigns(body ast.Node, name string) bool {
	found := false

	ast.Inspect(body, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.AssignStmt:
			for _, lhs := range n.Lhs {
				if isIdent(lhs, name) {
					found = true
				}
			}
		case *ast.IncDecStmt:
			found = found || isIdent(n.X, name)
		case *ast.UnaryExpr:
			found = found || (n.Op == token.AND && isIdent(n.X, name))
		}

		return !found
	})

	return found
}

func assignsText(ctx *Context, body ast.Node, text string) bool {
	found := false

	ast.Inspect(body, func(n ast.Node) bool {
		if as, ok := n.(*ast.AssignStmt); ok {
			for _, lhs := range as.Lhs {
				if ctx.Text(lhs) == text {
					found = true
				}
			}
		}

		return !found
	})

	return found
}

func isStringLiteral(e ast.Expr) bool {
	lit, ok := unparen(e).(*ast.BasicLit)

	return ok && lit.Kind == token.STRING
}
