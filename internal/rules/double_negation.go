package rules

import (
	"go/ast"
	"go/token"
	"maps"

	"github.com/mouse-blink/gorule/internal/engine"
	"github.com/mouse-blink/gorule/internal/engine/flat"
	m "github.com/mouse-blink/gorule/internal/model"
)

func init() {
	register(Rule{
		Meta: Meta{
			Name:        "double-negation",
			Description: "disallow applying the same unary operator twice",
			Category:    "simplify",
			Fixable:     true,
			Messages: map[string]string{
				"logical":    "double logical negation {{op}}{{op}} cancels out",
				"arithmetic": "double {{kind}} {{op}}{{op}} cancels out",
			},
		},
		Create: createDoubleNegation,
	})
}

func createDoubleNegation(ctx *Context) {
	ctx.On("UnaryExpr", func(ev m.Event) engine.Findings {
		inner, outer, ok := doubled(ev.Node, token.NOT)
		if !ok {
			return nil
		}

		return flat.Of(cancelProblem(ctx, outer, inner, "logical", nil))
	})

	ctx.On("UnaryExpr", func(ev m.Event) engine.Findings {
		return flat.Gen(func(yield func(engine.Findings) bool) {
			for op, kind := range map[token.Token]string{token.SUB: "negation", token.XOR: "complement"} {
				inner, outer, ok := doubled(ev.Node, op)
				if !ok {
					continue
				}

				yield(flat.Of(cancelProblem(ctx, outer, inner, "arithmetic", map[string]string{"kind": kind})))

				return
			}
		})
	})
}

// doubled matches op(op x), looking through parentheses between the two.
func doubled(n ast.Node, op token.Token) (*ast.UnaryExpr, *ast.UnaryExpr, bool) {
	outer, ok := n.(*ast.UnaryExpr)
	if !ok || outer.Op != op {
		return nil, nil, false
	}

	inner, ok := unparen(outer.X).(*ast.UnaryExpr)
	if !ok || inner.Op != op {
		return nil, nil, false
	}

	return inner, outer, true
}

func cancelProblem(ctx *Context, outer, inner *ast.UnaryExpr, id string, extra map[string]string) *m.Problem {
	data := map[string]string{"op": outer.Op.String()}
	maps.Copy(data, extra)

	return &m.Problem{
		Node:      outer,
		MessageID: id,
		Data:      data,
		Fix: func(b *m.Builder, h *m.Handle) (m.Edits, error) {
			if containsComment(ctx.File(), outer) {
				return nil, h.Abort()
			}

			text := ctx.Text(inner.X)
			if !isOperand(inner.X) {
				text = "(" + text + ")"
			}

			return b.Replace(outer, text), nil
		},
	}
}
