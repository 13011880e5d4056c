package rules

import (
	"go/ast"
	"go/token"
	"strings"

	"github.com/mouse-blink/gorule/internal/engine"
	"github.com/mouse-blink/gorule/internal/engine/flat"
	m "github.com/mouse-blink/gorule/internal/model"
)

func init() {
	register(Rule{
		Meta: Meta{
			Name:        "unary-plus",
			Description: "disallow the no-op unary + operator",
			Category:    "simplify",
			Fixable:     true,
			Messages: map[string]string{
				"plus": "unary + has no effect",
			},
		},
		Create: createUnaryPlus,
	})
}

func createUnaryPlus(ctx *Context) {
	ctx.On("UnaryExpr", func(ev m.Event) engine.Findings {
		u, ok := ev.Node.(*ast.UnaryExpr)
		if !ok || u.Op != token.ADD {
			return nil
		}

		return flat.Of(&m.Problem{
			Node:      u,
			MessageID: "plus",
			Fix: func(b *m.Builder, _ *m.Handle) (m.Edits, error) {
				text := ctx.Text(u.X)

				// -+-x must not collapse into the decrement token --x
				start := b.Range(u).Start
				prev := b.TextRange(m.Range{Start: start - 1, End: start})

				if (prev == "-" || prev == "+") && strings.HasPrefix(text, prev) {
					text = " " + text
				}

				return b.Replace(u, text), nil
			},
		})
	})
}
