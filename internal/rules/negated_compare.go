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
			Name:           "negated-compare",
			Description:    "prefer the inverted operator over negating a comparison",
			Category:       "simplify",
			Fixable:        true,
			HasSuggestions: true,
			Messages: map[string]string{
				"negated": "negated comparison !(x {{op}} y), use x {{inverse}} y",
				"ordered": "negated ordering !(x {{op}} y); x {{inverse}} y differs for NaN",
				"invert":  "rewrite as x {{inverse}} y",
			},
		},
		Create: createNegatedCompare,
	})
}

func createNegatedCompare(ctx *Context) {
	// operands binding tighter than a comparison keep their parentheses
	tight := make(map[ast.Expr]bool)

	ctx.On("BinaryExpr", func(ev m.Event) engine.Findings {
		if bin, ok := ev.Node.(*ast.BinaryExpr); ok && bin.Op != token.LAND && bin.Op != token.LOR {
			tight[bin.X], tight[bin.Y] = true, true
		}

		return nil
	})

	ctx.On("UnaryExpr", func(ev m.Event) engine.Findings {
		not, ok := ev.Node.(*ast.UnaryExpr)
		if !ok {
			return nil
		}

		tight[not.X] = true

		if not.Op != token.NOT {
			return nil
		}

		paren, ok := not.X.(*ast.ParenExpr)
		if !ok {
			return nil
		}

		cmp, ok := unparen(paren.X).(*ast.BinaryExpr)
		if !ok {
			return nil
		}

		inverse, ok := inverted[cmp.Op]
		if !ok {
			return nil
		}

		data := map[string]string{"op": cmp.Op.String(), "inverse": inverse.String()}
		rewrite := func(b *m.Builder, h *m.Handle) (m.Edits, error) {
			if containsComment(ctx.File(), not) {
				return nil, h.Abort()
			}

			text := ctx.Text(cmp.X) + " " + inverse.String() + " " + ctx.Text(cmp.Y)
			if tight[not] {
				text = "(" + text + ")"
			}

			return b.Replace(not, text), nil
		}

		if cmp.Op == token.EQL || cmp.Op == token.NEQ {
			return flat.Of(&m.Problem{Node: not, MessageID: "negated", Data: data, Fix: rewrite})
		}

		return flat.Of(&m.Problem{
			Node:        not,
			MessageID:   "ordered",
			Data:        data,
			Suggestions: []m.Suggestion{{MessageID: "invert", Fix: rewrite}},
		})
	})
}
