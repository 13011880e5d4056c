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
			Name:           "bool-literal-logic",
			Description:    "disallow boolean literals as operands of && and ||",
			Category:       "style",
			Fixable:        true,
			HasSuggestions: true,
			Messages: map[string]string{
				"redundant": "redundant {{value}} in {{op}} expression",
				"constant":  "{{op}} expression is always {{value}}",
				"replace":   "replace the expression with {{value}}",
			},
		},
		Create: createBoolLiteralLogic,
	})
}

func createBoolLiteralLogic(ctx *Context) {
	ctx.On("BinaryExpr", func(ev m.Event) engine.Findings {
		bin, ok := ev.Node.(*ast.BinaryExpr)
		if !ok || (bin.Op != token.LAND && bin.Op != token.LOR) {
			return nil
		}

		// the identity literal of && is true, of || it is false
		identity := "true"
		if bin.Op == token.LOR {
			identity = "false"
		}

		for _, side := range []struct{ lit, other ast.Expr }{{bin.X, bin.Y}, {bin.Y, bin.X}} {
			if lit, ok := isBooleanLiteral(side.lit); ok {
				return flat.Of(boolLogicProblem(ctx, bin, lit, identity, side.other))
			}
		}

		return nil
	})
}

func boolLogicProblem(ctx *Context, bin *ast.BinaryExpr, lit, identity string, other ast.Expr) *m.Problem {
	data := map[string]string{"value": lit, "op": bin.Op.String()}

	if lit == identity {
		return &m.Problem{
			Node:      bin,
			MessageID: "redundant",
			Data:      data,
			Fix: func(b *m.Builder, h *m.Handle) (m.Edits, error) {
				if containsComment(ctx.File(), bin) {
					return nil, h.Abort()
				}

				return b.Replace(bin, ctx.Text(other)), nil
			},
		}
	}

	// dropping other may drop side effects, so only suggest
	return &m.Problem{
		Node:      bin,
		MessageID: "constant",
		Data:      data,
		Suggestions: []m.Suggestion{{
			MessageID: "replace",
			Data:      map[string]string{"value": lit},
			Fix: func(b *m.Builder, _ *m.Handle) (m.Edits, error) {
				return b.Replace(bin, lit), nil
			},
		}},
	}
}
