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
			Name:        "bool-compare",
			Description: "disallow comparing expressions to boolean literals",
			Category:    "style",
			Fixable:     true,
			Messages: map[string]string{
				"compare": "omit comparison to boolean literal {{value}}",
			},
		},
		Create: createBoolCompare,
	})
}

func createBoolCompare(ctx *Context) {
	ctx.On("BinaryExpr", func(ev m.Event) engine.Findings {
		bin, ok := ev.Node.(*ast.BinaryExpr)
		if !ok || (bin.Op != token.EQL && bin.Op != token.NEQ) {
			return nil
		}

		lit, other, ok := boolOperand(bin)
		if !ok {
			return nil
		}

		return flat.Of(&m.Problem{
			Node:      bin,
			MessageID: "compare",
			Data:      map[string]string{"value": lit},
			Fix: func(b *m.Builder, h *m.Handle) (m.Edits, error) {
				if _, constant := isBooleanLiteral(other); constant || containsComment(ctx.File(), bin) {
					return nil, h.Abort()
				}

				if (lit == "true") == (bin.Op == token.EQL) {
					return b.Replace(bin, ctx.Text(other)), nil
				}

				return b.Replace(bin, negate(ctx, other)), nil
			},
		})
	})
}

// boolOperand returns the literal side of a comparison and the other operand.
func boolOperand(bin *ast.BinaryExpr) (string, ast.Expr, bool) {
	if lit, ok := isBooleanLiteral(bin.Y); ok {
		return lit, bin.X, true
	}

	if lit, ok := isBooleanLiteral(bin.X); ok {
		return lit, bin.Y, true
	}

	return "", nil, false
}
