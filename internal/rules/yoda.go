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
			Name:        "yoda",
			Description: "require the literal on the right-hand side of comparisons",
			Category:    "style",
			Fixable:     true,
			Messages: map[string]string{
				"yoda": "literal {{literal}} on the left of {{op}}",
			},
		},
		Create: createYoda,
	})
}

func createYoda(ctx *Context) {
	ctx.On("BinaryExpr", func(ev m.Event) engine.Findings {
		bin, ok := ev.Node.(*ast.BinaryExpr)
		if !ok {
			return nil
		}

		mirror, ok := mirrored[bin.Op]
		if !ok || !isLiteral(bin.X) || isLiteral(bin.Y) {
			return nil
		}

		return flat.Of(&m.Problem{
			Node:      bin,
			MessageID: "yoda",
			Data:      map[string]string{"literal": ctx.Text(bin.X), "op": bin.Op.String()},
			Fix: func(b *m.Builder, h *m.Handle) (m.Edits, error) {
				if containsComment(ctx.File(), bin) {
					return nil, h.Abort()
				}

				return b.Replace(bin, ctx.Text(bin.Y)+" "+mirror.String()+" "+ctx.Text(bin.X)), nil
			},
		})
	})
}

// isLiteral matches basic literals, nil and boolean literals, optionally
// signed.
func isLiteral(e ast.Expr) bool {
	switch e := unparen(e).(type) {
	case *ast.BasicLit:
		return true
	case *ast.Ident:
		return e.Name == "nil" || e.Name == "true" || e.Name == "false"
	case *ast.UnaryExpr:
		_, ok := unparen(e.X).(*ast.BasicLit)

		return ok
	}

	return false
}
