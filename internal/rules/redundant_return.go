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
			Name:        "redundant-return",
			Description: "disallow a bare return as the last statement of a function without results",
			Category:    "simplify",
			Fixable:     true,
			Messages: map[string]string{
				"redundant": "redundant return at the end of {{func}}",
			},
		},
		Create: createRedundantReturn,
	})
}

func createRedundantReturn(ctx *Context) {
	ctx.OnExitEach([]string{"FuncDecl", "FuncLit"}, func(ev m.Event) engine.Findings {
		var (
			typ  *ast.FuncType
			body *ast.BlockStmt
			name = "function literal"
		)

		switch n := ev.Node.(type) {
		case *ast.FuncDecl:
			typ, body, name = n.Type, n.Body, n.Name.Name
		case *ast.FuncLit:
			typ, body = n.Type, n.Body
		default:
			return nil
		}

		if body == nil || len(body.List) == 0 || (typ.Results != nil && len(typ.Results.List) > 0) {
			return nil
		}

		ret, ok := body.List[len(body.List)-1].(*ast.ReturnStmt)
		if !ok || len(ret.Results) > 0 {
			return nil
		}

		return flat.Of(&m.Problem{
			Node:      ret,
			MessageID: "redundant",
			Data:      map[string]string{"func": name},
			Fix: func(b *m.Builder, _ *m.Handle) (m.Edits, error) {
				return b.RemoveRange(b.LineRange(b.Range(ret))), nil
			},
		})
	})
}
