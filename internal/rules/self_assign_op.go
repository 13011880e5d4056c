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
			Name:        "self-assign-op",
			Description: "prefer compound assignment and increment statements",
			Category:    "style",
			Fixable:     true,
			Messages: map[string]string{
				"compound":  "use {{target}} {{op}}= ... instead of repeating {{target}}",
				"increment": "use {{target}}{{incdec}}",
			},
		},
		Create: createSelfAssignOp,
	})
}

var compoundOps = map[token.Token]token.Token{
	token.ADD:     token.ADD_ASSIGN,
	token.SUB:     token.SUB_ASSIGN,
	token.MUL:     token.MUL_ASSIGN,
	token.QUO:     token.QUO_ASSIGN,
	token.REM:     token.REM_ASSIGN,
	token.AND:     token.AND_ASSIGN,
	token.OR:      token.OR_ASSIGN,
	token.XOR:     token.XOR_ASSIGN,
	token.SHL:     token.SHL_ASSIGN,
	token.SHR:     token.SHR_ASSIGN,
	token.AND_NOT: token.AND_NOT_ASSIGN,
}

func createSelfAssignOp(ctx *Context) {
	ctx.On("AssignStmt", func(ev m.Event) engine.Findings {
		as, ok := ev.Node.(*ast.AssignStmt)
		if !ok || as.Tok != token.ASSIGN || len(as.Lhs) != 1 || len(as.Rhs) != 1 {
			return nil
		}

		bin, ok := as.Rhs[0].(*ast.BinaryExpr)
		if !ok {
			return nil
		}

		compound, ok := compoundOps[bin.Op]
		if !ok {
			return nil
		}

		target := ctx.Text(as.Lhs[0])
		if target == "" || ctx.Text(unparen(bin.X)) != target {
			return nil
		}

		data := map[string]string{"target": target, "op": bin.Op.String()}

		// the target is evaluated once instead of twice after the rewrite
		guard := func(h *m.Handle) error {
			if hasCall(as.Lhs[0]) || containsComment(ctx.File(), as) {
				return h.Abort()
			}

			return nil
		}

		if incdec, ok := incDec(bin); ok {
			data["incdec"] = incdec.String()

			return flat.Of(&m.Problem{
				Node:      as,
				MessageID: "increment",
				Data:      data,
				Fix: func(b *m.Builder, h *m.Handle) (m.Edits, error) {
					if err := guard(h); err != nil {
						return nil, err
					}

					return b.Replace(as, target+incdec.String()), nil
				},
			})
		}

		return flat.Of(&m.Problem{
			Node:      as,
			MessageID: "compound",
			Data:      data,
			Fix: func(b *m.Builder, h *m.Handle) (m.Edits, error) {
				if err := guard(h); err != nil {
					return nil, err
				}

				return b.Replace(as, target+" "+compound.String()+" "+ctx.Text(bin.Y)), nil
			},
		})
	})
}

func incDec(bin *ast.BinaryExpr) (token.Token, bool) {
	lit, ok := bin.Y.(*ast.BasicLit)
	if !ok || lit.Kind != token.INT || lit.Value != "1" {
		return token.ILLEGAL, false
	}

	switch bin.Op { //nolint:exhaustive
	case token.ADD:
		return token.INC, true
	case token.SUB:
		return token.DEC, true
	default:
		return token.ILLEGAL, false
	}
}
