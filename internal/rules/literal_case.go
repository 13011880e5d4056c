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
			Name:        "literal-case",
			Description: "require lower-case prefixes and exponents in number literals",
			Category:    "style",
			Fixable:     true,
			Messages: map[string]string{
				"literal": "number literal {{literal}} should be written {{want}}",
			},
		},
		Create: createLiteralCase,
	})
}

func createLiteralCase(ctx *Context) {
	ctx.On("BasicLit", func(ev m.Event) engine.Findings {
		lit, ok := ev.Node.(*ast.BasicLit)
		if !ok || (lit.Kind != token.INT && lit.Kind != token.FLOAT && lit.Kind != token.IMAG) {
			return nil
		}

		want := normalizeNumber(lit.Value)
		if want == lit.Value {
			return nil
		}

		return flat.Of(&m.Problem{
			Node:      lit,
			MessageID: "literal",
			Data:      map[string]string{"literal": lit.Value, "want": want},
			Fix: func(b *m.Builder, _ *m.Handle) (m.Edits, error) {
				return b.Replace(lit, want), nil
			},
		})
	})
}

// normalizeNumber lower-cases the base prefix and the exponent marker of a
// number literal. Hex digits keep their case.
func normalizeNumber(v string) string {
	if len(v) < 2 || v[0] != '0' {
		return lowerExponent(v, 'E')
	}

	switch v[1] {
	case 'X', 'x':
		return "0x" + lowerExponent(v[2:], 'P')
	case 'B', 'O':
		return "0" + strings.ToLower(v[1:2]) + v[2:]
	}

	return lowerExponent(v, 'E')
}

func lowerExponent(v string, marker byte) string {
	i := strings.IndexByte(v, marker)
	if i < 0 {
		return v
	}

	return v[:i] + strings.ToLower(string(marker)) + v[i+1:]
}
