package rules

import (
	"go/ast"
	"go/token"
)

// containsComment reports whether any comment of file lies inside n.
// Rewriting such a node would drop the comment.
func containsComment(file *ast.File, n ast.Node) bool {
	if file == nil {
		return false
	}

	for _, g := range file.Comments {
		if g.Pos() >= n.Pos() && g.End() <= n.End() {
			return true
		}
	}

	return false
}

// unparen strips any number of enclosing parentheses.
func unparen(e ast.Expr) ast.Expr {
	for {
		p, ok := e.(*ast.ParenExpr)
		if !ok {
			return e
		}

		e = p.X
	}
}

func isBooleanLiteral(e ast.Expr) (string, bool) {
	id, ok := unparen(e).(*ast.Ident)
	if !ok || (id.Name != "true" && id.Name != "false") {
		return "", false
	}

	return id.Name, true
}

// isOperand reports whether e can be negated or used without parentheses.
func isOperand(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Ident, *ast.BasicLit, *ast.CallExpr, *ast.SelectorExpr,
		*ast.IndexExpr, *ast.IndexListExpr, *ast.ParenExpr, *ast.CompositeLit,
		*ast.UnaryExpr, *ast.StarExpr:
		return true
	}

	return false
}

// negate returns the source of !e, adding parentheses when needed.
func negate(c *Context, e ast.Expr) string {
	if u, ok := unparen(e).(*ast.UnaryExpr); ok && u.Op == token.NOT {
		return c.Text(u.X)
	}

	text := c.Text(e)
	if isOperand(e) {
		return "!" + text
	}

	return "!(" + text + ")"
}

// hasCall reports whether evaluating e may call a function or receive from a
// channel.
func hasCall(e ast.Node) bool {
	found := false

	ast.Inspect(e, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.CallExpr, *ast.FuncLit:
			found = true
		case *ast.UnaryExpr:
			if n.Op == token.ARROW {
				found = true
			}
		}

		return !found
	})

	return found
}

var mirrored = map[token.Token]token.Token{
	token.EQL: token.EQL,
	token.NEQ: token.NEQ,
	token.LSS: token.GTR,
	token.GTR: token.LSS,
	token.LEQ: token.GEQ,
	token.GEQ: token.LEQ,
}

var inverted = map[token.Token]token.Token{
	token.EQL: token.NEQ,
	token.NEQ: token.EQL,
	token.LSS: token.GEQ,
	token.GEQ: token.LSS,
	token.GTR: token.LEQ,
	token.LEQ: token.GTR,
}
