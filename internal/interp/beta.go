package interp

import "github.com/malphas-lang/lambda/internal/ast"

// BetaReduce performs one normal-order (leftmost-outermost) reduction step.
// It reports false when e is already in normal form.
func BetaReduce(e ast.Expression, gen *NameGen) (ast.Expression, bool) {
	switch n := e.(type) {
	case *ast.Application:
		if l, ok := n.Terms[0].(*ast.Lambda); ok {
			reduced := Substitute(l.Body, l.Param, n.Terms[1], gen)
			terms := append([]ast.Expression{reduced}, n.Terms[2:]...)
			out, _ := ast.NewApplication(terms)
			return out, true
		}
		for i, t := range n.Terms {
			r, ok := BetaReduce(t, gen)
			if !ok {
				continue
			}
			terms := append([]ast.Expression(nil), n.Terms...)
			terms[i] = r
			return &ast.Application{Terms: terms}, true
		}
		return n, false

	case *ast.Lambda:
		body, ok := BetaReduce(n.Body, gen)
		if !ok {
			return n, false
		}
		return ast.NewLambda(n.Param, body), true
	}
	return e, false
}
