package interp

import (
	"errors"

	"github.com/malphas-lang/lambda/internal/ast"
)

var (
	// ErrNotLambda is returned when alpha conversion is applied to a term
	// that is not an abstraction.
	ErrNotLambda = errors.New("alpha conversion of a non-lambda term")
	// ErrNameOccurs is returned when the new binder name already occurs in
	// the body being converted.
	ErrNameOccurs = errors.New("new binder name already occurs in the body")
)

// AlphaConvert renames the binder of the lambda e to newName, along with
// every occurrence it binds.
func AlphaConvert(e ast.Expression, newName string) (ast.Expression, error) {
	l, ok := e.(*ast.Lambda)
	if !ok {
		return nil, ErrNotLambda
	}
	if ast.Occurs(l.Body, newName) {
		return nil, ErrNameOccurs
	}
	return ast.NewLambda(newName, Rename(l.Body, l.Param, newName)), nil
}

// Rename replaces the free occurrences of from in e with to. A nested lambda
// that rebinds from shadows it and is returned untouched. Unchanged subtrees
// are shared with e.
func Rename(e ast.Expression, from, to string) ast.Expression {
	switch n := e.(type) {
	case *ast.Variable:
		if n.Name == from {
			return ast.NewVariable(to)
		}
		return n

	case *ast.Lambda:
		if n.Param == from {
			return n
		}
		body := Rename(n.Body, from, to)
		if body == n.Body {
			return n
		}
		return ast.NewLambda(n.Param, body)

	case *ast.Application:
		var terms []ast.Expression
		for i, t := range n.Terms {
			r := Rename(t, from, to)
			if r != t && terms == nil {
				terms = append(make([]ast.Expression, 0, len(n.Terms)), n.Terms[:i]...)
			}
			if terms != nil {
				terms = append(terms, r)
			}
		}
		if terms == nil {
			return n
		}
		return &ast.Application{Terms: terms}
	}
	return e
}
