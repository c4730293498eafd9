package ast

import (
	"errors"
	"strings"
)

// ErrEmptyApplication is returned when an application is built from no terms.
var ErrEmptyApplication = errors.New("application of zero terms")

// Expression represents a lambda-calculus term. Expressions are immutable
// once built, so subtrees can be shared between terms.
type Expression interface {
	String() string
	exprNode()
}

// Variable represents a variable reference.
type Variable struct {
	Name string
}

// Lambda represents an abstraction binding Param in Body.
type Lambda struct {
	Param string
	Body  Expression
}

// Application represents juxtaposed terms applied left to right. It always
// holds at least two terms; build it with NewApplication.
type Application struct {
	Terms []Expression
}

// NewVariable constructs a variable node.
func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

// NewLambda constructs an abstraction node.
func NewLambda(param string, body Expression) *Lambda {
	return &Lambda{Param: param, Body: body}
}

// NewApplication collapses terms into an expression: a single term is
// returned as is, two or more become an Application. The slice is copied.
func NewApplication(terms []Expression) (Expression, error) {
	switch len(terms) {
	case 0:
		return nil, ErrEmptyApplication
	case 1:
		return terms[0], nil
	}
	return &Application{Terms: append([]Expression(nil), terms...)}, nil
}

// String renders the variable name.
func (v *Variable) String() string { return v.Name }

// String renders the abstraction as λparam.body.
func (l *Lambda) String() string {
	return "λ" + l.Param + "." + l.Body.String()
}

// String renders the terms separated by spaces. Nested applications and
// lambdas that are not in final position are parenthesized.
func (a *Application) String() string {
	parts := make([]string, len(a.Terms))
	last := len(a.Terms) - 1
	for i, t := range a.Terms {
		s := t.String()
		switch t.(type) {
		case *Application:
			s = "(" + s + ")"
		case *Lambda:
			if i != last {
				s = "(" + s + ")"
			}
		}
		parts[i] = s
	}
	return strings.Join(parts, " ")
}

// exprNode marks Variable as an expression.
func (*Variable) exprNode() {}

// exprNode marks Lambda as an expression.
func (*Lambda) exprNode() {}

// exprNode marks Application as an expression.
func (*Application) exprNode() {}

// Equal reports whether a and b are structurally identical, binder names
// included.
func Equal(a, b Expression) bool {
	switch x := a.(type) {
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *Lambda:
		y, ok := b.(*Lambda)
		return ok && x.Param == y.Param && Equal(x.Body, y.Body)
	case *Application:
		y, ok := b.(*Application)
		if !ok || len(x.Terms) != len(y.Terms) {
			return false
		}
		for i := range x.Terms {
			if !Equal(x.Terms[i], y.Terms[i]) {
				return false
			}
		}
		return true
	}
	return a == nil && b == nil
}

// Occurs reports whether name appears anywhere in e, free, bound, or as a
// binder.
func Occurs(e Expression, name string) bool {
	found := false
	Walk(e, func(n Expression) bool {
		switch n := n.(type) {
		case *Variable:
			found = found || n.Name == name
		case *Lambda:
			found = found || n.Param == name
		}
		return !found
	})
	return found
}

// FreeVars returns the free variable names of e in first-occurrence order.
func FreeVars(e Expression) []string {
	var out []string
	seen := map[string]bool{}
	var visit func(Expression, map[string]int)
	visit = func(e Expression, bound map[string]int) {
		switch n := e.(type) {
		case *Variable:
			if bound[n.Name] == 0 && !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case *Lambda:
			bound[n.Param]++
			visit(n.Body, bound)
			bound[n.Param]--
		case *Application:
			for _, t := range n.Terms {
				visit(t, bound)
			}
		}
	}
	visit(e, map[string]int{})
	return out
}
