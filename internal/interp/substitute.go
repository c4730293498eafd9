package interp

import (
	"errors"
	"fmt"

	"github.com/malphas-lang/lambda/internal/ast"
)

// Substitute replaces the free occurrences of from in e with value.
//
// Every lambda that does not bind from is alpha-converted to a fresh name
// before the substitution descends into it, whether or not capture is
// actually possible. This keeps generated names predictable: the n-th
// lambda crossed during an interpretation is always named "#n".
func Substitute(e ast.Expression, from string, value ast.Expression, gen *NameGen) ast.Expression {
	switch n := e.(type) {
	case *ast.Variable:
		if n.Name == from {
			return value
		}
		return n

	case *ast.Lambda:
		if n.Param == from {
			return n
		}
		fresh := freshen(n, gen)
		return ast.NewLambda(fresh.Param, Substitute(fresh.Body, from, value, gen))

	case *ast.Application:
		terms := make([]ast.Expression, len(n.Terms))
		for i, t := range n.Terms {
			terms[i] = Substitute(t, from, value, gen)
		}
		return &ast.Application{Terms: terms}
	}
	return e
}

// freshen alpha-converts l to the next generated name that does not already
// occur in its body.
func freshen(l *ast.Lambda, gen *NameGen) *ast.Lambda {
	for {
		converted, err := AlphaConvert(l, gen.Next())
		if errors.Is(err, ErrNameOccurs) {
			continue
		}
		if err != nil {
			panic(fmt.Sprintf("interp: alpha conversion of %s: %v", l, err))
		}
		return converted.(*ast.Lambda)
	}
}
