// Package interp reduces lambda-calculus terms by capture-avoiding
// substitution in normal order.
package interp

import (
	"iter"

	"github.com/malphas-lang/lambda/internal/ast"
)

// Interpret yields e followed by each successive reduct until a normal form
// is reached. Terms without a normal form yield forever; stop by breaking out
// of the range loop.
func Interpret(e ast.Expression) iter.Seq[ast.Expression] {
	return func(yield func(ast.Expression) bool) {
		gen := &NameGen{}
		cur := e
		if !yield(cur) {
			return
		}
		for {
			next, ok := BetaReduce(cur, gen)
			if !ok || !yield(next) {
				return
			}
			cur = next
		}
	}
}
