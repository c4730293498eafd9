package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Expression, fn func(Expression) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Lambda:
		Walk(n.Body, fn)

	case *Application:
		for _, t := range n.Terms {
			Walk(t, fn)
		}
	}
}

// Size returns the number of nodes in the tree rooted at node.
func Size(node Expression) int {
	n := 0
	Walk(node, func(Expression) bool {
		n++
		return true
	})
	return n
}
