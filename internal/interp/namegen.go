package interp

import "strconv"

// NameGen produces fresh binder names of the form "#<n>". The '#' prefix
// cannot appear in a lexed identifier, so generated names never collide with
// names from source text.
type NameGen struct {
	next int
}

// Next returns the current name and advances the counter.
func (g *NameGen) Next() string {
	name := "#" + strconv.Itoa(g.next)
	g.next++
	return name
}
