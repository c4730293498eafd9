package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

// Token type constants
const (
	LAMBDA TokenType = iota // \ or λ
	DOT                     // .
	LPAREN                  // (
	RPAREN                  // )
	IDENT                   // x, foo, x1, ...
)

var tokenNames = [...]string{
	LAMBDA: "Lambda",
	DOT:    "Dot",
	LPAREN: "Bracket(Left)",
	RPAREN: "Bracket(Right)",
	IDENT:  "Identifier",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Direction tells opening and closing brackets apart.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Left {
		return "Left"
	}
	return "Right"
}

// Point is a zero-indexed row/column location.
type Point struct {
	Row    int
	Column int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Position is the inclusive span of a token.
type Position struct {
	Start Point
	End   Point
}

func (p Position) String() string {
	return fmt.Sprintf("%s-%s", p.Start, p.End)
}

// At returns a zero-width position at p.
func At(p Point) Position {
	return Position{Start: p, End: p}
}

// Token represents a lexical token
type Token struct {
	Type     TokenType
	Text     string // identifier name, or the source character for symbols
	Position Position
}

// Direction reports which way a bracket token faces. It is only meaningful
// for LPAREN and RPAREN.
func (t Token) Direction() Direction {
	if t.Type == RPAREN {
		return Right
	}
	return Left
}

func (t Token) String() string {
	if t.Type == IDENT {
		return fmt.Sprintf("Identifier(%q)@%s", t.Text, t.Position)
	}
	return fmt.Sprintf("%s@%s", t.Type, t.Position)
}

// isReserved reports whether r is one of the symbols that can end an
// identifier.
func isReserved(r rune) bool {
	switch r {
	case '\\', 'λ', '(', ')', '.':
		return true
	}
	return false
}
