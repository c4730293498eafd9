package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/malphas-lang/lambda/internal/source"
)

// Result is one item of the lexer's output stream: either a token or an
// error, never both.
type Result struct {
	Token Token
	Err   *Error
}

// OK reports whether the result carries a token.
func (r Result) OK() bool {
	return r.Err == nil
}

func (r Result) String() string {
	if r.Err != nil {
		return "Err(" + r.Err.Error() + ")"
	}
	return r.Token.String()
}

type state int

const (
	stateNormal state = iota
	stateIdentifier
)

// Lexer turns characters into tokens. It is a two-state machine; the state
// is plain data and each character is dispatched on it in step.
type Lexer struct {
	sink   source.Sink[Result]
	state  state
	buffer strings.Builder
	start  Point // start of the identifier being accumulated
	row    int   // current row (0-based)
	column int   // current column (0-based)
}

// New creates a lexer that pushes its output to sink.
func New(sink source.Sink[Result]) *Lexer {
	return &Lexer{sink: sink}
}

// Run consumes src to the end. Bad characters are reported in-stream and
// never stop the run.
func (l *Lexer) Run(src source.Source[rune]) {
	for c, ok := src.Next(); ok; c, ok = src.Next() {
		l.step(c)
		l.advance(c)
	}
	if l.state == stateIdentifier {
		l.flush(l.previous())
		l.state = stateNormal
	}
}

// Lex is a convenience wrapper that lexes a whole string.
func Lex(input string) []Result {
	out := source.Collect[Result]()
	New(out).Run(source.FromString(input))
	return out.Items
}

// Tokens splits lexer output into its tokens and the first error, if any.
func Tokens(rs []Result) ([]Token, *Error) {
	var toks []Token
	var first *Error
	for _, r := range rs {
		if !r.OK() {
			if first == nil {
				first = r.Err
			}
			continue
		}
		toks = append(toks, r.Token)
	}
	return toks, first
}

func (l *Lexer) step(c rune) {
	switch l.state {
	case stateNormal:
		l.normal(c)
	case stateIdentifier:
		l.identifier(c)
	}
}

// advance moves the cursor past c. It runs after the token position for c
// has been computed.
func (l *Lexer) advance(c rune) {
	if c == '\n' {
		l.row++
		l.column = 0
		return
	}
	l.column++
}

func (l *Lexer) point() Point {
	return Point{Row: l.row, Column: l.column}
}

// previous is the point just before the current character.
func (l *Lexer) previous() Point {
	return Point{Row: l.row, Column: l.column - 1}
}

func (l *Lexer) normal(c rune) {
	switch {
	case c == '\\' || c == 'λ':
		l.emit(LAMBDA, c)
	case c == '(':
		l.emit(LPAREN, c)
	case c == ')':
		l.emit(RPAREN, c)
	case c == '.':
		l.emit(DOT, c)
	case isAlphanumeric(c):
		l.start = l.point()
		l.buffer.WriteRune(c)
		l.state = stateIdentifier
	case unicode.IsSpace(c):
	default:
		l.sink.Put(Result{Err: &Error{
			Kind:     ErrInvalidCharacter,
			Char:     c,
			Message:  fmt.Sprintf("invalid character %q", c),
			Position: At(l.point()),
		}})
	}
}

func (l *Lexer) identifier(c rune) {
	switch {
	// λ is a letter, so inside an identifier it is part of the name.
	case isAlphanumeric(c):
		l.buffer.WriteRune(c)
	case isReserved(c) || unicode.IsSpace(c):
		l.flush(l.previous())
		l.state = stateNormal
		l.normal(c)
	default:
		l.sink.Put(Result{Err: &Error{
			Kind:     ErrIdentifier,
			Char:     c,
			Message:  fmt.Sprintf("invalid character %q found in an identifier", c),
			Position: Position{Start: l.start, End: l.point()},
		}})
	}
}

func (l *Lexer) emit(typ TokenType, c rune) {
	l.sink.Put(Result{Token: Token{
		Type:     typ,
		Text:     string(c),
		Position: At(l.point()),
	}})
}

func (l *Lexer) flush(end Point) {
	l.sink.Put(Result{Token: Token{
		Type:     IDENT,
		Text:     l.buffer.String(),
		Position: Position{Start: l.start, End: end},
	}})
	l.buffer.Reset()
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
