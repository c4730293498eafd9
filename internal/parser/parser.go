package parser

import (
	"errors"
	"fmt"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/malphas-lang/lambda/internal/ast"
	"github.com/malphas-lang/lambda/internal/lexer"
	"github.com/malphas-lang/lambda/internal/source"
)

type Option func(*options)

type options struct {
	filename string
}

// WithFilename configures the parser to attribute all emitted errors to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

type state int

const (
	stateNormal state = iota
	// stateLambda has just seen a lambda token and needs a parameter.
	stateLambda
	// stateExpectDotOrIdentifier is inside a parameter list.
	stateExpectDotOrIdentifier
)

type frameKind int

const (
	exprsFrame  frameKind = iota // open bracket or the top level
	lambdaFrame                  // open binder awaiting its body's end
)

// frame is one incomplete scope on the parser stack.
type frame struct {
	kind  frameKind
	param string
	terms []ast.Expression
	open  lexer.Position // token that opened the scope
}

// Parser builds a single expression from a token stream using an explicit
// stack of incomplete scopes.
// Invariants:
//   - stack always holds at least one frame and stack[0] is the top-level
//     exprsFrame. It is removed only by finish.
//   - Lambda frames sit above the frame their finished lambda is appended
//     to, so closing a scope always appends into the new top.
type Parser struct {
	stack    []*frame
	state    state
	last     lexer.Position // position of the last token consumed
	seen     bool           // whether any token was consumed
	filename string
}

// New returns a parser ready to consume one token stream.
func New(opts ...Option) *Parser {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Parser{
		stack:    []*frame{{kind: exprsFrame}},
		filename: cfg.filename,
	}
}

// Parse is shorthand for New(opts...).Parse(src).
func Parse(src source.Source[lexer.Result], opts ...Option) (ast.Expression, error) {
	return New(opts...).Parse(src)
}

// ParseString lexes and parses input.
func ParseString(input string, opts ...Option) (ast.Expression, error) {
	return Parse(source.FromSlice(lexer.Lex(input)), opts...)
}

// Parse consumes src and returns the root expression. The first lex error
// ends parsing: the rest of src is drained only to collect further lex
// errors, and all of them are returned together.
func (p *Parser) Parse(src source.Source[lexer.Result]) (ast.Expression, error) {
	for res, ok := src.Next(); ok; res, ok = src.Next() {
		if !res.OK() {
			return nil, p.drain(res.Err, src)
		}
		if err := p.step(res.Token); err != nil {
			return nil, err
		}
	}
	return p.finish()
}

func (p *Parser) step(tok lexer.Token) error {
	p.last = tok.Position
	p.seen = true

	switch p.state {
	case stateNormal:
		return p.normal(tok)

	case stateLambda:
		if tok.Type != lexer.IDENT {
			return p.errorf(ErrExpectedIdentifierAfterLambda, tok.Position, "identifier expected after lambda, found %s", describe(tok))
		}
		p.push(&frame{kind: lambdaFrame, param: tok.Text, open: tok.Position})
		p.state = stateExpectDotOrIdentifier

	case stateExpectDotOrIdentifier:
		switch tok.Type {
		case lexer.IDENT:
			p.push(&frame{kind: lambdaFrame, param: tok.Text, open: tok.Position})
		case lexer.DOT:
			p.state = stateNormal
		default:
			return p.errorf(ErrExpectedDotOrIdentifier, tok.Position, "identifier or dot expected, found %s", describe(tok))
		}
	}
	return nil
}

func (p *Parser) normal(tok lexer.Token) error {
	switch tok.Type {
	case lexer.LPAREN:
		p.push(&frame{kind: exprsFrame, open: tok.Position})
	case lexer.RPAREN:
		return p.closeBracket(tok)
	case lexer.IDENT:
		p.appendTop(ast.NewVariable(tok.Text))
	case lexer.DOT:
		return p.errorf(ErrDotWithoutLambda, tok.Position, "dot outside of a lambda binder")
	case lexer.LAMBDA:
		p.state = stateLambda
	}
	return nil
}

// closeBracket handles `)`: every open lambda is finished, then the nearest
// bracket scope is collapsed into the scope below it.
func (p *Parser) closeBracket(tok lexer.Token) error {
	if err := p.closeLambdas(false); err != nil {
		return err
	}
	if len(p.stack) == 1 {
		return p.errorf(ErrUnexpectedClosingBracket, tok.Position, "unexpected closing bracket")
	}

	f := p.pop()
	expr, err := ast.NewApplication(f.terms)
	if errors.Is(err, ast.ErrEmptyApplication) {
		return p.errorf(ErrEmptyParenthesizedExpression, lexer.Position{Start: f.open.Start, End: tok.Position.End}, "empty parenthesized expression")
	}
	p.appendTop(expr)
	return nil
}

// closeLambdas pops lambda frames until an exprsFrame is on top.
func (p *Parser) closeLambdas(atEOF bool) error {
	for p.top().kind == lambdaFrame {
		f := p.pop()
		body, err := ast.NewApplication(f.terms)
		if errors.Is(err, ast.ErrEmptyApplication) {
			e := p.errorf(ErrEmptyLambdaBody, f.open, "lambda %s has an empty body", f.param)
			e.AtEOF = atEOF
			return e
		}
		p.appendTop(ast.NewLambda(f.param, body))
	}
	return nil
}

// finish closes every scope at end of input and returns the root.
func (p *Parser) finish() (ast.Expression, error) {
	switch p.state {
	case stateLambda:
		e := p.errorf(ErrExpectedIdentifierAfterLambda, p.last, "identifier expected after lambda, found end of input")
		e.AtEOF = true
		return nil, e
	case stateExpectDotOrIdentifier:
		e := p.errorf(ErrExpectedDotOrIdentifier, p.last, "identifier or dot expected, found end of input")
		e.AtEOF = true
		return nil, e
	}

	if err := p.closeLambdas(true); err != nil {
		return nil, err
	}
	if len(p.stack) > 1 {
		e := p.errorf(ErrMissingClosingBracket, p.top().open, "missing closing bracket")
		e.AtEOF = true
		return nil, e
	}

	root, err := ast.NewApplication(p.pop().terms)
	if errors.Is(err, ast.ErrEmptyApplication) {
		e := p.errorf(ErrEmptyExpression, p.last, "empty expression")
		e.HasPosition = p.seen
		e.AtEOF = true
		return nil, e
	}
	return root, nil
}

// drain collects first and every later lex error from src.
func (p *Parser) drain(first *lexer.Error, src source.Source[lexer.Result]) *Error {
	errs := []*lexer.Error{first}
	var merr *multierror.Error
	merr = multierror.Append(merr, first)
	for res := range source.All(src) {
		if !res.OK() {
			errs = append(errs, res.Err)
			merr = multierror.Append(merr, res.Err)
		}
	}

	e := p.errorf(ErrLexical, first.Position, "%d lexical error(s) in input", len(errs))
	e.Lex = errs
	e.cause = merr.ErrorOrNil()
	return e
}

func (p *Parser) push(f *frame) {
	p.stack = append(p.stack, f)
}

func (p *Parser) pop() *frame {
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return f
}

func (p *Parser) top() *frame {
	return p.stack[len(p.stack)-1]
}

func (p *Parser) appendTop(e ast.Expression) {
	f := p.top()
	f.terms = append(f.terms, e)
}

func (p *Parser) errorf(kind ErrorKind, pos lexer.Position, format string, args ...any) *Error {
	return &Error{
		Kind:        kind,
		Message:     fmt.Sprintf(format, args...),
		Position:    pos,
		HasPosition: true,
		Filename:    p.filename,
	}
}

func describe(tok lexer.Token) string {
	if tok.Type == lexer.IDENT {
		return fmt.Sprintf("identifier %q", tok.Text)
	}
	return fmt.Sprintf("`%s`", tok.Text)
}
