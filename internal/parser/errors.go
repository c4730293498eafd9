package parser

import (
	"errors"
	"fmt"

	"github.com/malphas-lang/lambda/internal/diag"
	"github.com/malphas-lang/lambda/internal/lexer"
)

// ErrorKind classifies parse failures. Every kind is fatal: the parser never
// recovers and never returns a partial tree.
type ErrorKind int

const (
	ErrUnexpectedClosingBracket ErrorKind = iota
	ErrMissingClosingBracket
	ErrDotWithoutLambda
	ErrExpectedIdentifierAfterLambda
	ErrExpectedDotOrIdentifier
	ErrEmptyParenthesizedExpression
	ErrEmptyLambdaBody
	ErrEmptyExpression
	// ErrLexical wraps every lex error found in the input.
	ErrLexical
)

var kindNames = [...]string{
	ErrUnexpectedClosingBracket:      "UnexpectedClosingBracket",
	ErrMissingClosingBracket:         "MissingClosingBracket",
	ErrDotWithoutLambda:              "DotWithoutLambda",
	ErrExpectedIdentifierAfterLambda: "ExpectedIdentifierAfterLambda",
	ErrExpectedDotOrIdentifier:       "ExpectedDotOrIdentifier",
	ErrEmptyParenthesizedExpression:  "EmptyParenthesizedExpression",
	ErrEmptyLambdaBody:               "EmptyLambdaBody",
	ErrEmptyExpression:               "EmptyExpression",
	ErrLexical:                       "Lexical",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

var kindCodes = [...]diag.Code{
	ErrUnexpectedClosingBracket:      diag.CodeParseUnexpectedClosingBracket,
	ErrMissingClosingBracket:         diag.CodeParseMissingClosingBracket,
	ErrDotWithoutLambda:              diag.CodeParseDotWithoutLambda,
	ErrExpectedIdentifierAfterLambda: diag.CodeParseExpectedIdentifierAfterLambda,
	ErrExpectedDotOrIdentifier:       diag.CodeParseExpectedDotOrIdentifier,
	ErrEmptyParenthesizedExpression:  diag.CodeParseEmptyParenthesizedExpression,
	ErrEmptyLambdaBody:               diag.CodeParseEmptyLambdaBody,
	ErrEmptyExpression:               diag.CodeParseEmptyExpression,
	ErrLexical:                       diag.CodeParseLexical,
}

// Error captures a fatal parse error with location context.
type Error struct {
	Kind     ErrorKind
	Message  string
	Position lexer.Position
	// HasPosition is false when there was no token to point at, e.g. for
	// empty input.
	HasPosition bool
	// AtEOF is set when the error was detected at end of input.
	AtEOF    bool
	Filename string

	// Lex holds every lex error in input order when Kind is ErrLexical.
	Lex   []*lexer.Error
	cause error
}

func (e *Error) Error() string {
	if e.HasPosition {
		return fmt.Sprintf("%s at %s", e.Message, e.Position)
	}
	return e.Message
}

// Unwrap exposes the aggregated lex errors of an ErrLexical error.
func (e *Error) Unwrap() error {
	return e.cause
}

// ToDiagnostic converts a parse error into a shared diagnostic structure.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: diag.SeverityError,
		Code:     kindCodes[e.Kind],
		Message:  e.Message,
	}
	if e.HasPosition {
		d.Span = lexer.SpanOf(e.Position)
	}
	d.Span.Filename = e.Filename
	if help := kindHelp(e.Kind); help != "" {
		d = d.WithHelp(help)
	}
	return d
}

// Diagnostics expands the error into one diagnostic per underlying problem:
// the lex errors for ErrLexical, the error itself otherwise.
func (e *Error) Diagnostics() []diag.Diagnostic {
	if e.Kind != ErrLexical {
		return []diag.Diagnostic{e.ToDiagnostic()}
	}
	out := make([]diag.Diagnostic, 0, len(e.Lex))
	for _, le := range e.Lex {
		out = append(out, le.ToDiagnostic().WithFilename(e.Filename))
	}
	return out
}

func kindHelp(k ErrorKind) string {
	switch k {
	case ErrDotWithoutLambda:
		return "a `.` may only follow the parameters of a lambda, as in `λx.x`"
	case ErrExpectedIdentifierAfterLambda:
		return "a lambda must name at least one parameter"
	case ErrExpectedDotOrIdentifier:
		return "lambda parameters end with `.`"
	case ErrMissingClosingBracket:
		return "add a `)` to close this group"
	}
	return ""
}

// IsKind reports whether err is a parse error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

// IsIncomplete reports whether err could be fixed by appending more input,
// such as an unclosed bracket or a lambda still waiting for its dot or body.
func IsIncomplete(err error) bool {
	var pe *Error
	if !errors.As(err, &pe) || !pe.AtEOF {
		return false
	}
	switch pe.Kind {
	case ErrMissingClosingBracket, ErrExpectedIdentifierAfterLambda, ErrExpectedDotOrIdentifier, ErrEmptyLambdaBody:
		return true
	}
	return false
}
