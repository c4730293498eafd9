package lexer

import (
	"fmt"

	"github.com/malphas-lang/lambda/internal/diag"
)

type ErrorKind int

const (
	// ErrInvalidCharacter is a character outside the recognized alphabet
	// that is not part of an identifier.
	ErrInvalidCharacter ErrorKind = iota
	// ErrIdentifier is an invalid character interrupting an identifier run.
	ErrIdentifier
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidCharacter:
		return "InvalidCharacterError"
	case ErrIdentifier:
		return "IdentifierError"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a lexing failure. Lexing never stops on an Error; it is recorded
// in the output stream and the lexer carries on.
type Error struct {
	Kind     ErrorKind
	Char     rune
	Message  string
	Position Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Position)
}

func (k ErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrInvalidCharacter:
		return diag.CodeLexerInvalidCharacter
	case ErrIdentifier:
		return diag.CodeLexerIdentifier
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e *Error) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span:     SpanOf(e.Position),
	}
}

// SpanOf converts a token position to a diagnostic span.
func SpanOf(p Position) diag.Span {
	return diag.Span{
		StartRow:  p.Start.Row,
		StartCol:  p.Start.Column,
		EndRow:    p.End.Row,
		EndCol:    p.End.Column,
		HasOrigin: true,
	}
}
