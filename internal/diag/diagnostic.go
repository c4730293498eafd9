package diag

import "fmt"

// Stage identifies which pipeline phase produced the diagnostic.
type Stage string

const (
	StageLexer       Stage = "lexer"
	StageParser      Stage = "parser"
	StageInterpreter Stage = "interpreter"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError Severity = "error"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	// Lexer errors
	CodeLexerInvalidCharacter Code = "LEXER_INVALID_CHARACTER"
	CodeLexerIdentifier       Code = "LEXER_IDENTIFIER"

	// Parser errors
	CodeParseUnexpectedClosingBracket      Code = "PARSE_UNEXPECTED_CLOSING_BRACKET"
	CodeParseMissingClosingBracket         Code = "PARSE_MISSING_CLOSING_BRACKET"
	CodeParseDotWithoutLambda              Code = "PARSE_DOT_WITHOUT_LAMBDA"
	CodeParseExpectedIdentifierAfterLambda Code = "PARSE_EXPECTED_IDENTIFIER_AFTER_LAMBDA"
	CodeParseExpectedDotOrIdentifier       Code = "PARSE_EXPECTED_DOT_OR_IDENTIFIER"
	CodeParseEmptyParenthesizedExpression  Code = "PARSE_EMPTY_PARENTHESIZED_EXPRESSION"
	CodeParseEmptyLambdaBody               Code = "PARSE_EMPTY_LAMBDA_BODY"
	CodeParseEmptyExpression               Code = "PARSE_EMPTY_EXPRESSION"
	CodeParseLexical                       Code = "PARSE_LEXICAL"

	// Interpreter errors
	CodeInterpStepLimit Code = "INTERP_STEP_LIMIT"
)

// Span represents a location in source code. Rows and columns are
// zero-indexed and inclusive; String renders them 1-based.
type Span struct {
	Filename  string
	StartRow  int
	StartCol  int
	EndRow    int
	EndCol    int
	HasOrigin bool
}

// String returns a human-readable representation of the span start.
func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.StartRow+1, s.StartCol+1)
	}
	return fmt.Sprintf("%d:%d", s.StartRow+1, s.StartCol+1)
}

// IsValid returns true if the span has location information.
func (s Span) IsValid() bool {
	return s.HasOrigin
}

// Diagnostic is a toolchain diagnostic surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Notes    []string // Additional notes to display
	Help     string
}

// Error makes a Diagnostic usable as an error value.
func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s", d.Span, d.Message)
	}
	return d.Message
}

// WithFilename returns a copy of the diagnostic attributed to filename.
func (d Diagnostic) WithFilename(filename string) Diagnostic {
	d.Span.Filename = filename
	return d
}

// WithNote adds a note to the diagnostic.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithHelp adds help text to the diagnostic.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
