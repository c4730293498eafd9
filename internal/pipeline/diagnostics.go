package pipeline

import (
	"github.com/pkg/errors"

	"github.com/malphas-lang/lambda/internal/diag"
	"github.com/malphas-lang/lambda/internal/parser"
)

// Diagnostics converts an error returned by Run into user-facing
// diagnostics. Errors with no diagnostic form yield nil.
func Diagnostics(err error) []diag.Diagnostic {
	var pe *parser.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &pe):
		return pe.Diagnostics()
	case errors.Is(err, ErrStepLimit):
		return []diag.Diagnostic{{
			Stage:    diag.StageInterpreter,
			Severity: diag.SeverityError,
			Code:     diag.CodeInterpStepLimit,
			Message:  err.Error(),
			Help:     "the term may have no normal form; raise --max-steps to keep reducing",
		}}
	}
	return nil
}
