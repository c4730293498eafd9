package parser_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	multierror "github.com/hashicorp/go-multierror"

	"github.com/malphas-lang/lambda/internal/ast"
	"github.com/malphas-lang/lambda/internal/diag"
	"github.com/malphas-lang/lambda/internal/lexer"
	"github.com/malphas-lang/lambda/internal/parser"
)

func v(name string) ast.Expression { return ast.NewVariable(name) }

func lam(param string, body ast.Expression) ast.Expression { return ast.NewLambda(param, body) }

func app(terms ...ast.Expression) ast.Expression {
	return &ast.Application{Terms: terms}
}

func parse(t *testing.T, src string) ast.Expression {
	t.Helper()

	expr, err := parser.ParseString(src)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", src, err)
	}
	return expr
}

func assertParseError(t *testing.T, src string, kind parser.ErrorKind) *parser.Error {
	t.Helper()

	_, err := parser.ParseString(src)
	if err == nil {
		t.Fatalf("expected %v for %q, got no error", kind, src)
	}
	var pe *parser.Error
	if !errors.As(err, &pe) {
		t.Fatalf("expected *parser.Error for %q, got %T", src, err)
	}
	if pe.Kind != kind {
		t.Fatalf("expected %v for %q, got %v (%v)", kind, src, pe.Kind, pe)
	}
	return pe
}

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want ast.Expression
	}{
		{"x", v("x")},
		{"λx.x", lam("x", v("x"))},
		{`\x.x`, lam("x", v("x"))},
		{"λxy.xyz", lam("xy", v("xyz"))},
		{"λx y.x y z", lam("x", lam("y", app(v("x"), v("y"), v("z"))))},
		{"f x y", app(v("f"), v("x"), v("y"))},
		{"(f x) y", app(app(v("f"), v("x")), v("y"))},
		{"f (x y)", app(v("f"), app(v("x"), v("y")))},
		{"(x)", v("x")},
		{"((x))", v("x")},
		{"(λx.x) y", app(lam("x", v("x")), v("y"))},
		{"(λx.x y)", lam("x", app(v("x"), v("y")))},
		// A lambda body extends as far right as possible.
		{"f λx.x y", app(v("f"), lam("x", app(v("x"), v("y"))))},
		{"λf.(λx.f (x x)) (λx.f (x x))", lam("f", app(
			lam("x", app(v("f"), app(v("x"), v("x")))),
			lam("x", app(v("f"), app(v("x"), v("x")))),
		))},
		{"(λx.λy.x) a b", app(lam("x", lam("y", v("x"))), v("a"), v("b"))},
		{"λx.\n  (x\n   x)", lam("x", app(v("x"), v("x")))},
	}

	for _, tt := range tests {
		got := parse(t, tt.src)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("parse %q mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestParse_ApplicationsAlwaysHaveTwoOrMoreTerms(t *testing.T) {
	srcs := []string{
		"x", "(x)", "((x) (y))", "λx.(x)", "(λx.(x)) ((y))", "a (b) ((c)) (((d e)))",
	}
	for _, src := range srcs {
		ast.Walk(parse(t, src), func(n ast.Expression) bool {
			if a, ok := n.(*ast.Application); ok && len(a.Terms) < 2 {
				t.Fatalf("%q produced an application of %d terms", src, len(a.Terms))
			}
			return true
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		kind parser.ErrorKind
	}{
		{"(x", parser.ErrMissingClosingBracket},
		{"((x) y", parser.ErrMissingClosingBracket},
		{"λx.(y", parser.ErrMissingClosingBracket},
		{")", parser.ErrUnexpectedClosingBracket},
		{"x)", parser.ErrUnexpectedClosingBracket},
		{"λx.x)", parser.ErrUnexpectedClosingBracket},
		{".", parser.ErrDotWithoutLambda},
		{"x . y", parser.ErrDotWithoutLambda},
		// λ after a letter extends the identifier fλy, so the dot is stray.
		{"λx.fλy.y", parser.ErrDotWithoutLambda},
		{"λ.x", parser.ErrExpectedIdentifierAfterLambda},
		{"λ(x)", parser.ErrExpectedIdentifierAfterLambda},
		{"λ", parser.ErrExpectedIdentifierAfterLambda},
		{"λx(", parser.ErrExpectedDotOrIdentifier},
		{"λx y λ", parser.ErrExpectedDotOrIdentifier},
		{"λx", parser.ErrExpectedDotOrIdentifier},
		{"()", parser.ErrEmptyParenthesizedExpression},
		{"f ()", parser.ErrEmptyParenthesizedExpression},
		{"(λx.)", parser.ErrEmptyLambdaBody},
		{"λx.", parser.ErrEmptyLambdaBody},
		{"", parser.ErrEmptyExpression},
		{"  \n\t", parser.ErrEmptyExpression},
	}

	for _, tt := range tests {
		assertParseError(t, tt.src, tt.kind)
	}
}

func TestParseErrors_Positions(t *testing.T) {
	pe := assertParseError(t, "x\n  )", parser.ErrUnexpectedClosingBracket)
	want := lexer.Position{Start: lexer.Point{Row: 1, Column: 2}, End: lexer.Point{Row: 1, Column: 2}}
	if pe.Position != want {
		t.Fatalf("expected position %v, got %v", want, pe.Position)
	}

	pe = assertParseError(t, "a (b", parser.ErrMissingClosingBracket)
	if pe.Position.Start != (lexer.Point{Row: 0, Column: 2}) {
		t.Fatalf("expected the error at the open bracket, got %v", pe.Position)
	}

	pe = assertParseError(t, "a ( )", parser.ErrEmptyParenthesizedExpression)
	if pe.Position.Start.Column != 2 || pe.Position.End.Column != 4 {
		t.Fatalf("expected span 2..4, got %v", pe.Position)
	}

	pe = assertParseError(t, "", parser.ErrEmptyExpression)
	if pe.HasPosition {
		t.Fatalf("empty input should carry no position, got %v", pe.Position)
	}
}

func TestParse_LexErrorsAreDrainedAndReported(t *testing.T) {
	// The structural error after the first lex error must not be reported.
	pe := assertParseError(t, "x @ ) # y $", parser.ErrLexical)

	if len(pe.Lex) != 3 {
		t.Fatalf("expected 3 lex errors, got %d: %v", len(pe.Lex), pe.Lex)
	}
	for i, ch := range []rune{'@', '#', '$'} {
		if pe.Lex[i].Char != ch {
			t.Fatalf("lex[%d] - expected %q, got %q", i, ch, pe.Lex[i].Char)
		}
	}

	var asErr error = pe
	var merr *multierror.Error
	if !errors.As(asErr, &merr) || len(merr.Errors) != 3 {
		t.Fatalf("expected a multierror of 3 lex errors, got %v", errors.Unwrap(pe))
	}

	ds := pe.Diagnostics()
	if len(ds) != 3 || ds[0].Stage != diag.StageLexer {
		t.Fatalf("expected 3 lexer diagnostics, got %+v", ds)
	}
}

func TestParse_StructuralErrorBeforeLexErrorWins(t *testing.T) {
	assertParseError(t, ") @", parser.ErrUnexpectedClosingBracket)
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"(x", true},
		{"λx", true},
		{"λ", true},
		{"λx.", true},
		{"(λx.)", false},
		{")", false},
		{".", false},
		{"", false},
		{"x @", false},
	}
	for _, tt := range tests {
		_, err := parser.ParseString(tt.src)
		if got := parser.IsIncomplete(err); got != tt.want {
			t.Errorf("IsIncomplete(%q) = %v, want %v (err %v)", tt.src, got, tt.want, err)
		}
	}

	if parser.IsIncomplete(nil) {
		t.Fatalf("nil error is not incomplete")
	}
}

func TestParseError_ToDiagnostic(t *testing.T) {
	_, e := parser.ParseString(".", parser.WithFilename("dot.lc"))
	if !parser.IsKind(e, parser.ErrDotWithoutLambda) {
		t.Fatalf("expected DotWithoutLambda, got %v", e)
	}

	var pe *parser.Error
	errors.As(e, &pe)
	d := pe.ToDiagnostic()

	if d.Stage != diag.StageParser {
		t.Fatalf("expected stage %q, got %q", diag.StageParser, d.Stage)
	}
	if d.Code != diag.CodeParseDotWithoutLambda {
		t.Fatalf("expected code %q, got %q", diag.CodeParseDotWithoutLambda, d.Code)
	}
	if d.Span.Filename != "dot.lc" || !d.Span.IsValid() {
		t.Fatalf("expected a span in dot.lc, got %+v", d.Span)
	}
	if d.Help == "" {
		t.Fatalf("expected help text for a stray dot")
	}
}
