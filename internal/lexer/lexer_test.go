package lexer

import (
	"strings"
	"testing"

	"github.com/malphas-lang/lambda/internal/source"
)

func pos(r1, c1, r2, c2 int) Position {
	return Position{Start: Point{r1, c1}, End: Point{r2, c2}}
}

func lexTokens(t *testing.T, input string) []Token {
	t.Helper()
	toks, err := Tokens(Lex(input))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	return toks
}

func assertTokens(t *testing.T, got, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tokens[%d] - expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLex_BasicExpression(t *testing.T) {
	assertTokens(t, lexTokens(t, "λx.x"), []Token{
		{LAMBDA, "λ", pos(0, 0, 0, 0)},
		{IDENT, "x", pos(0, 1, 0, 1)},
		{DOT, ".", pos(0, 2, 0, 2)},
		{IDENT, "x", pos(0, 3, 0, 3)},
	})
}

func TestLex_BackslashLambda(t *testing.T) {
	assertTokens(t, lexTokens(t, `\x.x`), []Token{
		{LAMBDA, `\`, pos(0, 0, 0, 0)},
		{IDENT, "x", pos(0, 1, 0, 1)},
		{DOT, ".", pos(0, 2, 0, 2)},
		{IDENT, "x", pos(0, 3, 0, 3)},
	})
}

func TestLex_MultiCharacterIdentifier(t *testing.T) {
	assertTokens(t, lexTokens(t, "λxy.xyz"), []Token{
		{LAMBDA, "λ", pos(0, 0, 0, 0)},
		{IDENT, "xy", pos(0, 1, 0, 2)},
		{DOT, ".", pos(0, 3, 0, 3)},
		{IDENT, "xyz", pos(0, 4, 0, 6)},
	})
}

func TestLex_Brackets(t *testing.T) {
	toks := lexTokens(t, "(f a)")
	assertTokens(t, toks, []Token{
		{LPAREN, "(", pos(0, 0, 0, 0)},
		{IDENT, "f", pos(0, 1, 0, 1)},
		{IDENT, "a", pos(0, 3, 0, 3)},
		{RPAREN, ")", pos(0, 4, 0, 4)},
	})
	if toks[0].Direction() != Left || toks[3].Direction() != Right {
		t.Fatalf("expected Left/Right directions, got %v/%v", toks[0].Direction(), toks[3].Direction())
	}
}

func TestLex_RowsAndColumnsAcrossNewlines(t *testing.T) {
	input := "\\f.\n  f ab\n(x)"
	assertTokens(t, lexTokens(t, input), []Token{
		{LAMBDA, `\`, pos(0, 0, 0, 0)},
		{IDENT, "f", pos(0, 1, 0, 1)},
		{DOT, ".", pos(0, 2, 0, 2)},
		{IDENT, "f", pos(1, 2, 1, 2)},
		{IDENT, "ab", pos(1, 4, 1, 5)},
		{LPAREN, "(", pos(2, 0, 2, 0)},
		{IDENT, "x", pos(2, 1, 2, 1)},
		{RPAREN, ")", pos(2, 2, 2, 2)},
	})
}

func TestLex_IdentifierEndingAtEndOfInput(t *testing.T) {
	assertTokens(t, lexTokens(t, "  abc"), []Token{
		{IDENT, "abc", pos(0, 2, 0, 4)},
	})
}

func TestLex_UnicodeWhitespaceSeparates(t *testing.T) {
	assertTokens(t, lexTokens(t, "a\u00a0b\tc"), []Token{
		{IDENT, "a", pos(0, 0, 0, 0)},
		{IDENT, "b", pos(0, 2, 0, 2)},
		{IDENT, "c", pos(0, 4, 0, 4)},
	})
}

func TestLex_IdentifierTerminators(t *testing.T) {
	tests := []struct {
		input string
		types []TokenType
	}{
		{"xλy.y", []TokenType{IDENT, DOT, IDENT}},
		{"λx.fλy.y", []TokenType{LAMBDA, IDENT, DOT, IDENT, DOT, IDENT}},
		{`f\x.x`, []TokenType{IDENT, LAMBDA, IDENT, DOT, IDENT}},
		{"f(x)", []TokenType{IDENT, LPAREN, IDENT, RPAREN}},
		{"x1 2y", []TokenType{IDENT, IDENT}},
	}

	for i, tt := range tests {
		toks := lexTokens(t, tt.input)
		if len(toks) != len(tt.types) {
			t.Fatalf("tests[%d] - expected %d tokens, got %v", i, len(tt.types), toks)
		}
		for j, typ := range tt.types {
			if toks[j].Type != typ {
				t.Fatalf("tests[%d] - token %d type wrong. expected=%v, got=%v", i, j, typ, toks[j].Type)
			}
		}
	}
}

func TestLex_LambdaInsideIdentifier(t *testing.T) {
	assertTokens(t, lexTokens(t, "xλy"), []Token{
		{IDENT, "xλy", pos(0, 0, 0, 2)},
	})
}

func TestTokens(t *testing.T) {
	tests := []struct {
		input   string
		texts   []string
		errChar rune // 0 when no error is expected
	}{
		{"λx.x", []string{"λ", "x", ".", "x"}, 0},
		{"", nil, 0},
		{"a @ b # c", []string{"a", "b", "c"}, '@'},
		{"ab$c", []string{"abc"}, '$'},
	}

	for i, tt := range tests {
		toks, err := Tokens(Lex(tt.input))
		if len(toks) != len(tt.texts) {
			t.Fatalf("tests[%d] - expected %d tokens, got %v", i, len(tt.texts), toks)
		}
		for j, text := range tt.texts {
			if toks[j].Text != text {
				t.Fatalf("tests[%d] - token %d text wrong. expected=%q, got=%q", i, j, text, toks[j].Text)
			}
		}
		switch {
		case tt.errChar == 0 && err != nil:
			t.Fatalf("tests[%d] - unexpected error %v", i, err)
		case tt.errChar != 0 && (err == nil || err.Char != tt.errChar):
			t.Fatalf("tests[%d] - expected first error at %q, got %v", i, tt.errChar, err)
		}
	}
}

func TestLexer_RunFromLineReader(t *testing.T) {
	out := source.Collect[Result]()
	New(out).Run(source.NewLineReader(strings.NewReader("λx.\nx")))

	if len(out.Items) != 4 {
		t.Fatalf("expected 4 results, got %d", len(out.Items))
	}
	last := out.Items[3].Token
	if last.Text != "x" || last.Position != pos(1, 0, 1, 0) {
		t.Fatalf("expected x@1:0-1:0, got %v", last)
	}
}

func TestToken_String(t *testing.T) {
	tok := Token{IDENT, "x", pos(0, 1, 0, 1)}
	if got, want := tok.String(), `Identifier("x")@0:1-0:1`; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	tok = Token{LPAREN, "(", pos(0, 0, 0, 0)}
	if got, want := tok.String(), "Bracket(Left)@0:0-0:0"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
