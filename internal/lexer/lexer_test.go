package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"a2lkit/internal/diag"
	"a2lkit/internal/lexer"
	"a2lkit/internal/source"
	"a2lkit/internal/token"
)

// testReporter collects every diagnostic the lexer emits.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
	})
}

func (r *testReporter) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Severity == diag.SevError {
			return true
		}
	}
	return false
}

func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.a2l", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, fmt.Sprintf("%s(%q)", tok.Kind, tok.Text))
	}
	return strings.Join(parts, " ")
}

// expectTokens checks the token kind sequence, ignoring the trailing EOF.
func expectTokens(t *testing.T, input string, expected []token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	if len(tokens) > 0 && tokens[len(tokens)-1].Kind == token.EOF {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\nerrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.ErrorMessages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text: %q)",
				i, expected[i], tok.Kind, tok.Text)
		}
	}
}

func expectSingleToken(t *testing.T, input string, expectedKind token.Kind, expectedText string) {
	t.Helper()
	lx, _ := makeTestLexer(input)
	tok := lx.Next()

	if tok.Kind != expectedKind {
		t.Errorf("input %q: expected kind %v, got %v", input, expectedKind, tok.Kind)
	}
	if tok.Text != expectedText {
		t.Errorf("input %q: expected text %q, got %q", input, expectedText, tok.Text)
	}
}

func TestBasicTokens(t *testing.T) {
	expectTokens(t, `ASAP2_VERSION 1 71`, []token.Kind{
		token.Ident, token.IntLit, token.IntLit,
	})
}

func TestBlockMarkers(t *testing.T) {
	expectTokens(t, "/begin MODULE ecu /end MODULE", []token.Kind{
		token.Begin, token.Ident, token.Ident, token.End, token.Ident,
	})
}

func TestMarkerCaseInsensitive(t *testing.T) {
	expectTokens(t, "/BEGIN X /End X", []token.Kind{
		token.Begin, token.Ident, token.End, token.Ident,
	})

	lx, _ := makeTestLexer("/Begin X")
	tok := lx.Next()
	if tok.Kind != token.Begin {
		t.Fatalf("expected Begin, got %v", tok.Kind)
	}
	if tok.Text != "/Begin" {
		t.Errorf("marker text should keep original spelling, got %q", tok.Text)
	}
}

func TestSlashBareword(t *testing.T) {
	// A slash word that is neither begin nor end stays a plain token.
	expectSingleToken(t, "/foo", token.Ident, "/foo")
	// /begin glued to more word bytes is not a marker either.
	expectSingleToken(t, "/begin_x", token.Ident, "/begin_x")
}

func TestLineComment(t *testing.T) {
	expectTokens(t, "A // trailing comment\nB", []token.Kind{
		token.Ident, token.Ident,
	})
}

func TestBlockComment(t *testing.T) {
	expectTokens(t, "A /* one\ntwo */ B", []token.Kind{
		token.Ident, token.Ident,
	})
	// nested
	expectTokens(t, "A /* outer /* inner */ still */ B", []token.Kind{
		token.Ident, token.Ident,
	})
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, reporter := makeTestLexer("A /* never closed")
	tokens := collectAllTokens(lx)
	if tokens[0].Kind != token.Ident {
		t.Fatalf("expected leading Ident, got %v", tokens[0].Kind)
	}
	if !reporter.HasErrors() {
		t.Error("expected an unterminated comment diagnostic")
	}
}

func TestIntegers(t *testing.T) {
	expectSingleToken(t, "42", token.IntLit, "42")
	expectSingleToken(t, "-7", token.IntLit, "-7")
	expectSingleToken(t, "+3", token.IntLit, "+3")
	expectSingleToken(t, "0x1F", token.IntLit, "0x1F")
	expectSingleToken(t, "0X8000", token.IntLit, "0X8000")
}

func TestFloats(t *testing.T) {
	expectSingleToken(t, "3.14", token.FloatLit, "3.14")
	expectSingleToken(t, "-2.5e-3", token.FloatLit, "-2.5e-3")
	expectSingleToken(t, "1E5", token.FloatLit, "1E5")
	expectSingleToken(t, ".5", token.FloatLit, ".5")
	expectSingleToken(t, "100.", token.FloatLit, "100.")
}

func TestMalformedNumbersDegrade(t *testing.T) {
	lx, reporter := makeTestLexer("0x")
	tok := lx.Next()
	if tok.Kind != token.Ident {
		t.Errorf("0x should degrade to Ident, got %v", tok.Kind)
	}
	if len(reporter.diagnostics) == 0 {
		t.Error("expected a bad-number warning for 0x")
	}

	// trailing word bytes turn the whole thing into a bareword
	expectSingleToken(t, "12abc", token.Ident, "12abc")
	expectSingleToken(t, "1.2.3", token.Ident, "1.2.3")
}

func TestSignedBareword(t *testing.T) {
	expectSingleToken(t, "-foo", token.Ident, "-foo")
	expectSingleToken(t, "+", token.Ident, "+")
}

func TestStrings(t *testing.T) {
	expectSingleToken(t, `"hello"`, token.String, "hello")
	expectSingleToken(t, `""`, token.String, "")
	expectSingleToken(t, `"with space"`, token.String, "with space")
}

func TestStringEscapes(t *testing.T) {
	// doubled quote
	expectSingleToken(t, `"a""b"`, token.String, `a"b`)
	// backslash escapes
	expectSingleToken(t, `"a\"b"`, token.String, `a"b`)
	expectSingleToken(t, `"a\\b"`, token.String, `a\b`)
	// unknown escapes stay verbatim
	expectSingleToken(t, `"a\nb"`, token.String, `a\nb`)
}

func TestUnterminatedString(t *testing.T) {
	lx, reporter := makeTestLexer(`"never closed`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("expected Invalid token, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("expected an unterminated string diagnostic")
	}
}

func TestStringWithNewline(t *testing.T) {
	lx, reporter := makeTestLexer("\"broken\nrest")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("expected Invalid token, got %v", tok.Kind)
	}
	if !reporter.HasErrors() {
		t.Error("expected a diagnostic for newline in string")
	}
	// lexing continues after the bad literal
	next := lx.Next()
	if next.Kind != token.Ident || next.Text != "rest" {
		t.Errorf("expected recovery with Ident \"rest\", got %v %q", next.Kind, next.Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("A B")
	first := lx.Peek()
	if got := lx.Next(); got != first {
		t.Errorf("Peek/Next mismatch: %v vs %v", first, got)
	}
	if tok := lx.Next(); tok.Text != "B" {
		t.Errorf("expected B after peeked A, got %q", tok.Text)
	}
}

func TestEOFIsStable(t *testing.T) {
	lx, _ := makeTestLexer("")
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("expected EOF, got %v", tok.Kind)
		}
	}
}

func TestCharacteristicLine(t *testing.T) {
	input := `ENG_SPEED_MAP "engine speed map" MAP 0x80001000 RL_MAP_S16 100.0 CM_RPM 0.0 8000.0`
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if reporter.HasErrors() {
		t.Fatalf("unexpected errors: %v", reporter.ErrorMessages())
	}
	want := []token.Kind{
		token.Ident, token.String, token.Ident, token.IntLit, token.Ident,
		token.FloatLit, token.Ident, token.FloatLit, token.FloatLit, token.EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %s", len(want), tokensToString(tokens))
	}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d: expected %v, got %v (%q)", i, k, tokens[i].Kind, tokens[i].Text)
		}
	}
	if tokens[1].Text != "engine speed map" {
		t.Errorf("string content: got %q", tokens[1].Text)
	}
}
