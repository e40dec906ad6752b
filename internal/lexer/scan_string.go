package lexer

import (
	"strings"

	"a2lkit/internal/diag"
	"a2lkit/internal/token"
)

// scanString scans a double-quoted string. Token.Text holds the content with
// the quotes stripped; both `""` and `\"` escape an embedded quote, `\\` a
// backslash, any other backslash pair is kept verbatim. A newline or EOF
// before the closing quote is reported and yields an Invalid token.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'

	var text strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == '"' {
			if _, b1, ok := lx.cursor.Peek2(); ok && b1 == '"' {
				// doubled quote escape
				lx.cursor.Bump()
				lx.cursor.Bump()
				text.WriteByte('"')
				continue
			}
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.String, Span: sp, Text: text.String()}
		}

		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			esc := lx.cursor.Bump()
			switch esc {
			case '"', '\\':
				text.WriteByte(esc)
			default:
				text.WriteByte('\\')
				text.WriteByte(esc)
			}
			continue
		}

		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
		}

		text.WriteByte(b)
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
}
