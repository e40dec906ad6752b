package lexer

import (
	"a2lkit/internal/diag"
)

// skipTrivia discards whitespace and comments before the next token:
//   - spaces, tabs, newlines
//   - //... to end of line
//   - /* ... */, nesting allowed; unterminated is reported and cut at EOF
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			lx.cursor.Bump()
			continue
		}

		if b == '/' {
			if lx.skipComment() {
				continue
			}
		}

		break
	}
}

// skipComment consumes a // or /* comment at the cursor, if present.
func (lx *Lexer) skipComment() bool {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('/') {
		return false
	}
	switch lx.cursor.Peek() {
	case '/':
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		return true

	case '*':
		lx.cursor.Bump()
		depth := 1
		for !lx.cursor.EOF() && depth > 0 {
			if b0, b1, ok := lx.cursor.Peek2(); ok {
				if b0 == '/' && b1 == '*' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth++
					continue
				}
				if b0 == '*' && b1 == '/' {
					lx.cursor.Bump()
					lx.cursor.Bump()
					depth--
					continue
				}
			}
			lx.cursor.Bump()
		}
		if depth > 0 {
			lx.errLex(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
		}
		return true

	default:
		// not a comment: /begin, /end, or junk
		lx.cursor.Reset(start)
		return false
	}
}
