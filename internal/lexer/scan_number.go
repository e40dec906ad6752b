package lexer

import (
	"a2lkit/internal/diag"
	"a2lkit/internal/token"
)

// Supported: 123, -5, +7, 0x1F, 1.0, -2.5e-3, .5. The original literal stays
// in Token.Text; extractors convert. A malformed numeric-looking word (0x
// with no digits, trailing junk) degrades to a plain Ident since the grammar
// subset is permissive.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if b := lx.cursor.Peek(); b == '+' || b == '-' {
		lx.cursor.Bump()
	}

	// hex
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		lx.cursor.Bump()
		lx.cursor.Bump()
		ndigits := 0
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
			ndigits++
		}
		if ndigits == 0 || isWordByte(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.warnLex(diag.LexBadNumber, sp, "malformed hex literal")
			return lx.scanBareword(start)
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.IntLit, Span: sp, Text: lx.textFrom(sp)}
	}

	// integer part
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// fraction
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// exponent
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		save := lx.cursor.Mark()
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			// not an exponent after all; the e belongs to a following word
			lx.cursor.Reset(save)
		} else {
			kind = token.FloatLit
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	if isWordByte(lx.cursor.Peek()) {
		// 12abc and friends: keep it as one plain-text token
		return lx.scanBareword(start)
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
}
