package lexer

import (
	"strings"

	"a2lkit/internal/token"
)

// scanMarker scans a token starting with '/': the /begin and /end block
// markers (any case), or a plain bareword when the word is neither.
func (lx *Lexer) scanMarker() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'

	wordStart := lx.cursor.Mark()
	for isAlpha(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	word := lx.textFrom(lx.cursor.SpanFrom(wordStart))

	if !isWordByte(lx.cursor.Peek()) {
		if strings.EqualFold(word, "begin") {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Begin, Span: sp, Text: lx.textFrom(sp)}
		}
		if strings.EqualFold(word, "end") {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.End, Span: sp, Text: lx.textFrom(sp)}
		}
	}

	return lx.scanBareword(start)
}

// scanBareword consumes word bytes from start and returns an Ident.
// Anything already consumed before the current position is included.
func (lx *Lexer) scanBareword(start Mark) token.Token {
	for isWordByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: lx.textFrom(sp)}
}
