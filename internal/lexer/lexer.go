package lexer

import (
	"a2lkit/internal/source"
	"a2lkit/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.emptySpan(),
		}
	}

	ch := lx.cursor.Peek()

	switch {
	case ch == '"':
		return lx.scanString()

	case ch == '/':
		// /begin, /end, or a bareword that happens to start with a slash.
		// Comments were already consumed as trivia.
		return lx.scanMarker()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '+' || ch == '-' || ch == '.':
		if lx.startsNumber() {
			return lx.scanNumber()
		}
		return lx.scanBareword(lx.cursor.Mark())

	default:
		return lx.scanBareword(lx.cursor.Mark())
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All consumes the remaining input and returns every token including EOF.
func (lx *Lexer) All() []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

// startsNumber reports whether the bytes at the cursor begin a numeric
// literal: a digit, an optional sign, or a dot followed by a digit.
func (lx *Lexer) startsNumber() bool {
	b0, b1, ok := lx.cursor.Peek2()
	switch lx.cursor.Peek() {
	case '+', '-':
		if !ok {
			return false
		}
		if isDec(b1) {
			return true
		}
		if b1 != '.' {
			return false
		}
		// sign, dot: need a digit third
		save := lx.cursor.Mark()
		lx.cursor.Bump()
		_, b2, ok2 := lx.cursor.Peek2()
		lx.cursor.Reset(save)
		return ok2 && isDec(b2)
	case '.':
		return ok && b0 == '.' && isDec(b1)
	default:
		return isDec(lx.cursor.Peek())
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) textFrom(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
