package block

import (
	"fmt"
	"strings"

	"a2lkit/internal/diag"
	"a2lkit/internal/source"
	"a2lkit/internal/token"
)

// Build turns the lexed token stream into a block tree. The returned root is
// a synthetic container whose children are the top-level blocks.
//
// The builder keeps an explicit stack of open nodes instead of recursing, so
// call depth stays flat no matter how deeply the input nests. Only a line's
// first token opens or closes a block; anything else is a body line of the
// innermost open block. Structural errors (mismatched or stray /end, a
// marker with no kind tag, unclosed blocks at EOF) are fatal: ok is false
// and the tree must not be used.
func Build(file *source.File, tokens []token.Token, r diag.Reporter) (root *Node, ok bool) {
	root = &Node{Kind: RootKind}
	stack := []*Node{root}

	for _, line := range groupLines(file, tokens) {
		first := line[0]
		switch first.Kind {
		case token.Begin:
			if len(line) < 2 || line[1].Kind != token.Ident {
				diag.ReportError(r, diag.StrMissingKind, first.Span, "/begin without a kind tag")
				return nil, false
			}
			node := &Node{
				Kind:     line[1].Text,
				KindSpan: line[1].Span,
				Header:   line[2:],
				Span:     first.Span,
			}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, node)
			stack = append(stack, node)

		case token.End:
			if len(line) < 2 || line[1].Kind != token.Ident {
				diag.ReportError(r, diag.StrMissingKind, first.Span, "/end without a kind tag")
				return nil, false
			}
			if len(stack) == 1 {
				diag.ReportError(r, diag.StrStrayEnd, first.Span,
					fmt.Sprintf("/end %s without a matching /begin", line[1].Text))
				return nil, false
			}
			top := stack[len(stack)-1]
			if !strings.EqualFold(top.Kind, line[1].Text) {
				diag.ReportError(r, diag.StrEndMismatch, line[1].Span,
					fmt.Sprintf("/end %s closes open block %s", line[1].Text, top.Kind))
				return nil, false
			}
			top.Span = top.Span.Cover(line[len(line)-1].Span)
			stack = stack[:len(stack)-1]

		default:
			top := stack[len(stack)-1]
			top.Body = append(top.Body, line)
		}
	}

	if len(stack) > 1 {
		top := stack[len(stack)-1]
		diag.ReportError(r, diag.StrUnclosedBlock, top.KindSpan,
			fmt.Sprintf("block %s is never closed", top.Kind))
		return nil, false
	}
	return root, true
}

// groupLines splits the token stream into source lines, dropping EOF.
// Blank and comment-only lines produce no group at all.
func groupLines(file *source.File, tokens []token.Token) [][]token.Token {
	var lines [][]token.Token
	lastLine := uint32(0)
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}
		line := file.LineAt(tok.Span.Start)
		if line != lastLine {
			lines = append(lines, []token.Token{tok})
			lastLine = line
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], tok)
	}
	return lines
}
