package block

import (
	"strings"

	"a2lkit/internal/source"
	"a2lkit/internal/token"
)

// RootKind tags the synthetic node that owns the top-level blocks.
const RootKind = "<root>"

// Node is one /begin … /end block in the generic tree. All block kinds share
// this shape; only the extraction layer specializes by kind.
type Node struct {
	// Kind is the tag after /begin, stored as written. Matching is
	// case-insensitive everywhere.
	Kind     string
	KindSpan source.Span
	// Header holds the tokens following the kind on the /begin line.
	Header []token.Token
	// Body holds the non-block lines belonging directly to this node,
	// one token slice per source line, in source order.
	Body [][]token.Token
	// Children holds nested blocks in source order.
	Children []*Node
	// Span covers the whole block from /begin to /end.
	Span source.Span
}

// ChildrenOf returns every direct child with the given kind, in source order.
func (n *Node) ChildrenOf(kind string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if strings.EqualFold(c.Kind, kind) {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first direct child with the given kind.
func (n *Node) FirstChild(kind string) (*Node, bool) {
	for _, c := range n.Children {
		if strings.EqualFold(c.Kind, kind) {
			return c, true
		}
	}
	return nil, false
}

// HeaderText returns the text of the i-th header token, or "" when the
// header is shorter than that.
func (n *Node) HeaderText(i int) string {
	if i < 0 || i >= len(n.Header) {
		return ""
	}
	return n.Header[i].Text
}
