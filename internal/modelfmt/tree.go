package modelfmt

import (
	"fmt"
	"io"
	"strings"

	"a2lkit/internal/block"
)

// FormatTree writes the block tree with one node per line, indented by
// nesting depth. Header tokens are shown inline, bodies as line counts.
func FormatTree(w io.Writer, root *block.Node) {
	for _, child := range root.Children {
		writeNode(w, child, 0)
	}
}

func writeNode(w io.Writer, n *block.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s", indent, n.Kind)
	if len(n.Header) > 0 {
		parts := make([]string, len(n.Header))
		for i, t := range n.Header {
			parts[i] = t.Text
		}
		fmt.Fprintf(w, " %s", strings.Join(parts, " "))
	}
	if len(n.Body) > 0 {
		fmt.Fprintf(w, "  [%d body lines]", len(n.Body))
	}
	fmt.Fprintln(w)
	for _, c := range n.Children {
		writeNode(w, c, depth+1)
	}
}
