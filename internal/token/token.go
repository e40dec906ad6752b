package token

import (
	"a2lkit/internal/source"
)

// Token represents a single token with its location.
// Text holds the decoded value: for String the unquoted content, for
// everything else the original spelling.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsNumeric reports whether the token is an integer or float literal.
func (t Token) IsNumeric() bool {
	return t.Kind == IntLit || t.Kind == FloatLit
}

// IsMarker reports whether the token opens or closes a block.
func (t Token) IsMarker() bool {
	return t.Kind == Begin || t.Kind == End
}
