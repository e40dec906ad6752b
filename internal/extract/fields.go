package extract

import (
	"strconv"
	"strings"

	"a2lkit/internal/block"
	"a2lkit/internal/model"
	"a2lkit/internal/token"
)

// fieldReader walks a block's positional fields: first the header tokens,
// then the body lines that do not start with a keyword from the skip set.
// This accepts both layouts seen in the wild, everything on the /begin line
// or one field per body line, through a single mechanism.
type fieldReader struct {
	toks []token.Token
	i    int
}

func newFieldReader(n *block.Node, skip map[string]bool) *fieldReader {
	toks := make([]token.Token, 0, len(n.Header))
	toks = append(toks, n.Header...)
	for _, line := range n.Body {
		if len(line) > 0 && skip[strings.ToUpper(line[0].Text)] {
			continue
		}
		toks = append(toks, line...)
	}
	return &fieldReader{toks: toks}
}

func (r *fieldReader) next() (token.Token, bool) {
	if r.i >= len(r.toks) {
		return token.Token{}, false
	}
	t := r.toks[r.i]
	r.i++
	return t, true
}

func (r *fieldReader) peek() (token.Token, bool) {
	if r.i >= len(r.toks) {
		return token.Token{}, false
	}
	return r.toks[r.i], true
}

func (r *fieldReader) rest() []token.Token {
	return r.toks[r.i:]
}

// nextText returns the next positional field's text, or "" when exhausted.
func (r *fieldReader) nextText() string {
	t, ok := r.next()
	if !ok {
		return ""
	}
	return t.Text
}

// nextInt returns the next positional field as an integer, zero-padded.
func (r *fieldReader) nextInt() int64 {
	t, ok := r.next()
	if !ok {
		return 0
	}
	return toInt(t)
}

// nextFloat returns the next positional field as a float, zero-padded.
func (r *fieldReader) nextFloat() float64 {
	t, ok := r.next()
	if !ok {
		return 0
	}
	return toFloat(t)
}

func keywordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// commonKeywords are optional sub-value lines shared across the named
// record kinds; they are scanned per kind, never consumed positionally.
var commonKeywords = keywordSet(
	"BYTE_ORDER", "FORMAT", "SYMBOL_LINK", "ECU_ADDRESS", "ADDRESS",
	"EXTENDED_LIMITS", "BIT_MASK", "DISPLAY_IDENTIFIER", "NUMBER",
	"ARRAY_SIZE", "ECU_ADDRESS_EXTENSION", "MATRIX_DIM", "PHYS_UNIT",
	"READ_ONLY", "DEPOSIT", "REF_UNIT",
)

// flatTokens returns header plus every body line as one token sequence.
func flatTokens(n *block.Node) []token.Token {
	out := make([]token.Token, 0, len(n.Header))
	out = append(out, n.Header...)
	for _, line := range n.Body {
		out = append(out, line...)
	}
	return out
}

// toInt converts a numeric token, handling 0x and signs; malformed values
// degrade to zero per the permissive extraction policy.
func toInt(t token.Token) int64 {
	text := strings.TrimPrefix(t.Text, "+")
	if v, err := strconv.ParseInt(text, 0, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int64(f)
	}
	return 0
}

func toFloat(t token.Token) float64 {
	if f, err := strconv.ParseFloat(t.Text, 64); err == nil {
		return f
	}
	if v, err := strconv.ParseInt(strings.TrimPrefix(t.Text, "+"), 0, 64); err == nil {
		return float64(v)
	}
	return 0
}

// symbolLink reads a SYMBOL_LINK "name" offset line.
func symbolLink(line []token.Token) *model.SymbolLink {
	if len(line) < 3 {
		return nil
	}
	return &model.SymbolLink{Symbol: line[1].Text, Offset: toInt(line[2])}
}

func keyIs(line []token.Token, key string) bool {
	return len(line) > 0 && strings.EqualFold(line[0].Text, key)
}
