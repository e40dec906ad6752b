package extract

import (
	"strings"

	"a2lkit/internal/block"
	"a2lkit/internal/model"
	"a2lkit/internal/token"
)

// RecordLayout reads one RECORD_LAYOUT. Layout entries are kept as raw
// lines; the many FNC_VALUES/AXIS_PTS_X variants share no useful shape.
func RecordLayout(n *block.Node) (model.RecordLayout, error) {
	if !strings.EqualFold(n.Kind, "RECORD_LAYOUT") {
		return model.RecordLayout{}, errWrongKind("RECORD_LAYOUT", n.Kind, n.KindSpan)
	}
	var rl model.RecordLayout
	if len(n.Header) == 0 {
		return rl, errEmptyHeader(n.Kind, n.KindSpan)
	}
	if n.HeaderText(0) == "" {
		return rl, errMissingName(n.Kind, n.KindSpan)
	}
	rl.Name = n.HeaderText(0)
	if len(n.Header) > 1 {
		rl.Entries = append(rl.Entries, joinLine(n.Header[1:]))
	}
	for _, line := range n.Body {
		rl.Entries = append(rl.Entries, joinLine(line))
	}
	return rl, nil
}

func joinLine(line []token.Token) string {
	parts := make([]string, len(line))
	for i, t := range line {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}
