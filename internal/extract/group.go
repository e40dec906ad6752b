package extract

import (
	"strings"

	"a2lkit/internal/block"
	"a2lkit/internal/model"
)

// Group reads one GROUP and the names listed in its REF_MEASUREMENT
// children.
func Group(n *block.Node) (model.Group, error) {
	if !strings.EqualFold(n.Kind, "GROUP") {
		return model.Group{}, errWrongKind("GROUP", n.Kind, n.KindSpan)
	}
	var g model.Group
	if len(n.Header) == 0 {
		return g, errEmptyHeader(n.Kind, n.KindSpan)
	}
	if n.HeaderText(0) == "" {
		return g, errMissingName(n.Kind, n.KindSpan)
	}
	g.Name = n.HeaderText(0)
	g.Description = n.HeaderText(1)
	for _, ref := range n.ChildrenOf("REF_MEASUREMENT") {
		for _, t := range flatTokens(ref) {
			g.RefMeasurements = append(g.RefMeasurements, t.Text)
		}
	}
	return g, nil
}

// Function reads one FUNCTION and the names listed in its LOC_MEASUREMENT
// children.
func Function(n *block.Node) (model.Function, error) {
	if !strings.EqualFold(n.Kind, "FUNCTION") {
		return model.Function{}, errWrongKind("FUNCTION", n.Kind, n.KindSpan)
	}
	var f model.Function
	if len(n.Header) == 0 {
		return f, errEmptyHeader(n.Kind, n.KindSpan)
	}
	if n.HeaderText(0) == "" {
		return f, errMissingName(n.Kind, n.KindSpan)
	}
	f.Name = n.HeaderText(0)
	f.Description = n.HeaderText(1)
	for _, loc := range n.ChildrenOf("LOC_MEASUREMENT") {
		for _, t := range flatTokens(loc) {
			f.LocMeasurements = append(f.LocMeasurements, t.Text)
		}
	}
	return f, nil
}
