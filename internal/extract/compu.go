package extract

import (
	"strings"

	"a2lkit/internal/block"
	"a2lkit/internal/model"
)

// CompuMethod reads one conversion method. COEFFS stays a body-line scan
// since its six rational coefficients follow the keyword in place.
func CompuMethod(n *block.Node) (model.CompuMethod, error) {
	if !strings.EqualFold(n.Kind, "COMPU_METHOD") {
		return model.CompuMethod{}, errWrongKind("COMPU_METHOD", n.Kind, n.KindSpan)
	}
	var cm model.CompuMethod
	r := newFieldReader(n, keywordSet("COEFFS", "COMPU_TAB_REF", "STATUS_STRING_REF"))

	name, ok := r.next()
	if !ok {
		return cm, errEmptyHeader(n.Kind, n.KindSpan)
	}
	if name.Text == "" {
		return cm, errMissingName(n.Kind, n.KindSpan)
	}
	cm.Name = name.Text
	cm.Description = r.nextText()
	cm.MethodType = r.nextText()
	cm.Format = r.nextText()
	cm.Unit = r.nextText()

	for _, line := range n.Body {
		if keyIs(line, "COEFFS") {
			for _, t := range line[1:] {
				cm.Coeffs = append(cm.Coeffs, toFloat(t))
			}
		}
	}
	return cm, nil
}

// CompuVTab reads one verbal conversion table. Both layouts occur: an
// explicit entry count before the pairs, or bare value/label pairs; when
// the first number matches the pair count exactly it is taken as the count.
func CompuVTab(n *block.Node) (model.CompuVTab, error) {
	if !strings.EqualFold(n.Kind, "COMPU_VTAB") {
		return model.CompuVTab{}, errWrongKind("COMPU_VTAB", n.Kind, n.KindSpan)
	}
	var vt model.CompuVTab
	r := newFieldReader(n, keywordSet("DEFAULT_VALUE"))

	name, ok := r.next()
	if !ok {
		return vt, errEmptyHeader(n.Kind, n.KindSpan)
	}
	if name.Text == "" {
		return vt, errMissingName(n.Kind, n.KindSpan)
	}
	vt.Name = name.Text
	vt.Description = r.nextText()
	vt.TabType = r.nextText()

	pairs := r.rest()
	if len(pairs) > 0 && pairs[0].IsNumeric() {
		count := toInt(pairs[0])
		if count >= 0 && int(count)*2 == len(pairs)-1 {
			pairs = pairs[1:]
		}
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		vt.Entries = append(vt.Entries, model.VTabEntry{
			Value: toInt(pairs[i]),
			Label: pairs[i+1].Text,
		})
	}
	return vt, nil
}
