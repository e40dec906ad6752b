package extract

import (
	"strings"

	"a2lkit/internal/block"
	"a2lkit/internal/model"
	"a2lkit/internal/token"
)

// Characteristic reads one tunable parameter. The record layout reference
// is followed either directly by the conversion method, or by a numeric
// max-diff first; the numeric check disambiguates the two layouts.
func Characteristic(n *block.Node) (model.Characteristic, error) {
	if !strings.EqualFold(n.Kind, "CHARACTERISTIC") {
		return model.Characteristic{}, errWrongKind("CHARACTERISTIC", n.Kind, n.KindSpan)
	}
	var c model.Characteristic
	r := newFieldReader(n, commonKeywords)

	name, ok := r.next()
	if !ok {
		return c, errEmptyHeader(n.Kind, n.KindSpan)
	}
	if name.Text == "" {
		return c, errMissingName(n.Kind, n.KindSpan)
	}
	c.Name = name.Text
	c.Description = r.nextText()
	c.Type = r.nextText()
	c.Address = r.nextInt()
	c.RecordLayout = r.nextText()
	if t, ok := r.peek(); ok && t.IsNumeric() {
		c.MaxDiff = r.nextFloat()
	}
	c.CompuMethod = r.nextText()
	c.LowerLimit = r.nextFloat()
	c.UpperLimit = r.nextFloat()

	for _, line := range n.Body {
		switch {
		case keyIs(line, "SYMBOL_LINK"):
			c.SymbolLink = symbolLink(line)
		case keyIs(line, "EXTENDED_LIMITS"):
			if len(line) >= 3 {
				c.LowerLimit = toFloat(line[1])
				c.UpperLimit = toFloat(line[2])
			}
		}
	}
	return c, nil
}

// Measurement reads one signal. After the conversion method the trailing
// numeric run splits into optional conversion params plus the two limits.
func Measurement(n *block.Node) (model.Measurement, error) {
	if !strings.EqualFold(n.Kind, "MEASUREMENT") {
		return model.Measurement{}, errWrongKind("MEASUREMENT", n.Kind, n.KindSpan)
	}
	var m model.Measurement
	r := newFieldReader(n, commonKeywords)

	name, ok := r.next()
	if !ok {
		return m, errEmptyHeader(n.Kind, n.KindSpan)
	}
	if name.Text == "" {
		return m, errMissingName(n.Kind, n.KindSpan)
	}
	m.Name = name.Text
	m.Description = r.nextText()
	m.Datatype = r.nextText()
	m.CompuMethod = r.nextText()

	var run []token.Token
	for {
		t, ok := r.peek()
		if !ok || !t.IsNumeric() {
			break
		}
		r.next()
		run = append(run, t)
	}
	switch {
	case len(run) >= 2:
		m.LowerLimit = toFloat(run[len(run)-2])
		m.UpperLimit = toFloat(run[len(run)-1])
		for _, t := range run[:len(run)-2] {
			m.Params = append(m.Params, t.Text)
		}
	case len(run) == 1:
		m.Params = append(m.Params, run[0].Text)
	}

	for _, line := range n.Body {
		switch {
		case keyIs(line, "ECU_ADDRESS"):
			if len(line) >= 2 {
				m.ECUAddress = toInt(line[1])
			}
		case keyIs(line, "ADDRESS"):
			if len(line) >= 2 {
				m.Address = toInt(line[1])
			}
		case keyIs(line, "SYMBOL_LINK"):
			m.SymbolLink = symbolLink(line)
		case keyIs(line, "EXTENDED_LIMITS"):
			if len(line) >= 3 {
				m.LowerLimit = toFloat(line[1])
				m.UpperLimit = toFloat(line[2])
			}
		}
	}
	return m, nil
}

// AxisPts reads one calibration axis description.
func AxisPts(n *block.Node) (model.AxisPts, error) {
	if !strings.EqualFold(n.Kind, "AXIS_PTS") {
		return model.AxisPts{}, errWrongKind("AXIS_PTS", n.Kind, n.KindSpan)
	}
	var a model.AxisPts
	r := newFieldReader(n, commonKeywords)

	name, ok := r.next()
	if !ok {
		return a, errEmptyHeader(n.Kind, n.KindSpan)
	}
	if name.Text == "" {
		return a, errMissingName(n.Kind, n.KindSpan)
	}
	a.Name = name.Text
	a.Description = r.nextText()
	a.Address = r.nextInt()
	a.InputQuantity = r.nextText()
	a.RecordLayout = r.nextText()
	a.Deposit = r.nextInt()
	a.CompuMethod = r.nextText()
	a.MaxAxisPoints = r.nextInt()
	a.LowerLimit = r.nextFloat()
	a.UpperLimit = r.nextFloat()

	for _, line := range n.Body {
		switch {
		case keyIs(line, "BYTE_ORDER"):
			if len(line) >= 2 {
				a.ByteOrder = line[1].Text
			}
		case keyIs(line, "FORMAT"):
			if len(line) >= 2 {
				a.Format = line[1].Text
			}
		case keyIs(line, "SYMBOL_LINK"):
			a.SymbolLink = symbolLink(line)
		}
	}
	return a, nil
}
