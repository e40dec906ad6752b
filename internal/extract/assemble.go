package extract

import (
	"fmt"
	"strings"

	"a2lkit/internal/block"
	"a2lkit/internal/diag"
	"a2lkit/internal/model"
)

// Assemble walks the block tree and fills the typed model. PROJECT and
// MODULE are mandatory; without them ok is false and no model is built.
// Everything below MODULE is fail-soft: a malformed block produces one
// extraction diagnostic and the walk continues, so one broken record never
// hides the rest of the file.
func Assemble(root *block.Node, r diag.Reporter) (*model.Model, bool) {
	proj, ok := root.FirstChild("PROJECT")
	if !ok {
		diag.ReportError(r, diag.StrMissingProject, root.Span, "no PROJECT block found")
		return nil, false
	}
	mod, ok := proj.FirstChild("MODULE")
	if !ok {
		diag.ReportError(r, diag.StrMissingModule, proj.KindSpan, "PROJECT has no MODULE block")
		return nil, false
	}

	m := &model.Model{
		ProjectName: proj.HeaderText(0),
		ModuleName:  mod.HeaderText(0),
	}
	a := &assembler{model: m, reporter: r}
	for _, child := range mod.Children {
		if fn, found := dispatch[strings.ToUpper(child.Kind)]; found {
			fn(a, child)
		}
	}
	return m, true
}

type assembler struct {
	model    *model.Model
	reporter diag.Reporter
}

// dispatch routes recognized MODULE children; unknown kinds fall through
// silently, which is what keeps vendor extensions harmless.
var dispatch = map[string]func(*assembler, *block.Node){
	"IF_DATA":        (*assembler).ifData,
	"MOD_PAR":        (*assembler).modPar,
	"PROTOCOL_LAYER": (*assembler).protocolLayer,
	"DAQ":            (*assembler).daq,
	"XCP_ON_CAN":     (*assembler).xcpOnCan,
	"AXIS_PTS": func(a *assembler, n *block.Node) {
		if v, err := AxisPts(n); a.keep(n, err) {
			a.model.AxisPts = append(a.model.AxisPts, v)
		}
	},
	"MEASUREMENT": func(a *assembler, n *block.Node) {
		if v, err := Measurement(n); a.keep(n, err) {
			a.model.Measurements = append(a.model.Measurements, v)
		}
	},
	"CHARACTERISTIC": func(a *assembler, n *block.Node) {
		if v, err := Characteristic(n); a.keep(n, err) {
			a.model.Characteristics = append(a.model.Characteristics, v)
		}
	},
	"COMPU_METHOD": func(a *assembler, n *block.Node) {
		if v, err := CompuMethod(n); a.keep(n, err) {
			a.model.CompuMethods = append(a.model.CompuMethods, v)
		}
	},
	"COMPU_VTAB": func(a *assembler, n *block.Node) {
		if v, err := CompuVTab(n); a.keep(n, err) {
			a.model.CompuVTabs = append(a.model.CompuVTabs, v)
		}
	},
	"RECORD_LAYOUT": func(a *assembler, n *block.Node) {
		if v, err := RecordLayout(n); a.keep(n, err) {
			a.model.RecordLayouts = append(a.model.RecordLayouts, v)
		}
	},
	"GROUP": func(a *assembler, n *block.Node) {
		if v, err := Group(n); a.keep(n, err) {
			a.model.Groups = append(a.model.Groups, v)
		}
	},
	"FUNCTION": func(a *assembler, n *block.Node) {
		if v, err := Function(n); a.keep(n, err) {
			a.model.Functions = append(a.model.Functions, v)
		}
	},
}

// keep reports an extraction failure and tells the caller whether the
// record survived.
func (a *assembler) keep(n *block.Node, err error) bool {
	if err == nil {
		return true
	}
	if e, ok := err.(*Error); ok {
		span := e.Span
		if span.Empty() {
			span = n.KindSpan
		}
		diag.ReportError(a.reporter, e.Code, span, e.Error())
		return false
	}
	diag.ReportError(a.reporter, diag.ExtInfo, n.KindSpan,
		fmt.Sprintf("%s: %v", n.Kind, err))
	return false
}

// ifData handles IF_DATA XCPplus, where the protocol layer, DAQ and
// transport descriptions live. Some emitters nest an extra XCPplus block
// instead of tagging the header; both shapes are accepted.
func (a *assembler) ifData(n *block.Node) {
	host := n
	if x, ok := n.FirstChild("XCPplus"); ok {
		host = x
	} else if !strings.EqualFold(n.HeaderText(0), "XCPplus") {
		return
	}
	if pl, ok := host.FirstChild("PROTOCOL_LAYER"); ok {
		a.protocolLayer(pl)
	}
	if dq, ok := host.FirstChild("DAQ"); ok {
		a.daq(dq)
	}
	if tc, ok := host.FirstChild("XCP_ON_CAN"); ok {
		a.xcpOnCan(tc)
	}
}

func (a *assembler) modPar(n *block.Node) {
	for _, seg := range n.ChildrenOf("MEMORY_SEGMENT") {
		if ms, err := MemorySegment(seg); a.keep(seg, err) {
			a.model.MemorySegments = append(a.model.MemorySegments, ms)
		}
	}
}

func (a *assembler) protocolLayer(n *block.Node) {
	if pl, err := ProtocolLayer(n); a.keep(n, err) {
		a.model.ProtocolLayer = &pl
	}
}

func (a *assembler) daq(n *block.Node) {
	if dq, err := Daq(n); a.keep(n, err) {
		a.model.Daq = &dq
		a.model.DaqEvents = append(a.model.DaqEvents, dq.Events...)
	}
}

func (a *assembler) xcpOnCan(n *block.Node) {
	if tc, err := XcpOnCan(n); a.keep(n, err) {
		a.model.XcpOnCan = &tc
	}
}
