package modelfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"a2lkit/internal/model"
)

// Summary prints a compact overview of the extracted model, one line per
// populated collection.
func Summary(w io.Writer, m *model.Model, colored bool) {
	head := color.New(color.FgWhite, color.Bold)
	num := color.New(color.FgGreen)
	if !colored {
		head.DisableColor()
		num.DisableColor()
	}

	fmt.Fprintf(w, "%s %s / %s\n", head.Sprint("project"), m.ProjectName, m.ModuleName)
	if m.ProtocolLayer != nil {
		fmt.Fprintf(w, "  protocol layer: version 0x%04X, MAX_CTO %d, MAX_DTO %d\n",
			m.ProtocolLayer.Version, m.ProtocolLayer.MaxCTO, m.ProtocolLayer.MaxDTO)
	}
	if m.Daq != nil {
		fmt.Fprintf(w, "  daq: %s, %s events\n", m.Daq.Mode, num.Sprint(len(m.Daq.Events)))
	}
	if m.XcpOnCan != nil {
		line := fmt.Sprintf("  xcp on can: version 0x%04X", m.XcpOnCan.Version)
		if m.XcpOnCan.CanFd != nil {
			line += " (CAN FD)"
		}
		fmt.Fprintln(w, line)
	}

	count := func(label string, n int) {
		if n > 0 {
			fmt.Fprintf(w, "  %-16s %s\n", label, num.Sprint(n))
		}
	}
	count("memory segments", len(m.MemorySegments))
	count("axis points", len(m.AxisPts))
	count("measurements", len(m.Measurements))
	count("characteristics", len(m.Characteristics))
	count("compu methods", len(m.CompuMethods))
	count("compu vtabs", len(m.CompuVTabs))
	count("record layouts", len(m.RecordLayouts))
	count("groups", len(m.Groups))
	count("functions", len(m.Functions))
}
