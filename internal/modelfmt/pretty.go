package modelfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"a2lkit/internal/diag"
	"a2lkit/internal/source"
)

// Pretty renders diagnostics for humans, one per block:
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	    <source line>
//	    ^~~~
//
// Call bag.Sort() first for deterministic order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writePretty(w, d, fs, opts)
	}
}

func writePretty(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	var path string
	switch opts.PathMode {
	case PathModeAbsolute:
		path = file.FormatPath("absolute", "")
	case PathModeRelative:
		path = file.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		path = file.FormatPath("basename", "")
	default:
		path = file.FormatPath("auto", "")
	}

	sev := severityStyle(d.Severity, opts.Color)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		path, start.Line, start.Col,
		sev.Sprint(d.Severity.String()), d.Code.ID(), d.Message)

	if opts.Context && !d.Primary.Empty() {
		writeContext(w, file, d.Primary, start)
	}
	for _, note := range d.Notes {
		nf := fs.Get(note.Span.File)
		npos, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
			nf.FormatPath("auto", ""), npos.Line, npos.Col, note.Msg)
	}
}

func writeContext(w io.Writer, file *source.File, span source.Span, start source.LineCol) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", line)

	// The marker stays on one line even when the span crosses lines.
	width := int(span.Len())
	maxWidth := len(line) - int(start.Col) + 1
	if width > maxWidth {
		width = maxWidth
	}
	if width < 1 {
		width = 1
	}
	pad := strings.Repeat(" ", int(start.Col)-1)
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, "    %s%s\n", pad, marker)
}

func severityStyle(sev diag.Severity, colored bool) *color.Color {
	var c *color.Color
	switch sev {
	case diag.SevError:
		c = color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		c = color.New(color.FgYellow, color.Bold)
	default:
		c = color.New(color.FgCyan)
	}
	if !colored {
		c.DisableColor()
	}
	return c
}
