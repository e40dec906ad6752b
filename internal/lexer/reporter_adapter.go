package lexer

import (
	"a2lkit/internal/diag"
	"a2lkit/internal/source"
)

// ReporterAdapter adapts a diag.Bag to the lexer's Reporter interface.
type ReporterAdapter struct {
	Bag *diag.Bag
}

func (r *ReporterAdapter) Report(code diag.Code, sev diag.Severity, span source.Span, msg string) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  span,
	})
}
