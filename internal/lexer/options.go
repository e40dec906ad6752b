package lexer

import (
	"a2lkit/internal/diag"
	"a2lkit/internal/source"
)

// Reporter is a thin interface so the lexer does not depend on how
// diagnostics are collected; the outer layer decides.
type Reporter interface {
	Report(code diag.Code, sev diag.Severity, span source.Span, msg string)
}

type Options struct {
	Reporter Reporter // may be nil: lexical anomalies are then dropped, lexing continues
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg)
	}
}

func (lx *Lexer) warnLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevWarning, sp, msg)
	}
}
