package extract

import (
	"fmt"

	"a2lkit/internal/diag"
	"a2lkit/internal/source"
)

// Error describes a per-block extraction failure. The assembler records it
// and moves on to the next block.
type Error struct {
	Code diag.Code
	Kind string
	Name string
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %s: %s", e.Kind, e.Name, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func errEmptyHeader(kind string, sp source.Span) *Error {
	return &Error{
		Code: diag.ExtEmptyHeader,
		Kind: kind,
		Span: sp,
		Msg:  "block has no fields at all",
	}
}

func errMissingName(kind string, sp source.Span) *Error {
	return &Error{
		Code: diag.ExtMissingName,
		Kind: kind,
		Span: sp,
		Msg:  "block has no name",
	}
}

func errWrongKind(want, got string, sp source.Span) *Error {
	return &Error{
		Code: diag.ExtWrongKind,
		Kind: got,
		Span: sp,
		Msg:  fmt.Sprintf("extractor for %s applied to %s", want, got),
	}
}
