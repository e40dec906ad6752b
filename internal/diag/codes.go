package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical: best-effort, never fatal
	LexInfo                     Code = 1000
	LexUnterminatedString       Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003

	// Structural: fatal to the whole parse
	StrInfo           Code = 2000
	StrEndMismatch    Code = 2001
	StrStrayEnd       Code = 2002
	StrUnclosedBlock  Code = 2003
	StrMissingKind    Code = 2004
	StrMissingProject Code = 2005
	StrMissingModule  Code = 2006

	// Extraction: fail-soft, per block
	ExtInfo        Code = 3000
	ExtEmptyHeader Code = 3001
	ExtMissingName Code = 3002
	ExtWrongKind   Code = 3003

	// I/O
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode: "unknown error",

	LexInfo:                     "lexical note",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed numeric literal",

	StrInfo:           "structural note",
	StrEndMismatch:    "mismatched /end kind",
	StrStrayEnd:       "/end without open block",
	StrUnclosedBlock:  "unclosed block at end of input",
	StrMissingKind:    "block marker without kind tag",
	StrMissingProject: "missing PROJECT block",
	StrMissingModule:  "missing MODULE block",

	ExtInfo:        "extraction note",
	ExtEmptyHeader: "block header is empty",
	ExtMissingName: "block has no name",
	ExtWrongKind:   "extractor applied to wrong block kind",

	IOInfo:          "I/O note",
	IOLoadFileError: "failed to load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("STR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EXT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

// IsStructural reports whether the code belongs to the fatal structural range.
func (c Code) IsStructural() bool {
	return c >= 2000 && c < 3000
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
