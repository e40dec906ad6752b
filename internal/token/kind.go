package token

// Kind represents the category of a description-file token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the input.
	EOF

	// Ident represents a bareword: keywords like CHARACTERISTIC, names,
	// enum tags, and any other unquoted run of non-space characters.
	Ident
	// Begin represents the '/begin' block opener.
	Begin
	// End represents the '/end' block closer.
	End
	// IntLit represents an integer literal, including 0x-prefixed hex.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// String represents a double-quoted string with quotes stripped and
	// escapes resolved.
	String
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Begin:
		return "Begin"
	case End:
		return "End"
	case IntLit:
		return "IntLit"
	case FloatLit:
		return "FloatLit"
	case String:
		return "String"
	}
	return "Unknown"
}
