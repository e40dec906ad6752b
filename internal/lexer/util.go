package lexer

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isHex(b byte) bool {
	return (b >= '0' && b <= '9') ||
		(b >= 'a' && b <= 'f') ||
		(b >= 'A' && b <= 'F')
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// isWordByte reports whether b can continue a bareword. Barewords end at
// whitespace, quotes, and slashes (markers and comments bind tighter).
func isWordByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '"', '/', 0:
		return false
	}
	return true
}
