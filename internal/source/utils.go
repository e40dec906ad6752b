package source

import (
	"path/filepath"
	"slices"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// normalizeCRLF replaces every \r\n with \n, leaving lone \r alone.
// Returns the resulting slice and whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// transcodeLatin1 re-encodes content as UTF-8 when it is not valid UTF-8.
// A2L files exported by calibration tools are frequently ISO 8859-1; every
// byte sequence is valid Latin-1, so this cannot fail.
func transcodeLatin1(content []byte) ([]byte, bool) {
	if utf8.Valid(content) {
		return content, false
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return content, false
	}
	return out, true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// No newlines: the whole file is one line.
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// Binary search: number of newlines strictly before off. The newline
	// byte itself still belongs to the line it terminates.
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}

	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	// one canonical shape for cross-platform diffs
	return filepath.ToSlash(filepath.Clean(p))
}

// AbsolutePath returns the absolute form of p.
func AbsolutePath(p string) (string, error) {
	return filepath.Abs(p)
}

// RelativePath returns p relative to base.
func RelativePath(p, base string) (string, error) {
	return filepath.Rel(base, p)
}

// BaseName returns the last element of p.
func BaseName(p string) string {
	return filepath.Base(p)
}
