// Package ascii provides byte classification for ASCII text.
//
// Every function works on single bytes or byte slices and ignores encoding:
// bytes >= 0x80 are never letters, digits, or whitespace, and case folding
// only touches 'A'-'Z'.
package ascii

// IsLetter returns true if c is an ASCII letter (A-Z or a-z).
func IsLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// IsDigit returns true if c is an ASCII digit (0-9).
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// IsIdentStart returns true if c may begin a bare identifier.
func IsIdentStart(c byte) bool {
	return IsLetter(c) || c == '_'
}

// IsIdentByte returns true if c may continue a bare identifier.
func IsIdentByte(c byte) bool {
	return IsLetter(c) || IsDigit(c) || c == '_'
}

// IsWhitespace returns true if c is ASCII whitespace.
func IsWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// Lowercase converts ASCII uppercase to lowercase.
// Non-uppercase bytes are returned unchanged.
func Lowercase(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// EqualFold reports whether a and b are equal under ASCII case folding.
func EqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if Lowercase(a[i]) != Lowercase(b[i]) {
			return false
		}
	}
	return true
}

// HasPrefixFold reports whether s begins with prefix under ASCII case
// folding. It does not allocate.
func HasPrefixFold(s, prefix []byte) bool {
	return len(s) >= len(prefix) && EqualFold(s[:len(prefix)], prefix)
}
