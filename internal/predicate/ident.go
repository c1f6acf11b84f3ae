package predicate

import "strpred/internal/ascii"

// reserved holds the words the host identifier grammar refuses as bare
// identifiers: strict, reserved and edition keywords, plus the lone
// underscore. Matching is case-sensitive ("Self" and "self" are both
// listed; "SELF" is an identifier).
var reserved = map[string]struct{}{
	"_":        {},
	"abstract": {},
	"as":       {},
	"async":    {},
	"await":    {},
	"become":   {},
	"box":      {},
	"break":    {},
	"const":    {},
	"continue": {},
	"crate":    {},
	"do":       {},
	"dyn":      {},
	"else":     {},
	"enum":     {},
	"extern":   {},
	"false":    {},
	"final":    {},
	"fn":       {},
	"for":      {},
	"if":       {},
	"impl":     {},
	"in":       {},
	"let":      {},
	"loop":     {},
	"macro":    {},
	"match":    {},
	"mod":      {},
	"move":     {},
	"mut":      {},
	"override": {},
	"priv":     {},
	"pub":      {},
	"ref":      {},
	"return":   {},
	"Self":     {},
	"self":     {},
	"static":   {},
	"struct":   {},
	"super":    {},
	"trait":    {},
	"true":     {},
	"try":      {},
	"type":     {},
	"typeof":   {},
	"unsafe":   {},
	"unsized":  {},
	"use":      {},
	"virtual":  {},
	"where":    {},
	"while":    {},
	"yield":    {},
}

// IsReserved reports whether b is a reserved word.
func IsReserved(b []byte) bool {
	_, ok := reserved[string(b)]
	return ok
}

// IsIdentifier reports whether b is a legal bare identifier: an ASCII letter
// or underscore followed by letters, digits or underscores, and not a
// reserved word.
func IsIdentifier(b []byte) bool {
	if !isIdentShape(b) {
		return false
	}
	return !IsReserved(b)
}

// isIdentShape checks the character grammar only.
func isIdentShape(b []byte) bool {
	if len(b) == 0 || !ascii.IsIdentStart(b[0]) {
		return false
	}
	for _, c := range b[1:] {
		if !ascii.IsIdentByte(c) {
			return false
		}
	}
	return true
}

