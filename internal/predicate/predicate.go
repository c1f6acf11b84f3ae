// Package predicate implements the byte-string classifiers used by the host
// parser: number, substring, identifier, prefix and byte-count tests.
//
// All functions are pure: they read their arguments, never retain or modify
// them, and keep no state between calls. They are safe for concurrent use.
// Classification is byte/ASCII oriented; input that is not valid UTF-8 is
// processed byte by byte and never causes an error.
package predicate

import (
	"bytes"

	"strpred/internal/ascii"
)

// CaseMode selects how HasPrefix compares bytes.
type CaseMode int

const (
	CaseExact CaseMode = iota // byte-for-byte comparison
	CaseFold                  // ASCII case-insensitive comparison
)

func (m CaseMode) String() string {
	switch m {
	case CaseExact:
		return "exact"
	case CaseFold:
		return "fold"
	default:
		return "unknown"
	}
}

// Contains reports whether needle occurs as a contiguous byte sequence in
// haystack. An empty needle is found in every haystack.
func Contains(haystack, needle []byte) bool {
	return bytes.Contains(haystack, needle)
}

// HasPrefix reports whether text begins with prefix under the given mode.
// CaseFold folds A-Z only; all other bytes must match exactly.
func HasPrefix(prefix, text []byte, mode CaseMode) bool {
	if mode == CaseFold {
		return ascii.HasPrefixFold(text, prefix)
	}
	return bytes.HasPrefix(text, prefix)
}

// CountByte returns the number of bytes in text equal to c.
func CountByte(text []byte, c byte) int {
	n := 0
	for _, b := range text {
		if b == c {
			n++
		}
	}
	return n
}
