package predicate

import "strpred/internal/ascii"

// Non-finite spellings accepted in place of digits, after an optional sign.
var nonFinite = [][]byte{
	[]byte("inf"),
	[]byte("infinity"),
	[]byte("nan"),
}

// IsNumber reports whether the whole of b is a floating-point literal:
//
//	[+-] ( digits [ "." [digits] ] | "." digits ) [ (e|E) [+-] digits ]
//	[+-] ( inf | infinity | nan )    (ASCII case-insensitive)
//
// Whitespace, hex notation, digit separators and trailing bytes all make
// the result false. Magnitude is not checked, so "1e999" is a number.
func IsNumber(b []byte) bool {
	i := 0
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		i++
	}
	if isNonFinite(b[i:]) {
		return true
	}

	mantissa := 0
	for i < len(b) && ascii.IsDigit(b[i]) {
		i++
		mantissa++
	}
	if i < len(b) && b[i] == '.' {
		i++
		for i < len(b) && ascii.IsDigit(b[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}

	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		i++
		if i < len(b) && (b[i] == '+' || b[i] == '-') {
			i++
		}
		exponent := 0
		for i < len(b) && ascii.IsDigit(b[i]) {
			i++
			exponent++
		}
		if exponent == 0 {
			return false
		}
	}

	return i == len(b)
}

func isNonFinite(b []byte) bool {
	for _, word := range nonFinite {
		if ascii.EqualFold(b, word) {
			return true
		}
	}
	return false
}
