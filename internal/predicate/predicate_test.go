package predicate

import (
	"strings"
	"sync"
	"testing"
)

func TestIsNumber(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"3.14", true},
		{"1e10", true},
		{"0", true},
		{"-7", true},
		{"+7", true},
		{"1.", true},
		{".5", true},
		{"-.5e-3", true},
		{"1.e5", true},
		{"6.022E+23", true},
		{"007", true},
		{"1e999", true},
		{"inf", true},
		{"-Infinity", true},
		{"NaN", true},
		{"+nan", true},

		{"", false},
		{"abc", false},
		{"12abc", false},
		{"+", false},
		{"-", false},
		{".", false},
		{"e5", false},
		{".e5", false},
		{"1e", false},
		{"1e+", false},
		{"1.2.3", false},
		{"--1", false},
		{" 1", false},
		{"1 ", false},
		{"1 2", false},
		{"0x10", false},
		{"1_000", false},
		{"infin", false},
		{"nana", false},
		{"1\x00", false},
		{"\xff", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsNumber([]byte(tt.input)); got != tt.want {
				t.Errorf("IsNumber(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		haystack, needle string
		want             bool
	}{
		{"hello world", "lo wo", true},
		{"abc", "", true},
		{"", "", true},
		{"abc", "abc", true},
		{"abc", "abcd", false},
		{"abc", "ABC", false},
		{"", "a", false},
		{"a\xffb", "\xff", true},
		{"a\xfeb", "\xff", false},
	}

	for _, tt := range tests {
		if got := Contains([]byte(tt.haystack), []byte(tt.needle)); got != tt.want {
			t.Errorf("Contains(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

func TestIsIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"x1", true},
		{"_tmp", true},
		{"x", true},
		{"__", true},
		{"Species_A", true},
		{"SELF", true},
		{"matches", true},

		{"", false},
		{"1x", false},
		{"a b", false},
		{" a", false},
		{"a-b", false},
		{"a.b", false},
		{"_", false},
		{"fn", false},
		{"self", false},
		{"Self", false},
		{"match", false},
		{"r#match", false},
		{"caf\xc3\xa9", false},
		{"\xff", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsIdentifier([]byte(tt.input)); got != tt.want {
				t.Errorf("IsIdentifier(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReservedWordsAreWellFormed(t *testing.T) {
	for w := range reserved {
		if w != "_" && !isIdentShape([]byte(w)) {
			t.Errorf("reserved word %q is not identifier-shaped", w)
		}
		if IsIdentifier([]byte(w)) {
			t.Errorf("IsIdentifier(%q) = true for reserved word", w)
		}
	}
}

func TestHasPrefix(t *testing.T) {
	tests := []struct {
		prefix, text string
		mode         CaseMode
		want         bool
	}{
		{"ABC", "abcdef", CaseFold, true},
		{"ABC", "abcdef", CaseExact, false},
		{"abc", "abcdef", CaseExact, true},
		{"abc", "ABCDEF", CaseFold, true},
		{"", "abc", CaseExact, true},
		{"", "", CaseFold, true},
		{"abc", "abc", CaseExact, true},
		{"abcd", "abc", CaseFold, false},
		{"b", "abc", CaseFold, false},
		{"\xc3\x84", "\xc3\xa4x", CaseFold, false},
		{"\xff", "\xffx", CaseExact, true},
	}

	for _, tt := range tests {
		if got := HasPrefix([]byte(tt.prefix), []byte(tt.text), tt.mode); got != tt.want {
			t.Errorf("HasPrefix(%q, %q, %s) = %v, want %v", tt.prefix, tt.text, tt.mode, got, tt.want)
		}
	}
}

func TestCaseModeString(t *testing.T) {
	if CaseExact.String() != "exact" || CaseFold.String() != "fold" {
		t.Errorf("unexpected names: %s, %s", CaseExact, CaseFold)
	}
	if CaseMode(9).String() != "unknown" {
		t.Errorf("CaseMode(9) = %s, want unknown", CaseMode(9))
	}
}

func TestCountByte(t *testing.T) {
	tests := []struct {
		text string
		c    byte
		want int
	}{
		{"banana", 'a', 3},
		{"", 'x', 0},
		{"banana", 'x', 0},
		{"aaaa", 'a', 4},
		{"BANANA", 'a', 0},
		{"a\x00a", 0, 1},
		{"\xff\xff", 0xff, 2},
	}

	for _, tt := range tests {
		if got := CountByte([]byte(tt.text), tt.c); got != tt.want {
			t.Errorf("CountByte(%q, %q) = %d, want %d", tt.text, tt.c, got, tt.want)
		}
	}
}

func TestCountByteBoundedByLength(t *testing.T) {
	text := []byte(strings.Repeat("ab", 500))
	for _, c := range []byte{'a', 'b', 'c'} {
		if n := CountByte(text, c); n < 0 || n > len(text) {
			t.Errorf("CountByte(_, %q) = %d, outside [0, %d]", c, n, len(text))
		}
	}
}

func TestPredicatesDoNotModifyInput(t *testing.T) {
	text := []byte("Species_A 1.5e3")
	orig := string(text)

	IsNumber(text)
	Contains(text, []byte("A"))
	IsIdentifier(text)
	HasPrefix([]byte("SPECIES"), text, CaseFold)
	CountByte(text, 'e')

	if string(text) != orig {
		t.Errorf("input modified: %q, want %q", text, orig)
	}
}

func TestIdempotent(t *testing.T) {
	inputs := []string{"", "3.14", "x1", "fn", "hello world", "ABCdef", "\xff\x00"}

	for _, in := range inputs {
		b := []byte(in)
		for range 3 {
			if IsNumber(b) != IsNumber(b) {
				t.Fatalf("IsNumber(%q) not stable", in)
			}
			if IsIdentifier(b) != IsIdentifier(b) {
				t.Fatalf("IsIdentifier(%q) not stable", in)
			}
			if Contains(b, []byte("o")) != Contains(b, []byte("o")) {
				t.Fatalf("Contains(%q) not stable", in)
			}
			if HasPrefix([]byte("abc"), b, CaseFold) != HasPrefix([]byte("abc"), b, CaseFold) {
				t.Fatalf("HasPrefix(%q) not stable", in)
			}
			if CountByte(b, 'l') != CountByte(b, 'l') {
				t.Fatalf("CountByte(%q) not stable", in)
			}
		}
	}
}

func TestConcurrent(t *testing.T) {
	text := []byte("compartment_1 inside 2.5e-3 ABCdef")

	var wg sync.WaitGroup
	const goroutines = 16
	const iterations = 1000
	errs := make(chan string, goroutines)

	for range goroutines {
		wg.Go(func() {
			for range iterations {
				if IsNumber(text) {
					errs <- "IsNumber"
					return
				}
				if !Contains(text, []byte("inside")) {
					errs <- "Contains"
					return
				}
				if !IsIdentifier(text[:13]) {
					errs <- "IsIdentifier"
					return
				}
				if !HasPrefix([]byte("COMP"), text, CaseFold) {
					errs <- "HasPrefix"
					return
				}
				if CountByte(text, 'e') != 4 {
					errs <- "CountByte"
					return
				}
			}
		})
	}

	wg.Wait()
	close(errs)
	for name := range errs {
		t.Errorf("%s returned an unexpected result under concurrency", name)
	}
}
