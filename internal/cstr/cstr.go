// Package cstr wraps borrowed foreign string pointers in bounds-checked views.
//
// A View aliases memory owned by the caller on the other side of the C
// boundary. It is valid only until the exported call that created it
// returns and must never be stored.
package cstr

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// Boundary errors.
var (
	ErrNull         = errors.New("null pointer")
	ErrUnterminated = errors.New("string not terminated")
	ErrLength       = errors.New("invalid length")
)

// View is a read-only window onto a foreign byte string.
type View struct {
	b []byte
}

// FromCString returns a view of the NUL-terminated string at p. At most limit
// content bytes are examined; if no terminator is found at or before offset
// limit, ErrUnterminated is returned and nothing past p+limit is read.
func FromCString(p unsafe.Pointer, limit int) (View, error) {
	if p == nil {
		return View{}, ErrNull
	}
	if limit < 0 {
		return View{}, fmt.Errorf("%w: limit %d", ErrLength, limit)
	}
	for n := 0; n <= limit; n++ {
		if *(*byte)(unsafe.Add(p, n)) == 0 {
			return View{b: unsafe.Slice((*byte)(p), n)}, nil
		}
	}
	return View{}, fmt.Errorf("%w: no NUL within %d bytes", ErrUnterminated, limit)
}

// FromBuffer returns a view of exactly n bytes at p. Embedded NUL bytes are
// part of the data. n must be in [0, limit].
func FromBuffer(p unsafe.Pointer, n, limit int) (View, error) {
	if p == nil {
		return View{}, ErrNull
	}
	if n < 0 || n > limit {
		return View{}, fmt.Errorf("%w: %d (limit %d)", ErrLength, n, limit)
	}
	return View{b: unsafe.Slice((*byte)(p), n)}, nil
}

// Bytes returns the viewed bytes. The slice aliases foreign memory and must
// not be modified or retained.
func (v View) Bytes() []byte { return v.b }

// Bool encodes b as the boundary boolean: 1 for true, 0 for false.
func Bool(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Count encodes a non-negative count, saturating at math.MaxInt32.
func Count(n int) int32 {
	switch {
	case n < 0:
		return 0
	case n > math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(n)
	}
}
