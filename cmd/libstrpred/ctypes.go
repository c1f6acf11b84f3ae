package main

// #include <stdlib.h>
import "C"

import "unsafe"

// Test files cannot import "C"; these build C arguments for them.

func cString(s string) *C.char { return C.CString(s) }

// cBytes copies b, embedded NULs included, into C memory without a terminator.
func cBytes(b []byte) *C.char { return (*C.char)(C.CBytes(b)) }

func cFree(p *C.char) { C.free(unsafe.Pointer(p)) }

func cChar(b byte) C.char { return C.char(b) }

func cInt(n int32) C.int { return C.int(n) }
