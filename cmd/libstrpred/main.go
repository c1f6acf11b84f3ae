// Command libstrpred builds the predicate library as a C shared object:
//
//	go build -buildmode=c-shared -o libstrpred.so ./cmd/libstrpred
//
// The generated header declares the exported symbols. Every string argument
// is borrowed for the duration of the call only. Boolean results are 0 or 1;
// counts are non-negative. A contract violation (null pointer, missing
// terminator within STRPRED_MAX_CSTRING bytes, bad length) yields 0 for
// booleans and -1 for counts, or aborts the process when
// STRPRED_ON_FAULT=abort.
//
// Logging:
//   - Base logger is created once in init, writing to stderr
//   - Configuration comes from STRPRED_* environment variables
//   - Only contract violations are logged
package main

import "C"

import (
	"fmt"
	"os"
	"unsafe"

	"strpred/internal/boundary"
	"strpred/internal/config"
	"strpred/internal/logging"
)

var exporter *boundary.Exporter

func init() {
	cfg, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "libstrpred: %v; using defaults\n", err)
		cfg = config.Default()
	}

	logger, filter := logging.New(os.Stderr, cfg)
	x, err := boundary.New(cfg, logger)
	if err != nil {
		// Default() always validates; reaching here is a programming error.
		panic(err)
	}
	exporter = x
	logger.Debug("library loaded", "component", "libstrpred", "level", filter.DefaultLevel(), "maxStringLen", cfg.MaxStringLen, "onFault", cfg.FaultPolicy)
}

//export strisnumber
func strisnumber(ptxt *C.char) C.int {
	return C.int(exporter.IsNumber(unsafe.Pointer(ptxt)))
}

//export strhasname
func strhasname(ptxt, pname *C.char) C.int {
	return C.int(exporter.HasName(unsafe.Pointer(ptxt), unsafe.Pointer(pname)))
}

//export strokname
func strokname(pname *C.char) C.int {
	return C.int(exporter.OkName(unsafe.Pointer(pname)))
}

//export strbegin
func strbegin(pshort, plong *C.char, casesensitive C.int) C.int {
	return C.int(exporter.Begin(unsafe.Pointer(pshort), unsafe.Pointer(plong), int32(casesensitive)))
}

//export strsymbolcount
func strsymbolcount(s *C.char, c C.char) C.int {
	return C.int(exporter.SymbolCount(unsafe.Pointer(s), byte(c)))
}

//export strisnumber_n
func strisnumber_n(ptxt *C.char, n C.int) C.int {
	return C.int(exporter.IsNumberN(unsafe.Pointer(ptxt), int32(n)))
}

//export strhasname_n
func strhasname_n(ptxt *C.char, ntxt C.int, pname *C.char, nname C.int) C.int {
	return C.int(exporter.HasNameN(unsafe.Pointer(ptxt), int32(ntxt), unsafe.Pointer(pname), int32(nname)))
}

//export strokname_n
func strokname_n(pname *C.char, n C.int) C.int {
	return C.int(exporter.OkNameN(unsafe.Pointer(pname), int32(n)))
}

//export strbegin_n
func strbegin_n(pshort *C.char, nshort C.int, plong *C.char, nlong C.int, casesensitive C.int) C.int {
	return C.int(exporter.BeginN(unsafe.Pointer(pshort), int32(nshort), unsafe.Pointer(plong), int32(nlong), int32(casesensitive)))
}

//export strsymbolcount_n
func strsymbolcount_n(s *C.char, n C.int, c C.char) C.int {
	return C.int(exporter.SymbolCountN(unsafe.Pointer(s), int32(n), byte(c)))
}

func main() {}
