// Package boundary implements the C-ABI surface of the predicate library.
//
// Each Exporter method corresponds to one exported C symbol. Arguments
// arrive as borrowed foreign pointers and are wrapped in cstr views before
// any predicate runs; results leave as int32 (0/1 for booleans, a
// non-negative count otherwise).
//
// Contract violations (null pointer, missing terminator, bad length) are
// handled by the configured fault policy: either the sentinel result is
// returned and a warning logged, or the call panics. Warnings are rate
// limited per symbol; the next warning that gets through reports how many
// were suppressed. Nothing is logged on the success path.
package boundary

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
	"unsafe"

	"golang.org/x/time/rate"

	"strpred/internal/config"
	"strpred/internal/cstr"
	"strpred/internal/logging"
	"strpred/internal/predicate"
)

// Exported symbol names.
const (
	OpIsNumber     = "strisnumber"
	OpHasName      = "strhasname"
	OpOkName       = "strokname"
	OpBegin        = "strbegin"
	OpSymbolCount  = "strsymbolcount"
	OpIsNumberN    = "strisnumber_n"
	OpHasNameN     = "strhasname_n"
	OpOkNameN      = "strokname_n"
	OpBeginN       = "strbegin_n"
	OpSymbolCountN = "strsymbolcount_n"
)

var symbols = []string{
	OpIsNumber, OpHasName, OpOkName, OpBegin, OpSymbolCount,
	OpIsNumberN, OpHasNameN, OpOkNameN, OpBeginN, OpSymbolCountN,
}

// Results returned in place of a real answer when the fault policy is
// config.FaultSentinel.
const (
	BoolFault  int32 = 0
	CountFault int32 = -1
)

// FaultError describes a boundary contract violation. It is the panic value
// under config.FaultAbort.
type FaultError struct {
	Op  string // exported symbol
	Arg string // offending argument
	Err error  // underlying cstr error (for errors.Is)
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s: argument %s: %v", e.Op, e.Arg, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// Exporter validates foreign arguments and dispatches to the predicates.
// It is immutable after New and safe for concurrent use.
type Exporter struct {
	maxLen int
	policy config.FaultPolicy
	logger *slog.Logger
	faults map[string]*faultLog // keyed by symbol; fixed after New
	now    func() time.Time
}

// Fault warnings allowed per symbol: a burst, then one per interval.
const (
	faultLogBurst    = 10
	faultLogInterval = time.Second
)

// faultLog throttles fault warnings for one symbol.
type faultLog struct {
	limiter    *rate.Limiter
	suppressed atomic.Int64
}

// New creates an Exporter from cfg. A nil logger discards output.
func New(cfg config.Config, logger *slog.Logger) (*Exporter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("boundary config: %w", err)
	}
	faults := make(map[string]*faultLog, len(symbols))
	for _, op := range symbols {
		faults[op] = &faultLog{limiter: rate.NewLimiter(rate.Every(faultLogInterval), faultLogBurst)}
	}
	return &Exporter{
		maxLen: cfg.MaxStringLen,
		policy: cfg.FaultPolicy,
		logger: logging.Default(logger).With("component", "boundary"),
		faults: faults,
		now:    time.Now,
	}, nil
}

// IsNumber implements strisnumber(const char *txt).
func (x *Exporter) IsNumber(txt unsafe.Pointer) int32 {
	v, ok := x.cstring(OpIsNumber, "txt", txt)
	if !ok {
		return BoolFault
	}
	return cstr.Bool(predicate.IsNumber(v.Bytes()))
}

// HasName implements strhasname(const char *txt, const char *name): whether
// name occurs anywhere in txt.
func (x *Exporter) HasName(txt, name unsafe.Pointer) int32 {
	t, ok := x.cstring(OpHasName, "txt", txt)
	if !ok {
		return BoolFault
	}
	n, ok := x.cstring(OpHasName, "name", name)
	if !ok {
		return BoolFault
	}
	return cstr.Bool(predicate.Contains(t.Bytes(), n.Bytes()))
}

// OkName implements strokname(const char *name).
func (x *Exporter) OkName(name unsafe.Pointer) int32 {
	v, ok := x.cstring(OpOkName, "name", name)
	if !ok {
		return BoolFault
	}
	return cstr.Bool(predicate.IsIdentifier(v.Bytes()))
}

// Begin implements strbegin(const char *short, const char *long, int
// casesensitive): whether long starts with short.
func (x *Exporter) Begin(short, long unsafe.Pointer, casesensitive int32) int32 {
	s, ok := x.cstring(OpBegin, "short", short)
	if !ok {
		return BoolFault
	}
	l, ok := x.cstring(OpBegin, "long", long)
	if !ok {
		return BoolFault
	}
	return cstr.Bool(predicate.HasPrefix(s.Bytes(), l.Bytes(), prefixMode(casesensitive)))
}

// SymbolCount implements strsymbolcount(const char *s, char c).
func (x *Exporter) SymbolCount(s unsafe.Pointer, c byte) int32 {
	v, ok := x.cstring(OpSymbolCount, "s", s)
	if !ok {
		return CountFault
	}
	return cstr.Count(predicate.CountByte(v.Bytes(), c))
}

// IsNumberN is IsNumber over a length-delimited buffer.
func (x *Exporter) IsNumberN(txt unsafe.Pointer, n int32) int32 {
	v, ok := x.buffer(OpIsNumberN, "txt", txt, n)
	if !ok {
		return BoolFault
	}
	return cstr.Bool(predicate.IsNumber(v.Bytes()))
}

// HasNameN is HasName over length-delimited buffers.
func (x *Exporter) HasNameN(txt unsafe.Pointer, ntxt int32, name unsafe.Pointer, nname int32) int32 {
	t, ok := x.buffer(OpHasNameN, "txt", txt, ntxt)
	if !ok {
		return BoolFault
	}
	n, ok := x.buffer(OpHasNameN, "name", name, nname)
	if !ok {
		return BoolFault
	}
	return cstr.Bool(predicate.Contains(t.Bytes(), n.Bytes()))
}

// OkNameN is OkName over a length-delimited buffer.
func (x *Exporter) OkNameN(name unsafe.Pointer, n int32) int32 {
	v, ok := x.buffer(OpOkNameN, "name", name, n)
	if !ok {
		return BoolFault
	}
	return cstr.Bool(predicate.IsIdentifier(v.Bytes()))
}

// BeginN is Begin over length-delimited buffers.
func (x *Exporter) BeginN(short unsafe.Pointer, nshort int32, long unsafe.Pointer, nlong int32, casesensitive int32) int32 {
	s, ok := x.buffer(OpBeginN, "short", short, nshort)
	if !ok {
		return BoolFault
	}
	l, ok := x.buffer(OpBeginN, "long", long, nlong)
	if !ok {
		return BoolFault
	}
	return cstr.Bool(predicate.HasPrefix(s.Bytes(), l.Bytes(), prefixMode(casesensitive)))
}

// SymbolCountN is SymbolCount over a length-delimited buffer. Embedded NUL
// bytes are counted like any other byte.
func (x *Exporter) SymbolCountN(s unsafe.Pointer, n int32, c byte) int32 {
	v, ok := x.buffer(OpSymbolCountN, "s", s, n)
	if !ok {
		return CountFault
	}
	return cstr.Count(predicate.CountByte(v.Bytes(), c))
}

// prefixMode maps the strbegin flag to a comparison mode. The flag is named
// casesensitive but existing callers rely on the inverted meaning: nonzero
// selects the case-folded comparison, zero the exact one.
func prefixMode(casesensitive int32) predicate.CaseMode {
	if casesensitive != 0 {
		return predicate.CaseFold
	}
	return predicate.CaseExact
}

func (x *Exporter) cstring(op, arg string, p unsafe.Pointer) (cstr.View, bool) {
	v, err := cstr.FromCString(p, x.maxLen)
	if err != nil {
		x.fault(op, arg, err)
		return cstr.View{}, false
	}
	return v, true
}

func (x *Exporter) buffer(op, arg string, p unsafe.Pointer, n int32) (cstr.View, bool) {
	v, err := cstr.FromBuffer(p, int(n), x.maxLen)
	if err != nil {
		x.fault(op, arg, err)
		return cstr.View{}, false
	}
	return v, true
}

// fault applies the fault policy. Under config.FaultAbort it does not return.
func (x *Exporter) fault(op, arg string, err error) {
	if x.policy == config.FaultAbort {
		x.logger.Error("boundary contract violated, aborting", "op", op, "arg", arg, "error", err)
		panic(&FaultError{Op: op, Arg: arg, Err: err})
	}
	fl := x.faults[op]
	if !fl.limiter.AllowN(x.now(), 1) {
		fl.suppressed.Add(1)
		return
	}
	if n := fl.suppressed.Swap(0); n > 0 {
		x.logger.Warn("boundary contract violated", "op", op, "arg", arg, "error", err, "suppressed", n)
		return
	}
	x.logger.Warn("boundary contract violated", "op", op, "arg", arg, "error", err)
}
