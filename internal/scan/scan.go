// Package scan produces word-level reports over model description files
// using the predicate classifiers.
//
// A file is read line by line. Text after '#' is a comment. The remaining
// text is split on ASCII whitespace into words, and each word is classified
// as a number, an identifier, a reserved word, or other. The first word of
// each line is counted as a statement name.
package scan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"strpred/internal/ascii"
	"strpred/internal/logging"
	"strpred/internal/predicate"
)

const (
	commentByte = '#'

	// maxLineLen bounds a single input line.
	maxLineLen = 1 << 20

	// ctxCheckEvery is how many lines are read between cancellation checks.
	ctxCheckEvery = 1024
)

// Class is the classification of a single word.
type Class int

const (
	ClassOther Class = iota
	ClassNumber
	ClassIdentifier
	ClassReserved
)

func (c Class) String() string {
	switch c {
	case ClassNumber:
		return "number"
	case ClassIdentifier:
		return "identifier"
	case ClassReserved:
		return "reserved"
	default:
		return "other"
	}
}

// Classify returns the class of word. Numbers take precedence; identifier
// shaped words that the identifier grammar reserves are ClassReserved.
func Classify(word []byte) Class {
	switch {
	case predicate.IsNumber(word):
		return ClassNumber
	case predicate.IsIdentifier(word):
		return ClassIdentifier
	case predicate.IsReserved(word):
		return ClassReserved
	default:
		return ClassOther
	}
}

// Options controls a scan.
type Options struct {
	// Prefix, when set, restricts statement counting to lines whose first
	// word starts with it.
	Prefix string

	// Fold makes the Prefix comparison ASCII case-insensitive.
	Fold bool

	// Jobs bounds the number of files scanned concurrently. Zero or
	// negative means one.
	Jobs int
}

// Report summarizes one input.
type Report struct {
	Path        string         `json:"path"`
	Lines       int            `json:"lines"`
	Words       int            `json:"words"`
	Numbers     int            `json:"numbers"`
	Identifiers int            `json:"identifiers"`
	Reserved    int            `json:"reserved"`
	Other       int            `json:"other"`
	Matched     int            `json:"matched"`
	Statements  map[string]int `json:"statements"`
}

// Scanner scans inputs with fixed options.
type Scanner struct {
	opts   Options
	mode   predicate.CaseMode
	prefix []byte
	logger *slog.Logger
}

// New creates a Scanner. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Scanner {
	mode := predicate.CaseExact
	if opts.Fold {
		mode = predicate.CaseFold
	}
	if opts.Jobs <= 0 {
		opts.Jobs = 1
	}
	return &Scanner{
		opts:   opts,
		mode:   mode,
		prefix: []byte(opts.Prefix),
		logger: logging.Default(logger).With("component", "scan"),
	}
}

// Scan reads r to EOF and returns its report. name is recorded as the
// report path.
func (s *Scanner) Scan(ctx context.Context, name string, r io.Reader) (Report, error) {
	rep := Report{Path: name, Statements: make(map[string]int)}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	for sc.Scan() {
		rep.Lines++
		if rep.Lines%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
		}
		s.scanLine(&rep, stripComment(sc.Bytes()))
	}
	if err := sc.Err(); err != nil {
		return Report{}, fmt.Errorf("%s: line %d: %w", name, rep.Lines+1, err)
	}
	return rep, nil
}

func (s *Scanner) scanLine(rep *Report, line []byte) {
	first := true
	iterWords(line, func(word []byte) {
		rep.Words++
		switch Classify(word) {
		case ClassNumber:
			rep.Numbers++
		case ClassIdentifier:
			rep.Identifiers++
		case ClassReserved:
			rep.Reserved++
		default:
			rep.Other++
		}
		if first {
			first = false
			if len(s.prefix) == 0 || predicate.HasPrefix(s.prefix, word, s.mode) {
				rep.Matched++
				rep.Statements[string(word)]++
			}
		}
	})
}

// File scans the file at path.
func (s *Scanner) File(ctx context.Context, path string) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Report{}, err
	}
	defer func() { _ = f.Close() }()
	return s.Scan(ctx, path, f)
}

// Run scans paths concurrently, at most Options.Jobs at a time, and returns
// the reports in the order of paths. The first error cancels the rest.
func (s *Scanner) Run(ctx context.Context, paths []string) ([]Report, error) {
	reports := make([]Report, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Jobs)
	for i, path := range paths {
		g.Go(func() error {
			rep, err := s.File(gctx, path)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("scan failed", "files", len(paths), "error", err)
		return nil, err
	}

	s.logger.Debug("scan complete", "files", len(paths), "jobs", s.opts.Jobs)
	return reports, nil
}

// stripComment returns line up to the first comment byte.
func stripComment(line []byte) []byte {
	for i, b := range line {
		if b == commentByte {
			return line[:i]
		}
	}
	return line
}

// iterWords calls fn for each run of non-whitespace bytes in line. The
// slice passed to fn aliases line.
func iterWords(line []byte, fn func(word []byte)) {
	start := -1
	for i, b := range line {
		if ascii.IsWhitespace(b) {
			if start >= 0 {
				fn(line[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		fn(line[start:])
	}
}
