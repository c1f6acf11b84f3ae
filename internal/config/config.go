// Package config provides runtime configuration for the predicate boundary
// and the command-line tool.
//
// Configuration is read once at startup (library init or CLI flag parsing)
// and is immutable afterwards. It is never consulted on the predicate hot
// path; consumers copy the values they need at construction time.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvMaxString     = "STRPRED_MAX_CSTRING"
	EnvOnFault       = "STRPRED_ON_FAULT"
	EnvLogLevel      = "STRPRED_LOG_LEVEL"
	EnvLogFormat     = "STRPRED_LOG_FORMAT"
	EnvLogComponents = "STRPRED_LOG_COMPONENTS"
)

// DefaultMaxStringLen is the default bound on a single string argument.
const DefaultMaxStringLen = 1 << 20

// FaultPolicy selects what the boundary does when a caller violates the
// string contract (null pointer, missing terminator, bad length).
type FaultPolicy string

const (
	// FaultSentinel logs the fault and returns the operation's sentinel
	// value: 0 for boolean results, -1 for counts.
	FaultSentinel FaultPolicy = "sentinel"

	// FaultAbort panics, which terminates the host process.
	FaultAbort FaultPolicy = "abort"
)

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	ErrInvalidPolicy = errors.New("invalid fault policy")
	ErrInvalidFormat = errors.New("invalid log format")
)

// Config holds boundary and logging settings.
type Config struct {
	// MaxStringLen bounds the scan for a NUL terminator and the length of
	// length-delimited arguments, in bytes.
	MaxStringLen int `json:"maxStringLen"`

	// FaultPolicy governs contract violations at the boundary.
	FaultPolicy FaultPolicy `json:"faultPolicy"`

	// LogLevel is the default level; ComponentLevels override it for
	// loggers carrying a matching "component" attribute.
	LogLevel        slog.Level            `json:"logLevel"`
	LogFormat       string                `json:"logFormat"`
	ComponentLevels map[string]slog.Level `json:"componentLevels,omitempty"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		MaxStringLen: DefaultMaxStringLen,
		FaultPolicy:  FaultSentinel,
		LogLevel:     slog.LevelWarn,
		LogFormat:    FormatText,
	}
}

// FromEnv overlays environment settings onto Default. lookup is usually
// os.LookupEnv; tests pass a map-backed function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvMaxString); ok && v != "" {
		n, err := ParseBytes(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMaxString, err)
		}
		if n > math.MaxInt32 {
			return Config{}, fmt.Errorf("%s: %d exceeds %d", EnvMaxString, n, math.MaxInt32)
		}
		cfg.MaxStringLen = int(n)
	}

	if v, ok := lookup(EnvOnFault); ok && v != "" {
		p, err := ParseFaultPolicy(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvOnFault, err)
		}
		cfg.FaultPolicy = p
	}

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		l, err := ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = l
	}

	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := lookup(EnvLogComponents); ok && v != "" {
		levels, err := ParseComponentLevels(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogComponents, err)
		}
		cfg.ComponentLevels = levels
	}

	return cfg, cfg.Validate()
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if c.MaxStringLen <= 0 || c.MaxStringLen > math.MaxInt32 {
		return fmt.Errorf("max string length %d out of range (1..%d)", c.MaxStringLen, math.MaxInt32)
	}
	if _, err := ParseFaultPolicy(string(c.FaultPolicy)); err != nil {
		return err
	}
	switch c.LogFormat {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.LogFormat)
	}
	return nil
}

// ParseFaultPolicy parses "sentinel" or "abort" (case-insensitive).
func ParseFaultPolicy(s string) (FaultPolicy, error) {
	switch p := FaultPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case FaultSentinel, FaultAbort:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// ParseLevel parses a slog level name such as "debug", "info", "warn",
// "error", optionally with an offset ("info+2").
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, err
	}
	return l, nil
}

// ParseComponentLevels parses a comma-separated list of component=level
// pairs, e.g. "boundary=debug,scan=warn".
func ParseComponentLevels(s string) (map[string]slog.Level, error) {
	levels := make(map[string]slog.Level)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, level, ok := strings.Cut(part, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected component=level, got %q", part)
		}
		l, err := ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", name, err)
		}
		levels[name] = l
	}
	return levels, nil
}

// ParseBytes parses a byte size string with optional suffix (B, KB, MB, GB).
func ParseBytes(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	s = strings.ToUpper(s)

	var multiplier uint64 = 1
	var numStr string

	switch {
	case strings.HasSuffix(s, "GB"):
		multiplier = 1024 * 1024 * 1024
		numStr = strings.TrimSuffix(s, "GB")
	case strings.HasSuffix(s, "MB"):
		multiplier = 1024 * 1024
		numStr = strings.TrimSuffix(s, "MB")
	case strings.HasSuffix(s, "KB"):
		multiplier = 1024
		numStr = strings.TrimSuffix(s, "KB")
	case strings.HasSuffix(s, "B"):
		numStr = strings.TrimSuffix(s, "B")
	default:
		numStr = s
	}

	numStr = strings.TrimSpace(numStr)
	n, err := strconv.ParseUint(numStr, 10, 64)
	if err != nil {
		return 0, err
	}
	if n > math.MaxUint64/multiplier {
		return 0, fmt.Errorf("%s overflows", s)
	}

	return n * multiplier, nil
}
