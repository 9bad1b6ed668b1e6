// Package logging builds the concrete logr.Logger used by the binaries.
//
// Library packages only see logr.Logger; this package is where zap is wired
// in through zapr. Verbosity follows the V-levels below: V(DEBUG) carries
// per-run summaries, V(TRACE) carries per-improvement search events.
package logging

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
)

// logr verbosity levels.
const (
	DEFAULT = 0
	DEBUG   = 1
	TRACE   = 2
)

// ParseLevel maps a level name to a logr verbosity.
func ParseLevel(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info", "default":
		return DEFAULT, nil
	case "debug":
		return DEBUG, nil
	case "trace":
		return TRACE, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q", name)
	}
}

// NewLogger returns a zap-backed logr.Logger enabled up to verbosity v.
// dev selects zap's console development encoder instead of JSON.
func NewLogger(v int, dev bool) (logr.Logger, error) {
	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	// zapr maps logr V(n) to zap level -n.
	cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-1 * v))

	zl, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return logr.Discard(), fmt.Errorf("logging: build zap logger: %w", err)
	}

	return zapr.NewLogger(zl), nil
}

// NewTestLogger creates a dev-mode logger with every level enabled that
// writes through t.Log.
func NewTestLogger(t zaptest.TestingT) logr.Logger {
	return zapr.NewLogger(zaptest.NewLogger(t,
		zaptest.Level(zapcore.Level(-1*TRACE)),
		zaptest.WrapOptions(zap.AddCaller()),
	))
}
