// Package logging builds the application's zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON logger writing to path. The terminal belongs to the TUI,
// so with no path configured logging is disabled.
func New(path string, debug bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = !debug

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging.New: %w", err)
	}
	return log.Named("jobdesk"), nil
}
