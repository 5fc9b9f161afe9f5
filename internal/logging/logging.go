// Package logging builds the zap logger. The TUI owns the terminal, so logs
// go to a file unless the caller asks for stderr as well.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Path   string // empty: no file output
	Debug  bool
	Stderr bool
}

// Setup returns a logger and a cleanup func that flushes it. With neither
// a path nor stderr the logger discards everything.
func Setup(cfg Config) (*zap.Logger, func() error, error) {
	var outputs []string
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o700); err != nil {
			return zap.NewNop(), noop, fmt.Errorf("log dir: %w", err)
		}
		outputs = append(outputs, cfg.Path)
	}
	if cfg.Stderr {
		outputs = append(outputs, "stderr")
	}
	if len(outputs) == 0 {
		return zap.NewNop(), noop, nil
	}

	zc := zap.NewProductionConfig()
	zc.OutputPaths = outputs
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	zc.Sampling = nil
	if cfg.Debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		zc.Development = true
	}

	log, err := zc.Build()
	if err != nil {
		return zap.NewNop(), noop, fmt.Errorf("build logger: %w", err)
	}
	log.Info("logger.initialized", zap.Strings("outputs", outputs), zap.Bool("debug", cfg.Debug))

	cleanup := func() error {
		// Sync on stderr fails on some terminals; nothing to do about it.
		_ = log.Sync()
		return nil
	}
	return log, cleanup, nil
}

func noop() error { return nil }
