// Package logging builds the zap loggers used by the dkgw commands.
//
// Console lines keep the corpus tooling's historical layout:
//
//	10/15/2026 09:12:44 INFO: Tests passed: 14 of 14
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout of every log line.
const TimeLayout = "01/02/2006 15:04:05"

// Options configures New.
type Options struct {
	// Level is the minimum level name (debug, info, warn, error).
	Level string
	// Verbose forces debug level regardless of Level.
	Verbose bool
	// File, when set, receives a copy of every line. Parent directories are created.
	File string
	// Writer is the console destination. Defaults to stderr.
	Writer io.Writer
}

// New builds a logger and returns it with a function that flushes it and
// closes any log file.
func New(opts Options) (*zap.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	enc := zapcore.NewConsoleEncoder(EncoderConfig())
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(w), level)}

	var file *os.File
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err = os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(enc.Clone(), zapcore.AddSync(file), level))
	}

	logger := zap.New(zapcore.NewTee(cores...))

	closeFn := func() error {
		// Sync on a terminal returns EINVAL on some platforms; ignore it.
		_ = logger.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return logger, closeFn, nil
}

// EncoderConfig returns the console encoder settings for the legacy layout.
func EncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeLevel:      levelWithColon,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if strings.TrimSpace(name) == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return l, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return l, nil
}

func levelWithColon(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(l.CapitalString() + ":")
}
