// Package logging builds the roadtrack logger.
//
// Loggers are charmbracelet/log loggers carried through context.Context.
// CLI commands log to stderr; while the TUI owns the terminal, logs go to a
// size-rotated file instead.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the TUI log file.
const (
	maxFileSizeMB = 5
	maxBackups    = 3
	maxAgeDays    = 28
)

// New creates a logger writing to w at the named level
// (debug, info, warn or error).
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           lvl,
	}), nil
}

// NewFile creates a logger writing to a rotated file at path. The returned
// closer must be closed when the program exits.
func NewFile(path, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxFileSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	l, err := New(w, level)
	if err != nil {
		_ = w.Close()
		return nil, nil, err
	}
	l.SetFormatter(log.LogfmtFormatter)
	return l, w, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type ctxKey int

const loggerKey ctxKey = 0

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or log.Default().
func FromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
