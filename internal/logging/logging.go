// Package logging provides a simple leveled logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelInfo:
		return slog.LevelInfo
	default:
		return slog.LevelError + 4
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled printf-style logger backed by log/slog.
type Logger struct {
	mu      sync.Mutex
	level   slog.LevelVar
	output  io.Writer
	handler *slog.Logger
}

// New creates a new logger writing to stderr.
func New(level Level) *Logger {
	l := &Logger{}
	l.level.Set(level.slog())
	l.setOutput(os.Stderr)
	return l
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setOutput(w)
}

func (l *Logger) setOutput(w io.Writer) {
	l.output = w
	l.handler = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: &l.level}))
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.level.Set(level.slog())
}

// With returns a logger that adds the given attributes to every record.
func (l *Logger) With(args ...any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	child := &Logger{output: l.output}
	child.level.Set(l.level.Level())
	child.handler = l.handler.With(args...)
	return child
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	h := l.handler
	l.mu.Unlock()

	ctx := context.Background()
	if !h.Enabled(ctx, level.slog()) {
		return
	}
	h.Log(ctx, level.slog(), fmt.Sprintf(format, args...))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	l := &Logger{}
	l.level.Set(Level(LevelError + 1).slog()) // Higher than any level
	l.setOutput(io.Discard)
	return l
}
