// Package logging wraps stdlib log/slog with a Trace..Fatal level
// ladder.
package logging

import (
	"context"
	"log/slog"
	"os"
)

// Level extends slog.Level with Trace (below Debug) and Fatal (above
// Error), matching logger.h's LogLevel enum.
type Level = slog.Level

const (
	LevelTrace Level = slog.Level(-8)
	LevelDebug Level = slog.LevelDebug
	LevelInfo  Level = slog.LevelInfo
	LevelWarn  Level = slog.LevelWarn
	LevelError Level = slog.LevelError
	LevelFatal Level = slog.Level(12)
)

// Logger is a thin, level-aware wrapper over *slog.Logger. Fatal logs at
// LevelFatal and then terminates the process, mirroring KV_LOG_FATAL's
// std::abort() in the original.
type Logger struct {
	base *slog.Logger
	lvl  *slog.LevelVar
}

// New builds a Logger writing structured text to w at or above min.
func New(w *os.File, min Level) *Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(min)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return &Logger{base: slog.New(handler), lvl: lvl}
}

// SetLevel adjusts the minimum level logged, without rebuilding the handler.
func (l *Logger) SetLevel(min Level) { l.lvl.Set(min) }

func (l *Logger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args...) }
func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

// Fatal logs at LevelFatal and exits the process with status 1.
func (l *Logger) Fatal(msg string, args ...any) {
	l.log(LevelFatal, msg, args...)
	os.Exit(1)
}

func (l *Logger) log(level Level, msg string, args ...any) {
	l.base.Log(context.Background(), level, msg, args...)
}
