// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package observability provides logging and run metrics.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// Logger is the structured logger interface.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

// Field represents a log field.
type Field struct {
	Key   string
	Value any
}

// Options controls logger construction.
type Options struct {
	Level string
	// Format is "console", "json" or "auto" (console when Output is a terminal).
	Format string
	Output io.Writer
}

// logger is the default implementation, backed by slog.
type logger struct {
	sl *slog.Logger
}

// NewLoggerWithOptions creates a logger from explicit options.
func NewLoggerWithOptions(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	lvl := ParseLevel(opts.Level)

	var h slog.Handler
	switch resolveFormat(opts.Format, out) {
	case "console":
		h = NewConsoleHandler(out, lvl)
	default:
		h = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: lvl})
	}
	return &logger{sl: slog.New(h)}
}

func resolveFormat(format string, out io.Writer) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "text":
		return "console"
	case "json":
		return "json"
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "console"
	}
	return "json"
}

// ParseLevel maps debug|info|warn|error to a slog level; unknown values are info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *logger) log(level slog.Level, msg string, fields []Field) {
	ctx := context.Background()
	if !l.sl.Enabled(ctx, level) {
		return
	}
	l.sl.LogAttrs(ctx, level, msg, attrs(fields)...)
}

func (l *logger) Debug(msg string, fields ...Field) { l.log(slog.LevelDebug, msg, fields) }

func (l *logger) Info(msg string, fields ...Field) { l.log(slog.LevelInfo, msg, fields) }

func (l *logger) Warn(msg string, fields ...Field) { l.log(slog.LevelWarn, msg, fields) }

func (l *logger) Error(msg string, fields ...Field) { l.log(slog.LevelError, msg, fields) }

func (l *logger) With(fields ...Field) Logger {
	args := make([]any, 0, len(fields))
	for _, a := range attrs(fields) {
		args = append(args, a)
	}
	return &logger{sl: l.sl.With(args...)}
}

func attrs(fields []Field) []slog.Attr {
	out := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			if v == nil {
				out = append(out, slog.String(f.Key, "<nil>"))
				continue
			}
			out = append(out, slog.String(f.Key, v.Error()))
		default:
			out = append(out, slog.Any(f.Key, v))
		}
	}
	return out
}

type nopLogger struct{}

// NewNop returns a logger that discards everything.
func NewNop() Logger { return nopLogger{} }

func (nopLogger) Debug(string, ...Field)  {}
func (nopLogger) Info(string, ...Field)   {}
func (nopLogger) Warn(string, ...Field)   {}
func (nopLogger) Error(string, ...Field)  {}
func (n nopLogger) With(...Field) Logger { return n }

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NewNop()
	}
	return l
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Strings creates a string slice field.
func Strings(key string, values []string) Field {
	return Field{Key: key, Value: values}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Bytes creates a human readable byte size field ("1.2 kB").
func Bytes(key string, n int) Field {
	if n < 0 {
		n = 0
	}
	return Field{Key: key, Value: humanize.Bytes(uint64(n))}
}

// Duration creates a duration field rounded to milliseconds.
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.Round(time.Millisecond).String()}
}

// Err creates an error field.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
