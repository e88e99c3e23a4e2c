// Package logging provides structured logging using Go's slog package.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Level represents a log level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Format represents a log output format.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

var defaultLogger atomic.Pointer[slog.Logger]

func init() {
	// Library use stays quiet unless a caller asks for more.
	InitLogger(LevelWarn, FormatText, os.Stderr)
}

// ParseLevel maps "debug", "info", "warn" and "error" to a Level.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "error":
		return LevelError
	default:
		return LevelWarn
	}
}

// ParseFormat maps "json" to FormatJSON and anything else to FormatText.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatText
}

// InitLogger replaces the global logger.
func InitLogger(level Level, format Format, w io.Writer) *slog.Logger {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: slogLevel}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	logger := slog.New(handler)
	defaultLogger.Store(logger)
	return logger
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger.Load()
}

// Or returns l, or the global logger when l is nil.
func Or(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return GetLogger()
}

// WithTable creates a logger with table context.
//
//	log := logging.WithTable(logger, "apples")
//	log.Debug("scan started", "root_page", 2)
func WithTable(l *slog.Logger, table string) *slog.Logger {
	return Or(l).With("table", table)
}

// WithPage creates a logger with page context.
func WithPage(l *slog.Logger, index int) *slog.Logger {
	return Or(l).With("page", index)
}

// Discard is a logger that drops every record. Tests use it to keep output clean.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
