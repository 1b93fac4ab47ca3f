// Package logger provides a structured logging abstraction with slog and
// zap backends, selected by configuration.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level is a log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return levelNames[LevelInfo]
}

// ParseLevel maps a level name to a Level. Unknown names mean info.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		return LevelWarn
	}
	for l, name := range levelNames {
		if name == s {
			return l
		}
	}
	return LevelInfo
}

// Field is one structured key/value pair
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field                 { return Field{key, value} }
func Int(key string, value int) Field                { return Field{key, value} }
func Float64(key string, value float64) Field        { return Field{key, value} }
func Bool(key string, value bool) Field              { return Field{key, value} }
func Duration(key string, value time.Duration) Field { return Field{key, value.String()} }
func Any(key string, value any) Field                { return Field{key, value} }

// Err records err under "error"
func Err(err error) Field {
	if err == nil {
		return Field{"error", nil}
	}
	return Field{"error", err.Error()}
}

// Logger is the logging interface every backend implements
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a child logger that adds fields to every entry
	With(fields ...Field) Logger
	// WithContext returns a child logger carrying the request and user ids found in ctx
	WithContext(ctx context.Context) Logger

	Level() Level
}

// Backends
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Config holds logging configuration
type Config struct {
	// Level is the minimum log level to output
	Level Level
	// Format is the output format: "json" or "text"
	Format string
	// Backend is "slog" (default) or "zap"
	Backend string
	// AddSource adds source file:line to log entries
	AddSource bool
	// Output defaults to stdout
	Output io.Writer
}

// DefaultConfig is JSON at info level on the slog backend
func DefaultConfig() Config {
	return Config{
		Level:   LevelInfo,
		Format:  "json",
		Backend: BackendSlog,
	}
}

// New builds a Logger for the configured backend
func New(cfg Config) Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	switch strings.ToLower(cfg.Backend) {
	case BackendZap:
		return NewZapLogger(cfg)
	default:
		return NewSlogLogger(cfg)
	}
}

var defaultLogger atomic.Pointer[Logger]

// SetDefault replaces the process-wide logger
func SetDefault(l Logger) {
	defaultLogger.Store(&l)
}

// Default returns the process-wide logger, creating a JSON info logger on first use
func Default() Logger {
	if l := defaultLogger.Load(); l != nil {
		return *l
	}
	l := New(DefaultConfig())
	defaultLogger.CompareAndSwap(nil, &l)
	return *defaultLogger.Load()
}
