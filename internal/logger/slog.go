package logger

import (
	"context"
	"log/slog"
	"os"
)

var slogLevels = map[Level]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

type slogLogger struct {
	logger *slog.Logger
	level  Level
}

// NewSlogLogger creates a Logger backed by log/slog
func NewSlogLogger(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{
		Level:     slogLevels[cfg.Level],
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler = slog.NewJSONHandler(out, opts)
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	}

	return &slogLogger{logger: slog.New(handler), level: cfg.Level}
}

func toAttrs(fields []Field) []slog.Attr {
	attrs := make([]slog.Attr, len(fields))
	for i, f := range fields {
		attrs[i] = slog.Any(f.Key, f.Value)
	}
	return attrs
}

func (l *slogLogger) log(level Level, msg string, fields []Field) {
	l.logger.LogAttrs(context.Background(), slogLevels[level], msg, toAttrs(fields)...)
}

func (l *slogLogger) Debug(msg string, fields ...Field) { l.log(LevelDebug, msg, fields) }
func (l *slogLogger) Info(msg string, fields ...Field)  { l.log(LevelInfo, msg, fields) }
func (l *slogLogger) Warn(msg string, fields ...Field)  { l.log(LevelWarn, msg, fields) }
func (l *slogLogger) Error(msg string, fields ...Field) { l.log(LevelError, msg, fields) }

func (l *slogLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	args := make([]any, len(fields))
	for i, a := range toAttrs(fields) {
		args[i] = a
	}
	return &slogLogger{logger: l.logger.With(args...), level: l.level}
}

func (l *slogLogger) WithContext(ctx context.Context) Logger {
	return l.With(extractContextFields(ctx)...)
}

func (l *slogLogger) Level() Level {
	return l.level
}
