// Package logger provides the logging facade used by the CLI and the
// query server. It wraps slog behind an interface so handlers can be
// swapped in tests. The decoder itself never logs; it reports through
// errors.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger is the common logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
}

type slogLogger struct {
	logger *slog.Logger
}

// New creates a Logger with the given handler.
func New(handler slog.Handler) Logger {
	return &slogLogger{logger: slog.New(handler)}
}

// Default creates a Logger with a text handler writing to stderr. Logs
// go to stderr so JSON output on stdout stays machine-readable.
func Default() Logger {
	return Text(os.Stderr, slog.LevelInfo)
}

// Text creates a Logger with a text handler.
func Text(w io.Writer, level slog.Level) Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// JSON creates a Logger with a JSON handler.
func JSON(w io.Writer, level slog.Level) Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

type loggerKey struct{}

// FromContext retrieves the Logger from the context, or a default one.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey{}).(Logger); ok {
		return l
	}
	return Default()
}

// WithContext attaches the logger to the context.
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func (l *slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

// ParseLevel converts a config string to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch level {
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
