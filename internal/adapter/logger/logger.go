package logger

import (
	"io"
	"log/slog"
	"os"
)

// LoggerAdapter implements ports.LoggerPort on top of a JSON slog handler.
type LoggerAdapter struct {
	log *slog.Logger
}

// NewLoggerAdapter writes JSON lines to stdout. Development environments log
// at debug level; otherwise level decides (debug, info, warn, error).
func NewLoggerAdapter(env, level string) *LoggerAdapter {
	if env == "development" {
		level = "debug"
	}
	return NewWithWriter(os.Stdout, level)
}

func NewWithWriter(w io.Writer, level string) *LoggerAdapter {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &LoggerAdapter{log: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
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

func (l *LoggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, attrs(fields)...)
}

func (l *LoggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, attrs(fields)...)
}

func (l *LoggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, attrs(fields)...)
}

func (l *LoggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.log.Error(msg, attrs(fields)...)
}

func attrs(fields map[string]interface{}) []any {
	out := make([]any, 0, len(fields))
	for k, v := range fields {
		out = append(out, slog.Any(k, v))
	}
	return out
}
