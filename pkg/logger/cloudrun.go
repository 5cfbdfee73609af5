package logger

import (
	"log/slog"
	"os"
	"time"
)

// NewCloudRunHandler returns a JSON handler whose output Cloud Logging parses
// natively: slog levels become a "severity" field and timestamps use RFC3339.
// Everything goes to stdout; Cloud Run routes all severities from there.
func NewCloudRunHandler(level slog.Level) slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: cloudRunAttrs,
	})
}

func cloudRunAttrs(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.LevelKey:
		level, _ := a.Value.Any().(slog.Level)
		return slog.String("severity", severity(level))
	case slog.MessageKey:
		return slog.String("message", a.Value.String())
	case slog.TimeKey:
		return slog.String("time", a.Value.Time().Format(time.RFC3339Nano))
	}
	return a
}

func severity(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
