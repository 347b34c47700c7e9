package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger writes JSON records to stdout. level ("debug", "info", "warn",
// "error") wins over the environment default: debug in dev, info elsewhere.
func NewLogger(env, level string) *slog.Logger {
	return newLogger(os.Stdout, env, level)
}

func newLogger(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: levelFor(env, level)}

	return slog.New(NewContextHandler(slog.NewJSONHandler(w, opts)))
}

func levelFor(env, level string) slog.Level {
	var l slog.Level
	if level != "" && l.UnmarshalText([]byte(strings.TrimSpace(level))) == nil {
		return l
	}

	if env == "dev" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
