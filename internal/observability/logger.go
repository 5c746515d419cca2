package observability

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger. Records logged with a request context
// carry request_id, and traced ones also carry trace_id and span_id.
func NewLogger(env string) *slog.Logger {
	return newLogger(os.Stdout, env)
}

func newLogger(w io.Writer, env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(NewContextHandler(handler)).With("service", "userhub")
}
