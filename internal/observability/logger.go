package observability

import (
	"io"
	"log/slog"
	"os"
)

// NewCLILogger returns a text logger on stderr for one-shot commands whose
// stdout carries their output. The service logger comes from
// storm-data-shared/observability.NewLogger, which writes to stdout.
func NewCLILogger(level string) *slog.Logger {
	return newTextLogger(os.Stderr, level)
}

// newTextLogger accepts slog's level names (debug, info, warn, error, with
// optional offsets such as "warn+2"); anything else means info.
func newTextLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// DiscardLogger returns a logger that drops everything. Handy in tests and
// for the one-shot CLI when -v is not given.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
