package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a slog logger that discards everything, keeping
// service and sweep log output out of test results.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
