package testutil

import (
	"io"
	"log/slog"

	"github.com/dlalic/unpacking/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything. Use in tests.
func MakeNoopLogger() *logger.Logger {
	return &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
}
