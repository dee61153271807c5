package app

import (
	"log/slog"
	"os"

	"storefront-drive/internal/logx"
)

// NewLogger returns the process-wide structured logger.
func NewLogger() logx.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	return logx.NewSlogAdapter(slog.New(h))
}
