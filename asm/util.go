package asm

import (
	"context"
	"log/slog"
)

// LevelTrace is below Debug. Handlers must be configured with this level to
// see per-instruction records.
const LevelTrace slog.Level = slog.LevelDebug - 4

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}
