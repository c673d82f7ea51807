package disasm

import (
	"context"
	"log/slog"

	"github.com/sarchlab/mipsasm/asm"
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), asm.LevelTrace, msg, args...)
}
