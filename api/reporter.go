package api

import (
	"fmt"
	"io"
	"log/slog"
)

// LogReporter writes run progress to the default slog logger.
type LogReporter struct{}

func (LogReporter) Started(r Result) {
	slog.Info("Run started",
		"RunID", r.RunID,
		"Mode", r.Mode,
		"Input", r.Input,
		"Output", r.Output,
	)
}

func (LogReporter) Finished(r Result) {
	slog.Info("Run finished",
		"RunID", r.RunID,
		"Mode", r.Mode,
		"Count", r.Count,
	)
}

func (LogReporter) Failed(r Result, err error) {
	slog.Error("Run failed",
		"RunID", r.RunID,
		"Mode", r.Mode,
		"Input", r.Input,
		"Error", err,
	)
}

// ConsoleReporter prints one line per finished run and logs the rest.
type ConsoleReporter struct {
	LogReporter

	Out io.Writer
}

func (c ConsoleReporter) Finished(r Result) {
	c.LogReporter.Finished(r)

	verb := "Assembled"
	if r.Mode == ModeDisassemble {
		verb = "Disassembled"
	}

	fmt.Fprintf(c.Out, "%s %d instructions to %s\n", verb, r.Count, r.Output)
}
