// Package api defines the driver API for assembling and disassembling
// files.
package api

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rs/xid"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/disasm"
)

// Mode tells which direction a run translates.
type Mode string

const (
	ModeAssemble    Mode = "assemble"
	ModeDisassemble Mode = "disassemble"
)

const (
	sourceSuffix = ".asm"
	binarySuffix = ".bin"
)

// Result describes one run of the driver.
type Result struct {
	RunID  string
	Mode   Mode
	Input  string
	Output string

	// Count is the number of instructions translated.
	Count int

	// Symbols is only set by assembly runs.
	Symbols []asm.Symbol
}

// Driver translates files between assembly text and flat binaries.
type Driver interface {
	// AssembleFile assembles input and writes the big-endian words to
	// output. Nothing is written if any line fails. An empty output selects
	// DefaultOutputPath.
	AssembleFile(input, output string) (Result, error)

	// DisassembleFile decodes the binary input and writes a listing to
	// output. An empty output selects DefaultOutputPath.
	DisassembleFile(input, output string) (Result, error)
}

// ProgressReporter is told about the progress of every run.
type ProgressReporter interface {
	Started(result Result)
	Finished(result Result)
	Failed(result Result, err error)
}

// DefaultOutputPath derives an output file name from the input. For
// assembly a trailing .asm becomes .bin, for disassembly a trailing .bin
// becomes .asm. Any other name gets the new suffix appended.
func DefaultOutputPath(input string, mode Mode) string {
	from, to := sourceSuffix, binarySuffix
	if mode == ModeDisassemble {
		from, to = binarySuffix, sourceSuffix
	}

	return strings.TrimSuffix(input, from) + to
}

type driverImpl struct {
	assembler *asm.Assembler
	reporter  ProgressReporter
}

func (d *driverImpl) newResult(mode Mode, input, output string) Result {
	if output == "" {
		output = DefaultOutputPath(input, mode)
	}

	return Result{
		RunID:  xid.New().String(),
		Mode:   mode,
		Input:  input,
		Output: output,
	}
}

func (d *driverImpl) fail(result Result, err error) (Result, error) {
	d.reporter.Failed(result, err)
	return result, err
}

// AssembleFile assembles a source file into a binary.
func (d *driverImpl) AssembleFile(input, output string) (Result, error) {
	result := d.newResult(ModeAssemble, input, output)
	d.reporter.Started(result)

	lines, err := ReadSource(input)
	if err != nil {
		return d.fail(result, err)
	}

	prog, err := d.assembler.AssembleProgram(lines)
	if err != nil {
		return d.fail(result, fmt.Errorf("%s: %w", input, err))
	}

	if err := os.WriteFile(result.Output, prog.Bytes(), 0o644); err != nil {
		return d.fail(result, err)
	}

	result.Count = len(prog.Words)
	result.Symbols = prog.Symbols.Symbols()

	slog.Debug("Wrote binary",
		"RunID", result.RunID,
		"Output", result.Output,
		"Bytes", 4*result.Count,
	)

	d.reporter.Finished(result)

	return result, nil
}

// DisassembleFile decodes a binary file into a listing.
func (d *driverImpl) DisassembleFile(input, output string) (Result, error) {
	result := d.newResult(ModeDisassemble, input, output)
	d.reporter.Started(result)

	buf, err := os.ReadFile(input)
	if err != nil {
		return d.fail(result, err)
	}

	lines, err := disasm.Disassemble(buf)
	if err != nil {
		return d.fail(result, fmt.Errorf("%s: %w", input, err))
	}

	text := strings.Join(disasm.Listing(lines), "\n") + "\n"
	if err := os.WriteFile(result.Output, []byte(text), 0o644); err != nil {
		return d.fail(result, err)
	}

	result.Count = len(lines)

	d.reporter.Finished(result)

	return result, nil
}

// ReadSource reads an assembly file as lines. CRLF line endings are
// accepted.
func ReadSource(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	return strings.Split(text, "\n"), nil
}
