// Package disasm turns big-endian machine words back into assembly text.
package disasm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidBinarySize is returned for a buffer whose length is not a
// multiple of four bytes.
var ErrInvalidBinarySize = errors.New("binary size must be a multiple of 4 bytes")

const (
	WordSize = 4
	Indent   = "    "

	// Header is the comment line that opens a disassembly listing.
	Header = "# Disassembled MIPS code"
)

// Words splits a big-endian buffer into words.
func Words(buf []byte) ([]uint32, error) {
	if len(buf)%WordSize != 0 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidBinarySize, len(buf))
	}

	words := make([]uint32, 0, len(buf)/WordSize)
	for off := 0; off < len(buf); off += WordSize {
		words = append(words, binary.BigEndian.Uint32(buf[off:]))
	}

	return words, nil
}

// Disassemble decodes a flat binary into indented assembly lines, one per
// word. The first word sits at address 0.
func Disassemble(buf []byte) ([]string, error) {
	words, err := Words(buf)
	if err != nil {
		return nil, err
	}

	lines := DisassembleWords(words)

	slog.Debug("Disassembled", "Instructions", len(lines))

	return lines, nil
}

// Listing returns the lines of a disassembly file: the header, a blank line
// and the instructions.
func Listing(lines []string) []string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, Header, "")

	return append(out, lines...)
}

// DisassembleWords decodes words that have already been read.
func DisassembleWords(words []uint32) []string {
	lines := make([]string, 0, len(words))
	for i, word := range words {
		address := uint32(i * WordSize)
		text := Decode(word, address)

		Trace("Decode", "Address", address, "Word", fmt.Sprintf("0x%08x", word), "Text", text)

		lines = append(lines, Indent+text)
	}

	return lines
}
