package verify

import (
	"errors"
	"fmt"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/disasm"
)

// ErrRoundTripMismatch is returned when the reassembled binary differs from
// the original one.
var ErrRoundTripMismatch = errors.New("round trip mismatch")

// RoundTripResult describes one assemble, disassemble, reassemble cycle.
type RoundTripResult struct {
	Original    []uint32
	Listing     []string
	Reassembled []uint32

	// Mismatch is the index of the first differing word, or -1.
	Mismatch int
}

// OK reports whether both binaries are identical.
func (r *RoundTripResult) OK() bool {
	return r.Mismatch < 0
}

// RoundTrip assembles lines, disassembles the binary and assembles the
// listing again with the same assembler. A failure to assemble either program
// is returned as is; differing binaries yield ErrRoundTripMismatch together
// with the result.
func RoundTrip(assembler *asm.Assembler, lines []string) (*RoundTripResult, error) {
	original, err := assembler.Assemble(lines)
	if err != nil {
		return nil, fmt.Errorf("assemble original: %w", err)
	}

	text, err := disasm.Disassemble(asm.WordsToBytes(original))
	if err != nil {
		return nil, fmt.Errorf("disassemble: %w", err)
	}

	listing := disasm.Listing(text)

	reassembled, err := assembler.Assemble(listing)
	if err != nil {
		return nil, fmt.Errorf("reassemble listing: %w", err)
	}

	result := &RoundTripResult{
		Original:    original,
		Listing:     listing,
		Reassembled: reassembled,
		Mismatch:    firstMismatch(original, reassembled),
	}

	if !result.OK() {
		return result, fmt.Errorf("%w: word %d", ErrRoundTripMismatch, result.Mismatch)
	}

	return result, nil
}

func firstMismatch(a, b []uint32) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}

	if len(a) != len(b) {
		return n
	}

	return -1
}
