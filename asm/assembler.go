// Package asm implements the two-pass assembler.
//
// Pass 1 walks every source line and binds each label to the address of the
// instruction that follows it. Pass 2 encodes every instruction against the
// completed symbol table, so labels may be referenced before they are
// defined.
package asm

import (
	"encoding/binary"
	"fmt"
	"log/slog"
)

// Program is the output of a successful assembly run.
type Program struct {
	Words   []uint32
	Symbols *SymbolTable

	// SourceLines[i] is the 1-based source line that produced Words[i].
	SourceLines []int
}

// Bytes serializes the program as big-endian words.
func (p *Program) Bytes() []byte {
	return WordsToBytes(p.Words)
}

// Assembler translates source lines into machine words. An Assembler holds
// no state between runs and can be reused.
type Assembler struct {
	strict bool
}

// Strict reports whether the assembler rejects undefined labels and values
// that do not fit their fields.
func (a *Assembler) Strict() bool {
	return a.strict
}

// Assemble runs both passes and returns the words. Nothing is returned if any
// line fails.
func (a *Assembler) Assemble(lines []string) ([]uint32, error) {
	prog, err := a.AssembleProgram(lines)
	if err != nil {
		return nil, err
	}

	return prog.Words, nil
}

// AssembleProgram runs both passes and keeps the symbol table and the
// word-to-line mapping alongside the words.
func (a *Assembler) AssembleProgram(lines []string) (*Program, error) {
	symbols, err := a.FirstPass(lines)
	if err != nil {
		return nil, err
	}

	prog, err := a.SecondPass(lines, symbols)
	if err != nil {
		return nil, err
	}

	slog.Debug("Assembled",
		"Instructions", len(prog.Words),
		"Labels", symbols.Len(),
		"Strict", a.strict,
	)

	return prog, nil
}

// FirstPass builds the symbol table without encoding anything.
func (a *Assembler) FirstPass(lines []string) (*SymbolTable, error) {
	symbols := NewSymbolTable()
	address := uint32(0)

	for i, raw := range lines {
		line := ScanLine(raw)

		if line.HasLabel {
			if err := a.defineLabel(symbols, line.Label, address); err != nil {
				return nil, &LineError{Line: i + 1, Text: raw, Err: err}
			}
		}

		if line.IsInstruction() {
			address += 4
		}
	}

	return symbols, nil
}

func (a *Assembler) defineLabel(symbols *SymbolTable, name string, address uint32) error {
	if a.strict && !validLabel(name) {
		return fmt.Errorf("%w: bad label %q", ErrMalformedOperand, name)
	}

	Trace("Label", "Name", name, "Address", address)

	err := symbols.Define(name, address)
	if err != nil && a.strict {
		return err
	}

	return nil
}

// SecondPass encodes every instruction line using a complete symbol table.
func (a *Assembler) SecondPass(lines []string, symbols *SymbolTable) (*Program, error) {
	encoder := NewEncoder(symbols, a.strict)
	prog := &Program{Symbols: symbols}
	address := uint32(0)

	for i, raw := range lines {
		line := ScanLine(raw)
		if !line.IsInstruction() {
			continue
		}

		word, err := encoder.Encode(line.Tokens, address)
		if err != nil {
			return nil, &LineError{Line: i + 1, Text: raw, Err: err}
		}

		Trace("Encode", "Address", address, "Word", fmt.Sprintf("0x%08x", word))

		prog.Words = append(prog.Words, word)
		prog.SourceLines = append(prog.SourceLines, i+1)
		address += 4
	}

	return prog, nil
}

// WordsToBytes serializes words in big-endian order.
func WordsToBytes(words []uint32) []byte {
	buf := make([]byte, 0, 4*len(words))
	for _, w := range words {
		buf = binary.BigEndian.AppendUint32(buf, w)
	}

	return buf
}
