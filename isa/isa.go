// Package isa describes the 32-bit MIPS instruction subset shared by the
// assembler, the disassembler and the emulator.
//
// The catalog is built once at package initialization and never mutated.
// Lookups are safe for concurrent use.
package isa

import (
	"fmt"
	"strings"
)

// Format is the encoding family of an instruction.
type Format int

const (
	FormatR Format = iota
	FormatI
	FormatJ
	FormatSpecial
)

func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatJ:
		return "J"
	case FormatSpecial:
		return "Special"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Shape selects how the operands of an instruction are laid out, both in
// source text and in the encoded word. Every mnemonic has exactly one shape.
type Shape int

const (
	ShapeShift    Shape = iota // sll rd, rt, shamt
	ShapeJumpReg               // jr rs
	ShapeArith                 // add rd, rs, rt
	ShapeMemory                // lw rt, offset(rs)
	ShapeBranch                // beq rs, rt, target
	ShapeImm                   // addi rt, rs, imm
	ShapeJump                  // j target
	ShapeUpperImm              // lui rt, imm
	ShapeNop                   // nop
)

// NumOperands returns how many operands the shape takes in source text.
func (s Shape) NumOperands() int {
	switch s {
	case ShapeNop:
		return 0
	case ShapeJumpReg, ShapeJump:
		return 1
	case ShapeMemory, ShapeUpperImm:
		return 2
	default:
		return 3
	}
}

// Opcodes, bits 31-26.
const (
	OpSpecial uint8 = 0x00
	OpJ       uint8 = 0x02
	OpJAL     uint8 = 0x03
	OpBEQ     uint8 = 0x04
	OpBNE     uint8 = 0x05
	OpADDI    uint8 = 0x08
	OpSLTI    uint8 = 0x0a
	OpLUI     uint8 = 0x0f
	OpLW      uint8 = 0x23
	OpSW      uint8 = 0x2b
)

// Function codes of the R format, bits 5-0.
const (
	FunctSLL uint8 = 0x00
	FunctSRL uint8 = 0x02
	FunctJR  uint8 = 0x08
	FunctADD uint8 = 0x20
	FunctSUB uint8 = 0x22
	FunctAND uint8 = 0x24
	FunctOR  uint8 = 0x25
	FunctXOR uint8 = 0x26
	FunctSLT uint8 = 0x2a
)

// InstructionSpec is one row of the instruction catalog.
type InstructionSpec struct {
	Mnemonic string
	Format   Format
	Shape    Shape
	Opcode   uint8
	Funct    uint8 // R format only
}

var catalog = []InstructionSpec{
	{"add", FormatR, ShapeArith, OpSpecial, FunctADD},
	{"sub", FormatR, ShapeArith, OpSpecial, FunctSUB},
	{"and", FormatR, ShapeArith, OpSpecial, FunctAND},
	{"or", FormatR, ShapeArith, OpSpecial, FunctOR},
	{"xor", FormatR, ShapeArith, OpSpecial, FunctXOR},
	{"slt", FormatR, ShapeArith, OpSpecial, FunctSLT},
	{"sll", FormatR, ShapeShift, OpSpecial, FunctSLL},
	{"srl", FormatR, ShapeShift, OpSpecial, FunctSRL},
	{"jr", FormatR, ShapeJumpReg, OpSpecial, FunctJR},

	{"addi", FormatI, ShapeImm, OpADDI, 0},
	{"slti", FormatI, ShapeImm, OpSLTI, 0},
	{"lw", FormatI, ShapeMemory, OpLW, 0},
	{"sw", FormatI, ShapeMemory, OpSW, 0},
	{"beq", FormatI, ShapeBranch, OpBEQ, 0},
	{"bne", FormatI, ShapeBranch, OpBNE, 0},

	{"j", FormatJ, ShapeJump, OpJ, 0},
	{"jal", FormatJ, ShapeJump, OpJAL, 0},

	{"lui", FormatSpecial, ShapeUpperImm, OpLUI, 0},
	{"nop", FormatSpecial, ShapeNop, OpSpecial, 0},
}

var (
	byMnemonic = make(map[string]InstructionSpec)
	byFunct    = make(map[uint8]InstructionSpec)
	byOpcode   = make(map[uint8]InstructionSpec)
)

func init() {
	for _, spec := range catalog {
		byMnemonic[spec.Mnemonic] = spec

		switch {
		case spec.Shape == ShapeNop:
			// The all-zero word is matched before any table lookup.
		case spec.Format == FormatR:
			mustBeUniqueKey(byFunct, spec.Funct, spec)
			byFunct[spec.Funct] = spec
		default:
			mustBeUniqueKey(byOpcode, spec.Opcode, spec)
			byOpcode[spec.Opcode] = spec
		}
	}
}

func mustBeUniqueKey(table map[uint8]InstructionSpec, key uint8, spec InstructionSpec) {
	if prev, exists := table[key]; exists {
		panic(fmt.Sprintf("isa: %s and %s share code 0x%02x",
			prev.Mnemonic, spec.Mnemonic, key))
	}
}

// Lookup finds the catalog entry of a mnemonic. Mnemonics are case
// insensitive.
func Lookup(mnemonic string) (InstructionSpec, error) {
	spec, ok := byMnemonic[strings.ToLower(mnemonic)]
	if !ok {
		return InstructionSpec{}, fmt.Errorf("%w: %s", ErrUnknownInstruction, mnemonic)
	}

	return spec, nil
}

// LookupFunct finds the R-format instruction that owns a function code.
func LookupFunct(funct uint8) (InstructionSpec, bool) {
	spec, ok := byFunct[funct]
	return spec, ok
}

// LookupOpcode finds the I, J or Special instruction that owns an opcode.
// Opcode 0 never matches; it selects the R format.
func LookupOpcode(opcode uint8) (InstructionSpec, bool) {
	spec, ok := byOpcode[opcode]
	return spec, ok
}

// Nop returns the catalog entry of the nop instruction.
func Nop() InstructionSpec {
	return byMnemonic["nop"]
}

// Instructions lists the whole catalog in declaration order.
func Instructions() []InstructionSpec {
	out := make([]InstructionSpec, len(catalog))
	copy(out, catalog)

	return out
}
