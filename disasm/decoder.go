package disasm

import (
	"fmt"

	"github.com/sarchlab/mipsasm/isa"
)

// Instruction is a decoded word. Known is false when no catalog entry owns
// the opcode or function code; Spec is then the zero value.
type Instruction struct {
	isa.Fields

	Word    uint32
	Address uint32
	Spec    isa.InstructionSpec
	Known   bool
}

// DecodeInstruction splits word into its fields and identifies the
// instruction. address is the byte address of the word, used for
// PC-relative branch targets. Decoding never fails.
func DecodeInstruction(word, address uint32) Instruction {
	inst := Instruction{
		Fields:  isa.Split(word),
		Word:    word,
		Address: address,
	}

	switch {
	case word == 0:
		inst.Spec, inst.Known = isa.Nop(), true
	case inst.Opcode == isa.OpSpecial:
		inst.Spec, inst.Known = isa.LookupFunct(inst.Funct)
	default:
		inst.Spec, inst.Known = isa.LookupOpcode(inst.Opcode)
	}

	return inst
}

// Format returns the encoding family. Unknown words report the family
// their opcode selects.
func (i Instruction) Format() isa.Format {
	if i.Known {
		return i.Spec.Format
	}

	if i.Opcode == isa.OpSpecial {
		return isa.FormatR
	}

	return isa.FormatI
}

// Mnemonic returns the lowercase mnemonic, or an empty string if the word
// is unknown.
func (i Instruction) Mnemonic() string {
	return i.Spec.Mnemonic
}

// Imm returns the sign-extended immediate.
func (i Instruction) Imm() int32 {
	return i.SignedImm()
}

// BranchTarget returns address + 4 + imm*4. The sum wraps around the 32-bit
// address space.
func (i Instruction) BranchTarget() uint32 {
	return i.Address + 4 + uint32(i.SignedImm())*4
}

// JumpTarget returns the 26-bit target field shifted to a byte address,
// without the region bits of the PC.
func (i Instruction) JumpTarget() uint32 {
	return i.Target << 2
}

func (i Instruction) String() string {
	if !i.Known {
		if i.Opcode == isa.OpSpecial {
			return fmt.Sprintf("unknown_r 0x%08x", i.Word)
		}

		return fmt.Sprintf("unknown_i 0x%08x", i.Word)
	}

	reg := isa.RegisterName
	name := i.Spec.Mnemonic

	switch i.Spec.Shape {
	case isa.ShapeNop:
		return name
	case isa.ShapeShift:
		return fmt.Sprintf("%s %s, %s, %d", name, reg(i.Rd), reg(i.Rt), i.Shamt)
	case isa.ShapeJumpReg:
		return fmt.Sprintf("%s %s", name, reg(i.Rs))
	case isa.ShapeArith:
		return fmt.Sprintf("%s %s, %s, %s", name, reg(i.Rd), reg(i.Rs), reg(i.Rt))
	case isa.ShapeMemory:
		return fmt.Sprintf("%s %s, %d(%s)", name, reg(i.Rt), i.Imm(), reg(i.Rs))
	case isa.ShapeBranch:
		return fmt.Sprintf("%s %s, %s, 0x%x", name, reg(i.Rs), reg(i.Rt), i.BranchTarget())
	case isa.ShapeImm:
		return fmt.Sprintf("%s %s, %s, %d", name, reg(i.Rt), reg(i.Rs), i.Imm())
	case isa.ShapeJump:
		return fmt.Sprintf("%s 0x%x", name, i.JumpTarget())
	case isa.ShapeUpperImm:
		return fmt.Sprintf("%s %s, %d", name, reg(i.Rt), i.Fields.Imm)
	}

	panic(fmt.Sprintf("no decoding for shape %d of %s", i.Spec.Shape, name))
}

// Decode renders one word as assembly text.
func Decode(word, address uint32) string {
	return DecodeInstruction(word, address).String()
}
