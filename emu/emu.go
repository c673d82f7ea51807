package emu

import (
	"encoding/binary"
	"fmt"

	"github.com/sarchlab/akita/v4/mem/mem"

	"github.com/sarchlab/mipsasm/disasm"
	"github.com/sarchlab/mipsasm/isa"
)

type coreState struct {
	PC        uint32
	NextPC    uint32
	Registers [isa.NumRegisters]uint32

	Memory     *mem.Storage
	MemorySize uint64

	// TextEnd is one past the last instruction byte. The core halts once the
	// PC leaves [0, TextEnd).
	TextEnd uint32
	Retired uint64
}

func (s *coreState) readReg(index uint8) uint32 {
	return s.Registers[index]
}

func (s *coreState) writeReg(index uint8, value uint32) {
	if index == isa.RegZero {
		return
	}

	s.Registers[index] = value
}

func (s *coreState) checkAccess(addr uint32) error {
	if addr%4 != 0 {
		return fmt.Errorf("%w: unaligned access at 0x%08x", ErrMemoryFault, addr)
	}

	if uint64(addr)+4 > s.MemorySize {
		return fmt.Errorf("%w: access at 0x%08x beyond %d bytes",
			ErrMemoryFault, addr, s.MemorySize)
	}

	return nil
}

func (s *coreState) loadWord(addr uint32) (uint32, error) {
	if err := s.checkAccess(addr); err != nil {
		return 0, err
	}

	data, err := s.Memory.Read(uint64(addr), 4)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMemoryFault, err)
	}

	return binary.BigEndian.Uint32(data), nil
}

func (s *coreState) storeWord(addr, value uint32) error {
	if err := s.checkAccess(addr); err != nil {
		return err
	}

	data := binary.BigEndian.AppendUint32(nil, value)
	if err := s.Memory.Write(uint64(addr), data); err != nil {
		return fmt.Errorf("%w: %v", ErrMemoryFault, err)
	}

	return nil
}

type instFunc func(inst disasm.Instruction, state *coreState) error

type instEmulator struct {
	instFuncs map[string]instFunc
}

func newInstEmulator() instEmulator {
	i := instEmulator{}
	i.instFuncs = map[string]instFunc{
		"add":  i.runArith(func(a, b uint32) uint32 { return a + b }),
		"sub":  i.runArith(func(a, b uint32) uint32 { return a - b }),
		"and":  i.runArith(func(a, b uint32) uint32 { return a & b }),
		"or":   i.runArith(func(a, b uint32) uint32 { return a | b }),
		"xor":  i.runArith(func(a, b uint32) uint32 { return a ^ b }),
		"slt":  i.runArith(setLessThan),
		"sll":  i.runSll,
		"srl":  i.runSrl,
		"jr":   i.runJr,
		"addi": i.runImm(func(a, b uint32) uint32 { return a + b }),
		"slti": i.runImm(setLessThan),
		"lw":   i.runLw,
		"sw":   i.runSw,
		"beq":  i.runBranch(func(a, b uint32) bool { return a == b }),
		"bne":  i.runBranch(func(a, b uint32) bool { return a != b }),
		"j":    i.runJ,
		"jal":  i.runJal,
		"lui":  i.runLui,
		"nop":  func(disasm.Instruction, *coreState) error { return nil },
	}

	return i
}

// RunInst executes one decoded instruction and advances the PC.
func (i instEmulator) RunInst(inst disasm.Instruction, state *coreState) error {
	if !inst.Known {
		return fmt.Errorf("%w: 0x%08x at 0x%08x", ErrIllegalInstruction, inst.Word, state.PC)
	}

	run, ok := i.instFuncs[inst.Mnemonic()]
	if !ok {
		panic(fmt.Sprintf("no behavior for instruction %s", inst.Mnemonic()))
	}

	state.NextPC = state.PC + 4
	if err := run(inst, state); err != nil {
		return err
	}

	state.PC = state.NextPC
	state.Retired++

	return nil
}

func setLessThan(a, b uint32) uint32 {
	if int32(a) < int32(b) {
		return 1
	}

	return 0
}

func (i instEmulator) runArith(op func(a, b uint32) uint32) instFunc {
	return func(inst disasm.Instruction, state *coreState) error {
		state.writeReg(inst.Rd, op(state.readReg(inst.Rs), state.readReg(inst.Rt)))
		return nil
	}
}

func (i instEmulator) runImm(op func(a, b uint32) uint32) instFunc {
	return func(inst disasm.Instruction, state *coreState) error {
		state.writeReg(inst.Rt, op(state.readReg(inst.Rs), uint32(inst.Imm())))
		return nil
	}
}

func (i instEmulator) runBranch(taken func(a, b uint32) bool) instFunc {
	return func(inst disasm.Instruction, state *coreState) error {
		if taken(state.readReg(inst.Rs), state.readReg(inst.Rt)) {
			state.NextPC = inst.BranchTarget()
		}

		return nil
	}
}

func (i instEmulator) runSll(inst disasm.Instruction, state *coreState) error {
	state.writeReg(inst.Rd, state.readReg(inst.Rt)<<inst.Shamt)
	return nil
}

func (i instEmulator) runSrl(inst disasm.Instruction, state *coreState) error {
	state.writeReg(inst.Rd, state.readReg(inst.Rt)>>inst.Shamt)
	return nil
}

func (i instEmulator) runJr(inst disasm.Instruction, state *coreState) error {
	state.NextPC = state.readReg(inst.Rs)
	return nil
}

func (i instEmulator) runLw(inst disasm.Instruction, state *coreState) error {
	value, err := state.loadWord(effectiveAddress(inst, state))
	if err != nil {
		return err
	}

	state.writeReg(inst.Rt, value)

	return nil
}

func (i instEmulator) runSw(inst disasm.Instruction, state *coreState) error {
	return state.storeWord(effectiveAddress(inst, state), state.readReg(inst.Rt))
}

func effectiveAddress(inst disasm.Instruction, state *coreState) uint32 {
	return state.readReg(inst.Rs) + uint32(inst.Imm())
}

func (i instEmulator) runJ(inst disasm.Instruction, state *coreState) error {
	state.NextPC = jumpDestination(inst, state.PC)
	return nil
}

// No delay slot, so the return address is the next instruction.
func (i instEmulator) runJal(inst disasm.Instruction, state *coreState) error {
	state.writeReg(isa.RegRA, state.PC+4)
	state.NextPC = jumpDestination(inst, state.PC)

	return nil
}

func jumpDestination(inst disasm.Instruction, pc uint32) uint32 {
	return (pc+4)&0xf0000000 | inst.JumpTarget()
}

func (i instEmulator) runLui(inst disasm.Instruction, state *coreState) error {
	state.writeReg(inst.Rt, uint32(inst.Fields.Imm)<<16)
	return nil
}
