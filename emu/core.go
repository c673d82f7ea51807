// Package emu executes assembled programs on a simulated single-issue core.
//
// The core is an akita ticking component that retires one instruction per
// cycle. Instruction words and data share one big-endian memory; the
// program is loaded at address 0.
package emu

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/disasm"
	"github.com/sarchlab/mipsasm/isa"
)

type Core struct {
	*sim.TickingComponent

	state coreState
	emu   instEmulator

	maxInstructions uint64
	halted          bool
	err             error
}

// Reset clears the registers and the PC. Memory is left untouched.
func (c *Core) Reset() {
	c.state.PC = 0
	c.state.NextPC = 0
	c.state.Retired = 0
	c.state.Registers = [isa.NumRegisters]uint32{}
	c.state.Registers[isa.RegSP] = stackTop(c.state.MemorySize)
	c.state.Registers[isa.RegRA] = c.state.TextEnd

	c.halted = false
	c.err = nil
}

// LoadProgram copies words to address 0 and resets the core so that a final
// jr $ra returns past the end of the text.
func (c *Core) LoadProgram(words []uint32) error {
	size := uint64(len(words)) * 4
	if size > c.state.MemorySize {
		return fmt.Errorf("%w: %d bytes, memory has %d",
			ErrProgramTooLarge, size, c.state.MemorySize)
	}

	if err := c.state.Memory.Write(0, asm.WordsToBytes(words)); err != nil {
		return err
	}

	c.state.TextEnd = uint32(size)
	c.Reset()

	return nil
}

// Run ticks the core until it halts and returns the error that stopped it,
// if any.
func (c *Core) Run() error {
	c.TickNow()

	if err := c.Engine.Run(); err != nil {
		return err
	}

	return c.err
}

// Tick retires one instruction.
func (c *Core) Tick() (madeProgress bool) {
	if c.halted {
		return false
	}

	pc := c.state.PC
	if pc >= c.state.TextEnd {
		c.halt(nil)
		return false
	}

	if c.maxInstructions > 0 && c.state.Retired >= c.maxInstructions {
		c.halt(fmt.Errorf("%w: %d", ErrStepLimit, c.maxInstructions))
		return false
	}

	word, err := c.state.loadWord(pc)
	if err != nil {
		c.halt(fmt.Errorf("fetch: %w", err))
		return false
	}

	inst := disasm.DecodeInstruction(word, pc)

	Trace("Inst",
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"Core", c.Name(),
		"PC", fmt.Sprintf("0x%08x", pc),
		"Inst", inst.String(),
	)

	if err := c.emu.RunInst(inst, &c.state); err != nil {
		c.halt(err)
		return false
	}

	return true
}

func (c *Core) halt(err error) {
	c.halted = true
	c.err = err

	Trace("Halt",
		"Core", c.Name(),
		"PC", fmt.Sprintf("0x%08x", c.state.PC),
		"Retired", c.state.Retired,
		"Error", err,
	)
}

// Halted reports whether the core has stopped.
func (c *Core) Halted() bool {
	return c.halted
}

// Err returns the error that halted the core, or nil for a normal exit.
func (c *Core) Err() error {
	return c.err
}

// PC returns the address of the next instruction.
func (c *Core) PC() uint32 {
	return c.state.PC
}

// Retired returns the number of instructions executed since the last reset.
func (c *Core) Retired() uint64 {
	return c.state.Retired
}

// Register returns the value of a register.
func (c *Core) Register(index uint8) uint32 {
	return c.state.Registers[index]
}

// SetRegister sets a register. Writes to $0 are ignored.
func (c *Core) SetRegister(index uint8, value uint32) {
	c.state.writeReg(index, value)
}

// ReadWord reads an aligned big-endian word from memory.
func (c *Core) ReadWord(addr uint32) (uint32, error) {
	return c.state.loadWord(addr)
}

// WriteWord writes an aligned big-endian word to memory.
func (c *Core) WriteWord(addr, value uint32) error {
	return c.state.storeWord(addr, value)
}
