package emu

import (
	"github.com/sarchlab/akita/v4/mem/mem"
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine          sim.Engine
	freq            sim.Freq
	memorySize      uint64
	maxInstructions uint64
}

// NewBuilder returns a builder for a 1 GHz core with 64 KiB of memory and
// a limit of one million instructions.
func NewBuilder() Builder {
	return Builder{
		freq:            1 * sim.GHz,
		memorySize:      64 << 10,
		maxInstructions: 1_000_000,
	}
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMemorySize sets the number of bytes of memory. It must be a non-zero
// multiple of 4 no larger than 4 GiB.
func (b Builder) WithMemorySize(size uint64) Builder {
	if size == 0 || size%4 != 0 || size > 1<<32 {
		panic("memory size must be a non-zero multiple of 4 up to 4 GiB")
	}

	b.memorySize = size
	return b
}

// WithMaxInstructions limits how many instructions a run may retire. Zero
// removes the limit.
func (b Builder) WithMaxInstructions(n uint64) Builder {
	b.maxInstructions = n
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	if b.engine == nil {
		panic("engine is not set")
	}

	c := &Core{
		maxInstructions: b.maxInstructions,
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.state = coreState{
		Memory:     mem.NewStorage(b.memorySize),
		MemorySize: b.memorySize,
	}
	c.emu = newInstEmulator()
	c.Reset()

	return c
}

// stackTop is the initial $sp. A 4 GiB memory wraps to 0, which is still
// the address one past the last byte.
func stackTop(memorySize uint64) uint32 {
	return uint32(memorySize)
}
