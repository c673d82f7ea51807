package emu_test

import (
	"bytes"

	"github.com/jedib0t/go-pretty/v6/table"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/emu"
	"github.com/sarchlab/mipsasm/isa"
)

func assemble(lines ...string) []uint32 {
	words, err := asm.NewBuilder().Build().Assemble(lines)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())

	return words
}

var _ = Describe("Core", func() {
	var (
		engine sim.Engine
		core   *emu.Core
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		core = emu.NewBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithMemorySize(4096).
			WithMaxInstructions(1000).
			Build("Core")
	})

	It("should start with the stack at the top of memory", func() {
		Expect(core.LoadProgram(assemble("nop", "nop"))).To(Succeed())

		Expect(core.Register(isa.RegSP)).To(Equal(uint32(4096)))
		Expect(core.Register(isa.RegRA)).To(Equal(uint32(8)))
		Expect(core.PC()).To(BeZero())
	})

	It("should run a loop to completion", func() {
		Expect(core.LoadProgram(assemble(
			"main:",
			"    addi $t0, $zero, 0",
			"    addi $t1, $zero, 10",
			"    addi $v0, $zero, 0",
			"loop:",
			"    beq $t0, $t1, done",
			"    add $v0, $v0, $t0",
			"    addi $t0, $t0, 1",
			"    j loop",
			"done:",
			"    jr $ra",
		))).To(Succeed())

		Expect(core.Run()).To(Succeed())
		Expect(core.Halted()).To(BeTrue())
		Expect(core.Register(isa.RegV0)).To(Equal(uint32(45)))
		Expect(core.PC()).To(Equal(uint32(32)))
		Expect(core.Retired()).To(Equal(uint64(3 + 10*4 + 1 + 1)))
	})

	It("should call a function and use the stack", func() {
		Expect(core.LoadProgram(assemble(
			"    addi $a0, $zero, 7",
			"    addi $sp, $sp, -4",
			"    sw $ra, 0($sp)",
			"    jal double",
			"    lw $ra, 0($sp)",
			"    addi $sp, $sp, 4",
			"    jr $ra",
			"double:",
			"    add $v0, $a0, $a0",
			"    jr $ra",
		))).To(Succeed())

		Expect(core.Run()).To(Succeed())
		Expect(core.Register(isa.RegV0)).To(Equal(uint32(14)))
		Expect(core.Register(isa.RegSP)).To(Equal(uint32(4096)))

		saved, err := core.ReadWord(4092)
		Expect(err).NotTo(HaveOccurred())
		Expect(saved).To(Equal(uint32(36)))
	})

	It("should stop at the instruction limit", func() {
		Expect(core.LoadProgram(assemble("spin: j spin"))).To(Succeed())

		Expect(core.Run()).To(MatchError(emu.ErrStepLimit))
		Expect(core.Retired()).To(Equal(uint64(1000)))
	})

	It("should stop on memory faults", func() {
		Expect(core.LoadProgram(assemble("lw $t0, 1($zero)", "nop"))).To(Succeed())

		Expect(core.Run()).To(MatchError(emu.ErrMemoryFault))
		Expect(core.PC()).To(BeZero())
	})

	It("should stop on illegal instructions", func() {
		Expect(core.LoadProgram([]uint32{0xFC000000})).To(Succeed())

		Expect(core.Run()).To(MatchError(emu.ErrIllegalInstruction))
	})

	It("should execute stored words as instructions", func() {
		Expect(core.LoadProgram(assemble(
			"    lui $t0, 0x2002",
			"    addi $t0, $t0, 5",
			"    sw $t0, 12($zero)",
			"    nop",
		))).To(Succeed())

		Expect(core.Run()).To(Succeed())
		Expect(core.Register(isa.RegV0)).To(Equal(uint32(5)))
	})

	It("should reject programs larger than memory", func() {
		Expect(core.LoadProgram(make([]uint32, 1025))).To(MatchError(emu.ErrProgramTooLarge))
	})

	It("should dump the register file", func() {
		Expect(core.LoadProgram(assemble("addi $t0, $zero, 1"))).To(Succeed())
		Expect(core.Run()).To(Succeed())

		var buf bytes.Buffer
		core.DumpRegisters(&buf, table.StyleDefault)

		Expect(buf.String()).To(ContainSubstring("$t0"))
		Expect(buf.String()).To(ContainSubstring("0x00000001"))
		Expect(buf.String()).To(ContainSubstring("retired=1"))
	})

	It("should ignore writes to $0 from outside", func() {
		core.SetRegister(isa.RegZero, 3)

		Expect(core.Register(isa.RegZero)).To(BeZero())
	})
})
