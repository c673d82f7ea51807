package asm_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/isa"
)

var _ = Describe("Assembler", func() {
	var assembler *asm.Assembler

	BeforeEach(func() {
		assembler = asm.NewBuilder().Build()
	})

	It("should be strict by default", func() {
		Expect(assembler.Strict()).To(BeTrue())
		Expect(asm.NewBuilder().WithStrict(false).Build().Strict()).To(BeFalse())
	})

	It("should assemble a loop with forward and backward references", func() {
		words, err := assembler.Assemble([]string{
			"# count to ten",
			"main:",
			"    addi $t0, $zero, 0",
			"    addi $t1, $zero, 10",
			"loop: beq $t0, $t1, done  # exit",
			"    addi $t0, $t0, 1",
			"    j loop",
			"done:",
			"    jr $ra",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]uint32{
			0x20080000, // addi $t0, $zero, 0
			0x2009000A, // addi $t1, $zero, 10
			0x11090002, // beq $t0, $t1, done (0x14)
			0x21080001, // addi $t0, $t0, 1
			0x08000002, // j loop (0x8)
			0x03E00008, // jr $ra
		}))
	})

	It("should keep the symbol table and source lines", func() {
		prog, err := assembler.AssembleProgram([]string{
			"start:",
			"    nop",
			"",
			"next: nop",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Words).To(HaveLen(2))
		Expect(prog.SourceLines).To(Equal([]int{2, 4}))
		Expect(prog.Symbols.Symbols()).To(Equal([]asm.Symbol{
			{Name: "start", Address: 0},
			{Name: "next", Address: 4},
		}))
	})

	It("should serialize words big-endian", func() {
		prog, err := assembler.AssembleProgram([]string{"add $t0, $t1, $t2", "nop"})

		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Bytes()).To(Equal([]byte{
			0x01, 0x2A, 0x40, 0x20,
			0x00, 0x00, 0x00, 0x00,
		}))
	})

	It("should produce nothing for an empty source", func() {
		words, err := assembler.Assemble([]string{"", "# nothing", "label:"})

		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(BeEmpty())
	})

	It("should stop at the first bad line and report it", func() {
		words, err := assembler.Assemble([]string{
			"    add $t0, $t1, $t2",
			"    sub $t0, $t1, $t2",
			"    frob $t0",
			"    add $t9, $t9, $nope",
		})

		Expect(words).To(BeNil())
		Expect(err).To(MatchError(isa.ErrUnknownInstruction))

		var lineErr *asm.LineError
		Expect(errors.As(err, &lineErr)).To(BeTrue())
		Expect(lineErr.Line).To(Equal(3))
		Expect(lineErr.Text).To(Equal("    frob $t0"))
		Expect(lineErr.Error()).To(ContainSubstring("line 3"))
	})

	It("should report undefined labels on their line", func() {
		_, err := assembler.Assemble([]string{"nop", "j missing"})

		var lineErr *asm.LineError
		Expect(errors.As(err, &lineErr)).To(BeTrue())
		Expect(lineErr.Line).To(Equal(2))
		Expect(err).To(MatchError(asm.ErrUndefinedLabel))
	})

	It("should reproduce the permissive behaviour when not strict", func() {
		legacy := asm.NewBuilder().WithStrict(false).Build()

		words, err := legacy.Assemble([]string{
			"a: nop",
			"a: j missing",
			"   beq $zero, $zero, a",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]uint32{
			0x00000000,
			0x08000000,
			0x1000FFFE, // a is rebound to 4
		}))
	})
})

var _ = Describe("WordsToBytes", func() {
	It("should return an empty buffer for no words", func() {
		Expect(asm.WordsToBytes(nil)).To(BeEmpty())
	})
})
