package asm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsasm/asm"
)

var _ = Describe("ScanLine", func() {
	It("should split an instruction into tokens", func() {
		line := asm.ScanLine("    add $t0, $t1, $t2")

		Expect(line.HasLabel).To(BeFalse())
		Expect(line.Tokens).To(Equal([]string{"add", "$t0", "$t1", "$t2"}))
		Expect(line.Mnemonic()).To(Equal("add"))
		Expect(line.Operands()).To(Equal([]string{"$t0", "$t1", "$t2"}))
	})

	It("should accept operands separated only by commas", func() {
		line := asm.ScanLine("add $t0,$t1,$t2")

		Expect(line.Tokens).To(Equal([]string{"add", "$t0", "$t1", "$t2"}))
	})

	It("should strip comments", func() {
		line := asm.ScanLine("addi $t0, $t0, 1   # bump: counter")

		Expect(line.HasLabel).To(BeFalse())
		Expect(line.Tokens).To(Equal([]string{"addi", "$t0", "$t0", "1"}))
	})

	It("should treat comment-only and blank lines as empty", func() {
		Expect(asm.ScanLine("# just a comment").IsInstruction()).To(BeFalse())
		Expect(asm.ScanLine("   \t").IsInstruction()).To(BeFalse())
		Expect(asm.ScanLine("").IsInstruction()).To(BeFalse())
	})

	It("should recognize a label-only line", func() {
		line := asm.ScanLine("loop:")

		Expect(line.HasLabel).To(BeTrue())
		Expect(line.Label).To(Equal("loop"))
		Expect(line.IsInstruction()).To(BeFalse())
		Expect(line.Mnemonic()).To(BeEmpty())
	})

	It("should recognize a label sharing a line with an instruction", func() {
		line := asm.ScanLine("main:  lw $t0, 0($sp)")

		Expect(line.Label).To(Equal("main"))
		Expect(line.Tokens).To(Equal([]string{"lw", "$t0", "0($sp)"}))
	})
})
