package disasm_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsasm/asm"
	"github.com/sarchlab/mipsasm/disasm"
	"github.com/sarchlab/mipsasm/isa"
)

var _ = Describe("Decode", func() {
	DescribeTable("known words",
		func(word, address uint32, want string) {
			Expect(disasm.Decode(word, address)).To(Equal(want))
		},
		Entry(nil, uint32(0x00000000), uint32(0), "nop"),
		Entry(nil, uint32(0x012A4020), uint32(0), "add $t0, $t1, $t2"),
		Entry(nil, uint32(0x02328022), uint32(0), "sub $s0, $s1, $s2"),
		Entry(nil, uint32(0x012A402A), uint32(0), "slt $t0, $t1, $t2"),
		Entry(nil, uint32(0x00094100), uint32(0), "sll $t0, $t1, 4"),
		Entry(nil, uint32(0x00094202), uint32(0), "srl $t0, $t1, 8"),
		Entry(nil, uint32(0x03E00008), uint32(0), "jr $ra"),
		Entry(nil, uint32(0x21280064), uint32(0), "addi $t0, $t1, 100"),
		Entry(nil, uint32(0x2008FFFF), uint32(0), "addi $t0, $0, -1"),
		Entry(nil, uint32(0x8FA80000), uint32(0), "lw $t0, 0($sp)"),
		Entry(nil, uint32(0x8FA8FFFC), uint32(0), "lw $t0, -4($sp)"),
		Entry(nil, uint32(0xAFA80004), uint32(0), "sw $t0, 4($sp)"),
		Entry(nil, uint32(0x3C08FFFF), uint32(0), "lui $t0, 65535"),
		Entry(nil, uint32(0x08100000), uint32(0), "j 0x400000"),
		Entry(nil, uint32(0x0C000002), uint32(0), "jal 0x8"),
		Entry(nil, uint32(0x1509FFFE), uint32(4), "bne $t0, $t1, 0x0"),
		Entry(nil, uint32(0x11090001), uint32(0), "beq $t0, $t1, 0x8"),
		Entry(nil, uint32(0x10000003), uint32(0x100), "beq $0, $0, 0x110"),
	)

	It("should print nop only for the all-zero word", func() {
		Expect(disasm.Decode(0x00000002, 0)).To(Equal("srl $0, $0, 0"))
		Expect(disasm.Decode(0x00200000, 0)).To(Equal("sll $0, $0, 0"))
	})

	It("should print placeholders for unknown words", func() {
		Expect(disasm.Decode(0x0000003F, 0)).To(Equal("unknown_r 0x0000003f"))
		Expect(disasm.Decode(0xFC000000, 0)).To(Equal("unknown_i 0xfc000000"))
	})

	It("should wrap branch targets below address 0", func() {
		Expect(disasm.Decode(0x1000FFFE, 0)).To(Equal("beq $0, $0, 0xfffffffc"))
	})

	It("should print register 1 by its symbolic name", func() {
		Expect(disasm.Decode(0x00000020|1<<21|1<<16|1<<11, 0)).To(Equal("add $at, $at, $at"))
	})
})

var _ = Describe("DecodeInstruction", func() {
	It("should expose the fields of an R-format word", func() {
		inst := disasm.DecodeInstruction(0x012A4020, 0)

		Expect(inst.Known).To(BeTrue())
		Expect(inst.Mnemonic()).To(Equal("add"))
		Expect(inst.Format()).To(Equal(isa.FormatR))
		Expect(inst.Rs).To(Equal(uint8(9)))
		Expect(inst.Rt).To(Equal(uint8(10)))
		Expect(inst.Rd).To(Equal(uint8(8)))
		Expect(inst.Funct).To(Equal(isa.FunctADD))
	})

	It("should sign-extend immediates and compute branch targets", func() {
		inst := disasm.DecodeInstruction(0x1509FFFE, 8)

		Expect(inst.Spec.Shape).To(Equal(isa.ShapeBranch))
		Expect(inst.Imm()).To(Equal(int32(-2)))
		Expect(inst.BranchTarget()).To(Equal(uint32(4)))
	})

	It("should compute jump targets", func() {
		inst := disasm.DecodeInstruction(0x08100000, 0)

		Expect(inst.Format()).To(Equal(isa.FormatJ))
		Expect(inst.JumpTarget()).To(Equal(uint32(0x00400000)))
	})

	It("should report the format family of unknown words", func() {
		Expect(disasm.DecodeInstruction(0x0000003F, 0).Format()).To(Equal(isa.FormatR))
		Expect(disasm.DecodeInstruction(0xFC000000, 0).Format()).To(Equal(isa.FormatI))
		Expect(disasm.DecodeInstruction(0xFC000000, 0).Known).To(BeFalse())
	})
})

var _ = Describe("Round trip", func() {
	encoder := asm.NewEncoder(nil, true)

	DescribeTable("decode(encode(line)) == line",
		func(line string) {
			word, err := encoder.Encode(asm.ScanLine(line).Tokens, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(disasm.Decode(word, 0)).To(Equal(line))
		},
		Entry(nil, "add $t0, $t1, $t2"),
		Entry(nil, "sub $v0, $a0, $a1"),
		Entry(nil, "and $s0, $s1, $s2"),
		Entry(nil, "or $t3, $t4, $t5"),
		Entry(nil, "xor $k0, $k1, $gp"),
		Entry(nil, "slt $t8, $t9, $fp"),
		Entry(nil, "sll $t0, $t1, 31"),
		Entry(nil, "srl $t0, $t1, 1"),
		Entry(nil, "jr $ra"),
		Entry(nil, "addi $sp, $sp, -16"),
		Entry(nil, "slti $t0, $a0, 32767"),
		Entry(nil, "lw $ra, 12($sp)"),
		Entry(nil, "sw $s7, -32768($fp)"),
		Entry(nil, "lui $at, 4660"),
		Entry(nil, "nop"),
	)
})
