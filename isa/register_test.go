package isa_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mipsasm/isa"
)

var _ = Describe("Register namespace", func() {
	DescribeTable("resolving names",
		func(name string, index uint8) {
			got, err := isa.RegisterIndex(name)

			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(index))
		},
		Entry("zero", "$zero", uint8(0)),
		Entry("numeric zero", "$0", uint8(0)),
		Entry("ra", "$ra", uint8(31)),
		Entry("sp", "$sp", uint8(29)),
		Entry("t0", "$t0", uint8(8)),
		Entry("s0", "$s0", uint8(16)),
		Entry("numeric", "$17", uint8(17)),
		Entry("trailing comma", "$t0,", uint8(8)),
		Entry("whitespace", "  $t1 , ", uint8(9)),
		Entry("upper case", "$T2", uint8(10)),
	)

	It("should reject unknown registers", func() {
		for _, name := range []string{"$t10", "t0", "$32", "", "$"} {
			_, err := isa.RegisterIndex(name)
			Expect(err).To(MatchError(isa.ErrUnknownRegister), name)
		}
	})

	It("should print canonical short names", func() {
		Expect(isa.RegisterName(0)).To(Equal("$0"))
		Expect(isa.RegisterName(8)).To(Equal("$t0"))
		Expect(isa.RegisterName(29)).To(Equal("$sp"))
		Expect(isa.RegisterName(31)).To(Equal("$ra"))
	})

	It("should fall back to a numeric name", func() {
		Expect(isa.RegisterName(40)).To(Equal("$40"))
	})

	It("should round trip every index", func() {
		for i := 0; i < isa.NumRegisters; i++ {
			index, err := isa.RegisterIndex(isa.RegisterName(uint8(i)))
			Expect(err).NotTo(HaveOccurred())
			Expect(index).To(Equal(uint8(i)))
		}
	})
})
