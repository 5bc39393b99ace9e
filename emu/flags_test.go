package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/uflarisc/emu"
)

var _ = Describe("Flags", func() {
	var flags *emu.Flags

	BeforeEach(func() {
		flags = emu.NewFlags()
	})

	It("should start with all flags cleared", func() {
		Expect(*flags).To(Equal(emu.Flags{}))
	})

	It("should derive zero and negative from the result value", func() {
		flags.Update(0, false, false)
		Expect(flags.Zero).To(BeTrue())
		Expect(flags.Negative).To(BeFalse())

		flags.Update(0x80000000, false, false)
		Expect(flags.Zero).To(BeFalse())
		Expect(flags.Negative).To(BeTrue())

		flags.Update(1, false, false)
		Expect(flags.Zero).To(BeFalse())
		Expect(flags.Negative).To(BeFalse())
	})

	It("should copy carry and overflow verbatim", func() {
		flags.Update(42, true, true)

		Expect(flags.Carry).To(BeTrue())
		Expect(flags.Overflow).To(BeTrue())

		flags.Update(42, false, false)

		Expect(flags.Carry).To(BeFalse())
		Expect(flags.Overflow).To(BeFalse())
	})

	It("should get and set flags by name", func() {
		Expect(flags.Set(emu.FlagCarry, true)).To(Succeed())

		v, err := flags.Get(emu.FlagCarry)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeTrue())

		v, err = flags.Get(emu.FlagZero)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(BeFalse())
	})

	It("should reject unknown flag names", func() {
		_, err := flags.Get("parity")
		Expect(err).To(MatchError(emu.ErrUnknownFlag))

		err = flags.Set("parity", true)
		Expect(err).To(MatchError(emu.ErrUnknownFlag))
	})

	It("should clear all flags at once", func() {
		flags.Update(0x80000000, true, true)
		flags.Clear()

		Expect(*flags).To(Equal(emu.Flags{}))
	})

	It("should dump all four flags keyed by name", func() {
		flags.Update(0, true, false)

		Expect(flags.Dump()).To(Equal(map[string]bool{
			emu.FlagNegative: false,
			emu.FlagZero:     true,
			emu.FlagCarry:    true,
			emu.FlagOverflow: false,
		}))
	})

	It("should format in N Z C V order", func() {
		flags.Update(0x80000000, true, false)

		Expect(flags.String()).To(Equal("N=1 Z=0 C=1 V=0"))
	})
})
