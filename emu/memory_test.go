package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/uflarisc/emu"
)

var _ = Describe("Memory", func() {
	var mem *emu.Memory

	BeforeEach(func() {
		mem = emu.NewMemory()
	})

	It("should read back written words", func() {
		mem.Write(0, 0x12345678)
		mem.Write(65535, 0xCAFEBABE)

		Expect(mem.Read(0)).To(Equal(uint32(0x12345678)))
		Expect(mem.Read(65535)).To(Equal(uint32(0xCAFEBABE)))
	})

	It("should read zero from untouched addresses", func() {
		Expect(mem.Read(1234)).To(Equal(uint32(0)))
	})

	It("should load a program image at the given start address", func() {
		err := mem.Load([]uint32{1, 2, 3}, 100)

		Expect(err).NotTo(HaveOccurred())
		Expect(mem.Read(100)).To(Equal(uint32(1)))
		Expect(mem.Read(101)).To(Equal(uint32(2)))
		Expect(mem.Read(102)).To(Equal(uint32(3)))
	})

	It("should load an image ending exactly at the top of memory", func() {
		err := mem.Load([]uint32{7, 8}, 65534)

		Expect(err).NotTo(HaveOccurred())
		Expect(mem.Read(65534)).To(Equal(uint32(7)))
		Expect(mem.Read(65535)).To(Equal(uint32(8)))
	})

	It("should reject an image extending past the address space", func() {
		err := mem.Load([]uint32{1, 2, 3}, 65534)

		Expect(err).To(MatchError(emu.ErrLoadRange))
		Expect(mem.Read(65534)).To(Equal(uint32(0)))
	})

	It("should clear every word", func() {
		mem.Write(10, 99)
		mem.Clear()

		Expect(mem.Read(10)).To(Equal(uint32(0)))
	})

	Describe("Dump", func() {
		It("should return the inclusive address range", func() {
			mem.Write(5, 50)
			mem.Write(7, 70)

			dump, err := mem.Dump(5, 7)

			Expect(err).NotTo(HaveOccurred())
			Expect(dump).To(Equal(map[uint16]uint32{
				5: 50,
				6: 0,
				7: 70,
			}))
		})

		It("should allow a single-address range", func() {
			mem.Write(9, 90)

			dump, err := mem.Dump(9, 9)

			Expect(err).NotTo(HaveOccurred())
			Expect(dump).To(Equal(map[uint16]uint32{9: 90}))
		})

		It("should reject an inverted range", func() {
			_, err := mem.Dump(10, 9)

			Expect(err).To(MatchError(emu.ErrDumpRange))
		})
	})
})
