package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/uflarisc/emu"
	"github.com/sarchlab/uflarisc/insts"
	"github.com/sarchlab/uflarisc/timing/core"
	"github.com/sarchlab/uflarisc/timing/latency"
)

var _ = Describe("Core", func() {
	var (
		proc *emu.Processor
		c    *core.Core
	)

	BeforeEach(func() {
		proc = emu.NewProcessor()
		c = core.NewCore(proc)
	})

	It("should keep functional results identical to a plain run", func() {
		program := []uint32{
			0x01104200,     // ADD r2, r1, r1
			insts.HaltWord, // HALT
		}
		Expect(proc.LoadProgram(program, 0)).To(Succeed())
		Expect(proc.RegFile().Write(1, 5)).To(Succeed())

		res := c.Run(emu.DefaultMaxCycles)

		Expect(res.Halted).To(BeTrue())
		Expect(proc.RegFile().Read(2)).To(Equal(uint32(10)))
	})

	It("should charge fetch, execute, and cache miss cycles", func() {
		// A single ADD at address 0: fetch misses the cold instruction
		// cache, execution costs one ALU cycle.
		Expect(proc.LoadProgram([]uint32{0x01104200}, 0)).To(Succeed())

		res := c.Step()
		Expect(res.Err).NotTo(HaveOccurred())

		config := latency.DefaultTimingConfig()
		iMiss := c.ICache().Config().MissLatency

		stats := c.Stats()
		Expect(stats.Instructions).To(Equal(uint64(1)))
		Expect(stats.FetchCycles).To(Equal(config.FetchLatency + iMiss))
		Expect(stats.ExecCycles).To(Equal(config.ALULatency))
		Expect(stats.Cycles).To(Equal(stats.FetchCycles + stats.ExecCycles))
	})

	It("should fetch faster once the line is cached", func() {
		// Four ADDs share one instruction cache line.
		program := []uint32{0x01104200, 0x01104200, 0x01104200, 0x01104200}
		Expect(proc.LoadProgram(program, 0)).To(Succeed())

		for i := 0; i < 4; i++ {
			Expect(c.Step().Err).NotTo(HaveOccurred())
		}

		icStats := c.ICache().Stats()
		Expect(icStats.Misses).To(Equal(uint64(1)))
		Expect(icStats.Hits).To(Equal(uint64(3)))
	})

	It("should send loads and stores through the data cache", func() {
		program := []uint32{
			0x11380280, // SW r7, 80
			0x10100280, // LW r2, 80
		}
		Expect(proc.LoadProgram(program, 0)).To(Succeed())
		Expect(proc.RegFile().Write(7, 0xCAFE)).To(Succeed())

		Expect(c.Step().Err).NotTo(HaveOccurred())
		Expect(c.Step().Err).NotTo(HaveOccurred())

		dcStats := c.DCache().Stats()
		Expect(dcStats.Writes).To(Equal(uint64(1)))
		Expect(dcStats.Reads).To(Equal(uint64(1)))
		// The load hits the line allocated by the store.
		Expect(dcStats.Hits).To(Equal(uint64(1)))
		Expect(c.Stats().MemCycles).To(BeNumerically(">", 0))
	})

	It("should charge the redirect penalty only for taken branches", func() {
		// JEQ r1, r2, +2 with equal operands: taken.
		Expect(proc.LoadProgram([]uint32{0x14088002}, 0)).To(Succeed())

		Expect(c.Step().Err).NotTo(HaveOccurred())
		Expect(c.Stats().BranchPenalties).To(Equal(uint64(1)))

		c.Reset()

		// JNE r1, r2, +2 with equal operands: not taken.
		Expect(proc.LoadProgram([]uint32{0x15088002}, 0)).To(Succeed())

		Expect(c.Step().Err).NotTo(HaveOccurred())
		Expect(c.Stats().BranchPenalties).To(Equal(uint64(0)))
	})

	It("should not account cycles for faulting steps", func() {
		Expect(proc.LoadProgram([]uint32{0x0D000000}, 0)).To(Succeed())

		res := c.Step()

		Expect(res.Err).To(HaveOccurred())
		Expect(c.Stats().Cycles).To(Equal(uint64(0)))
		Expect(c.Stats().Instructions).To(Equal(uint64(0)))
	})

	It("should stop accounting once halted", func() {
		Expect(proc.LoadProgram([]uint32{insts.HaltWord}, 0)).To(Succeed())

		c.Step()
		halted := c.Stats()

		c.Step()

		Expect(c.Stats()).To(Equal(halted))
	})

	It("should honor a custom timing configuration", func() {
		config := latency.DefaultTimingConfig()
		config.ALULatency = 7
		c = core.NewCore(proc, core.WithTimingConfig(config))

		Expect(proc.LoadProgram([]uint32{0x01104200}, 0)).To(Succeed())

		Expect(c.Step().Err).NotTo(HaveOccurred())

		Expect(c.Stats().ExecCycles).To(Equal(uint64(7)))
	})

	It("should reset the estimate together with the processor", func() {
		Expect(proc.LoadProgram([]uint32{0x01104200}, 0)).To(Succeed())
		Expect(c.Step().Err).NotTo(HaveOccurred())

		c.Reset()

		Expect(c.Stats()).To(Equal(core.Stats{}))
		Expect(proc.PC()).To(Equal(uint16(0)))
	})
})
