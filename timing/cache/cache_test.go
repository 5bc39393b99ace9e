package cache_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/uflarisc/emu"
	"github.com/sarchlab/uflarisc/timing/cache"
)

var _ = Describe("Cache", func() {
	var (
		mem     *emu.Memory
		backing *cache.MemoryBacking
		c       *cache.Cache
	)

	BeforeEach(func() {
		mem = emu.NewMemory()
		backing = cache.NewMemoryBacking(mem)
		c = cache.New(cache.DefaultDConfig(), backing)
	})

	Describe("Read", func() {
		It("should miss on the first access and hit afterwards", func() {
			mem.Write(100, 0xDEADBEEF)

			first := c.Read(100)
			Expect(first.Hit).To(BeFalse())
			Expect(first.Latency).To(Equal(uint64(20)))
			Expect(first.Data).To(Equal(uint32(0xDEADBEEF)))

			second := c.Read(100)
			Expect(second.Hit).To(BeTrue())
			Expect(second.Latency).To(Equal(uint64(1)))
			Expect(second.Data).To(Equal(uint32(0xDEADBEEF)))
		})

		It("should hit on other words of a fetched line", func() {
			mem.Write(100, 1)
			mem.Write(101, 2)

			c.Read(100)
			res := c.Read(101)

			Expect(res.Hit).To(BeTrue())
			Expect(res.Data).To(Equal(uint32(2)))
		})

		It("should track statistics", func() {
			c.Read(0)
			c.Read(0)
			c.Read(0)

			stats := c.Stats()
			Expect(stats.Reads).To(Equal(uint64(3)))
			Expect(stats.Misses).To(Equal(uint64(1)))
			Expect(stats.Hits).To(Equal(uint64(2)))
		})
	})

	Describe("Write", func() {
		It("should allocate the line on a write miss", func() {
			res := c.Write(40, 0x1234)
			Expect(res.Hit).To(BeFalse())

			read := c.Read(40)
			Expect(read.Hit).To(BeTrue())
			Expect(read.Data).To(Equal(uint32(0x1234)))
		})

		It("should keep dirty data out of memory until writeback", func() {
			c.Write(40, 0x1234)

			Expect(mem.Read(40)).To(Equal(uint32(0)))

			c.Flush()

			Expect(mem.Read(40)).To(Equal(uint32(0x1234)))
		})
	})

	Describe("Eviction", func() {
		It("should evict and write back a dirty line when a set fills", func() {
			cfg := cache.Config{
				Size:          8,
				Associativity: 1,
				BlockSize:     4,
				HitLatency:    1,
				MissLatency:   20,
			}
			small := cache.New(cfg, backing)

			// Two sets of one 4-word way each. Addresses 0 and 8 map to
			// set 0, so the second access evicts the first line.
			small.Write(0, 0xAA)
			res := small.Read(8)

			Expect(res.Evicted).To(BeTrue())
			Expect(res.EvictedAddr).To(Equal(uint16(0)))
			Expect(mem.Read(0)).To(Equal(uint32(0xAA)))
			Expect(small.Stats().Writebacks).To(Equal(uint64(1)))
		})
	})

	Describe("Invalidate", func() {
		It("should force the next access to miss", func() {
			c.Read(100)
			c.Invalidate(100)

			res := c.Read(100)
			Expect(res.Hit).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		It("should drop all lines and counters without writeback", func() {
			c.Write(40, 0x1234)
			c.Reset()

			Expect(mem.Read(40)).To(Equal(uint32(0)))
			Expect(c.Stats()).To(Equal(cache.Statistics{}))

			res := c.Read(40)
			Expect(res.Hit).To(BeFalse())
		})
	})
})
