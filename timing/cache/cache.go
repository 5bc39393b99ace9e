// Package cache models small word-addressed caches for the timing
// estimator, using Akita cache components for tag and replacement state.
package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"
)

// Config holds cache configuration parameters. All sizes are in 32-bit
// words, matching the word-addressed memory.
type Config struct {
	// Size is the cache capacity in words.
	Size int
	// Associativity is the number of ways per set.
	Associativity int
	// BlockSize is the cache line size in words.
	BlockSize int
	// HitLatency in cycles.
	HitLatency uint64
	// MissLatency in cycles, including the memory access.
	MissLatency uint64
}

// DefaultIConfig returns the default instruction cache configuration:
// 256 words, 2-way, 4-word lines.
func DefaultIConfig() Config {
	return Config{
		Size:          256,
		Associativity: 2,
		BlockSize:     4,
		HitLatency:    1,
		MissLatency:   20,
	}
}

// DefaultDConfig returns the default data cache configuration:
// 256 words, 4-way, 4-word lines.
func DefaultDConfig() Config {
	return Config{
		Size:          256,
		Associativity: 4,
		BlockSize:     4,
		HitLatency:    1,
		MissLatency:   20,
	}
}

// AccessResult contains the result of a cache access.
type AccessResult struct {
	// Hit indicates whether the access was a cache hit.
	Hit bool
	// Latency is the number of cycles this access takes.
	Latency uint64
	// Data is the word read, for read accesses.
	Data uint32
	// Evicted is true if a valid block was evicted.
	Evicted bool
	// EvictedAddr is the word address of the evicted block.
	EvictedAddr uint16
}

// Statistics holds cache performance counters.
type Statistics struct {
	Reads      uint64
	Writes     uint64
	Hits       uint64
	Misses     uint64
	Evictions  uint64
	Writebacks uint64
}

// BackingStore is the next level in the memory hierarchy. Block transfers
// are whole cache lines.
type BackingStore interface {
	// ReadBlock fills words with the line starting at the word address.
	ReadBlock(addr uint16, words []uint32)
	// WriteBlock stores a line starting at the word address.
	WriteBlock(addr uint16, words []uint32)
}

// Cache is a write-back, write-allocate cache over word addresses. The
// Akita directory tracks tags, validity, and LRU state; the data lives in
// a flat per-block store.
type Cache struct {
	config    Config
	directory *akitacache.DirectoryImpl

	// dataStore holds line contents, indexed by setID*ways + wayID.
	dataStore [][]uint32

	backing BackingStore
	stats   Statistics
}

// New creates a cache with the given configuration and backing store.
func New(config Config, backing BackingStore) *Cache {
	numSets := config.Size / (config.Associativity * config.BlockSize)
	totalBlocks := numSets * config.Associativity

	dataStore := make([][]uint32, totalBlocks)
	for i := range dataStore {
		dataStore[i] = make([]uint32, config.BlockSize)
	}

	return &Cache{
		config: config,
		directory: akitacache.NewDirectory(
			numSets,
			config.Associativity,
			config.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
		dataStore: dataStore,
		backing:   backing,
	}
}

// Config returns the cache configuration.
func (c *Cache) Config() Config {
	return c.config
}

// Stats returns the performance counters.
func (c *Cache) Stats() Statistics {
	return c.stats
}

// ResetStats clears the performance counters.
func (c *Cache) ResetStats() {
	c.stats = Statistics{}
}

// blockIndex computes the index into dataStore for a block.
func (c *Cache) blockIndex(block *akitacache.Block) int {
	return block.SetID*c.config.Associativity + block.WayID
}

// blockAddr aligns a word address down to its line boundary.
func (c *Cache) blockAddr(addr uint16) uint64 {
	bs := uint64(c.config.BlockSize)
	return uint64(addr) / bs * bs
}

// Read performs a cache read of one word.
func (c *Cache) Read(addr uint16) AccessResult {
	c.stats.Reads++

	blockAddr := c.blockAddr(addr)
	block := c.directory.Lookup(0, blockAddr)

	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)

		offset := uint64(addr) - blockAddr
		return AccessResult{
			Hit:     true,
			Latency: c.config.HitLatency,
			Data:    c.dataStore[c.blockIndex(block)][offset],
		}
	}

	c.stats.Misses++
	return c.handleMiss(addr, false, 0)
}

// Write performs a cache write of one word. On a miss the line is fetched
// first, then written.
func (c *Cache) Write(addr uint16, data uint32) AccessResult {
	c.stats.Writes++

	blockAddr := c.blockAddr(addr)
	block := c.directory.Lookup(0, blockAddr)

	if block != nil && block.IsValid {
		c.stats.Hits++
		c.directory.Visit(block)

		offset := uint64(addr) - blockAddr
		c.dataStore[c.blockIndex(block)][offset] = data
		block.IsDirty = true

		return AccessResult{
			Hit:     true,
			Latency: c.config.HitLatency,
		}
	}

	c.stats.Misses++
	return c.handleMiss(addr, true, data)
}

// handleMiss fetches the line from the backing store into a victim way.
func (c *Cache) handleMiss(addr uint16, isWrite bool, writeData uint32) AccessResult {
	result := AccessResult{
		Hit:     false,
		Latency: c.config.MissLatency,
	}

	blockAddr := c.blockAddr(addr)

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		return result
	}

	victimData := c.dataStore[c.blockIndex(victim)]

	if victim.IsValid {
		c.stats.Evictions++
		result.Evicted = true
		result.EvictedAddr = uint16(victim.Tag)

		if victim.IsDirty && c.backing != nil {
			c.stats.Writebacks++
			c.backing.WriteBlock(uint16(victim.Tag), victimData)
		}
	}

	if c.backing != nil {
		c.backing.ReadBlock(uint16(blockAddr), victimData)
	} else {
		for i := range victimData {
			victimData[i] = 0
		}
	}

	// The tag stores the line-aligned word address.
	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false

	offset := uint64(addr) - blockAddr
	if isWrite {
		victimData[offset] = writeData
		victim.IsDirty = true
	} else {
		result.Data = victimData[offset]
	}

	c.directory.Visit(victim)

	return result
}

// Invalidate marks the line holding addr as invalid without writeback.
func (c *Cache) Invalidate(addr uint16) {
	block := c.directory.Lookup(0, c.blockAddr(addr))
	if block != nil && block.IsValid {
		block.IsValid = false
		block.IsDirty = false
	}
}

// Flush writes back all dirty lines and invalidates everything.
func (c *Cache) Flush() {
	for _, set := range c.directory.GetSets() {
		for _, block := range set.Blocks {
			if block.IsValid && block.IsDirty && c.backing != nil {
				c.stats.Writebacks++
				c.backing.WriteBlock(uint16(block.Tag), c.dataStore[c.blockIndex(block)])
			}
			block.IsValid = false
			block.IsDirty = false
		}
	}
}

// Reset invalidates all lines without writeback and clears the counters.
func (c *Cache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}
