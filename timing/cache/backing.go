package cache

import (
	"github.com/sarchlab/uflarisc/emu"
)

// MemoryBacking wraps emu.Memory as a BackingStore.
type MemoryBacking struct {
	memory *emu.Memory
}

// NewMemoryBacking creates a new MemoryBacking adapter.
func NewMemoryBacking(memory *emu.Memory) *MemoryBacking {
	return &MemoryBacking{memory: memory}
}

// ReadBlock fills words with consecutive memory words starting at addr.
// Addresses wrap at the top of memory like the processor's PC.
func (m *MemoryBacking) ReadBlock(addr uint16, words []uint32) {
	for i := range words {
		words[i] = m.memory.Read(addr + uint16(i))
	}
}

// WriteBlock stores consecutive memory words starting at addr.
func (m *MemoryBacking) WriteBlock(addr uint16, words []uint32) {
	for i, w := range words {
		m.memory.Write(addr+uint16(i), w)
	}
}
