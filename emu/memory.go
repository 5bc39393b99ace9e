package emu

import "fmt"

// MemorySize is the number of addressable 32-bit words (16-bit addresses).
const MemorySize = 65536

// Memory represents the flat word-addressed store: 65536 words of 32 bits.
// Addresses are uint16, so a single-word access can never be out of range;
// only multi-word operations (Load) can overflow the address space.
type Memory struct {
	words [MemorySize]uint32
}

// NewMemory creates a memory with every word zeroed.
func NewMemory() *Memory {
	return &Memory{}
}

// Read returns the 32-bit word at the given address.
func (m *Memory) Read(addr uint16) uint32 {
	return m.words[addr]
}

// Write stores a 32-bit word at the given address.
func (m *Memory) Write(addr uint16, value uint32) {
	m.words[addr] = value
}

// Load copies a program image into memory starting at the given address.
// It fails with ErrLoadRange when the image would extend past address
// 65535; nothing is written in that case.
func (m *Memory) Load(words []uint32, start uint16) error {
	if int(start)+len(words) > MemorySize {
		return fmt.Errorf("%w: %d words at %d", ErrLoadRange, len(words), start)
	}
	for i, w := range words {
		m.words[int(start)+i] = w
	}
	return nil
}

// Clear zeroes every word.
func (m *Memory) Clear() {
	m.words = [MemorySize]uint32{}
}

// Dump returns a copy of the words in the inclusive range [start, end],
// keyed by address. It fails with ErrDumpRange when start > end.
func (m *Memory) Dump(start, end uint16) (map[uint16]uint32, error) {
	if start > end {
		return nil, fmt.Errorf("%w: start %d > end %d", ErrDumpRange, start, end)
	}
	dump := make(map[uint16]uint32, int(end)-int(start)+1)
	for addr := int(start); addr <= int(end); addr++ {
		dump[uint16(addr)] = m.words[addr]
	}
	return dump, nil
}
