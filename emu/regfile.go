package emu

import "fmt"

// NumRegs is the number of general-purpose registers.
const NumRegs = 32

// LinkRegister receives the return address written by JAL.
const LinkRegister = 31

// RegFile represents the bank of 32 general-purpose 32-bit registers.
// Register 0 is hardwired to zero: it always reads as 0 and silently
// discards writes.
type RegFile struct {
	regs [NumRegs]uint32
}

// NewRegFile creates a register file with all registers zeroed.
func NewRegFile() *RegFile {
	return &RegFile{}
}

// Read returns the value of a register. Register 0 always reads as 0.
// Indices above 31 fail with ErrRegisterRange.
func (r *RegFile) Read(index uint8) (uint32, error) {
	if index >= NumRegs {
		return 0, fmt.Errorf("%w: %d", ErrRegisterRange, index)
	}
	if index == 0 {
		return 0, nil
	}
	return r.regs[index], nil
}

// Write stores a value into a register. Writes to register 0 are discarded.
// Indices above 31 fail with ErrRegisterRange.
func (r *RegFile) Write(index uint8, value uint32) error {
	if index >= NumRegs {
		return fmt.Errorf("%w: %d", ErrRegisterRange, index)
	}
	if index == 0 {
		return nil
	}
	r.regs[index] = value
	return nil
}

// Clear zeroes every register.
func (r *RegFile) Clear() {
	r.regs = [NumRegs]uint32{}
}

// Dump returns a copy of the register bank keyed by index. Register 0 is
// reported as 0.
func (r *RegFile) Dump() map[uint8]uint32 {
	dump := make(map[uint8]uint32, NumRegs)
	for i := uint8(0); i < NumRegs; i++ {
		dump[i] = r.regs[i]
	}
	dump[0] = 0
	return dump
}
