package emu

import "fmt"

// Flag names accepted by Get and Set.
const (
	FlagNegative = "negative"
	FlagZero     = "zero"
	FlagCarry    = "carry"
	FlagOverflow = "overflow"
)

// Flags holds the four processor status bits. They are mutated only by the
// execute stage after an ALU-producing operation; loads, stores, and jumps
// leave them untouched.
type Flags struct {
	// Negative is set when bit 31 of the result is 1.
	Negative bool
	// Zero is set when the result is 0.
	Zero bool
	// Carry is the carry out (addition) or borrow (subtraction).
	Carry bool
	// Overflow is the signed arithmetic overflow indicator.
	Overflow bool
}

// NewFlags creates a flag set with all bits cleared.
func NewFlags() *Flags {
	return &Flags{}
}

// Update derives the flag state from an ALU result. Zero and Negative are
// computed from the value; Carry and Overflow are copied verbatim.
func (f *Flags) Update(result uint32, carry, overflow bool) {
	f.Zero = result == 0
	f.Negative = result&signBit != 0
	f.Carry = carry
	f.Overflow = overflow
}

// Clear resets all four flags to false.
func (f *Flags) Clear() {
	*f = Flags{}
}

// Get returns a flag by name. Names outside the fixed set fail with
// ErrUnknownFlag.
func (f *Flags) Get(name string) (bool, error) {
	switch name {
	case FlagNegative:
		return f.Negative, nil
	case FlagZero:
		return f.Zero, nil
	case FlagCarry:
		return f.Carry, nil
	case FlagOverflow:
		return f.Overflow, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
	}
}

// Set assigns a flag by name. Names outside the fixed set fail with
// ErrUnknownFlag.
func (f *Flags) Set(name string, value bool) error {
	switch name {
	case FlagNegative:
		f.Negative = value
	case FlagZero:
		f.Zero = value
	case FlagCarry:
		f.Carry = value
	case FlagOverflow:
		f.Overflow = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFlag, name)
	}
	return nil
}

// Dump returns the current state of all four flags keyed by name.
func (f *Flags) Dump() map[string]bool {
	return map[string]bool{
		FlagNegative: f.Negative,
		FlagZero:     f.Zero,
		FlagCarry:    f.Carry,
		FlagOverflow: f.Overflow,
	}
}

// String formats the flags in N/Z/C/V order for traces and logs.
func (f *Flags) String() string {
	return fmt.Sprintf("N=%d Z=%d C=%d V=%d",
		b2i(f.Negative), b2i(f.Zero), b2i(f.Carry), b2i(f.Overflow))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
