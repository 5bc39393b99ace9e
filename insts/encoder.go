package insts

import (
	"errors"
	"fmt"
)

// Encoding errors.
var (
	ErrBadRegister = errors.New("register index out of range")
	ErrBadOffset   = errors.New("branch offset out of range")
	ErrBadFormat   = errors.New("opcode does not match instruction format")
)

// Branch offset limits for the 14-bit two's-complement field.
const (
	MinBranchOffset = -8192
	MaxBranchOffset = 8191
)

// Encoder encodes instructions back into UFLA-RISC machine words. It is
// the exact inverse of Decoder for every in-range field combination.
type Encoder struct{}

// NewEncoder creates a new UFLA-RISC instruction encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode produces the 32-bit machine word for an instruction. Register
// indices above 31 and branch offsets outside the 14-bit signed range fail;
// so does an instruction whose opcode disagrees with its format.
func (e *Encoder) Encode(inst *Instruction) (uint32, error) {
	if inst.Format == FormatHALT {
		return HaltWord, nil
	}

	if inst.Op.Format() != inst.Format {
		return 0, fmt.Errorf("%w: %v is not %v",
			ErrBadFormat, inst.Op, formatName(inst.Format))
	}

	switch inst.Format {
	case FormatR:
		if err := checkRegs(inst.Ra, inst.Rb, inst.Rc); err != nil {
			return 0, err
		}
		return uint32(inst.Op)<<shiftOpcode |
			uint32(inst.Ra)<<shiftRa |
			uint32(inst.Rb)<<shiftRb |
			uint32(inst.Rc)<<shiftRc, nil

	case FormatI:
		if err := checkRegs(inst.Ra); err != nil {
			return 0, err
		}
		return uint32(inst.Op)<<shiftOpcode |
			uint32(inst.Ra)<<shiftRa |
			uint32(inst.Imm)<<shiftImm, nil

	case FormatJ:
		return uint32(inst.Op)<<shiftOpcode |
			uint32(inst.Addr)<<shiftAddr, nil

	case FormatJR:
		if err := checkRegs(inst.Rc); err != nil {
			return 0, err
		}
		return uint32(inst.Op)<<shiftOpcode |
			uint32(inst.Rc)<<shiftRcJR, nil

	case FormatB:
		if err := checkRegs(inst.Ra, inst.Rb); err != nil {
			return 0, err
		}
		if inst.Offset < MinBranchOffset || inst.Offset > MaxBranchOffset {
			return 0, fmt.Errorf("%w: %d", ErrBadOffset, inst.Offset)
		}
		return uint32(inst.Op)<<shiftOpcode |
			uint32(inst.Ra)<<shiftRa |
			uint32(inst.Rb)<<shiftRb |
			uint32(inst.Offset)&maskOffset, nil

	default:
		return 0, fmt.Errorf("%w: 0x%02X", ErrUnknownOpcode, uint8(inst.Op))
	}
}

// checkRegs validates 5-bit register indices.
func checkRegs(regs ...uint8) error {
	for _, r := range regs {
		if r > 31 {
			return fmt.Errorf("%w: %d", ErrBadRegister, r)
		}
	}
	return nil
}

// formatName names a format for error messages.
func formatName(f Format) string {
	switch f {
	case FormatR:
		return "R-type"
	case FormatI:
		return "I-type"
	case FormatJ:
		return "J-type"
	case FormatJR:
		return "JR-type"
	case FormatB:
		return "B-type"
	case FormatHALT:
		return "HALT"
	default:
		return "unknown"
	}
}
