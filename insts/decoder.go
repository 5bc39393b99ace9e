package insts

import (
	"errors"
	"fmt"
)

// HaltWord is the reserved all-ones instruction word. It denotes HALT and
// is recognized before any field extraction.
const HaltWord uint32 = 0xFFFFFFFF

// ErrUnknownOpcode is returned when an instruction word carries an opcode
// with no entry in the opcode-to-format table.
var ErrUnknownOpcode = errors.New("unrecognized opcode")

// Opcode represents a UFLA-RISC opcode, the 8-bit field in bits [31:24] of
// an instruction word. The constant values match the wire encoding.
type Opcode uint8

// UFLA-RISC opcodes.
const (
	// OpNone marks the absence of an operation, e.g. in control signals for
	// instructions that bypass the ALU. It is not a valid encoding.
	OpNone Opcode = 0x00

	// R-type (ALU)
	OpADD  Opcode = 0x01
	OpSUB  Opcode = 0x02
	OpZERO Opcode = 0x03
	OpXOR  Opcode = 0x04
	OpOR   Opcode = 0x05
	OpNOT  Opcode = 0x06
	OpAND  Opcode = 0x07
	OpSAL  Opcode = 0x08
	OpSAR  Opcode = 0x09
	OpSLL  Opcode = 0x0A
	OpSLR  Opcode = 0x0B
	OpCOPY Opcode = 0x0C

	// I-type (immediate)
	OpLOADH Opcode = 0x0E
	OpLOADL Opcode = 0x0F
	OpLW    Opcode = 0x10
	OpSW    Opcode = 0x11

	// Jumps
	OpJAL Opcode = 0x12
	OpJR  Opcode = 0x13
	OpJ   Opcode = 0x16

	// Conditional branches
	OpJEQ Opcode = 0x14
	OpJNE Opcode = 0x15
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // three-register ALU operation
	FormatI              // register + 16-bit immediate
	FormatJ              // 16-bit absolute address
	FormatJR             // jump to register
	FormatB              // two registers + 14-bit signed offset
	FormatHALT           // the all-ones sentinel word
)

// Field masks and shifts. Bit ranges are MSB-first over the 32-bit word.
const (
	maskOpcode = 0xFF000000 // [31:24]
	maskRa     = 0x00F80000 // [23:19]
	maskRb     = 0x0007C000 // [18:14]
	maskRc     = 0x00003E00 // [13:9]
	maskRcJR   = 0x00F80000 // [23:19] for JR
	maskImm    = 0x0007FFF8 // [18:3]
	maskAddr   = 0x00FFFF00 // [23:8]
	maskOffset = 0x00003FFF // [13:0]

	shiftOpcode = 24
	shiftRa     = 19
	shiftRb     = 14
	shiftRc     = 9
	shiftRcJR   = 19
	shiftImm    = 3
	shiftAddr   = 8

	offsetSignBit = 0x2000     // bit 13 of the 14-bit offset field
	offsetSignExt = 0xFFFFC000 // extension for negative 14-bit offsets
)

// Format returns the encoding format of the opcode. This is the single
// opcode-to-format table shared by the decoder, the control unit, and the
// ALU; opcodes outside the instruction set map to FormatUnknown.
func (op Opcode) Format() Format {
	switch op {
	case OpADD, OpSUB, OpZERO, OpXOR, OpOR, OpNOT, OpAND,
		OpSAL, OpSAR, OpSLL, OpSLR, OpCOPY:
		return FormatR
	case OpLOADH, OpLOADL, OpLW, OpSW:
		return FormatI
	case OpJAL, OpJ:
		return FormatJ
	case OpJR:
		return FormatJR
	case OpJEQ, OpJNE:
		return FormatB
	default:
		return FormatUnknown
	}
}

// IsALU reports whether the opcode is one of the twelve ALU operations.
func (op Opcode) IsALU() bool {
	return op.Format() == FormatR
}

// IsBranch reports whether the opcode is a conditional branch (JEQ, JNE).
func (op Opcode) IsBranch() bool {
	return op == OpJEQ || op == OpJNE
}

// IsJump reports whether the opcode is an unconditional jump (JAL, JR, J).
func (op Opcode) IsJump() bool {
	return op == OpJAL || op == OpJR || op == OpJ
}

// IsMemory reports whether the opcode accesses data memory (LW, SW).
func (op Opcode) IsMemory() bool {
	return op == OpLW || op == OpSW
}

// String returns the assembly mnemonic of the opcode.
func (op Opcode) String() string {
	switch op {
	case OpADD:
		return "ADD"
	case OpSUB:
		return "SUB"
	case OpZERO:
		return "ZERO"
	case OpXOR:
		return "XOR"
	case OpOR:
		return "OR"
	case OpNOT:
		return "NOT"
	case OpAND:
		return "AND"
	case OpSAL:
		return "SAL"
	case OpSAR:
		return "SAR"
	case OpSLL:
		return "SLL"
	case OpSLR:
		return "SLR"
	case OpCOPY:
		return "COPY"
	case OpLOADH:
		return "LOADH"
	case OpLOADL:
		return "LOADL"
	case OpLW:
		return "LW"
	case OpSW:
		return "SW"
	case OpJAL:
		return "JAL"
	case OpJR:
		return "JR"
	case OpJ:
		return "J"
	case OpJEQ:
		return "JEQ"
	case OpJNE:
		return "JNE"
	default:
		return fmt.Sprintf("OP(0x%02X)", uint8(op))
	}
}

// Instruction represents a decoded UFLA-RISC instruction. Format tags which
// fields are meaningful; fields absent from the format are left zero.
type Instruction struct {
	Op     Opcode // Operation code (OpNone for HALT)
	Format Format // Encoding format

	// Register fields (5 bits each)
	Ra uint8 // destination (R, I) or first compare source (B)
	Rb uint8 // first ALU source (R) or second compare source (B)
	Rc uint8 // second ALU source (R) or jump target register (JR)

	// Imm is the 16-bit immediate of I-type instructions.
	Imm uint16

	// Addr is the 16-bit absolute address of J-type instructions.
	Addr uint16

	// Offset is the branch displacement of B-type instructions,
	// sign-extended from its 14-bit encoding.
	Offset int32
}

// String returns the instruction in assembly form, e.g. "ADD r2, r1, r1".
func (i *Instruction) String() string {
	switch i.Format {
	case FormatR:
		return fmt.Sprintf("%v r%d, r%d, r%d", i.Op, i.Ra, i.Rb, i.Rc)
	case FormatI:
		return fmt.Sprintf("%v r%d, %d", i.Op, i.Ra, i.Imm)
	case FormatJ:
		return fmt.Sprintf("%v %d", i.Op, i.Addr)
	case FormatJR:
		return fmt.Sprintf("%v r%d", i.Op, i.Rc)
	case FormatB:
		return fmt.Sprintf("%v r%d, r%d, %d", i.Op, i.Ra, i.Rb, i.Offset)
	case FormatHALT:
		return "HALT"
	default:
		return fmt.Sprintf("UNKNOWN(0x%02X)", uint8(i.Op))
	}
}

// Decoder decodes UFLA-RISC machine words into instructions.
type Decoder struct{}

// NewDecoder creates a new UFLA-RISC instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit UFLA-RISC instruction word. The HALT sentinel is
// checked before any field extraction. Words whose opcode has no entry in
// the format table fail with ErrUnknownOpcode.
func (d *Decoder) Decode(word uint32) (*Instruction, error) {
	if word == HaltWord {
		return &Instruction{Op: OpNone, Format: FormatHALT}, nil
	}

	op := Opcode((word & maskOpcode) >> shiftOpcode)

	switch op.Format() {
	case FormatR:
		return d.decodeR(word, op), nil
	case FormatI:
		return d.decodeI(word, op), nil
	case FormatJ:
		return d.decodeJ(word, op), nil
	case FormatJR:
		return d.decodeJR(word, op), nil
	case FormatB:
		return d.decodeB(word, op), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02X (word 0x%08X)",
			ErrUnknownOpcode, uint8(op), word)
	}
}

// decodeR decodes an R-type instruction: opcode | ra | rb | rc.
func (d *Decoder) decodeR(word uint32, op Opcode) *Instruction {
	return &Instruction{
		Op:     op,
		Format: FormatR,
		Ra:     uint8((word & maskRa) >> shiftRa),
		Rb:     uint8((word & maskRb) >> shiftRb),
		Rc:     uint8((word & maskRc) >> shiftRc),
	}
}

// decodeI decodes an I-type instruction: opcode | ra | immediate.
func (d *Decoder) decodeI(word uint32, op Opcode) *Instruction {
	return &Instruction{
		Op:     op,
		Format: FormatI,
		Ra:     uint8((word & maskRa) >> shiftRa),
		Imm:    uint16((word & maskImm) >> shiftImm),
	}
}

// decodeJ decodes a J-type instruction: opcode | address.
func (d *Decoder) decodeJ(word uint32, op Opcode) *Instruction {
	return &Instruction{
		Op:     op,
		Format: FormatJ,
		Addr:   uint16((word & maskAddr) >> shiftAddr),
	}
}

// decodeJR decodes a JR-type instruction: opcode | rc.
func (d *Decoder) decodeJR(word uint32, op Opcode) *Instruction {
	return &Instruction{
		Op:     op,
		Format: FormatJR,
		Rc:     uint8((word & maskRcJR) >> shiftRcJR),
	}
}

// decodeB decodes a B-type instruction: opcode | ra | rb | offset.
// The 14-bit offset is sign-extended here so callers always receive a
// full-width signed displacement ready for addition to the PC.
func (d *Decoder) decodeB(word uint32, op Opcode) *Instruction {
	offset := word & maskOffset
	if offset&offsetSignBit != 0 {
		offset |= offsetSignExt
	}

	return &Instruction{
		Op:     op,
		Format: FormatB,
		Ra:     uint8((word & maskRa) >> shiftRa),
		Rb:     uint8((word & maskRb) >> shiftRb),
		Offset: int32(offset),
	}
}
