// Package emu provides functional UFLA-RISC emulation.
package emu

import (
	"fmt"
	"math/bits"

	"github.com/sarchlab/uflarisc/insts"
)

// signBit masks bit 31, the two's-complement sign of a 32-bit word.
const signBit = 0x80000000

// shiftMask keeps the five low bits of a shift amount (0-31 positions).
const shiftMask = 0x1F

// Result is the outcome of one ALU operation.
type Result struct {
	// Value is the 32-bit result.
	Value uint32
	// Carry is the carry out (addition) or borrow (subtraction).
	Carry bool
	// Overflow is the signed arithmetic overflow indicator.
	Overflow bool
}

// ALU implements the twelve UFLA-RISC arithmetic and logic operations.
// It is stateless; one instance is shared across all steps.
type ALU struct{}

// NewALU creates a new ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Execute performs the operation selected by op on two 32-bit operands.
// Opcodes outside the twelve ALU operations fail with ErrInvalidOpcode.
func (alu *ALU) Execute(op insts.Opcode, a, b uint32) (Result, error) {
	switch op {
	case insts.OpADD:
		return alu.add(a, b), nil
	case insts.OpSUB:
		return alu.sub(a, b), nil
	case insts.OpZERO:
		return Result{}, nil
	case insts.OpXOR:
		return Result{Value: a ^ b}, nil
	case insts.OpOR:
		return Result{Value: a | b}, nil
	case insts.OpNOT:
		return Result{Value: ^a}, nil
	case insts.OpAND:
		return Result{Value: a & b}, nil
	case insts.OpSAL, insts.OpSLL:
		return Result{Value: a << (b & shiftMask)}, nil
	case insts.OpSAR:
		return Result{Value: uint32(int32(a) >> (b & shiftMask))}, nil
	case insts.OpSLR:
		return Result{Value: a >> (b & shiftMask)}, nil
	case insts.OpCOPY:
		return Result{Value: a}, nil
	default:
		return Result{}, fmt.Errorf("%w: 0x%02X", ErrInvalidOpcode, uint8(op))
	}
}

// add computes a+b with carry-out and signed-overflow detection.
func (alu *ALU) add(a, b uint32) Result {
	sum, carryOut := bits.Add32(a, b, 0)

	// Signed overflow: both operands share a sign and the result's sign
	// differs from it.
	overflow := (a&signBit) == (b&signBit) && (a&signBit) != (sum&signBit)

	return Result{
		Value:    sum,
		Carry:    carryOut == 1,
		Overflow: overflow,
	}
}

// sub computes a-b with borrow and signed-overflow detection.
func (alu *ALU) sub(a, b uint32) Result {
	diff, borrow := bits.Sub32(a, b, 0)

	// Signed overflow: operands have different signs and the result's sign
	// differs from a's.
	overflow := (a&signBit) != (b&signBit) && (a&signBit) != (diff&signBit)

	return Result{
		Value:    diff,
		Carry:    borrow == 1,
		Overflow: overflow,
	}
}
