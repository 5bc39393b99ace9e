package emu

import (
	"fmt"

	"github.com/sarchlab/uflarisc/insts"
)

// ALUSrc selects the source of the second ALU operand.
type ALUSrc uint8

// ALU operand sources.
const (
	ALUSrcReg ALUSrc = iota // second operand comes from the register file
	ALUSrcImm               // second operand comes from the immediate field
)

// String returns the source name.
func (s ALUSrc) String() string {
	if s == ALUSrcImm {
		return "imm"
	}
	return "reg"
}

// PCSrc selects the source of the next program counter.
type PCSrc uint8

// Next-PC sources.
const (
	PCSrcInc    PCSrc = iota // incremented PC (sequential execution)
	PCSrcJump                // jump target
	PCSrcBranch              // PC-relative branch target
	PCSrcHalt                // execution stops
)

// String returns the source name.
func (s PCSrc) String() string {
	switch s {
	case PCSrcJump:
		return "jump"
	case PCSrcBranch:
		return "branch"
	case PCSrcHalt:
		return "halt"
	default:
		return "inc"
	}
}

// ControlSignals describes what each stage must do for one instruction.
// A fresh record is produced per decode; it is never persisted.
type ControlSignals struct {
	// ALUOp selects the ALU operation, or OpNone when the ALU is bypassed.
	ALUOp insts.Opcode

	RegWrite bool // write-back commits a value to the destination register
	MemRead  bool // execute reads data memory
	MemWrite bool // execute writes data memory
	MemToReg bool // the memory word, not the ALU result, is written back
	Branch   bool // conditional branch resolution in execute
	Jump     bool // unconditional control transfer in execute
	Halt     bool // the processor stops after this instruction

	ALUSrc ALUSrc // source of the second ALU operand
	PCSrc  PCSrc  // source of the next PC
}

// ControlUnit generates control signals from decoded instructions. It is a
// pure function of the opcode and format, with no state.
type ControlUnit struct{}

// NewControlUnit creates a new control unit.
func NewControlUnit() *ControlUnit {
	return &ControlUnit{}
}

// Signals produces the control-signal record for a decoded instruction.
// Opcode/format combinations outside the instruction set fail with
// ErrUnknownSignals.
func (c *ControlUnit) Signals(inst *insts.Instruction) (ControlSignals, error) {
	// Defaults: everything deasserted, ALU source reg, PC increments.
	signals := ControlSignals{ALUOp: insts.OpNone}

	switch {
	case inst.Format == insts.FormatHALT:
		signals.Halt = true
		signals.PCSrc = PCSrcHalt

	case inst.Op.IsALU():
		signals.ALUOp = inst.Op
		signals.RegWrite = true

	case inst.Op == insts.OpLOADH || inst.Op == insts.OpLOADL:
		signals.RegWrite = true
		signals.ALUSrc = ALUSrcImm

	case inst.Op == insts.OpLW:
		signals.MemRead = true
		signals.RegWrite = true
		signals.MemToReg = true
		signals.ALUSrc = ALUSrcImm

	case inst.Op == insts.OpSW:
		signals.MemWrite = true
		signals.ALUSrc = ALUSrcImm

	case inst.Op == insts.OpJAL:
		// The incremented PC is written to the link register.
		signals.Jump = true
		signals.RegWrite = true
		signals.PCSrc = PCSrcJump

	case inst.Op == insts.OpJR, inst.Op == insts.OpJ:
		signals.Jump = true
		signals.PCSrc = PCSrcJump

	case inst.Op.IsBranch():
		signals.Branch = true
		signals.PCSrc = PCSrcBranch

	default:
		return ControlSignals{}, fmt.Errorf("%w: 0x%02X (format %d)",
			ErrUnknownSignals, uint8(inst.Op), inst.Format)
	}

	return signals, nil
}
