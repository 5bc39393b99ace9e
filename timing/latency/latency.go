// Package latency provides the per-instruction timing model used by the
// cycle estimator. Latency values are configurable via TimingConfig.
package latency

import (
	"github.com/sarchlab/uflarisc/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a latency table with the default timing values.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a latency table with a custom configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the execution latency in cycles for the given
// instruction, not counting cache effects or branch redirect penalties.
func (t *Table) GetLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}

	switch {
	case inst.Format == insts.FormatHALT:
		return t.config.HaltLatency

	case inst.Op.IsALU():
		return t.config.ALULatency

	case inst.Op == insts.OpLOADH, inst.Op == insts.OpLOADL:
		return t.config.HalfLoadLatency

	case inst.Op == insts.OpLW:
		return t.config.LoadLatency

	case inst.Op == insts.OpSW:
		return t.config.StoreLatency

	case inst.Op.IsBranch():
		return t.config.BranchLatency

	case inst.Op.IsJump():
		return t.config.JumpLatency

	default:
		return 1
	}
}

// IsMemoryOp returns true if the instruction accesses data memory.
func (t *Table) IsMemoryOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op == insts.OpLW || inst.Op == insts.OpSW
}

// IsLoadOp returns true if the instruction is LW.
func (t *Table) IsLoadOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op == insts.OpLW
}

// IsStoreOp returns true if the instruction is SW.
func (t *Table) IsStoreOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op == insts.OpSW
}

// IsBranchOp returns true if the instruction is JEQ or JNE.
func (t *Table) IsBranchOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op.IsBranch()
}

// IsJumpOp returns true if the instruction is JAL, JR, or J.
func (t *Table) IsJumpOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op.IsJump()
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
