// Package core provides the timing estimator. It executes a program on
// the functional processor and accounts estimated cycles per step using
// the latency table and instruction/data cache models.
package core

import (
	"github.com/sarchlab/uflarisc/emu"
	"github.com/sarchlab/uflarisc/timing/cache"
	"github.com/sarchlab/uflarisc/timing/latency"
)

// Stats holds the accumulated timing estimate.
type Stats struct {
	// Cycles is the estimated total cycle count.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// FetchCycles is the portion of Cycles spent fetching instructions.
	FetchCycles uint64
	// ExecCycles is the portion spent in execution latency.
	ExecCycles uint64
	// MemCycles is the portion spent in data cache accesses.
	MemCycles uint64
	// BranchPenalties is the number of taken-branch redirect penalties.
	BranchPenalties uint64
}

// Core couples the functional processor with the timing model. Functional
// results stay bit-identical to a plain emu run; only cycle accounting is
// added on top.
type Core struct {
	proc   *emu.Processor
	table  *latency.Table
	icache *cache.Cache
	dcache *cache.Cache

	stats Stats
}

// CoreOption is a functional option for configuring the Core.
type CoreOption func(*Core)

// WithTimingConfig replaces the default latency table configuration.
func WithTimingConfig(config *latency.TimingConfig) CoreOption {
	return func(c *Core) {
		c.table = latency.NewTableWithConfig(config)
	}
}

// WithICacheConfig replaces the default instruction cache configuration.
func WithICacheConfig(config cache.Config) CoreOption {
	return func(c *Core) {
		c.icache = cache.New(config, cache.NewMemoryBacking(c.proc.Memory()))
	}
}

// WithDCacheConfig replaces the default data cache configuration.
func WithDCacheConfig(config cache.Config) CoreOption {
	return func(c *Core) {
		c.dcache = cache.New(config, cache.NewMemoryBacking(c.proc.Memory()))
	}
}

// NewCore creates a timing core around the given processor.
func NewCore(proc *emu.Processor, opts ...CoreOption) *Core {
	c := &Core{
		proc:  proc,
		table: latency.NewTable(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.icache == nil {
		c.icache = cache.New(cache.DefaultIConfig(), cache.NewMemoryBacking(proc.Memory()))
	}
	if c.dcache == nil {
		c.dcache = cache.New(cache.DefaultDConfig(), cache.NewMemoryBacking(proc.Memory()))
	}

	return c
}

// Processor returns the underlying functional processor.
func (c *Core) Processor() *emu.Processor {
	return c.proc
}

// ICache returns the instruction cache model.
func (c *Core) ICache() *cache.Cache {
	return c.icache
}

// DCache returns the data cache model.
func (c *Core) DCache() *cache.Cache {
	return c.dcache
}

// Stats returns the accumulated timing estimate.
func (c *Core) Stats() Stats {
	return c.stats
}

// Step executes one instruction and accounts its estimated cycle cost.
func (c *Core) Step() emu.StepResult {
	res := c.proc.Step()
	if res.Err != nil {
		return res
	}
	if res.Halted && res.Inst == nil {
		// Step on an already-halted processor; nothing executed.
		return res
	}

	c.account(res)
	return res
}

// Run executes until the processor halts, faults, or maxSteps instructions
// have been accounted.
func (c *Core) Run(maxSteps uint64) emu.RunResult {
	for steps := uint64(0); steps < maxSteps; steps++ {
		res := c.Step()
		if res.Err != nil || res.Halted {
			break
		}
	}

	return emu.RunResult{
		Cycles:       c.stats.Cycles,
		Instructions: c.stats.Instructions,
		Halted:       c.proc.State() == emu.StateHalted,
		PC:           c.proc.PC(),
	}
}

// Reset clears the processor, the caches, and the timing estimate.
func (c *Core) Reset() {
	c.proc.Reset()
	c.icache.Reset()
	c.dcache.Reset()
	c.stats = Stats{}
}

// account charges the cycle cost of one executed step.
func (c *Core) account(res emu.StepResult) {
	config := c.table.Config()

	// Fetch goes through the instruction cache.
	fetch := config.FetchLatency
	if access := c.icache.Read(res.PC); !access.Hit {
		fetch += access.Latency
	}

	exec := c.table.GetLatency(res.Inst)

	var mem uint64
	if c.table.IsLoadOp(res.Inst) {
		mem = c.dcache.Read(res.Inst.Imm).Latency
	} else if c.table.IsStoreOp(res.Inst) {
		mem = c.dcache.Write(res.Inst.Imm, c.proc.Memory().Read(res.Inst.Imm)).Latency
	}

	var penalty uint64
	if c.table.IsBranchOp(res.Inst) && c.proc.PC() != res.PC+1 {
		// The branch redirected the PC.
		penalty = config.BranchTakenPenalty
		c.stats.BranchPenalties++
	}

	c.stats.FetchCycles += fetch
	c.stats.ExecCycles += exec
	c.stats.MemCycles += mem
	c.stats.Cycles += fetch + exec + mem + penalty
	c.stats.Instructions++
}
