package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds per-class latency values for the timing estimator.
// The defaults model a small single-issue educational core.
type TimingConfig struct {
	// FetchLatency is the base instruction fetch cost, paid before the
	// instruction cache adjusts it. Default: 1 cycle.
	FetchLatency uint64 `json:"fetch_latency"`

	// ALULatency is the execution latency for the twelve ALU operations.
	// Default: 1 cycle.
	ALULatency uint64 `json:"alu_latency"`

	// HalfLoadLatency is the latency for LOADH and LOADL, which only merge
	// an immediate into a register. Default: 1 cycle.
	HalfLoadLatency uint64 `json:"half_load_latency"`

	// BranchLatency is the base latency for JEQ and JNE. Default: 1 cycle.
	BranchLatency uint64 `json:"branch_latency"`

	// BranchTakenPenalty is the extra cycles paid when a branch redirects
	// the PC. Default: 2 cycles.
	BranchTakenPenalty uint64 `json:"branch_taken_penalty"`

	// JumpLatency is the latency for JAL, JR, and J. Default: 1 cycle.
	JumpLatency uint64 `json:"jump_latency"`

	// LoadLatency is the latency for LW assuming a data cache hit.
	// Default: 2 cycles.
	LoadLatency uint64 `json:"load_latency"`

	// StoreLatency is the latency for SW. Default: 1 cycle.
	StoreLatency uint64 `json:"store_latency"`

	// HaltLatency is the cost of the final HALT step. Default: 1 cycle.
	HaltLatency uint64 `json:"halt_latency"`

	// MemoryLatency is the word access latency of main memory, paid on a
	// cache miss. Default: 20 cycles.
	MemoryLatency uint64 `json:"memory_latency"`
}

// DefaultTimingConfig returns a TimingConfig with the default values.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		FetchLatency:       1,
		ALULatency:         1,
		HalfLoadLatency:    1,
		BranchLatency:      1,
		BranchTakenPenalty: 2,
		JumpLatency:        1,
		LoadLatency:        2,
		StoreLatency:       1,
		HaltLatency:        1,
		MemoryLatency:      20,
	}
}

// LoadConfig loads a TimingConfig from a JSON file. Fields absent from the
// file keep their default values.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that all base latency values are non-zero.
func (c *TimingConfig) Validate() error {
	if c.FetchLatency == 0 {
		return fmt.Errorf("fetch_latency must be > 0")
	}
	if c.ALULatency == 0 {
		return fmt.Errorf("alu_latency must be > 0")
	}
	if c.HalfLoadLatency == 0 {
		return fmt.Errorf("half_load_latency must be > 0")
	}
	if c.BranchLatency == 0 {
		return fmt.Errorf("branch_latency must be > 0")
	}
	if c.JumpLatency == 0 {
		return fmt.Errorf("jump_latency must be > 0")
	}
	if c.LoadLatency == 0 {
		return fmt.Errorf("load_latency must be > 0")
	}
	if c.StoreLatency == 0 {
		return fmt.Errorf("store_latency must be > 0")
	}
	if c.MemoryLatency == 0 {
		return fmt.Errorf("memory_latency must be > 0")
	}
	return nil
}

// Clone returns a copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	clone := *c
	return &clone
}
