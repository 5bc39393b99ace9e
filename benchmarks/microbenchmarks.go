// Package benchmarks provides small UFLA-RISC workloads used to sanity
// check the emulator and to exercise the timing estimator.
package benchmarks

import (
	"fmt"

	"github.com/sarchlab/uflarisc/emu"
	"github.com/sarchlab/uflarisc/insts"
)

// Benchmark is one self-contained workload.
type Benchmark struct {
	// Name identifies the benchmark in reports.
	Name string

	// Description says what the workload stresses.
	Description string

	// Program is the instruction stream, ending in HALT.
	Program []uint32

	// Origin is the load address of the program.
	Origin uint16

	// Setup primes registers or memory before the run.
	Setup func(p *emu.Processor)

	// Check validates the architectural state after the run. It returns
	// an error describing the first mismatch.
	Check func(p *emu.Processor) error
}

// GetMicrobenchmarks returns the standard workload set.
func GetMicrobenchmarks() []Benchmark {
	return []Benchmark{
		arithmeticSequential(),
		countdownLoop(),
		halfWordPacking(),
		memorySweep(),
		branchTaken(),
		jumpAndLink(),
	}
}

var encoder = insts.NewEncoder()

// word encodes one instruction, panicking on builder mistakes. Benchmarks
// are static programs, so a bad encoding is a programming error.
func word(inst insts.Instruction) uint32 {
	w, err := encoder.Encode(&inst)
	if err != nil {
		panic(fmt.Sprintf("benchmarks: %v: %v", &inst, err))
	}
	return w
}

func opR(op insts.Opcode, ra, rb, rc uint8) uint32 {
	return word(insts.Instruction{Op: op, Format: insts.FormatR, Ra: ra, Rb: rb, Rc: rc})
}

func opI(op insts.Opcode, ra uint8, imm uint16) uint32 {
	return word(insts.Instruction{Op: op, Format: insts.FormatI, Ra: ra, Imm: imm})
}

func opB(op insts.Opcode, ra, rb uint8, offset int32) uint32 {
	return word(insts.Instruction{Op: op, Format: insts.FormatB, Ra: ra, Rb: rb, Offset: offset})
}

func opJ(addr uint16) uint32 {
	return word(insts.Instruction{Op: insts.OpJAL, Format: insts.FormatJ, Addr: addr})
}

func checkReg(p *emu.Processor, index uint8, want uint32) error {
	got, err := p.RegFile().Read(index)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("r%d = 0x%08X, want 0x%08X", index, got, want)
	}
	return nil
}

// arithmeticSequential stresses ALU throughput with independent adds.
func arithmeticSequential() Benchmark {
	program := []uint32{
		opI(insts.OpLOADL, 1, 1),
	}
	// Ten dependent doublings: r2 ends at 2^10.
	program = append(program, opR(insts.OpADD, 2, 1, 1))
	for i := 0; i < 9; i++ {
		program = append(program, opR(insts.OpADD, 2, 2, 2))
	}
	program = append(program, insts.HaltWord)

	return Benchmark{
		Name:        "arithmetic_sequential",
		Description: "chained ADDs, measures ALU latency accumulation",
		Program:     program,
		Check: func(p *emu.Processor) error {
			return checkReg(p, 2, 1<<10)
		},
	}
}

// countdownLoop is a taken-branch loop decrementing to zero.
func countdownLoop() Benchmark {
	return Benchmark{
		Name:        "countdown_loop",
		Description: "backward JNE loop, measures taken-branch cost",
		Program: []uint32{
			opI(insts.OpLOADL, 1, 8), // counter
			opI(insts.OpLOADL, 2, 1), // decrement
			opR(insts.OpSUB, 1, 1, 2),
			opB(insts.OpJNE, 1, 0, -2),
			insts.HaltWord,
		},
		Check: func(p *emu.Processor) error {
			return checkReg(p, 1, 0)
		},
	}
}

// halfWordPacking builds a full word from two immediates.
func halfWordPacking() Benchmark {
	return Benchmark{
		Name:        "half_word_packing",
		Description: "LOADH/LOADL immediate merging",
		Program: []uint32{
			opI(insts.OpLOADL, 1, 0xF00D),
			opI(insts.OpLOADH, 1, 0xBEEF),
			insts.HaltWord,
		},
		Check: func(p *emu.Processor) error {
			return checkReg(p, 1, 0xBEEFF00D)
		},
	}
}

// memorySweep stores to and reloads from a run of addresses.
func memorySweep() Benchmark {
	const base = 0x1000

	program := []uint32{
		opI(insts.OpLOADL, 1, 0xAAAA),
	}
	for i := uint16(0); i < 8; i++ {
		program = append(program, opI(insts.OpSW, 1, base+i))
	}
	for i := uint16(0); i < 8; i++ {
		program = append(program, opI(insts.OpLW, 2, base+i))
	}
	program = append(program, insts.HaltWord)

	return Benchmark{
		Name:        "memory_sweep",
		Description: "SW/LW over one cache line span",
		Program:     program,
		Check: func(p *emu.Processor) error {
			if got := p.Memory().Read(base + 7); got != 0xAAAA {
				return fmt.Errorf("mem[0x%04X] = 0x%08X, want 0x0000AAAA", base+7, got)
			}
			return checkReg(p, 2, 0xAAAA)
		},
	}
}

// branchTaken alternates taken and untaken compares.
func branchTaken() Benchmark {
	return Benchmark{
		Name:        "branch_taken",
		Description: "mix of taken and untaken branches",
		Program: []uint32{
			opI(insts.OpLOADL, 1, 1),
			opB(insts.OpJEQ, 1, 0, 1), // not taken: r1 != r0
			opR(insts.OpADD, 3, 1, 1), // executes
			opB(insts.OpJNE, 1, 0, 1), // taken: skips the next ADD
			opR(insts.OpADD, 3, 3, 3), // skipped
			insts.HaltWord,
		},
		Check: func(p *emu.Processor) error {
			return checkReg(p, 3, 2)
		},
	}
}

// jumpAndLink calls a leaf routine and returns through r31.
func jumpAndLink() Benchmark {
	return Benchmark{
		Name:        "jump_and_link",
		Description: "JAL/JR call and return",
		Program: []uint32{
			opI(insts.OpLOADL, 1, 21), // 0
			opJ(4),                    // 1: call the doubler at 4
			insts.HaltWord,            // 2
			0,                         // 3: unused
			opR(insts.OpADD, 2, 1, 1), // 4: r2 = r1 + r1
			word(insts.Instruction{Op: insts.OpJR, Format: insts.FormatJR, Rc: 31}), // 5
		},
		Check: func(p *emu.Processor) error {
			if err := checkReg(p, 2, 42); err != nil {
				return err
			}
			return checkReg(p, 31, 2)
		},
	}
}
