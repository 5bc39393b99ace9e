package emu

import (
	"fmt"
	"io"

	"github.com/sarchlab/uflarisc/insts"
)

// DefaultMaxCycles is the cycle cap used by callers that do not supply one.
const DefaultMaxCycles = 10000

// State is the durable execution state of the processor.
type State uint8

// Processor states.
const (
	StateRunning State = iota // ready to execute the next instruction
	StateHalted               // stopped by HALT; only Reset resumes
	StateFault                // stopped by a decode/execute error
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateHalted:
		return "halted"
	case StateFault:
		return "fault"
	default:
		return "running"
	}
}

// StepResult represents the outcome of executing a single instruction.
type StepResult struct {
	// PC is the address the instruction was fetched from.
	PC uint16

	// Word is the raw instruction word.
	Word uint32

	// Inst is the decoded instruction, nil when decoding failed.
	Inst *insts.Instruction

	// Halted is true when this step executed the HALT sentinel, or when
	// Step was called on an already-halted processor.
	Halted bool

	// Err is set when the step faulted.
	Err error
}

// RunResult summarizes a bounded run.
type RunResult struct {
	// Cycles is the total cycle count after the run.
	Cycles uint64

	// Instructions is the total retired-instruction count after the run.
	Instructions uint64

	// Halted is true when the run ended on HALT.
	Halted bool

	// PC is the program counter after the run.
	PC uint16

	// Err is the fault that ended the run, if any.
	Err error
}

// Processor owns the program counter, instruction register, halt state, and
// cycle/instruction counters, and sequences fetch, decode, execute, and
// write-back over the memory and register-file collaborators.
type Processor struct {
	memory  *Memory
	regFile *RegFile
	flags   *Flags

	// Stateless services, constructed once and reused for every step.
	decoder *insts.Decoder
	control *ControlUnit
	alu     *ALU

	pc         uint16
	ir         uint32
	state      State
	faultCause error

	cycleCount       uint64
	instructionCount uint64

	trace io.Writer
}

// ProcessorOption is a functional option for configuring the Processor.
type ProcessorOption func(*Processor)

// WithTrace directs a per-step execution trace to the given writer.
func WithTrace(w io.Writer) ProcessorOption {
	return func(p *Processor) {
		p.trace = w
	}
}

// NewProcessor creates a processor with cleared memory, registers, and
// flags, PC at 0, and all counters zeroed.
func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		memory:  NewMemory(),
		regFile: NewRegFile(),
		flags:   NewFlags(),
		decoder: insts.NewDecoder(),
		control: NewControlUnit(),
		alu:     NewALU(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Memory returns the processor's memory.
func (p *Processor) Memory() *Memory {
	return p.memory
}

// RegFile returns the processor's register file.
func (p *Processor) RegFile() *RegFile {
	return p.regFile
}

// Flags returns the processor's status flags.
func (p *Processor) Flags() *Flags {
	return p.flags
}

// PC returns the program counter.
func (p *Processor) PC() uint16 {
	return p.pc
}

// IR returns the instruction register, the most recently fetched word.
func (p *Processor) IR() uint32 {
	return p.ir
}

// State returns the durable execution state.
func (p *Processor) State() State {
	return p.state
}

// CycleCount returns the number of cycles executed.
func (p *Processor) CycleCount() uint64 {
	return p.cycleCount
}

// InstructionCount returns the number of instructions retired.
func (p *Processor) InstructionCount() uint64 {
	return p.instructionCount
}

// LoadProgram copies a program into memory at the given origin and points
// the PC there.
func (p *Processor) LoadProgram(words []uint32, origin uint16) error {
	if err := p.memory.Load(words, origin); err != nil {
		return err
	}
	p.pc = origin
	return nil
}

// Reset returns the processor to its initial state: memory, registers, and
// flags cleared, PC/IR zeroed, counters zeroed, state running. The
// stateless services are kept.
func (p *Processor) Reset() {
	p.memory.Clear()
	p.regFile.Clear()
	p.flags.Clear()

	p.pc = 0
	p.ir = 0
	p.state = StateRunning
	p.faultCause = nil
	p.cycleCount = 0
	p.instructionCount = 0
}

// Step executes one full instruction: fetch, decode, execute, write-back.
//
// Stepping a halted processor is a no-op reporting Halted; stepping a
// faulted processor reports ErrFaulted. A step that faults mid-way commits
// none of its pending register or memory writes.
func (p *Processor) Step() StepResult {
	switch p.state {
	case StateHalted:
		return StepResult{PC: p.pc, Halted: true}
	case StateFault:
		return StepResult{PC: p.pc, Err: ErrFaulted}
	}

	// Fetch: read the word at PC into IR, then advance PC. The uint16
	// increment wraps modulo 65536. Branch and jump targets computed later
	// in the step are relative to this already-incremented PC.
	fetchPC := p.pc
	word := p.memory.Read(fetchPC)
	p.ir = word
	p.pc = fetchPC + 1

	// Decode: instruction fields, control signals, source operands.
	inst, err := p.decoder.Decode(word)
	if err != nil {
		return p.fault(fetchPC, word, nil, err)
	}

	signals, err := p.control.Signals(inst)
	if err != nil {
		return p.fault(fetchPC, word, inst, err)
	}

	opA, opB, err := p.readOperands(inst)
	if err != nil {
		return p.fault(fetchPC, word, inst, err)
	}

	// Execute / memory access.
	var result uint32

	if signals.ALUOp != insts.OpNone {
		aluResult, err := p.alu.Execute(signals.ALUOp, opA, opB)
		if err != nil {
			return p.fault(fetchPC, word, inst, err)
		}
		p.flags.Update(aluResult.Value, aluResult.Carry, aluResult.Overflow)
		result = aluResult.Value
	}

	if signals.MemRead || signals.MemWrite {
		// Effective address is the immediate field alone; no base register
		// is added (see DESIGN.md on the base+offset ambiguity).
		addr := inst.Imm
		if signals.MemRead {
			result = p.memory.Read(addr)
		} else {
			p.memory.Write(addr, opA)
		}
	}

	switch inst.Op {
	case insts.OpLOADH:
		// Pack the immediate into the upper half-word, keep the lower half.
		result = uint32(inst.Imm)<<16 | opA&0x0000FFFF
	case insts.OpLOADL:
		result = opA&0xFFFF0000 | uint32(inst.Imm)
	}

	if signals.Branch {
		taken := opA == opB
		if inst.Op == insts.OpJNE {
			taken = opA != opB
		}
		if taken {
			p.pc = uint16(int32(p.pc) + inst.Offset)
		}
	}

	if signals.Jump {
		switch inst.Op {
		case insts.OpJR:
			p.pc = uint16(opA)
		case insts.OpJAL:
			// The already-incremented PC becomes the link value.
			result = uint32(p.pc)
			p.pc = inst.Addr
		case insts.OpJ:
			p.pc = inst.Addr
		}
	}

	if signals.Halt {
		// PC, registers, and memory stay as they were before the fetch.
		p.state = StateHalted
		p.pc = fetchPC
		p.cycleCount++
		p.instructionCount++
		res := StepResult{PC: fetchPC, Word: word, Inst: inst, Halted: true}
		p.traceStep(res)
		return res
	}

	// Write-back: the only point that commits the step's result to the
	// register file. Stores already committed during execute.
	if signals.RegWrite {
		dest := inst.Ra
		if inst.Op == insts.OpJAL {
			dest = LinkRegister
		}
		if err := p.regFile.Write(dest, result); err != nil {
			return p.fault(fetchPC, word, inst, err)
		}
	}

	p.cycleCount++
	p.instructionCount++

	res := StepResult{PC: fetchPC, Word: word, Inst: inst}
	p.traceStep(res)
	return res
}

// Run calls Step repeatedly until the processor halts, faults, or maxCycles
// steps have executed.
func (p *Processor) Run(maxCycles uint64) RunResult {
	for steps := uint64(0); steps < maxCycles; steps++ {
		if p.state != StateRunning {
			break
		}

		res := p.Step()
		if res.Err != nil || res.Halted {
			break
		}
	}

	return RunResult{
		Cycles:       p.cycleCount,
		Instructions: p.instructionCount,
		Halted:       p.state == StateHalted,
		PC:           p.pc,
		Err:          p.faultErr(),
	}
}

// readOperands reads the source operands the instruction format requires.
func (p *Processor) readOperands(inst *insts.Instruction) (opA, opB uint32, err error) {
	switch inst.Format {
	case insts.FormatR:
		if opA, err = p.regFile.Read(inst.Rb); err != nil {
			return 0, 0, err
		}
		if opB, err = p.regFile.Read(inst.Rc); err != nil {
			return 0, 0, err
		}
	case insts.FormatI:
		// LW/LOADx need ra's current value for merging; SW stores it.
		if opA, err = p.regFile.Read(inst.Ra); err != nil {
			return 0, 0, err
		}
	case insts.FormatB:
		if opA, err = p.regFile.Read(inst.Ra); err != nil {
			return 0, 0, err
		}
		if opB, err = p.regFile.Read(inst.Rb); err != nil {
			return 0, 0, err
		}
	case insts.FormatJR:
		if opA, err = p.regFile.Read(inst.Rc); err != nil {
			return 0, 0, err
		}
	}
	// J and HALT read no registers.
	return opA, opB, nil
}

// fault transitions to the fault state and surfaces the error. No register
// or memory writes from the failing step have been committed at any call
// site of this function.
func (p *Processor) fault(pc uint16, word uint32, inst *insts.Instruction, err error) StepResult {
	p.state = StateFault
	p.faultCause = err
	return StepResult{PC: pc, Word: word, Inst: inst, Err: err}
}

// faultErr returns the error that caused the fault state, if any.
func (p *Processor) faultErr() error {
	if p.state == StateFault {
		return p.faultCause
	}
	return nil
}

// traceStep emits one trace line when a trace writer is configured.
func (p *Processor) traceStep(res StepResult) {
	if p.trace == nil {
		return
	}
	_, _ = fmt.Fprintf(p.trace, "cycle %d pc=%04X ir=%08X %v [%v]\n",
		p.cycleCount, res.PC, res.Word, res.Inst, p.flags)
}
