package loader

import (
	"fmt"
	"io"
	"strings"

	"github.com/sarchlab/uflarisc/emu"
)

var logRule = strings.Repeat("=", 80)

// ExecutionLogger writes a human-readable execution log, one block per
// executed instruction. Begin, Record, and End must be called in order.
type ExecutionLogger struct {
	w io.Writer
}

// NewExecutionLogger creates a logger writing to w.
func NewExecutionLogger(w io.Writer) *ExecutionLogger {
	return &ExecutionLogger{w: w}
}

// Begin writes the log header.
func (l *ExecutionLogger) Begin() error {
	_, err := fmt.Fprintf(l.w, "%s\nUFLA-RISC EXECUTION LOG\n%s\n\n",
		logRule, logRule)
	return err
}

// Record writes one block describing an executed step. The processor is
// consulted for the counter and flag state after the step.
func (l *ExecutionLogger) Record(p *emu.Processor, res emu.StepResult) error {
	_, err := fmt.Fprintf(l.w, "%s\nCYCLE %d | INSTRUCTION %d\n%s\n\n",
		logRule, p.CycleCount(), p.InstructionCount(), logRule)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(l.w, "PC: %d (0x%04X)\nIR: 0x%08X\nBinary: %032b\n\n",
		res.PC, res.PC, res.Word, res.Word)
	if err != nil {
		return err
	}

	if res.Inst != nil {
		if _, err = fmt.Fprintf(l.w, "%v\n", res.Inst); err != nil {
			return err
		}
	}
	if _, err = fmt.Fprintf(l.w, "Flags: %v\n\n", p.Flags()); err != nil {
		return err
	}

	if res.Err != nil {
		if _, err = fmt.Fprintf(l.w, "*** FAULT: %v ***\n\n", res.Err); err != nil {
			return err
		}
	}
	if res.Halted {
		if _, err = fmt.Fprintf(l.w, "*** HALT ***\n\n"); err != nil {
			return err
		}
	}
	return nil
}

// End writes the log footer.
func (l *ExecutionLogger) End() error {
	_, err := fmt.Fprintf(l.w, "%s\nEND OF EXECUTION LOG\n%s\n",
		logRule, logRule)
	return err
}
