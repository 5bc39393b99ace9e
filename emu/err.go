package emu

import "errors"

// Component errors. Callers match these with errors.Is; the wrapped
// messages carry the offending value.
var (
	// ErrInvalidOpcode is returned by the ALU for opcodes outside its
	// twelve operations.
	ErrInvalidOpcode = errors.New("invalid ALU opcode")

	// ErrUnknownSignals is returned by the control unit when no signal row
	// matches the opcode/format combination.
	ErrUnknownSignals = errors.New("opcode not recognized")

	// ErrUnknownFlag is returned for flag names outside
	// {negative, zero, carry, overflow}.
	ErrUnknownFlag = errors.New("unknown flag")

	// ErrRegisterRange is returned for register indices above 31.
	ErrRegisterRange = errors.New("register index out of range")

	// ErrLoadRange is returned when a program image does not fit between
	// its origin and the top of memory.
	ErrLoadRange = errors.New("program does not fit in memory")

	// ErrDumpRange is returned when a dump range has start > end.
	ErrDumpRange = errors.New("invalid dump range")

	// ErrFaulted is returned when stepping a processor that has already
	// transitioned to the fault state.
	ErrFaulted = errors.New("processor is in fault state")
)
