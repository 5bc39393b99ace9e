package loader

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by SyntaxError.
var (
	// ErrAddressFormat indicates a malformed address directive.
	ErrAddressFormat = errors.New("malformed address directive")

	// ErrAddressRange indicates an address directive outside 0-65535.
	ErrAddressRange = errors.New("address out of range")

	// ErrNotBinary indicates an instruction line with characters other
	// than 0 and 1.
	ErrNotBinary = errors.New("instruction is not a binary string")

	// ErrWordSize indicates an instruction line that is not exactly 32
	// binary digits.
	ErrWordSize = errors.New("instruction is not 32 bits")

	// ErrImageSize indicates a program image too large for memory.
	ErrImageSize = errors.New("program image does not fit in memory")
)

// SyntaxError reports a malformed line in a program image, carrying the
// line number and the offending text.
type SyntaxError struct {
	// LineNo is the 1-based line number in the input.
	LineNo int

	// Line is the offending line, after comment stripping.
	Line string

	// Err is the underlying cause, one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.LineNo, e.Err, e.Line)
}

// Unwrap returns the underlying cause.
func (e *SyntaxError) Unwrap() error {
	return e.Err
}
