// Package loader reads and writes UFLA-RISC program images.
//
// A program image is a text file of 32-bit instruction words written as
// binary digits, one word per line. Spaces and underscores inside a word
// are ignored so digits can be grouped for readability. Blank lines are
// skipped and '#' starts a comment that runs to the end of the line. An
// 'address' directive sets the load origin:
//
//	address 0
//
//	00000001 00010000 01000010 00000000   # ADD r2, r1, r1
//	11111111 11111111 11111111 11111111   # HALT
//
// The directive operand is parsed as binary when it consists solely of 0s
// and 1s, and as decimal otherwise. Operands like "10" therefore read as
// binary two, matching the long-standing file format.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/uflarisc/emu"
)

// WordBits is the width of an instruction word in the image format.
const WordBits = 32

// Program is a parsed program image ready for loading into memory.
type Program struct {
	// Words are the instruction words in file order.
	Words []uint32

	// Origin is the load address of the first word.
	Origin uint16
}

// ReadImage parses a program image from a reader.
func ReadImage(r io.Reader) (*Program, error) {
	prog := &Program{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}

		if isAddressDirective(line) {
			origin, err := parseAddressDirective(line)
			if err != nil {
				return nil, &SyntaxError{LineNo: lineNo, Line: line, Err: err}
			}
			prog.Origin = origin
			continue
		}

		word, err := parseWord(line)
		if err != nil {
			return nil, &SyntaxError{LineNo: lineNo, Line: line, Err: err}
		}
		prog.Words = append(prog.Words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading program image: %w", err)
	}

	if int(prog.Origin)+len(prog.Words) > emu.MemorySize {
		return nil, fmt.Errorf("%w: %d words at origin %d",
			ErrImageSize, len(prog.Words), prog.Origin)
	}

	return prog, nil
}

// LoadImage reads a program image from a file.
func LoadImage(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening program image: %w", err)
	}
	defer func() { _ = f.Close() }()

	prog, err := ReadImage(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}

// stripComment removes a trailing '#' comment and surrounding whitespace.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// isAddressDirective reports whether the line starts with the address
// keyword, case-insensitively.
func isAddressDirective(line string) bool {
	return strings.HasPrefix(strings.ToLower(line), "address")
}

// parseAddressDirective extracts the load origin from an address line.
func parseAddressDirective(line string) (uint16, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, ErrAddressFormat
	}

	operand := strings.NewReplacer("_", "", " ", "").Replace(fields[1])

	base := 10
	if isBinaryString(operand) {
		base = 2
	}

	addr, err := strconv.ParseUint(operand, base, 64)
	if err != nil {
		return 0, ErrAddressFormat
	}
	if addr > emu.MemorySize-1 {
		return 0, ErrAddressRange
	}

	return uint16(addr), nil
}

// parseWord converts one instruction line to a 32-bit word.
func parseWord(line string) (uint32, error) {
	digits := strings.NewReplacer(" ", "", "_", "").Replace(line)

	if !isBinaryString(digits) {
		return 0, ErrNotBinary
	}
	if len(digits) != WordBits {
		return 0, ErrWordSize
	}

	word, err := strconv.ParseUint(digits, 2, 32)
	if err != nil {
		return 0, ErrNotBinary
	}
	return uint32(word), nil
}

// isBinaryString reports whether s is non-empty and contains only 0s
// and 1s.
func isBinaryString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return false
		}
	}
	return true
}
