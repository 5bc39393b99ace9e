package loader

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteImage writes a program image in the text format ReadImage accepts:
// a decimal address directive, a blank line, then one word per line with
// the 32 binary digits grouped into clusters of 8.
func WriteImage(w io.Writer, prog *Program) error {
	if _, err := fmt.Fprintf(w, "address %d\n\n", prog.Origin); err != nil {
		return err
	}

	for _, word := range prog.Words {
		if _, err := fmt.Fprintln(w, formatWord(word)); err != nil {
			return err
		}
	}
	return nil
}

// SaveImage writes a program image to a file.
func SaveImage(path string, prog *Program) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating program image: %w", err)
	}

	if err := WriteImage(f, prog); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// formatWord renders a 32-bit word as four space-separated 8-digit groups.
func formatWord(word uint32) string {
	digits := fmt.Sprintf("%032b", word)

	groups := make([]string, 0, WordBits/8)
	for i := 0; i < WordBits; i += 8 {
		groups = append(groups, digits[i:i+8])
	}
	return strings.Join(groups, " ")
}
