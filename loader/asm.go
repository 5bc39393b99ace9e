package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// ReadSource reads an assembly source file, returning the code lines with
// comments and blank lines removed. It performs no parsing beyond that;
// assembling is left to external tooling.
func ReadSource(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := stripComment(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading assembly source: %w", err)
	}

	return lines, nil
}

// LoadSource reads an assembly source file from a path.
func LoadSource(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening assembly source: %w", err)
	}
	defer func() { _ = f.Close() }()

	lines, err := ReadSource(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}
