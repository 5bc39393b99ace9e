// Package main provides the entry point for the UFLA-RISC simulator.
// UFLA-RISC is an instructional 32-bit RISC processor simulator.
//
// For the full CLI, use: go run ./cmd/uflarisc
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("UFLA-RISC Simulator")
	fmt.Println("")
	fmt.Println("Usage: uflarisc [options] <program.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -timing      Enable timing estimation mode")
	fmt.Println("  -config      Path to timing configuration JSON file")
	fmt.Println("  -trace       Print a per-instruction trace to stderr")
	fmt.Println("  -log         Write a detailed execution log to a file")
	fmt.Println("  -max-cycles  Stop after this many instructions")
	fmt.Println("  -dump-regs   Print non-zero registers after the run")
	fmt.Println("  -dump-mem    Print a memory range after the run (start:end)")
	fmt.Println("  -v           Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/uflarisc' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/uflarisc' instead.")
	}
}
