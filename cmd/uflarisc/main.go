// Package main provides the entry point for the UFLA-RISC simulator CLI.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/uflarisc/emu"
	"github.com/sarchlab/uflarisc/loader"
	"github.com/sarchlab/uflarisc/timing/core"
	"github.com/sarchlab/uflarisc/timing/latency"
	"github.com/sarchlab/uflarisc/translate"
)

var (
	timing     = flag.Bool("timing", false, "Enable timing estimation mode")
	configPath = flag.String("config", "", "Path to timing configuration JSON file")
	verbose    = flag.Bool("v", false, "Verbose output")
	trace      = flag.Bool("trace", false, "Print a per-instruction trace to stderr")
	logPath    = flag.String("log", "", "Write a detailed execution log to this file")
	maxCycles  = flag.Uint64("max-cycles", emu.DefaultMaxCycles, "Stop after this many instructions")
	dumpRegs   = flag.Bool("dump-regs", false, "Print non-zero registers after the run")
	dumpMem    = flag.String("dump-mem", "", "Print a memory range after the run (start:end)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: uflarisc [options] <program.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	prog, err := loader.LoadImage(programPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, translate.From("Error loading program: %v", err))
		os.Exit(1)
	}

	if *verbose {
		fmt.Println(translate.From("Loaded: %s", programPath))
		fmt.Println(translate.From("Origin: %d", prog.Origin))
		fmt.Println(translate.From("Words: %d", len(prog.Words)))
	}

	proc := newProcessor()
	if err := proc.LoadProgram(prog.Words, prog.Origin); err != nil {
		fmt.Fprintln(os.Stderr, translate.From("Error loading program: %v", err))
		os.Exit(1)
	}

	var exitCode int
	if *timing {
		exitCode = runTiming(proc, programPath)
	} else {
		exitCode = runEmulation(proc, programPath)
	}

	if *dumpRegs {
		printRegisters(proc)
	}
	if *dumpMem != "" {
		if err := printMemory(proc, *dumpMem); err != nil {
			fmt.Fprintln(os.Stderr, translate.From("Error dumping memory: %v", err))
			exitCode = 1
		}
	}

	os.Exit(exitCode)
}

// newProcessor builds the processor with the requested trace destination.
func newProcessor() *emu.Processor {
	if *trace {
		return emu.NewProcessor(emu.WithTrace(os.Stderr))
	}
	return emu.NewProcessor()
}

// runEmulation runs the program in functional emulation mode.
func runEmulation(proc *emu.Processor, programPath string) int {
	if *logPath != "" {
		return runLogged(proc, programPath)
	}

	res := proc.Run(*maxCycles)
	return report(proc, programPath, res)
}

// runLogged steps the processor manually so every step can be recorded in
// the execution log.
func runLogged(proc *emu.Processor, programPath string) int {
	f, err := os.Create(*logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, translate.From("Error creating log file: %v", err))
		return 1
	}
	defer func() { _ = f.Close() }()

	logger := loader.NewExecutionLogger(f)
	if err := logger.Begin(); err != nil {
		fmt.Fprintln(os.Stderr, translate.From("Error writing log file: %v", err))
		return 1
	}

	var last emu.StepResult
	for steps := uint64(0); steps < *maxCycles; steps++ {
		last = proc.Step()
		if recordErr := logger.Record(proc, last); recordErr != nil {
			fmt.Fprintln(os.Stderr, translate.From("Error writing log file: %v", recordErr))
			return 1
		}
		if last.Err != nil || last.Halted {
			break
		}
	}
	if err := logger.End(); err != nil {
		fmt.Fprintln(os.Stderr, translate.From("Error writing log file: %v", err))
		return 1
	}

	return report(proc, programPath, emu.RunResult{
		Cycles:       proc.CycleCount(),
		Instructions: proc.InstructionCount(),
		Halted:       proc.State() == emu.StateHalted,
		PC:           proc.PC(),
		Err:          last.Err,
	})
}

// runTiming runs the program through the timing estimator and prints the
// cycle report.
func runTiming(proc *emu.Processor, programPath string) int {
	timingConfig := latency.DefaultTimingConfig()
	if *configPath != "" {
		var err error
		timingConfig, err = latency.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, translate.From("Error loading timing config: %v", err))
			return 1
		}
	}
	if err := timingConfig.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, translate.From("Invalid timing config: %v", err))
		return 1
	}

	c := core.NewCore(proc, core.WithTimingConfig(timingConfig))
	res := c.Run(*maxCycles)

	code := report(proc, programPath, res)

	stats := c.Stats()
	totalCycles := stats.Cycles
	if totalCycles == 0 {
		totalCycles = 1
	}
	cpi := float64(stats.Cycles) / float64(max(stats.Instructions, 1))

	fmt.Println()
	fmt.Println(translate.From("Estimated cycles: %d", stats.Cycles))
	fmt.Println(translate.From("CPI: %.2f", cpi))
	fmt.Println()
	fmt.Println(translate.From("Breakdown:"))
	fmt.Println(translate.From("  Fetch:   %4d cycles (%5.1f%%)",
		stats.FetchCycles, 100.0*float64(stats.FetchCycles)/float64(totalCycles)))
	fmt.Println(translate.From("  Execute: %4d cycles (%5.1f%%)",
		stats.ExecCycles, 100.0*float64(stats.ExecCycles)/float64(totalCycles)))
	fmt.Println(translate.From("  Memory:  %4d cycles (%5.1f%%)",
		stats.MemCycles, 100.0*float64(stats.MemCycles)/float64(totalCycles)))
	fmt.Println(translate.From("Taken-branch penalties: %d", stats.BranchPenalties))

	ic, dc := c.ICache().Stats(), c.DCache().Stats()
	fmt.Println(translate.From("I-cache: %d hits, %d misses", ic.Hits, ic.Misses))
	fmt.Println(translate.From("D-cache: %d hits, %d misses", dc.Hits, dc.Misses))

	return code
}

// report prints the run summary and converts the outcome to an exit code.
func report(proc *emu.Processor, programPath string, res emu.RunResult) int {
	if res.Err != nil {
		fmt.Fprintln(os.Stderr, translate.From("Fault at PC %d: %v", proc.PC(), res.Err))
		return 1
	}

	if *verbose || !res.Halted {
		fmt.Println()
		fmt.Println(translate.From("Program: %s", programPath))
		if res.Halted {
			fmt.Println(translate.From("Halted at PC %d", res.PC))
		} else {
			fmt.Println(translate.From("Stopped after %d instructions without halting", res.Instructions))
		}
		fmt.Println(translate.From("Instructions executed: %d", proc.InstructionCount()))
		fmt.Println(translate.From("Flags: %v", proc.Flags()))
	}

	return 0
}

// printRegisters prints the non-zero registers.
func printRegisters(proc *emu.Processor) {
	fmt.Println(translate.From("Registers:"))
	dump := proc.RegFile().Dump()
	for i := uint8(0); i < emu.NumRegs; i++ {
		if dump[i] == 0 {
			continue
		}
		fmt.Printf("  r%-2d = %10d (0x%08X)\n", i, dump[i], dump[i])
	}
}

// printMemory prints the memory words in a start:end range.
func printMemory(proc *emu.Processor, spec string) error {
	start, end, err := parseRange(spec)
	if err != nil {
		return err
	}

	dump, err := proc.Memory().Dump(start, end)
	if err != nil {
		return err
	}

	fmt.Println(translate.From("Memory:"))
	for addr := int(start); addr <= int(end); addr++ {
		word := dump[uint16(addr)]
		fmt.Printf("  [%5d] = %10d (0x%08X)\n", addr, word, word)
	}
	return nil
}

// parseRange parses a "start:end" address range.
func parseRange(spec string) (start, end uint16, err error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("range must be start:end, got %q", spec)
	}

	s, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad range start %q: %w", parts[0], err)
	}
	e, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return 0, 0, fmt.Errorf("bad range end %q: %w", parts[1], err)
	}

	return uint16(s), uint16(e), nil
}
