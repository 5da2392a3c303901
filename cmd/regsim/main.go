// Package main provides the entry point for regsim, an interpreter for
// the 32-bit register machine defined by insts/emu/loader.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/regsim/disasm"
	"github.com/sarchlab/regsim/emu"
	"github.com/sarchlab/regsim/inspect"
	"github.com/sarchlab/regsim/loader"
)

var (
	debugMode = flag.Bool("debug", false, "Start in interactive step-by-step debug mode")
	trace     = flag.Bool("trace", false, "Print each instruction before it executes")
	dumpPath  = flag.String("dump", "", "Write the final machine state to this file after the run")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: regsim [options] <program.bin>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	programPath := flag.Arg(0)

	s, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	os.Exit(run(s, os.Stdin, os.Stdout))
}

// run drives the fetch-decode-execute loop until a fault or HALT, printing
// traces and honoring interactive debug requests along the way. It returns
// the process exit code: 0 on a clean HALT, 1 on a fault.
func run(s *emu.State, in io.Reader, out io.Writer) int {
	debugging := *debugMode
	reader := bufio.NewReader(in)

	for {
		pc := s.PC()
		if *trace && pc < s.TextSize() {
			fmt.Fprintf(out, "TRACE: Executing: 0x%04x: %s\n", pc, disasm.Format(s.Text()[pc], pc))
		}

		result := emu.Step(s)

		if debugging {
			debugging = debugAsk(s, reader, out)
		}

		switch {
		case result.Fault != nil:
			fmt.Fprintf(out, "ERROR: %v\n", result.Fault)
			dumpIfRequested(s)
			return 1
		case result.Outcome == emu.Halted:
			fmt.Fprintf(out, "WARNING: %v\n", result.Warning)
			dumpIfRequested(s)
			return 0
		}
	}
}

func dumpIfRequested(s *emu.State) {
	if *dumpPath == "" {
		return
	}
	if err := loader.Dump(s, *dumpPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: failed to write dump: %v\n", err)
	}
}

// debugAsk implements the interactive debug prompt: it reads one command
// line at a time, acts on recognized single-character commands, and
// returns whether to remain in debug mode for the next instruction.
// A bare RETURN or "s" steps once and stays in debug mode; "c" leaves
// debug mode for the remainder of the run; any other command (including
// an unrecognized one, which prints nothing) loops back to the prompt.
func debugAsk(s *emu.State, reader *bufio.Reader, out io.Writer) bool {
	for {
		fmt.Fprintf(out, "Debug?\n")
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}

		switch len(line) {
		case 1: // bare newline: step once, stay in debug mode
			return true
		case 2:
			switch line[0] {
			case 'h':
				fmt.Fprintf(out, "Available Commands:\n")
				fmt.Fprintf(out, "\th\thelp\n")
				fmt.Fprintf(out, "\tc\tcontinue (exit debug mode)\n")
				fmt.Fprintf(out, "\ts\tstep by step\n")
				fmt.Fprintf(out, "\tRETURN\tstep by step\n")
				fmt.Fprintf(out, "\tr\tprint registers\n")
				fmt.Fprintf(out, "\td\tprint data memory\n")
				fmt.Fprintf(out, "\tp\tprint text memory\n")
				fmt.Fprintf(out, "\tt\tprint text memory\n")
				fmt.Fprintf(out, "\tm\tprint registers and data memory\n")
			case 'c':
				return false
			case 's':
				return true
			case 'r':
				fmt.Fprint(out, inspect.CPU(s))
			case 'd':
				fmt.Fprint(out, inspect.Data(s))
			case 't', 'p':
				fmt.Fprint(out, inspect.Program(s))
			case 'm':
				fmt.Fprint(out, inspect.Data(s))
				fmt.Fprint(out, inspect.CPU(s))
			}
		}
	}
}
