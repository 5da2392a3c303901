// Package emu holds the CPU/memory state of the register machine and the
// interpreter that steps it. State owns the text and data segments for the
// life of a simulation; nothing outside this package retains an alias that
// outlives it. The Interpreter (see interpreter.go) holds an exclusive
// mutable reference to a State for the duration of a single Step and
// releases it before returning; inspectors elsewhere take a read-only
// borrow.
package emu

import "github.com/sarchlab/regsim/insts"

// numRegisters is the size of the general register file; register spReg
// is aliased as the stack pointer rather than modelled as a separate
// field, per the ISA's SP-aliasing design.
const (
	numRegisters = 16
	spReg        = 15
	// minStackSize is the minimum length of [dataend, datasize) a loaded
	// image must provide.
	minStackSize = 10
)

// State is the machine's CPU and memory state: 16 general registers (with
// register 15 aliased as SP), the program counter, the condition code, the
// read-only text segment, and the mutable data segment.
type State struct {
	registers [numRegisters]insts.Word
	pc        insts.Word
	cc        insts.CC

	text    []insts.Instruction
	data    []insts.Word
	dataend insts.Word
}

// NewState builds a State from a freshly loaded program image. text is
// never mutated after this call. Registers are zeroed, SP is set to
// datasize-1, PC is 0, and CC is U — the reset state spec.md assigns a
// freshly loaded program.
func NewState(text []insts.Instruction, data []insts.Word, dataend insts.Word) *State {
	s := &State{
		text:    text,
		data:    data,
		dataend: dataend,
	}
	s.registers[spReg] = insts.Word(len(data)) - 1
	return s
}

// Reg reads general register n (0..15).
func (s *State) Reg(n uint8) insts.Word {
	return s.registers[n]
}

// SetReg writes general register n (0..15).
func (s *State) SetReg(n uint8, v insts.Word) {
	s.registers[n] = v
}

// SP reads the stack pointer, the alias name for register 15.
func (s *State) SP() insts.Word {
	return s.registers[spReg]
}

// SetSP writes the stack pointer, the alias name for register 15.
func (s *State) SetSP(v insts.Word) {
	s.registers[spReg] = v
}

// PC reads the program counter: the index of the next instruction in Text.
func (s *State) PC() insts.Word {
	return s.pc
}

// SetPC writes the program counter.
func (s *State) SetPC(v insts.Word) {
	s.pc = v
}

// CC reads the condition code.
func (s *State) CC() insts.CC {
	return s.cc
}

// SetCC writes the condition code.
func (s *State) SetCC(cc insts.CC) {
	s.cc = cc
}

// Text returns the read-only text segment.
func (s *State) Text() []insts.Instruction {
	return s.text
}

// TextSize returns the number of instructions in the text segment.
func (s *State) TextSize() insts.Word {
	return insts.Word(len(s.text))
}

// Data returns the data segment. Callers outside this package's
// interpreter must treat it as read-only; only Step mutates it.
func (s *State) Data() []insts.Word {
	return s.data
}

// DataSize returns the number of cells in the data segment.
func (s *State) DataSize() insts.Word {
	return insts.Word(len(s.data))
}

// DataEnd returns the index of the first free data cell above the static
// data region — the low end of the stack region.
func (s *State) DataEnd() insts.Word {
	return s.dataend
}
