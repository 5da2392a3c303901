// Package inspect renders a State's CPU registers, text segment, and data
// segment as the fixed-column text reports the original simulator prints
// under debug mode or on request. Nothing here mutates a State; these are
// read-only views for a human at a terminal.
package inspect

import (
	"fmt"
	"strings"

	"github.com/sarchlab/regsim/disasm"
	"github.com/sarchlab/regsim/emu"
)

// CPU renders the program counter, condition code, and all 16 general
// registers (hex and decimal, three per line) the way the original
// simulator's debug "r" command does.
func CPU(s *emu.State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n*** CPU ***\n")
	fmt.Fprintf(&b, "PC: 0x%08x\tCC: %s\n\n", s.PC(), s.CC())

	for i := uint8(0); i < 16; i++ {
		v := s.Reg(i)
		fmt.Fprintf(&b, "R%02d: 0x%08x\t%d\t", i, v, int32(v))
		if i%3 == 2 {
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	return b.String()
}

// Program renders the text segment: one line per instruction, giving its
// address, its raw hex encoding, and its disassembly.
func Program(s *emu.State) string {
	var b strings.Builder
	text := s.Text()
	fmt.Fprintf(&b, "\n*** PROGRAM (size: %d) ***\n", len(text))

	for i, instr := range text {
		fmt.Fprintf(&b, "0x%04x: 0x%08x\t%s\n", i, instr.Encode(), disasm.Format(instr, uint32(i)))
	}
	return b.String()
}

// Data renders the data segment three cells per line, giving each cell's
// address, its hex encoding, and its signed decimal value, preceded
// by the segment's size and the boundary between static data and the
// stack region.
func Data(s *emu.State) string {
	var b strings.Builder
	data := s.Data()
	fmt.Fprintf(&b, "\n*** DATA (size: %d, end = 0x%08x %d) ***\n", len(data), s.DataEnd(), s.DataEnd())

	for i, v := range data {
		fmt.Fprintf(&b, "0x%04x: 0x%08x %d\t", i, v, int32(v))
		if i%3 == 2 {
			b.WriteByte('\n')
		}
	}
	b.WriteByte('\n')
	return b.String()
}
