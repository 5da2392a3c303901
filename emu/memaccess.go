package emu

import "github.com/sarchlab/regsim/insts"

// effectiveAddress computes the data address targeted by an Absolute or
// Indexed operand. It is never called for an Immediate operand.
func effectiveAddress(s *State, instr insts.Instruction) insts.Word {
	if instr.Indexed() {
		return s.Reg(instr.IndexReg()) + insts.Word(instr.Offset())
	}
	return instr.AbsoluteAddress()
}

// dataAddrValid reports whether addr is a legal index into the data
// segment. The original source rejects only addr > datasize, admitting
// addr == datasize as an acknowledged off-by-one; a Go slice has no slack
// to admit that one-past-the-end index without panicking, so this
// implementation rejects addr >= datasize instead (see DESIGN.md).
func dataAddrValid(s *State, addr insts.Word) bool {
	return addr < s.DataSize()
}
