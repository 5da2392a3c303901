// Package disasm renders a decoded Instruction in symbolic form, the way
// the interpreter's trace output and the text-segment inspector need it.
// Format never faults: it is a tracing aid, not a validator, so it prints
// whatever bits are present even for an opcode outside the enumerated set.
package disasm

import (
	"fmt"

	"github.com/sarchlab/regsim/insts"
)

// Format renders instr as "OP " followed by zero or more operands, per the
// opcode's addressing group:
//
//	ILLOP, NOP, RET, HALT:   mnemonic only
//	LOAD, STORE, ADD, SUB:   "R<dd>, " then the operand
//	BRANCH, CALL:            "<cond> " then the operand
//	PUSH, POP:               the operand alone
//
// addr is accepted for symmetry with the trace/print call sites that carry
// an instruction's address alongside it; Format itself never needs it
// since all addressing is relative to registers or absolute, never to the
// instruction's own position.
func Format(instr insts.Instruction, addr uint32) string {
	_ = addr

	op := instr.Opcode()
	switch op {
	case insts.ILLOP, insts.NOP, insts.RET, insts.HALT:
		return op.String() + " "
	case insts.LOAD, insts.STORE, insts.ADD, insts.SUB:
		return fmt.Sprintf("%s R%02d, %s", op, instr.Reg(), operand(instr))
	case insts.BRANCH, insts.CALL:
		return fmt.Sprintf("%s %s %s", op, instr.Condition(), operand(instr))
	case insts.PUSH, insts.POP:
		return fmt.Sprintf("%s %s", op, operand(instr))
	default:
		return fmt.Sprintf("0x%08x", instr.Raw)
	}
}

// operand renders an instruction's single operand according to its
// addressing mode: "#<decimal signed value>" for Immediate,
// "<signed decimal offset>[R<dd>]" for Indexed, "@<4-hex-digit address>"
// for Absolute.
func operand(instr insts.Instruction) string {
	switch {
	case instr.Immediate():
		return fmt.Sprintf("#%d", instr.ImmediateValue())
	case instr.Indexed():
		return fmt.Sprintf("%+d[R%02d]", instr.Offset(), instr.IndexReg())
	default:
		return fmt.Sprintf("@%04x", instr.AbsoluteAddress())
	}
}
