package emu

import (
	"github.com/sarchlab/regsim/fault"
	"github.com/sarchlab/regsim/insts"
)

// Outcome classifies what a Step did, independent of any fault.
type Outcome int

const (
	// Continue means the program may keep running.
	Continue Outcome = iota
	// Halted means a HALT instruction executed; the run is over.
	Halted
)

// StepResult is what Step returns: exactly one of (Continue), (Halted,
// Warning), or (Fault).
type StepResult struct {
	Outcome Outcome
	Fault   *fault.Fault
	Warning *fault.Warning
}

// Step fetches the instruction at PC, advances PC, decodes, and executes
// it against s. It is the sole entry point that mutates a State once
// loaded; it holds s exclusively for the call and releases it before
// returning.
func Step(s *State) StepResult {
	pc := s.PC()
	if pc >= s.TextSize() {
		return StepResult{Fault: fault.New(fault.SegText, pc-1)}
	}

	instr := s.Text()[pc]
	addr := pc
	s.SetPC(pc + 1)

	switch instr.Opcode() {
	case insts.NOP:
		return StepResult{Outcome: Continue}
	case insts.LOAD:
		return execLoad(s, instr, addr)
	case insts.STORE:
		return execStore(s, instr, addr)
	case insts.ADD:
		return execAdd(s, instr, addr)
	case insts.SUB:
		return execSub(s, instr, addr)
	case insts.BRANCH:
		return execBranch(s, instr, addr)
	case insts.CALL:
		return execCall(s, instr, addr)
	case insts.RET:
		return execRet(s, addr)
	case insts.PUSH:
		return execPush(s, instr, addr)
	case insts.POP:
		return execPop(s, instr, addr)
	case insts.HALT:
		return StepResult{Outcome: Halted, Warning: fault.NewHalt(addr)}
	case insts.ILLOP:
		return StepResult{Fault: fault.New(fault.Illegal, addr)}
	default:
		return StepResult{Fault: fault.New(fault.Unknown, addr)}
	}
}

// loadOperand resolves a LOAD/ADD/SUB/PUSH source operand: the
// sign-extended immediate, or the data word at the computed effective
// address. ok is false iff the address was out of range.
func loadOperand(s *State, instr insts.Instruction) (value insts.Word, ok bool) {
	if instr.Immediate() {
		return insts.Word(instr.ImmediateValue()), true
	}
	a := effectiveAddress(s, instr)
	if !dataAddrValid(s, a) {
		return 0, false
	}
	return s.Data()[a], true
}

func execLoad(s *State, instr insts.Instruction, addr insts.Word) StepResult {
	value, ok := loadOperand(s, instr)
	if !ok {
		return StepResult{Fault: fault.New(fault.SegData, addr)}
	}
	s.SetReg(instr.Reg(), value)
	refreshCC(s, value)
	return StepResult{Outcome: Continue}
}

func execStore(s *State, instr insts.Instruction, addr insts.Word) StepResult {
	if instr.Immediate() {
		return StepResult{Fault: fault.New(fault.Immediate, addr)}
	}
	a := effectiveAddress(s, instr)
	if !dataAddrValid(s, a) {
		return StepResult{Fault: fault.New(fault.SegData, addr)}
	}
	s.Data()[a] = s.Reg(instr.Reg())
	return StepResult{Outcome: Continue}
}

func execAdd(s *State, instr insts.Instruction, addr insts.Word) StepResult {
	operand, ok := loadOperand(s, instr)
	if !ok {
		return StepResult{Fault: fault.New(fault.SegData, addr)}
	}
	reg := instr.Reg()
	result := s.Reg(reg) + operand
	s.SetReg(reg, result)
	refreshCC(s, result)
	return StepResult{Outcome: Continue}
}

func execSub(s *State, instr insts.Instruction, addr insts.Word) StepResult {
	operand, ok := loadOperand(s, instr)
	if !ok {
		return StepResult{Fault: fault.New(fault.SegData, addr)}
	}
	reg := instr.Reg()
	result := s.Reg(reg) - operand
	s.SetReg(reg, result)
	refreshCC(s, result)
	return StepResult{Outcome: Continue}
}

func execBranch(s *State, instr insts.Instruction, addr insts.Word) StepResult {
	if instr.Immediate() {
		return StepResult{Fault: fault.New(fault.Immediate, addr)}
	}
	satisfied, valid := evalCondition(s.CC(), instr.Condition())
	if !valid {
		return StepResult{Fault: fault.New(fault.Condition, addr)}
	}
	if satisfied {
		s.SetPC(effectiveAddress(s, instr))
	}
	return StepResult{Outcome: Continue}
}

func execCall(s *State, instr insts.Instruction, addr insts.Word) StepResult {
	if instr.Immediate() {
		return StepResult{Fault: fault.New(fault.Immediate, addr)}
	}
	if !stackOK(s) {
		return StepResult{Fault: fault.New(fault.SegStack, addr)}
	}
	satisfied, valid := evalCondition(s.CC(), instr.Condition())
	if !valid {
		return StepResult{Fault: fault.New(fault.Condition, addr)}
	}
	if satisfied {
		sp := s.SP()
		s.Data()[sp] = s.PC()
		s.SetSP(sp - 1)
		s.SetPC(effectiveAddress(s, instr))
	}
	return StepResult{Outcome: Continue}
}

func execRet(s *State, addr insts.Word) StepResult {
	s.SetSP(s.SP() + 1)
	if !stackOK(s) {
		return StepResult{Fault: fault.New(fault.SegStack, addr)}
	}
	s.SetPC(s.Data()[s.SP()])
	return StepResult{Outcome: Continue}
}

func execPush(s *State, instr insts.Instruction, addr insts.Word) StepResult {
	if !stackOK(s) {
		return StepResult{Fault: fault.New(fault.SegStack, addr)}
	}
	value, ok := loadOperand(s, instr)
	if !ok {
		return StepResult{Fault: fault.New(fault.SegData, addr)}
	}
	sp := s.SP()
	s.Data()[sp] = value
	s.SetSP(sp - 1)
	return StepResult{Outcome: Continue}
}

func execPop(s *State, instr insts.Instruction, addr insts.Word) StepResult {
	if instr.Immediate() {
		return StepResult{Fault: fault.New(fault.Immediate, addr)}
	}
	a := effectiveAddress(s, instr)
	if !dataAddrValid(s, a) {
		return StepResult{Fault: fault.New(fault.SegData, addr)}
	}
	s.SetSP(s.SP() + 1)
	if !stackOK(s) {
		return StepResult{Fault: fault.New(fault.SegStack, addr)}
	}
	s.Data()[a] = s.Data()[s.SP()]
	return StepResult{Outcome: Continue}
}
