package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regsim/emu"
	"github.com/sarchlab/regsim/fault"
	"github.com/sarchlab/regsim/insts"
)

func imm(op insts.Opcode, reg uint8, value int32) insts.Instruction {
	return insts.Encode(op, true, false, reg, uint32(value)&0xFFFFF)
}

func abs(op insts.Opcode, reg uint8, addr uint32) insts.Instruction {
	return insts.Encode(op, false, false, reg, addr)
}

func cond(op insts.Opcode, c insts.Cond, addr uint32) insts.Instruction {
	return insts.Encode(op, false, false, uint8(c), addr)
}

func bare(op insts.Opcode) insts.Instruction {
	return insts.Encode(op, false, false, 0, 0)
}

func newState(text []insts.Instruction, datasize, dataend int) *emu.State {
	return emu.NewState(text, make([]insts.Word, datasize), insts.Word(dataend))
}

var _ = Describe("Step", func() {
	Describe("scenario: immediate load sets P", func() {
		It("should set R3=7, CC=P, PC=1, then halt", func() {
			s := newState([]insts.Instruction{
				imm(insts.LOAD, 3, 7),
				bare(insts.HALT),
			}, 16, 8)

			r := emu.Step(s)
			Expect(r.Fault).To(BeNil())
			Expect(r.Outcome).To(Equal(emu.Continue))
			Expect(s.Reg(3)).To(Equal(insts.Word(7)))
			Expect(s.CC()).To(Equal(insts.P))
			Expect(s.PC()).To(Equal(insts.Word(1)))

			r = emu.Step(s)
			Expect(r.Outcome).To(Equal(emu.Halted))
			Expect(r.Warning).NotTo(BeNil())
		})
	})

	Describe("scenario: absolute load faults", func() {
		It("should return SegData for an address beyond the data segment", func() {
			s := newState([]insts.Instruction{
				abs(insts.LOAD, 0, 17),
			}, 16, 8)

			r := emu.Step(s)
			Expect(r.Fault).NotTo(BeNil())
			Expect(r.Fault.Kind).To(Equal(fault.SegData))
			Expect(r.Fault.Addr).To(Equal(insts.Word(0)))
		})
	})

	Describe("scenario: conditional branch on zero", func() {
		It("should jump over the else branch and leave R2=1, CC=P", func() {
			text := []insts.Instruction{
				imm(insts.LOAD, 1, 0),               // 0: LOAD #0 -> R1
				cond(insts.BRANCH, insts.EQ, 3),     // 1: BRANCH EQ @3
				imm(insts.LOAD, 2, 9),               // 2: LOAD #9 -> R2 (skipped)
				imm(insts.LOAD, 2, 1),                // 3: LOAD #1 -> R2
				bare(insts.HALT),                     // 4: HALT
			}
			s := newState(text, 16, 8)

			for i := 0; i < 3; i++ {
				r := emu.Step(s)
				Expect(r.Fault).To(BeNil())
			}
			Expect(s.Reg(2)).To(Equal(insts.Word(1)))
			Expect(s.CC()).To(Equal(insts.P))
		})
	})

	Describe("scenario: call/ret", func() {
		It("should return with R0=42, SP restored, and the return address on the stack", func() {
			text := []insts.Instruction{
				cond(insts.CALL, insts.NC, 3), // 0: CALL NC @3
				bare(insts.HALT),              // 1: HALT
				bare(insts.NOP),               // 2: padding
				imm(insts.LOAD, 0, 42),        // 3: LOAD #42 -> R0
				bare(insts.RET),               // 4: RET
			}
			s := newState(text, 16, 8)
			initialSP := s.SP()

			for i := 0; i < 3; i++ { // CALL, LOAD, RET
				r := emu.Step(s)
				Expect(r.Fault).To(BeNil())
			}

			Expect(s.Reg(0)).To(Equal(insts.Word(42)))
			Expect(s.PC()).To(Equal(insts.Word(1)))
			Expect(s.SP()).To(Equal(initialSP))
			Expect(s.Data()[initialSP]).To(Equal(insts.Word(1)))
		})
	})

	Describe("scenario: stack overflow", func() {
		It("should fault SegStack once recursive calls exhaust the stack", func() {
			text := []insts.Instruction{
				cond(insts.CALL, insts.NC, 0),
			}
			s := newState(text, 16, 14) // stack region is only 2 cells

			var last emu.StepResult
			for i := 0; i < 5; i++ {
				last = emu.Step(s)
				if last.Fault != nil {
					break
				}
			}
			Expect(last.Fault).NotTo(BeNil())
			Expect(last.Fault.Kind).To(Equal(fault.SegStack))
		})
	})

	Describe("scenario: illegal immediate on STORE", func() {
		It("should fault Immediate at the STORE's own address", func() {
			s := newState([]insts.Instruction{
				imm(insts.STORE, 0, 0),
			}, 16, 8)

			r := emu.Step(s)
			Expect(r.Fault).NotTo(BeNil())
			Expect(r.Fault.Kind).To(Equal(fault.Immediate))
			Expect(r.Fault.Addr).To(Equal(insts.Word(0)))
		})
	})

	Describe("property: immediate rejection", func() {
		for _, op := range []insts.Opcode{insts.STORE, insts.BRANCH, insts.CALL, insts.POP} {
			op := op
			It("should fault Immediate for "+op.String()+" regardless of operands", func() {
				s := newState([]insts.Instruction{imm(op, 0, 0)}, 16, 8)
				r := emu.Step(s)
				Expect(r.Fault).NotTo(BeNil())
				Expect(r.Fault.Kind).To(Equal(fault.Immediate))
			})
		}
	})

	Describe("property: CC soundness", func() {
		It("should set Z for a zero result", func() {
			s := newState([]insts.Instruction{imm(insts.LOAD, 0, 0)}, 16, 8)
			emu.Step(s)
			Expect(s.CC()).To(Equal(insts.Z))
		})

		It("should set P for a positive result", func() {
			s := newState([]insts.Instruction{imm(insts.LOAD, 0, 5)}, 16, 8)
			emu.Step(s)
			Expect(s.CC()).To(Equal(insts.P))
		})

		It("should set N for a negative result", func() {
			s := newState([]insts.Instruction{imm(insts.LOAD, 0, -5)}, 16, 8)
			emu.Step(s)
			Expect(s.CC()).To(Equal(insts.N))
		})

		It("should set N when a LOAD's stored pattern has its top bit set", func() {
			s := newState([]insts.Instruction{abs(insts.LOAD, 0, 0)}, 16, 8)
			s.Data()[0] = 0x80000000
			emu.Step(s)
			Expect(s.CC()).To(Equal(insts.N))
		})
	})

	Describe("property: PC progression", func() {
		It("should advance PC by exactly 1 absent branch/call/ret", func() {
			s := newState([]insts.Instruction{bare(insts.NOP), bare(insts.NOP)}, 16, 8)
			before := s.PC()
			emu.Step(s)
			Expect(s.PC()).To(Equal(before + 1))
		})
	})

	Describe("property: data bounds boundary", func() {
		It("should accept the last valid index (datasize-1)", func() {
			s := newState([]insts.Instruction{abs(insts.LOAD, 0, 15)}, 16, 8)
			r := emu.Step(s)
			Expect(r.Fault).To(BeNil())
		})

		It("should fault at datasize", func() {
			s := newState([]insts.Instruction{abs(insts.LOAD, 0, 16)}, 16, 8)
			r := emu.Step(s)
			Expect(r.Fault).NotTo(BeNil())
			Expect(r.Fault.Kind).To(Equal(fault.SegData))
		})
	})

	Describe("fetch beyond text", func() {
		It("should fault SegText when PC reaches textsize", func() {
			s := newState([]insts.Instruction{bare(insts.NOP)}, 16, 8)
			emu.Step(s) // consumes the only instruction, PC becomes 1
			r := emu.Step(s)
			Expect(r.Fault).NotTo(BeNil())
			Expect(r.Fault.Kind).To(Equal(fault.SegText))
		})
	})

	Describe("ILLOP and unknown opcodes", func() {
		It("should fault Illegal for ILLOP", func() {
			s := newState([]insts.Instruction{bare(insts.ILLOP)}, 16, 8)
			r := emu.Step(s)
			Expect(r.Fault.Kind).To(Equal(fault.Illegal))
		})

		It("should fault Unknown for an opcode outside the enumerated set", func() {
			s := newState([]insts.Instruction{insts.Encode(insts.Opcode(63), false, false, 0, 0)}, 16, 8)
			r := emu.Step(s)
			Expect(r.Fault.Kind).To(Equal(fault.Unknown))
		})
	})

	Describe("invalid branch condition", func() {
		It("should fault Condition for a regcond outside {NC..LE}", func() {
			s := newState([]insts.Instruction{cond(insts.BRANCH, insts.Cond(9), 0)}, 16, 8)
			r := emu.Step(s)
			Expect(r.Fault.Kind).To(Equal(fault.Condition))
		})
	})
})
