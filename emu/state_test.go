package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/regsim/emu"
	"github.com/sarchlab/regsim/insts"
)

var _ = Describe("State", func() {
	It("should initialize PC=0, CC=U, all registers zero except SP=datasize-1", func() {
		s := emu.NewState(nil, make([]insts.Word, 16), 8)

		Expect(s.PC()).To(Equal(insts.Word(0)))
		Expect(s.CC()).To(Equal(insts.U))
		for i := uint8(0); i < 15; i++ {
			Expect(s.Reg(i)).To(Equal(insts.Word(0)), "register %d", i)
		}
		Expect(s.SP()).To(Equal(insts.Word(15)))
	})

	It("should alias register 15 as SP", func() {
		s := emu.NewState(nil, make([]insts.Word, 16), 8)
		s.SetSP(3)
		Expect(s.Reg(15)).To(Equal(insts.Word(3)))
		s.SetReg(15, 9)
		Expect(s.SP()).To(Equal(insts.Word(9)))
	})
})
