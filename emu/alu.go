package emu

import "github.com/sarchlab/regsim/insts"

// refreshCC sets the condition code from value's two's-complement signed
// interpretation: Z iff value == 0, P iff value > 0, N iff value < 0.
// Called after LOAD, ADD, and SUB — never after STORE, PUSH, POP, or a
// branch.
func refreshCC(s *State, value insts.Word) {
	switch signed := int32(value); {
	case signed > 0:
		s.SetCC(insts.P)
	case signed < 0:
		s.SetCC(insts.N)
	default:
		s.SetCC(insts.Z)
	}
}
