package emu

import "github.com/sarchlab/regsim/insts"

// evalCondition reports whether cond holds against cc, and whether cond
// was itself one of the defined branch conditions. A false second return
// means the instruction must fault with Condition regardless of the first
// value.
func evalCondition(cc insts.CC, cond insts.Cond) (satisfied, valid bool) {
	switch cond {
	case insts.NC:
		return true, true
	case insts.EQ:
		return cc == insts.Z, true
	case insts.NE:
		return cc != insts.Z, true
	case insts.GT:
		return cc == insts.P, true
	case insts.GE:
		return cc == insts.P || cc == insts.Z, true
	case insts.LT:
		return cc == insts.N, true
	case insts.LE:
		return cc == insts.N || cc == insts.Z, true
	default:
		return false, false
	}
}
