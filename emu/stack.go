package emu

// stackOK reports whether SP currently sits inside the legal stack
// region [dataend, datasize). Called at every stack checkpoint: before the
// decrement for CALL/PUSH, after the pre-increment for RET/POP.
func stackOK(s *State) bool {
	sp := s.SP()
	return sp >= s.DataEnd() && sp < s.DataSize()
}
