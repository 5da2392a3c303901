// Package fault enumerates the interpreter's terminal error and warning
// conditions and formats them the way the driver is required to print
// them. A Fault is fatal to the run that produced it; a Warning (HALT) is
// not an error but still ends the run.
package fault

import "fmt"

// Kind identifies a class of fault. All Kinds are fatal.
type Kind uint8

const (
	// Unknown is raised when an opcode falls outside the enumerated set.
	Unknown Kind = iota
	// Illegal is raised by an explicit ILLOP.
	Illegal
	// Condition is raised when a BRANCH/CALL condition field is outside
	// {NC..LE}.
	Condition
	// Immediate is raised when I=1 is set on an opcode that forbids
	// immediate addressing (STORE, BRANCH, CALL, POP).
	Immediate
	// SegText is raised when PC is at or beyond textsize at fetch.
	SegText
	// SegData is raised when an effective data address is out of range.
	SegData
	// SegStack is raised when SP falls outside [dataend, datasize) at a
	// checkpoint.
	SegStack
)

var messages = [...]string{
	Unknown:   "Unknown instruction",
	Illegal:   "Illegal instruction",
	Condition: "Illegal condition",
	Immediate: "Immediate value forbidden",
	SegText:   "Text index out of bounds",
	SegData:   "Data index out of bounds",
	SegStack:  "Stack index out of bounds",
}

func (k Kind) message() string {
	if int(k) < len(messages) {
		return messages[k]
	}
	return "Unknown error"
}

// Fault is a terminal error condition raised by the interpreter. It
// implements the standard error interface so it composes with fmt.Errorf
// and errors.As while still exposing the structured Kind/Addr pair the
// driver needs to print the exact wire-format message.
type Fault struct {
	Kind Kind
	Addr uint32
}

// New constructs a Fault of the given kind at the given fault address.
func New(kind Kind, addr uint32) *Fault {
	return &Fault{Kind: kind, Addr: addr}
}

// Error formats the fault as "<message>\tat 0x<8-hex-addr>", matching the
// line the driver is required to print after the "ERROR: " prefix.
func (f *Fault) Error() string {
	return fmt.Sprintf("%s\tat 0x%08x", f.Kind.message(), f.Addr)
}

// Warning reports the single non-fatal-but-terminal condition: a program
// that ended correctly via HALT.
type Warning struct {
	Addr uint32
}

// NewHalt constructs the HALT warning at the given address.
func NewHalt(addr uint32) *Warning {
	return &Warning{Addr: addr}
}

// String formats the warning as "Program correctly ended by HALT\tat
// 0x<8-hex-addr>", matching the line the driver prints after the
// "WARNING: " prefix.
func (w *Warning) String() string {
	return fmt.Sprintf("Program correctly ended by HALT\tat 0x%08x", w.Addr)
}
