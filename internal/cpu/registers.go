package cpu

import (
	"fmt"
	"strings"
)

// Registers is a snapshot of the machine registers and execution state.
type Registers struct {
	V      [RegisterCount]byte
	I      uint16
	PC     uint16
	Stack  []uint16
	Delay  byte
	Sound  byte
	Cycles uint64

	HighRes           bool
	Planes            byte // selected plane mask
	Halted            bool
	WaitingForKey     bool
	WaitingForDisplay bool
}

// String returns the registers in a compact single line format.
func (r Registers) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PC=%04X I=%04X", r.PC, r.I)
	for i, value := range r.V {
		fmt.Fprintf(&sb, " V%X=%02X", i, value)
	}
	fmt.Fprintf(&sb, " DT=%02X ST=%02X SP=%d", r.Delay, r.Sound, len(r.Stack))
	return sb.String()
}
