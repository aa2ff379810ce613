package cpu

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a call exceeds the call stack depth of the variant.
	ErrStackOverflow = errors.New("call stack overflow")
	// ErrStackUnderflow is returned by a return instruction on an empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// Fault is returned by Step when an instruction can not be decoded or executed.
// The program counter of the machine is left at the failing instruction.
type Fault struct {
	PC     uint16
	Opcode uint16
	Err    error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	return fmt.Sprintf("executing opcode %04X at %04X: %v", f.Opcode, f.PC, f.Err)
}

// Unwrap returns the underlying error.
func (f *Fault) Unwrap() error {
	return f.Err
}
