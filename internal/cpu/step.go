package cpu

import (
	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// handler executes a decoded instruction. The program counter already
// points to the following instruction when a handler is called.
type handler func(m *Machine, ins chip8.Instruction) error

// handlers maps every instruction kind to its implementation.
var handlers = [...]handler{
	chip8.ClearScreen:     (*Machine).clearScreen,
	chip8.Return:          (*Machine).ret,
	chip8.Jump:            (*Machine).jump,
	chip8.Call:            (*Machine).call,
	chip8.SkipEqualImm:    (*Machine).skipEqualImm,
	chip8.SkipNotEqualImm: (*Machine).skipNotEqualImm,
	chip8.SkipEqual:       (*Machine).skipEqual,
	chip8.LoadImm:         (*Machine).loadImm,
	chip8.AddImm:          (*Machine).addImm,
	chip8.Move:            (*Machine).move,
	chip8.Or:              (*Machine).or,
	chip8.And:             (*Machine).and,
	chip8.Xor:             (*Machine).xor,
	chip8.Add:             (*Machine).add,
	chip8.Sub:             (*Machine).sub,
	chip8.ShiftRight:      (*Machine).shiftRight,
	chip8.SubReverse:      (*Machine).subReverse,
	chip8.ShiftLeft:       (*Machine).shiftLeft,
	chip8.SkipNotEqual:    (*Machine).skipNotEqual,
	chip8.LoadIndex:       (*Machine).loadIndex,
	chip8.JumpOffset:      (*Machine).jumpOffset,
	chip8.Random:          (*Machine).random,
	chip8.Draw:            (*Machine).draw,
	chip8.SkipKey:         (*Machine).skipKey,
	chip8.SkipNotKey:      (*Machine).skipNotKey,
	chip8.LoadDelay:       (*Machine).loadDelay,
	chip8.WaitKey:         (*Machine).waitKey,
	chip8.SetDelay:        (*Machine).setDelay,
	chip8.SetSound:        (*Machine).setSound,
	chip8.AddIndex:        (*Machine).addIndex,
	chip8.SmallFont:       (*Machine).smallFont,
	chip8.BCD:             (*Machine).bcd,
	chip8.Store:           (*Machine).store,
	chip8.Load:            (*Machine).load,

	chip8.ScrollDown:  (*Machine).scrollDown,
	chip8.ScrollRight: (*Machine).scrollRight,
	chip8.ScrollLeft:  (*Machine).scrollLeft,
	chip8.Exit:        (*Machine).exit,
	chip8.LowRes:      (*Machine).lowRes,
	chip8.HighRes:     (*Machine).highRes,
	chip8.LargeFont:   (*Machine).largeFont,
	chip8.SaveFlags:   (*Machine).saveFlags,
	chip8.LoadFlags:   (*Machine).loadFlags,

	chip8.ScrollUp:     (*Machine).scrollUp,
	chip8.StoreRange:   (*Machine).storeRange,
	chip8.LoadRange:    (*Machine).loadRange,
	chip8.LoadLongI:    (*Machine).loadLongIndex,
	chip8.SelectPlanes: (*Machine).selectPlanes,
	chip8.LoadAudio:    (*Machine).loadAudio,
	chip8.SetPitch:     (*Machine).setPitch,
}

// Step executes a single instruction. It does not execute anything while the
// machine is halted, waits for a key or waits for a display sync.
// On error the program counter is reset to the failing instruction and a
// *Fault is returned.
func (m *Machine) Step() (Outcome, error) {
	switch {
	case m.halted:
		return Halted, nil
	case m.keypad.waiting:
		return WaitingForKey, nil
	case m.waitDisplay:
		return WaitingForDisplay, nil
	}

	start := m.pc
	ins, err := chip8.Fetch(m.mem, start, m.variant)
	if err != nil {
		return Faulted, &Fault{PC: start, Opcode: ins.Opcode, Err: err}
	}
	m.pc = start + ins.Size()

	m.idle = false
	if err := handlers[ins.Kind](m, ins); err != nil {
		m.pc = start
		return Faulted, &Fault{PC: start, Opcode: ins.Opcode, Err: err}
	}
	m.cycles++

	if m.idle {
		return Idle, nil
	}
	return Executed, nil
}

// InstructionAt decodes the instruction at the given address without executing it.
func (m *Machine) InstructionAt(address uint16) (chip8.Instruction, error) {
	return chip8.Fetch(m.mem, address, m.variant)
}

// SkipInstruction moves the program counter past the instruction at the
// current address without executing it. It is used to continue after a fault.
func (m *Machine) SkipInstruction() {
	m.skip()
	m.idle = false
}
