package cpu

import (
	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/options"
)

// longLoadOpcode is the first word of the 4 byte XO-CHIP instruction F000 NNNN.
const longLoadOpcode = 0xF000

// jumpTo sets the program counter and detects a jump to the current instruction.
func (m *Machine) jumpTo(ins chip8.Instruction, target uint16) {
	if target == m.pc-ins.Size() {
		m.idle = true
	}
	m.pc = target
}

// skip skips the next instruction. On XO-CHIP the 4 byte long index load
// is skipped as a whole.
func (m *Machine) skip() {
	if m.variant == options.XOChip && m.mem.ReadWord(m.pc) == longLoadOpcode {
		m.pc += 4
		return
	}
	m.pc += 2
}

func (m *Machine) skipIf(condition bool) error {
	if condition {
		m.skip()
	}
	return nil
}

func (m *Machine) ret(chip8.Instruction) error {
	if len(m.stack) == 0 {
		return ErrStackUnderflow
	}
	m.pc = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return nil
}

func (m *Machine) jump(ins chip8.Instruction) error {
	m.jumpTo(ins, ins.NNN)
	return nil
}

func (m *Machine) call(ins chip8.Instruction) error {
	if m.stackDepth > 0 && len(m.stack) >= m.stackDepth {
		return ErrStackOverflow
	}
	m.stack = append(m.stack, m.pc)
	m.pc = ins.NNN
	return nil
}

func (m *Machine) jumpOffset(ins chip8.Instruction) error {
	register := byte(0)
	if m.quirks.JumpVX {
		register = ins.X
	}
	m.jumpTo(ins, ins.NNN+uint16(m.v[register]))
	return nil
}

func (m *Machine) skipEqualImm(ins chip8.Instruction) error {
	return m.skipIf(m.v[ins.X] == ins.NN)
}

func (m *Machine) skipNotEqualImm(ins chip8.Instruction) error {
	return m.skipIf(m.v[ins.X] != ins.NN)
}

func (m *Machine) skipEqual(ins chip8.Instruction) error {
	return m.skipIf(m.v[ins.X] == m.v[ins.Y])
}

func (m *Machine) skipNotEqual(ins chip8.Instruction) error {
	return m.skipIf(m.v[ins.X] != m.v[ins.Y])
}

func (m *Machine) skipKey(ins chip8.Instruction) error {
	return m.skipIf(m.KeyPressed(m.v[ins.X]))
}

func (m *Machine) skipNotKey(ins chip8.Instruction) error {
	return m.skipIf(!m.KeyPressed(m.v[ins.X]))
}

func (m *Machine) waitKey(ins chip8.Instruction) error {
	m.keypad.waiting = true
	m.keypad.register = ins.X
	return nil
}

func (m *Machine) exit(chip8.Instruction) error {
	m.halted = true
	return nil
}
