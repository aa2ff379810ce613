package cpu

import (
	"github.com/retroenv/chip8vm/internal/arch/chip8"
)

// flag is the index of the VF register.
const flag = 0xF

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (m *Machine) loadImm(ins chip8.Instruction) error {
	m.v[ins.X] = ins.NN
	return nil
}

func (m *Machine) addImm(ins chip8.Instruction) error {
	m.v[ins.X] += ins.NN
	return nil
}

func (m *Machine) move(ins chip8.Instruction) error {
	m.v[ins.X] = m.v[ins.Y]
	return nil
}

// logical stores the result of a bitwise operation and resets VF unless
// the quirk disables it.
func (m *Machine) logical(x, result byte) {
	m.v[x] = result
	if !m.quirks.NoVFReset {
		m.v[flag] = 0
	}
}

func (m *Machine) or(ins chip8.Instruction) error {
	m.logical(ins.X, m.v[ins.X]|m.v[ins.Y])
	return nil
}

func (m *Machine) and(ins chip8.Instruction) error {
	m.logical(ins.X, m.v[ins.X]&m.v[ins.Y])
	return nil
}

func (m *Machine) xor(ins chip8.Instruction) error {
	m.logical(ins.X, m.v[ins.X]^m.v[ins.Y])
	return nil
}

// The arithmetic instructions write VF after the result, so that VF used as
// destination register holds the flag.

func (m *Machine) add(ins chip8.Instruction) error {
	sum := uint16(m.v[ins.X]) + uint16(m.v[ins.Y])
	m.v[ins.X] = byte(sum)
	m.v[flag] = boolToByte(sum > 0xFF)
	return nil
}

func (m *Machine) sub(ins chip8.Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = x - y
	m.v[flag] = boolToByte(x >= y)
	return nil
}

func (m *Machine) subReverse(ins chip8.Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = y - x
	m.v[flag] = boolToByte(y >= x)
	return nil
}

// shiftSource returns the register value a shift operates on.
func (m *Machine) shiftSource(ins chip8.Instruction) byte {
	if m.quirks.ShiftInPlace {
		return m.v[ins.X]
	}
	return m.v[ins.Y]
}

func (m *Machine) shiftRight(ins chip8.Instruction) error {
	value := m.shiftSource(ins)
	m.v[ins.X] = value >> 1
	m.v[flag] = value & 1
	return nil
}

func (m *Machine) shiftLeft(ins chip8.Instruction) error {
	value := m.shiftSource(ins)
	m.v[ins.X] = value << 1
	m.v[flag] = value >> 7
	return nil
}

func (m *Machine) random(ins chip8.Instruction) error {
	m.v[ins.X] = m.rng.NextByte() & ins.NN
	return nil
}
