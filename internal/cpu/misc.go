package cpu

import (
	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/memory"
)

func (m *Machine) loadIndex(ins chip8.Instruction) error {
	m.i = ins.NNN
	return nil
}

func (m *Machine) loadLongIndex(ins chip8.Instruction) error {
	m.i = ins.Long
	return nil
}

func (m *Machine) addIndex(ins chip8.Instruction) error {
	m.i += uint16(m.v[ins.X])
	return nil
}

func (m *Machine) loadDelay(ins chip8.Instruction) error {
	m.v[ins.X] = m.timers.Delay()
	return nil
}

func (m *Machine) setDelay(ins chip8.Instruction) error {
	m.timers.SetDelay(m.v[ins.X])
	return nil
}

func (m *Machine) setSound(ins chip8.Instruction) error {
	m.timers.SetSound(m.v[ins.X])
	return nil
}

func (m *Machine) smallFont(ins chip8.Instruction) error {
	m.i = memory.SmallGlyph(m.v[ins.X])
	return nil
}

func (m *Machine) largeFont(ins chip8.Instruction) error {
	m.i = memory.LargeGlyph(m.v[ins.X])
	return nil
}

func (m *Machine) bcd(ins chip8.Instruction) error {
	value := m.v[ins.X]
	m.mem.Write(m.i, value/100)
	m.mem.Write(m.i+1, value/10%10)
	m.mem.Write(m.i+2, value%10)
	return nil
}

// store writes V0..VX to memory at I.
func (m *Machine) store(ins chip8.Instruction) error {
	for r := range uint16(ins.X) + 1 {
		m.mem.Write(m.i+r, m.v[r])
	}
	if !m.quirks.LoadStoreKeepsI {
		m.i += uint16(ins.X) + 1
	}
	return nil
}

// load reads V0..VX from memory at I.
func (m *Machine) load(ins chip8.Instruction) error {
	for r := range uint16(ins.X) + 1 {
		m.v[r] = m.mem.Read(m.i + r)
	}
	if !m.quirks.LoadStoreKeepsI {
		m.i += uint16(ins.X) + 1
	}
	return nil
}

// registerRange returns the registers from X to Y, in descending order if X > Y.
func registerRange(x, y byte) []byte {
	step := 1
	if x > y {
		step = -1
	}
	registers := make([]byte, 0, 16)
	for r := int(x); ; r += step {
		registers = append(registers, byte(r))
		if r == int(y) {
			break
		}
	}
	return registers
}

// storeRange writes VX..VY to memory at I without changing I.
func (m *Machine) storeRange(ins chip8.Instruction) error {
	for offset, r := range registerRange(ins.X, ins.Y) {
		m.mem.Write(m.i+uint16(offset), m.v[r])
	}
	return nil
}

// loadRange reads VX..VY from memory at I without changing I.
func (m *Machine) loadRange(ins chip8.Instruction) error {
	for offset, r := range registerRange(ins.X, ins.Y) {
		m.v[r] = m.mem.Read(m.i + uint16(offset))
	}
	return nil
}

// saveFlags copies V0..VX to the user flag registers. X is limited to the
// number of flag registers of the variant.
func (m *Machine) saveFlags(ins chip8.Instruction) error {
	count := min(int(ins.X)+1, m.variant.FlagRegisters())
	copy(m.flags[:count], m.v[:count])
	return nil
}

// loadFlags copies the user flag registers to V0..VX.
func (m *Machine) loadFlags(ins chip8.Instruction) error {
	count := min(int(ins.X)+1, m.variant.FlagRegisters())
	copy(m.v[:count], m.flags[:count])
	return nil
}

func (m *Machine) loadAudio(chip8.Instruction) error {
	m.mem.ReadInto(m.i, m.audio.Pattern[:])
	return nil
}

func (m *Machine) setPitch(ins chip8.Instruction) error {
	m.audio.Pitch = m.v[ins.X]
	return nil
}
