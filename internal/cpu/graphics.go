package cpu

import (
	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/display"
)

// horizontalScroll is the distance in pixels of the 00FB and 00FC scrolls.
const horizontalScroll = 4

func (m *Machine) clearScreen(chip8.Instruction) error {
	m.display.ClearSelected()
	return nil
}

// draw draws a sprite from memory at I. Extended variants draw a 16x16
// sprite for DXY0, the classic variant draws nothing for it.
func (m *Machine) draw(ins chip8.Instruction) error {
	sprite := display.Sprite{Width: 8, Height: int(ins.N)}
	if ins.N == 0 && m.variant.Extended() {
		sprite = display.Sprite{Width: 16, Height: 16}
	}
	sprite.Data = m.mem.Slice(m.i, sprite.PlaneSize()*m.display.SelectedCount())

	collision := m.display.Draw(int(m.v[ins.X]), int(m.v[ins.Y]), sprite)
	m.v[flag] = boolToByte(collision)

	if !m.quirks.NoDrawSync {
		m.waitDisplay = true
	}
	return nil
}

func (m *Machine) scrollDown(ins chip8.Instruction) error {
	m.display.Scroll(display.Down, int(ins.N))
	return nil
}

func (m *Machine) scrollUp(ins chip8.Instruction) error {
	m.display.Scroll(display.Up, int(ins.N))
	return nil
}

func (m *Machine) scrollRight(chip8.Instruction) error {
	m.display.Scroll(display.Right, horizontalScroll)
	return nil
}

func (m *Machine) scrollLeft(chip8.Instruction) error {
	m.display.Scroll(display.Left, horizontalScroll)
	return nil
}

func (m *Machine) lowRes(chip8.Instruction) error {
	m.display.SetResolution(false)
	return nil
}

func (m *Machine) highRes(chip8.Instruction) error {
	m.display.SetResolution(true)
	return nil
}

func (m *Machine) selectPlanes(ins chip8.Instruction) error {
	m.display.SelectPlanes(ins.X)
	return nil
}
