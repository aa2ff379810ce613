package cpu

// KeyCount is the number of keys of the hexadecimal keypad.
const KeyCount = 16

type keypad struct {
	pressed [KeyCount]bool

	waiting  bool // FX0A waits for a key release
	register byte // destination register of the waiting FX0A
}

func (k *keypad) reset() {
	*k = keypad{}
}

// PressKey marks a key of the hexadecimal keypad as pressed.
func (m *Machine) PressKey(key byte) {
	m.keypad.pressed[key&0xF] = true
}

// ReleaseKey marks a key as released. A release completes a pending FX0A
// by storing the key in its destination register.
func (m *Machine) ReleaseKey(key byte) {
	key &= 0xF
	wasPressed := m.keypad.pressed[key]
	m.keypad.pressed[key] = false
	if m.keypad.waiting && wasPressed {
		m.v[m.keypad.register] = key
		m.keypad.waiting = false
	}
}

// KeyPressed returns whether a key is currently pressed.
func (m *Machine) KeyPressed(key byte) bool {
	return m.keypad.pressed[key&0xF]
}
