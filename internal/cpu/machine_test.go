package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func newMachine(t *testing.T, opts options.Emulator, program ...byte) *Machine {
	t.Helper()
	m, err := New(opts.WithSeed(1))
	assert.NoError(t, err)
	assert.NoError(t, m.LoadProgram(program))
	return m
}

func newClassic(t *testing.T, program ...byte) *Machine {
	t.Helper()
	return newMachine(t, options.NewEmulator(options.Classic), program...)
}

func step(t *testing.T, m *Machine, count int) {
	t.Helper()
	for range count {
		outcome, err := m.Step()
		assert.NoError(t, err)
		assert.True(t, outcome.DidExecute())
	}
}

func TestNewInvalidOptions(t *testing.T) {
	opts := options.NewEmulator(options.Classic)
	opts.FrameRate = 0
	_, err := New(opts)
	assert.True(t, errors.Is(err, options.ErrInvalidConfiguration))
}

func TestLoadAndAdd(t *testing.T) {
	m := newClassic(t, 0x60, 0x05, 0x70, 0x03)
	step(t, m, 2)

	regs := m.Registers()
	assert.Equal(t, byte(8), regs.V[0])
	assert.Equal(t, byte(0), regs.V[0xF])
	assert.Equal(t, uint16(memory.ProgramStart+4), regs.PC)
	assert.Equal(t, uint64(2), regs.Cycles)
}

func TestDrawSpriteScenario(t *testing.T) {
	m := newClassic(t, 0xA3, 0x00, 0xD0, 0x01)
	m.Memory().Write(0x300, 0xF0)
	step(t, m, 2)

	fb := m.Display()
	for x := range 4 {
		assert.Equal(t, byte(1), fb.Pixel(x, 0))
	}
	assert.Equal(t, byte(0), fb.Pixel(4, 0))
	assert.Equal(t, byte(0), fb.Pixel(0, 1))
	assert.Equal(t, byte(0), m.Registers().V[0xF])
}

func TestDrawCollisionSetsVF(t *testing.T) {
	opts := options.NewEmulator(options.Classic)
	opts.Quirks.NoDrawSync = true
	m := newMachine(t, opts,
		0xA2, 0x00, // I = 0x200
		0xD0, 0x01, // draw
		0xD0, 0x01, // draw again, erases
	)

	step(t, m, 2)
	assert.Equal(t, byte(0), m.Registers().V[0xF])
	step(t, m, 1)
	assert.Equal(t, byte(1), m.Registers().V[0xF])
	assert.Equal(t, 0, m.Display().Snapshot().Lit())
}

func TestDrawSync(t *testing.T) {
	m := newClassic(t, 0xA2, 0x00, 0xD0, 0x01, 0x60, 0x01)
	step(t, m, 2)

	outcome, err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, WaitingForDisplay, outcome)
	assert.True(t, m.Registers().WaitingForDisplay)
	assert.Equal(t, uint16(0x204), m.PC())

	m.DisplaySync()
	step(t, m, 1)
	assert.Equal(t, byte(1), m.Registers().V[0])
}

func TestVFResetQuirk(t *testing.T) {
	program := []byte{
		0x6F, 0x07, // VF = 7
		0x60, 0x0C, // V0 = 0x0C
		0x61, 0x0A, // V1 = 0x0A
		0x80, 0x12, // V0 &= V1
	}

	tests := []struct {
		name      string
		noVFReset bool
		vf        byte
	}{
		{"reset", false, 0},
		{"no reset", true, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.NewEmulator(options.Classic)
			opts.Quirks.NoVFReset = tt.noVFReset
			m := newMachine(t, opts, program...)
			step(t, m, 4)

			regs := m.Registers()
			assert.Equal(t, byte(0x08), regs.V[0])
			assert.Equal(t, tt.vf, regs.V[0xF])
		})
	}
}

func TestArithmeticFlags(t *testing.T) {
	tests := []struct {
		name   string
		x, y   byte
		opcode byte // low nibble of 8XYN
		result byte
		vf     byte
	}{
		{"add no carry", 10, 20, 0x4, 30, 0},
		{"add carry", 200, 100, 0x4, 44, 1},
		{"sub no borrow", 20, 10, 0x5, 10, 1},
		{"sub equal", 10, 10, 0x5, 0, 1},
		{"sub borrow", 10, 20, 0x5, 246, 0},
		{"subn no borrow", 10, 20, 0x7, 10, 1},
		{"subn borrow", 20, 10, 0x7, 246, 0},
		{"shift right", 0x05, 0x03, 0x6, 0x01, 1},
		{"shift left", 0x05, 0x81, 0xE, 0x02, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newClassic(t, 0x60, tt.x, 0x61, tt.y, 0x80, 0x10|tt.opcode)
			step(t, m, 3)

			regs := m.Registers()
			assert.Equal(t, tt.result, regs.V[0])
			assert.Equal(t, tt.vf, regs.V[0xF])
		})
	}
}

func TestFlagWrittenLast(t *testing.T) {
	m := newClassic(t, 0x6F, 0xFF, 0x61, 0x01, 0x8F, 0x14)
	step(t, m, 3)
	assert.Equal(t, byte(1), m.Registers().V[0xF])
}

func TestShiftQuirk(t *testing.T) {
	program := []byte{0x60, 0x04, 0x61, 0x03, 0x80, 0x16}

	m := newClassic(t, program...)
	step(t, m, 3)
	assert.Equal(t, byte(0x01), m.Registers().V[0])
	assert.Equal(t, byte(1), m.Registers().V[0xF])

	opts := options.NewEmulator(options.Classic)
	opts.Quirks.ShiftInPlace = true
	m = newMachine(t, opts, program...)
	step(t, m, 3)
	assert.Equal(t, byte(0x02), m.Registers().V[0])
	assert.Equal(t, byte(0), m.Registers().V[0xF])
}

func TestJumpOffsetQuirk(t *testing.T) {
	program := []byte{0x60, 0x10, 0x63, 0x20, 0xB3, 0x00}

	m := newClassic(t, program...)
	step(t, m, 3)
	assert.Equal(t, uint16(0x310), m.PC())

	opts := options.NewEmulator(options.Classic)
	opts.Quirks.JumpVX = true
	m = newMachine(t, opts, program...)
	step(t, m, 3)
	assert.Equal(t, uint16(0x320), m.PC())
}

func TestLoadStoreQuirk(t *testing.T) {
	program := []byte{
		0x60, 0x11,
		0x61, 0x22,
		0xA3, 0x00, // I = 0x300
		0xF1, 0x55, // store V0-V1
	}

	m := newClassic(t, program...)
	step(t, m, 4)
	assert.Equal(t, byte(0x11), m.Memory().Read(0x300))
	assert.Equal(t, byte(0x22), m.Memory().Read(0x301))
	assert.Equal(t, uint16(0x302), m.Registers().I)

	opts := options.NewEmulator(options.Classic)
	opts.Quirks.LoadStoreKeepsI = true
	m = newMachine(t, opts, append(program, 0xF1, 0x65)...)
	step(t, m, 5)
	assert.Equal(t, uint16(0x300), m.Registers().I)
	assert.Equal(t, byte(0x11), m.Registers().V[0])
}

func TestCallReturn(t *testing.T) {
	m := newClassic(t,
		0x22, 0x04, // call 0x204
		0x00, 0x00,
		0x60, 0x09, // V0 = 9
		0x00, 0xEE, // return
	)
	step(t, m, 2)
	assert.Len(t, m.Registers().Stack, 1)
	step(t, m, 1)
	assert.Equal(t, uint16(0x202), m.PC())
	assert.Empty(t, m.Registers().Stack)
	assert.Equal(t, byte(9), m.Registers().V[0])
}

func TestStackOverflow(t *testing.T) {
	// 2200 calls itself until the stack is full
	m := newClassic(t, 0x22, 0x00)
	step(t, m, options.Classic.StackDepth())

	outcome, err := m.Step()
	assert.Equal(t, Faulted, outcome)
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint16(0x200), m.PC())
	assert.Len(t, m.Registers().Stack, options.Classic.StackDepth())

	var fault *Fault
	assert.True(t, errors.As(err, &fault))
	assert.Equal(t, uint16(0x2200), fault.Opcode)
	assert.Equal(t, uint16(0x200), fault.PC)
}

func TestStackUnboundedOnXOChip(t *testing.T) {
	m := newMachine(t, options.NewEmulator(options.XOChip), 0x22, 0x00)
	step(t, m, 100)
	assert.Len(t, m.Registers().Stack, 100)
}

func TestStackUnderflow(t *testing.T) {
	m := newClassic(t, 0x00, 0xEE)
	outcome, err := m.Step()
	assert.Equal(t, Faulted, outcome)
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(0x200), m.PC())
}

func TestUnknownOpcode(t *testing.T) {
	m := newClassic(t, 0x60, 0x01, 0x00, 0xFF)
	step(t, m, 1)

	outcome, err := m.Step()
	assert.Equal(t, Faulted, outcome)
	assert.True(t, errors.Is(err, chip8.ErrUnknownOpcode))
	assert.ErrorContains(t, err, "at 0202")
	assert.Equal(t, uint16(0x202), m.PC())
	assert.Equal(t, uint64(1), m.Cycles())
}

func TestSkipInstructionAfterFault(t *testing.T) {
	m := newClassic(t, 0x60, 0x01, 0x01, 0x23, 0x60, 0x07)
	step(t, m, 1)

	_, err := m.Step()
	assert.True(t, errors.Is(err, chip8.ErrUnknownOpcode))

	m.SkipInstruction()
	assert.Equal(t, uint16(0x204), m.PC())
	step(t, m, 1)
	assert.Equal(t, byte(7), m.Registers().V[0])
	assert.Equal(t, uint64(2), m.Cycles())
}

func TestSkipInstructionLongLoad(t *testing.T) {
	m := newMachine(t, options.NewEmulator(options.XOChip), 0xF0, 0x00, 0xAB, 0xCD)
	m.SkipInstruction()
	assert.Equal(t, uint16(0x204), m.PC())
	assert.Equal(t, uint16(0), m.Registers().I)
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name   string
		opcode []byte
		pc     uint16
	}{
		{"equal immediate taken", []byte{0x30, 0x05}, 0x208},
		{"equal immediate not taken", []byte{0x30, 0x06}, 0x206},
		{"not equal immediate taken", []byte{0x40, 0x06}, 0x208},
		{"equal register taken", []byte{0x50, 0x10}, 0x208},
		{"not equal register not taken", []byte{0x90, 0x10}, 0x206},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := append([]byte{0x60, 0x05, 0x61, 0x05}, tt.opcode...)
			m := newClassic(t, program...)
			step(t, m, 3)
			assert.Equal(t, tt.pc, m.PC())
		})
	}
}

func TestSkipOverLongLoad(t *testing.T) {
	m := newMachine(t, options.NewEmulator(options.XOChip),
		0x30, 0x00, // skip, V0 == 0
		0xF0, 0x00, 0x12, 0x34, // I = 0x1234
		0x60, 0x01,
	)
	step(t, m, 1)
	assert.Equal(t, uint16(0x206), m.PC())
}

func TestLongLoad(t *testing.T) {
	m := newMachine(t, options.NewEmulator(options.XOChip), 0xF0, 0x00, 0xAB, 0xCD)
	step(t, m, 1)
	assert.Equal(t, uint16(0xABCD), m.Registers().I)
	assert.Equal(t, uint16(0x204), m.PC())
}

func TestRandomIsMaskedAndDeterministic(t *testing.T) {
	program := []byte{0xC0, 0x0F, 0xC1, 0xFF}
	a := newClassic(t, program...)
	b := newClassic(t, program...)
	step(t, a, 2)
	step(t, b, 2)

	assert.True(t, a.Registers().V[0] <= 0x0F)
	assert.Equal(t, a.Registers().V[1], b.Registers().V[1])
}

func TestTimerInstructions(t *testing.T) {
	m := newClassic(t,
		0x60, 0x20,
		0xF0, 0x15, // DT = V0
		0xF0, 0x18, // ST = V0
		0x61, 0x00,
		0xF1, 0x07, // V1 = DT
	)
	step(t, m, 3)
	assert.Equal(t, byte(0x20), m.Timers().Delay())
	assert.Equal(t, byte(0x20), m.Timers().Sound())

	m.Timers().Tick(2)
	step(t, m, 2)
	assert.Equal(t, byte(0x1E), m.Registers().V[1])
}

func TestBCDAndFont(t *testing.T) {
	m := newClassic(t,
		0x60, 0xFE, // V0 = 254
		0xA3, 0x00,
		0xF0, 0x33,
		0x61, 0x0A,
		0xF1, 0x29,
	)
	step(t, m, 5)
	assert.Equal(t, byte(2), m.Memory().Read(0x300))
	assert.Equal(t, byte(5), m.Memory().Read(0x301))
	assert.Equal(t, byte(4), m.Memory().Read(0x302))
	assert.Equal(t, memory.SmallGlyph(0xA), m.Registers().I)
}

func TestWaitKeyRelease(t *testing.T) {
	m := newClassic(t, 0xF3, 0x0A, 0x60, 0x01)
	step(t, m, 1)

	outcome, err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, WaitingForKey, outcome)

	// a press alone does not complete the wait
	m.PressKey(0x7)
	outcome, _ = m.Step()
	assert.Equal(t, WaitingForKey, outcome)
	assert.True(t, m.KeyPressed(0x7))

	m.ReleaseKey(0x7)
	assert.Equal(t, byte(0x7), m.Registers().V[3])
	step(t, m, 1)
	assert.Equal(t, byte(1), m.Registers().V[0])
}

func TestSkipKey(t *testing.T) {
	m := newClassic(t, 0x60, 0x04, 0xE0, 0x9E, 0x00, 0x00, 0xE0, 0xA1)
	m.PressKey(4)
	step(t, m, 2)
	assert.Equal(t, uint16(0x206), m.PC())
	step(t, m, 1)
	assert.Equal(t, uint16(0x208), m.PC())
}

func TestIdleJump(t *testing.T) {
	m := newClassic(t, 0x60, 0x01, 0x12, 0x02)
	step(t, m, 1)
	outcome, err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, Idle, outcome)
	assert.Equal(t, uint16(0x202), m.PC())
}

func TestExit(t *testing.T) {
	m := newMachine(t, options.NewEmulator(options.SuperChip), 0x00, 0xFD, 0x60, 0x01)
	step(t, m, 1)
	assert.True(t, m.Halted())

	outcome, err := m.Step()
	assert.NoError(t, err)
	assert.Equal(t, Halted, outcome)
	assert.Equal(t, byte(0), m.Registers().V[0])
}

func TestUserFlags(t *testing.T) {
	m := newMachine(t, options.NewEmulator(options.SuperChip),
		0x60, 0x11,
		0x61, 0x22,
		0xF1, 0x75, // save V0-V1
		0x60, 0x00,
		0x61, 0x00,
		0xF1, 0x85, // load V0-V1
	)
	step(t, m, 3)
	flags := m.Flags()
	assert.Equal(t, byte(0x22), flags[1])

	step(t, m, 3)
	assert.Equal(t, byte(0x11), m.Registers().V[0])
	assert.Equal(t, byte(0x22), m.Registers().V[1])
}

func TestRegisterRange(t *testing.T) {
	m := newMachine(t, options.NewEmulator(options.XOChip),
		0x61, 0x01,
		0x62, 0x02,
		0x63, 0x03,
		0xA3, 0x00,
		0x53, 0x12, // save V3..V1
		0x51, 0x33, // load V1..V3
	)
	step(t, m, 5)
	assert.Equal(t, byte(3), m.Memory().Read(0x300))
	assert.Equal(t, byte(2), m.Memory().Read(0x301))
	assert.Equal(t, byte(1), m.Memory().Read(0x302))
	assert.Equal(t, uint16(0x300), m.Registers().I)

	step(t, m, 1)
	assert.Equal(t, byte(3), m.Registers().V[1])
	assert.Equal(t, byte(1), m.Registers().V[3])
}

func TestHighResLargeSprite(t *testing.T) {
	opts := options.NewEmulator(options.SuperChip)
	m := newMachine(t, opts,
		0x00, 0xFF, // high resolution
		0xA3, 0x00,
		0xD0, 0x00, // 16x16 sprite
	)
	for i := range uint16(32) {
		m.Memory().Write(0x300+i, 0xFF)
	}
	step(t, m, 3)

	fb := m.Display()
	assert.True(t, fb.HighRes())
	assert.Equal(t, 256, fb.Snapshot().Lit())
	assert.True(t, m.Registers().HighRes)
}

func TestScrollInstructions(t *testing.T) {
	opts := options.NewEmulator(options.XOChip)
	m := newMachine(t, opts,
		0xA3, 0x00,
		0xD0, 0x01, // pixel at 0,0
		0x00, 0xC2, // down 2
		0x00, 0xFB, // right 4
		0x00, 0xD1, // up 1
	)
	m.Memory().Write(0x300, 0x80)
	step(t, m, 5)
	assert.Equal(t, byte(1), m.Display().Pixel(4, 1))
	assert.Equal(t, 1, m.Display().Snapshot().Lit())
}

func TestPlaneSelection(t *testing.T) {
	m := newMachine(t, options.NewEmulator(options.XOChip),
		0xF3, 0x01, // planes 0 and 1
		0xA3, 0x00,
		0xD0, 0x01,
	)
	m.Memory().Write(0x300, 0x80) // plane 0
	m.Memory().Write(0x301, 0x80) // plane 1
	step(t, m, 3)
	assert.Equal(t, byte(3), m.Display().Pixel(0, 0))
	assert.Equal(t, byte(3), m.Registers().Planes)
}

func TestAudio(t *testing.T) {
	m := newMachine(t, options.NewEmulator(options.XOChip),
		0xA3, 0x00,
		0xF0, 0x02,
		0x60, 0x80,
		0xF0, 0x3A,
	)
	m.Memory().Write(0x30F, 0xAA)
	assert.Equal(t, byte(DefaultPitch), m.Audio().Pitch)
	step(t, m, 4)
	audio := m.Audio()
	assert.Equal(t, byte(0xAA), audio.Pattern[15])
	assert.Equal(t, byte(0x80), audio.Pitch)
}

func TestInstructionAt(t *testing.T) {
	m := newClassic(t, 0x60, 0x05)
	ins, err := m.InstructionAt(0x200)
	assert.NoError(t, err)
	assert.Equal(t, chip8.LoadImm, ins.Kind)
	assert.Equal(t, uint64(0), m.Cycles())
}

func TestRegistersString(t *testing.T) {
	m := newClassic(t, 0x6A, 0x42)
	step(t, m, 1)
	s := m.Registers().String()
	assert.Contains(t, s, "PC=0202")
	assert.Contains(t, s, "VA=42")
}
