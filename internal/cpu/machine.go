// Package cpu implements the CHIP-8 CPU core: registers, call stack and the
// fetch-decode-execute cycle.
package cpu

import (
	"fmt"

	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/chip8vm/internal/rng"
	"github.com/retroenv/chip8vm/internal/timer"
)

// RegisterCount is the number of general purpose registers V0-VF.
const RegisterCount = 16

// DefaultPitch is the XO-CHIP audio pitch register value for a 4000 Hz playback rate.
const DefaultPitch = 64

// Audio contains the XO-CHIP audio state for an external audio collaborator.
type Audio struct {
	Pattern [16]byte // 128 1-bit samples
	Pitch   byte
}

// Machine contains the complete state of a virtual machine.
// It is not safe for concurrent use.
type Machine struct {
	v     [RegisterCount]byte
	i     uint16
	pc    uint16
	stack []uint16
	flags [RegisterCount]byte

	variant    options.Variant
	quirks     options.Quirks
	stackDepth int

	mem     *memory.Memory
	display *display.Framebuffer
	timers  *timer.Pair
	rng     *rng.Source
	keypad  keypad
	audio   Audio

	waitDisplay bool
	halted      bool
	idle        bool // set by the current instruction when jumping to itself
	cycles      uint64
}

// New returns a new machine for the given options with an empty program.
func New(opts options.Emulator) (*Machine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	variant := opts.Variant
	mem, err := memory.New(variant.MemorySize())
	if err != nil {
		return nil, fmt.Errorf("creating memory: %w", err)
	}

	m := &Machine{
		pc:         memory.ProgramStart,
		variant:    variant,
		quirks:     opts.Quirks,
		stackDepth: variant.StackDepth(),
		mem:        mem,
		display:    display.New(variant.Planes(), opts.Quirks.ScreenWrap),
		timers:     timer.New(),
		rng:        rng.NewFromOptional(opts.Seed),
		audio:      Audio{Pitch: DefaultPitch},
	}
	m.keypad.reset()
	return m, nil
}

// LoadProgram copies the program into memory and resets the program counter.
func (m *Machine) LoadProgram(program []byte) error {
	if err := m.mem.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	m.pc = memory.ProgramStart
	return nil
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// Variant returns the instruction set variant of the machine.
func (m *Machine) Variant() options.Variant {
	return m.variant
}

// Quirks returns the active quirk configuration.
func (m *Machine) Quirks() options.Quirks {
	return m.quirks
}

// Memory returns the address space of the machine.
func (m *Machine) Memory() *memory.Memory {
	return m.mem
}

// Display returns the framebuffer of the machine.
func (m *Machine) Display() *display.Framebuffer {
	return m.display
}

// Timers returns the delay and sound timers of the machine.
func (m *Machine) Timers() *timer.Pair {
	return m.timers
}

// Audio returns the XO-CHIP audio state.
func (m *Machine) Audio() Audio {
	return m.audio
}

// Cycles returns the number of executed instructions.
func (m *Machine) Cycles() uint64 {
	return m.cycles
}

// Halted returns whether the program exited.
func (m *Machine) Halted() bool {
	return m.halted
}

// Flags returns the persistent user flag registers used by FX75/FX85.
func (m *Machine) Flags() [RegisterCount]byte {
	return m.flags
}

// SetFlags restores the persistent user flag registers.
func (m *Machine) SetFlags(flags [RegisterCount]byte) {
	m.flags = flags
}

// DisplaySync signals a display refresh, releasing a draw that waits for it.
func (m *Machine) DisplaySync() {
	m.waitDisplay = false
}

// Registers returns a snapshot of the machine registers.
func (m *Machine) Registers() Registers {
	return Registers{
		V:                 m.v,
		I:                 m.i,
		PC:                m.pc,
		Stack:             append([]uint16(nil), m.stack...),
		Delay:             m.timers.Delay(),
		Sound:             m.timers.Sound(),
		Cycles:            m.cycles,
		HighRes:           m.display.HighRes(),
		Planes:            m.display.Selected(),
		Halted:            m.halted,
		WaitingForKey:     m.keypad.waiting,
		WaitingForDisplay: m.waitDisplay,
	}
}
