// Package emulator provides the control surface of the virtual machine that
// hosts, test harnesses and the runner use. It combines the CPU core with the
// debug controller and drives the timers.
//
// A host typically runs one frame of instructions and then ticks the timers:
//
//	emu, err := emulator.New(options.NewEmulator(options.SuperChip))
//	if err != nil {
//		return err
//	}
//	if err := emu.Load(rom); err != nil {
//		return err
//	}
//	for {
//		if _, err := emu.RunFrame(); err != nil {
//			return err
//		}
//		emu.TickTimers(1)
//		draw(emu.Framebuffer())
//	}
//
// The emulator is single threaded and not safe for concurrent use.
package emulator

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/debugger"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/retroenv/chip8vm/internal/options"
)

// ErrNoProgram is returned when resetting before a program was loaded.
var ErrNoProgram = errors.New("no program loaded")

// LoadOption configures how a program is loaded.
type LoadOption func(*loadConfig)

type loadConfig struct {
	preload    uint16
	hasPreload bool
}

// WithPreload writes the word to the reserved address 0x1FE before execution.
// Test suites use it to select a test without user input.
func WithPreload(word uint16) LoadOption {
	return func(cfg *loadConfig) {
		cfg.preload = word
		cfg.hasPreload = true
	}
}

// Tracer is called for every executed instruction with the address and the
// cycle count before its execution.
type Tracer func(pc uint16, cycle uint64, ins chip8.Instruction)

// Emulator is a virtual machine with breakpoint support.
type Emulator struct {
	opts     options.Emulator
	machine  *cpu.Machine
	debugger *debugger.Controller
	tracer   Tracer

	program []byte
	load    loadConfig
}

// New returns a new emulator for the options with an empty program loaded.
func New(opts options.Emulator) (*Emulator, error) {
	machine, err := cpu.New(opts)
	if err != nil {
		return nil, fmt.Errorf("creating machine: %w", err)
	}
	e := &Emulator{
		opts:    opts,
		machine: machine,
	}
	e.debugger = debugger.New(stepper{e})
	return e, nil
}

// SetTracer sets the function that is called for every executed instruction.
// A nil tracer disables tracing.
func (e *Emulator) SetTracer(tracer Tracer) {
	e.tracer = tracer
}

// Options returns the options the emulator was created with.
func (e *Emulator) Options() options.Emulator {
	return e.opts
}

// Load resets the machine and loads the program at 0x200.
// Breakpoints and the run state of the debug controller are kept.
func (e *Emulator) Load(program []byte, opts ...LoadOption) error {
	var cfg loadConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	machine, err := e.newMachine(program, cfg)
	if err != nil {
		return err
	}

	e.program = append([]byte{}, program...)
	e.load = cfg
	e.attach(machine)
	return nil
}

// SoftReset reloads the current program into a fresh machine. The user flag
// registers, breakpoints and the run state are kept.
func (e *Emulator) SoftReset() error {
	if e.program == nil {
		return ErrNoProgram
	}

	machine, err := e.newMachine(e.program, e.load)
	if err != nil {
		return err
	}
	machine.SetFlags(e.machine.Flags())
	e.attach(machine)
	return nil
}

func (e *Emulator) newMachine(program []byte, cfg loadConfig) (*cpu.Machine, error) {
	machine, err := cpu.New(e.opts)
	if err != nil {
		return nil, fmt.Errorf("creating machine: %w", err)
	}
	if err := machine.LoadProgram(program); err != nil {
		return nil, err
	}
	if cfg.hasPreload {
		machine.Memory().WriteWord(memory.TestWordAddress, cfg.preload)
	}
	return machine, nil
}

func (e *Emulator) attach(machine *cpu.Machine) {
	e.machine = machine
	e.debugger.Attach(stepper{e})
}

// stepper adapts the current machine of the emulator to the debug controller
// and reports executed instructions to the tracer.
type stepper struct {
	e *Emulator
}

func (s stepper) Step() (cpu.Outcome, error) {
	m := s.e.machine
	if s.e.tracer == nil {
		return m.Step()
	}

	pc, cycle := m.PC(), m.Cycles()
	ins, decodeErr := m.InstructionAt(pc)
	outcome, err := m.Step()
	if decodeErr == nil && outcome.DidExecute() {
		s.e.tracer(pc, cycle, ins)
	}
	return outcome, err
}

func (s stepper) SkipInstruction() {
	s.e.machine.SkipInstruction()
}

func (s stepper) PC() uint16 {
	return s.e.machine.PC()
}

// RunCycles executes up to n instructions. It returns early at a breakpoint,
// when the program waits for the display or a key, idles, halts or fails.
func (e *Emulator) RunCycles(n int) (debugger.RunResult, error) {
	return e.debugger.RunCycles(n)
}

// RunFrame executes the configured number of instructions per frame.
func (e *Emulator) RunFrame() (debugger.RunResult, error) {
	return e.debugger.RunCycles(e.opts.InstructionsPerFrame)
}

// TickTimers advances the timers by the given number of frames, which may be
// fractional. Crossing at least one whole frame counts as a display refresh
// and releases a draw that waits for it. It returns the whole frames crossed.
func (e *Emulator) TickTimers(frames float64) int {
	whole := e.machine.Timers().Tick(frames)
	if whole > 0 {
		e.machine.DisplaySync()
	}
	return whole
}

// SetBreakpoint adds a breakpoint at the address.
func (e *Emulator) SetBreakpoint(address uint16) {
	e.debugger.SetBreakpoint(address)
}

// ClearBreakpoint removes the breakpoint at the address.
func (e *Emulator) ClearBreakpoint(address uint16) {
	e.debugger.ClearBreakpoint(address)
}

// Breakpoints returns all breakpoint addresses in ascending order.
func (e *Emulator) Breakpoints() []uint16 {
	return e.debugger.Breakpoints()
}

// Pause stops execution until Resume is called.
func (e *Emulator) Pause() {
	e.debugger.Pause()
}

// Resume continues execution after a pause or an acknowledged breakpoint.
func (e *Emulator) Resume() {
	e.debugger.Resume()
}

// StepOne executes a single instruction while paused.
func (e *Emulator) StepOne() (debugger.RunResult, error) {
	return e.debugger.StepOne()
}

// StepOver executes a single instruction while paused. A subroutine call is
// not stepped into: the emulator resumes and the next RunCycles or RunFrame
// stops with debugger.ReasonTarget at the instruction following the call.
// It returns whether the emulator was resumed.
func (e *Emulator) StepOver() (bool, error) {
	pc := e.machine.PC()
	ins, err := e.machine.InstructionAt(pc)
	if err != nil || !ins.IsCall() {
		_, err := e.debugger.StepOne()
		return false, err
	}
	if err := e.debugger.RunTo(pc + ins.Size()); err != nil {
		return false, err
	}
	return true, nil
}

// SkipInstruction moves the paused emulator past the instruction at the
// program counter without executing it. This continues a program after an
// unknown opcode, which faults again on every retry otherwise.
func (e *Emulator) SkipInstruction() error {
	return e.debugger.Skip()
}

// State returns the run state of the debug controller.
func (e *Emulator) State() debugger.State {
	return e.debugger.State()
}

// Registers returns a snapshot of the machine registers.
func (e *Emulator) Registers() cpu.Registers {
	return e.machine.Registers()
}

// Framebuffer returns a deep copy of the display.
func (e *Emulator) Framebuffer() display.Snapshot {
	return e.machine.Display().Snapshot()
}

// SoundActive returns whether the buzzer should currently sound.
func (e *Emulator) SoundActive() bool {
	return e.machine.Timers().SoundActive()
}

// Audio returns the XO-CHIP audio pattern and pitch.
func (e *Emulator) Audio() cpu.Audio {
	return e.machine.Audio()
}

// PressKey marks the key 0x0-0xF as pressed.
func (e *Emulator) PressKey(key byte) {
	e.machine.PressKey(key)
}

// ReleaseKey marks the key as released, completing a pending FX0A.
func (e *Emulator) ReleaseKey(key byte) {
	e.machine.ReleaseKey(key)
}

// InstructionAt decodes the instruction at the address without executing it.
func (e *Emulator) InstructionAt(address uint16) (chip8.Instruction, error) {
	return e.machine.InstructionAt(address)
}

// ReadMemory returns a copy of length bytes starting at the address.
func (e *Emulator) ReadMemory(address uint16, length int) []byte {
	return e.machine.Memory().Slice(address, length)
}
