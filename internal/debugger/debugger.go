// Package debugger implements the breakpoint and single step controller that
// wraps the CPU step function.
package debugger

import (
	"errors"
	"slices"

	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/retrogolib/set"
)

// ErrNotPaused is returned when single stepping while the controller is running.
var ErrNotPaused = errors.New("controller is not paused")

// Stepper executes single instructions.
type Stepper interface {
	Step() (cpu.Outcome, error)
	SkipInstruction()
	PC() uint16
}

// Controller wraps a Stepper and adds breakpoints and run state handling.
// Breakpoints and the run state are independent of the attached machine.
type Controller struct {
	machine     Stepper
	breakpoints set.Set[uint16]
	state       State

	// skipBreakpoint steps past the acknowledged breakpoint once.
	skipBreakpoint bool

	// target is a one-shot stop address set by RunTo.
	target    uint16
	hasTarget bool
}

// New returns a new controller for the machine in running state.
func New(machine Stepper) *Controller {
	return &Controller{
		machine:     machine,
		breakpoints: set.New[uint16](),
		state:       Running,
	}
}

// Attach replaces the controlled machine, for example after loading a new
// program. Breakpoints and run state are kept.
func (c *Controller) Attach(machine Stepper) {
	c.machine = machine
	c.skipBreakpoint = false
	c.hasTarget = false
	if c.state == AwaitingBreakpointAck {
		c.state = Paused
	}
}

// State returns the current run state.
func (c *Controller) State() State {
	return c.state
}

// SetBreakpoint adds a breakpoint at the address.
func (c *Controller) SetBreakpoint(address uint16) {
	c.breakpoints.Add(address)
}

// ClearBreakpoint removes the breakpoint at the address.
func (c *Controller) ClearBreakpoint(address uint16) {
	delete(c.breakpoints, address)
}

// HasBreakpoint returns whether a breakpoint is set at the address.
func (c *Controller) HasBreakpoint(address uint16) bool {
	return c.breakpoints.Contains(address)
}

// Breakpoints returns all breakpoint addresses in ascending order.
func (c *Controller) Breakpoints() []uint16 {
	addresses := make([]uint16, 0, len(c.breakpoints))
	for address := range c.breakpoints {
		addresses = append(addresses, address)
	}
	slices.Sort(addresses)
	return addresses
}

// Pause stops a running controller.
func (c *Controller) Pause() {
	if c.state == Running {
		c.state = Paused
	}
}

// Resume continues execution. When stopped at a breakpoint, the instruction at
// the breakpoint is executed once without triggering the breakpoint again.
func (c *Controller) Resume() {
	switch c.state {
	case Paused:
		c.state = Running
	case AwaitingBreakpointAck:
		c.skipBreakpoint = true
		c.state = Running
	}
}

// StepOne executes a single instruction of a paused controller, ignoring a
// breakpoint at the current address. The controller stays paused.
func (c *Controller) StepOne() (RunResult, error) {
	if c.state != Paused && c.state != AwaitingBreakpointAck {
		return RunResult{Reason: ReasonPaused, PC: c.machine.PC()}, ErrNotPaused
	}
	previous := c.state
	c.state = SteppingOne
	c.skipBreakpoint = false

	outcome, err := c.machine.Step()
	c.state = Paused
	result := RunResult{PC: c.machine.PC(), Reason: ReasonPaused}
	if err != nil {
		result.Reason = ReasonError
		return result, err
	}
	if outcome.DidExecute() {
		result.Executed = 1
	} else if previous == AwaitingBreakpointAck {
		c.state = AwaitingBreakpointAck
	}
	if reason, ok := outcomeReasons[outcome]; ok {
		result.Reason = reason
	}
	return result, nil
}

// Skip moves a paused controller past the instruction at the current address
// without executing it, for example after an unknown opcode. The controller
// stays paused.
func (c *Controller) Skip() error {
	if c.state != Paused && c.state != AwaitingBreakpointAck {
		return ErrNotPaused
	}
	c.machine.SkipInstruction()
	c.skipBreakpoint = false
	c.state = Paused
	return nil
}

// RunTo resumes a paused controller until the program counter reaches the
// address. The next run then stops there with ReasonTarget and pauses.
// Breakpoints stay active while running to the address.
func (c *Controller) RunTo(address uint16) error {
	if c.state != Paused && c.state != AwaitingBreakpointAck {
		return ErrNotPaused
	}
	c.target = address
	c.hasTarget = true
	c.Resume()
	return nil
}

// RunCycles executes up to n instructions while the controller is running.
// It stops early at a breakpoint, when the machine waits or halts, or on error.
// Errors and halts pause the controller.
func (c *Controller) RunCycles(n int) (RunResult, error) {
	result := RunResult{Reason: ReasonBudget}
	if c.state != Running {
		result.Reason = ReasonPaused
		result.PC = c.machine.PC()
		return result, nil
	}

	for result.Executed < n {
		pc := c.machine.PC()
		reachedTarget := c.hasTarget && pc == c.target
		if reachedTarget {
			c.hasTarget = false
		}
		if !c.skipBreakpoint && c.breakpoints.Contains(pc) {
			c.state = AwaitingBreakpointAck
			result.Reason = ReasonBreakpoint
			break
		}
		if reachedTarget {
			c.state = Paused
			result.Reason = ReasonTarget
			break
		}

		outcome, err := c.machine.Step()
		if err != nil {
			c.state = Paused
			result.Reason = ReasonError
			result.PC = c.machine.PC()
			return result, err
		}
		if outcome.DidExecute() {
			c.skipBreakpoint = false
			result.Executed++
		}

		if reason, ok := outcomeReasons[outcome]; ok {
			result.Reason = reason
			if outcome == cpu.Halted {
				c.state = Paused
			}
			break
		}
	}

	result.PC = c.machine.PC()
	return result, nil
}
