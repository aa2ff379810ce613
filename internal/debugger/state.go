package debugger

import "github.com/retroenv/chip8vm/internal/cpu"

// State is the run state of the controller.
type State uint8

// Run states.
const (
	Running State = iota
	Paused
	SteppingOne
	AwaitingBreakpointAck
)

var stateNames = [...]string{
	Running:               "running",
	Paused:                "paused",
	SteppingOne:           "stepping",
	AwaitingBreakpointAck: "breakpoint",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// StopReason describes why RunCycles returned.
type StopReason uint8

// Stop reasons.
const (
	ReasonBudget      StopReason = iota // the cycle budget was used up
	ReasonPaused                        // the controller is not running
	ReasonBreakpoint                    // a breakpoint was reached, its instruction was not executed
	ReasonDisplayWait                   // a draw waits for the next display sync
	ReasonKeyWait                       // the program waits for a key release
	ReasonIdle                          // the program jumped to itself
	ReasonHalted                        // the program exited
	ReasonError                         // the instruction failed
	ReasonTarget                        // the address of a RunTo request was reached
)

var reasonNames = [...]string{
	ReasonBudget:      "budget",
	ReasonPaused:      "paused",
	ReasonBreakpoint:  "breakpoint",
	ReasonDisplayWait: "display wait",
	ReasonKeyWait:     "key wait",
	ReasonIdle:        "idle",
	ReasonHalted:      "halted",
	ReasonError:       "error",
	ReasonTarget:      "target",
}

func (r StopReason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// outcomeReasons maps step outcomes that interrupt a run to their stop reason.
var outcomeReasons = map[cpu.Outcome]StopReason{
	cpu.Idle:              ReasonIdle,
	cpu.WaitingForDisplay: ReasonDisplayWait,
	cpu.WaitingForKey:     ReasonKeyWait,
	cpu.Halted:            ReasonHalted,
}

// RunResult is the result of a run or step request.
type RunResult struct {
	Executed int        // number of executed instructions
	Reason   StopReason // why execution stopped
	PC       uint16     // program counter after the run
}
