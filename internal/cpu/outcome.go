package cpu

// Outcome describes the result of a Step call.
type Outcome uint8

// Step outcomes.
const (
	Executed          Outcome = iota // an instruction was executed
	Idle                             // an instruction was executed that jumped to itself
	WaitingForDisplay                // a draw waits for the next display sync, nothing was executed
	WaitingForKey                    // FX0A waits for a key release, nothing was executed
	Halted                           // the program exited, nothing was executed
	Faulted                          // the instruction failed, see the returned error
)

var outcomeNames = [...]string{
	Executed:          "executed",
	Idle:              "idle",
	WaitingForDisplay: "waiting for display",
	WaitingForKey:     "waiting for key",
	Halted:            "halted",
	Faulted:           "faulted",
}

// String returns the outcome name.
func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// DidExecute returns whether an instruction was executed.
func (o Outcome) DidExecute() bool {
	return o == Executed || o == Idle
}
