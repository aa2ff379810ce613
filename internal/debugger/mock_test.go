package debugger

import (
	"github.com/retroenv/chip8vm/internal/cpu"
)

// mockMachine executes a linear program of 2 byte instructions. Outcomes and
// errors can be scripted per address.
type mockMachine struct {
	pc       uint16
	outcomes map[uint16]cpu.Outcome
	errs     map[uint16]error
	executed []uint16
}

func newMockMachine() *mockMachine {
	return &mockMachine{
		pc:       0x200,
		outcomes: make(map[uint16]cpu.Outcome),
		errs:     make(map[uint16]error),
	}
}

func (m *mockMachine) Step() (cpu.Outcome, error) {
	if err, ok := m.errs[m.pc]; ok {
		return cpu.Faulted, err
	}
	outcome, ok := m.outcomes[m.pc]
	if !ok {
		outcome = cpu.Executed
	}
	if outcome.DidExecute() {
		m.executed = append(m.executed, m.pc)
		if outcome != cpu.Idle {
			m.pc += 2
		}
	}
	return outcome, nil
}

func (m *mockMachine) SkipInstruction() {
	m.pc += 2
}

func (m *mockMachine) PC() uint16 {
	return m.pc
}
