package chip8

import (
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction is a decoded instruction with its operand fields extracted.
type Instruction struct {
	Kind   Kind
	Opcode uint16

	X   byte   // register index from the second nibble
	Y   byte   // register index from the third nibble
	N   byte   // lowest nibble
	NN  byte   // lowest byte
	NNN uint16 // lowest 12 bits

	Long uint16 // operand word of LoadLongI
}

// baseInstructions maps the base instruction set to the shared CHIP-8
// instruction definitions, which provide mnemonics and classification.
var baseInstructions = map[Kind]*chip8.Instruction{
	ClearScreen:     chip8.ClsInst,
	Return:          chip8.RetInst,
	Jump:            chip8.JpInst,
	Call:            chip8.CallInst,
	SkipEqualImm:    chip8.SeInst,
	SkipNotEqualImm: chip8.SneInst,
	SkipEqual:       chip8.SeInst,
	LoadImm:         chip8.LdInst,
	AddImm:          chip8.AddInst,
	Move:            chip8.LdInst,
	Or:              chip8.OrInst,
	And:             chip8.AndInst,
	Xor:             chip8.XorInst,
	Add:             chip8.AddInst,
	Sub:             chip8.SubInst,
	ShiftRight:      chip8.ShrInst,
	SubReverse:      chip8.SubnInst,
	ShiftLeft:       chip8.ShlInst,
	SkipNotEqual:    chip8.SneInst,
	LoadIndex:       chip8.LdInst,
	JumpOffset:      chip8.JpInst,
	Random:          chip8.RndInst,
	Draw:            chip8.DrwInst,
	SkipKey:         chip8.SkpInst,
	SkipNotKey:      chip8.SknpInst,
	LoadDelay:       chip8.LdInst,
	WaitKey:         chip8.LdInst,
	SetDelay:        chip8.LdInst,
	SetSound:        chip8.LdInst,
	AddIndex:        chip8.AddInst,
	SmallFont:       chip8.LdInst,
	BCD:             chip8.LdInst,
	Store:           chip8.LdInst,
	Load:            chip8.LdInst,
}

// extendedNames contains the mnemonics of the SUPER-CHIP and XO-CHIP extensions.
var extendedNames = map[Kind]string{
	ScrollDown:   "scd",
	ScrollRight:  "scr",
	ScrollLeft:   "scl",
	Exit:         "exit",
	LowRes:       "low",
	HighRes:      "high",
	ScrollUp:     "scu",
	StoreRange:   "save",
	LoadRange:    "load",
	SelectPlanes: "plane",
	LoadAudio:    "audio",
	SetPitch:     "pitch",
}

// Name returns the instruction mnemonic.
func (i Instruction) Name() string {
	if ins, ok := baseInstructions[i.Kind]; ok {
		return ins.Name
	}
	switch i.Kind {
	case LargeFont, SaveFlags, LoadFlags, LoadLongI:
		return chip8.LdInst.Name
	}
	return extendedNames[i.Kind]
}

// Size returns the length of the instruction in bytes.
func (i Instruction) Size() uint16 {
	if i.Kind == LoadLongI {
		return 4
	}
	return 2
}

// IsJump returns true if the instruction is an unconditional jump.
func (i Instruction) IsJump() bool {
	return i.Kind == Jump || i.Kind == JumpOffset
}

// IsCall returns true if the instruction is a subroutine call.
func (i Instruction) IsCall() bool {
	return i.Kind == Call
}

// IsReturn returns true if the instruction returns from a subroutine.
func (i Instruction) IsReturn() bool {
	return i.Kind == Return
}

// IsSkip returns true if the instruction conditionally skips the next instruction.
func (i Instruction) IsSkip() bool {
	ins, ok := baseInstructions[i.Kind]
	if !ok {
		return false
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

// IsDraw returns true if the instruction changes the framebuffer.
func (i Instruction) IsDraw() bool {
	switch i.Kind {
	case ClearScreen, Draw, ScrollDown, ScrollUp, ScrollLeft, ScrollRight, LowRes, HighRes:
		return true
	default:
		return false
	}
}
