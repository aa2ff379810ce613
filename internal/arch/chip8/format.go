package chip8

import "fmt"

// String returns the instruction in assembly syntax, for example "ld V0, $05".
func (i Instruction) String() string {
	name := i.Name()
	if params := i.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// params formats the instruction parameters.
func (i Instruction) params() string {
	switch i.Kind {
	case Jump, Call:
		return fmt.Sprintf("$%03X", i.NNN)
	case JumpOffset:
		return fmt.Sprintf("V0, $%03X", i.NNN)
	case SkipEqualImm, SkipNotEqualImm, LoadImm, AddImm, Random:
		return fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case SkipEqual, SkipNotEqual, Move, Or, And, Xor, Add, Sub, SubReverse:
		return fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case ShiftRight, ShiftLeft, SkipKey, SkipNotKey, SetPitch:
		return fmt.Sprintf("V%X", i.X)
	case LoadIndex:
		return fmt.Sprintf("I, $%03X", i.NNN)
	case LoadLongI:
		return fmt.Sprintf("I, $%04X", i.Long)
	case Draw:
		return fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case ScrollDown, ScrollUp:
		return fmt.Sprintf("$%X", i.N)
	case SelectPlanes:
		return fmt.Sprintf("$%X", i.X)
	case StoreRange, LoadRange:
		return fmt.Sprintf("V%X-V%X", i.X, i.Y)
	}
	return i.loadParams()
}

// loadParams formats the FX load variants.
func (i Instruction) loadParams() string {
	switch i.Kind {
	case LoadDelay:
		return fmt.Sprintf("V%X, DT", i.X)
	case WaitKey:
		return fmt.Sprintf("V%X, K", i.X)
	case SetDelay:
		return fmt.Sprintf("DT, V%X", i.X)
	case SetSound:
		return fmt.Sprintf("ST, V%X", i.X)
	case AddIndex:
		return fmt.Sprintf("I, V%X", i.X)
	case SmallFont:
		return fmt.Sprintf("F, V%X", i.X)
	case LargeFont:
		return fmt.Sprintf("HF, V%X", i.X)
	case BCD:
		return fmt.Sprintf("B, V%X", i.X)
	case Store:
		return fmt.Sprintf("[I], V%X", i.X)
	case Load:
		return fmt.Sprintf("V%X, [I]", i.X)
	case SaveFlags:
		return fmt.Sprintf("R, V%X", i.X)
	case LoadFlags:
		return fmt.Sprintf("V%X, R", i.X)
	}
	return ""
}
