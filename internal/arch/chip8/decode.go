package chip8

import (
	"errors"
	"fmt"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// ErrUnknownOpcode is returned for opcodes that the variant does not implement.
var ErrUnknownOpcode = errors.New("unknown opcode")

// WordReader provides big-endian word access to the address space.
type WordReader interface {
	ReadWord(address uint16) uint16
}

// pattern binds an opcode pattern to the instruction kind it decodes to.
type pattern struct {
	info chip8.OpcodeInfo
	kind Kind
}

func (p pattern) matches(opcode uint16) bool {
	return p.info.Mask&opcode == p.info.Value
}

// basePatterns contains the kinds of the base instruction set. The masks
// reject opcodes with unused nibbles set, like 9XY1.
var basePatterns = []pattern{
	{chip8.OpcodeInfo{Value: 0x00E0, Mask: 0xFFFF}, ClearScreen},
	{chip8.OpcodeInfo{Value: 0x00EE, Mask: 0xFFFF}, Return},
	{chip8.OpcodeInfo{Value: 0x1000, Mask: 0xF000}, Jump},
	{chip8.OpcodeInfo{Value: 0x2000, Mask: 0xF000}, Call},
	{chip8.OpcodeInfo{Value: 0x3000, Mask: 0xF000}, SkipEqualImm},
	{chip8.OpcodeInfo{Value: 0x4000, Mask: 0xF000}, SkipNotEqualImm},
	{chip8.OpcodeInfo{Value: 0x5000, Mask: 0xF00F}, SkipEqual},
	{chip8.OpcodeInfo{Value: 0x6000, Mask: 0xF000}, LoadImm},
	{chip8.OpcodeInfo{Value: 0x7000, Mask: 0xF000}, AddImm},
	{chip8.OpcodeInfo{Value: 0x8000, Mask: 0xF00F}, Move},
	{chip8.OpcodeInfo{Value: 0x8001, Mask: 0xF00F}, Or},
	{chip8.OpcodeInfo{Value: 0x8002, Mask: 0xF00F}, And},
	{chip8.OpcodeInfo{Value: 0x8003, Mask: 0xF00F}, Xor},
	{chip8.OpcodeInfo{Value: 0x8004, Mask: 0xF00F}, Add},
	{chip8.OpcodeInfo{Value: 0x8005, Mask: 0xF00F}, Sub},
	{chip8.OpcodeInfo{Value: 0x8006, Mask: 0xF00F}, ShiftRight},
	{chip8.OpcodeInfo{Value: 0x8007, Mask: 0xF00F}, SubReverse},
	{chip8.OpcodeInfo{Value: 0x800E, Mask: 0xF00F}, ShiftLeft},
	{chip8.OpcodeInfo{Value: 0x9000, Mask: 0xF00F}, SkipNotEqual},
	{chip8.OpcodeInfo{Value: 0xA000, Mask: 0xF000}, LoadIndex},
	{chip8.OpcodeInfo{Value: 0xB000, Mask: 0xF000}, JumpOffset},
	{chip8.OpcodeInfo{Value: 0xC000, Mask: 0xF000}, Random},
	{chip8.OpcodeInfo{Value: 0xD000, Mask: 0xF000}, Draw},
	{chip8.OpcodeInfo{Value: 0xE09E, Mask: 0xF0FF}, SkipKey},
	{chip8.OpcodeInfo{Value: 0xE0A1, Mask: 0xF0FF}, SkipNotKey},
	{chip8.OpcodeInfo{Value: 0xF007, Mask: 0xF0FF}, LoadDelay},
	{chip8.OpcodeInfo{Value: 0xF00A, Mask: 0xF0FF}, WaitKey},
	{chip8.OpcodeInfo{Value: 0xF015, Mask: 0xF0FF}, SetDelay},
	{chip8.OpcodeInfo{Value: 0xF018, Mask: 0xF0FF}, SetSound},
	{chip8.OpcodeInfo{Value: 0xF01E, Mask: 0xF0FF}, AddIndex},
	{chip8.OpcodeInfo{Value: 0xF029, Mask: 0xF0FF}, SmallFont},
	{chip8.OpcodeInfo{Value: 0xF033, Mask: 0xF0FF}, BCD},
	{chip8.OpcodeInfo{Value: 0xF055, Mask: 0xF0FF}, Store},
	{chip8.OpcodeInfo{Value: 0xF065, Mask: 0xF0FF}, Load},
}

// baseKinds indexes the base patterns by the opcode value of the shared
// CHIP-8 opcode table.
var baseKinds = indexPatterns(basePatterns)

func indexPatterns(patterns []pattern) map[uint16]pattern {
	index := make(map[uint16]pattern, len(patterns))
	for _, p := range patterns {
		index[p.info.Value] = p
	}
	return index
}

// extension is a SUPER-CHIP or XO-CHIP instruction that is only decoded for
// the variants that support it.
type extension struct {
	pattern
	supported func(options.Variant) bool
}

func xoChipOnly(variant options.Variant) bool {
	return variant == options.XOChip
}

var extensions = []extension{
	{pattern{chip8.OpcodeInfo{Value: 0x00C0, Mask: 0xFFF0}, ScrollDown}, options.Variant.Extended},
	{pattern{chip8.OpcodeInfo{Value: 0x00FB, Mask: 0xFFFF}, ScrollRight}, options.Variant.Extended},
	{pattern{chip8.OpcodeInfo{Value: 0x00FC, Mask: 0xFFFF}, ScrollLeft}, options.Variant.Extended},
	{pattern{chip8.OpcodeInfo{Value: 0x00FD, Mask: 0xFFFF}, Exit}, options.Variant.Extended},
	{pattern{chip8.OpcodeInfo{Value: 0x00FE, Mask: 0xFFFF}, LowRes}, options.Variant.Extended},
	{pattern{chip8.OpcodeInfo{Value: 0x00FF, Mask: 0xFFFF}, HighRes}, options.Variant.Extended},
	{pattern{chip8.OpcodeInfo{Value: 0xF030, Mask: 0xF0FF}, LargeFont}, options.Variant.Extended},
	{pattern{chip8.OpcodeInfo{Value: 0xF075, Mask: 0xF0FF}, SaveFlags}, options.Variant.Extended},
	{pattern{chip8.OpcodeInfo{Value: 0xF085, Mask: 0xF0FF}, LoadFlags}, options.Variant.Extended},

	{pattern{chip8.OpcodeInfo{Value: 0x00D0, Mask: 0xFFF0}, ScrollUp}, xoChipOnly},
	{pattern{chip8.OpcodeInfo{Value: 0x5002, Mask: 0xF00F}, StoreRange}, xoChipOnly},
	{pattern{chip8.OpcodeInfo{Value: 0x5003, Mask: 0xF00F}, LoadRange}, xoChipOnly},
	{pattern{chip8.OpcodeInfo{Value: 0xF000, Mask: 0xFFFF}, LoadLongI}, xoChipOnly},
	{pattern{chip8.OpcodeInfo{Value: 0xF001, Mask: 0xF0FF}, SelectPlanes}, xoChipOnly},
	{pattern{chip8.OpcodeInfo{Value: 0xF002, Mask: 0xFFFF}, LoadAudio}, xoChipOnly},
	{pattern{chip8.OpcodeInfo{Value: 0xF03A, Mask: 0xF0FF}, SetPitch}, xoChipOnly},
}

// Fetch decodes the instruction at the given address. For the XO-CHIP long
// index load the operand word following the opcode is read as well.
func Fetch(mem WordReader, address uint16, variant options.Variant) (Instruction, error) {
	ins, err := Decode(mem.ReadWord(address), variant)
	if err != nil {
		return ins, err
	}
	if ins.Kind == LoadLongI {
		ins.Long = mem.ReadWord(address + 2)
	}
	return ins, nil
}

// Decode decodes a single opcode for the given variant.
// The operand of a LoadLongI instruction is not part of the opcode and is left zero.
func Decode(opcode uint16, variant options.Variant) (Instruction, error) {
	ins := Instruction{
		Opcode: opcode,
		X:      byte(opcode>>8) & 0xF,
		Y:      byte(opcode>>4) & 0xF,
		N:      byte(opcode) & 0xF,
		NN:     byte(opcode),
		NNN:    opcode & 0x0FFF,
	}

	kind := decodeBase(opcode)
	if kind == Invalid {
		kind = decodeExtension(opcode, variant)
	}
	if kind == Invalid {
		return ins, fmt.Errorf("%w: %04X for variant %s", ErrUnknownOpcode, opcode, variant)
	}
	ins.Kind = kind
	return ins, nil
}

// decodeBase looks the opcode up in the shared CHIP-8 opcode table.
// Table entries without a base kind, like the 0NNN machine code call, are
// not executable.
func decodeBase(opcode uint16) Kind {
	for _, op := range chip8.Opcodes[int(opcode>>12)] {
		if op.Info.Mask&opcode != op.Info.Value {
			continue
		}
		if p, ok := baseKinds[op.Info.Value]; ok && p.matches(opcode) {
			return p.kind
		}
	}
	return Invalid
}

func decodeExtension(opcode uint16, variant options.Variant) Kind {
	for _, ext := range extensions {
		if ext.matches(opcode) && ext.supported(variant) {
			return ext.kind
		}
	}
	return Invalid
}
