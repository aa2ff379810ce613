// Package chip8 decodes CHIP-8, SUPER-CHIP and XO-CHIP opcodes.
//
// # Instruction Set
//
// All instructions are 2 bytes long and stored big-endian. The only exception
// is the XO-CHIP long index load F000 NNNN which is followed by a 16 bit
// operand word and therefore occupies 4 bytes.
//
// Operand fields are extracted from the opcode nibbles:
//
//	X   = (opcode & 0x0F00) >> 8
//	Y   = (opcode & 0x00F0) >> 4
//	N   = opcode & 0x000F
//	NN  = opcode & 0x00FF
//	NNN = opcode & 0x0FFF
//
// # Variants
//
// Decoding depends on the machine variant. Opcodes that the variant does not
// implement result in ErrUnknownOpcode:
//   - CHIP-8: the 35 base opcodes, except for 0NNN machine code routines
//   - SUPER-CHIP: adds 00CN, 00FB-00FF, FX30, FX75, FX85 and 16x16 sprites for DXY0
//   - XO-CHIP: adds 00DN, 5XY2, 5XY3, F000 NNNN, FN01, F002 and FX3A
//
// # Usage Example
//
//	ins, err := chip8.Fetch(mem, pc, options.XOChip)
//	if err != nil {
//		return fmt.Errorf("decoding instruction at %04X: %w", pc, err)
//	}
//	fmt.Println(ins.String())
package chip8
