package options

import (
	"fmt"
	"strings"
)

// Variant selects the instruction set and memory model of the machine.
type Variant uint8

// Supported instruction set variants.
const (
	Classic   Variant = iota // COSMAC VIP CHIP-8
	SuperChip                // CHIP-48 / SUPER-CHIP 1.1
	XOChip                   // XO-CHIP
)

// Memory sizes of the supported variants.
const (
	ClassicMemorySize = 0x1000
	XOChipMemorySize  = 0x10000
)

var variantNames = map[Variant]string{
	Classic:   "chip8",
	SuperChip: "schip",
	XOChip:    "xochip",
}

// ParseVariant converts a variant name into a Variant.
// Empty input selects the classic variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "chip", "chip8", "chip-8", "classic":
		return Classic, nil
	case "s", "schip", "superchip", "super-chip", "super chip", "chip48", "chip-48":
		return SuperChip, nil
	case "xo", "xochip", "xo-chip":
		return XOChip, nil
	default:
		return Classic, fmt.Errorf("%w: unknown variant '%s'", ErrInvalidConfiguration, s)
	}
}

// String returns the canonical short name of the variant.
func (v Variant) String() string {
	if name, ok := variantNames[v]; ok {
		return name
	}
	return fmt.Sprintf("variant(%d)", uint8(v))
}

// Valid returns whether the variant is one of the supported variants.
func (v Variant) Valid() bool {
	_, ok := variantNames[v]
	return ok
}

// Extended returns whether the variant supports the SUPER-CHIP extensions.
func (v Variant) Extended() bool {
	return v == SuperChip || v == XOChip
}

// MemorySize returns the size of the address space in bytes.
func (v Variant) MemorySize() int {
	if v == XOChip {
		return XOChipMemorySize
	}
	return ClassicMemorySize
}

// StackDepth returns the maximum call nesting, 0 means unbounded.
func (v Variant) StackDepth() int {
	switch v {
	case Classic:
		return 12
	case SuperChip:
		return 16
	default:
		return 0
	}
}

// Planes returns the number of bit planes of the framebuffer.
func (v Variant) Planes() int {
	if v == XOChip {
		return 4
	}
	return 1
}

// FlagRegisters returns the number of persistent user flag registers
// accessible by FX75/FX85.
func (v Variant) FlagRegisters() int {
	switch v {
	case SuperChip:
		return 8
	case XOChip:
		return 16
	default:
		return 0
	}
}
