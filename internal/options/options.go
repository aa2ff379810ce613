// Package options contains the program and emulator options.
package options

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned for option combinations the emulator does not support.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Default timing values.
const (
	DefaultFrameRate = 60
	MaxFrameRate     = 1000
)

// Parameters contains file path options.
type Parameters struct {
	Input string // ROM file
}

// Flags contains behavior options.
type Flags struct {
	System string // variant name, empty detects it from the file extension
	Debug  bool
	Quiet  bool
	Screen bool // print the framebuffer after the run
}

// RunFlags contains execution options.
type RunFlags struct {
	Frames      int // 0 runs until interrupted
	IPF         int // 0 uses the variant default
	FrameRate   int
	Unpaced     bool // run frames as fast as possible
	Seed        string
	Breakpoints []uint16
	Quirks      []string // name=value overrides
	TestWord    string   // word to preload at 0x1FE
}

// Program options of the emulator binary.
type Program struct {
	Parameters
	Flags
	RunFlags
}

// Emulator defines options to control the virtual machine.
type Emulator struct {
	Variant Variant
	Quirks  Quirks

	FrameRate            int     // display frames per second
	InstructionsPerFrame int     // instructions executed between two timer ticks
	Seed                 *uint64 // fixed random seed, nil seeds from runtime entropy
}

// NewEmulator returns emulator options with the defaults of the given variant.
func NewEmulator(variant Variant) Emulator {
	return Emulator{
		Variant:              variant,
		Quirks:               DefaultQuirks(variant),
		FrameRate:            DefaultFrameRate,
		InstructionsPerFrame: DefaultInstructionsPerFrame(variant),
	}
}

// DefaultInstructionsPerFrame returns a speed that most programs of the variant expect.
func DefaultInstructionsPerFrame(v Variant) int {
	switch v {
	case SuperChip:
		return 30
	case XOChip:
		return 1000
	default:
		return 15
	}
}

// WithSeed returns a copy of the options using a fixed random seed.
func (e Emulator) WithSeed(seed uint64) Emulator {
	e.Seed = &seed
	return e
}

// Validate checks that the options describe a supported machine.
func (e Emulator) Validate() error {
	if !e.Variant.Valid() {
		return fmt.Errorf("%w: unsupported variant %s", ErrInvalidConfiguration, e.Variant)
	}
	if e.FrameRate <= 0 || e.FrameRate > MaxFrameRate {
		return fmt.Errorf("%w: frame rate %d out of range 1-%d", ErrInvalidConfiguration, e.FrameRate, MaxFrameRate)
	}
	if e.InstructionsPerFrame <= 0 {
		return fmt.Errorf("%w: instructions per frame must be positive, got %d",
			ErrInvalidConfiguration, e.InstructionsPerFrame)
	}
	return nil
}
