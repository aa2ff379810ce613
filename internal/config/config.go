// Package config handles application configuration and setup
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateEmulatorOptions returns the emulator options for the variant with the
// overrides of the program options applied.
func CreateEmulatorOptions(opts options.Program, variant options.Variant) (options.Emulator, error) {
	emuOpts := options.NewEmulator(variant)
	if opts.IPF > 0 {
		emuOpts.InstructionsPerFrame = opts.IPF
	}
	if opts.FrameRate != 0 {
		emuOpts.FrameRate = opts.FrameRate
	}

	for _, quirk := range opts.Quirks {
		if err := applyQuirk(&emuOpts.Quirks, quirk); err != nil {
			return emuOpts, err
		}
	}

	if opts.Seed != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(opts.Seed), 0, 64)
		if err != nil {
			return emuOpts, fmt.Errorf("%w: invalid seed '%s'", options.ErrInvalidConfiguration, opts.Seed)
		}
		emuOpts = emuOpts.WithSeed(seed)
	}

	if err := emuOpts.Validate(); err != nil {
		return emuOpts, fmt.Errorf("validating emulator options: %w", err)
	}
	return emuOpts, nil
}

// applyQuirk parses a name=value quirk override.
func applyQuirk(quirks *options.Quirks, s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("%w: quirk '%s' is not in the format name=value", options.ErrInvalidConfiguration, s)
	}
	enabled, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%w: invalid value of quirk '%s'", options.ErrInvalidConfiguration, name)
	}
	if err := quirks.Set(strings.TrimSpace(name), enabled); err != nil {
		return fmt.Errorf("setting quirk: %w", err)
	}
	return nil
}

// TestWord returns the word to preload at 0x1FE, ok is false if none is set.
func TestWord(opts options.Program) (word uint16, ok bool, err error) {
	if opts.TestWord == "" {
		return 0, false, nil
	}
	word, err = cli.ParseAddress(opts.TestWord)
	if err != nil {
		return 0, false, fmt.Errorf("%w: test word: %w", options.ErrInvalidConfiguration, err)
	}
	return word, true, nil
}
