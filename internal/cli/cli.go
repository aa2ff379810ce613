// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.Usage = func() {}
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8vm [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && strings.HasPrefix(arg, "-") {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// ParseAddress parses a 16 bit hexadecimal value with an optional $ or 0x prefix.
func ParseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	value, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid hexadecimal value '%s': %w", s, err)
	}
	return uint16(value), nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.System, "s", "", "variant to run (chip8, schip, xochip) - if not auto-detected from file extension")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Screen, "screen", false, "print the framebuffer after the run")

	flags.IntVar(&opts.Frames, "frames", 60, "number of frames to run, 0 runs until interrupted")
	flags.IntVar(&opts.IPF, "ipf", 0, "instructions per frame (default: variant specific)")
	flags.IntVar(&opts.FrameRate, "fps", options.DefaultFrameRate, "frames per second of the timers and display")
	flags.BoolVar(&opts.Unpaced, "fast", false, "run frames as fast as possible instead of in real time")
	flags.StringVar(&opts.Seed, "seed", "", "fixed random seed for reproducible runs")
	flags.StringVar(&opts.TestWord, "word", "", "hexadecimal word to preload at 0x1FE, selects the test of test suites")

	flags.Func("break", "pause before executing the instruction at this hexadecimal address, can be repeated",
		func(s string) error {
			address, err := ParseAddress(s)
			if err != nil {
				return err
			}
			opts.Breakpoints = append(opts.Breakpoints, address)
			return nil
		})
	flags.Func("quirk", fmt.Sprintf("override a quirk as name=true|false, can be repeated (%s)",
		strings.Join(options.QuirkNames(), ", ")),
		func(s string) error {
			if !strings.Contains(s, "=") {
				return fmt.Errorf("quirk '%s' is not in the format name=value", s)
			}
			opts.Quirks = append(opts.Quirks, s)
			return nil
		})
}
