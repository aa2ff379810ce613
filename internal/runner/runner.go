// Package runner orchestrates a headless emulation run: variant detection,
// ROM loading, frame driving and reporting.
package runner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/chip8vm/internal/arch/chip8"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/cpu"
	"github.com/retroenv/chip8vm/internal/debugger"
	"github.com/retroenv/chip8vm/internal/detector"
	"github.com/retroenv/chip8vm/internal/display"
	"github.com/retroenv/chip8vm/internal/emulator"
	"github.com/retroenv/chip8vm/internal/loader"
	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Result summarizes a finished run.
type Result struct {
	Frames    int                 // number of driven frames
	Reason    debugger.StopReason // why the last frame stopped
	Registers cpu.Registers       // registers after the run
	Screen    display.Snapshot    // display after the run
}

// Runner orchestrates the complete emulation workflow.
type Runner struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
	writer   io.Writer
}

// New creates a new runner that reads ROMs with the loader and prints the
// screen to the writer.
func New(logger *log.Logger, loader *loader.Loader, writer io.Writer) *Runner {
	return &Runner{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader,
		writer:   writer,
	}
}

// Execute runs the complete pipeline for the program options.
func (r *Runner) Execute(ctx context.Context, opts options.Program) (Result, error) {
	variant, err := r.detector.Detect(opts)
	if err != nil {
		return Result{}, fmt.Errorf("detecting variant: %w", err)
	}

	rom, err := r.loader.Load(opts.Input)
	if err != nil {
		return Result{}, fmt.Errorf("loading ROM: %w", err)
	}

	return r.ExecuteWithROM(ctx, rom, opts, variant)
}

// ExecuteWithROM runs the emulation with a pre-loaded ROM.
// This is useful for testing and programmatic usage where the ROM is already in memory.
func (r *Runner) ExecuteWithROM(ctx context.Context, rom []byte, opts options.Program,
	variant options.Variant) (Result, error) {

	emu, err := r.createEmulator(rom, opts, variant)
	if err != nil {
		return Result{}, err
	}

	r.printInfo(opts, emu, len(rom))
	if opts.Debug {
		emu.SetTracer(r.traceInstruction)
	}

	result, err := r.runFrames(ctx, emu, opts)
	result.Registers = emu.Registers()
	result.Screen = emu.Framebuffer()
	if err != nil {
		return result, err
	}

	r.logger.Debug("Run finished",
		log.Int("frames", result.Frames),
		log.Stringer("reason", result.Reason),
		log.Int("lit", result.Screen.Lit()),
		log.String("registers", result.Registers.String()))

	if opts.Screen {
		if _, err := fmt.Fprintln(r.writer, result.Screen.String()); err != nil {
			return result, fmt.Errorf("writing screen: %w", err)
		}
	}
	return result, nil
}

// createEmulator creates the emulator for the variant and loads the ROM.
func (r *Runner) createEmulator(rom []byte, opts options.Program, variant options.Variant) (*emulator.Emulator, error) {
	emuOpts, err := config.CreateEmulatorOptions(opts, variant)
	if err != nil {
		return nil, fmt.Errorf("creating emulator options: %w", err)
	}

	emu, err := emulator.New(emuOpts)
	if err != nil {
		return nil, fmt.Errorf("creating emulator: %w", err)
	}

	var loadOpts []emulator.LoadOption
	word, ok, err := config.TestWord(opts)
	if err != nil {
		return nil, err
	}
	if ok {
		loadOpts = append(loadOpts, emulator.WithPreload(word))
	}

	if err := emu.Load(rom, loadOpts...); err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	for _, address := range opts.Breakpoints {
		emu.SetBreakpoint(address)
	}
	return emu, nil
}

// runFrames drives the emulator frame by frame until the frame budget is used
// up, the program stops or the context is cancelled.
func (r *Runner) runFrames(ctx context.Context, emu *emulator.Emulator, opts options.Program) (Result, error) {
	var result Result
	var ticker *time.Ticker
	if !opts.Unpaced {
		ticker = time.NewTicker(time.Second / time.Duration(emu.Options().FrameRate))
		defer ticker.Stop()
	}

	for opts.Frames == 0 || result.Frames < opts.Frames {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("running frame %d: %w", result.Frames, err)
		}

		run, err := emu.RunFrame()
		result.Reason = run.Reason
		if err != nil {
			return result, fmt.Errorf("running frame %d: %w", result.Frames, err)
		}
		result.Frames++

		if r.stopped(emu, run) {
			return result, nil
		}

		emu.TickTimers(1)

		if ticker != nil {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
	}
	return result, nil
}

// stopped logs run interruptions and returns whether the run ends because
// the program can not continue without interaction.
func (r *Runner) stopped(emu *emulator.Emulator, run debugger.RunResult) bool {
	switch run.Reason {
	case debugger.ReasonBreakpoint:
		instruction := "invalid"
		if ins, err := emu.InstructionAt(run.PC); err == nil {
			instruction = ins.String()
		}
		r.logger.Info("Breakpoint reached",
			log.Hex("address", run.PC),
			log.String("instruction", instruction))
		r.logger.Info("Registers", log.String("state", emu.Registers().String()))
		return true

	case debugger.ReasonHalted:
		r.logger.Info("Program exited", log.Hex("address", run.PC))
		return true

	case debugger.ReasonIdle:
		r.logger.Info("Program is idle", log.Hex("address", run.PC))
		return true

	case debugger.ReasonKeyWait:
		r.logger.Info("Program waits for a key press", log.Hex("address", run.PC))
		return true

	default:
		return false
	}
}

// traceInstruction logs an executed instruction.
func (r *Runner) traceInstruction(pc uint16, cycle uint64, ins chip8.Instruction) {
	r.logger.Debug("Executing",
		log.Hex("pc", pc),
		log.Uint64("cycle", cycle),
		log.String("instruction", ins.String()),
		log.String("class", instructionClass(ins)))
}

// instructionClass returns how the instruction affects the program flow or
// the display.
func instructionClass(ins chip8.Instruction) string {
	switch {
	case ins.IsCall():
		return "call"
	case ins.IsReturn():
		return "return"
	case ins.IsJump():
		return "jump"
	case ins.IsSkip():
		return "skip"
	case ins.IsDraw():
		return "draw"
	default:
		return "step"
	}
}

// printInfo prints the information about the loaded program.
func (r *Runner) printInfo(opts options.Program, emu *emulator.Emulator, size int) {
	if opts.Quiet {
		return
	}

	emuOpts := emu.Options()
	r.logger.Info("Running ROM",
		log.String("file", opts.Input),
		log.Int("size", size),
		log.Stringer("variant", emuOpts.Variant),
		log.Int("ipf", emuOpts.InstructionsPerFrame),
		log.Int("fps", emuOpts.FrameRate))
	r.logger.Debug("Quirks", log.String("enabled", emuOpts.Quirks.String()))
}
