// Package detector handles instruction set variant detection.
package detector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles variant detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new variant detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the variant from options or file auto-detection.
// It first checks if a variant is explicitly specified in options, otherwise
// attempts to detect the variant from the input filename extension.
func (d *Detector) Detect(opts options.Program) (options.Variant, error) {
	if opts.System != "" {
		variant, err := options.ParseVariant(opts.System)
		if err != nil {
			return variant, fmt.Errorf("parsing system option: %w", err)
		}
		return variant, nil
	}

	variant := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected variant",
		log.Stringer("variant", variant),
		log.String("file", opts.Input))
	return variant, nil
}

// detectFromFile determines the variant based on file extension.
func (d *Detector) detectFromFile(filename string) options.Variant {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".sc8", ".schip":
		return options.SuperChip
	case ".xo8", ".xochip":
		return options.XOChip
	default:
		// .ch8 and unknown extensions run on the classic interpreter
		return options.Classic
	}
}
