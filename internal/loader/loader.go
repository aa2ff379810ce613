// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/memory"
	"github.com/spf13/afero"
)

// MaxROMSize is the largest program any variant can hold, the XO-CHIP
// address space minus the reserved interpreter area.
const MaxROMSize = 0x10000 - memory.ProgramStart

// ErrEmptyROM is returned for ROM files without content.
var ErrEmptyROM = errors.New("ROM file is empty")

// Loader handles loading ROM files from a file system.
type Loader struct {
	fs afero.Fs
}

// New creates a new ROM loader reading from the given file system.
func New(fs afero.Fs) *Loader {
	return &Loader{
		fs: fs,
	}
}

// NewOS creates a new ROM loader reading from the operating system file system.
func NewOS() *Loader {
	return New(afero.NewOsFs())
}

// Load reads the raw program from the named file. The size is checked against
// the largest address space, the emulator checks it against the variant.
func (l *Loader) Load(name string) ([]byte, error) {
	file, err := l.fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", name, err)
	}
	defer func() { _ = file.Close() }()

	return LoadFromReader(file)
}

// LoadFromReader reads a raw program from the reader.
func LoadFromReader(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	switch {
	case len(data) == 0:
		return nil, ErrEmptyROM
	case len(data) > MaxROMSize:
		return nil, fmt.Errorf("%w: ROM exceeds %d bytes", memory.ErrAddressOutOfRange, MaxROMSize)
	}
	return data, nil
}
