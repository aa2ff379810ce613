// Package memory implements the byte addressable address space of the virtual machine.
//
// The memory map is:
//
//	0x000-0x04F: reserved interpreter area
//	0x050-0x09F: 4x5 hexadecimal font
//	0x0A0-0x13F: 8x10 large font
//	0x200-end:   program and data
//
// Addresses outside of the configured size wrap around, the size is always a
// power of two so wrapping is a mask operation.
package memory

import (
	"errors"
	"fmt"
)

// ProgramStart is the address where programs are loaded and start executing.
const ProgramStart = 0x200

// TestWordAddress is the reserved address test harnesses preload a word at.
const TestWordAddress = 0x1FE

// ErrAddressOutOfRange is returned when data does not fit into the address space.
var ErrAddressOutOfRange = errors.New("address out of range")

// Memory is the address space of the virtual machine.
type Memory struct {
	data []byte
	mask uint32
}

// New returns a new address space of the given size with the fonts installed.
// The size has to be a power of two.
func New(size int) (*Memory, error) {
	if size < ProgramStart || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: invalid memory size %d", ErrAddressOutOfRange, size)
	}
	m := &Memory{
		data: make([]byte, size),
		mask: uint32(size - 1),
	}
	copy(m.data[SmallFontAddress:], smallFont[:])
	copy(m.data[LargeFontAddress:], largeFont[:])
	return m, nil
}

// Size returns the size of the address space in bytes.
func (m *Memory) Size() int {
	return len(m.data)
}

// Read returns the byte at the wrapped address.
func (m *Memory) Read(address uint16) byte {
	return m.data[uint32(address)&m.mask]
}

// Write sets the byte at the wrapped address.
func (m *Memory) Write(address uint16, value byte) {
	m.data[uint32(address)&m.mask] = value
}

// ReadWord returns the big-endian word at the address.
func (m *Memory) ReadWord(address uint16) uint16 {
	return uint16(m.Read(address))<<8 | uint16(m.Read(address+1))
}

// WriteWord writes a big-endian word at the address.
func (m *Memory) WriteWord(address, value uint16) {
	m.Write(address, byte(value>>8))
	m.Write(address+1, byte(value))
}

// ReadInto fills buf with the bytes starting at the address, wrapping at the end.
func (m *Memory) ReadInto(address uint16, buf []byte) {
	for i := range buf {
		buf[i] = m.Read(address + uint16(i))
	}
}

// LoadProgram copies the program to ProgramStart and clears the remaining
// program memory. The reserved area including the fonts is left intact.
func (m *Memory) LoadProgram(program []byte) error {
	if available := len(m.data) - ProgramStart; len(program) > available {
		return fmt.Errorf("%w: program of %d bytes exceeds available %d bytes",
			ErrAddressOutOfRange, len(program), available)
	}
	n := copy(m.data[ProgramStart:], program)
	clear(m.data[ProgramStart+n:])
	return nil
}

// Slice returns a copy of length bytes starting at the address.
func (m *Memory) Slice(address uint16, length int) []byte {
	buf := make([]byte, length)
	m.ReadInto(address, buf)
	return buf
}
