package display

import "strings"

// Snapshot is an immutable copy of the framebuffer content.
type Snapshot struct {
	Width  int
	Height int
	Planes [][]byte // per plane, one byte per pixel in row-major order
}

// Pixel returns the plane bits of the pixel at the given position.
func (s Snapshot) Pixel(x, y int) byte {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height {
		return 0
	}
	var value byte
	for i, plane := range s.Planes {
		value |= plane[y*s.Width+x] << i
	}
	return value
}

// Lit returns the number of pixels that have any plane bit set.
func (s Snapshot) Lit() int {
	count := 0
	for y := range s.Height {
		for x := range s.Width {
			if s.Pixel(x, y) != 0 {
				count++
			}
		}
	}
	return count
}

// pixelRunes renders the plane combinations of the first 2 planes. Pixels
// using any higher plane are shown with the last rune.
var pixelRunes = [4]rune{' ', '█', '▒', '▓'}

// String renders the snapshot as text, one line per pixel row.
func (s Snapshot) String() string {
	var sb strings.Builder
	sb.Grow((s.Width*3 + 1) * s.Height)
	for y := range s.Height {
		for x := range s.Width {
			value := s.Pixel(x, y)
			if value > 3 {
				value = 3
			}
			sb.WriteRune(pixelRunes[value])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
