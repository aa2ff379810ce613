// Package display implements the bit-plane framebuffer of the virtual machine.
//
// The framebuffer has 1 to 4 bit planes, each a monochrome bitmap of the
// current resolution. A pixel value is the combination of the plane bits,
// plane 0 being the lowest bit. Drawing XORs sprite bits into the selected
// planes.
package display

// Display resolutions.
const (
	LowResWidth   = 64
	LowResHeight  = 32
	HighResWidth  = 128
	HighResHeight = 64
)

// MaxPlanes is the maximum number of bit planes.
const MaxPlanes = 4

// Direction is the direction of a scroll operation.
type Direction uint8

// Scroll directions.
const (
	Down Direction = iota
	Up
	Left
	Right
)

// Sprite is a bitmap of Height rows with a width of 8 or 16 pixels.
// Data contains the rows of the sprite for every selected plane, in
// ascending plane order. Each row is Width/8 bytes, most significant bit
// being the leftmost pixel.
type Sprite struct {
	Width  int
	Height int
	Data   []byte
}

// PlaneSize returns the number of sprite bytes used per plane.
func (s Sprite) PlaneSize() int {
	return s.Width / 8 * s.Height
}

// Framebuffer contains the bit planes of the display.
type Framebuffer struct {
	planes   [][]byte // one byte per pixel, 0 or 1
	width    int
	height   int
	hires    bool
	wrap     bool
	selected byte // bit mask of the planes affected by draw, clear and scroll
}

// New returns a framebuffer in low resolution with the given number of
// planes. With wrap enabled, sprite pixels past an edge wrap around
// instead of being clipped.
func New(planes int, wrap bool) *Framebuffer {
	planes = max(1, min(planes, MaxPlanes))
	f := &Framebuffer{
		planes:   make([][]byte, planes),
		wrap:     wrap,
		selected: 1,
	}
	f.SetResolution(false)
	return f
}

// HighRes returns whether the framebuffer is in high resolution mode.
func (f *Framebuffer) HighRes() bool {
	return f.hires
}

// SetResolution switches the resolution and clears all planes.
func (f *Framebuffer) SetResolution(hires bool) {
	f.hires = hires
	f.width, f.height = LowResWidth, LowResHeight
	if hires {
		f.width, f.height = HighResWidth, HighResHeight
	}
	for i := range f.planes {
		f.planes[i] = make([]byte, f.width*f.height)
	}
}

// SelectPlanes sets the planes that draw, clear and scroll operations affect.
// Bits for planes that do not exist are ignored.
func (f *Framebuffer) SelectPlanes(mask byte) {
	f.selected = mask & f.planeMask()
}

// Selected returns the mask of the selected planes.
func (f *Framebuffer) Selected() byte {
	return f.selected
}

// SelectedCount returns the number of selected planes.
func (f *Framebuffer) SelectedCount() int {
	count := 0
	for i := range f.planes {
		if f.selected&(1<<i) != 0 {
			count++
		}
	}
	return count
}

func (f *Framebuffer) planeMask() byte {
	return byte(1<<len(f.planes)) - 1
}

// Clear zeroes every plane.
func (f *Framebuffer) Clear() {
	for _, plane := range f.planes {
		clear(plane)
	}
}

// ClearSelected zeroes the selected planes.
func (f *Framebuffer) ClearSelected() {
	for i, plane := range f.planes {
		if f.selected&(1<<i) != 0 {
			clear(plane)
		}
	}
}

// Pixel returns the plane bits of the pixel. Coordinates wrap around.
func (f *Framebuffer) Pixel(x, y int) byte {
	offset := f.offset(wrapCoordinate(x, f.width), wrapCoordinate(y, f.height))
	var value byte
	for i, plane := range f.planes {
		value |= plane[offset] << i
	}
	return value
}

// Draw XORs the sprite into the selected planes at the given position and
// returns whether any pixel was turned off. The origin wraps around the
// screen, pixels past an edge are clipped unless wrapping is enabled.
func (f *Framebuffer) Draw(x, y int, sprite Sprite) bool {
	x = wrapCoordinate(x, f.width)
	y = wrapCoordinate(y, f.height)
	rowBytes := sprite.Width / 8
	planeSize := sprite.PlaneSize()

	collision := false
	dataOffset := 0
	for i, plane := range f.planes {
		if f.selected&(1<<i) == 0 {
			continue
		}
		if dataOffset+planeSize > len(sprite.Data) {
			break
		}
		data := sprite.Data[dataOffset : dataOffset+planeSize]
		dataOffset += planeSize

		for row := range sprite.Height {
			for col := range sprite.Width {
				bits := data[row*rowBytes+col/8]
				if bits&(0x80>>(col%8)) == 0 {
					continue
				}
				if f.drawPixel(plane, x+col, y+row) {
					collision = true
				}
			}
		}
	}
	return collision
}

// drawPixel toggles a pixel and returns whether it was turned off.
func (f *Framebuffer) drawPixel(plane []byte, x, y int) bool {
	if x >= f.width || y >= f.height {
		if !f.wrap {
			return false
		}
		x %= f.width
		y %= f.height
	}
	offset := f.offset(x, y)
	plane[offset] ^= 1
	return plane[offset] == 0
}

// Scroll moves the content of the selected planes by amount pixels of the
// current resolution. Pixels scrolled out are discarded, uncovered pixels
// are cleared.
func (f *Framebuffer) Scroll(direction Direction, amount int) {
	if amount <= 0 {
		return
	}
	dx, dy := 0, 0
	switch direction {
	case Down:
		dy = amount
	case Up:
		dy = -amount
	case Left:
		dx = -amount
	case Right:
		dx = amount
	}

	buf := make([]byte, f.width*f.height)
	for i, plane := range f.planes {
		if f.selected&(1<<i) == 0 {
			continue
		}
		clear(buf)
		for y := range f.height {
			sy := y - dy
			if sy < 0 || sy >= f.height {
				continue
			}
			for x := range f.width {
				sx := x - dx
				if sx < 0 || sx >= f.width {
					continue
				}
				buf[f.offset(x, y)] = plane[f.offset(sx, sy)]
			}
		}
		copy(plane, buf)
	}
}

// Snapshot returns a deep copy of the framebuffer content that is safe to
// hand to another goroutine.
func (f *Framebuffer) Snapshot() Snapshot {
	s := Snapshot{
		Width:  f.width,
		Height: f.height,
		Planes: make([][]byte, len(f.planes)),
	}
	for i, plane := range f.planes {
		s.Planes[i] = append([]byte(nil), plane...)
	}
	return s
}

func (f *Framebuffer) offset(x, y int) int {
	return y*f.width + x
}

func wrapCoordinate(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
