// Package timer implements the delay and sound countdown timers.
//
// Both timers count down at the logical display rate. Callers advance them by
// a real valued number of elapsed frames, the fractional remainder is carried
// in a shared frame phase so that any split of a frame into sub-frame ticks
// ends up decrementing the timers by exactly one.
package timer

import "math"

// epsilon absorbs floating point error of repeated fractional ticks, for
// example three ticks of 1/3 frame.
const epsilon = 1e-9

// Pair contains the delay and sound timers.
type Pair struct {
	delay byte
	sound byte
	phase float64 // elapsed fraction of the current frame, in [0, 1)
}

// New returns a timer pair with both timers stopped.
func New() *Pair {
	return &Pair{}
}

// Tick advances both timers by the given number of frames and returns the
// number of whole frame boundaries crossed. Negative or non finite values are ignored.
func (p *Pair) Tick(frames float64) int {
	if frames <= 0 || math.IsNaN(frames) || math.IsInf(frames, 0) {
		return 0
	}

	p.phase += frames
	whole := math.Floor(p.phase + epsilon)
	p.phase -= whole
	if p.phase < 0 {
		p.phase = 0
	}

	var crossed int
	if whole > math.MaxInt32 {
		crossed = math.MaxInt32
	} else {
		crossed = int(whole)
	}
	p.delay = decrement(p.delay, crossed)
	p.sound = decrement(p.sound, crossed)
	return crossed
}

func decrement(value byte, frames int) byte {
	if frames >= int(value) {
		return 0
	}
	return value - byte(frames)
}

// Delay returns the visible value of the delay timer.
func (p *Pair) Delay() byte {
	return p.delay
}

// SetDelay sets the delay timer.
func (p *Pair) SetDelay(value byte) {
	p.delay = value
}

// Sound returns the visible value of the sound timer.
func (p *Pair) Sound() byte {
	return p.sound
}

// SetSound sets the sound timer.
func (p *Pair) SetSound(value byte) {
	p.sound = value
}

// SoundActive returns whether the buzzer should currently sound.
func (p *Pair) SoundActive() bool {
	return p.sound > 0
}
