package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8vm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func parseArgs(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = append([]string{"prog"}, args...)
	return ParseFlags()
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "default flags",
			args: []string{"pong.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "pong.ch8"},
				RunFlags:   options.RunFlags{Frames: 60, FrameRate: options.DefaultFrameRate},
			},
		},
		{
			name: "input flag",
			args: []string{"-i", "car.sc8", "-s", "schip", "-q"},
			want: options.Program{
				Parameters: options.Parameters{Input: "car.sc8"},
				Flags:      options.Flags{System: "schip", Quiet: true},
				RunFlags:   options.RunFlags{Frames: 60, FrameRate: options.DefaultFrameRate},
			},
		},
		{
			name: "run flags",
			args: []string{"-frames", "0", "-ipf", "100", "-fps", "30", "-fast", "-seed", "42", "-word", "0x0001", "test.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "test.ch8"},
				RunFlags: options.RunFlags{
					IPF:       100,
					FrameRate: 30,
					Unpaced:   true,
					Seed:      "42",
					TestWord:  "0x0001",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs(t, tt.args...)
			assert.NoError(t, err)
			assert.Equal(t, tt.want.Input, got.Input)
			assert.Equal(t, tt.want.System, got.System)
			assert.Equal(t, tt.want.Quiet, got.Quiet)
			assert.Equal(t, tt.want.Frames, got.Frames)
			assert.Equal(t, tt.want.IPF, got.IPF)
			assert.Equal(t, tt.want.FrameRate, got.FrameRate)
			assert.Equal(t, tt.want.Unpaced, got.Unpaced)
			assert.Equal(t, tt.want.Seed, got.Seed)
			assert.Equal(t, tt.want.TestWord, got.TestWord)
		})
	}
}

func TestParseRepeatableFlags(t *testing.T) {
	got, err := parseArgs(t,
		"-break", "204", "-break", "$2A0", "-break", "0x300",
		"-quirk", "drawsync=true", "-quirk", "wrap=false",
		"game.xo8")
	assert.NoError(t, err)

	assert.Len(t, got.Breakpoints, 3)
	assert.Equal(t, uint16(0x204), got.Breakpoints[0])
	assert.Equal(t, uint16(0x2A0), got.Breakpoints[1])
	assert.Equal(t, uint16(0x300), got.Breakpoints[2])

	assert.Len(t, got.Quirks, 2)
	assert.Equal(t, "drawsync=true", got.Quirks[0])
	assert.Equal(t, "wrap=false", got.Quirks[1])
}

func TestParseFlagsEmptyArgumentAfterInput(t *testing.T) {
	got, err := parseArgs(t, "game.ch8", "")
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", got.Input)
}

func TestParseFlagsUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no input", args: nil},
		{name: "invalid breakpoint", args: []string{"-break", "xyz", "game.ch8"}},
		{name: "invalid quirk format", args: []string{"-quirk", "wrap", "game.ch8"}},
		{name: "flag after input", args: []string{"game.ch8", "other.ch8", "-q"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			var usageErr *UsageError
			assert.True(t, errors.As(err, &usageErr))
		})
	}
}

func TestParseAddress(t *testing.T) {
	tests := []struct {
		input   string
		want    uint16
		wantErr bool
	}{
		{input: "200", want: 0x200},
		{input: "$1FE", want: 0x1FE},
		{input: "0xffff", want: 0xFFFF},
		{input: " 0X2a0 ", want: 0x2A0},
		{input: "10000", wantErr: true},
		{input: "", wantErr: true},
		{input: "g00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
