package options

import (
	"fmt"
	"sort"
	"strings"
)

// Quirks toggles instruction semantics to match a historical interpreter.
// The zero value is COSMAC VIP behavior.
type Quirks struct {
	NoVFReset       bool // 8XY1/8XY2/8XY3 leave VF untouched
	ShiftInPlace    bool // 8XY6/8XYE shift VX instead of VY
	NoDrawSync      bool // DXYN does not wait for the next display sync
	ScreenWrap      bool // sprites wrap around the screen edges instead of clipping
	LoadStoreKeepsI bool // FX55/FX65 leave I unchanged
	JumpVX          bool // BNNN jumps to NNN+VX, X being the high nibble of NNN
}

// DefaultQuirks returns the quirk profile of the given variant.
func DefaultQuirks(v Variant) Quirks {
	switch v {
	case SuperChip:
		return Quirks{
			NoVFReset:       true,
			ShiftInPlace:    true,
			NoDrawSync:      true,
			LoadStoreKeepsI: true,
			JumpVX:          true,
		}
	case XOChip:
		return Quirks{
			NoVFReset:  true,
			NoDrawSync: true,
			ScreenWrap: true,
		}
	default:
		return Quirks{}
	}
}

// quirkFields maps the external quirk names to their fields.
var quirkFields = map[string]func(q *Quirks) *bool{
	"vfreset":   func(q *Quirks) *bool { return &q.NoVFReset },
	"shift":     func(q *Quirks) *bool { return &q.ShiftInPlace },
	"drawsync":  func(q *Quirks) *bool { return &q.NoDrawSync },
	"wrap":      func(q *Quirks) *bool { return &q.ScreenWrap },
	"loadstore": func(q *Quirks) *bool { return &q.LoadStoreKeepsI },
	"jump":      func(q *Quirks) *bool { return &q.JumpVX },
}

// QuirkNames returns the sorted names accepted by Set.
func QuirkNames() []string {
	names := make([]string, 0, len(quirkFields))
	for name := range quirkFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set changes a quirk by its external name.
func (q *Quirks) Set(name string, value bool) error {
	field, ok := quirkFields[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("%w: unknown quirk '%s', valid quirks: %s",
			ErrInvalidConfiguration, name, strings.Join(QuirkNames(), ", "))
	}
	*field(q) = value
	return nil
}

// String returns the enabled quirks as a comma separated list.
func (q Quirks) String() string {
	var enabled []string
	for _, name := range QuirkNames() {
		if *quirkFields[name](&q) {
			enabled = append(enabled, name)
		}
	}
	if len(enabled) == 0 {
		return "none"
	}
	return strings.Join(enabled, ",")
}
