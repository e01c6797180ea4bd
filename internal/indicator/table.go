package indicator

import (
	"fmt"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/layer"
	"github.com/dshills/keyforge/internal/rgb"
)

// Flag names a boolean feature shown by a toggle indicator.
type Flag uint8

// Feature flags.
const (
	FlagAutocorrect Flag = iota
	FlagJiggler
	FlagNKRO
)

var flagNames = [...]string{
	FlagAutocorrect: "autocorrect",
	FlagJiggler:     "jiggler",
	FlagNKRO:        "nkro",
}

func (f Flag) String() string {
	if int(f) < len(flagNames) {
		return flagNames[f]
	}
	return fmt.Sprintf("Flag(%d)", uint8(f))
}

// Flags is the feature state read by toggle indicators.
type Flags struct {
	Autocorrect bool
	Jiggler     bool
	NKRO        bool
	CapsLock    bool
}

// Get returns the value of f.
func (s Flags) Get(f Flag) bool {
	switch f {
	case FlagAutocorrect:
		return s.Autocorrect
	case FlagJiggler:
		return s.Jiggler
	case FlagNKRO:
		return s.NKRO
	default:
		return false
	}
}

// Rule colors every key whose effective binding is Binding.
type Rule struct {
	Binding keymap.Binding
	Color   rgb.Color
}

// Toggle colors every key whose effective binding is Binding according to
// a feature flag.
type Toggle struct {
	Binding keymap.Binding
	Flag    Flag
	On      rgb.Color
	Off     rgb.Color
}

// LayerRules are the indicators shown while a layer is the highest active.
type LayerRules struct {
	Static  []Rule
	Toggles []Toggle
}

// Table is a board's complete indicator configuration.
type Table struct {
	// Layers holds per-layer rules keyed by layer.
	Layers map[layer.ID]LayerRules

	// CapsLock lights the Caps Lock key of the default layer.
	CapsLock Rule

	// GameLayer is the layer that shows the mini-game.
	GameLayer layer.ID

	// LeaderSuccess and LeaderFailure flash the leader keys after a sequence.
	LeaderSuccess rgb.Color
	LeaderFailure rgb.Color
}

// Static is shorthand for a list of rules sharing a color.
func Static(c rgb.Color, bindings ...keymap.Binding) []Rule {
	rules := make([]Rule, len(bindings))
	for i, b := range bindings {
		rules[i] = Rule{Binding: b, Color: c}
	}
	return rules
}

// Codes is shorthand for plain code bindings.
func Codes(codes ...key.Code) []keymap.Binding {
	bindings := make([]keymap.Binding, len(codes))
	for i, c := range codes {
		bindings[i] = keymap.Code(c)
	}
	return bindings
}
