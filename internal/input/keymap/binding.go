package keymap

import (
	"fmt"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/layer"
)

// Kind is the variant of a Binding.
type Kind uint8

// Binding kinds.
const (
	// KindTransparent defers to the next lower active layer.
	KindTransparent Kind = iota

	// KindNoOp swallows the key.
	KindNoOp

	// KindCode sends Code with Mods.
	KindCode

	// KindMomentary turns Layer on while held.
	KindMomentary

	// KindToggle toggles Layer on press.
	KindToggle

	// KindToggleOnRelease toggles Layer on release.
	KindToggleOnRelease

	// KindOneShot turns Layer on until the next key is released.
	KindOneShot

	// KindSetDefault makes Layer the default layer.
	KindSetDefault

	// KindCustom runs a firmware custom action.
	KindCustom

	// KindTapDance feeds the tap dance recognizer.
	KindTapDance

	// KindLeader triggers the leader engine.
	KindLeader
)

var kindNames = [...]string{
	KindTransparent:     "transparent",
	KindNoOp:            "noop",
	KindCode:            "code",
	KindMomentary:       "momentary",
	KindToggle:          "toggle",
	KindToggleOnRelease: "toggle_on_release",
	KindOneShot:         "one_shot",
	KindSetDefault:      "set_default",
	KindCustom:          "custom",
	KindTapDance:        "tap_dance",
	KindLeader:          "leader",
}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// DanceID identifies a configured tap dance.
type DanceID uint8

// Binding is what a key does on one layer. Bindings are comparable values;
// only the fields relevant to Kind are set.
type Binding struct {
	Kind   Kind
	Code   key.Code
	Mods   key.Modifier
	Layer  layer.ID
	Custom Custom
	Dance  DanceID
}

// Trans returns a transparent binding.
func Trans() Binding {
	return Binding{Kind: KindTransparent}
}

// NoOp returns a binding that does nothing.
func NoOp() Binding {
	return Binding{Kind: KindNoOp}
}

// Code returns a binding that sends c. KeyNone yields a no-op.
func Code(c key.Code) Binding {
	if c == key.KeyNone {
		return NoOp()
	}
	return Binding{Kind: KindCode, Code: c}
}

// Chord returns a binding that sends c with mods held.
func Chord(mods key.Modifier, c key.Code) Binding {
	b := Code(c)
	if b.Kind == KindCode {
		b.Mods = mods
	}
	return b
}

// MO returns a momentary layer binding.
func MO(l layer.ID) Binding {
	return Binding{Kind: KindMomentary, Layer: l}
}

// TG returns a toggle-on-press layer binding.
func TG(l layer.ID) Binding {
	return Binding{Kind: KindToggle, Layer: l}
}

// TR returns a toggle-on-release layer binding.
func TR(l layer.ID) Binding {
	return Binding{Kind: KindToggleOnRelease, Layer: l}
}

// OSL returns a one-shot layer binding.
func OSL(l layer.ID) Binding {
	return Binding{Kind: KindOneShot, Layer: l}
}

// DF returns a set-default-layer binding.
func DF(l layer.ID) Binding {
	return Binding{Kind: KindSetDefault, Layer: l}
}

// Action returns a custom action binding.
func Action(c Custom) Binding {
	return Binding{Kind: KindCustom, Custom: c}
}

// TD returns a tap dance binding.
func TD(d DanceID) Binding {
	return Binding{Kind: KindTapDance, Dance: d}
}

// Leader returns the leader trigger binding.
func Leader() Binding {
	return Binding{Kind: KindLeader}
}

// IsTransparent returns true for transparent bindings.
func (b Binding) IsTransparent() bool {
	return b.Kind == KindTransparent
}

// IsLayerControl returns true for bindings that drive the layer stack.
func (b Binding) IsLayerControl() bool {
	switch b.Kind {
	case KindMomentary, KindToggle, KindToggleOnRelease, KindOneShot, KindSetDefault:
		return true
	default:
		return false
	}
}

// IsPlainCode returns true for a code binding without modifiers.
func (b Binding) IsPlainCode() bool {
	return b.Kind == KindCode && b.Mods == key.ModNone
}
