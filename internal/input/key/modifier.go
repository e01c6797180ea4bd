package key

import "strings"

// Modifier represents modifier keys held together with a code.
// Bit positions match the left-hand half of the HID modifier byte.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << 1

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt Modifier = 1 << 2

	// ModGui indicates the Gui key (Cmd on macOS, Win on Windows).
	ModGui Modifier = 1 << 3
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is held.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is held.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is held.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasGui returns true if Gui is held.
func (m Modifier) HasGui() bool {
	return m.Has(ModGui)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Codes returns the left-hand modifier key codes for m, in Ctrl, Shift, Alt,
// Gui order. Hosts register these before the wrapped code.
func (m Modifier) Codes() []Code {
	codes := make([]Code, 0, 4)
	if m.HasCtrl() {
		codes = append(codes, KeyLeftCtrl)
	}
	if m.HasShift() {
		codes = append(codes, KeyLeftShift)
	}
	if m.HasAlt() {
		codes = append(codes, KeyLeftAlt)
	}
	if m.HasGui() {
		codes = append(codes, KeyLeftGui)
	}
	return codes
}

// String returns a human-readable representation like "Ctrl+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasGui() {
		parts = append(parts, "Gui")
	}
	return strings.Join(parts, "+")
}

// wrapperName returns the QMK-style wrapper for a single modifier, e.g. "C".
func (m Modifier) wrapperName() string {
	switch m {
	case ModCtrl:
		return "C"
	case ModShift:
		return "S"
	case ModAlt:
		return "A"
	case ModGui:
		return "G"
	default:
		return ""
	}
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"c":       ModCtrl,
	"lctl":    ModCtrl,
	"shift":   ModShift,
	"s":       ModShift,
	"lsft":    ModShift,
	"alt":     ModAlt,
	"a":       ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"lalt":    ModAlt,
	"gui":     ModGui,
	"g":       ModGui,
	"win":     ModGui,
	"cmd":     ModGui,
	"lcmd":    ModGui,
	"lgui":    ModGui,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}
