package key

import "fmt"

// Code identifies a logical key.
// Values below 0x100 are HID keyboard page usages; higher values are
// consumer, mouse and firmware codes that the host platform translates.
type Code uint16

// Keyboard page usages.
const (
	KeyNone Code = 0x00

	KeyA Code = 0x04 + iota - 1
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeyNonUSHash
	KeySemicolon
	KeyQuote
	KeyGrave
	KeyComma
	KeyDot
	KeySlash
	KeyCapsLock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
)

// Keypad and high function keys used by the board tables.
const (
	KeyKPMinus Code = 0x56
	KeyKPPlus  Code = 0x57
	KeyF13     Code = 0x68
)

// Modifier keys.
const (
	KeyLeftCtrl Code = 0xE0 + iota
	KeyLeftShift
	KeyLeftAlt
	KeyLeftGui
	KeyRightCtrl
	KeyRightShift
	KeyRightAlt
	KeyRightGui
)

// Consumer and system codes.
const (
	KeyMute Code = 0x0100 + iota
	KeyVolumeUp
	KeyVolumeDown
	KeyMediaNext
	KeyMediaPrev
	KeyMediaPlay
	KeyBrightnessUp
	KeyBrightnessDown
	KeyMissionControl
	KeyLaunchpad
	KeyMyComputer
)

// Mouse codes.
const (
	KeyMouseUp Code = 0x0200 + iota
	KeyMouseDown
	KeyMouseLeft
	KeyMouseRight
	KeyMouseButton1
	KeyMouseButton2
)

// Firmware codes handled by the host platform.
const (
	KeyBoot Code = 0x0300 + iota
	KeyNKROToggle
	KeyRGBValueUp
	KeyRGBValueDown
	KeyRGBHueUp
	KeyRGBHueDown
)

// String returns the canonical name for the code.
func (c Code) String() string {
	if names, ok := codeNames[c]; ok {
		return names[0]
	}
	return fmt.Sprintf("Code(0x%04X)", uint16(c))
}

// IsBasic returns true if this is a HID keyboard page usage.
func (c Code) IsBasic() bool {
	return c > KeyNone && c < 0x0100
}

// IsAlpha returns true for the letters A through Z.
func (c Code) IsAlpha() bool {
	return c >= KeyA && c <= KeyZ
}

// IsFunctionKey returns true for F1 through F13.
func (c Code) IsFunctionKey() bool {
	return (c >= KeyF1 && c <= KeyF12) || c == KeyF13
}

// IsArrowKey returns true if this is an arrow key.
func (c Code) IsArrowKey() bool {
	return c >= KeyRight && c <= KeyUp
}

// IsModifier returns true if this is one of the eight modifier keys.
func (c Code) IsModifier() bool {
	return c >= KeyLeftCtrl && c <= KeyRightGui
}

// IsMouse returns true for mouse movement and button codes.
func (c Code) IsMouse() bool {
	return c >= KeyMouseUp && c <= KeyMouseButton2
}

// Modifier returns the modifier bit for a modifier key, or ModNone.
// Left and right variants map to the same bit.
func (c Code) Modifier() Modifier {
	switch c {
	case KeyLeftCtrl, KeyRightCtrl:
		return ModCtrl
	case KeyLeftShift, KeyRightShift:
		return ModShift
	case KeyLeftAlt, KeyRightAlt:
		return ModAlt
	case KeyLeftGui, KeyRightGui:
		return ModGui
	default:
		return ModNone
	}
}
