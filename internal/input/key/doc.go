// Package key provides key codes, physical positions and key events for the
// input core.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: a logical key code (HID keyboard page, consumer, mouse and
//     firmware codes)
//   - Modifier: modifier bits carried alongside a code (Ctrl, Shift, Alt, Gui)
//   - Position: a physical matrix position (row, column)
//   - Event: a press or release at a position with a millisecond timestamp
//   - Sequence: an ordered run of codes, used by the leader engine
//
// # Key Names
//
// Codes can be written in several forms, all case-insensitive:
//
//   - QMK style: "KC_A", "KC_ESC", "KC_SPC", "MS_BTN1"
//   - Short names: "a", "esc", "space", "f5", "pgup"
//   - Wrapped modifiers: "C(KC_V)", "G(KC_D)", "LCTL(KC_PMNS)"
//   - Modifier prefixes: "Ctrl+V", "Gui+D"
//
// # Sequences
//
// Leader sequences are written either space-separated ("G A M E") or as a
// continuous run of single-character names ("game").
package key
