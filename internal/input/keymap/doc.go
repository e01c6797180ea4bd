// Package keymap provides per-layer key binding tables for the input core.
//
// A Keymap holds one grid of bindings per layer over a physical Layout.
// Bindings are immutable values describing what a key does on a layer:
// pass through, do nothing, send a code, drive a layer, run a custom
// action, start a tap dance or trigger the leader.
//
// # Resolution
//
// Resolve walks the active layers from highest to lowest. Transparent
// bindings defer to the next lower active layer; the first non-transparent
// binding wins. A position that is transparent on every active layer
// resolves to a no-op.
//
// # Binding Notation
//
// Keymap files and String use QMK-style notation:
//
//	"_______"          - Transparent (also "KC_TRNS")
//	"XXXXXXX"          - No-op (also "KC_NO")
//	"KC_A", "C(KC_V)"  - Code with optional wrapped modifiers
//	"MO(FEATURES)"     - Momentary layer while held
//	"TG(GAMING)"       - Toggle layer on press
//	"TR(GAMING)"       - Toggle layer on release
//	"OSL(MOUSE)"       - One-shot layer for the next key
//	"DF(WIN_BASE)"     - Set the default layer
//	"TD(ESC_MOUSE)"    - Tap dance
//	"QK_LEAD"          - Leader trigger
//	"TASK_MGR"         - Custom action
//
// # Files
//
// Loader reads TOML or YAML keymap files:
//
//	name = "tkl_ansi"
//
//	[layout]
//	rows = [17, 17, 17, 13, 13, 11]
//
//	[[layers]]
//	name = "WIN_BASE"
//	keys = [
//	    "KC_ESC KC_F1 ...",
//	]
package keymap
