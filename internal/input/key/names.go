package key

import "strings"

// codeNames lists the accepted names for each code. The first entry is the
// canonical name returned by String.
var codeNames = map[Code][]string{
	KeyNone:         {"KC_NO", "no", "none", "xxxxxxx"},
	KeyA:            {"KC_A", "a"},
	KeyB:            {"KC_B", "b"},
	KeyC:            {"KC_C", "c"},
	KeyD:            {"KC_D", "d"},
	KeyE:            {"KC_E", "e"},
	KeyF:            {"KC_F", "f"},
	KeyG:            {"KC_G", "g"},
	KeyH:            {"KC_H", "h"},
	KeyI:            {"KC_I", "i"},
	KeyJ:            {"KC_J", "j"},
	KeyK:            {"KC_K", "k"},
	KeyL:            {"KC_L", "l"},
	KeyM:            {"KC_M", "m"},
	KeyN:            {"KC_N", "n"},
	KeyO:            {"KC_O", "o"},
	KeyP:            {"KC_P", "p"},
	KeyQ:            {"KC_Q", "q"},
	KeyR:            {"KC_R", "r"},
	KeyS:            {"KC_S", "s"},
	KeyT:            {"KC_T", "t"},
	KeyU:            {"KC_U", "u"},
	KeyV:            {"KC_V", "v"},
	KeyW:            {"KC_W", "w"},
	KeyX:            {"KC_X", "x"},
	KeyY:            {"KC_Y", "y"},
	KeyZ:            {"KC_Z", "z"},
	Key1:            {"KC_1", "1"},
	Key2:            {"KC_2", "2"},
	Key3:            {"KC_3", "3"},
	Key4:            {"KC_4", "4"},
	Key5:            {"KC_5", "5"},
	Key6:            {"KC_6", "6"},
	Key7:            {"KC_7", "7"},
	Key8:            {"KC_8", "8"},
	Key9:            {"KC_9", "9"},
	Key0:            {"KC_0", "0"},
	KeyEnter:        {"KC_ENT", "enter", "ent", "return", "cr"},
	KeyEscape:       {"KC_ESC", "escape", "esc"},
	KeyBackspace:    {"KC_BSPC", "backspace", "bspc", "bs"},
	KeyTab:          {"KC_TAB", "tab"},
	KeySpace:        {"KC_SPC", "space", "spc"},
	KeyMinus:        {"KC_MINS", "minus", "mins", "-"},
	KeyEqual:        {"KC_EQL", "equal", "eql", "="},
	KeyLeftBracket:  {"KC_LBRC", "lbrc", "["},
	KeyRightBracket: {"KC_RBRC", "rbrc", "]"},
	KeyBackslash:    {"KC_BSLS", "backslash", "bsls", "\\"},
	KeyNonUSHash:    {"KC_NUHS", "nuhs"},
	KeySemicolon:    {"KC_SCLN", "semicolon", "scln", ";"},
	KeyQuote:        {"KC_QUOT", "quote", "quot", "'"},
	KeyGrave:        {"KC_GRV", "grave", "grv", "`"},
	KeyComma:        {"KC_COMM", "comma", "comm", ","},
	KeyDot:          {"KC_DOT", "dot", "."},
	KeySlash:        {"KC_SLSH", "slash", "slsh", "/"},
	KeyCapsLock:     {"KC_CAPS", "capslock", "caps"},
	KeyF1:           {"KC_F1", "f1"},
	KeyF2:           {"KC_F2", "f2"},
	KeyF3:           {"KC_F3", "f3"},
	KeyF4:           {"KC_F4", "f4"},
	KeyF5:           {"KC_F5", "f5"},
	KeyF6:           {"KC_F6", "f6"},
	KeyF7:           {"KC_F7", "f7"},
	KeyF8:           {"KC_F8", "f8"},
	KeyF9:           {"KC_F9", "f9"},
	KeyF10:          {"KC_F10", "f10"},
	KeyF11:          {"KC_F11", "f11"},
	KeyF12:          {"KC_F12", "f12"},
	KeyF13:          {"KC_F13", "f13"},
	KeyPrintScreen:  {"KC_PSCR", "printscreen", "pscr"},
	KeyScrollLock:   {"KC_SCRL", "scrolllock", "scrl"},
	KeyPause:        {"KC_PAUS", "pause", "paus"},
	KeyInsert:       {"KC_INS", "insert", "ins"},
	KeyHome:         {"KC_HOME", "home"},
	KeyPageUp:       {"KC_PGUP", "pageup", "pgup"},
	KeyDelete:       {"KC_DEL", "delete", "del"},
	KeyEnd:          {"KC_END", "end"},
	KeyPageDown:     {"KC_PGDN", "pagedown", "pgdn"},
	KeyRight:        {"KC_RGHT", "right", "rght", "kc_right"},
	KeyLeft:         {"KC_LEFT", "left"},
	KeyDown:         {"KC_DOWN", "down"},
	KeyUp:           {"KC_UP", "up"},
	KeyKPMinus:      {"KC_PMNS", "pmns"},
	KeyKPPlus:       {"KC_PPLS", "ppls"},

	KeyLeftCtrl:   {"KC_LCTL", "lctl", "lctrl"},
	KeyLeftShift:  {"KC_LSFT", "lsft", "lshift"},
	KeyLeftAlt:    {"KC_LALT", "lalt", "lopt"},
	KeyLeftGui:    {"KC_LGUI", "lgui", "lwin", "lcmd"},
	KeyRightCtrl:  {"KC_RCTL", "rctl", "rctrl"},
	KeyRightShift: {"KC_RSFT", "rsft", "rshift"},
	KeyRightAlt:   {"KC_RALT", "ralt", "ropt"},
	KeyRightGui:   {"KC_RGUI", "rgui", "rwin", "rcmd"},

	KeyMute:           {"KC_MUTE", "mute"},
	KeyVolumeUp:       {"KC_VOLU", "volu"},
	KeyVolumeDown:     {"KC_VOLD", "vold"},
	KeyMediaNext:      {"KC_MNXT", "mnxt"},
	KeyMediaPrev:      {"KC_MPRV", "mprv"},
	KeyMediaPlay:      {"KC_MPLY", "mply"},
	KeyBrightnessUp:   {"KC_BRIU", "briu"},
	KeyBrightnessDown: {"KC_BRID", "brid"},
	KeyMissionControl: {"KC_MCTL", "mctl", "kc_mission_control"},
	KeyLaunchpad:      {"KC_LPAD", "lpad", "kc_launchpad"},
	KeyMyComputer:     {"KC_MYCM", "mycm"},

	KeyMouseUp:      {"MS_UP", "ms_up"},
	KeyMouseDown:    {"MS_DOWN", "ms_down"},
	KeyMouseLeft:    {"MS_LEFT", "ms_left"},
	KeyMouseRight:   {"MS_RGHT", "ms_rght", "ms_right"},
	KeyMouseButton1: {"MS_BTN1", "ms_btn1"},
	KeyMouseButton2: {"MS_BTN2", "ms_btn2"},

	KeyBoot:         {"QK_BOOT", "qk_boot", "boot"},
	KeyNKROToggle:   {"NK_TOGG", "nk_togg", "nkro"},
	KeyRGBValueUp:   {"RM_VALU", "rm_valu"},
	KeyRGBValueDown: {"RM_VALD", "rm_vald"},
	KeyRGBHueUp:     {"RM_HUEU", "rm_hueu"},
	KeyRGBHueDown:   {"RM_HUED", "rm_hued"},
}

// nameToCode is the reverse of codeNames, keyed by lowercase name.
var nameToCode = buildNameIndex()

func buildNameIndex() map[string]Code {
	index := make(map[string]Code, len(codeNames)*3)
	for code, names := range codeNames {
		for _, name := range names {
			index[strings.ToLower(name)] = code
		}
	}
	return index
}

// CodeFromName returns the Code for a name (case-insensitive).
// A "KC_" prefix is optional. Returns false if the name is not recognized.
func CodeFromName(name string) (Code, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return KeyNone, false
	}
	if c, ok := nameToCode[name]; ok {
		return c, true
	}
	if trimmed, found := strings.CutPrefix(name, "kc_"); found {
		if c, ok := nameToCode[trimmed]; ok {
			return c, true
		}
	}
	return KeyNone, false
}
