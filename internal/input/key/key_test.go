package key

import "testing"

func TestCodeString(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{KeyA, "KC_A"},
		{KeyEscape, "KC_ESC"},
		{KeySpace, "KC_SPC"},
		{KeyLeftShift, "KC_LSFT"},
		{KeyMouseButton1, "MS_BTN1"},
		{KeyBoot, "QK_BOOT"},
		{Code(0x0FFF), "Code(0x0FFF)"},
	}

	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("Code(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodeValues(t *testing.T) {
	// HID usages are wire values; spot check the ends of each run.
	tests := []struct {
		code Code
		want uint16
	}{
		{KeyA, 0x04},
		{KeyZ, 0x1D},
		{Key1, 0x1E},
		{Key0, 0x27},
		{KeyEnter, 0x28},
		{KeyCapsLock, 0x39},
		{KeyF12, 0x45},
		{KeyUp, 0x52},
		{KeyLeftCtrl, 0xE0},
		{KeyRightGui, 0xE7},
	}

	for _, tt := range tests {
		if uint16(tt.code) != tt.want {
			t.Errorf("%v = 0x%02X, want 0x%02X", tt.code, uint16(tt.code), tt.want)
		}
	}
}

func TestCodeClassification(t *testing.T) {
	if !KeyQ.IsAlpha() || Key1.IsAlpha() {
		t.Error("IsAlpha misclassified")
	}
	if !KeyF13.IsFunctionKey() || !KeyF1.IsFunctionKey() || KeyEscape.IsFunctionKey() {
		t.Error("IsFunctionKey misclassified")
	}
	if !KeyLeft.IsArrowKey() || KeyHome.IsArrowKey() {
		t.Error("IsArrowKey misclassified")
	}
	if !KeyRightAlt.IsModifier() || KeyCapsLock.IsModifier() {
		t.Error("IsModifier misclassified")
	}
	if !KeyMouseLeft.IsMouse() || KeyLeft.IsMouse() {
		t.Error("IsMouse misclassified")
	}
	if !KeyA.IsBasic() || KeyMute.IsBasic() || KeyNone.IsBasic() {
		t.Error("IsBasic misclassified")
	}
}

func TestCodeModifier(t *testing.T) {
	tests := []struct {
		code Code
		want Modifier
	}{
		{KeyLeftCtrl, ModCtrl},
		{KeyRightCtrl, ModCtrl},
		{KeyLeftShift, ModShift},
		{KeyRightAlt, ModAlt},
		{KeyLeftGui, ModGui},
		{KeyA, ModNone},
	}

	for _, tt := range tests {
		if got := tt.code.Modifier(); got != tt.want {
			t.Errorf("%v.Modifier() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestCodeFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   Code
		wantOK bool
	}{
		{"KC_A", KeyA, true},
		{"a", KeyA, true},
		{"kc_esc", KeyEscape, true},
		{"Escape", KeyEscape, true},
		{"KC_ESCAPE", KeyEscape, true},
		{"F5", KeyF5, true},
		{"ms_btn1", KeyMouseButton1, true},
		{"KC_RIGHT", KeyRight, true},
		{"  space  ", KeySpace, true},
		{"KC_NO", KeyNone, true},
		{"", KeyNone, false},
		{"KC_NOPE", KeyNone, false},
	}

	for _, tt := range tests {
		got, ok := CodeFromName(tt.name)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("CodeFromName(%q) = %v, %v, want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestCanonicalNamesRoundTrip(t *testing.T) {
	for code := range codeNames {
		got, ok := CodeFromName(code.String())
		if !ok || got != code {
			t.Errorf("CodeFromName(%q) = %v, %v, want %v", code.String(), got, ok, code)
		}
	}
}
