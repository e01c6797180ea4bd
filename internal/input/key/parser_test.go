package key

import (
	"errors"
	"testing"
)

func TestParseNames(t *testing.T) {
	tests := []struct {
		spec string
		want Code
	}{
		{"KC_A", KeyA},
		{"a", KeyA},
		{"esc", KeyEscape},
		{"F5", KeyF5},
		{"KC_PMNS", KeyKPMinus},
		{"MS_BTN1", KeyMouseButton1},
	}

	for _, tt := range tests {
		code, mods, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if code != tt.want {
			t.Errorf("Parse(%q) code = %v, want %v", tt.spec, code, tt.want)
		}
		if mods != ModNone {
			t.Errorf("Parse(%q) modifiers = %v, want none", tt.spec, mods)
		}
	}
}

func TestParseWrapped(t *testing.T) {
	tests := []struct {
		spec     string
		wantCode Code
		wantMod  Modifier
	}{
		{"C(KC_V)", KeyV, ModCtrl},
		{"G(KC_D)", KeyD, ModGui},
		{"LCTL(KC_PMNS)", KeyKPMinus, ModCtrl},
		{"C(S(KC_ESC))", KeyEscape, ModCtrl | ModShift},
		{"LGUI(KC_TAB)", KeyTab, ModGui},
	}

	for _, tt := range tests {
		code, mods, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if code != tt.wantCode || mods != tt.wantMod {
			t.Errorf("Parse(%q) = %v, %v, want %v, %v", tt.spec, code, mods, tt.wantCode, tt.wantMod)
		}
	}
}

func TestParsePrefixed(t *testing.T) {
	tests := []struct {
		spec     string
		wantCode Code
		wantMod  Modifier
	}{
		{"Ctrl+V", KeyV, ModCtrl},
		{"Ctrl+Shift+Esc", KeyEscape, ModCtrl | ModShift},
		{"Gui+D", KeyD, ModGui},
	}

	for _, tt := range tests {
		code, mods, err := Parse(tt.spec)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.spec, err)
			continue
		}
		if code != tt.wantCode || mods != tt.wantMod {
			t.Errorf("Parse(%q) = %v, %v, want %v, %v", tt.spec, code, mods, tt.wantCode, tt.wantMod)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		spec string
		want error
	}{
		{"", ErrEmptySpec},
		{"   ", ErrEmptySpec},
		{"KC_BOGUS", ErrInvalidSpec},
		{"X(KC_A)", ErrInvalidSpec},
		{"C(KC_A", ErrUnmatchedBracket},
		{"Hyper+A", ErrInvalidSpec},
	}

	for _, tt := range tests {
		_, _, err := Parse(tt.spec)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.spec, err, tt.want)
		}
	}
}

func TestFormatRoundTrip(t *testing.T) {
	tests := []struct {
		code Code
		mods Modifier
		want string
	}{
		{KeyA, ModNone, "KC_A"},
		{KeyV, ModCtrl, "C(KC_V)"},
		{KeyEscape, ModCtrl | ModShift, "C(S(KC_ESC))"},
	}

	for _, tt := range tests {
		got := Format(tt.code, tt.mods)
		if got != tt.want {
			t.Errorf("Format(%v, %v) = %q, want %q", tt.code, tt.mods, got, tt.want)
		}
		code, mods, err := Parse(got)
		if err != nil || code != tt.code || mods != tt.mods {
			t.Errorf("Parse(%q) = %v, %v, %v; want %v, %v", got, code, mods, err, tt.code, tt.mods)
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on invalid spec")
		}
	}()
	MustParse("not a key")
}
