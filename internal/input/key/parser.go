package key

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Parse parses a key specification into a code and its wrapped modifiers.
//
// Supported formats:
//   - Names: "KC_A", "a", "esc", "F5", "MS_BTN1"
//   - Wrapped: "C(KC_V)", "G(KC_D)", "LCTL(KC_PMNS)", "C(S(KC_ESC))"
//   - Prefixed: "Ctrl+V", "Ctrl+Shift+Esc"
func Parse(spec string) (Code, Modifier, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return KeyNone, ModNone, ErrEmptySpec
	}

	if open := strings.IndexByte(spec, '('); open > 0 {
		return parseWrapped(spec, open)
	}

	if strings.Contains(spec, "+") && len(spec) > 1 {
		return parsePrefixed(spec)
	}

	code, ok := CodeFromName(spec)
	if !ok {
		return KeyNone, ModNone, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, spec)
	}
	return code, ModNone, nil
}

// parseWrapped parses "C(KC_V)" style notation, recursing for nested wrappers.
func parseWrapped(spec string, open int) (Code, Modifier, error) {
	if !strings.HasSuffix(spec, ")") {
		return KeyNone, ModNone, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
	}

	mod := ModifierFromName(spec[:open])
	if mod == ModNone {
		return KeyNone, ModNone, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, spec[:open])
	}

	code, inner, err := Parse(spec[open+1 : len(spec)-1])
	if err != nil {
		return KeyNone, ModNone, err
	}
	return code, inner.With(mod), nil
}

// parsePrefixed parses "Ctrl+Shift+Esc" style notation.
func parsePrefixed(spec string) (Code, Modifier, error) {
	parts := strings.Split(spec, "+")
	var mods Modifier

	// All but the last part are modifiers
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return KeyNone, ModNone, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	keyPart := strings.TrimSpace(parts[len(parts)-1])
	code, ok := CodeFromName(keyPart)
	if !ok {
		return KeyNone, ModNone, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
	}
	return code, mods, nil
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) (Code, Modifier) {
	code, mods, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return code, mods
}

// Format renders a code with modifiers using QMK wrapper notation.
// The result parses back to the same values.
func Format(code Code, mods Modifier) string {
	s := code.String()
	for _, m := range []Modifier{ModGui, ModAlt, ModShift, ModCtrl} {
		if mods.Has(m) {
			s = m.wrapperName() + "(" + s + ")"
		}
	}
	return s
}
