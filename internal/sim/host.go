package sim

import (
	"strings"
	"unicode"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/platform"
)

// maxLines is the number of output lines kept for display.
const maxLines = 6

// Host is the simulated computer on the other end of the cable. It records
// reports, renders typed text and owns the Caps Lock and NKRO state.
type Host struct {
	rec   *platform.HostRecorder
	lines []string
	caps  bool
	nkro  bool
	boots int
}

// NewHost creates a host with an empty screen.
func NewHost() *Host {
	return &Host{rec: platform.NewHostRecorder(), lines: []string{""}}
}

// Register implements platform.Host.
func (h *Host) Register(code key.Code) {
	h.rec.Register(code)

	switch code {
	case key.KeyCapsLock:
		h.caps = !h.caps
	case key.KeyNKROToggle:
		h.nkro = !h.nkro
	case key.KeyBoot:
		h.boots++
	case key.KeyEnter:
		h.newline()
	case key.KeyBackspace:
		last := h.lines[len(h.lines)-1]
		if last != "" {
			r := []rune(last)
			h.lines[len(h.lines)-1] = string(r[:len(r)-1])
		}
	default:
		if r, ok := printable(code, h.shifted()); ok && !h.chorded() {
			h.lines[len(h.lines)-1] += string(r)
		}
	}
}

// Unregister implements platform.Host.
func (h *Host) Unregister(code key.Code) {
	h.rec.Unregister(code)
}

// CapsLock implements platform.HostState.
func (h *Host) CapsLock() bool {
	return h.caps
}

// NKRO implements platform.HostState.
func (h *Host) NKRO() bool {
	return h.nkro
}

// Boots returns how many times the bootloader key was sent.
func (h *Host) Boots() int {
	return h.boots
}

// Held returns the codes currently held.
func (h *Host) Held() []key.Code {
	return h.rec.Held()
}

// Lines returns the typed text, oldest line first.
func (h *Host) Lines() []string {
	return append([]string(nil), h.lines...)
}

// Text returns the typed text joined by newlines.
func (h *Host) Text() string {
	return strings.Join(h.lines, "\n")
}

func (h *Host) newline() {
	h.lines = append(h.lines, "")
	if len(h.lines) > maxLines {
		h.lines = h.lines[len(h.lines)-maxLines:]
	}
}

func (h *Host) holding(codes ...key.Code) bool {
	for _, held := range h.rec.Held() {
		for _, c := range codes {
			if held == c {
				return true
			}
		}
	}
	return false
}

func (h *Host) shifted() bool {
	return h.holding(key.KeyLeftShift, key.KeyRightShift) != h.caps
}

// chorded reports whether a shortcut modifier is held, in which case the
// host runs a command instead of inserting text.
func (h *Host) chorded() bool {
	return h.holding(key.KeyLeftCtrl, key.KeyRightCtrl, key.KeyLeftGui, key.KeyRightGui, key.KeyLeftAlt, key.KeyRightAlt)
}

var symbols = map[key.Code][2]rune{
	key.KeySpace:        {' ', ' '},
	key.KeyMinus:        {'-', '_'},
	key.KeyEqual:        {'=', '+'},
	key.KeyLeftBracket:  {'[', '{'},
	key.KeyRightBracket: {']', '}'},
	key.KeyBackslash:    {'\\', '|'},
	key.KeySemicolon:    {';', ':'},
	key.KeyQuote:        {'\'', '"'},
	key.KeyGrave:        {'`', '~'},
	key.KeyComma:        {',', '<'},
	key.KeyDot:          {'.', '>'},
	key.KeySlash:        {'/', '?'},
}

// printable returns the character a US layout produces for code.
func printable(code key.Code, shift bool) (rune, bool) {
	switch {
	case code >= key.KeyA && code <= key.KeyZ:
		r := 'a' + rune(code-key.KeyA)
		if shift {
			r = unicode.ToUpper(r)
		}
		return r, true
	case code >= key.Key1 && code <= key.Key0:
		digits := "1234567890"
		if shift {
			digits = "!@#$%^&*()"
		}
		return rune(digits[code-key.Key1]), true
	}
	if pair, ok := symbols[code]; ok {
		if shift {
			return pair[1], true
		}
		return pair[0], true
	}
	return 0, false
}
