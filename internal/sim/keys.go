package sim

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/layer"
)

// Stroke is a terminal key translated to a board position or an encoder
// detent.
type Stroke struct {
	Pos key.Position

	// Latch toggles the key between held and released instead of tapping.
	Latch bool

	// Turn is set for a detent of encoder 0 in direction Dir. Pos is unused.
	Turn bool
	Dir  keymap.Direction
}

// Mapper translates terminal keys to board positions through the base
// layer's reverse index.
type Mapper struct {
	km *keymap.Keymap
}

// NewMapper creates a mapper for km.
func NewMapper(km *keymap.Keymap) *Mapper {
	return &Mapper{km: km}
}

// SetKeymap replaces the keymap.
func (m *Mapper) SetKeymap(km *keymap.Keymap) {
	m.km = km
}

var specialKeys = map[tcell.Key]key.Code{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyPrint:      key.KeyPrintScreen,
}

// Map returns the stroke for a terminal key on the given base layer.
func (m *Mapper) Map(ev *tcell.EventKey, base layer.ID) (Stroke, bool) {
	switch ev.Key() {
	case tcell.KeyCtrlF:
		pos, ok := m.first(base, keymap.Action(keymap.CustomFnWin), keymap.Action(keymap.CustomFnMac))
		return Stroke{Pos: pos, Latch: true}, ok
	case tcell.KeyCtrlS:
		pos, ok := m.first(base, keymap.Code(key.KeyLeftShift))
		return Stroke{Pos: pos, Latch: true}, ok
	case tcell.KeyCtrlW:
		pos, ok := m.first(base, keymap.Action(keymap.CustomSelectWord))
		return Stroke{Pos: pos}, ok
	case tcell.KeyCtrlD:
		return Stroke{Turn: true, Dir: keymap.CounterClockwise}, m.km.Layout().Encoders > 0
	case tcell.KeyCtrlU:
		return Stroke{Turn: true, Dir: keymap.Clockwise}, m.km.Layout().Encoders > 0
	case tcell.KeyRune:
		code, ok := runeCode(ev.Rune())
		if !ok {
			return Stroke{}, false
		}
		pos, ok := m.first(base, keymap.Code(code))
		return Stroke{Pos: pos}, ok
	}

	if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
		code := key.KeyF1 + key.Code(ev.Key()-tcell.KeyF1)
		pos, ok := m.first(base, keymap.Code(code))
		return Stroke{Pos: pos}, ok
	}
	if code, ok := specialKeys[ev.Key()]; ok {
		pos, ok := m.first(base, keymap.Code(code))
		return Stroke{Pos: pos}, ok
	}
	return Stroke{}, false
}

// first returns the first position bound to any of bindings on layer l.
func (m *Mapper) first(l layer.ID, bindings ...keymap.Binding) (key.Position, bool) {
	for _, b := range bindings {
		if found := m.km.FindOnLayer(l, b); len(found) > 0 {
			return found[0], true
		}
	}
	return key.Position{}, false
}

func runeCode(r rune) (key.Code, bool) {
	if r == ' ' {
		return key.KeySpace, true
	}
	return key.CodeFromName(string(unicode.ToLower(r)))
}
