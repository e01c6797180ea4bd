package leader

import (
	"errors"
	"fmt"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/layer"
	"github.com/dshills/keyforge/internal/rgb"
)

// Table errors
var (
	ErrEmptyTable    = errors.New("empty leader table")
	ErrEmptySequence = errors.New("empty leader sequence")
	ErrDuplicate     = errors.New("duplicate leader sequence")
)

// ActionKind enumerates what a matched sequence can do.
type ActionKind uint8

const (
	// LayerOn turns Layer on.
	LayerOn ActionKind = iota + 1

	// LayerOff turns Layer off.
	LayerOff

	// LayerToggle toggles Layer.
	LayerToggle

	// ApplyEffect shows Effect without persisting it.
	ApplyEffect
)

var actionNames = map[ActionKind]string{
	LayerOn:     "layer_on",
	LayerOff:    "layer_off",
	LayerToggle: "layer_toggle",
	ApplyEffect: "apply_effect",
}

// String returns the action kind name.
func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Action is one step run by a matched sequence.
type Action struct {
	Kind   ActionKind
	Layer  layer.ID
	Effect rgb.Effect
}

// On returns an action turning l on.
func On(l layer.ID) Action { return Action{Kind: LayerOn, Layer: l} }

// Off returns an action turning l off.
func Off(l layer.ID) Action { return Action{Kind: LayerOff, Layer: l} }

// Toggle returns an action toggling l.
func Toggle(l layer.ID) Action { return Action{Kind: LayerToggle, Layer: l} }

// Effect returns an action showing e.
func Effect(e rgb.Effect) Action { return Action{Kind: ApplyEffect, Effect: e} }

// Entry binds a key sequence to actions.
type Entry struct {
	Name    string
	Keys    *key.Sequence
	Actions []Action
}

// NewEntry creates an entry from a sequence spec such as "G A M E" or "game".
func NewEntry(name, keys string, actions ...Action) (Entry, error) {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return Entry{}, fmt.Errorf("leader %q: %w", name, err)
	}
	return Entry{Name: name, Keys: seq, Actions: actions}, nil
}

// MustEntry is NewEntry that panics on error.
// Use only for known-valid table initialization.
func MustEntry(name, keys string, actions ...Action) Entry {
	e, err := NewEntry(name, keys, actions...)
	if err != nil {
		panic(err)
	}
	return e
}

// Validate reports empty and duplicate sequences in the table.
func Validate(entries []Entry) error {
	if len(entries) == 0 {
		return ErrEmptyTable
	}
	var errs []error
	for i, e := range entries {
		if e.Keys == nil || e.Keys.IsEmpty() {
			errs = append(errs, fmt.Errorf("%w: entry %d (%s)", ErrEmptySequence, i, e.Name))
			continue
		}
		for j := 0; j < i; j++ {
			if entries[j].Keys.Equals(e.Keys) {
				errs = append(errs, fmt.Errorf("%w: %q shadowed by %q (%s)", ErrDuplicate, e.Name, entries[j].Name, e.Keys))
				break
			}
		}
	}
	return errors.Join(errs...)
}
