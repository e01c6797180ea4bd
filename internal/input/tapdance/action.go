package tapdance

import (
	"fmt"

	"github.com/dshills/keyforge/internal/layer"
)

// ActionKind enumerates what a resolved dance can do.
type ActionKind uint8

const (
	// LayerOn turns Layer on.
	LayerOn ActionKind = iota + 1

	// LayerOff turns Layer off.
	LayerOff

	// LayerToggle toggles Layer.
	LayerToggle

	// RestorePreset reapplies the persisted RGB preset.
	RestorePreset

	// CommitCustomPreset saves the edited custom effect and selects it.
	CommitCustomPreset
)

var actionNames = map[ActionKind]string{
	LayerOn:            "layer_on",
	LayerOff:           "layer_off",
	LayerToggle:        "layer_toggle",
	RestorePreset:      "restore_preset",
	CommitCustomPreset: "commit_custom_preset",
}

// String returns the action kind name.
func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ActionKind(%d)", uint8(k))
}

// Action is one step run when a dance resolves.
type Action struct {
	Kind  ActionKind
	Layer layer.ID
}

// On returns an action turning l on.
func On(l layer.ID) Action { return Action{Kind: LayerOn, Layer: l} }

// Off returns an action turning l off.
func Off(l layer.ID) Action { return Action{Kind: LayerOff, Layer: l} }

// Toggle returns an action toggling l.
func Toggle(l layer.ID) Action { return Action{Kind: LayerToggle, Layer: l} }

func (a Action) String() string {
	switch a.Kind {
	case LayerOn, LayerOff, LayerToggle:
		return fmt.Sprintf("%s(%d)", a.Kind, a.Layer)
	default:
		return a.Kind.String()
	}
}
