package keymap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/layer"
)

// Binding notation errors
var (
	ErrInvalidBinding = errors.New("invalid binding")
	ErrUnknownLayer   = errors.New("unknown layer")
	ErrUnknownDance   = errors.New("unknown tap dance")
)

// Symbols names the layers and tap dances referenced by bindings.
type Symbols struct {
	Layers []string
	Dances []string
}

// layerFunctions maps notation prefixes to layer binding constructors.
var layerFunctions = map[string]func(layer.ID) Binding{
	"MO":  MO,
	"TG":  TG,
	"TR":  TR,
	"OSL": OSL,
	"DF":  DF,
}

// Parse parses a binding token.
func (s Symbols) Parse(tok string) (Binding, error) {
	tok = strings.TrimSpace(tok)
	upper := strings.ToUpper(tok)

	switch upper {
	case "":
		return Binding{}, fmt.Errorf("%w: empty token", ErrInvalidBinding)
	case "_______", "_", "KC_TRNS", "KC_TRANSPARENT":
		return Trans(), nil
	case "XXXXXXX", "KC_NO":
		return NoOp(), nil
	case "QK_LEAD", "QK_LEADER":
		return Leader(), nil
	}

	if c, ok := CustomFromName(tok); ok {
		return Action(c), nil
	}

	if open := strings.IndexByte(upper, '('); open > 0 && strings.HasSuffix(upper, ")") {
		fn := upper[:open]
		arg := tok[open+1 : len(tok)-1]

		if ctor, ok := layerFunctions[fn]; ok {
			id, err := s.LayerID(arg)
			if err != nil {
				return Binding{}, fmt.Errorf("%s: %w", tok, err)
			}
			return ctor(id), nil
		}
		if fn == "TD" {
			d, err := s.DanceID(arg)
			if err != nil {
				return Binding{}, fmt.Errorf("%s: %w", tok, err)
			}
			return TD(d), nil
		}
	}

	code, mods, err := key.Parse(tok)
	if err != nil {
		return Binding{}, fmt.Errorf("%w: %q: %v", ErrInvalidBinding, tok, err)
	}
	return Chord(mods, code), nil
}

// MustParse parses a binding token and panics on error.
// Use only for known-valid tokens in table initialization.
func (s Symbols) MustParse(tok string) Binding {
	b, err := s.Parse(tok)
	if err != nil {
		panic(err)
	}
	return b
}

// LayerID resolves a layer name or number.
func (s Symbols) LayerID(name string) (layer.ID, error) {
	name = strings.TrimSpace(name)
	for i, n := range s.Layers {
		if strings.EqualFold(n, name) || strings.EqualFold("_"+n, name) {
			return layer.ID(i), nil
		}
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n < len(s.Layers) {
		return layer.ID(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, name)
}

// DanceID resolves a tap dance name or number.
func (s Symbols) DanceID(name string) (DanceID, error) {
	name = strings.TrimSpace(name)
	for i, n := range s.Dances {
		if strings.EqualFold(n, name) || strings.EqualFold("TD_"+n, name) {
			return DanceID(i), nil
		}
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n < len(s.Dances) {
		return DanceID(n), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDance, name)
}

// Format renders a binding in notation that Parse accepts.
func (s Symbols) Format(b Binding) string {
	switch b.Kind {
	case KindTransparent:
		return "_______"
	case KindNoOp:
		return "XXXXXXX"
	case KindCode:
		return key.Format(b.Code, b.Mods)
	case KindMomentary:
		return "MO(" + s.layerName(b.Layer) + ")"
	case KindToggle:
		return "TG(" + s.layerName(b.Layer) + ")"
	case KindToggleOnRelease:
		return "TR(" + s.layerName(b.Layer) + ")"
	case KindOneShot:
		return "OSL(" + s.layerName(b.Layer) + ")"
	case KindSetDefault:
		return "DF(" + s.layerName(b.Layer) + ")"
	case KindCustom:
		return b.Custom.String()
	case KindTapDance:
		if int(b.Dance) < len(s.Dances) {
			return "TD(" + s.Dances[b.Dance] + ")"
		}
		return fmt.Sprintf("TD(%d)", b.Dance)
	case KindLeader:
		return "QK_LEAD"
	default:
		return b.Kind.String()
	}
}

func (s Symbols) layerName(id layer.ID) string {
	if int(id) < len(s.Layers) {
		return s.Layers[id]
	}
	return strconv.Itoa(int(id))
}

// String renders the binding with numeric layer and dance references.
func (b Binding) String() string {
	return Symbols{}.Format(b)
}
