package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/keyforge/internal/layer"
)

// MaxEncoders is the largest supported encoder count.
const MaxEncoders = 8

// ErrNoEncoder is returned for an encoder index outside the layout.
var ErrNoEncoder = errors.New("no such encoder")

// Direction is a rotary encoder turn direction.
type Direction uint8

// Turn directions.
const (
	CounterClockwise Direction = iota
	Clockwise
)

func (d Direction) String() string {
	if d == Clockwise {
		return "cw"
	}
	return "ccw"
}

// encoderBindings holds the counter-clockwise and clockwise bindings of one
// encoder, indexed by Direction.
type encoderBindings [2]Binding

// SetEncoder assigns the binding for turning encoder i in direction d on
// layer l.
func (k *Keymap) SetEncoder(l layer.ID, i int, d Direction, b Binding) error {
	if int(l) >= len(k.grids) {
		return fmt.Errorf("%w: %d", ErrUnknownLayer, l)
	}
	if i < 0 || i >= k.layout.Encoders || d > Clockwise {
		return fmt.Errorf("%w: %d %s", ErrNoEncoder, i, d)
	}
	k.encoders[l][i][d] = b
	return nil
}

// Encoder returns the raw binding for encoder i and direction d on layer l.
// Unknown layers and encoders return a no-op.
func (k *Keymap) Encoder(l layer.ID, i int, d Direction) Binding {
	if int(l) >= len(k.encoders) || i < 0 || i >= len(k.encoders[l]) || d > Clockwise {
		return NoOp()
	}
	return k.encoders[l][i][d]
}

// ResolveEncoder returns the effective encoder binding for the given active
// layers, ordered highest first, and the layer that supplied it.
func (k *Keymap) ResolveEncoder(active []layer.ID, i int, d Direction) (Binding, layer.ID) {
	for _, l := range active {
		b := k.Encoder(l, i, d)
		if !b.IsTransparent() {
			return b, l
		}
	}
	if len(active) > 0 {
		return NoOp(), active[len(active)-1]
	}
	return NoOp(), 0
}

// encoderAllowed reports whether b can be bound to an encoder turn. A turn
// is a tap, so only bindings without hold semantics qualify.
func encoderAllowed(b Binding) bool {
	switch b.Kind {
	case KindCode, KindCustom, KindNoOp, KindTransparent:
		return true
	}
	return false
}

func (k *Keymap) validateEncoders() []error {
	var errs []error
	for l, encs := range k.encoders {
		name := k.symbols.layerName(layer.ID(l))
		for i, e := range encs {
			for d, b := range e {
				switch {
				case !encoderAllowed(b):
					errs = append(errs, fmt.Errorf("layer %s encoder %d %s: %w: %s not allowed", name, i, Direction(d), ErrInvalidBinding, b.Kind))
				case b.Kind == KindCustom && !b.Custom.Valid():
					errs = append(errs, fmt.Errorf("layer %s encoder %d %s: %w: custom %d", name, i, Direction(d), ErrInvalidBinding, b.Custom))
				case l == 0 && b.IsTransparent():
					errs = append(errs, fmt.Errorf("layer %s encoder %d %s: %w: transparent on lowest layer", name, i, Direction(d), ErrInvalidKeymap))
				}
			}
		}
	}
	return errs
}
