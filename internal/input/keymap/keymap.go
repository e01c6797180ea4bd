package keymap

import (
	"errors"
	"fmt"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/layer"
)

// Keymap errors
var (
	ErrInvalidLayout = errors.New("invalid layout")
	ErrInvalidKeymap = errors.New("invalid keymap")
	ErrNoKey         = errors.New("no key at position")
)

// Keymap holds one binding grid per layer.
type Keymap struct {
	// Name identifies the keymap.
	Name string

	layout   *Layout
	symbols  Symbols
	grids    [][]Binding // grids[layer][led index]
	encoders [][]encoderBindings
	index    []map[Binding][]key.Position
}

// New creates a keymap with every binding transparent, except the lowest
// layer whose bindings are no-ops.
func New(name string, layout *Layout, symbols Symbols) (*Keymap, error) {
	if layout == nil {
		return nil, fmt.Errorf("%w: nil layout", ErrInvalidKeymap)
	}
	if len(symbols.Layers) == 0 || len(symbols.Layers) > layer.MaxLayers {
		return nil, fmt.Errorf("%w: %d layers", ErrInvalidKeymap, len(symbols.Layers))
	}
	if layout.Encoders < 0 || layout.Encoders > MaxEncoders {
		return nil, fmt.Errorf("%w: %d encoders", ErrInvalidLayout, layout.Encoders)
	}

	k := &Keymap{
		Name:     name,
		layout:   layout,
		symbols:  symbols,
		grids:    make([][]Binding, len(symbols.Layers)),
		encoders: make([][]encoderBindings, len(symbols.Layers)),
		index:    make([]map[Binding][]key.Position, len(symbols.Layers)),
	}
	for i := range k.grids {
		k.grids[i] = make([]Binding, layout.Len())
		k.encoders[i] = make([]encoderBindings, layout.Encoders)
	}
	for i := range k.grids[0] {
		k.grids[0][i] = NoOp()
	}
	for i := range k.encoders[0] {
		k.encoders[0][i] = encoderBindings{NoOp(), NoOp()}
	}
	return k, nil
}

// Layout returns the physical layout.
func (k *Keymap) Layout() *Layout {
	return k.layout
}

// Symbols returns the layer and dance names.
func (k *Keymap) Symbols() Symbols {
	return k.symbols
}

// Layers returns the number of layers.
func (k *Keymap) Layers() int {
	return len(k.grids)
}

// Set assigns a binding on layer l at pos.
func (k *Keymap) Set(l layer.ID, pos key.Position, b Binding) error {
	if int(l) >= len(k.grids) {
		return fmt.Errorf("%w: %d", ErrUnknownLayer, l)
	}
	i, ok := k.layout.LED(pos)
	if !ok {
		return fmt.Errorf("%w: %v", ErrNoKey, pos)
	}
	k.grids[l][i] = b
	k.index[l] = nil
	return nil
}

// SetRow assigns bindings across row r of layer l starting at column 0.
func (k *Keymap) SetRow(l layer.ID, r int, bindings ...Binding) error {
	if r < 0 || r >= k.layout.Rows() {
		return fmt.Errorf("%w: row %d", ErrNoKey, r)
	}
	if len(bindings) != k.layout.RowLengths[r] {
		return fmt.Errorf("%w: layer %s row %d has %d bindings, want %d",
			ErrInvalidKeymap, k.symbols.layerName(l), r, len(bindings), k.layout.RowLengths[r])
	}
	for c, b := range bindings {
		if err := k.Set(l, key.Pos(uint8(r), uint8(c)), b); err != nil {
			return err
		}
	}
	return nil
}

// Fill sets every position and encoder turn on layer l to b.
func (k *Keymap) Fill(l layer.ID, b Binding) error {
	if int(l) >= len(k.grids) {
		return fmt.Errorf("%w: %d", ErrUnknownLayer, l)
	}
	for i := range k.grids[l] {
		k.grids[l][i] = b
	}
	if encoderAllowed(b) {
		for i := range k.encoders[l] {
			k.encoders[l][i] = encoderBindings{b, b}
		}
	}
	k.index[l] = nil
	return nil
}

// Binding returns the raw binding on layer l at pos.
// Unknown layers and empty positions return a no-op.
func (k *Keymap) Binding(l layer.ID, pos key.Position) Binding {
	if int(l) >= len(k.grids) {
		return NoOp()
	}
	i, ok := k.layout.LED(pos)
	if !ok {
		return NoOp()
	}
	return k.grids[l][i]
}

// Resolve returns the effective binding at pos for the given active layers,
// ordered highest first, and the layer that supplied it.
func (k *Keymap) Resolve(active []layer.ID, pos key.Position) (Binding, layer.ID) {
	for _, l := range active {
		b := k.Binding(l, pos)
		if !b.IsTransparent() {
			return b, l
		}
	}
	if len(active) > 0 {
		return NoOp(), active[len(active)-1]
	}
	return NoOp(), 0
}

// Find returns every position whose effective binding, under the given
// active layers, equals b. Positions come back in LED order.
func (k *Keymap) Find(active []layer.ID, b Binding) []key.Position {
	var found []key.Position
	for _, pos := range k.layout.positions {
		if got, _ := k.Resolve(active, pos); got == b {
			found = append(found, pos)
		}
	}
	return found
}

// FindOnLayer returns every position whose raw binding on layer l equals b,
// using the layer's reverse index.
func (k *Keymap) FindOnLayer(l layer.ID, b Binding) []key.Position {
	if int(l) >= len(k.grids) {
		return nil
	}
	return k.reverse(l)[b]
}

// CodeAt returns the code at pos on layer l if its raw binding is an
// unmodified code.
func (k *Keymap) CodeAt(l layer.ID, pos key.Position) (key.Code, bool) {
	b := k.Binding(l, pos)
	if !b.IsPlainCode() {
		return key.KeyNone, false
	}
	return b.Code, true
}

// reverse returns the binding-to-positions index for layer l, building it
// on first use after a change.
func (k *Keymap) reverse(l layer.ID) map[Binding][]key.Position {
	if k.index[l] == nil {
		idx := make(map[Binding][]key.Position)
		for i, b := range k.grids[l] {
			idx[b] = append(idx[b], k.layout.positions[i])
		}
		k.index[l] = idx
	}
	return k.index[l]
}

// Validate checks that every layer and dance reference resolves.
// All problems are reported together.
func (k *Keymap) Validate() error {
	var errs []error
	for l, grid := range k.grids {
		for i, b := range grid {
			pos := k.layout.positions[i]
			switch {
			case b.IsLayerControl() && int(b.Layer) >= len(k.grids):
				errs = append(errs, fmt.Errorf("layer %s at %v: %w: %d", k.symbols.layerName(layer.ID(l)), pos, ErrUnknownLayer, b.Layer))
			case b.Kind == KindTapDance && int(b.Dance) >= len(k.symbols.Dances):
				errs = append(errs, fmt.Errorf("layer %s at %v: %w: %d", k.symbols.layerName(layer.ID(l)), pos, ErrUnknownDance, b.Dance))
			case b.Kind == KindCustom && !b.Custom.Valid():
				errs = append(errs, fmt.Errorf("layer %s at %v: %w: custom %d", k.symbols.layerName(layer.ID(l)), pos, ErrInvalidBinding, b.Custom))
			case l == 0 && b.IsTransparent():
				errs = append(errs, fmt.Errorf("layer %s at %v: %w: transparent on lowest layer", k.symbols.layerName(0), pos, ErrInvalidKeymap))
			}
		}
	}
	errs = append(errs, k.validateEncoders()...)
	return errors.Join(errs...)
}

// Clone returns a deep copy.
func (k *Keymap) Clone() *Keymap {
	clone := &Keymap{
		Name:     k.Name,
		layout:   k.layout,
		symbols:  Symbols{Layers: append([]string(nil), k.symbols.Layers...), Dances: append([]string(nil), k.symbols.Dances...)},
		grids:    make([][]Binding, len(k.grids)),
		encoders: make([][]encoderBindings, len(k.grids)),
		index:    make([]map[Binding][]key.Position, len(k.grids)),
	}
	for i, g := range k.grids {
		clone.grids[i] = append([]Binding(nil), g...)
		clone.encoders[i] = append([]encoderBindings(nil), k.encoders[i]...)
	}
	return clone
}
