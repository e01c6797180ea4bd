package indicator

import (
	"cmp"
	"slices"

	"github.com/dshills/keyforge/internal/game"
	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/layer"
	"github.com/dshills/keyforge/internal/platform"
	"github.com/dshills/keyforge/internal/rgb"
)

// Frame maps key positions to colors. Absent positions show the background
// effect.
type Frame map[key.Position]rgb.Color

// Positions returns the assigned positions in row-major order.
func (f Frame) Positions() []key.Position {
	positions := make([]key.Position, 0, len(f))
	for pos := range f {
		positions = append(positions, pos)
	}
	slices.SortFunc(positions, func(a, b key.Position) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return positions
}

// Apply replaces the platform's per-key assignments with the frame.
func (f Frame) Apply(out platform.Indicators) {
	out.Clear()
	for _, pos := range f.Positions() {
		out.Set(pos, f[pos])
	}
}

// GameView is the mini-game state shown by the projection.
type GameView struct {
	Active    bool
	HasTarget bool
	Target    game.Target
	Color     rgb.Color

	// Celebrating is set while the hit ripple runs, Elapsed after the hit.
	Celebrating bool
	HitPos      key.Position
	Elapsed     uint32
}

// LeaderView is the leader flash state shown by the projection.
type LeaderView struct {
	Flash   bool
	Success bool
}

// Input is everything the projection reads.
type Input struct {
	Keymap *keymap.Keymap

	// Active lists the active layers highest first, default included.
	Active  []layer.ID
	Default layer.ID

	Flags  Flags
	Game   GameView
	Leader LeaderView
}

// Highest returns the highest active layer.
func (in Input) Highest() layer.ID {
	if len(in.Active) == 0 {
		return in.Default
	}
	return in.Active[0]
}

// Project computes the indicator frame for in.
func Project(t *Table, in Input) Frame {
	frame := make(Frame)
	if t == nil || in.Keymap == nil {
		return frame
	}

	// Lowest precedence first; later writes win.
	if in.Flags.CapsLock {
		for _, pos := range in.Keymap.FindOnLayer(in.Default, t.CapsLock.Binding) {
			frame[pos] = t.CapsLock.Color
		}
	}

	highest := in.Highest()
	rules := t.Layers[highest]
	for _, r := range rules.Static {
		for _, pos := range in.Keymap.Find(in.Active, r.Binding) {
			frame[pos] = r.Color
		}
	}
	for _, tg := range rules.Toggles {
		c := tg.Off
		if in.Flags.Get(tg.Flag) {
			c = tg.On
		}
		for _, pos := range in.Keymap.Find(in.Active, tg.Binding) {
			frame[pos] = c
		}
	}

	if in.Leader.Flash {
		c := t.LeaderFailure
		if in.Leader.Success {
			c = t.LeaderSuccess
		}
		for _, pos := range leaderKeys(in.Keymap) {
			frame[pos] = c
		}
	}

	if highest == t.GameLayer && in.Game.Active {
		projectGame(frame, in.Keymap.Layout(), in.Game)
	}
	return frame
}

func projectGame(frame Frame, layout *keymap.Layout, g GameView) {
	if !g.Celebrating {
		if g.HasTarget {
			frame[g.Target.Pos] = g.Color
		}
		return
	}
	for _, pos := range layout.Positions() {
		if c, ok := game.RippleAt(g.Elapsed, g.HitPos, pos); ok {
			frame[pos] = c
		}
	}
}

// leaderKeys returns every position bound to the leader trigger on any layer.
func leaderKeys(km *keymap.Keymap) []key.Position {
	var out []key.Position
	for l, n := 0, km.Layers(); l < n; l++ {
		for _, pos := range km.FindOnLayer(layer.ID(l), keymap.Leader()) {
			if !slices.Contains(out, pos) {
				out = append(out, pos)
			}
		}
	}
	return out
}
