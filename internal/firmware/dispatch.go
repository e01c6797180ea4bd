package firmware

import (
	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/input/leader"
	"github.com/dshills/keyforge/internal/input/tapdance"
	"github.com/dshills/keyforge/internal/timer"
)

func (k *Keyboard) resolve(pos key.Position) keymap.Binding {
	b, _ := k.km.Resolve(k.stack.Active(), pos)
	return b
}

func (k *Keyboard) press(pos key.Position, at timer.Millis) {
	b := k.resolve(pos)

	if b.Kind == keymap.KindTapDance {
		if k.dances != nil {
			k.applyDances(k.dances.Press(b.Dance, at))
		}
		k.pressed[pos] = pressRecord{binding: b, consumed: true}
		return
	}
	if k.dances != nil && k.dances.Pending() {
		k.applyDances(k.dances.Interrupt())
		b = k.resolve(pos)
	}

	if k.leader.Active() {
		k.pressed[pos] = pressRecord{binding: b, consumed: true}
		if b.IsPlainCode() {
			k.applyLeader(k.leader.Add(b.Code, at))
		}
		return
	}

	if k.game.Active() {
		if c, ok := k.km.CodeAt(k.stack.Default(), pos); ok && k.game.Press(c, pos, at) {
			k.pressed[pos] = pressRecord{binding: b, consumed: true}
			return
		}
	}

	if k.oneShot.active && b.Kind != keymap.KindOneShot {
		k.oneShot.used = true
	}
	if b.Kind != keymap.KindCustom || b.Custom != keymap.CustomSelectWord {
		k.sel.reset()
	}

	k.pressed[pos] = pressRecord{binding: b}
	k.dispatchPress(b, at)
}

func (k *Keyboard) dispatchPress(b keymap.Binding, at timer.Millis) {
	switch b.Kind {
	case keymap.KindCode:
		for _, m := range b.Mods.Codes() {
			k.plat.Host.Register(m)
		}
		k.plat.Host.Register(b.Code)
	case keymap.KindMomentary:
		k.stack.Activate(b.Layer)
	case keymap.KindToggle:
		k.stack.Toggle(b.Layer)
	case keymap.KindOneShot:
		k.oneShot = oneShot{active: true, layer: b.Layer}
		k.stack.Activate(b.Layer)
	case keymap.KindSetDefault:
		k.stack.SetDefault(b.Layer)
	case keymap.KindCustom:
		k.customPress(b.Custom)
	case keymap.KindLeader:
		k.leader.Start(at)
		k.stack.Activate(k.def.Roles.Leader)
	}
}

func (k *Keyboard) release(pos key.Position) {
	rec, ok := k.pressed[pos]
	if !ok {
		return
	}
	delete(k.pressed, pos)
	if rec.consumed {
		return
	}

	b := rec.binding
	k.dispatchRelease(b)

	if k.oneShot.active && k.oneShot.used && b.Kind != keymap.KindOneShot {
		k.stack.Deactivate(k.oneShot.layer)
		k.oneShot = oneShot{}
	}
}

func (k *Keyboard) dispatchRelease(b keymap.Binding) {
	switch b.Kind {
	case keymap.KindCode:
		k.plat.Host.Unregister(b.Code)
		mods := b.Mods.Codes()
		for i := len(mods) - 1; i >= 0; i-- {
			k.plat.Host.Unregister(mods[i])
		}
	case keymap.KindMomentary:
		k.stack.Deactivate(b.Layer)
	case keymap.KindToggleOnRelease:
		k.stack.Toggle(b.Layer)
	case keymap.KindCustom:
		k.customRelease(b.Custom)
	}
}

// turn taps the binding of one encoder detent. A detent interrupts pending
// dances like a key press and is swallowed while a leader sequence is
// collected.
func (k *Keyboard) turn(i int, dir keymap.Direction, at timer.Millis) {
	if k.dances != nil && k.dances.Pending() {
		k.applyDances(k.dances.Interrupt())
	}
	if k.leader.Active() {
		return
	}
	b, _ := k.km.ResolveEncoder(k.stack.Active(), i, dir)
	switch b.Kind {
	case keymap.KindCode, keymap.KindCustom:
		k.dispatchPress(b, at)
		k.dispatchRelease(b)
	}
}

func (k *Keyboard) applyDances(resolutions []tapdance.Resolution) {
	for _, res := range resolutions {
		for _, a := range res.Actions {
			switch a.Kind {
			case tapdance.LayerOn:
				k.stack.Activate(a.Layer)
			case tapdance.LayerOff:
				k.stack.Deactivate(a.Layer)
			case tapdance.LayerToggle:
				k.stack.Toggle(a.Layer)
			case tapdance.RestorePreset:
				k.applyPreset()
			case tapdance.CommitCustomPreset:
				k.commitCustom()
			}
		}
	}
}

func (k *Keyboard) applyLeader(res leader.Result) {
	if !res.Done() {
		return
	}
	k.stack.Deactivate(k.def.Roles.Leader)
	for _, a := range res.Actions {
		switch a.Kind {
		case leader.LayerOn:
			k.stack.Activate(a.Layer)
		case leader.LayerOff:
			k.stack.Deactivate(a.Layer)
		case leader.LayerToggle:
			k.stack.Toggle(a.Layer)
		case leader.ApplyEffect:
			k.plat.Lighting.SetEffect(a.Effect, false)
		}
	}
}
