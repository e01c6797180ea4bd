package firmware

import (
	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/rgb"
)

// chords are custom actions that hold a fixed key combination. Keys are
// registered in order on press and released in reverse order.
var chords = map[keymap.Custom][]key.Code{
	keymap.CustomTaskView:     {key.KeyLeftGui, key.KeyTab},
	keymap.CustomFileExplorer: {key.KeyLeftGui, key.KeyE},
	keymap.CustomTaskManager:  {key.KeyLeftCtrl, key.KeyLeftShift, key.KeyEscape},
}

// effectModes maps the RGB config effect keys to lighting modes.
var effectModes = map[keymap.Custom]rgb.Mode{
	keymap.CustomEffectSolid:       rgb.ModeSolid,
	keymap.CustomEffectStarlight:   rgb.ModeStarlight,
	keymap.CustomEffectRaindrops:   rgb.ModeRaindrops,
	keymap.CustomEffectDigitalRain: rgb.ModeDigitalRain,
	keymap.CustomEffectPinwheel:    rgb.ModePinwheel,
	keymap.CustomEffectSplash:      rgb.ModeMultisplash,
	keymap.CustomEffectRiverflow:   rgb.ModeRiverflow,
	keymap.CustomEffectHeatmap:     rgb.ModeTypingHeatmap,
}

func (k *Keyboard) customPress(c keymap.Custom) {
	if codes, ok := chords[c]; ok {
		for _, code := range codes {
			k.plat.Host.Register(code)
		}
		return
	}
	if mode, ok := effectModes[c]; ok {
		k.adjust(func(e rgb.Effect) rgb.Effect {
			e.Mode = mode
			return e
		})
		return
	}

	cfg := k.store.Config()
	switch c {
	case keymap.CustomToggleAutocorrect:
		k.store.SetAutocorrect(!cfg.Autocorrect)
		k.logger.Info().Bool("enabled", !cfg.Autocorrect).Msg("autocorrect toggled")
	case keymap.CustomToggleJiggler:
		k.store.SetJiggler(!cfg.Jiggler)
		k.logger.Info().Bool("enabled", !cfg.Jiggler).Msg("jiggler toggled")
	case keymap.CustomRGBPreset1, keymap.CustomRGBPreset2, keymap.CustomRGBPreset3, keymap.CustomRGBPreset4:
		k.store.SetPreset(uint8(c - keymap.CustomRGBPreset1))
		k.applyPreset()
	case keymap.CustomRGBConfigReset:
		k.edit.begin(cfg.CustomEffect())
		k.plat.Lighting.SetEffect(k.edit.effect, false)
	case keymap.CustomBrightUp:
		k.adjust(func(e rgb.Effect) rgb.Effect { return e.AddValue(rgb.ValueStep) })
	case keymap.CustomBrightDown:
		k.adjust(func(e rgb.Effect) rgb.Effect { return e.AddValue(-rgb.ValueStep) })
	case keymap.CustomSatUp:
		k.adjust(func(e rgb.Effect) rgb.Effect { return e.AddSaturation(rgb.SaturationStep) })
	case keymap.CustomSatDown:
		k.adjust(func(e rgb.Effect) rgb.Effect { return e.AddSaturation(-rgb.SaturationStep) })
	case keymap.CustomSpeedUp:
		k.adjust(func(e rgb.Effect) rgb.Effect { return e.AddSpeed(rgb.SpeedStep) })
	case keymap.CustomSpeedDown:
		k.adjust(func(e rgb.Effect) rgb.Effect { return e.AddSpeed(-rgb.SpeedStep) })
	case keymap.CustomSelectWord:
		k.selectWord()
	case keymap.CustomEEPROMReset:
		k.store.Reset()
		k.applyPreset()
		k.logger.Warn().Msg("config storage reset")
	case keymap.CustomFnMac:
		k.stack.Activate(k.def.Roles.MacFn)
		k.stack.Activate(k.def.Roles.Features)
	case keymap.CustomFnWin:
		k.stack.Activate(k.def.Roles.WinFn)
		k.stack.Activate(k.def.Roles.Features)
	}
}

func (k *Keyboard) customRelease(c keymap.Custom) {
	if codes, ok := chords[c]; ok {
		for i := len(codes) - 1; i >= 0; i-- {
			k.plat.Host.Unregister(codes[i])
		}
		return
	}
	switch c {
	case keymap.CustomFnMac:
		k.stack.Deactivate(k.def.Roles.Features)
		k.stack.Deactivate(k.def.Roles.MacFn)
	case keymap.CustomFnWin:
		k.stack.Deactivate(k.def.Roles.Features)
		k.stack.Deactivate(k.def.Roles.WinFn)
	}
}

// applyPreset shows the persisted preset.
func (k *Keyboard) applyPreset() {
	k.plat.Lighting.SetEffect(k.store.Config().ActiveEffect(), true)
}

// rgbEdit is the working copy of the custom effect on the RGB config layer.
type rgbEdit struct {
	active bool
	effect rgb.Effect
}

func (e *rgbEdit) begin(from rgb.Effect) {
	e.active = true
	e.effect = from
}

func (e *rgbEdit) end() {
	e.active = false
}

// adjust changes the working effect and shows it without persisting.
func (k *Keyboard) adjust(fn func(rgb.Effect) rgb.Effect) {
	if !k.edit.active {
		k.edit.begin(k.store.Config().CustomEffect())
	}
	k.edit.effect = fn(k.edit.effect)
	k.plat.Lighting.SetEffect(k.edit.effect, false)
}

// commitCustom saves the working effect as the custom preset and selects it.
func (k *Keyboard) commitCustom() {
	e := k.store.Config().CustomEffect()
	if k.edit.active {
		e = k.edit.effect
	}
	k.store.CommitCustom(e)
	k.applyPreset()
	k.logger.Info().Str("effect", e.String()).Msg("custom preset saved")
}

// selection tracks repeated select-word presses.
type selection struct {
	active bool
	line   bool
}

func (s *selection) reset() {
	*s = selection{}
}

// selectWord selects the word at the cursor, or the line when Shift is held.
// Further presses extend the selection by a word or a line.
func (k *Keyboard) selectWord() {
	word := key.ModCtrl
	if k.stack.Default() == k.def.Roles.MacBase {
		word = key.ModAlt
	}
	shift := k.held(key.KeyLeftShift) || k.held(key.KeyRightShift)

	switch {
	case shift && !k.sel.active:
		k.withoutShift(func() {
			k.tap(key.ModNone, key.KeyHome)
			k.tap(key.ModShift, key.KeyEnd)
		})
		k.sel = selection{active: true, line: true}
	case k.sel.active && k.sel.line:
		k.withoutShift(func() {
			k.tap(key.ModShift, key.KeyDown)
			k.tap(key.ModShift, key.KeyEnd)
		})
	case k.sel.active:
		k.tap(word|key.ModShift, key.KeyRight)
	default:
		k.tap(word, key.KeyRight)
		k.tap(word|key.ModShift, key.KeyLeft)
		k.sel = selection{active: true}
	}
}

// held returns true if a held key is sending code.
func (k *Keyboard) held(code key.Code) bool {
	for _, rec := range k.pressed {
		if !rec.consumed && rec.binding.Kind == keymap.KindCode && rec.binding.Code == code {
			return true
		}
	}
	return false
}

// withoutShift releases held shift keys around fn.
func (k *Keyboard) withoutShift(fn func()) {
	var shifts []key.Code
	for _, c := range []key.Code{key.KeyLeftShift, key.KeyRightShift} {
		if k.held(c) {
			shifts = append(shifts, c)
			k.plat.Host.Unregister(c)
		}
	}
	fn()
	for _, c := range shifts {
		k.plat.Host.Register(c)
	}
}

// tap presses and releases code with mods.
func (k *Keyboard) tap(mods key.Modifier, code key.Code) {
	codes := mods.Codes()
	for _, m := range codes {
		k.plat.Host.Register(m)
	}
	k.plat.Host.Register(code)
	k.plat.Host.Unregister(code)
	for i := len(codes) - 1; i >= 0; i-- {
		k.plat.Host.Unregister(codes[i])
	}
}
