package board

import (
	_ "embed"
	"fmt"

	"github.com/dshills/keyforge/internal/firmware"
	"github.com/dshills/keyforge/internal/indicator"
	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/input/leader"
	"github.com/dshills/keyforge/internal/input/tapdance"
	"github.com/dshills/keyforge/internal/layer"
	"github.com/dshills/keyforge/internal/rgb"
)

//go:embed q3.toml
var q3Source []byte

// Q3 layers. IDs 0-3 follow the physical OS switch.
const (
	MacBase layer.ID = iota
	MacFn
	WinBase
	WinFn
	Features
	Gaming
	Mouse
	Kiddo
	RGBConfig
	Leader
)

// Q3 tap dances, in keymap order.
const (
	DanceEscMouse keymap.DanceID = iota
	DanceEscKiddo
	DanceEscRGB
	DanceEscGaming
)

// Source returns the embedded Q3 keymap file.
func Source() []byte {
	return q3Source
}

// Keymap decodes the embedded Q3 keymap.
func Keymap() (*keymap.Keymap, error) {
	km, err := keymap.Decode(q3Source, keymap.FormatTOML)
	if err != nil {
		return nil, fmt.Errorf("q3 keymap: %w", err)
	}
	return km, nil
}

// Q3 returns the complete Q3 definition.
func Q3() (firmware.Definition, error) {
	km, err := Keymap()
	if err != nil {
		return firmware.Definition{}, err
	}
	return Define(km)
}

// Define combines km with the Q3 roles, dances, sequences and indicators.
func Define(km *keymap.Keymap) (firmware.Definition, error) {
	def := firmware.Definition{
		Name:       km.Name,
		Keymap:     km,
		Roles:      Roles(),
		Dances:     Dances(),
		Sequences:  Sequences(),
		Indicators: Indicators(),
	}
	if err := def.Validate(); err != nil {
		return firmware.Definition{}, err
	}
	return def, nil
}

// Roles returns the Q3 layer roles.
func Roles() firmware.Roles {
	return firmware.Roles{
		MacBase:   MacBase,
		MacFn:     MacFn,
		WinBase:   WinBase,
		WinFn:     WinFn,
		Features:  Features,
		Gaming:    Gaming,
		Mouse:     Mouse,
		Kiddo:     Kiddo,
		RGBConfig: RGBConfig,
		Leader:    Leader,
	}
}

// Dances returns the escape dances. Each leaves its layer on a double tap.
func Dances() []tapdance.Dance {
	return []tapdance.Dance{
		DanceEscMouse:  tapdance.OnDoubleTap("ESC_MOUSE", tapdance.Off(Mouse)),
		DanceEscKiddo:  tapdance.OnDoubleTap("ESC_KIDDO", tapdance.Off(Kiddo), tapdance.Action{Kind: tapdance.RestorePreset}),
		DanceEscRGB:    tapdance.OnDoubleTap("ESC_RGB", tapdance.Action{Kind: tapdance.CommitCustomPreset}, tapdance.Off(RGBConfig)),
		DanceEscGaming: tapdance.OnDoubleTap("ESC_GAMING", tapdance.Off(Gaming)),
	}
}

// Sequences returns the leader table.
func Sequences() []leader.Entry {
	return []leader.Entry{
		leader.MustEntry("game", "game", leader.Toggle(Gaming)),
		leader.MustEntry("mouse", "mouse", leader.On(Mouse)),
		leader.MustEntry("kiddo", "kiddo", leader.On(Kiddo), leader.Effect(rgb.SplashEffect)),
		leader.MustEntry("rgb", "rgb", leader.On(RGBConfig)),
	}
}

// Indicators returns the Q3 indicator rules.
func Indicators() *indicator.Table {
	disabled := indicator.Rule{Binding: keymap.NoOp(), Color: rgb.DarkRed}
	exit := func(d keymap.DanceID) indicator.Rule {
		return indicator.Rule{Binding: keymap.TD(d), Color: rgb.Purple}
	}

	var features []indicator.Rule
	features = append(features, indicator.Static(rgb.Chartreuse,
		keymap.Action(keymap.CustomTaskManager),
		keymap.Action(keymap.CustomRGBPreset1),
		keymap.Action(keymap.CustomRGBPreset2),
		keymap.Action(keymap.CustomRGBPreset3),
		keymap.Action(keymap.CustomRGBPreset4),
	)...)
	features = append(features, indicator.Static(rgb.Red,
		keymap.Code(key.KeyBoot),
		keymap.Action(keymap.CustomEEPROMReset),
	)...)
	features = append(features, indicator.Static(rgb.Purple,
		keymap.Leader(),
		keymap.MO(Features),
		keymap.Action(keymap.CustomFnWin),
		keymap.Action(keymap.CustomFnMac),
	)...)

	var gaming []indicator.Rule
	gaming = append(gaming, indicator.Static(rgb.Green, indicator.Codes(key.KeyW, key.KeyA, key.KeyS, key.KeyD, key.KeySpace)...)...)
	gaming = append(gaming, indicator.Static(rgb.White, indicator.Codes(
		key.KeyQ, key.KeyR, key.KeyF, key.KeyZ, key.KeyX, key.KeyC, key.KeyV,
		key.KeyTab, key.KeyLeftShift, key.KeyLeftCtrl, key.KeyGrave,
	)...)...)
	gaming = append(gaming, indicator.Static(rgb.Orange, indicator.Codes(key.KeyE, key.Key1, key.Key2, key.Key3, key.Key4)...)...)
	gaming = append(gaming, exit(DanceEscGaming), disabled)

	var mouse []indicator.Rule
	mouse = append(mouse, indicator.Static(rgb.Chartreuse, indicator.Codes(key.KeyMouseUp, key.KeyMouseDown, key.KeyMouseLeft, key.KeyMouseRight)...)...)
	mouse = append(mouse, indicator.Static(rgb.SpringGreen, indicator.Codes(key.KeyMouseButton1, key.KeyMouseButton2)...)...)
	mouse = append(mouse, exit(DanceEscMouse), disabled)

	var rgbConfig []indicator.Rule
	rgbConfig = append(rgbConfig, indicator.Static(rgb.SpringGreen,
		keymap.Action(keymap.CustomEffectSolid),
		keymap.Action(keymap.CustomEffectStarlight),
		keymap.Action(keymap.CustomEffectRaindrops),
		keymap.Action(keymap.CustomEffectDigitalRain),
		keymap.Action(keymap.CustomEffectPinwheel),
		keymap.Action(keymap.CustomEffectSplash),
		keymap.Action(keymap.CustomEffectRiverflow),
		keymap.Action(keymap.CustomEffectHeatmap),
	)...)
	rgbConfig = append(rgbConfig, indicator.Static(rgb.White,
		keymap.Action(keymap.CustomBrightUp),
		keymap.Action(keymap.CustomBrightDown),
		keymap.Action(keymap.CustomSatUp),
		keymap.Action(keymap.CustomSatDown),
		keymap.Action(keymap.CustomSpeedUp),
		keymap.Action(keymap.CustomSpeedDown),
	)...)
	rgbConfig = append(rgbConfig,
		indicator.Rule{Binding: keymap.Action(keymap.CustomRGBConfigReset), Color: rgb.Orange},
		exit(DanceEscRGB),
	)

	return &indicator.Table{
		Layers: map[layer.ID]indicator.LayerRules{
			Features: {
				Static: features,
				Toggles: []indicator.Toggle{
					{Binding: keymap.Action(keymap.CustomToggleAutocorrect), Flag: indicator.FlagAutocorrect, On: rgb.Blue, Off: rgb.Orange},
					{Binding: keymap.Action(keymap.CustomToggleJiggler), Flag: indicator.FlagJiggler, On: rgb.Blue, Off: rgb.Orange},
					{Binding: keymap.Code(key.KeyNKROToggle), Flag: indicator.FlagNKRO, On: rgb.Blue, Off: rgb.Orange},
				},
			},
			Gaming:    {Static: gaming},
			Mouse:     {Static: mouse},
			Kiddo:     {Static: []indicator.Rule{exit(DanceEscKiddo)}},
			RGBConfig: {Static: rgbConfig},
			Leader: {Static: []indicator.Rule{
				{Binding: keymap.Leader(), Color: rgb.Blue},
				disabled,
			}},
		},
		CapsLock:      indicator.Rule{Binding: keymap.Code(key.KeyCapsLock), Color: rgb.Blue},
		GameLayer:     Kiddo,
		LeaderSuccess: rgb.Green,
		LeaderFailure: rgb.Red,
	}
}
