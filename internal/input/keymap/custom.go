package keymap

import (
	"fmt"
	"strings"
)

// Custom identifies a firmware-handled custom action.
type Custom uint16

// Custom actions.
const (
	CustomNone Custom = iota
	CustomTaskView
	CustomFileExplorer
	CustomToggleAutocorrect
	CustomToggleJiggler
	CustomRGBPreset1
	CustomRGBPreset2
	CustomRGBPreset3
	CustomRGBPreset4
	CustomEffectSolid
	CustomEffectStarlight
	CustomEffectRaindrops
	CustomEffectDigitalRain
	CustomEffectPinwheel
	CustomEffectSplash
	CustomEffectRiverflow
	CustomEffectHeatmap
	CustomRGBConfigReset
	CustomBrightUp
	CustomBrightDown
	CustomSpeedUp
	CustomSpeedDown
	CustomSatUp
	CustomSatDown
	CustomSelectWord
	CustomTaskManager
	CustomEEPROMReset
	CustomFnMac
	CustomFnWin

	numCustom
)

// customNames lists accepted names per action, canonical first.
var customNames = [numCustom][]string{
	CustomNone:              {"CUSTOM_NONE"},
	CustomTaskView:          {"KC_TASK_VIEW", "KC_TASK"},
	CustomFileExplorer:      {"KC_FILE_EXPLORER", "KC_FLXP"},
	CustomToggleAutocorrect: {"TOGGLE_AUTOCORRECT"},
	CustomToggleJiggler:     {"TOGGLE_JIGGLER"},
	CustomRGBPreset1:        {"RGB_PRESET_1"},
	CustomRGBPreset2:        {"RGB_PRESET_2"},
	CustomRGBPreset3:        {"RGB_PRESET_3"},
	CustomRGBPreset4:        {"RGB_PRESET_4"},
	CustomEffectSolid:       {"RGB_EFF_SOLID"},
	CustomEffectStarlight:   {"RGB_EFF_STARLIGHT"},
	CustomEffectRaindrops:   {"RGB_EFF_RAINDROPS"},
	CustomEffectDigitalRain: {"RGB_EFF_DIGRAIN"},
	CustomEffectPinwheel:    {"RGB_EFF_SPIRAL"},
	CustomEffectSplash:      {"RGB_EFF_SPLASH"},
	CustomEffectRiverflow:   {"RGB_EFF_RIVER"},
	CustomEffectHeatmap:     {"RGB_EFF_HEATMAP"},
	CustomRGBConfigReset:    {"RGB_CFG_RESET"},
	CustomBrightUp:          {"RGB_BRIGHT_UP"},
	CustomBrightDown:        {"RGB_BRIGHT_DOWN"},
	CustomSpeedUp:           {"RGB_SPEED_UP"},
	CustomSpeedDown:         {"RGB_SPEED_DOWN"},
	CustomSatUp:             {"RGB_SAT_UP"},
	CustomSatDown:           {"RGB_SAT_DOWN"},
	CustomSelectWord:        {"SELWORD"},
	CustomTaskManager:       {"TASK_MGR"},
	CustomEEPROMReset:       {"EEPROM_RESET"},
	CustomFnMac:             {"FN_MAC"},
	CustomFnWin:             {"FN_WIN"},
}

// String returns the canonical name.
func (c Custom) String() string {
	if c < numCustom {
		return customNames[c][0]
	}
	return fmt.Sprintf("Custom(%d)", uint16(c))
}

// Valid returns true for a known action other than CustomNone.
func (c Custom) Valid() bool {
	return c > CustomNone && c < numCustom
}

// CustomFromName returns the action for a name (case-insensitive).
func CustomFromName(name string) (Custom, bool) {
	for c := CustomTaskView; c < numCustom; c++ {
		for _, n := range customNames[c] {
			if strings.EqualFold(n, name) {
				return c, true
			}
		}
	}
	return CustomNone, false
}
