package rgb

// NumPresets is the number of selectable presets.
const NumPresets = 4

// DefaultPreset is the preset used when none, or an invalid one, is stored.
const DefaultPreset = 1

// CustomPreset is the index whose effect may be overridden by the user's
// custom configuration.
const CustomPreset = 3

// presets holds the fixed preset effects.
// Off keeps the driver running at zero brightness so indicators still show.
var presets = [NumPresets]Effect{
	{Mode: ModeSolid, HSV: HSV{H: 0, S: 0, V: 0}, Speed: DefaultSpeed},
	{Mode: ModeSolid, HSV: HSV{H: 0, S: 0, V: 60}, Speed: DefaultSpeed},
	{Mode: ModeSolid, HSV: HSV{H: 0, S: 0, V: 200}, Speed: DefaultSpeed},
	{Mode: ModeTypingHeatmap, HSV: HSV{H: 0, S: 255, V: 255}, Speed: DefaultSpeed},
}

// Preset returns the effect for preset index i.
// Out-of-range indices return the default preset.
func Preset(i uint8) Effect {
	if int(i) >= NumPresets {
		i = DefaultPreset
	}
	return presets[i]
}

// ResolvePreset returns the effect to apply for preset i given the user's
// custom effect. The custom preset uses custom when it is set.
func ResolvePreset(i uint8, custom Effect) Effect {
	if i == CustomPreset && custom.IsSet() {
		return custom
	}
	return Preset(i)
}
