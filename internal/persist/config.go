package persist

import (
	"github.com/dshills/keyforge/internal/rgb"
)

// Config is the persisted user configuration.
type Config struct {
	Autocorrect bool
	Jiggler     bool
	Preset      uint8
	Custom      rgb.Effect
}

// Defaults returns the configuration written to blank storage.
func Defaults() Config {
	return Config{
		Autocorrect: true,
		Jiggler:     true,
		Preset:      rgb.DefaultPreset,
	}
}

const (
	bitAutocorrect = 1 << 0
	bitJiggler     = 1 << 1
	presetShift    = 2
	presetMask     = 0x0F
)

// Pack encodes the configuration into its 64-bit storage form.
func (c Config) Pack() uint64 {
	var raw uint64
	if c.Autocorrect {
		raw |= bitAutocorrect
	}
	if c.Jiggler {
		raw |= bitJiggler
	}
	raw |= uint64(c.Preset&presetMask) << presetShift
	raw |= uint64(c.Custom.Mode) << 8
	raw |= uint64(c.Custom.HSV.H) << 16
	raw |= uint64(c.Custom.HSV.S) << 24
	raw |= uint64(c.Custom.HSV.V) << 32
	raw |= uint64(c.Custom.Speed) << 40
	return raw
}

// Unpack decodes a 64-bit storage word. It does not validate.
func Unpack(raw uint64) Config {
	return Config{
		Autocorrect: raw&bitAutocorrect != 0,
		Jiggler:     raw&bitJiggler != 0,
		Preset:      uint8(raw>>presetShift) & presetMask,
		Custom: rgb.Effect{
			Mode: rgb.Mode(raw >> 8),
			HSV: rgb.HSV{
				H: uint8(raw >> 16),
				S: uint8(raw >> 24),
				V: uint8(raw >> 32),
			},
			Speed: uint8(raw >> 40),
		},
	}
}

// Clamp returns c with every out-of-range field replaced by a safe value and
// the names of the fields that changed.
func (c Config) Clamp() (Config, []string) {
	var fixed []string
	if int(c.Preset) >= rgb.NumPresets {
		c.Preset = rgb.DefaultPreset
		fixed = append(fixed, "preset")
	}
	if c.Custom.Mode != rgb.ModeNone && !c.Custom.Mode.Valid() {
		c.Custom = rgb.Effect{}
		fixed = append(fixed, "custom_mode")
	}
	return c, fixed
}

// CustomEffect returns the effect for the custom preset, falling back to the
// built-in preset when no custom effect is stored.
func (c Config) CustomEffect() rgb.Effect {
	return rgb.ResolvePreset(rgb.CustomPreset, c.Custom)
}

// ActiveEffect returns the effect for the active preset.
func (c Config) ActiveEffect() rgb.Effect {
	return rgb.ResolvePreset(c.Preset, c.Custom)
}
