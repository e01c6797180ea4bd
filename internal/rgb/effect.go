package rgb

import (
	"fmt"
	"strings"
)

// Mode is a lighting driver animation mode.
type Mode uint8

// Lighting modes. ModeNone is the zero value and marks an unset effect.
const (
	ModeNone Mode = iota
	ModeSolid
	ModeStarlight
	ModeRaindrops
	ModeDigitalRain
	ModePinwheel
	ModeMultisplash
	ModeRiverflow
	ModeTypingHeatmap
	ModeSplash
)

var modeNames = [...]string{
	ModeNone:          "none",
	ModeSolid:         "solid",
	ModeStarlight:     "starlight",
	ModeRaindrops:     "raindrops",
	ModeDigitalRain:   "digital_rain",
	ModePinwheel:      "pinwheel",
	ModeMultisplash:   "multisplash",
	ModeRiverflow:     "riverflow",
	ModeTypingHeatmap: "typing_heatmap",
	ModeSplash:        "splash",
}

// String returns the mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Valid returns true for a known, set mode.
func (m Mode) Valid() bool {
	return m > ModeNone && m <= ModeSplash
}

// ModeFromName returns the mode for a name (case-insensitive).
func ModeFromName(name string) (Mode, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), true
		}
	}
	return ModeNone, false
}

// Effect is a complete lighting driver setting.
type Effect struct {
	Mode  Mode
	HSV   HSV
	Speed uint8
}

// IsSet returns true if the effect carries a valid mode.
func (e Effect) IsSet() bool {
	return e.Mode.Valid()
}

// String returns a compact representation like "solid hsv(0,0,60) speed=128".
func (e Effect) String() string {
	return fmt.Sprintf("%s %s speed=%d", e.Mode, e.HSV, e.Speed)
}

// Adjustment steps used by the configuration layer.
const (
	ValueStep      = 16
	SaturationStep = 16
	SpeedStep      = 16
	DefaultSpeed   = 128
)

// AddValue returns the effect with brightness moved by delta, saturating at
// 0 and 255.
func (e Effect) AddValue(delta int) Effect {
	e.HSV.V = saturate(int(e.HSV.V) + delta)
	return e
}

// AddSaturation returns the effect with saturation moved by delta.
func (e Effect) AddSaturation(delta int) Effect {
	e.HSV.S = saturate(int(e.HSV.S) + delta)
	return e
}

// AddSpeed returns the effect with speed moved by delta.
func (e Effect) AddSpeed(delta int) Effect {
	e.Speed = saturate(int(e.Speed) + delta)
	return e
}

func saturate(v int) uint8 {
	return uint8(max(0, min(255, v)))
}

// SplashEffect is applied, unpersisted, when the kiddo layer is entered.
var SplashEffect = Effect{Mode: ModeSplash, HSV: HSV{H: 0, S: 255, V: 255}, Speed: DefaultSpeed}
