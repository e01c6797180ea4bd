package game

import (
	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/rgb"
)

// CelebrationDuration is the length of the hit ripple in milliseconds.
const CelebrationDuration uint32 = 500

// rippleSpeed is the radius, in keys, reached at the end of the celebration.
const rippleSpeed = 8

// Ripple returns the celebration color for a key at Manhattan distance d
// from the hit, t milliseconds after it. Keys outside the band are unlit.
//
// The band spans radius-1 through radius+2. The outer edge grows in over the
// first two radius steps, so at t=0 only the hit key is lit.
func Ripple(t uint32, d int) (rgb.Color, bool) {
	if t >= CelebrationDuration || d < 0 {
		return rgb.Black, false
	}
	r := int(t * rippleSpeed / CelebrationDuration)

	outer := r + 2
	if r < 2 {
		outer = 2 * r
	}
	if d > outer || d < r-1 {
		return rgb.Black, false
	}

	hsv := rgb.HSV{
		H: uint8((d * 32) % 255),
		S: 255,
		V: uint8(255 - t*255/CelebrationDuration),
	}
	return hsv.RGB(), true
}

// RippleAt returns the celebration color at pos for a hit at hit.
func RippleAt(t uint32, hit, pos key.Position) (rgb.Color, bool) {
	return Ripple(t, hit.Distance(pos))
}
