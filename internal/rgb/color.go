package rgb

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Named indicator colors.
var (
	Black       = Color{R: 0x00, G: 0x00, B: 0x00}
	White       = Color{R: 0xFF, G: 0xFF, B: 0xFF}
	Red         = Color{R: 0xFF, G: 0x00, B: 0x00}
	Green       = Color{R: 0x00, G: 0xFF, B: 0x00}
	Blue        = Color{R: 0x00, G: 0x00, B: 0xFF}
	Orange      = Color{R: 0xFF, G: 0x80, B: 0x00}
	Purple      = Color{R: 0x7A, G: 0x00, B: 0xFF}
	Chartreuse  = Color{R: 0x80, G: 0xFF, B: 0x00}
	SpringGreen = Color{R: 0x00, G: 0xFF, B: 0x80}
	DarkRed     = Color{R: 0x28, G: 0x00, B: 0x00}
)

// namedColors maps lowercase names to colors for keymap files.
var namedColors = map[string]Color{
	"black":       Black,
	"white":       White,
	"red":         Red,
	"green":       Green,
	"blue":        Blue,
	"orange":      Orange,
	"purple":      Purple,
	"chartreuse":  Chartreuse,
	"springgreen": SpringGreen,
	"darkred":     DarkRed,
}

// RGB creates a color from components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor parses a color name ("purple") or hex string ("#7A00FF", "fff").
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return Color{}, fmt.Errorf("invalid color: %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color: %q", s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// IsBlack returns true if all components are zero.
func (c Color) IsBlack() bool {
	return c == Black
}

// String returns the color as "#RRGGBB".
func (c Color) String() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Scale returns the color with each component multiplied by v/255.
func (c Color) Scale(v uint8) Color {
	return Color{
		R: uint8(uint16(c.R) * uint16(v) / 255),
		G: uint8(uint16(c.G) * uint16(v) / 255),
		B: uint8(uint16(c.B) * uint16(v) / 255),
	}
}

// HSV is a color in the 8-bit hue/saturation/value space used by the
// lighting driver. Hue 0-255 covers the full circle.
type HSV struct {
	H, S, V uint8
}

// RGB converts the HSV color to RGB.
func (h HSV) RGB() Color {
	c := colorful.Hsv(float64(h.H)*360.0/256.0, float64(h.S)/255.0, float64(h.V)/255.0)
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

// String returns "hsv(h,s,v)".
func (h HSV) String() string {
	return fmt.Sprintf("hsv(%d,%d,%d)", h.H, h.S, h.V)
}
