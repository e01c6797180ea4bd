// Package rgb provides LED colors, HSV conversion and lighting effects.
//
// Colors are plain 8-bit RGB triples as sent to the per-key LED array.
// Effects describe what the platform's lighting driver renders underneath
// the per-key indicators: an animation mode plus an HSV base color and a
// speed. Presets are the four fixed effects selectable from the keyboard.
package rgb
