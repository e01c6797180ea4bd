// Package persist holds the user configuration record and its non-volatile
// storage.
//
// # Layout
//
// The record is a 64-bit little-endian word at offset 0:
//
//	bit 0      autocorrect enabled
//	bit 1      mouse jiggler enabled
//	bits 2-5   active preset index (valid 0-3)
//	bits 6-7   reserved
//	byte 1     custom preset mode
//	byte 2     custom preset hue
//	byte 3     custom preset saturation
//	byte 4     custom preset value
//	byte 5     custom preset speed
//	bytes 6-7  reserved
//
// Byte 8 holds the persisted default layer and byte 9 the initialization
// marker. Storage without the marker is treated as blank and initialized
// with defaults.
//
// Out-of-range fields are clamped on load and written back immediately.
// Every setter saves. Storage failures are logged and counted; they never
// propagate into key processing.
package persist
