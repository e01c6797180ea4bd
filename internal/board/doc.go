// Package board holds the declarative tables for supported keyboards.
//
// A board is a keymap file (embedded TOML), the layer roles the firmware
// treats specially, the tap dances and leader sequences, and the indicator
// rules. Q3 assembles them into a firmware.Definition:
//
//	def, err := board.Q3()
//	kb, err := firmware.New(def, firmware.DefaultConfig(), platform)
//
// Alternative keymap files can be loaded with keymap.LoadFile and combined
// with the Q3 behavior tables through Define, provided they keep the Q3
// layer names.
package board
