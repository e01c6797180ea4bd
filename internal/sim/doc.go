// Package sim runs the keyboard core against a terminal.
//
// The simulator stands in for the firmware platform: terminal key presses
// become matrix events at the positions the active base layer assigns to
// those codes, HID reports are rendered as typed text, and the indicator
// frame and lighting effect are drawn over a picture of the board. Storage
// is whatever the caller passes in, usually a persist.FileStorage.
//
// Terminals only report presses. Each press is released after a fixed
// hold time, and a few control keys latch board keys that have no terminal
// equivalent:
//
//	Ctrl+F  hold/release the Fn key
//	Ctrl+S  hold/release left Shift
//	Ctrl+W  tap the key right of Fn (select word, leader on the
//	        features layer)
//	Ctrl+D  turn the knob counter-clockwise
//	Ctrl+U  turn the knob clockwise
//	Ctrl+C  quit
//
// Concurrency: the terminal poller, the keymap watcher and the metrics
// server run in their own goroutines under an errgroup. They only send to
// the tick loop, which is the single goroutine that touches the keyboard.
package sim
