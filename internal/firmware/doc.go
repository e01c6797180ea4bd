// Package firmware ties the input core together into a Keyboard driven by
// a single tick function.
//
// A Keyboard owns the layer stack, keymap, tap dance recognizer, leader
// engine, mini-game and config store. Tick is the only entry point that
// mutates state. Each call processes the tick's key events in order, runs
// the cooperative timers, and projects the indicator frame onto the
// platform LEDs. Nothing blocks and nothing is locked; the caller must not
// call Tick concurrently.
//
// Event flow for a press:
//
//  1. Resolve the effective binding against the active layers.
//  2. A tap dance binding feeds the recognizer. Any other press first
//     resolves pending dances, then re-resolves the binding.
//  3. While the leader engine collects, the press is consumed.
//  4. While the mini-game runs, allow-listed keys are consumed.
//  5. Otherwise the binding is dispatched and remembered, so its release
//     undoes exactly what the press did even if layers changed meanwhile.
package firmware
