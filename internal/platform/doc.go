// Package platform declares the services the keyboard core consumes from
// the host firmware: HID output, non-volatile storage, per-key LEDs, the
// lighting effect driver, host LED state and a millisecond clock.
//
// The core never reaches hardware directly. Real firmware glue implements
// these interfaces; this package also provides in-memory recorders used by
// tests and by the terminal simulator.
package platform
