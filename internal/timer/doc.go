// Package timer provides the millisecond clock the firmware core runs on.
//
// Timestamps are 32-bit millisecond counters that wrap roughly every 49 days,
// mirroring the timers exposed by keyboard firmware platforms. All deadline
// comparisons go through Reached so a wrap between two reads is harmless.
package timer
