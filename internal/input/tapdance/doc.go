// Package tapdance recognizes repeated taps of a single key.
//
// Each configured dance moves through Idle and Counting. A press while Idle
// starts counting; each further press inside the tapping term increments the
// count and restarts the term. The dance resolves once the term expires,
// measured from the last press, or when a different key is pressed. The
// actions bound to the final count are returned exactly once; counts with no
// bound actions resolve to nothing.
//
// The recognizer never touches the layer stack itself. Resolutions are handed
// back to the caller, which applies the Actions.
package tapdance
