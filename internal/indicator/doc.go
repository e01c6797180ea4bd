// Package indicator projects keyboard state onto per-key colors.
//
// Project is a pure function called once per tick. It reads the layer
// stack, feature flags and transient game and leader state, and returns a
// Frame assigning colors to key positions. Positions missing from the Frame
// are left to the background lighting effect.
//
// Assignments are layered, highest precedence first:
//
//  1. Mini-game target or celebration ripple while the game layer is on top.
//  2. Leader success or failure flash on the leader keys.
//  3. On/off colors for keys bound to a feature toggle.
//  4. The static color table of the highest active layer.
//  5. Host lock indicators on the default layer.
//
// Rules name bindings, not positions. Each rule is resolved by searching the
// effective bindings of the active layers, with transparency resolved, so a
// rule for a key that does not exist on the current layer simply lights
// nothing.
package indicator
