// Package layer implements the layer stack.
//
// Layers are identified by small integers; a layer's ID is also its
// position in the stack, so the highest active layer is simply the largest
// active ID. Exactly one default layer is always in effect; transient
// layers are turned on and off above (or below) it. The default layer is
// persisted through a DefaultSaver and is distinct from transient
// activation.
//
// The stack is not safe for concurrent use. It is owned by the tick driver.
package layer
