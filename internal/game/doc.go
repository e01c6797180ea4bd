// Package game implements the whack-a-mole mini-game shown on the kiddo
// layer.
//
// While active the game lights one target key in a rainbow color and moves
// it to a new random key every one to two seconds. Pressing the target
// starts a short ripple celebration and retargets at once. Presses of other
// allow-listed keys are swallowed so a child cannot type; keys outside the
// allow list are left to normal processing.
//
// The game is driven by the tick loop and owns no timers. Randomness comes
// from a Random source, by default a linear congruential generator seeded
// from the clock.
package game
