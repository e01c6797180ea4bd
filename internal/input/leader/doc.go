// Package leader implements the leader key sequence engine.
//
// Pressing the leader trigger moves the engine from Idle to Collecting.
// While collecting, key codes are appended to a buffer and each key restarts
// a per-key deadline, so timing is measured between consecutive keys rather
// than from the trigger. With WaitForFirstKey the deadline is not armed until
// the first key arrives.
//
// The buffer is compared against a table of fixed sequences by exact,
// order-sensitive equality of the whole buffer:
//
//   - If the buffer equals a sequence and no longer sequence starts with it,
//     the sequence matches immediately.
//   - If a longer sequence shares the prefix, the engine waits for the
//     per-key deadline and then matches the exact buffer.
//   - A deadline with no exact match, or a buffer longer than every
//     sequence, fails with nothing executed.
//
// Both outcomes clear the buffer and return the engine to Idle. When two
// table entries have the same keys the first one wins; Validate reports the
// collision.
//
// The engine does not drive layers itself. Callers apply the Actions in a
// matched Result and show or hide the leader overlay around Start and the
// terminal Result.
package leader
