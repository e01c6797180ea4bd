package key

import (
	"fmt"

	"github.com/dshills/keyforge/internal/timer"
)

// Position is a physical key position in the switch matrix.
type Position struct {
	Row uint8
	Col uint8
}

// Pos is shorthand for constructing a Position.
func Pos(row, col uint8) Position {
	return Position{Row: row, Col: col}
}

// Distance returns the Manhattan distance between two positions.
func (p Position) Distance(other Position) int {
	dr := int(p.Row) - int(other.Row)
	dc := int(p.Col) - int(other.Col)
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// String returns "r,c".
func (p Position) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// Event is a key press or release delivered by the platform scan loop.
type Event struct {
	// Pos is the physical position of the switch.
	Pos Position

	// Pressed is true for a press and false for a release.
	Pressed bool

	// Time is when the platform observed the transition.
	Time timer.Millis
}

// Press creates a press event.
func Press(pos Position, at timer.Millis) Event {
	return Event{Pos: pos, Pressed: true, Time: at}
}

// Release creates a release event.
func Release(pos Position, at timer.Millis) Event {
	return Event{Pos: pos, Pressed: false, Time: at}
}

// String returns a compact representation like "down@3,4 t=120".
func (e Event) String() string {
	dir := "up"
	if e.Pressed {
		dir = "down"
	}
	return fmt.Sprintf("%s@%s t=%d", dir, e.Pos, e.Time)
}
