package keymap

import (
	"fmt"

	"github.com/dshills/keyforge/internal/input/key"
)

// Layout describes the physical key positions of a board.
// Row r holds RowLengths[r] keys in columns 0..RowLengths[r]-1; every other
// matrix cell is empty. Keys are numbered row-major, which is also their
// LED index.
type Layout struct {
	RowLengths []int

	// Encoders is the number of rotary encoders. Each has one binding per
	// direction on every layer.
	Encoders int

	cols      int
	positions []key.Position
	index     map[key.Position]int
}

// NewLayout creates a layout from per-row key counts.
func NewLayout(rowLengths ...int) (*Layout, error) {
	if len(rowLengths) == 0 || len(rowLengths) > 255 {
		return nil, fmt.Errorf("%w: %d rows", ErrInvalidLayout, len(rowLengths))
	}

	l := &Layout{
		RowLengths: append([]int(nil), rowLengths...),
		index:      make(map[key.Position]int),
	}
	for r, n := range rowLengths {
		if n <= 0 || n > 255 {
			return nil, fmt.Errorf("%w: row %d has %d keys", ErrInvalidLayout, r, n)
		}
		l.cols = max(l.cols, n)
		for c := 0; c < n; c++ {
			pos := key.Pos(uint8(r), uint8(c))
			l.index[pos] = len(l.positions)
			l.positions = append(l.positions, pos)
		}
	}
	return l, nil
}

// Rows returns the number of matrix rows.
func (l *Layout) Rows() int {
	return len(l.RowLengths)
}

// Cols returns the number of matrix columns.
func (l *Layout) Cols() int {
	return l.cols
}

// Len returns the number of keys.
func (l *Layout) Len() int {
	return len(l.positions)
}

// Positions returns all key positions in LED order.
func (l *Layout) Positions() []key.Position {
	return append([]key.Position(nil), l.positions...)
}

// Contains returns true if a key exists at pos.
func (l *Layout) Contains(pos key.Position) bool {
	_, ok := l.index[pos]
	return ok
}

// LED returns the LED index for pos.
func (l *Layout) LED(pos key.Position) (int, bool) {
	i, ok := l.index[pos]
	return i, ok
}
