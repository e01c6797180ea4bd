package game

// Random picks uniformly distributed integers.
type Random interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
}

// LCG is a 32-bit linear congruential generator. It is not suitable for
// anything but visual variety.
type LCG struct {
	state uint32
}

// NewLCG creates a generator from seed.
func NewLCG(seed uint32) *LCG {
	return &LCG{state: seed}
}

// Intn returns a value in [0, n).
func (l *LCG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	l.state = l.state*1664525 + 1013904223
	// High bits of an LCG are far better distributed than low bits.
	return int((uint64(l.state) * uint64(n)) >> 32)
}

// Sequence replays fixed values, wrapping at the end. Values are reduced
// modulo n.
type Sequence struct {
	Values []int
	next   int
}

// Intn returns the next value modulo n.
func (s *Sequence) Intn(n int) int {
	if n <= 0 || len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return ((v % n) + n) % n
}
