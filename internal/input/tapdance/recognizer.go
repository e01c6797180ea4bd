package tapdance

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/dshills/keyforge/internal/input/keymap"
	"github.com/dshills/keyforge/internal/metrics"
	"github.com/dshills/keyforge/internal/timer"
)

// DefaultTappingTerm is the window, in milliseconds, for another tap.
const DefaultTappingTerm uint32 = 200

// Errors
var (
	ErrNoDances    = errors.New("no tap dances configured")
	ErrInvalidTerm = errors.New("tapping term must be positive")
)

// Dance is a configured tap dance.
type Dance struct {
	// Name identifies the dance in keymaps, logs and metrics.
	Name string

	// Taps maps a final tap count to the actions it runs.
	Taps map[int][]Action
}

// OnDoubleTap returns a dance that runs actions when tapped twice.
func OnDoubleTap(name string, actions ...Action) Dance {
	return Dance{Name: name, Taps: map[int][]Action{2: actions}}
}

// State is the per-dance recognizer state.
type State struct {
	Count     int
	LastPress timer.Millis
	Pending   bool
}

// Resolution is the outcome of a finished dance.
type Resolution struct {
	Dance   keymap.DanceID
	Name    string
	Count   int
	Actions []Action
}

// Recognizer tracks every configured dance.
type Recognizer struct {
	dances []Dance
	states []State
	term   uint32
	logger zerolog.Logger
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithTappingTerm sets the tapping term in milliseconds.
func WithTappingTerm(ms uint32) Option {
	return func(r *Recognizer) {
		r.term = ms
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Recognizer) {
		r.logger = l
	}
}

// New creates a recognizer for the given dances, indexed by DanceID.
func New(dances []Dance, opts ...Option) (*Recognizer, error) {
	if len(dances) == 0 {
		return nil, ErrNoDances
	}
	r := &Recognizer{
		dances: slices.Clone(dances),
		states: make([]State, len(dances)),
		term:   DefaultTappingTerm,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.term == 0 {
		return nil, ErrInvalidTerm
	}
	return r, nil
}

// Names returns the dance names in DanceID order.
func (r *Recognizer) Names() []string {
	names := make([]string, len(r.dances))
	for i, d := range r.dances {
		names[i] = d.Name
	}
	return names
}

// Len returns the number of configured dances.
func (r *Recognizer) Len() int {
	return len(r.dances)
}

// TappingTerm returns the tapping term in milliseconds.
func (r *Recognizer) TappingTerm() uint32 {
	return r.term
}

// State returns the state of dance id.
func (r *Recognizer) State(id keymap.DanceID) State {
	if int(id) >= len(r.states) {
		return State{}
	}
	return r.states[id]
}

// Pending returns true if any dance is counting.
func (r *Recognizer) Pending() bool {
	for _, s := range r.states {
		if s.Pending {
			return true
		}
	}
	return false
}

// Press records a press of the key bound to dance id. Other pending dances
// are interrupted and their resolutions returned first. Unknown ids resolve
// pending dances and are otherwise ignored.
func (r *Recognizer) Press(id keymap.DanceID, now timer.Millis) []Resolution {
	out := r.resolveExcept(id)
	if int(id) >= len(r.states) {
		return out
	}

	s := &r.states[id]
	if s.Pending && now.Since(s.LastPress) > r.term {
		// The term ran out before this tick saw it.
		out = append(out, r.resolve(id))
	}
	s.Count++
	s.LastPress = now
	s.Pending = true
	r.logger.Debug().Str("dance", r.dances[id].Name).Int("count", s.Count).Msg("tap")
	return out
}

// Interrupt resolves every pending dance because another key was pressed.
func (r *Recognizer) Interrupt() []Resolution {
	return r.resolveExcept(keymap.DanceID(len(r.states)))
}

// Tick resolves dances whose tapping term has expired.
func (r *Recognizer) Tick(now timer.Millis) []Resolution {
	var out []Resolution
	for i := range r.states {
		s := &r.states[i]
		if s.Pending && now.Since(s.LastPress) > r.term {
			out = append(out, r.resolve(keymap.DanceID(i)))
		}
	}
	return out
}

// Reset drops all pending dances without resolving them.
func (r *Recognizer) Reset() {
	clear(r.states)
}

func (r *Recognizer) resolveExcept(id keymap.DanceID) []Resolution {
	var out []Resolution
	for i := range r.states {
		if keymap.DanceID(i) != id && r.states[i].Pending {
			out = append(out, r.resolve(keymap.DanceID(i)))
		}
	}
	return out
}

func (r *Recognizer) resolve(id keymap.DanceID) Resolution {
	d := r.dances[id]
	s := r.states[id]
	r.states[id] = State{}

	res := Resolution{
		Dance:   id,
		Name:    d.Name,
		Count:   s.Count,
		Actions: d.Taps[s.Count],
	}
	metrics.RecordTapDance(d.Name, s.Count)
	r.logger.Debug().
		Str("dance", d.Name).
		Int("count", s.Count).
		Int("actions", len(res.Actions)).
		Msg("tap dance resolved")
	return res
}

// Validate checks that every dance is named uniquely and bound sensibly.
func Validate(dances []Dance) error {
	var errs []error
	seen := make(map[string]bool, len(dances))
	for i, d := range dances {
		if d.Name == "" {
			errs = append(errs, fmt.Errorf("dance %d: empty name", i))
		} else if seen[d.Name] {
			errs = append(errs, fmt.Errorf("dance %q: duplicate name", d.Name))
		}
		seen[d.Name] = true
		for count := range d.Taps {
			if count < 1 {
				errs = append(errs, fmt.Errorf("dance %q: tap count %d", d.Name, count))
			}
		}
	}
	return errors.Join(errs...)
}
