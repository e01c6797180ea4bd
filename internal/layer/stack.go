package layer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// ID identifies a layer. Order of IDs is stack order.
type ID uint8

// MaxLayers is the largest number of layers a stack can hold.
const MaxLayers = 32

// Snapshot is the observable state of a stack at one point in time.
type Snapshot struct {
	// Default is the default layer.
	Default ID

	// Transient is the bitmask of transient layers that are on.
	Transient uint32
}

// Highest returns the highest active layer in the snapshot.
func (s Snapshot) Highest() ID {
	highest := s.Default
	for id := ID(MaxLayers - 1); id > highest; id-- {
		if s.Transient&(1<<id) != 0 {
			return id
		}
	}
	return highest
}

// Has returns true if id is the default layer or a transient layer that is on.
func (s Snapshot) Has(id ID) bool {
	return id == s.Default || (id < MaxLayers && s.Transient&(1<<id) != 0)
}

// ChangeCallback is called when the active set or the default layer changes.
type ChangeCallback func(prev, next Snapshot)

// DefaultSaver persists the default layer.
type DefaultSaver interface {
	SaveDefaultLayer(layer uint8)
}

// Stack is an ordered set of layers with a default layer and transient
// activation flags.
type Stack struct {
	names     []string
	active    []bool
	def       ID
	saver     DefaultSaver
	callbacks []ChangeCallback
	logger    zerolog.Logger
}

// Option configures a Stack.
type Option func(*Stack)

// WithSaver sets the saver used by SetDefault.
func WithSaver(s DefaultSaver) Option {
	return func(st *Stack) {
		st.saver = s
	}
}

// WithLogger sets the stack's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(st *Stack) {
		st.logger = l
	}
}

// WithDefault sets the initial default layer without persisting it.
func WithDefault(id ID) Option {
	return func(st *Stack) {
		if int(id) < len(st.names) {
			st.def = id
		}
	}
}

// NewStack creates a stack with one layer per name; names[i] is layer i.
func NewStack(names []string, opts ...Option) (*Stack, error) {
	if len(names) == 0 {
		return nil, ErrNoLayers
	}
	if len(names) > MaxLayers {
		return nil, fmt.Errorf("%w: %d layers, max %d", ErrTooManyLayers, len(names), MaxLayers)
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		key := strings.ToUpper(n)
		if n == "" || seen[key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, n)
		}
		seen[key] = true
	}

	s := &Stack{
		names:  slices.Clone(names),
		active: make([]bool, len(names)),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Len returns the number of layers.
func (s *Stack) Len() int {
	return len(s.names)
}

// Name returns the name of layer id.
func (s *Stack) Name(id ID) string {
	if !s.valid(id) {
		return fmt.Sprintf("Layer(%d)", id)
	}
	return s.names[id]
}

// Names returns all layer names in stack order.
func (s *Stack) Names() []string {
	return slices.Clone(s.names)
}

// Lookup returns the layer with the given name (case-insensitive).
func (s *Stack) Lookup(name string) (ID, bool) {
	for i, n := range s.names {
		if strings.EqualFold(n, name) {
			return ID(i), true
		}
	}
	return 0, false
}

// Activate turns on layer id. Activating an active layer is a no-op.
// Returns true if the state changed.
func (s *Stack) Activate(id ID) bool {
	if !s.valid(id) || s.active[id] {
		return false
	}
	prev := s.Snapshot()
	s.active[id] = true
	s.notify(prev)
	return true
}

// Deactivate turns off layer id. Deactivating an inactive layer is a no-op.
// The default layer is unaffected.
// Returns true if the state changed.
func (s *Stack) Deactivate(id ID) bool {
	if !s.valid(id) || !s.active[id] {
		return false
	}
	prev := s.Snapshot()
	s.active[id] = false
	s.notify(prev)
	return true
}

// Toggle inverts layer id's transient flag.
func (s *Stack) Toggle(id ID) bool {
	if !s.valid(id) {
		return false
	}
	if s.active[id] {
		return s.Deactivate(id)
	}
	return s.Activate(id)
}

// Clear turns off every transient layer.
func (s *Stack) Clear() bool {
	prev := s.Snapshot()
	if prev.Transient == 0 {
		return false
	}
	clear(s.active)
	s.notify(prev)
	return true
}

// SetDefault makes id the default layer and persists it.
func (s *Stack) SetDefault(id ID) bool {
	if !s.valid(id) {
		s.logger.Warn().Uint8("layer", uint8(id)).Msg("set default: unknown layer")
		return false
	}
	if s.saver != nil {
		s.saver.SaveDefaultLayer(uint8(id))
	}
	if s.def == id {
		return false
	}
	prev := s.Snapshot()
	s.def = id
	s.notify(prev)
	return true
}

// Default returns the default layer.
func (s *Stack) Default() ID {
	return s.def
}

// IsActive returns true if id is the default layer or a transient layer
// that is on.
func (s *Stack) IsActive(id ID) bool {
	return s.valid(id) && (s.active[id] || s.def == id)
}

// IsTransient returns true if id's transient flag is on.
func (s *Stack) IsTransient(id ID) bool {
	return s.valid(id) && s.active[id]
}

// HighestActive returns the greatest ID among the default layer and the
// transient layers that are on.
func (s *Stack) HighestActive() ID {
	for id := len(s.active) - 1; id > int(s.def); id-- {
		if s.active[id] {
			return ID(id)
		}
	}
	return s.def
}

// Active returns the active layers from highest to lowest, including the
// default layer.
func (s *Stack) Active() []ID {
	ids := make([]ID, 0, 4)
	for id := len(s.active) - 1; id >= 0; id-- {
		if s.active[id] || ID(id) == s.def {
			ids = append(ids, ID(id))
		}
	}
	return ids
}

// Snapshot returns the current state.
func (s *Stack) Snapshot() Snapshot {
	snap := Snapshot{Default: s.def}
	for id, on := range s.active {
		if on {
			snap.Transient |= 1 << id
		}
	}
	return snap
}

// OnChange registers a callback for state changes.
func (s *Stack) OnChange(cb ChangeCallback) {
	s.callbacks = append(s.callbacks, cb)
}

// String returns the active layers, highest first, like "KIDDO>WIN_BASE".
func (s *Stack) String() string {
	ids := s.Active()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = s.Name(id)
	}
	return strings.Join(parts, ">")
}

func (s *Stack) valid(id ID) bool {
	return int(id) < len(s.names)
}

func (s *Stack) notify(prev Snapshot) {
	next := s.Snapshot()
	if prev == next {
		return
	}
	s.logger.Debug().
		Str("from", s.Name(prev.Highest())).
		Str("to", s.Name(next.Highest())).
		Str("stack", s.String()).
		Msg("layer change")
	for _, cb := range s.callbacks {
		if cb != nil {
			cb(prev, next)
		}
	}
}
