package platform

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/rgb"
)

// HostRecorder is a Host that tracks held codes and logs every report.
type HostRecorder struct {
	mu   sync.Mutex
	held []key.Code
	log  []string
}

// NewHostRecorder creates an empty HostRecorder.
func NewHostRecorder() *HostRecorder {
	return &HostRecorder{}
}

// Register implements Host.
func (h *HostRecorder) Register(code key.Code) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !slices.Contains(h.held, code) {
		h.held = append(h.held, code)
	}
	h.log = append(h.log, "+"+code.String())
}

// Unregister implements Host.
func (h *HostRecorder) Unregister(code key.Code) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i := slices.Index(h.held, code); i >= 0 {
		h.held = slices.Delete(h.held, i, i+1)
	}
	h.log = append(h.log, "-"+code.String())
}

// Held returns the codes currently held, in registration order.
func (h *HostRecorder) Held() []key.Code {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.held)
}

// Log returns all reports as "+KC_A" / "-KC_A" entries.
func (h *HostRecorder) Log() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.log)
}

// Reset clears the report log but keeps held codes.
func (h *HostRecorder) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.log = nil
}

// MemoryStorage is a fixed-size Storage backed by a byte slice.
type MemoryStorage struct {
	mu     sync.Mutex
	data   []byte
	writes int

	// FailWrites makes every WriteAt return an error.
	FailWrites bool
}

// NewMemoryStorage creates zeroed storage of the given size.
func NewMemoryStorage(size int) *MemoryStorage {
	return &MemoryStorage{data: make([]byte, size)}
}

// ReadAt implements Storage.
func (m *MemoryStorage) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, fmt.Errorf("read %d bytes at %d: %w", len(p), off, ErrOutOfRange)
	}
	return copy(p, m.data[off:]), nil
}

// WriteAt implements Storage.
func (m *MemoryStorage) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return 0, ErrWriteFailed
	}
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, fmt.Errorf("write %d bytes at %d: %w", len(p), off, ErrOutOfRange)
	}
	m.writes++
	return copy(m.data[off:], p), nil
}

// Bytes returns a copy of the stored data.
func (m *MemoryStorage) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.data)
}

// Writes returns the number of successful WriteAt calls.
func (m *MemoryStorage) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// IndicatorFrame is an Indicators that keeps the latest assignments.
type IndicatorFrame struct {
	mu     sync.Mutex
	colors map[key.Position]rgb.Color
}

// NewIndicatorFrame creates an empty IndicatorFrame.
func NewIndicatorFrame() *IndicatorFrame {
	return &IndicatorFrame{colors: make(map[key.Position]rgb.Color)}
}

// Set implements Indicators.
func (f *IndicatorFrame) Set(pos key.Position, c rgb.Color) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.colors[pos] = c
}

// Clear implements Indicators.
func (f *IndicatorFrame) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.colors)
}

// Get returns the color at pos and whether one is assigned.
func (f *IndicatorFrame) Get(pos key.Position) (rgb.Color, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.colors[pos]
	return c, ok
}

// Snapshot returns a copy of all assignments.
func (f *IndicatorFrame) Snapshot() map[key.Position]rgb.Color {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[key.Position]rgb.Color, len(f.colors))
	for p, c := range f.colors {
		out[p] = c
	}
	return out
}

// LightingRecorder is a Lighting that remembers the current effect.
type LightingRecorder struct {
	mu        sync.Mutex
	current   rgb.Effect
	persisted rgb.Effect
	changes   int
}

// NewLightingRecorder creates a LightingRecorder with no effect set.
func NewLightingRecorder() *LightingRecorder {
	return &LightingRecorder{}
}

// SetEffect implements Lighting.
func (l *LightingRecorder) SetEffect(e rgb.Effect, persist bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.current = e
	if persist {
		l.persisted = e
	}
	l.changes++
}

// Current returns the running effect.
func (l *LightingRecorder) Current() rgb.Effect {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Persisted returns the last effect written with persist set.
func (l *LightingRecorder) Persisted() rgb.Effect {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.persisted
}

// Changes returns the number of SetEffect calls.
func (l *LightingRecorder) Changes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.changes
}

// StaticHostState is a HostState with settable fields.
type StaticHostState struct {
	Caps bool
	Nkro bool
}

// CapsLock implements HostState.
func (s *StaticHostState) CapsLock() bool { return s.Caps }

// NKRO implements HostState.
func (s *StaticHostState) NKRO() bool { return s.Nkro }
