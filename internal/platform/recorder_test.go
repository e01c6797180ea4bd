package platform

import (
	"errors"
	"slices"
	"testing"

	"github.com/dshills/keyforge/internal/input/key"
	"github.com/dshills/keyforge/internal/rgb"
)

func TestHostRecorder(t *testing.T) {
	h := NewHostRecorder()
	h.Register(key.KeyLeftGui)
	h.Register(key.KeyTab)
	h.Register(key.KeyTab)
	h.Unregister(key.KeyTab)

	if got := h.Held(); !slices.Equal(got, []key.Code{key.KeyLeftGui}) {
		t.Errorf("Held() = %v, want [KC_LGUI]", got)
	}
	want := []string{"+KC_LGUI", "+KC_TAB", "+KC_TAB", "-KC_TAB"}
	if got := h.Log(); !slices.Equal(got, want) {
		t.Errorf("Log() = %v, want %v", got, want)
	}

	h.Reset()
	if len(h.Log()) != 0 {
		t.Error("Reset() should clear the log")
	}
}

func TestMemoryStorage(t *testing.T) {
	s := NewMemoryStorage(16)

	if _, err := s.WriteAt([]byte{1, 2, 3}, 4); err != nil {
		t.Fatalf("WriteAt() error = %v", err)
	}
	buf := make([]byte, 3)
	if _, err := s.ReadAt(buf, 4); err != nil {
		t.Fatalf("ReadAt() error = %v", err)
	}
	if !slices.Equal(buf, []byte{1, 2, 3}) {
		t.Errorf("ReadAt() = %v, want [1 2 3]", buf)
	}
	if s.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", s.Writes())
	}

	if _, err := s.ReadAt(make([]byte, 4), 14); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("ReadAt past end error = %v, want ErrOutOfRange", err)
	}

	s.FailWrites = true
	if _, err := s.WriteAt([]byte{9}, 0); !errors.Is(err, ErrWriteFailed) {
		t.Errorf("WriteAt() error = %v, want ErrWriteFailed", err)
	}
	if s.Bytes()[0] != 0 {
		t.Error("failed write modified storage")
	}
}

func TestIndicatorFrame(t *testing.T) {
	f := NewIndicatorFrame()
	f.Set(key.Pos(1, 2), rgb.Purple)

	if c, ok := f.Get(key.Pos(1, 2)); !ok || c != rgb.Purple {
		t.Errorf("Get() = %v, %v, want purple", c, ok)
	}
	snap := f.Snapshot()
	f.Clear()
	if _, ok := f.Get(key.Pos(1, 2)); ok {
		t.Error("Clear() left assignment")
	}
	if len(snap) != 1 {
		t.Errorf("Snapshot() len = %d, want 1", len(snap))
	}
}

func TestLightingRecorder(t *testing.T) {
	l := NewLightingRecorder()
	l.SetEffect(rgb.Preset(1), true)
	l.SetEffect(rgb.SplashEffect, false)

	if l.Current() != rgb.SplashEffect {
		t.Errorf("Current() = %v, want splash", l.Current())
	}
	if l.Persisted() != rgb.Preset(1) {
		t.Errorf("Persisted() = %v, want preset 1", l.Persisted())
	}
	if l.Changes() != 2 {
		t.Errorf("Changes() = %d, want 2", l.Changes())
	}
}
